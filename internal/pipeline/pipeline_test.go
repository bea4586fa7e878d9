package pipeline

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/kekule-games/roundrender/internal/render"
	"github.com/kekule-games/roundrender/internal/replay"
	"github.com/kekule-games/roundrender/internal/video"
)

// captureSink records delivered frames in arrival order.
type captureSink struct {
	mu     sync.Mutex
	frames []video.Frame
}

func (c *captureSink) Append(f video.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return nil
}

func (c *captureSink) Close() error { return nil }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const endToEndLog = "round-start-for(1)\n" +
	"[(0, 0, 5, 'B')]\n" +
	"[(0, 0, 5, 'B'), (1, 1, 10, 'R')]\n"

func TestRender_EndToEnd(t *testing.T) {
	parser := replay.NewParser(replay.WithLogger(quiet()))
	round, err := parser.ParseRound(endToEndLog, 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	composer, err := render.NewComposer(render.LightTheme())
	if err != nil {
		t.Fatalf("composer: %v", err)
	}

	sink := &captureSink{}
	r := New(composer, sink, WithWorkers(2), WithLogger(quiet()))
	res, err := r.Render(context.Background(), round, render.Legend{Player1: "alice", Player2: "bob"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if res.Turns != 2 {
		t.Fatalf("expected 2 turns rendered, got %d", res.Turns)
	}
	if res.BlueTotal != 5 || res.RedTotal != 10 {
		t.Fatalf("final totals blue=%d red=%d, want 5/10", res.BlueTotal, res.RedTotal)
	}

	if len(sink.frames) != 2 {
		t.Fatalf("expected 2 frames delivered, got %d", len(sink.frames))
	}
	for i, f := range sink.frames {
		if f.Turn != i+1 {
			t.Fatalf("frames delivered out of order: %v then %v", sink.frames[0].Turn, sink.frames[1].Turn)
		}
		b := f.Image.Bounds()
		if b.Dx() != render.FrameWidth || b.Dy() != render.FrameHeight {
			t.Fatalf("frame %d is %dx%d", f.Turn, b.Dx(), b.Dy())
		}
	}
}

func TestRender_TotalsSequences(t *testing.T) {
	parser := replay.NewParser(replay.WithLogger(quiet()))
	round, err := parser.ParseRound(endToEndLog, 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	stats := replay.NewRunningStats()
	for _, turn := range round.Turns() {
		stats.Record(turn)
	}

	blue := stats.BlueTotals()
	red := stats.RedTotals()
	if blue[0] != 5 || blue[1] != 5 {
		t.Fatalf("blue totals sequence: got %v, want [5 5]", blue)
	}
	if red[0] != 0 || red[1] != 10 {
		t.Fatalf("red totals sequence: got %v, want [0 10]", red)
	}

	fs := frameStatsFor(stats, 1)
	if len(fs.BlueStrengths) != 1 || fs.BlueStrengths[0] != 5 {
		t.Fatalf("turn 2 blue histogram: %v", fs.BlueStrengths)
	}
	if len(fs.RedStrengths) != 1 || fs.RedStrengths[0] != 10 {
		t.Fatalf("turn 2 red histogram: %v", fs.RedStrengths)
	}
	if len(fs.BlueTotals) != 2 || len(fs.RedTotals) != 2 {
		t.Fatal("frame stats for turn 2 must carry the full prefix")
	}
}

func TestRender_ManyTurnsStayOrdered(t *testing.T) {
	round := replay.NewRound(1)
	for i := 0; i < 12; i++ {
		round.AppendTurn([]replay.Token{
			{X: i, Y: i, Strength: i, Faction: replay.FactionBlue},
		})
	}

	composer, err := render.NewComposer(render.DarkTheme())
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	sink := &captureSink{}
	r := New(composer, sink, WithWorkers(4), WithLogger(quiet()))
	if _, err := r.Render(context.Background(), round, render.Legend{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(sink.frames) != 12 {
		t.Fatalf("expected 12 frames, got %d", len(sink.frames))
	}
	for i, f := range sink.frames {
		if f.Turn != i+1 {
			t.Fatalf("frame %d delivered at position %d", f.Turn, i)
		}
	}
}
