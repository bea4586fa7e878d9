// Package pipeline drives a round render end to end: a sequential
// prefix pass over the turns to build per-turn statistics, then a
// parallel frame-compositing pass feeding the video assembler in
// strict turn order.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kekule-games/roundrender/internal/render"
	"github.com/kekule-games/roundrender/internal/replay"
	"github.com/kekule-games/roundrender/internal/video"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers bounds the compositing worker pool. Defaults to the
// number of CPUs.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFramesDir additionally dumps every composed frame as a PNG into
// dir, for debugging.
func WithFramesDir(dir string) Option {
	return func(r *Renderer) { r.framesDir = dir }
}

// WithLogger sets the progress logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// Renderer composes one frame per turn and hands them to a frame sink
// in ascending turn order.
type Renderer struct {
	composer  *render.Composer
	sink      video.FrameSink
	workers   int
	framesDir string
	log       *slog.Logger
}

// New creates a renderer writing frames to sink. The sink is not
// closed by the renderer; that stays with the caller.
func New(composer *render.Composer, sink video.FrameSink, opts ...Option) *Renderer {
	r := &Renderer{
		composer: composer,
		sink:     sink,
		workers:  runtime.NumCPU(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result summarizes a completed render.
type Result struct {
	Turns     int
	RedTotal  int
	BlueTotal int
	Elapsed   time.Duration
}

// Render processes the round's turns. Phase 1 walks the turns
// sequentially to build the totals sequence and per-turn histograms;
// phase 2 composites frames concurrently, since each frame only reads
// the already-complete stats prefix for its turn, and delivers them to
// the sink in ascending order. The first error cancels all remaining
// work.
func (r *Renderer) Render(ctx context.Context, round *replay.Round, legend render.Legend) (*Result, error) {
	start := time.Now()
	turns := round.Turns()

	stats := replay.NewRunningStats()
	for _, t := range turns {
		stats.Record(t)
	}

	ordered := video.NewOrderedSink(r.sink)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, turn := range turns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := r.composer.ComposeFrame(turn, frameStatsFor(stats, i), legend)
			if err != nil {
				return fmt.Errorf("compose turn %d: %w", turn.Number, err)
			}
			if r.framesDir != "" {
				if err := dumpFrame(r.framesDir, turn.Number, img); err != nil {
					return err
				}
			}
			if err := ordered.Append(video.Frame{Turn: turn.Number, Image: img}); err != nil {
				return err
			}
			r.log.Debug("frame composed", "turn", turn.Number, "of", len(turns))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ordered.Drained(); err != nil {
		return nil, err
	}

	res := &Result{Turns: len(turns), Elapsed: time.Since(start)}
	if n := stats.Len(); n > 0 {
		res.RedTotal = stats.RedTotals()[n-1]
		res.BlueTotal = stats.BlueTotals()[n-1]
	}
	return res, nil
}

// frameStatsFor snapshots the stats prefix for the i-th turn. The
// returned slices alias the aggregator's storage, which is read-only
// once the prefix pass has finished.
func frameStatsFor(stats *replay.RunningStats, i int) render.FrameStats {
	ts := stats.Snapshot(i)
	return render.FrameStats{
		RedTotals:     stats.RedTotals()[:i+1],
		BlueTotals:    stats.BlueTotals()[:i+1],
		RedStrengths:  ts.RedStrengths,
		BlueStrengths: ts.BlueStrengths,
		RedCount:      ts.RedCount,
		BlueCount:     ts.BlueCount,
	}
}

func dumpFrame(dir string, turn int, img image.Image) error {
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", turn))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump frame %d: %w", turn, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("dump frame %d: %w", turn, err)
	}
	return f.Close()
}
