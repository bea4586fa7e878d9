package main

import (
	"strings"
	"testing"
	"time"

	"github.com/kekule-games/roundrender/internal/pipeline"
	"github.com/kekule-games/roundrender/internal/render"
	"github.com/kekule-games/roundrender/internal/replay"
)

func TestBuildSummary(t *testing.T) {
	opts := options{gameID: 42, roundID: 3, speed: 100, workers: 4}
	res := &pipeline.Result{
		Turns:     57,
		RedTotal:  1180,
		BlueTotal: 1234,
		Elapsed:   12300 * time.Millisecond,
	}
	warnings := []replay.Warning{
		{Record: 12, Token: replay.Token{X: 150, Y: 5}},
	}

	got := buildSummary(opts, render.LightTheme(), res, warnings, "42_3.mp4")

	for _, want := range []string{
		"game=42 round=3",
		"turns rendered: 57",
		"blue=1234 red=1180",
		"skipped turns:  1",
		"record 12 skipped",
		"42_3.mp4",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestBuildSummary_NoWarnings(t *testing.T) {
	got := buildSummary(
		options{gameID: 1, roundID: 1, speed: 100, workers: 1},
		render.DarkTheme(),
		&pipeline.Result{Turns: 2},
		nil,
		"1_1.mp4",
	)
	if strings.Contains(got, "skipped turns") {
		t.Fatalf("clean run must not mention skipped turns:\n%s", got)
	}
	if !strings.Contains(got, "theme=dark") {
		t.Fatalf("summary missing theme:\n%s", got)
	}
}
