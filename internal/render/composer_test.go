package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/kekule-games/roundrender/internal/replay"
)

func testTurn() *replay.Turn {
	return &replay.Turn{
		Number: 2,
		Tokens: []replay.Token{
			{X: 0, Y: 0, Strength: 5, Faction: replay.FactionBlue},
			{X: 1, Y: 1, Strength: 10, Faction: replay.FactionRed},
			{X: 99, Y: 99, Strength: 25, Faction: replay.FactionRed},
		},
	}
}

func testStats() FrameStats {
	return FrameStats{
		RedTotals:     []int{0, 35},
		BlueTotals:    []int{5, 5},
		RedStrengths:  []int{10, 25},
		BlueStrengths: []int{5},
		RedCount:      2,
		BlueCount:     1,
	}
}

func compose(t *testing.T, theme Theme) image.Image {
	t.Helper()
	c, err := NewComposer(theme)
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	img, err := c.ComposeFrame(testTurn(), testStats(), Legend{
		Title:   "Game 12 / Round 3",
		Player1: "alice",
		Player2: "bob",
	})
	if err != nil {
		t.Fatalf("compose frame: %v", err)
	}
	return img
}

func TestComposeFrame_Dimensions(t *testing.T) {
	img := compose(t, LightTheme())
	b := img.Bounds()
	if b.Dx() != FrameWidth || b.Dy() != FrameHeight {
		t.Fatalf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), FrameWidth, FrameHeight)
	}
}

func TestComposeFrame_ThemedBackground(t *testing.T) {
	img := compose(t, LightTheme())
	r, g, b, _ := img.At(2, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("light theme corner pixel should be white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	img = compose(t, DarkTheme())
	r, g, b, _ = img.At(2, 2).RGBA()
	if r>>8 != 20 || g>>8 != 20 || b>>8 != 20 {
		t.Fatalf("dark theme corner pixel should be near-black, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestComposeFrame_Deterministic(t *testing.T) {
	a := encodePNG(t, compose(t, LightTheme()))
	b := encodePNG(t, compose(t, LightTheme()))
	if !bytes.Equal(a, b) {
		t.Fatal("composing the same turn twice must produce identical frames")
	}
}

func TestComposeFrame_EmptyTurn(t *testing.T) {
	c, err := NewComposer(LightTheme())
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	img, err := c.ComposeFrame(
		&replay.Turn{Number: 1},
		FrameStats{RedTotals: []int{0}, BlueTotals: []int{0}},
		Legend{Player1: "alice", Player2: "bob"},
	)
	if err != nil {
		t.Fatalf("compose empty turn: %v", err)
	}
	if img.Bounds().Dx() != FrameWidth {
		t.Fatal("empty turn must still produce a full frame")
	}
}

func TestCharts_NoRecordedTurns(t *testing.T) {
	c, err := NewComposer(LightTheme())
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	totals, err := c.totalsChart(FrameStats{})
	if err != nil {
		t.Fatalf("totals chart: %v", err)
	}
	if totals != nil {
		t.Fatal("totals chart with no recorded turns must be nil")
	}
	img, err := c.ComposeFrame(&replay.Turn{Number: 1}, FrameStats{}, Legend{})
	if err != nil {
		t.Fatalf("compose frame: %v", err)
	}
	if img.Bounds().Dx() != FrameWidth {
		t.Fatal("frame without stats must still render at full size")
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
