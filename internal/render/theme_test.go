package render

import (
	"image/color"
	"testing"

	"github.com/kekule-games/roundrender/internal/replay"
)

func TestTokenColor_BlueFades(t *testing.T) {
	got := TokenColor(replay.Token{Strength: 0, Faction: replay.FactionBlue})
	want := color.RGBA{R: 220, G: 220, B: 255, A: 255}
	if got != want {
		t.Fatalf("blue strength 0: got %v, want %v", got, want)
	}
}

func TestTokenColor_ClampsAtTwenty(t *testing.T) {
	for _, strength := range []int{20, 21, 100} {
		got := TokenColor(replay.Token{Strength: strength, Faction: replay.FactionBlue})
		want := color.RGBA{R: 0, G: 0, B: 255, A: 255}
		if got != want {
			t.Fatalf("blue strength %d: got %v, want %v", strength, got, want)
		}
	}
}

func TestTokenColor_RedChannel(t *testing.T) {
	got := TokenColor(replay.Token{Strength: 10, Faction: replay.FactionRed})
	want := color.RGBA{R: 255, G: 110, B: 110, A: 255}
	if got != want {
		t.Fatalf("red strength 10: got %v, want %v", got, want)
	}
}

func TestThemes_SwapColors(t *testing.T) {
	light := LightTheme()
	dark := DarkTheme()
	if light.Background != dark.Line || light.Line != dark.Background {
		t.Fatal("dark theme must swap the light theme's background and line colors")
	}
}
