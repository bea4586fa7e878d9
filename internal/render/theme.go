package render

import (
	"image/color"

	"github.com/kekule-games/roundrender/internal/replay"
)

// Theme selects the frame's base and outline colors. The light theme
// draws black outlines on white; the dark theme swaps them.
type Theme struct {
	Name       string
	Dark       bool
	Background color.RGBA
	Line       color.RGBA
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// LightTheme is the default white-background theme.
func LightTheme() Theme {
	return Theme{Name: "light", Background: white, Line: black}
}

// DarkTheme swaps background and outline colors.
func DarkTheme() Theme {
	return Theme{Name: "dark", Dark: true, Background: black, Line: white}
}

// TokenColor derives a token's fill color from its strength. The
// intensity channel fades from 220 at strength 0 down to 0 at strength
// 20 and above; the faction channel stays saturated.
func TokenColor(t replay.Token) color.RGBA {
	intensity := uint8(Clamp(220-11*t.Strength, 0, 255))
	if t.Faction == replay.FactionBlue {
		return color.RGBA{R: intensity, G: intensity, B: 255, A: 255}
	}
	return color.RGBA{R: 255, G: intensity, B: intensity, A: 255}
}

// FactionColor is the saturated swatch color used for legends and
// chart series.
func FactionColor(f replay.Faction) color.RGBA {
	if f == replay.FactionBlue {
		return color.RGBA{B: 255, A: 255}
	}
	return color.RGBA{R: 255, A: 255}
}
