package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kekule-games/roundrender/internal/replay"
)

func chartColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// totalsChart renders the per-turn strength line chart, one point per
// turn through the current frame's turn. Returns nil when no turns have
// been recorded.
func (c *Composer) totalsChart(stats FrameStats) (image.Image, error) {
	if len(stats.RedTotals) == 0 {
		return nil, nil
	}
	xs := make([]float64, len(stats.RedTotals))
	red := make([]float64, len(stats.RedTotals))
	blue := make([]float64, len(stats.BlueTotals))
	maxTotal := 1.0
	for i := range stats.RedTotals {
		xs[i] = float64(i + 1)
		red[i] = float64(stats.RedTotals[i])
		blue[i] = float64(stats.BlueTotals[i])
		maxTotal = math.Max(maxTotal, math.Max(red[i], blue[i]))
	}
	// go-chart refuses single-point series; duplicate the point one
	// turn out.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		red = append(red, red[0])
		blue = append(blue, blue[0])
	}

	bg := chartColor(c.theme.Background)
	fg := chartColor(c.theme.Line)
	graph := chart.Chart{
		Width:      chartW,
		Height:     chartH,
		Background: chart.Style{FillColor: bg},
		Canvas:     chart.Style{FillColor: bg},
		XAxis: chart.XAxis{
			Name:      "Turn",
			Style:     chart.Style{FontColor: fg, StrokeColor: fg},
			NameStyle: chart.Style{FontColor: fg},
			Range:     &chart.ContinuousRange{Min: 1, Max: xs[len(xs)-1]},
		},
		YAxis: chart.YAxis{
			Name:      "Strength",
			Style:     chart.Style{FontColor: fg, StrokeColor: fg},
			NameStyle: chart.Style{FontColor: fg},
			Range:     &chart.ContinuousRange{Min: 0, Max: maxTotal * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Blue",
				XValues: xs,
				YValues: blue,
				Style: chart.Style{
					StrokeColor: chartColor(FactionColor(replay.FactionBlue)),
					StrokeWidth: 2.5,
				},
			},
			chart.ContinuousSeries{
				Name:    "Red",
				XValues: xs,
				YValues: red,
				Style: chart.Style{
					StrokeColor: chartColor(FactionColor(replay.FactionRed)),
					StrokeWidth: 2.5,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// histogramChart renders this turn's per-token strengths as a bar
// chart, one bar per token, blue bars first. go-chart has no
// logarithmic axis, so bars carry log10(1+strength) values with the
// raw strength as the label. Returns nil for a turn with no tokens.
func (c *Composer) histogramChart(stats FrameStats) (image.Image, error) {
	fg := chartColor(c.theme.Line)

	var bars []chart.Value
	maxVal := 0.0
	appendBars := func(strengths []int, f replay.Faction) {
		fill := chartColor(FactionColor(f))
		for _, s := range strengths {
			v := math.Log10(1 + float64(s))
			maxVal = math.Max(maxVal, v)
			bars = append(bars, chart.Value{
				Value: v,
				Label: strconv.Itoa(s),
				Style: chart.Style{FillColor: fill, StrokeColor: fg, StrokeWidth: 1},
			})
		}
	}
	appendBars(stats.BlueStrengths, replay.FactionBlue)
	appendBars(stats.RedStrengths, replay.FactionRed)
	if len(bars) == 0 {
		return nil, nil
	}

	bg := chartColor(c.theme.Background)
	graph := chart.BarChart{
		Title:      "Turn strength (log scale)",
		TitleStyle: chart.Style{FontColor: fg},
		Width:      chartW,
		Height:     chartH,
		BarWidth:   Clamp(420/len(bars)-4, 4, 40),
		Background: chart.Style{FillColor: bg},
		Canvas:     chart.Style{FillColor: bg},
		XAxis:      chart.Style{FontColor: fg},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: fg, StrokeColor: fg},
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal + 0.5},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
