package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/kekule-games/roundrender/internal/replay"
)

// cellSpan is the logical size of one token cell.
const cellSpan = 10

// cellMargin centers the 100-cell token area inside the 101-cell board.
const cellMargin = 5

// topInset shrinks a block's top face inside its bottom face, and
// blockLift raises it in screen space to fake height.
const (
	topInset  = 2
	blockLift = 14
)

// Chart overlay geometry. Both charts render at chartW x chartH and are
// pasted at fixed frame offsets.
const (
	chartW, chartH  = 520, 380
	totalsChartX    = 70
	totalsChartY    = 650
	histogramChartX = 1330
	histogramChartY = 650
)

// Legend carries the display metadata overlaid on every frame.
// Player1 commands the blue faction, Player2 the red faction.
type Legend struct {
	Title   string
	Player1 string
	Player2 string
}

// FrameStats is the immutable statistics snapshot for one frame: the
// per-turn totals through this frame's turn and the turn's own
// strength histogram. Built once in the sequential prefix pass, read
// concurrently by compositing workers.
type FrameStats struct {
	RedTotals     []int // one entry per turn, index 0 = turn 1
	BlueTotals    []int
	RedStrengths  []int // this turn only
	BlueStrengths []int
	RedCount      int
	BlueCount     int
}

// Composer renders one full-resolution frame per turn.
type Composer struct {
	theme     Theme
	titleFace ggtext.Face
	labelFace ggtext.Face
}

// NewComposer prepares a composer for the given theme, loading the
// embedded Go fonts used for overlays.
func NewComposer(theme Theme) (*Composer, error) {
	regular, err := ggtext.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := ggtext.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Composer{
		theme:     theme,
		titleFace: bold.Face(34),
		labelFace: regular.Face(26),
	}, nil
}

// Theme returns the composer's active theme.
func (c *Composer) Theme() Theme {
	return c.theme
}

// ComposeFrame renders the full frame for one turn: themed background,
// projected board and grid, side panels, token blocks, chart overlays,
// and the text legend. Safe for concurrent use, one call per frame.
func (c *Composer) ComposeFrame(turn *replay.Turn, stats FrameStats, legend Legend) (image.Image, error) {
	dc := gg.NewContext(FrameWidth, FrameHeight)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(c.theme.Background))
	c.drawBoard(dc)
	c.drawPanels(dc)
	c.drawTokens(dc, turn.Tokens)
	if err := c.overlayCharts(dc, stats); err != nil {
		return nil, err
	}
	c.drawLegend(dc, turn, stats, legend)

	return dc.Image(), nil
}

type point struct {
	x, y float64
}

// quad holds a projected cell's corners in (0,0), (+x,0), (+x,+y),
// (0,+y) order: screen top, right, bottom, left.
type quad [4]point

// cellQuad projects the corners of a token's cell, optionally inset on
// every side and lifted upward in screen space.
func cellQuad(t replay.Token, inset float64, lift float64) quad {
	x0 := float64(t.X*cellSpan+cellMargin) + inset
	y0 := float64(t.Y*cellSpan+cellMargin) + inset
	x1 := float64(t.X*cellSpan+cellMargin+cellSpan) - inset
	y1 := float64(t.Y*cellSpan+cellMargin+cellSpan) - inset

	var q quad
	for i, corner := range [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}} {
		sx, sy := Project(corner[0], corner[1])
		q[i] = point{x: float64(sx), y: float64(sy) - lift}
	}
	return q
}

func (c *Composer) drawBoard(dc *gg.Context) {
	dc.SetColor(c.theme.Line)

	// Interior grid lines every cell, both axes.
	dc.SetLineWidth(1)
	for i := cellSpan; i < BoardSpan; i += cellSpan {
		x1, y1 := Project(float64(i), 0)
		x2, y2 := Project(float64(i), BoardSpan)
		dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
		x1, y1 = Project(0, float64(i))
		x2, y2 = Project(BoardSpan, float64(i))
		dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	}
	dc.Stroke()

	// Board outline over the full logical range.
	dc.SetLineWidth(3)
	var outline quad
	for i, corner := range [4][2]float64{{0, 0}, {BoardSpan, 0}, {BoardSpan, BoardSpan}, {0, BoardSpan}} {
		sx, sy := Project(corner[0], corner[1])
		outline[i] = point{x: float64(sx), y: float64(sy)}
	}
	pathPoly(dc, outline[:])
	dc.Stroke()
}

// drawPanels draws the two fixed decorative trapezoids framing the
// board.
func (c *Composer) drawPanels(dc *gg.Context) {
	left := []point{{20, 80}, {250, 190}, {250, 430}, {20, 540}}
	right := []point{{1900, 80}, {1670, 190}, {1670, 430}, {1900, 540}}

	dc.SetColor(c.theme.Line)
	dc.SetLineWidth(3)
	pathPoly(dc, left)
	dc.Stroke()
	pathPoly(dc, right)
	dc.Stroke()
}

// drawTokens draws every token's block sprite in the fixed global
// order: all bottom edges, then all fill faces, then all outlined top
// faces. This is a draw-order approximation, not depth-sorted
// rendering; it holds up because tokens sit on a regular grid and
// never truly overlap.
func (c *Composer) drawTokens(dc *gg.Context, tokens []replay.Token) {
	// Pass 1: bottom edges.
	dc.SetColor(c.theme.Line)
	dc.SetLineWidth(1)
	for _, t := range tokens {
		q := cellQuad(t, 0, 0)
		pathPoly(dc, q[:])
	}
	dc.Stroke()

	// Pass 2: fill faces joining each bottom face to its lifted top.
	for _, t := range tokens {
		b := cellQuad(t, topInset, 0)
		top := cellQuad(t, topInset, blockLift)
		face := []point{b[3], b[2], b[1], top[1], top[2], top[3]}
		dc.SetColor(TokenColor(t))
		pathPoly(dc, face)
		dc.Fill()
	}

	// Pass 3: top faces with outlines.
	for _, t := range tokens {
		top := cellQuad(t, topInset, blockLift)
		dc.SetColor(TokenColor(t))
		pathPoly(dc, top[:])
		dc.FillPreserve()
		dc.SetColor(c.theme.Line)
		dc.Stroke()
	}
}

// overlayCharts renders the running-totals line chart and the per-turn
// histogram, pasting both at their fixed frame offsets.
func (c *Composer) overlayCharts(dc *gg.Context, stats FrameStats) error {
	totals, err := c.totalsChart(stats)
	if err != nil {
		return fmt.Errorf("totals chart: %w", err)
	}
	if totals != nil {
		dc.DrawImageEx(gg.ImageBufFromImage(totals), gg.DrawImageOptions{
			X: totalsChartX, Y: totalsChartY, Opacity: 1.0,
		})
	}

	hist, err := c.histogramChart(stats)
	if err != nil {
		return fmt.Errorf("histogram chart: %w", err)
	}
	if hist != nil {
		dc.DrawImageEx(gg.ImageBufFromImage(hist), gg.DrawImageOptions{
			X: histogramChartX, Y: histogramChartY, Opacity: 1.0,
		})
	}
	return nil
}

func (c *Composer) drawLegend(dc *gg.Context, turn *replay.Turn, stats FrameStats, legend Legend) {
	dc.SetColor(c.theme.Line)
	dc.SetFont(c.titleFace)
	if legend.Title != "" {
		dc.DrawStringAnchored(legend.Title, FrameWidth/2, 46, 0.5, 0.5)
	}
	dc.DrawStringAnchored(fmt.Sprintf("Turn %d", turn.Number), FrameWidth/2, 92, 0.5, 0.5)

	// Player legend with faction swatches, inside the left panel.
	c.drawSwatchLine(dc, 60, 250, FactionColor(replay.FactionBlue), legend.Player1)
	c.drawSwatchLine(dc, 60, 300, FactionColor(replay.FactionRed), legend.Player2)

	// Token counts, inside the right panel.
	dc.SetFont(c.labelFace)
	dc.SetColor(c.theme.Line)
	dc.DrawStringAnchored(fmt.Sprintf("Blue tokens: %d", stats.BlueCount), 1880, 250, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Red tokens: %d", stats.RedCount), 1880, 300, 1, 0.5)
}

func (c *Composer) drawSwatchLine(dc *gg.Context, x, y float64, swatch color.RGBA, name string) {
	dc.SetColor(swatch)
	dc.DrawRectangle(x, y-11, 22, 22)
	dc.Fill()
	dc.SetColor(c.theme.Line)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y-11, 22, 22)
	dc.Stroke()
	dc.SetFont(c.labelFace)
	dc.DrawStringAnchored(name, x+32, y, 0, 0.5)
}

func pathPoly(dc *gg.Context, pts []point) {
	dc.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		dc.LineTo(p.x, p.y)
	}
	dc.ClosePath()
}
