// Package render turns parsed turns into full-resolution video frames:
// an oblique projection of the board, per-token block sprites, and the
// running-statistics overlay.
package render

import "math"

// Frame dimensions. Every composed frame is exactly this size.
const (
	FrameWidth  = 1920
	FrameHeight = 1080
)

// BoardSpan is the logical extent of the board in projection units:
// 101 cells of 10 units each, plus a 1-unit margin folded into the
// outermost cell.
const BoardSpan = 1010

// originX centers the projected board horizontally.
const originX = 960

// Deterministic oblique-projection constants. Derived once from the
// 30-degree viewing angle so every drawing call projects identically.
var (
	cos30 = math.Cos(30 * math.Pi / 180)
	sin30 = math.Sin(30 * math.Pi / 180)
)

// Project maps logical board coordinates to oblique screen
// coordinates, truncated to integers. Pure and stateless: identical
// inputs always produce identical outputs.
func Project(x, y float64) (sx, sy int) {
	return int(originX + cos30*x - cos30*y), int(sin30*x + sin30*y)
}

// Clamp limits n to the inclusive range [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
