package render

import "testing"

func TestProject_FixedPoints(t *testing.T) {
	cases := []struct {
		x, y         float64
		wantX, wantY int
	}{
		{0, 0, 960, 0},
		{0, 1000, 93, 499},
		{1000, 1000, 960, 999},
		{1000, 0, 1826, 499},
	}
	for _, c := range cases {
		gotX, gotY := Project(c.x, c.y)
		if gotX != c.wantX || gotY != c.wantY {
			t.Fatalf("Project(%.0f,%.0f) = (%d,%d), want (%d,%d)",
				c.x, c.y, gotX, gotY, c.wantX, c.wantY)
		}
	}
}

func TestProject_Deterministic(t *testing.T) {
	for i := 0; i < 1010; i += 7 {
		x1, y1 := Project(float64(i), float64(1010-i))
		x2, y2 := Project(float64(i), float64(1010-i))
		if x1 != x2 || y1 != y2 {
			t.Fatalf("projection of (%d,%d) is not reproducible", i, 1010-i)
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		n, lo, hi, want int
	}{
		{-5, 0, 255, 0},
		{300, 0, 255, 255},
		{42, 0, 255, 42},
		{0, 0, 255, 0},
		{255, 0, 255, 255},
	}
	for _, c := range cases {
		if got := Clamp(c.n, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.n, c.lo, c.hi, got, c.want)
		}
	}
}
