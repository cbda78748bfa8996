package line

import (
	"image"
)

// PointsBetween returns all points on a line from a to b inclusive.
// Unlike a plotter the order is kept; the first point is always `a` and
// the last `b`, with every step moving to one of the 8 neighbouring points.
func PointsBetween(a, b image.Point) []image.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)

	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	pts := make([]image.Point, 0, maxint(dx, -dy)+1)
	e := dx + dy
	x, y := a.X, a.Y
	for {
		pts = append(pts, image.Pt(x, y))
		if x == b.X && y == b.Y {
			return pts
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// abs returns the absolute value of i
func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// maxint returns the highest of two ints
func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}
