package trailgraph

import (
	"bytes"
	"image"
	"image/png"
	"io/ioutil"
	"math"
)

// heights not yet read from the terrain
const heightUnknown = math.MinInt32

// calculateDist standard pythag.
func calculateDist(ax, ay, bx, by int) float64 {
	return math.Sqrt(math.Pow(float64(ax-bx), 2) + math.Pow(float64(ay-by), 2))
}

// distSq returns the squared distance between two points
func distSq(a, b image.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// absint returns the absolute value of i
func absint(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// clampint returns i limited to [lo, hi]
func clampint(i, lo, hi int) int {
	if i < lo {
		return lo
	} else if i > hi {
		return hi
	}
	return i
}

// floorDiv divides rounding towards negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, buff.Bytes(), 0644)
}
