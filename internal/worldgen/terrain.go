package worldgen

import (
	"image"
	"math/rand"
)

// Terrain is a smooth random height map; heights are drawn on a coarse
// lattice & interpolated between.
type Terrain struct {
	bounds  image.Rectangle
	spacing int
	cols    int
	lattice []int
}

// NewTerrain builds a height map over bounds with heights in [0, maxHeight)
// picked every `spacing` pixels.
func NewTerrain(bounds image.Rectangle, seed int64, spacing, maxHeight int) *Terrain {
	if spacing < 1 {
		spacing = 1
	}
	if maxHeight < 1 {
		maxHeight = 1
	}

	cols := bounds.Dx()/spacing + 2
	rows := bounds.Dy()/spacing + 2

	rng := rand.New(rand.NewSource(seed))
	lattice := make([]int, cols*rows)
	for i := range lattice {
		lattice[i] = rng.Intn(maxHeight)
	}

	return &Terrain{bounds: bounds, spacing: spacing, cols: cols, lattice: lattice}
}

// Bounds of the whole terrain
func (t *Terrain) Bounds() image.Rectangle {
	return t.bounds
}

// HeightAt returns the (bilinear interpolated) height at x,y. Points
// outside the bounds are at height 0.
func (t *Terrain) HeightAt(x, y int) int {
	if !image.Pt(x, y).In(t.bounds) {
		return 0
	}
	lx, ly := x-t.bounds.Min.X, y-t.bounds.Min.Y
	gx, gy := lx/t.spacing, ly/t.spacing
	fx := float64(lx%t.spacing) / float64(t.spacing)
	fy := float64(ly%t.spacing) / float64(t.spacing)

	h00 := float64(t.at(gx, gy))
	h10 := float64(t.at(gx+1, gy))
	h01 := float64(t.at(gx, gy+1))
	h11 := float64(t.at(gx+1, gy+1))

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return int(top + (bottom-top)*fy + 0.5)
}

// at returns the lattice value at gx, gy
func (t *Terrain) at(gx, gy int) int {
	return t.lattice[gy*t.cols+gx]
}
