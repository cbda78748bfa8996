package trailgraph

import (
	"image"

	"github.com/voidshard/trailgraph/internal/encoding"
	"github.com/voidshard/trailgraph/internal/line"
)

// fine co-ords (within a block) where each octant's spoke leaves
var edgePoints = [8]image.Point{
	{2, 0}, {4, 0}, {4, 2}, {4, 4}, {2, 4}, {0, 4}, {0, 2}, {0, 0},
}

// FineMap is the fine trail grid of a window; every pixel is split into a
// 5x5 block of fine cells so trails can be drawn with sub pixel detail.
// Each window tile is held as a separate NRGBA image.
type FineMap struct {
	win   window
	tiles [WindowTiles][WindowTiles]*image.NRGBA
}

// newFineMap returns an empty fine map for tiles of the window within the world
func newFineMap(win window) *FineMap {
	f := &FineMap{win: win}
	for i := 0; i < WindowTiles; i++ {
		for j := 0; j < WindowTiles; j++ {
			if !win.tileExists(i, j) {
				continue
			}
			f.tiles[i][j] = image.NewNRGBA(image.Rect(0, 0, FineTileSize, FineTileSize))
		}
	}
	return f
}

// locate returns the tile & offset within the tile of a fine window point
func (f *FineMap) locate(p image.Point) (*image.NRGBA, image.Point) {
	if p.X < 0 || p.Y < 0 {
		return nil, p
	}
	i, j := p.X/FineTileSize, p.Y/FineTileSize
	if i >= WindowTiles || j >= WindowTiles {
		return nil, p
	}
	return f.tiles[i][j], image.Pt(p.X%FineTileSize, p.Y%FineTileSize)
}

// cell returns the fine cell at fine window co-ords
func (f *FineMap) cell(p image.Point) TrailCell {
	im, off := f.locate(p)
	if im == nil {
		return TrailCell{}
	}
	return UnpackCell(encoding.Pixel(im.Pix[im.PixOffset(off.X, off.Y):]))
}

// setCell writes the fine cell at fine window co-ords
func (f *FineMap) setCell(p image.Point, c TrailCell) {
	im, off := f.locate(p)
	if im == nil {
		return
	}
	encoding.PutPixel(im.Pix[im.PixOffset(off.X, off.Y):], c.Pack())
}

// mergeAt adds bits of tier t to the fine cell at p
func (f *FineMap) mergeAt(p image.Point, t Tier, m Mask) {
	c := f.cell(p)
	c.merge(t, m)
	f.setCell(p, c)
}

// link sets bits on both a & b (which must be neighbours) joining them
func (f *FineMap) link(a, b image.Point, t Tier) {
	step := b.Sub(a)
	d, ok := DirectionOf(step.X, step.Y)
	if !ok {
		return
	}
	f.mergeAt(a, t, MaskOf(d))
	f.mergeAt(b, t, MaskOf(d.Opposite()))
}

// blockOf returns the coarse (local) pixel a fine point belongs to
func blockOf(p image.Point) image.Point {
	return image.Pt(floorDiv(p.X, SubCells), floorDiv(p.Y, SubCells))
}

// Tile returns the fine tile at window offset (i, j), nil if the tile
// is outside the world.
func (f *FineMap) Tile(i, j int) *image.NRGBA {
	return f.tiles[i][j]
}

// render draws every coarse cell of the trail map into its fine block
func (f *FineMap) render(tm *TrailMap) {
	for y := 0; y < WindowSize; y++ {
		for x := 0; x < WindowSize; x++ {
			p := image.Pt(x, y)
			c := tm.cell(p)
			if c.Empty() {
				continue
			}
			f.drawBlock(p, c)
		}
	}
}

// drawBlock draws a spoke from the cell's hub to the edge of the block for
// each octant in use. On gate aligned cells the hub sits in the gate, so
// the spoke through the gate is just the hub itself & trails arriving
// through the wall are walked round the inside of the wall to the gate.
func (f *FineMap) drawBlock(px image.Point, c TrailCell) {
	origin := px.Mul(SubCells)
	hub := c.Hub()

	var gate *GateVariant
	if c.IsGateVariant() {
		gate, _ = variantByCode(int(c.Variant) - gateVariantBase)
	}

	for _, d := range c.Union().Directions() {
		t := c.TierAt(d)
		edge := edgePoints[d]

		path := line.PointsBetween(hub, edge)
		if gate != nil && d == gate.Side {
			path = []image.Point{hub}
		} else if gate != nil && gate.Strip.Has(d) {
			path = ringPath(hub, edge)
		}

		for i := 1; i < len(path); i++ {
			f.link(origin.Add(path[i-1]), origin.Add(path[i]), t)
		}
		f.mergeAt(origin.Add(path[len(path)-1]), t, MaskOf(d))
	}
}

// blockRing is the border of a fine block, clockwise from the top left
var blockRing = func() []image.Point {
	last := SubCells - 1
	ring := make([]image.Point, 0, 4*last)
	for i := 0; i < last; i++ {
		ring = append(ring, image.Pt(i, 0))
	}
	for i := 0; i < last; i++ {
		ring = append(ring, image.Pt(last, i))
	}
	for i := last; i > 0; i-- {
		ring = append(ring, image.Pt(i, last))
	}
	for i := last; i > 0; i-- {
		ring = append(ring, image.Pt(0, i))
	}
	return ring
}()

// ringIndex returns where p sits in blockRing, -1 if it's not on the border
func ringIndex(p image.Point) int {
	for i, r := range blockRing {
		if r == p {
			return i
		}
	}
	return -1
}

// ringPath returns the shorter way from a to b along the border of the
// block, clockwise on a tie. Points not on the border get a straight line.
func ringPath(a, b image.Point) []image.Point {
	ia, ib := ringIndex(a), ringIndex(b)
	if ia < 0 || ib < 0 {
		return line.PointsBetween(a, b)
	}

	n := len(blockRing)
	step := 1
	if cw := (ib - ia + n) % n; cw > n-cw {
		step = -1
	}

	path := []image.Point{a}
	for i := ia; i != ib; {
		i = (i + step + n) % n
		path = append(path, blockRing[i])
	}
	return path
}
