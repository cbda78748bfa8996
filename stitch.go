package trailgraph

import (
	"image"
)

// the four orientations blocks are stitched in
var stitchSides = []Direction{North, East, South, West}

// borderCell returns the k'th cell (0-4) of a block's border facing o
func borderCell(o Direction, k int) image.Point {
	switch o {
	case North:
		return image.Pt(k, 0)
	case South:
		return image.Pt(k, SubCells-1)
	case West:
		return image.Pt(0, k)
	}
	return image.Pt(SubCells-1, k)
}

// along returns the unit step running along the border facing o
func along(o Direction) image.Point {
	if o == North || o == South {
		return image.Pt(1, 0)
	}
	return image.Pt(0, 1)
}

// stitchResult counts what stitching changed
type stitchResult struct {
	Joined     int // joined diagonally to an existing neighbour cell
	Redirected int // stub added to reach the neighbour's trail
	Pruned     int // no trail to meet; the exit was removed
}

// stitch walks every block with trails & makes sure each cell on a block
// border that points out of the block meets a cell in the neighbouring
// block pointing back. Mismatches come from blocks with different hubs
// (crossroads, gates).
//
// Exits that lead nowhere are removed from both the fine & coarse maps.
func (f *FineMap) stitch(tm *TrailMap) stitchResult {
	res := stitchResult{}

	for y := 0; y < WindowSize; y++ {
		for x := 0; x < WindowSize; x++ {
			block := image.Pt(x, y)
			if tm.cell(block).Empty() {
				continue
			}
			for _, o := range stitchSides {
				f.stitchSide(tm, block, o, &res)
			}
		}
	}

	return res
}

// stitchSide checks the border of the block facing o
func (f *FineMap) stitchSide(tm *TrailMap, block image.Point, o Direction, res *stitchResult) {
	neighbour := block.Add(o.Vector())
	if !tm.win.inBounds(neighbour) {
		return // nothing to stitch to
	}

	origin := block.Mul(SubCells)
	for k := 0; k < SubCells; k++ {
		c := origin.Add(borderCell(o, k))
		for _, t := range AllTiers {
			if !f.cell(c).Tier(t).Has(o) {
				continue
			}
			if f.stitchCell(block, neighbour, c, o, t, res) {
				continue
			}
			// nothing over there at all
			cell := f.cell(c)
			cell.setTier(t, cell.Tier(t).Without(o))
			f.setCell(c, cell)
			tm.removeBit(block, o)
			res.Pruned++
		}
	}
}

// stitchCell joins the border cell c (with tier t exit o) to the neighbour
// block. Returns false if the neighbour block has nothing to join to.
func (f *FineMap) stitchCell(block, neighbour, c image.Point, o Direction, t Tier, res *stitchResult) bool {
	perp := along(o)
	across := c.Add(o.Vector())

	// the cell straight across already points back
	if f.cell(across).Union().Has(o.Opposite()) {
		return true
	}

	// the next cell along this border already crosses over; join that
	// rather than adding a second crossing
	for _, j := range []int{-1, 1} {
		m := c.Add(perp.Mul(j))
		if blockOf(m) != block || !f.cell(m).Union().Has(o) {
			continue
		}
		if !f.cell(m.Add(o.Vector())).Union().Has(o.Opposite()) {
			continue
		}

		cell := f.cell(c)
		cell.setTier(t, cell.Tier(t).Without(o))
		f.setCell(c, cell)
		f.link(c, m, t)
		res.Joined++
		return true
	}

	// a cell diagonally across points back; swap the straight exit for a
	// diagonal one
	for _, j := range []int{-1, 1} {
		n := across.Add(perp.Mul(j))
		if blockOf(n) != neighbour {
			continue
		}
		step := n.Sub(c)
		d, _ := DirectionOf(step.X, step.Y)
		if !f.cell(n).Union().Has(d.Opposite()) {
			continue
		}

		cell := f.cell(c)
		cell.setTier(t, cell.Tier(t).Without(o))
		cell.merge(t, MaskOf(d))
		f.setCell(c, cell)
		res.Joined++
		return true
	}

	// find the nearest cell with any trail on the neighbour's facing border
	for dist := 0; dist < SubCells; dist++ {
		for _, j := range []int{-dist, dist} {
			n := across.Add(perp.Mul(j))
			if blockOf(n) != neighbour || f.cell(n).Empty() {
				continue
			}

			// meet the exit & walk along the border to the trail
			f.mergeAt(across, t, MaskOf(o.Opposite()))
			step := perp.Mul(sign(j))
			for p := across; p != n; p = p.Add(step) {
				f.link(p, p.Add(step), t)
			}
			res.Redirected++
			return true
		}
	}

	return false
}
