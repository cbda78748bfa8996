package trailgraph

import (
	"image"
)

// window describes the 3x3 tile area worked on in a single run.
// Internally everything works in window local pixel co-ords (0 - WindowSize),
// the window converts to & from world co-ords.
type window struct {
	tileX, tileY int
	origin       image.Point
	world        image.Rectangle
}

// newWindow returns the window centred on the given tile
func newWindow(tileX, tileY int, world image.Rectangle) window {
	return window{
		tileX:  tileX,
		tileY:  tileY,
		origin: image.Pt((tileX-1)*TileSize, (tileY-1)*TileSize),
		world:  world,
	}
}

// toLocal converts a world pixel to window co-ords
func (w window) toLocal(p image.Point) image.Point {
	return p.Sub(w.origin)
}

// toWorld converts window co-ords to a world pixel
func (w window) toWorld(p image.Point) image.Point {
	return p.Add(w.origin)
}

// inBounds returns if the local point is inside both the window & the world
func (w window) inBounds(p image.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= WindowSize || p.Y >= WindowSize {
		return false
	}
	return w.toWorld(p).In(w.world)
}

// centre returns the local area of the centre tile
func (w window) centre() image.Rectangle {
	return image.Rect(TileSize, TileSize, 2*TileSize, 2*TileSize)
}

// pixelID numbers a world pixel, bijective within the world bounds
func (w window) pixelID(p image.Point) int {
	return (p.Y-w.world.Min.Y)*w.world.Dx() + (p.X - w.world.Min.X)
}

// pixelAt is the inverse of pixelID
func (w window) pixelAt(id int) image.Point {
	width := w.world.Dx()
	return image.Pt(id%width+w.world.Min.X, id/width+w.world.Min.Y)
}

// tileArea returns the local area of the tile at offset (i, j) within the
// window, where (0,0) is the top left & (1,1) the centre.
func (w window) tileArea(i, j int) image.Rectangle {
	return image.Rect(i*TileSize, j*TileSize, (i+1)*TileSize, (j+1)*TileSize)
}

// tileCoord returns the world tile co-ords of the tile at offset (i, j)
func (w window) tileCoord(i, j int) (int, int) {
	return w.tileX - 1 + i, w.tileY - 1 + j
}

// tileExists returns if the tile at offset (i, j) overlaps the world
func (w window) tileExists(i, j int) bool {
	area := w.tileArea(i, j).Add(w.origin)
	return area.Overlaps(w.world)
}

// tileStitched returns if every side of the tile at offset (i, j) faces
// either another tile of the window or the edge of the world; only then
// are all of its borders stitched.
func (w window) tileStitched(i, j int) bool {
	for _, d := range stitchSides {
		v := d.Vector()
		ni, nj := i+v.X, j+v.Y
		if ni >= 0 && nj >= 0 && ni < WindowTiles && nj < WindowTiles {
			continue
		}
		if w.tileExists(ni, nj) {
			return false
		}
	}
	return true
}

// copyRect copies the pixels of sr in src to dst starting at dp. Both images
// must be NRGBA so values are copied bit for bit (no alpha premultiplication).
func copyRect(dst *image.NRGBA, dp image.Point, src *image.NRGBA, sr image.Rectangle) {
	sr = sr.Intersect(src.Bounds())
	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		dy := dp.Y + y - sr.Min.Y
		if dy < dst.Rect.Min.Y || dy >= dst.Rect.Max.Y {
			continue
		}
		so := src.PixOffset(sr.Min.X, y)
		do := dst.PixOffset(dp.X, dy)
		copy(dst.Pix[do:do+sr.Dx()*4], src.Pix[so:so+sr.Dx()*4])
	}
}
