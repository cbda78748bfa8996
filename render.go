package trailgraph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"

	"github.com/voidshard/trailgraph/internal/line"
)

// ColourScheme defines how trail features should be coloured in debug
// images.
type ColourScheme struct {
	Background color.Color
	Tiers      map[Tier]color.Color
	Locations  color.Color
	Walled     color.Color
	Crossroads color.Color
	Signposts  color.Color
	Failed     color.Color
	TileEdges  color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.Wheat,
		Tiers: map[Tier]color.Color{
			TierRoad:  colornames.Dimgray,
			TierDirt:  colornames.Saddlebrown,
			TierTrack: colornames.Burlywood,
		},
		Locations:  colornames.Royalblue,
		Walled:     colornames.Crimson,
		Crossroads: colornames.Gold,
		Signposts:  colornames.Black,
		Failed:     colornames.Fuchsia,
		TileEdges:  colornames.Lightgray,
	}
}

// Save writes the raw (packed) trail map of the window to disk
func (m *TrailMap) Save(fpath string) error {
	return savePNG(fpath, m.im)
}

// CustomImage draws the window's trails, locations & signposts where each
// map pixel is a `scale` x `scale` square.
func (t *Trailgraph) CustomImage(scheme *ColourScheme, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	size := float64(scale)
	ctx := gg.NewContext(WindowSize*scale, WindowSize*scale)

	ctx.SetColor(scheme.Background)
	ctx.Clear()

	ctx.SetColor(scheme.TileEdges)
	ctx.SetLineWidth(1)
	for i := 1; i < WindowTiles; i++ {
		at := float64(i * TileSize * scale)
		ctx.DrawLine(at, 0, at, float64(WindowSize*scale))
		ctx.DrawLine(0, at, float64(WindowSize*scale), at)
	}
	ctx.Stroke()

	// edges we couldn't build, as a dotted straight line
	ctx.SetColor(scheme.Failed)
	for _, f := range t.Failed {
		from := t.tmap.win.toLocal(t.tmap.win.pixelAt(f.Edge.From))
		to := t.tmap.win.toLocal(t.tmap.win.pixelAt(f.Edge.To))
		for i, p := range line.PointsBetween(from, to) {
			if i%3 != 0 {
				continue
			}
			ctx.DrawRectangle(float64(p.X)*size, float64(p.Y)*size, size, size)
		}
	}
	ctx.Fill()

	ctx.SetLineWidth(maxfloat(1, size/3))
	ctx.SetLineCapRound()
	for y := 0; y < WindowSize; y++ {
		for x := 0; x < WindowSize; x++ {
			c := t.tmap.cell(image.Pt(x, y))
			if c.Empty() {
				continue
			}

			cx, cy := (float64(x)+0.5)*size, (float64(y)+0.5)*size
			for _, d := range c.Union().Directions() {
				col, ok := scheme.Tiers[c.TierAt(d)]
				if !ok {
					continue
				}
				v := d.Vector()
				ctx.SetColor(col)
				ctx.DrawLine(cx, cy, cx+float64(v.X)*size/2, cy+float64(v.Y)*size/2)
				ctx.Stroke()
			}

			if c.IsCrossRoad() {
				ctx.SetColor(scheme.Crossroads)
				ctx.DrawPoint(cx, cy, maxfloat(1, size/4))
				ctx.Fill()
			}
		}
	}

	for _, loc := range t.Locations {
		p := t.tmap.win.toLocal(loc.Position)
		col := scheme.Locations
		if loc.Walled {
			col = scheme.Walled
		}
		ctx.SetColor(col)
		ctx.DrawCircle((float64(p.X)+0.5)*size, (float64(p.Y)+0.5)*size, maxfloat(2, size))
		ctx.Fill()
	}

	ctx.SetColor(scheme.Signposts)
	for _, s := range t.Signposts {
		p := t.tmap.win.toLocal(s.Position)
		ctx.DrawRectangle(
			float64(p.X)*size+float64(s.Placement.X)*size/SubCells,
			float64(p.Y)*size+float64(s.Placement.Y)*size/SubCells,
			maxfloat(1, size/SubCells),
			maxfloat(1, size/SubCells),
		)
	}
	ctx.Fill()

	return ctx.Image()
}

// SaveAdv saves the window using the given scheme to disk.
// Essentially sugar around "CustomImage()" followed by writing out a PNG.
func (t *Trailgraph) SaveAdv(fpath string, scheme *ColourScheme, scale int) error {
	return gg.NewContextForImage(t.CustomImage(scheme, scale)).SavePNG(fpath)
}

// FineImage colours a fine tile (as returned by FineMap.Tile or a Store)
// & scales it up by `scale`. Each fine cell takes the colour of the
// strongest tier passing through it.
func FineImage(fine *image.NRGBA, scheme *ColourScheme, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}

	b := fine.Bounds()
	im := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := fine.NRGBAAt(x, y)
			c := TrailCell{Road: px.R, Dirt: px.G, Track: px.B, Variant: px.A}

			col := scheme.Background
			for _, t := range AllTiers {
				if c.Tier(t) == 0 {
					continue
				}
				if tc, ok := scheme.Tiers[t]; ok {
					col = tc
				}
				break
			}
			im.Set(x, y, col)
		}
	}

	if scale == 1 {
		return im
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), im, b, xdraw.Src, nil)
	return out
}

// maxfloat returns the highest of two floats
func maxfloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
