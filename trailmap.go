package trailgraph

import (
	"image"

	"github.com/voidshard/trailgraph/internal/encoding"
)

const (
	// local co-ords of the default hub (centre) of a fine block
	hubCentre = SubCells / 2

	// variants above this are gate alignments, at or below are crossroads
	gateVariantBase = SubCells * SubCells
)

// TrailCell is the trail information of a single pixel; a direction
// bitmask for each tier & a variant used for crossroads & gate alignment.
//
// Packed as a single uint32 (and one 4 channel pixel)
//
//	road + dirt*256 + track*65536 + variant*16777216
type TrailCell struct {
	Road    uint8
	Dirt    uint8
	Track   uint8
	Variant uint8
}

// Pack returns the packed value of the cell
func (c TrailCell) Pack() uint32 {
	return encoding.Pack4(c.Road, c.Dirt, c.Track, c.Variant)
}

// UnpackCell is the inverse of TrailCell.Pack
func UnpackCell(in uint32) TrailCell {
	r, d, t, v := encoding.Unpack4(in)
	return TrailCell{Road: r, Dirt: d, Track: t, Variant: v}
}

// Tier returns the direction mask of the given tier
func (c TrailCell) Tier(t Tier) Mask {
	switch t {
	case TierRoad:
		return Mask(c.Road)
	case TierDirt:
		return Mask(c.Dirt)
	case TierTrack:
		return Mask(c.Track)
	}
	return 0
}

// setTier sets the direction mask of the given tier
func (c *TrailCell) setTier(t Tier, m Mask) {
	switch t {
	case TierRoad:
		c.Road = uint8(m)
	case TierDirt:
		c.Dirt = uint8(m)
	case TierTrack:
		c.Track = uint8(m)
	}
}

// Union returns the combined road|dirt|track mask
func (c TrailCell) Union() Mask {
	return Mask(c.Road | c.Dirt | c.Track)
}

// Empty returns if no trail passes through the cell
func (c TrailCell) Empty() bool {
	return c.Union() == 0
}

// TierAt returns the tier to render in the given direction; where more
// than one tier has the bit set the strongest wins.
func (c TrailCell) TierAt(d Direction) Tier {
	for _, t := range AllTiers {
		if c.Tier(t).Has(d) {
			return t
		}
	}
	return TierNone
}

// IsCrossRoad returns if three or more octants are in use
func (c TrailCell) IsCrossRoad() bool {
	return IsCrossRoad(c.Union())
}

// merge adds the octants in m to tier t. Octants already owned by a
// stronger tier are left alone, octants added here are removed from weaker
// tiers so each octant has a single tier.
func (c *TrailCell) merge(t Tier, m Mask) {
	for _, d := range m.Directions() {
		owner := c.TierAt(d)
		if owner != TierNone && owner < t {
			continue
		}
		for _, other := range AllTiers {
			if other > t {
				c.setTier(other, c.Tier(other).Without(d))
			}
		}
		c.setTier(t, c.Tier(t).With(d))
	}
}

// clear removes the octant from every tier
func (c *TrailCell) clear(d Direction) {
	for _, t := range AllTiers {
		c.setTier(t, c.Tier(t).Without(d))
	}
}

// IsGateVariant returns if the variant encodes a gate alignment
func (c TrailCell) IsGateVariant() bool {
	return c.Variant > gateVariantBase
}

// Hub returns the fine (5x5) co-ords where the cell's trails meet.
func (c TrailCell) Hub() image.Point {
	switch {
	case c.Variant == 0:
		return image.Pt(hubCentre, hubCentre)
	case c.Variant <= gateVariantBase:
		i := int(c.Variant) - 1
		return image.Pt(i%SubCells, i/SubCells)
	}
	v, ok := variantByCode(int(c.Variant) - gateVariantBase)
	if !ok {
		return image.Pt(hubCentre, hubCentre)
	}
	return v.Hub
}

// crossroadVariant returns the variant of a crossroad whose hub sits at
// (x, y) within the fine block
func crossroadVariant(x, y int) uint8 {
	return uint8(y*SubCells+x) + 1
}

// crossroadHub returns where the hub of a crossroad at world pixel p sits
// within its fine block; the pixel's position within its 5x5 sub-tile.
// Derived from world co-ords so every window agrees.
func crossroadHub(p image.Point) image.Point {
	return image.Pt(p.X-floorDiv(p.X, SubCells)*SubCells, p.Y-floorDiv(p.Y, SubCells)*SubCells)
}

// CellKind distinguishes open trail cells from those on a location
type CellKind uint8

const (
	KindOpen CellKind = iota
	KindInternal
	KindWalledInternal
)

// TrailMap is the coarse trail grid of a window; one TrailCell per pixel
// held in an NRGBA image (R=road, G=dirt, B=track, A=variant).
type TrailMap struct {
	win window
	im  *image.NRGBA

	// kinds of cells that sit on locations, by local index
	kinds map[int]CellKind

	// destination names by direction, recorded as trails are merged
	names map[int]*[8][]string
}

// newTrailMap returns an empty map for the window
func newTrailMap(win window) *TrailMap {
	return &TrailMap{
		win:   win,
		im:    image.NewNRGBA(image.Rect(0, 0, WindowSize, WindowSize)),
		kinds: map[int]CellKind{},
		names: map[int]*[8][]string{},
	}
}

// index returns the key for the local point
func (m *TrailMap) index(p image.Point) int {
	return p.Y*WindowSize + p.X
}

// cell returns the cell at local co-ords, out of bounds cells are empty
func (m *TrailMap) cell(p image.Point) TrailCell {
	if !p.In(m.im.Rect) {
		return TrailCell{}
	}
	return UnpackCell(encoding.Pixel(m.im.Pix[m.im.PixOffset(p.X, p.Y):]))
}

// setCell writes the cell at local co-ords
func (m *TrailMap) setCell(p image.Point, c TrailCell) {
	if !p.In(m.im.Rect) {
		return
	}
	encoding.PutPixel(m.im.Pix[m.im.PixOffset(p.X, p.Y):], c.Pack())
}

// At returns the cell at the given world pixel
func (m *TrailMap) At(x, y int) TrailCell {
	return m.cell(m.win.toLocal(image.Pt(x, y)))
}

// Kind returns the kind of the cell at the given world pixel
func (m *TrailMap) Kind(x, y int) CellKind {
	k, _ := m.kinds[m.index(m.win.toLocal(image.Pt(x, y)))]
	return k
}

// isTrail returns if any trail passes through the local point
func (m *TrailMap) isTrail(p image.Point) bool {
	return !m.cell(p).Empty()
}

// MergeTrail adds a path (in local co-ords) to the map with the given tier.
// Each cell gets the bits pointing to the previous & next step; endpoints
// only get the bit facing along the path. fromName & toName are recorded
// against the directions leading to them for later use by signposts.
func (m *TrailMap) MergeTrail(path []image.Point, tier Tier, fromName, toName string) {
	for i, p := range path {
		bits := Mask(0)
		var back, ahead Direction
		hasBack, hasAhead := false, false

		if i > 0 {
			prev := path[i-1].Sub(p)
			back, hasBack = DirectionOf(prev.X, prev.Y)
			if hasBack {
				bits = bits.With(back)
			}
		}
		if i < len(path)-1 {
			next := path[i+1].Sub(p)
			ahead, hasAhead = DirectionOf(next.X, next.Y)
			if hasAhead {
				bits = bits.With(ahead)
			}
		}
		if bits == 0 {
			continue
		}

		c := m.cell(p)
		c.merge(tier, bits)
		m.setCell(p, c)

		if hasBack {
			m.recordName(p, back, fromName)
		}
		if hasAhead {
			m.recordName(p, ahead, toName)
		}

		m.updateVariant(p)
	}
}

// recordName remembers that `name` can be reached via direction d from p
func (m *TrailMap) recordName(p image.Point, d Direction, name string) {
	if name == "" {
		return
	}
	i := m.index(p)
	slots, ok := m.names[i]
	if !ok {
		slots = &[8][]string{}
		m.names[i] = slots
	}
	for _, existing := range slots[d] {
		if existing == name {
			return
		}
	}
	slots[d] = append(slots[d], name)
}

// updateVariant sets or clears the crossroad variant after the cell's bits
// have changed. Gate variants are left alone.
func (m *TrailMap) updateVariant(p image.Point) {
	c := m.cell(p)
	if c.IsGateVariant() {
		return
	}

	if c.IsCrossRoad() {
		hub := crossroadHub(m.win.toWorld(p))
		c.Variant = crossroadVariant(hub.X, hub.Y)
	} else {
		c.Variant = 0
	}
	m.setCell(p, c)
}

// markLocation records that the local point is a location's footprint
func (m *TrailMap) markLocation(p image.Point, walled bool) {
	kind := KindInternal
	if walled {
		kind = KindWalledInternal
	}
	m.kinds[m.index(p)] = kind
}

// removeBit clears an octant from the cell at p (all tiers) & fixes up the
// variant.
func (m *TrailMap) removeBit(p image.Point, d Direction) {
	c := m.cell(p)
	c.clear(d)
	m.setCell(p, c)
	m.updateVariant(p)
}

// crossroads returns the local co-ords of all crossroads in the given area
func (m *TrailMap) crossroads(area image.Rectangle) []image.Point {
	found := []image.Point{}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			p := image.Pt(x, y)
			if m.cell(p).IsCrossRoad() {
				found = append(found, p)
			}
		}
	}
	return found
}

// loadTile copies a stored tile into the window at offset (i, j)
func (m *TrailMap) loadTile(i, j int, im *image.NRGBA) {
	area := m.win.tileArea(i, j)
	copyRect(m.im, area.Min, im, im.Bounds())
}

// Tile returns a copy of the window tile at offset (i, j), where (1,1) is
// the centre tile.
func (m *TrailMap) Tile(i, j int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	copyRect(out, image.ZP, m.im, m.win.tileArea(i, j))
	return out
}
