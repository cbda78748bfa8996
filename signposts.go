package trailgraph

import (
	"image"
	"math/rand"
	"reflect"
)

// Signpost lists the destinations reachable down each trail leaving a
// crossroad.
type Signpost struct {
	// Key is unique per crossroad hub (see SignpostKey)
	Key uint64

	// world pixel of the crossroad
	Position image.Point

	// fine co-ords (within the pixel) of the crossroad hub
	Hub image.Point

	// fine co-ords (within the pixel) the sign itself stands on
	Placement image.Point

	// destination names by direction, indexed by Direction
	Directions [8][]string
}

// SignpostKey returns the key of the signpost at the given pixel & hub
func SignpostKey(pixelID int, hub image.Point) uint64 {
	return uint64(pixelID)*uint64(SubCells*SubCells) + uint64(hub.Y*SubCells+hub.X)
}

// Tile returns the world tile co-ords the signpost is in
func (s *Signpost) Tile() (int, int) {
	return floorDiv(s.Position.X, TileSize), floorDiv(s.Position.Y, TileSize)
}

// buildSignposts creates a signpost for every crossroad in the window that
// had trails routed through it this run. Crossroads inside walled locations
// don't get signs.
func (g *generator) buildSignposts() []*Signpost {
	posts := []*Signpost{}

	for _, p := range g.tmap.crossroads(image.Rect(0, 0, WindowSize, WindowSize)) {
		if !g.win.inBounds(p) {
			continue
		}
		if g.tmap.kinds[g.tmap.index(p)] == KindWalledInternal {
			continue
		}
		names, ok := g.tmap.names[g.tmap.index(p)]
		if !ok {
			continue // untouched this run
		}

		c := g.tmap.cell(p)
		world := g.win.toWorld(p)
		hub := c.Hub()
		key := SignpostKey(g.win.pixelID(world), hub)

		rng := rand.New(rand.NewSource(g.cfg.Seed ^ int64(key)))
		posts = append(posts, &Signpost{
			Key:        key,
			Position:   world,
			Hub:        hub,
			Placement:  placeSign(hub, c.Union(), rng),
			Directions: redistribute(*names, c.Union()),
		})
	}

	g.Stats.Signposts = len(posts)
	return posts
}

// redistribute moves names recorded against directions that are no longer
// active to the nearest active direction. Nearer octants are tried first,
// clockwise before anti-clockwise. Names already present aren't repeated.
func redistribute(slots [8][]string, active Mask) [8][]string {
	out := [8][]string{}
	for _, d := range AllDirections {
		if active.Has(d) {
			out[d] = appendUnique(out[d], slots[d]...)
		}
	}

	for _, d := range AllDirections {
		if active.Has(d) || len(slots[d]) == 0 {
			continue
		}
		target, ok := nearestActive(d, active)
		if !ok {
			continue
		}
		out[target] = appendUnique(out[target], slots[d]...)
	}

	return out
}

// nearestActive returns the closest direction to d set in active
func nearestActive(d Direction, active Mask) (Direction, bool) {
	for n := 1; n <= 4; n++ {
		if cw := d.Rotate(n); active.Has(cw) {
			return cw, true
		}
		if acw := d.Rotate(-n); active.Has(acw) {
			return acw, true
		}
	}
	return d, false
}

// appendUnique appends names not already in the list, keeping order
func appendUnique(to []string, names ...string) []string {
	for _, name := range names {
		found := false
		for _, existing := range to {
			if existing == name {
				found = true
				break
			}
		}
		if !found {
			to = append(to, name)
		}
	}
	return to
}

// placeSign picks a fine cell next to the hub in a direction no trail uses.
// If every direction is in use the sign stands on the hub.
func placeSign(hub image.Point, active Mask, rng *rand.Rand) image.Point {
	free := []Direction{}
	for _, d := range AllDirections {
		if !active.Has(d) {
			free = append(free, d)
		}
	}
	if len(free) == 0 {
		return hub
	}

	p := hub.Add(free[rng.Intn(len(free))].Vector())
	return image.Pt(clampint(p.X, 0, SubCells-1), clampint(p.Y, 0, SubCells-1))
}

// mergeSignposts adds posts to existing. Posts whose key is already taken by
// a different signpost are not added & are returned instead.
func mergeSignposts(existing map[uint64]*Signpost, posts []*Signpost) []*Signpost {
	collisions := []*Signpost{}
	for _, post := range posts {
		prev, ok := existing[post.Key]
		if ok && !reflect.DeepEqual(prev, post) {
			collisions = append(collisions, post)
			continue
		}
		existing[post.Key] = post
	}
	return collisions
}
