package trailgraph

import (
	"image"
	"math/rand"
	"sort"
)

// WaveScan configures CircularWaveScan
type WaveScan struct {
	// stop once this radius is reached
	MaxRadius int

	// never stop before this radius, even if Target is met
	MinRadius int

	// number of finds after which scanning may stop
	Target int
}

// ringOffsets returns the 4*radius offsets at the given distance from the
// origin (as the crow walks; |dx| + |dy| == radius). Offsets are worked out
// from the four corners of the ring rather than by checking every point of
// the enclosing square.
func ringOffsets(radius int) []image.Point {
	out := make([]image.Point, 0, 4*radius)
	for i := 0; i < radius; i++ {
		out = append(out,
			image.Pt(radius-i, i),
			image.Pt(-i, radius-i),
			image.Pt(-(radius-i), -i),
			image.Pt(i, -(radius-i)),
		)
	}
	return out
}

// CircularWaveScan visits rings of increasing radius around origin,
// calling found for each point. Every time found returns true completion
// is incremented. Scanning stops once completion reaches the scan Target &
// the radius is at least MinRadius, or when MaxRadius is reached.
// The last radius scanned is returned.
func CircularWaveScan(origin image.Point, scan WaveScan, completion *int, found func(p image.Point) bool) int {
	radius := 0
	for radius < scan.MaxRadius {
		radius++
		for _, off := range ringOffsets(radius) {
			if found(origin.Add(off)) {
				*completion++
			}
		}
		if *completion >= scan.Target && radius >= scan.MinRadius {
			break
		}
	}
	return radius
}

// discoverLocations turns catalogued locations into RoutedLocations,
// assigning each a trail preference. Locations outside the window (or
// world) & non routable locations are skipped.
func (g *generator) discoverLocations(in []*CatalogLocation) {
	for _, cl := range in {
		if cl == nil || cl.Hidden || !cl.Type.Routable() {
			continue
		}

		local := g.win.toLocal(cl.Position)
		if !g.win.inBounds(local) {
			continue
		}

		id := g.win.pixelID(cl.Position)
		if _, ok := g.locations[id]; ok {
			g.cfg.Logger.Printf("discovery: location %q shares pixel %v with another location, ignored", cl.Name, cl.Position)
			continue
		}

		loc := &RoutedLocation{
			Name:       cl.Name,
			Position:   cl.Position,
			PixelID:    id,
			Type:       cl.Type,
			Dungeon:    cl.Dungeon,
			Government: cl.Government,
			Candidates: []Candidate{},
			central:    local.In(g.win.centre()),
		}
		loc.Preference = g.preference(loc)

		if !cl.Type.IsDungeon() {
			layout, err := g.catalog.WallLayout(cl)
			if err != nil {
				g.cfg.Logger.Printf("discovery: unable to read wall layout of %q: %v", cl.Name, err)
			} else if IsWalled(layout) {
				loc.Walled = true
				loc.wall = layout
			}
		}

		g.locations[id] = loc
		g.ordered = append(g.ordered, loc)
	}

	sortByPriority(g.ordered)
	g.Stats.Locations = len(g.ordered)
}

// preference decides (once) what tier of trail a location would like.
// The rng is seeded per location so neighbouring windows agree.
func (g *generator) preference(loc *RoutedLocation) Tier {
	rng := rand.New(rand.NewSource(g.cfg.Seed + int64(loc.PixelID)))

	if loc.Type.IsDungeon() && !loc.Dungeon.routable(rng) {
		return TierNone
	}

	chance, ok := g.cfg.Chances[loc.Type]
	if !ok {
		return TierNone
	}
	return choosePreference(rng, chance, loc.Government)
}

// findCandidates runs a wave scan around every location in the centre tile
// that wants a trail, recording nearby locations (that also want trails)
// sorted by distance.
func (g *generator) findCandidates() {
	scan := WaveScan{
		MaxRadius: g.cfg.MaxScanRadius,
		MinRadius: g.cfg.MinScanRadius,
		Target:    g.cfg.CompletionTarget,
	}

	for _, loc := range g.ordered {
		if !loc.central || loc.Preference == TierNone {
			continue
		}

		origin := g.win.toLocal(loc.Position)
		CircularWaveScan(origin, scan, &loc.CompletionLevel, func(p image.Point) bool {
			dest := g.locationAt(p)
			if dest == nil || dest.Preference == TierNone {
				return false
			}
			loc.Candidates = append(loc.Candidates, Candidate{
				PixelID:  dest.PixelID,
				Distance: calculateDist(origin.X, origin.Y, p.X, p.Y),
			})
			return true
		})

		sortCandidates(loc.Candidates)
		g.Stats.Candidates += len(loc.Candidates)
	}
}

// locationAt returns the location at the given local point (if any)
func (g *generator) locationAt(p image.Point) *RoutedLocation {
	if !g.win.inBounds(p) {
		return nil
	}
	loc, _ := g.locations[g.win.pixelID(g.win.toWorld(p))]
	return loc
}

// sortCandidates by distance, closest first (pixel id breaks ties)
func sortCandidates(in []Candidate) {
	sort.SliceStable(in, func(a, b int) bool {
		if in[a].Distance != in[b].Distance {
			return in[a].Distance < in[b].Distance
		}
		return in[a].PixelID < in[b].PixelID
	})
}
