package trailgraph

import (
	"image"
	"math/rand"
)

// PathBuilder lays a single trail between two points.
//
// The search walks greedily towards the destination, preferring the step
// with the smallest change in height, & backtracks from dead ends. It is
// not a shortest path search; trails wander a bit, which is the point.
type PathBuilder struct {
	// area (in the same co-ords as Build is called with) trails may use
	Bounds image.Rectangle

	// Height returns the elevation at x,y, required
	Height func(x, y int) int

	// Junction returns if an existing trail passes x,y. Optional.
	Junction func(x, y int) bool

	// MinElevation is the lowest height a trail may step on
	MinElevation int

	// RiseLimit is the largest height change allowed for a step, unless
	// the only way on is via an existing trail
	RiseLimit int

	// MaxSteps caps the number of steps & backtracks, 0 is no cap
	MaxSteps int

	// Rng breaks ties between equally good steps, required
	Rng *rand.Rand

	// Backtracks is the number of dead ends hit by the last Build
	Backtracks int
}

// Build returns the trail from src to dst inclusive. ErrNoWay is returned if
// every route has been exhausted & ErrStepBudget if MaxSteps was hit first.
func (b *PathBuilder) Build(src, dst image.Point) ([]image.Point, error) {
	b.Backtracks = 0

	trail := []image.Point{src}
	visited := map[image.Point]bool{src: true}
	deadEnds := map[image.Point]bool{}

	for steps := 1; ; steps++ {
		if len(trail) == 0 {
			return nil, ErrNoWay
		}
		if b.MaxSteps > 0 && steps > b.MaxSteps {
			return nil, ErrStepBudget
		}

		cur := trail[len(trail)-1]
		if cur == dst {
			return trail, nil
		}

		// back at the start having already hit dead ends; widen the search
		long := len(trail) == 1 && len(deadEnds) > 0

		options := b.options(cur, dst, long)
		for _, p := range options {
			if p == dst {
				return append(trail, dst), nil
			}
		}

		next, ok := b.choose(cur, dst, options, visited, deadEnds)
		if !ok {
			deadEnds[cur] = true
			trail = trail[:len(trail)-1]
			b.Backtracks++
			continue
		}

		visited[next] = true
		trail = append(trail, next)
	}
}

// options returns the neighbours of cur worth trying, in order of preference.
// Normally these are the five neighbours roughly in the direction of travel,
// in long trail mode all eight are returned.
func (b *PathBuilder) options(cur, dst image.Point, long bool) []image.Point {
	primary, ok := DirectionOf(dst.X-cur.X, dst.Y-cur.Y)
	if !ok {
		return nil
	}

	turns := []int{0, 1, -1, 2, -2}
	if long {
		turns = append(turns, 3, -3, 4)
	}

	out := make([]image.Point, len(turns))
	for i, n := range turns {
		out[i] = cur.Add(primary.Rotate(n).Vector())
	}
	return out
}

// choose picks the next step from options, returning false if there is none.
func (b *PathBuilder) choose(cur, dst image.Point, options []image.Point, visited, deadEnds map[image.Point]bool) (image.Point, bool) {
	here := b.Height(cur.X, cur.Y)

	within := []image.Point{}
	junctions := []image.Point{}
	bestDelta := -1

	for _, p := range options {
		if !p.In(b.Bounds) || visited[p] || deadEnds[p] {
			continue
		}
		h := b.Height(p.X, p.Y)
		if h < b.MinElevation {
			continue
		}

		delta := absint(h - here)
		if delta > b.RiseLimit {
			if b.Junction != nil && b.Junction(p.X, p.Y) {
				junctions = append(junctions, p)
			}
			continue
		}

		if bestDelta < 0 || delta < bestDelta {
			bestDelta = delta
			within = within[:0]
		}
		if delta == bestDelta {
			within = append(within, p)
		}
	}

	if len(within) > 0 {
		return b.closest(dst, within), true
	}
	if len(junctions) > 0 {
		return b.closest(dst, junctions), true
	}
	return image.Point{}, false
}

// closest returns the point nearest to dst, picking at random among ties
func (b *PathBuilder) closest(dst image.Point, in []image.Point) image.Point {
	best := []image.Point{}
	bestDist := -1
	for _, p := range in {
		d := distSq(p, dst)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = best[:0]
		}
		if d == bestDist {
			best = append(best, p)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	return best[b.Rng.Intn(len(best))]
}

// buildTrails builds every edge in order, merging each finished trail into
// the map before the next is started so later trails can join earlier ones.
// Edges that cannot be built are recorded & otherwise ignored.
func (g *generator) buildTrails(edges []*Edge) {
	bounds := image.Rect(0, 0, WindowSize, WindowSize).Intersect(g.win.world.Sub(g.win.origin))

	for i, e := range edges {
		from, to := g.locations[e.From], g.locations[e.To]

		pb := &PathBuilder{
			Bounds:       bounds,
			Height:       g.heightAt,
			Junction:     func(x, y int) bool { return g.tmap.isTrail(image.Pt(x, y)) },
			MinElevation: g.cfg.MinElevation,
			RiseLimit:    g.cfg.RiseLimit,
			MaxSteps:     g.cfg.MaxPathSteps,
			Rng:          rand.New(rand.NewSource(g.cfg.Seed + int64(i))),
		}

		path, err := pb.Build(g.win.toLocal(from.Position), g.win.toLocal(to.Position))
		if err != nil {
			g.Failed = append(g.Failed, &FailedEdge{Edge: e, Reason: err.Error()})
			g.Stats.TrailsFailed++
			continue
		}

		g.tmap.MergeTrail(path, e.Tier, from.Name, to.Name)

		world := make([]image.Point, len(path))
		for j, p := range path {
			world[j] = g.win.toWorld(p)
		}
		g.Trails = append(g.Trails, &Trail{Edge: e, Path: world})
		g.Stats.TrailsBuilt++
	}
}

// heightAt returns the terrain height at local co-ords
func (g *generator) heightAt(x, y int) int {
	p := image.Pt(x, y)
	if !g.win.inBounds(p) {
		return 0
	}
	i := y*WindowSize + x
	if g.heights[i] == heightUnknown {
		w := g.win.toWorld(p)
		g.heights[i] = g.terrain.HeightAt(w.X, w.Y)
	}
	return g.heights[i]
}
