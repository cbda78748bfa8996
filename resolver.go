package trailgraph

import (
	"math"
	"math/rand"
)

// distances closer than this are considered equal
const distEpsilon = 1e-9

// resolveEdges prunes the candidate lists of all locations & returns the
// edges that remain. Locations are processed in priority order so more
// important settlements claim short edges first.
func (g *generator) resolveEdges() []*Edge {
	g.pruneTriangles()
	g.pruneDoubleTrails()
	return g.collectEdges()
}

// linked returns the distance between a & b if either lists the other
func linked(a, b *RoutedLocation) (float64, bool) {
	if d, ok := a.hasCandidate(b.PixelID); ok {
		return d, true
	}
	return b.hasCandidate(a.PixelID)
}

// pruneTriangles removes the long leg of triangles. For locations A, B, C
// where A-B, B-C & A-C are all candidates, A-C is dropped if both other
// legs are shorter. If the longer of the other legs is exactly as long a
// coin (seeded by the pair) decides.
// Drops are applied to both A & C's lists immediately so later locations
// see them. Returns the number of edges dropped.
func (g *generator) pruneTriangles() int {
	dropped := 0
	for _, a := range g.ordered {
		i := 0
		for i < len(a.Candidates) {
			cand := a.Candidates[i]
			c, ok := g.locations[cand.PixelID]
			if ok && g.redundant(a, c, cand.Distance) {
				a.dropCandidate(c.PixelID)
				c.dropCandidate(a.PixelID)
				dropped++
				continue
			}
			i++
		}
	}
	return dropped
}

// redundant returns if a-c (of length dAC) is covered by some route a-b-c
func (g *generator) redundant(a, c *RoutedLocation, dAC float64) bool {
	for _, b := range g.ordered {
		if b == a || b == c {
			continue
		}
		dAB, ok := linked(a, b)
		if !ok {
			continue
		}
		dBC, ok := linked(b, c)
		if !ok {
			continue
		}

		longest := math.Max(dAB, dBC)
		if longest < dAC-distEpsilon {
			return true
		}
		if math.Abs(longest-dAC) <= distEpsilon && g.coin(a.PixelID, c.PixelID) {
			return true
		}
	}
	return false
}

// coin returns a random bool that depends only on the seed & the
// (unordered) pair of pixel ids, so the same pair always flips the same way
func (g *generator) coin(a, b int) bool {
	if b < a {
		a, b = b, a
	}
	key := int64(a)<<32 | int64(b)
	return rand.New(rand.NewSource(g.cfg.Seed ^ key)).Intn(2) == 0
}

// pruneDoubleTrails removes reciprocal candidates. If A lists B & B lists A
// only the entry of the location with the stronger preference is kept.
func (g *generator) pruneDoubleTrails() int {
	dropped := 0
	for _, a := range g.ordered {
		for _, cand := range append([]Candidate{}, a.Candidates...) {
			b, ok := g.locations[cand.PixelID]
			if !ok {
				continue
			}
			if _, reciprocal := b.hasCandidate(a.PixelID); !reciprocal {
				continue
			}
			if keepFirst(a, b) {
				b.dropCandidate(a.PixelID)
			} else {
				a.dropCandidate(b.PixelID)
			}
			dropped++
		}
	}
	return dropped
}

// keepFirst returns true if a's entry should survive over b's
func keepFirst(a, b *RoutedLocation) bool {
	if a.Preference != b.Preference {
		return stronger(a.Preference, b.Preference) == a.Preference
	}
	if a.Type.priority() != b.Type.priority() {
		return a.Type.priority() < b.Type.priority()
	}
	return a.PixelID < b.PixelID
}

// collectEdges turns remaining candidates into edges, each using the
// stronger of the two end points' preferences.
func (g *generator) collectEdges() []*Edge {
	edges := []*Edge{}
	for _, a := range g.ordered {
		if a.Preference == TierNone {
			continue
		}
		for _, cand := range a.Candidates {
			b, ok := g.locations[cand.PixelID]
			if !ok || b.Preference == TierNone {
				continue
			}
			edges = append(edges, &Edge{
				From:     a.PixelID,
				To:       b.PixelID,
				Tier:     stronger(a.Preference, b.Preference),
				Distance: cand.Distance,
			})
		}
	}
	g.Stats.Edges = len(edges)
	return edges
}
