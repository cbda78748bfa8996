package trailgraph

import (
	"image"
	"io/ioutil"
	"log"
	"testing"
)

// testTerrain is flat (height 10) unless a height func is given
type testTerrain struct {
	bounds image.Rectangle
	height func(x, y int) int
}

func (t *testTerrain) HeightAt(x, y int) int {
	if t.height == nil {
		return 10
	}
	return t.height(x, y)
}

func (t *testTerrain) Bounds() image.Rectangle {
	return t.bounds
}

// testCatalog returns a fixed set of locations
type testCatalog struct {
	locs  []*CatalogLocation
	walls map[string]*WallLayout
}

func (c *testCatalog) LocationsInWindow(tileX, tileY int) ([]*CatalogLocation, error) {
	return c.locs, nil
}

func (c *testCatalog) WallLayout(loc *CatalogLocation) (*WallLayout, error) {
	return c.walls[loc.Name], nil
}

// quietLogger discards everything
func quietLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

// newTestGenerator returns an initialised generator for the 3x3 tile world
// centred on tile 1,1
func newTestGenerator(t *testing.T, seed int64) *generator {
	t.Helper()
	g := &generator{
		Trailgraph: &Trailgraph{},
		cfg:        &Config{TileX: 1, TileY: 1, Seed: seed, Logger: quietLogger()},
		terrain:    &testTerrain{bounds: image.Rect(0, 0, WindowSize, WindowSize)},
		catalog:    &testCatalog{},
	}
	if err := g.init(); err != nil {
		t.Fatal(err)
	}
	return g
}

// addLocation adds a routed location directly, skipping discovery
func addLocation(g *generator, name string, p image.Point, pref Tier) *RoutedLocation {
	loc := &RoutedLocation{
		Name:       name,
		Position:   p,
		PixelID:    g.win.pixelID(p),
		Type:       TownVillage,
		Preference: pref,
		Candidates: []Candidate{},
		central:    g.win.toLocal(p).In(g.win.centre()),
	}
	g.locations[loc.PixelID] = loc
	g.ordered = append(g.ordered, loc)
	sortByPriority(g.ordered)
	return loc
}

// link adds each location to the other's candidate list
func linkLocations(a, b *RoutedLocation) {
	d := calculateDist(a.Position.X, a.Position.Y, b.Position.X, b.Position.Y)
	a.Candidates = append(a.Candidates, Candidate{PixelID: b.PixelID, Distance: d})
	b.Candidates = append(b.Candidates, Candidate{PixelID: a.PixelID, Distance: d})
	sortCandidates(a.Candidates)
	sortCandidates(b.Candidates)
}

// candidateIDs returns the pixel ids of a location's candidates
func candidateIDs(loc *RoutedLocation) []int {
	out := []int{}
	for _, c := range loc.Candidates {
		out = append(out, c.PixelID)
	}
	return out
}
