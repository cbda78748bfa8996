package trailgraph

import (
	"image"
	"testing"
)

func TestRingOffsets(t *testing.T) {
	for r := 1; r <= 20; r++ {
		offs := ringOffsets(r)
		if len(offs) != 4*r {
			t.Errorf("radius %d has %d offsets, want %d", r, len(offs), 4*r)
		}

		seen := map[image.Point]bool{}
		for _, o := range offs {
			if absint(o.X)+absint(o.Y) != r {
				t.Errorf("radius %d offset %v is not on the ring", r, o)
			}
			if seen[o] {
				t.Errorf("radius %d offset %v repeated", r, o)
			}
			seen[o] = true
		}
	}
}

func TestCircularWaveScanSingleNeighbour(t *testing.T) {
	origin := image.Pt(100, 100)
	neighbour := image.Pt(112, 100) // radius 12

	visits := 0
	completion := 0
	radius := CircularWaveScan(origin, WaveScan{MaxRadius: 50, MinRadius: 10, Target: 4}, &completion, func(p image.Point) bool {
		if p == neighbour {
			visits++
			return true
		}
		return false
	})

	if radius != 50 {
		t.Errorf("scan stopped at radius %d, want 50", radius)
	}
	if completion != 1 {
		t.Errorf("completion = %d, want 1", completion)
	}
	if visits != 1 {
		t.Errorf("neighbour visited %d times, want 1", visits)
	}
}

func TestCircularWaveScanStopsEarly(t *testing.T) {
	cases := []struct {
		name  string
		found func(p image.Point) bool
		want  int
	}{
		// everything is a find; target is met at radius 1 but the
		// minimum radius still applies
		{"everything", func(image.Point) bool { return true }, 10},
		{"nothing", func(image.Point) bool { return false }, 50},
		{
			"four at radius 15",
			func(p image.Point) bool { return absint(p.X)+absint(p.Y) == 15 && (p.X == 0 || p.Y == 0) },
			15,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			completion := 0
			got := CircularWaveScan(image.Pt(0, 0), WaveScan{MaxRadius: 50, MinRadius: 10, Target: 4}, &completion, tt.found)
			if got != tt.want {
				t.Errorf("stopped at radius %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreferenceIsDeterministic(t *testing.T) {
	g := newTestGenerator(t, 42)
	other := newTestGenerator(t, 42)

	for i := 0; i < 50; i++ {
		p := image.Pt(130+i, 140)
		a := &RoutedLocation{PixelID: g.win.pixelID(p), Type: TownHamlet, Government: GovRepublic}
		b := &RoutedLocation{PixelID: other.win.pixelID(p), Type: TownHamlet, Government: GovRepublic}
		if g.preference(a) != other.preference(b) {
			t.Fatalf("preference at %v differs between runs with the same seed", p)
		}
	}
}

func TestChoosePreference(t *testing.T) {
	g := newTestGenerator(t, 1)

	// never routable
	dragons := &RoutedLocation{PixelID: 5, Type: DungeonKeep, Dungeon: DragonsDen}
	if got := g.preference(dragons); got != TierNone {
		t.Errorf("dragon den preference = %v, want none", got)
	}

	// no chances configured
	coven := &RoutedLocation{PixelID: 5, Type: Coven}
	if got := g.preference(coven); got != TierNone {
		t.Errorf("coven preference = %v, want none", got)
	}

	// a monarchy city (threshold 90*8/8) always gets some trail
	for i := 0; i < 100; i++ {
		city := &RoutedLocation{PixelID: i, Type: TownCity, Government: GovMonarchy}
		if got := g.preference(city); got == TierNone {
			t.Fatalf("monarchy city %d has no preference", i)
		}
	}
}

func TestGovernmentMultiplier(t *testing.T) {
	cases := []struct {
		gov  GovernmentClass
		want int
	}{
		{GovNone, 1},
		{GovDuchy, 7},
		{GovBarbarian, 2},
		{GovMonarchy, 8},
	}
	for _, tt := range cases {
		if got := tt.gov.Multiplier(); got != tt.want {
			t.Errorf("%d.Multiplier() = %d, want %d", tt.gov, got, tt.want)
		}
	}
}

func TestDiscoverLocations(t *testing.T) {
	g := newTestGenerator(t, 7)
	g.catalog = &testCatalog{
		walls: map[string]*WallLayout{
			"walled": {Width: 5, Height: 5, Blocks: []string{
				"WALL", "WALL", "WALL_GATE", "WALL", "WALL",
				"WALL", "HOUSE", "HOUSE", "HOUSE", "WALL",
				"WALL", "HOUSE", "HOUSE", "HOUSE", "WALL",
				"WALL", "HOUSE", "HOUSE", "HOUSE", "WALL",
				"WALL", "WALL", "WALL", "WALL", "WALL",
			}},
		},
	}

	g.discoverLocations([]*CatalogLocation{
		{Name: "walled", Position: image.Pt(150, 150), Type: TownCity},
		{Name: "farm", Position: image.Pt(20, 20), Type: HomeFarm},
		{Name: "hidden", Position: image.Pt(160, 160), Type: TownVillage, Hidden: true},
		{Name: "ship", Position: image.Pt(170, 170), Type: HomeShip},
		{Name: "outside", Position: image.Pt(1000, 1000), Type: TownVillage},
		{Name: "duplicate", Position: image.Pt(150, 150), Type: TownVillage},
	})

	if len(g.ordered) != 2 {
		t.Fatalf("discovered %d locations, want 2", len(g.ordered))
	}
	if g.ordered[0].Name != "walled" || g.ordered[1].Name != "farm" {
		t.Errorf("unexpected order %q, %q", g.ordered[0].Name, g.ordered[1].Name)
	}
	if !g.ordered[0].Walled || !g.ordered[0].central {
		t.Errorf("city should be walled & central: %+v", g.ordered[0])
	}
	if g.ordered[1].Walled || g.ordered[1].central {
		t.Errorf("farm should be neither walled nor central: %+v", g.ordered[1])
	}
}

func TestFindCandidatesIsolated(t *testing.T) {
	g := newTestGenerator(t, 3)
	addLocation(g, "alone", image.Pt(190, 190), TierRoad)
	addLocation(g, "far", image.Pt(190+51, 190), TierRoad) // beyond the max radius

	g.findCandidates()
	edges := g.resolveEdges()

	if len(edges) != 0 {
		t.Errorf("got %d edges, want none", len(edges))
	}

	g.buildTrails(edges)
	if g.Stats.TrailsBuilt != 0 || g.Stats.TrailsFailed != 0 {
		t.Errorf("path builder ran for an isolated location: %+v", g.Stats)
	}
}

func TestFindCandidates(t *testing.T) {
	g := newTestGenerator(t, 3)
	a := addLocation(g, "a", image.Pt(150, 150), TierRoad)
	b := addLocation(g, "b", image.Pt(150, 160), TierDirt)
	c := addLocation(g, "c", image.Pt(140, 150), TierTrack)
	addLocation(g, "none", image.Pt(152, 150), TierNone)

	g.findCandidates()

	// equally distant; lower pixel id first
	if got := candidateIDs(a); len(got) != 2 || got[0] != c.PixelID || got[1] != b.PixelID {
		t.Errorf("a candidates = %v, want [%d %d]", got, c.PixelID, b.PixelID)
	}
	if a.CompletionLevel != 2 {
		t.Errorf("a completion = %d, want 2", a.CompletionLevel)
	}
	if a.Candidates[0].Distance != 10 {
		t.Errorf("nearest candidate distance = %f, want 10", a.Candidates[0].Distance)
	}
}
