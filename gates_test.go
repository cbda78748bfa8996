package trailgraph

import (
	"errors"
	"image"
	"math/rand"
	"testing"
)

// layout returns a walled layout with gates at the given blocks
func layout(width, height int, gates ...image.Point) *WallLayout {
	w := &WallLayout{Width: width, Height: height, Blocks: make([]string, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			name := "HOUSE"
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				name = "WALL"
			}
			w.Blocks[y*width+x] = name
		}
	}
	for _, g := range gates {
		w.Blocks[g.Y*width+g.X] = "WALL_GATE"
	}
	return w
}

func TestGateVariantTableCoverage(t *testing.T) {
	codes := map[int]bool{}

	for width := 5; width <= 8; width++ {
		for height := 5; height <= 8; height++ {
			keys := []GateKey{}
			for x := 2; x <= width-3; x++ {
				keys = append(keys,
					GateKey{X: x, Y: 0, Width: width, Height: height, Side: North},
					GateKey{X: x, Y: height - 1, Width: width, Height: height, Side: South},
				)
			}
			for y := 2; y <= height-3; y++ {
				keys = append(keys,
					GateKey{X: 0, Y: y, Width: width, Height: height, Side: West},
					GateKey{X: width - 1, Y: y, Width: width, Height: height, Side: East},
				)
			}

			for _, key := range keys {
				v, err := LookupGateVariant(key)
				if err != nil {
					t.Errorf("%+v: %v", key, err)
					continue
				}
				if codes[v.Code] {
					t.Errorf("%+v: code %d used twice", key, v.Code)
				}
				codes[v.Code] = true

				if v.Side != key.Side {
					t.Errorf("%+v: variant side %v", key, v.Side)
				}
				if v.Strip.Count() != 5 || v.Strip.Has(key.Side) {
					t.Errorf("%+v: strip %08b should be the 5 octants away from the gate", key, v.Strip)
				}
				if edgePoints[key.Side].X != hubCentre && v.Hub.X != edgePoints[key.Side].X {
					t.Errorf("%+v: hub %v is not on the gate side", key, v.Hub)
				}
				if edgePoints[key.Side].Y != hubCentre && v.Hub.Y != edgePoints[key.Side].Y {
					t.Errorf("%+v: hub %v is not on the gate side", key, v.Hub)
				}
				if !v.Hub.In(image.Rect(0, 0, SubCells, SubCells)) {
					t.Errorf("%+v: hub %v outside the block", key, v.Hub)
				}
			}
		}
	}

	if len(codes) != 160 {
		t.Errorf("found %d variants, want 160", len(codes))
	}
}

func TestGateVariantMiss(t *testing.T) {
	cases := []GateKey{
		{X: 1, Y: 0, Width: 5, Height: 5, Side: North}, // too close to the corner
		{X: 2, Y: 0, Width: 9, Height: 5, Side: North}, // too wide
		{X: 2, Y: 0, Width: 5, Height: 5, Side: East},  // wrong side
	}
	for _, key := range cases {
		_, err := LookupGateVariant(key)
		if !errors.Is(err, ErrNoGateVariant) {
			t.Errorf("%+v: err = %v, want ErrNoGateVariant", key, err)
		}
	}
}

func TestParseVariantsErrors(t *testing.T) {
	cases := map[string]string{
		"bad number":     "x,0,5,5,N,1,2,0,E\n",
		"bad side":       "2,0,5,5,NE,1,2,0,E\n",
		"bad strip":      "2,0,5,5,N,1,2,0,E|Q\n",
		"duplicate code": "2,0,5,5,N,1,2,0,E\n2,4,5,5,S,1,2,4,W\n",
		"code too large": "2,0,5,5,N,240,2,0,E\n",
		"short row":      "2,0,5,5,N,1\n",
	}
	for name, data := range cases {
		if _, _, err := parseVariants([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestChooseGate(t *testing.T) {
	w := layout(6, 5, image.Pt(2, 0), image.Pt(5, 2))

	cases := []struct {
		name  string
		entry Direction
		want  GateKey
	}{
		{"north", North, GateKey{X: 2, Y: 0, Width: 6, Height: 5, Side: North}},
		{"east", East, GateKey{X: 5, Y: 2, Width: 6, Height: 5, Side: East}},
		// equally close to both; the east side is shorter
		{"north east", NorthEast, GateKey{X: 5, Y: 2, Width: 6, Height: 5, Side: East}},
		{"south", South, GateKey{X: 5, Y: 2, Width: 6, Height: 5, Side: East}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChooseGate(w, tt.entry, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	_, err := ChooseGate(layout(5, 5), North, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoGate) {
		t.Errorf("err = %v, want ErrNoGate", err)
	}
}

func TestChooseGateTieIsSeeded(t *testing.T) {
	// two gates on the same side
	w := layout(8, 8, image.Pt(2, 0), image.Pt(5, 0))

	for seed := int64(0); seed < 10; seed++ {
		a, _ := ChooseGate(w, North, rand.New(rand.NewSource(seed)))
		b, _ := ChooseGate(w, North, rand.New(rand.NewSource(seed)))
		if a != b {
			t.Fatalf("seed %d picked %+v then %+v", seed, a, b)
		}
		if a.Side != North {
			t.Errorf("seed %d picked side %v", seed, a.Side)
		}
	}
}

func TestAlignGates(t *testing.T) {
	g := newTestGenerator(t, 1)
	loc := addLocation(g, "city", image.Pt(150, 150), TierRoad)
	loc.Walled = true
	loc.wall = layout(5, 5, image.Pt(2, 0))

	p := g.win.toLocal(loc.Position)
	g.tmap.MergeTrail([]image.Point{p.Add(image.Pt(0, -1)), p, p.Add(image.Pt(0, 1))}, TierRoad, "north", "south")

	g.alignGates()

	// the south trail comes through the wall but is kept
	c := g.tmap.cell(p)
	if c.Union() != MaskOf(North, South) {
		t.Errorf("cell directions %08b, want north & south", c.Union())
	}
	if c.Variant != gateVariantBase+1 {
		t.Errorf("variant = %d, want %d", c.Variant, gateVariantBase+1)
	}
	if c.Hub() != image.Pt(2, 0) {
		t.Errorf("hub = %v, want (2,0)", c.Hub())
	}
	if g.tmap.Kind(loc.Position.X, loc.Position.Y) != KindWalledInternal {
		t.Errorf("location cell is not walled internal")
	}
	if g.Stats.GatesAligned != 1 || g.Stats.GateMisses != 0 {
		t.Errorf("stats = %+v", g.Stats)
	}
}

func TestAlignGatesDropsStubs(t *testing.T) {
	g := newTestGenerator(t, 1)
	loc := addLocation(g, "city", image.Pt(150, 150), TierRoad)
	loc.Walled = true
	loc.wall = layout(5, 5, image.Pt(2, 0))

	p := g.win.toLocal(loc.Position)
	g.tmap.MergeTrail([]image.Point{p.Add(image.Pt(0, -1)), p}, TierRoad, "north", "city")

	// a west bit with nothing beyond it
	c := g.tmap.cell(p)
	c.Dirt = uint8(MaskOf(West))
	g.tmap.setCell(p, c)

	g.alignGates()

	if got := g.tmap.cell(p).Union(); got != MaskOf(North) {
		t.Errorf("cell directions %08b, want north only", got)
	}
}

// fineReachable returns if b can be reached from a following fine cells
// that point at each other
func fineReachable(f *FineMap, a, b image.Point) bool {
	seen := map[image.Point]bool{a: true}
	queue := []image.Point{a}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == b {
			return true
		}
		for _, d := range f.cell(p).Union().Directions() {
			n := p.Add(d.Vector())
			if seen[n] || !f.cell(n).Union().Has(d.Opposite()) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return false
}

func TestGateTrailFromBehind(t *testing.T) {
	g := newTestGenerator(t, 1)
	loc := addLocation(g, "city", image.Pt(150, 150), TierRoad)
	loc.Walled = true
	loc.wall = layout(5, 5, image.Pt(2, 0)) // gate in the north wall

	// the only trail arrives from the south
	p := g.win.toLocal(loc.Position)
	below := p.Add(image.Pt(0, 1))
	g.tmap.MergeTrail([]image.Point{below.Add(image.Pt(0, 1)), below, p}, TierRoad, "south", "city")

	g.alignGates()
	g.fine.render(g.tmap)
	res := g.fine.stitch(g.tmap)

	if res.Pruned != 0 {
		t.Errorf("pruned %d exits", res.Pruned)
	}
	if c := g.tmap.cell(p); c.Union() != MaskOf(South) || !c.IsGateVariant() {
		t.Errorf("city cell = %+v, want south with a gate variant", c)
	}
	if got := g.tmap.cell(below).Union(); got != MaskOf(North, South) {
		t.Errorf("cell below = %08b, want north & south", got)
	}

	// the trail runs from the block below, round the wall, to the gate
	origin := p.Mul(SubCells)
	hub := origin.Add(g.tmap.cell(p).Hub())
	if !fineReachable(g.fine, below.Mul(SubCells).Add(image.Pt(hubCentre, hubCentre)), hub) {
		t.Error("gate hub can't be reached from the trail below")
	}
	if got := g.fine.cell(origin.Add(image.Pt(hubCentre, hubCentre))); !got.Empty() {
		t.Errorf("trail runs through the middle of the walled block: %+v", got)
	}
}

func TestRingPath(t *testing.T) {
	cases := []struct {
		name string
		a, b image.Point
		want int // points on the path
	}{
		{"same", image.Pt(2, 0), image.Pt(2, 0), 1},
		{"along one side", image.Pt(2, 0), image.Pt(4, 0), 3},
		{"round a corner", image.Pt(2, 0), image.Pt(4, 2), 5},
		{"opposite side", image.Pt(2, 0), image.Pt(2, 4), 9},
		{"shorter way back", image.Pt(2, 0), image.Pt(0, 2), 5},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			path := ringPath(tt.a, tt.b)
			if len(path) != tt.want {
				t.Fatalf("path %v has %d points, want %d", path, len(path), tt.want)
			}
			if path[0] != tt.a || path[len(path)-1] != tt.b {
				t.Errorf("path %v doesn't run from %v to %v", path, tt.a, tt.b)
			}
			for i := 1; i < len(path); i++ {
				if ringIndex(path[i]) < 0 {
					t.Errorf("%v is not on the block border", path[i])
				}
				if _, ok := DirectionOf(path[i].X-path[i-1].X, path[i].Y-path[i-1].Y); !ok {
					t.Errorf("path jumps from %v to %v", path[i-1], path[i])
				}
			}
		})
	}

	// opposite sides are a tie; clockwise wins
	if path := ringPath(image.Pt(2, 0), image.Pt(2, 4)); path[1] != image.Pt(3, 0) {
		t.Errorf("tie went anti-clockwise: %v", path)
	}
}

func TestAlignGatesMiss(t *testing.T) {
	g := newTestGenerator(t, 1)
	loc := addLocation(g, "city", image.Pt(150, 150), TierRoad)
	loc.Walled = true
	loc.wall = layout(5, 5, image.Pt(1, 0)) // no variant this close to a corner

	p := g.win.toLocal(loc.Position)
	g.tmap.MergeTrail([]image.Point{p.Add(image.Pt(0, -1)), p}, TierRoad, "north", "city")
	before := g.tmap.cell(p)

	g.alignGates()

	if after := g.tmap.cell(p); after != before {
		t.Errorf("cell changed from %+v to %+v", before, after)
	}
	if g.Stats.GateMisses != 1 {
		t.Errorf("gate misses = %d, want 1", g.Stats.GateMisses)
	}
}
