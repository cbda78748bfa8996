package trailgraph

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"image"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
)

//go:embed gate_variants.csv
var gateVariantData []byte

// GateKey identifies a gate by where it sits in a wall layout
type GateKey struct {
	X      int // block x of the gate
	Y      int // block y of the gate
	Width  int // layout width in blocks
	Height int // layout height in blocks
	Side   Direction
}

// GateVariant is a precomputed fine (5x5) layout for a trail meeting a gate.
type GateVariant struct {
	Code int

	// side of the wall the gate is on
	Side Direction

	// where the gate opens within the fine block
	Hub image.Point

	// octants that would run through the wall; stubs here are removed from
	// the cell, trails are drawn round the wall to the gate
	Strip Mask
}

var (
	variantsOnce  sync.Once
	variantsByKey map[GateKey]*GateVariant
	variantsCode  map[int]*GateVariant
	variantsErr   error
)

// loadVariants parses the embedded variant table (once)
func loadVariants() error {
	variantsOnce.Do(func() {
		variantsByKey, variantsCode, variantsErr = parseVariants(gateVariantData)
	})
	return variantsErr
}

// parseVariants reads the variant table. Rows are
//
//	gate_x,gate_y,width,height,side,code,hub_x,hub_y,strip
func parseVariants(data []byte) (map[GateKey]*GateVariant, map[int]*GateVariant, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = 9

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	byKey := map[GateKey]*GateVariant{}
	byCode := map[int]*GateVariant{}
	for i, rec := range records {
		nums := make([]int, 0, 8)
		for _, j := range []int{0, 1, 2, 3, 5, 6, 7} {
			n, err := strconv.Atoi(rec[j])
			if err != nil {
				return nil, nil, fmt.Errorf("gate variant row %d: %w", i, err)
			}
			nums = append(nums, n)
		}

		side, ok := parseDirection(rec[4])
		if !ok || !side.Cardinal() {
			return nil, nil, fmt.Errorf("gate variant row %d: bad side %q", i, rec[4])
		}

		strip := Mask(0)
		for _, name := range strings.Split(rec[8], "|") {
			d, ok := parseDirection(name)
			if !ok {
				return nil, nil, fmt.Errorf("gate variant row %d: bad direction %q", i, name)
			}
			strip = strip.With(d)
		}

		code := nums[4]
		if code <= 0 || code+gateVariantBase > 255 {
			return nil, nil, fmt.Errorf("gate variant row %d: code %d out of range", i, code)
		}
		if _, ok := byCode[code]; ok {
			return nil, nil, fmt.Errorf("gate variant row %d: duplicate code %d", i, code)
		}

		v := &GateVariant{Code: code, Side: side, Hub: image.Pt(nums[5], nums[6]), Strip: strip}
		byKey[GateKey{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3], Side: side}] = v
		byCode[code] = v
	}

	return byKey, byCode, nil
}

// parseDirection reads a short compass name (N, NE ..)
func parseDirection(in string) (Direction, bool) {
	for i, name := range dirNames {
		if name == strings.TrimSpace(in) {
			return Direction(i), true
		}
	}
	return North, false
}

// LookupGateVariant returns the variant for the given gate, or
// ErrNoGateVariant if the table has no such entry.
func LookupGateVariant(key GateKey) (*GateVariant, error) {
	if err := loadVariants(); err != nil {
		return nil, err
	}
	v, ok := variantsByKey[key]
	if !ok {
		return nil, fmt.Errorf("%w %+v", ErrNoGateVariant, key)
	}
	return v, nil
}

// variantByCode returns the variant with the given code
func variantByCode(code int) (*GateVariant, bool) {
	if loadVariants() != nil {
		return nil, false
	}
	v, ok := variantsCode[code]
	return v, ok
}

// gateSide returns which side of the layout the block x,y sits on
func gateSide(w *WallLayout, x, y int) Direction {
	switch {
	case y == 0:
		return North
	case y == w.Height-1:
		return South
	case x == 0:
		return West
	}
	return East
}

// ChooseGate picks the gate of a wall layout a trail entering from `entry`
// should use. Gates on the side facing the trail are preferred, then gates
// on the shorter side, remaining ties are settled by rng.
func ChooseGate(w *WallLayout, entry Direction, rng *rand.Rand) (GateKey, error) {
	type option struct {
		key    GateKey
		facing int
		length int
	}

	options := []option{}
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if x != 0 && y != 0 && x != w.Width-1 && y != w.Height-1 {
				continue // not on the boundary
			}
			if !isGateBlock(w.Block(x, y)) {
				continue
			}
			side := gateSide(w, x, y)
			length := w.Width
			if side == East || side == West {
				length = w.Height
			}
			options = append(options, option{
				key:    GateKey{X: x, Y: y, Width: w.Width, Height: w.Height, Side: side},
				facing: octantDistance(side, entry),
				length: length,
			})
		}
	}
	if len(options) == 0 {
		return GateKey{}, ErrNoGate
	}

	sort.SliceStable(options, func(a, b int) bool {
		if options[a].facing != options[b].facing {
			return options[a].facing < options[b].facing
		}
		return options[a].length < options[b].length
	})

	best := options[:1]
	for _, o := range options[1:] {
		if o.facing == best[0].facing && o.length == best[0].length {
			best = append(best, o)
		}
	}
	return best[rng.Intn(len(best))].key, nil
}

// entryDirection returns the first octant, clockwise from north, of the
// strongest tier with any trail leaving the cell
func entryDirection(c TrailCell) (Direction, bool) {
	for _, t := range AllTiers {
		dirs := c.Tier(t).Directions()
		if len(dirs) > 0 {
			return dirs[0], true
		}
	}
	return North, false
}

// alignGates marks walled locations with trails with the variant of the
// gate the trails should meet & strips dangling trail bits that would pass
// through the wall. Failures are logged & leave the cell as is.
func (g *generator) alignGates() {
	for _, loc := range g.ordered {
		p := g.win.toLocal(loc.Position)
		g.tmap.markLocation(p, loc.Walled)
		if !loc.Walled {
			continue
		}

		c := g.tmap.cell(p)
		entry, ok := entryDirection(c)
		if !ok {
			continue
		}

		rng := rand.New(rand.NewSource(g.cfg.Seed + int64(loc.PixelID)))
		key, err := ChooseGate(loc.wall, entry, rng)
		if err != nil {
			g.cfg.Logger.Printf("gates: %q: %v", loc.Name, err)
			g.Stats.GateMisses++
			continue
		}

		v, err := LookupGateVariant(key)
		if err != nil {
			g.cfg.Logger.Printf("gates: %q: %v", loc.Name, err)
			g.Stats.GateMisses++
			continue
		}

		for _, d := range v.Strip.Directions() {
			// trails arriving through the wall are drawn round to the gate;
			// only stubs with nothing beyond them go
			n := p.Add(d.Vector())
			if !g.win.inBounds(n) || g.tmap.cell(n).Union().Has(d.Opposite()) {
				continue
			}
			c.clear(d)
		}
		c.Variant = uint8(gateVariantBase + v.Code)
		g.tmap.setCell(p, c)
		g.Stats.GatesAligned++
	}
}
