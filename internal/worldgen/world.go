package worldgen

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/unixpickle/essentials"

	"github.com/voidshard/trailgraph"
)

// Config holds settings for building a synthetic world
type Config struct {
	// Bounds of the world, required
	Bounds image.Rectangle

	// Seed for rng (random number chosen if not set)
	Seed int64

	// Locations is how many locations we'd like to place (we may place
	// fewer if they don't fit). Default 200.
	Locations int

	// MinSpacing is the minimum distance between locations. Default 6.
	MinSpacing float64

	// Regions is how many governed regions the world is split into; each
	// region gets a random government. Default 8.
	Regions int

	// WaterLevel locations are placed at or above this height. Default 3.
	WaterLevel int

	// MaxHeight is the highest point of the terrain (exclusive). Default 20.
	MaxHeight int

	// HeightSpacing is the distance between random heights, the terrain
	// is interpolated between. Default 24.
	HeightSpacing int
}

// init sets defaults
func (c *Config) init() {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Locations <= 0 {
		c.Locations = 200
	}
	if c.MinSpacing <= 0 {
		c.MinSpacing = 6
	}
	if c.Regions <= 0 {
		c.Regions = 8
	}
	if c.WaterLevel <= 0 {
		c.WaterLevel = 3
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = 20
	}
	if c.HeightSpacing <= 0 {
		c.HeightSpacing = 24
	}
}

// weights of each location type when placing at random
var typeWeights = []struct {
	typ    trailgraph.LocationType
	weight int
}{
	{trailgraph.TownCity, 2},
	{trailgraph.TownHamlet, 5},
	{trailgraph.TownVillage, 10},
	{trailgraph.Tavern, 5},
	{trailgraph.HomeFarm, 20},
	{trailgraph.Temple, 3},
	{trailgraph.Graveyard, 3},
	{trailgraph.Cult, 2},
	{trailgraph.HomePoor, 10},
	{trailgraph.HomeWealthy, 4},
	{trailgraph.DungeonLabyrinth, 1},
	{trailgraph.DungeonKeep, 2},
	{trailgraph.DungeonRuin, 4},
	{trailgraph.Coven, 1},
	{trailgraph.HomeShip, 1},
}

var dungeonTypes = []trailgraph.DungeonType{
	trailgraph.BarbarianStronghold,
	trailgraph.Crypt,
	trailgraph.DragonsDen,
	trailgraph.GiantStronghold,
	trailgraph.HumanStronghold,
	trailgraph.Laboratory,
	trailgraph.Mine,
	trailgraph.NaturalCave,
	trailgraph.OrcStronghold,
	trailgraph.Prison,
	trailgraph.RuinedCastle,
	trailgraph.SpiderNest,
	trailgraph.VampireHaunt,
	trailgraph.VolcanicCaves,
}

const (
	blockWall  = trailgraph.WallMarker
	blockGate  = trailgraph.WallMarker + "_" + trailgraph.GateMarker
	blockHouse = "HOUSE"
)

// World is a synthetic world satisfying both trailgraph.Terrain &
// trailgraph.Catalog
type World struct {
	*Terrain

	cfg       *Config
	locations []*trailgraph.CatalogLocation
	walls     map[string]*trailgraph.WallLayout
}

// New builds a world with random terrain, regions & locations
func New(cfg *Config) *World {
	cfg.init()
	rng := rand.New(rand.NewSource(cfg.Seed))

	w := &World{
		Terrain:   NewTerrain(cfg.Bounds, cfg.Seed, cfg.HeightSpacing, cfg.MaxHeight),
		cfg:       cfg,
		locations: []*trailgraph.CatalogLocation{},
		walls:     map[string]*trailgraph.WallLayout{},
	}

	// regions are just the nearest of a set of random points
	regions := NewBuilder(cfg.Bounds)
	regions.SetSeed(rng.Int63())
	for i := 0; i < cfg.Regions*10 && regions.SiteCount() < cfg.Regions; i++ {
		regions.AddRandomSite()
	}
	govs := make([]trailgraph.GovernmentClass, regions.SiteCount())
	for i := range govs {
		govs[i] = trailgraph.GovernmentClass(rng.Intn(int(trailgraph.GovMonarchy) + 1))
	}

	sites := NewBuilder(cfg.Bounds)
	sites.SetSeed(rng.Int63())
	sites.SetCandidateFilters(MinHeight(w.Terrain, cfg.WaterLevel))
	sites.SetSiteFilters(MinDistance(cfg.MinSpacing))

	for i := 0; i < cfg.Locations*20 && sites.SiteCount() < cfg.Locations; i++ {
		x, y, id, ok := sites.AddRandomSite()
		if !ok {
			continue
		}

		loc := &trailgraph.CatalogLocation{
			Position: image.Pt(x, y),
			Type:     chooseType(rng),
			Hidden:   rng.Intn(100) < 3,
		}
		loc.Name = fmt.Sprintf("%s-%d", loc.Type, id)
		if loc.Type.IsDungeon() {
			loc.Dungeon = dungeonTypes[rng.Intn(len(dungeonTypes))]
		}
		if r := regions.SiteFor(x, y); r >= 0 {
			loc.Government = govs[r]
		}

		if loc.Type == trailgraph.TownCity || (loc.Type == trailgraph.TownHamlet && rng.Intn(2) == 0) {
			w.walls[loc.Name] = wallLayout(rng)
		}

		w.locations = append(w.locations, loc)
	}

	return w
}

// chooseType picks a location type at random by weight
func chooseType(rng *rand.Rand) trailgraph.LocationType {
	total := 0
	for _, tw := range typeWeights {
		total += tw.weight
	}
	roll := rng.Intn(total)
	for _, tw := range typeWeights {
		if roll < tw.weight {
			return tw.typ
		}
		roll -= tw.weight
	}
	return trailgraph.LocationNone
}

// wallLayout returns a 5-8 x 5-8 walled layout with 1-3 gates
func wallLayout(rng *rand.Rand) *trailgraph.WallLayout {
	w := &trailgraph.WallLayout{Width: 5 + rng.Intn(4), Height: 5 + rng.Intn(4)}
	w.Blocks = make([]string, w.Width*w.Height)

	edge := []int{}
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			i := y*w.Width + x
			if x == 0 || y == 0 || x == w.Width-1 || y == w.Height-1 {
				w.Blocks[i] = blockWall
				corner := (x == 0 || x == w.Width-1) && (y == 0 || y == w.Height-1)
				if !corner {
					edge = append(edge, i)
				}
				continue
			}
			w.Blocks[i] = blockHouse
		}
	}

	gates := 1 + rng.Intn(3)
	for g := 0; g < gates; g++ {
		i := rng.Intn(len(edge))
		w.Blocks[edge[i]] = blockGate
		essentials.UnorderedDelete(&edge, i)
	}

	return w
}

// Locations returns every location in the world
func (w *World) Locations() []*trailgraph.CatalogLocation {
	return w.locations
}

// LocationsInWindow returns locations in the 3x3 tiles centred on tileX, tileY
func (w *World) LocationsInWindow(tileX, tileY int) ([]*trailgraph.CatalogLocation, error) {
	area := image.Rect(
		(tileX-1)*trailgraph.TileSize,
		(tileY-1)*trailgraph.TileSize,
		(tileX+2)*trailgraph.TileSize,
		(tileY+2)*trailgraph.TileSize,
	)

	found := []*trailgraph.CatalogLocation{}
	for _, loc := range w.locations {
		if loc.Position.In(area) {
			found = append(found, loc)
		}
	}
	return found, nil
}

// WallLayout returns the layout of walled locations, nil for others
func (w *World) WallLayout(loc *trailgraph.CatalogLocation) (*trailgraph.WallLayout, error) {
	layout, ok := w.walls[loc.Name]
	if !ok {
		return nil, nil
	}
	return layout, nil
}
