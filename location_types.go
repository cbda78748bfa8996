package trailgraph

import (
	"math/rand"
	"sort"
)

// LocationType indicates what sort of place a catalogued location is.
// This drives both how likely a location is to want a trail & in which
// order locations get to claim their (short) edges.
type LocationType string

const (
	TownCity         = "town-city"         // large walled settlements
	TownHamlet       = "town-hamlet"       // small but important settlements
	TownVillage      = "town-village"      // villages
	Tavern           = "tavern"            // roadside inns
	HomeFarm         = "home-farm"         // farms, homesteads
	Temple           = "temple"            // religious sites
	Graveyard        = "graveyard"         // for people after best-by date
	Cult             = "cult"              // lesser religious sites
	HomePoor         = "home-poor"         // hovels
	HomeWealthy      = "home-wealthy"      // manors
	DungeonLabyrinth = "dungeon-labyrinth" // large dungeon complexes
	DungeonKeep      = "dungeon-keep"      // ruined castles, strongholds
	DungeonRuin      = "dungeon-ruin"      // small ruins, caves
	Coven            = "coven"             // never routed
	HomeShip         = "home-ship"         // ship homes, never routed
	LocationNone     = "none"
)

var (
	// priority in which locations claim edges, see EdgeResolver
	typePriority = map[LocationType]int{
		TownCity:         0,
		TownHamlet:       1,
		TownVillage:      2,
		Tavern:           2,
		HomeFarm:         3,
		Temple:           4,
		Graveyard:        5,
		Cult:             6,
		HomePoor:         6,
		HomeWealthy:      7,
		DungeonLabyrinth: 8,
		DungeonKeep:      9,
		DungeonRuin:      10,
	}
)

// Routable returns if the location type ever takes part in the trail network
func (t LocationType) Routable() bool {
	_, ok := typePriority[t]
	return ok
}

// IsDungeon returns if the type is one of the dungeon classes
func (t LocationType) IsDungeon() bool {
	return t == DungeonLabyrinth || t == DungeonKeep || t == DungeonRuin
}

// priority returns the resolution order of the type, lower goes first
func (t LocationType) priority() int {
	p, ok := typePriority[t]
	if !ok {
		return len(typePriority) + 1
	}
	return p
}

// DungeonType is the sub type of a dungeon location.
type DungeonType string

const (
	DungeonNone         = ""
	BarbarianStronghold = "barbarian-stronghold"
	Crypt               = "crypt"
	DragonsDen          = "dragons-den"
	GiantStronghold     = "giant-stronghold"
	HumanStronghold     = "human-stronghold"
	Laboratory          = "laboratory"
	Mine                = "mine"
	NaturalCave         = "natural-cave"
	OrcStronghold       = "orc-stronghold"
	Prison              = "prison"
	RuinedCastle        = "ruined-castle"
	SpiderNest          = "spider-nest"
	VampireHaunt        = "vampire-haunt"
	VolcanicCaves       = "volcanic-caves"
)

// chance (out of 100) that a dungeon of a given type is connected at all.
// Types not listed are always routable.
var dungeonRoutability = map[DungeonType]int{
	DragonsDen:          0,
	SpiderNest:          0,
	VampireHaunt:        0,
	VolcanicCaves:       0,
	BarbarianStronghold: 50,
	OrcStronghold:       50,
	GiantStronghold:     50,
	Crypt:               30,
	NaturalCave:         30,
	Laboratory:          30,
}

// routable rolls whether a dungeon of this type joins the trail network
func (d DungeonType) routable(rng *rand.Rand) bool {
	chance, ok := dungeonRoutability[d]
	if !ok {
		return true
	}
	if chance <= 0 {
		return false
	}
	return rng.Intn(100) < chance
}

// GovernmentClass is the ruler class of the region governing a location.
type GovernmentClass int

const (
	GovNone GovernmentClass = iota
	GovDuchy
	GovRepublic
	GovTheocracy
	GovOligarchy
	GovTribal
	GovBarbarian
	GovMonarchy // strongest
)

// Multiplier scales a location's trail chances; monarchies favour roads.
func (g GovernmentClass) Multiplier() int {
	switch {
	case g == GovMonarchy:
		return int(g) + 1
	case g <= GovNone || g > GovMonarchy:
		return 1
	}
	return 8 - int(g)
}

// TrailChance holds ascending thresholds (percent, before the government
// multiplier is applied) for a location type to want a road, dirt road
// or track.
type TrailChance struct {
	Road  int
	Dirt  int
	Track int
}

// DefaultChances returns a reasonable set of TrailChance by location type
func DefaultChances() map[LocationType]TrailChance {
	return map[LocationType]TrailChance{
		TownCity:         {Road: 90, Dirt: 100, Track: 100},
		TownHamlet:       {Road: 60, Dirt: 90, Track: 100},
		TownVillage:      {Road: 30, Dirt: 80, Track: 100},
		Tavern:           {Road: 40, Dirt: 80, Track: 100},
		HomeFarm:         {Road: 5, Dirt: 40, Track: 80},
		Temple:           {Road: 20, Dirt: 60, Track: 90},
		Graveyard:        {Road: 5, Dirt: 30, Track: 70},
		Cult:             {Road: 0, Dirt: 20, Track: 60},
		HomePoor:         {Road: 0, Dirt: 15, Track: 60},
		HomeWealthy:      {Road: 30, Dirt: 70, Track: 90},
		DungeonLabyrinth: {Road: 0, Dirt: 10, Track: 50},
		DungeonKeep:      {Road: 5, Dirt: 20, Track: 50},
		DungeonRuin:      {Road: 0, Dirt: 5, Track: 40},
	}
}

// choosePreference draws a trail tier for a location. A uniform draw in
// [1,100] selects the first threshold it falls under, otherwise TierNone.
func choosePreference(rng *rand.Rand, chance TrailChance, gov GovernmentClass) Tier {
	mult := gov.Multiplier()
	roll := rng.Intn(100) + 1

	if roll <= chance.Road*mult/8 {
		return TierRoad
	} else if roll <= chance.Dirt*mult/8 {
		return TierDirt
	} else if roll <= chance.Track*mult/8 {
		return TierTrack
	}
	return TierNone
}

// sortByPriority orders locations in the sequence they claim edges
func sortByPriority(in []*RoutedLocation) {
	sort.SliceStable(in, func(a, b int) bool {
		pa, pb := in[a].Type.priority(), in[b].Type.priority()
		if pa != pb {
			return pa < pb
		}
		return in[a].PixelID < in[b].PixelID
	})
}
