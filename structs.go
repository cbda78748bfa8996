package trailgraph

import (
	"image"
)

// Tier is the quality of a trail. Lower (non zero) values are stronger.
type Tier uint8

const (
	TierNone Tier = iota
	TierRoad
	TierDirt
	TierTrack
)

// AllTiers in order of precedence, strongest first
var AllTiers = []Tier{TierRoad, TierDirt, TierTrack}

var tierNames = map[Tier]string{
	TierNone:  "none",
	TierRoad:  "road",
	TierDirt:  "dirt-road",
	TierTrack: "track",
}

// String returns a readable name for the tier
func (t Tier) String() string {
	name, ok := tierNames[t]
	if !ok {
		return "unknown"
	}
	return name
}

// MarshalText so tiers read nicely in json
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// stronger returns the stronger of two tiers, TierNone never wins
func stronger(a, b Tier) Tier {
	if a == TierNone {
		return b
	}
	if b == TierNone || a < b {
		return a
	}
	return b
}

// Candidate is a possible connection found by the wave scan
type Candidate struct {
	PixelID  int
	Distance float64
}

// RoutedLocation is a catalogued location that takes part in routing.
type RoutedLocation struct {
	Name       string
	Position   image.Point
	PixelID    int
	Type       LocationType
	Dungeon    DungeonType     `json:",omitempty"`
	Government GovernmentClass `json:",omitempty"`

	// Preference is assigned once & never changes afterwards
	Preference Tier

	// true if the location is surrounded by a wall (see IsWalled)
	Walled bool `json:",omitempty"`
	wall   *WallLayout

	// Candidates sorted by distance, pruned by the EdgeResolver
	Candidates      []Candidate `json:",omitempty"`
	CompletionLevel int         `json:",omitempty"`

	// true if the location sits inside the centre tile of the window
	central bool
}

// hasCandidate returns if id is in the location's candidate list
func (r *RoutedLocation) hasCandidate(id int) (float64, bool) {
	for _, c := range r.Candidates {
		if c.PixelID == id {
			return c.Distance, true
		}
	}
	return 0, false
}

// dropCandidate removes id from the candidate list (if present)
func (r *RoutedLocation) dropCandidate(id int) bool {
	for i, c := range r.Candidates {
		if c.PixelID == id {
			r.Candidates = append(r.Candidates[:i], r.Candidates[i+1:]...)
			return true
		}
	}
	return false
}

// Edge is a resolved but not yet built connection between two locations
type Edge struct {
	From     int // pixel id
	To       int // pixel id
	Tier     Tier
	Distance float64
}

// Trail is a built path for an edge, from source to destination inclusive.
type Trail struct {
	Edge *Edge
	Path []image.Point
}

// FailedEdge records an edge for which no trail could be built
type FailedEdge struct {
	Edge   *Edge
	Reason string
}

// Stats holds generic counts about a generation run
type Stats struct {
	Locations      int
	Candidates     int
	Edges          int
	TrailsBuilt    int
	TrailsFailed   int
	Crossroads     int
	GatesAligned   int
	GateMisses     int
	StitchJoined   int
	StitchRedirect int
	StitchPruned   int
	Signposts      int
	SignpostErrors int
	MissingTiles   int
}
