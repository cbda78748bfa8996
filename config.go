package trailgraph

import (
	"log"
)

const (
	// TileSize is the width & height of a tile in pixels
	TileSize = 128

	// WindowTiles is the width & height of the working window in tiles
	WindowTiles = 3

	// WindowSize is the width & height of the working window in pixels
	WindowSize = TileSize * WindowTiles

	// SubCells is the width & height of the fine grid per pixel
	SubCells = 5

	// FineTileSize is the width & height of a fine tile
	FineTileSize = TileSize * SubCells
)

// Config holds settings for a single generation run over a 3x3 tile
// window. Most fields have sane defaults & can be left at zero.
type Config struct {
	// Tile at the centre of the window, required.
	// Only locations within this tile search for connections, locations in
	// the surrounding tiles are considered as destinations only.
	TileX int
	TileY int

	// Seed for rng (random number chosen if not set).
	// All random decisions (trail preference, tie breaks, gate coin flips,
	// signpost placement) derive from this so runs are repeatable.
	Seed int64

	// MinElevation is the lowest height a trail may be laid on (water is
	// generally below this). Default 3.
	MinElevation int

	// RiseLimit is the largest change in height allowed in a single step
	// of a trail. Default 4.
	RiseLimit int

	// Wave scan settings.
	// Scanning stops at MaxScanRadius, or earlier once CompletionTarget
	// candidates are found & the radius is at least MinScanRadius.
	// Defaults 50, 10 & 4.
	MaxScanRadius    int
	MinScanRadius    int
	CompletionTarget int

	// MaxPathSteps caps the work done building a single trail (steps +
	// backtracks). Defaults to 4 times the number of pixels in the window.
	MaxPathSteps int

	// Chances of each location type wanting a trail, DefaultChances()
	// if not given. Types missing here never want a trail.
	Chances map[LocationType]TrailChance

	// Store to load existing tiles from & save results to.
	// Optional. If not given nothing is loaded or persisted.
	Store Store

	// Logger for non fatal problems (missing gate variants, missing tiles
	// etc). log.Default() if not set.
	Logger *log.Logger
}

// init fills in defaults for unset values
func (c *Config) init() {
	if c.MinElevation == 0 {
		c.MinElevation = 3
	}
	if c.RiseLimit <= 0 {
		c.RiseLimit = 4
	}
	if c.MaxScanRadius <= 0 {
		c.MaxScanRadius = 50
	}
	if c.MinScanRadius <= 0 {
		c.MinScanRadius = 10
	}
	if c.CompletionTarget <= 0 {
		c.CompletionTarget = 4
	}
	if c.MaxPathSteps <= 0 {
		c.MaxPathSteps = 4 * WindowSize * WindowSize
	}
	if c.Chances == nil {
		c.Chances = DefaultChances()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}
