package trailgraph

import (
	"image"
	"strings"
)

// Terrain tells trailgraph about the ground trails are laid over.
// Trails avoid water (low elevation) and steep changes in height.
type Terrain interface {
	// elevation of the given world pixel
	HeightAt(x, y int) int

	// bounds of the whole world, used to number pixels
	Bounds() image.Rectangle
}

// Catalog supplies the locations trails connect.
type Catalog interface {
	// all placed locations in the 3x3 tile window centred on tileX, tileY
	LocationsInWindow(tileX, tileY int) ([]*CatalogLocation, error)

	// the wall block layout of a settlement. A nil layout (and nil error)
	// means the location has no layout & hence no walls.
	WallLayout(loc *CatalogLocation) (*WallLayout, error)
}

// CatalogLocation is a location as supplied by a Catalog
type CatalogLocation struct {
	Name       string
	Position   image.Point
	Type       LocationType
	Dungeon    DungeonType
	Government GovernmentClass
	Hidden     bool
}

const (
	// block names starting with this are part of a wall
	WallMarker = "WALL"

	// wall blocks containing this are gates
	GateMarker = "GATE"
)

// WallLayout is the block layout of a settlement, Blocks are given in row
// major order (Width * Height names).
type WallLayout struct {
	Width  int
	Height int
	Blocks []string
}

// Block returns the name of the block at x,y
func (w *WallLayout) Block(x, y int) string {
	if x < 0 || y < 0 || x >= w.Width || y >= w.Height {
		return ""
	}
	i := y*w.Width + x
	if i >= len(w.Blocks) {
		return ""
	}
	return w.Blocks[i]
}

// IsWalled returns if any block of the layout is a wall
func IsWalled(w *WallLayout) bool {
	if w == nil {
		return false
	}
	for _, name := range w.Blocks {
		if strings.HasPrefix(name, WallMarker) {
			return true
		}
	}
	return false
}

// isGateBlock returns if the block name marks a gate in a wall
func isGateBlock(name string) bool {
	return strings.HasPrefix(name, WallMarker) && strings.Contains(name, GateMarker)
}

// Store persists & loads per tile artifacts. See DirStore.
type Store interface {
	// coarse trail tile, one packed TrailCell per pixel
	LoadTrailTile(tileX, tileY int) (*image.NRGBA, error)
	SaveTrailTile(tileX, tileY int, im *image.NRGBA) error

	// fine (5x) trail tile
	LoadFineTile(tileX, tileY int) (*image.NRGBA, error)
	SaveFineTile(tileX, tileY int, im *image.NRGBA) error

	// signposts by key for a tile
	LoadSignposts(tileX, tileY int) (map[uint64]*Signpost, error)
	SaveSignposts(tileX, tileY int, posts map[uint64]*Signpost) error
	SaveSignpostErrors(posts []*Signpost) error

	// audit / debug information about a run
	SaveRoutes(tileX, tileY int, data []byte) error
}
