package trailgraph

import (
	"encoding/json"
	"fmt"
	"image"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is returned by Generate when it can't start at all
	ErrInvalidConfig = fmt.Errorf("invalid config")

	// ErrNoWay means every route between two locations was a dead end
	ErrNoWay = fmt.Errorf("no way to destination")

	// ErrStepBudget means a trail took too many steps to find
	ErrStepBudget = fmt.Errorf("step budget exhausted")

	// ErrNoGate means a walled location has no gate blocks in its wall
	ErrNoGate = fmt.Errorf("wall has no gate")

	// ErrNoGateVariant means the gate variant table has no entry for a gate
	ErrNoGateVariant = fmt.Errorf("no gate variant for")

	// ErrSignpostCollision means a signpost key is already used by a
	// different signpost
	ErrSignpostCollision = fmt.Errorf("signpost key in use")

	// ErrTileNotFound is returned by a Store when a tile hasn't been saved
	ErrTileNotFound = fmt.Errorf("tile not found")
)

// Trailgraph holds the result of routing trails over a window
type Trailgraph struct {
	Seed  int64
	TileX int
	TileY int

	Locations []*RoutedLocation
	Edges     []*Edge
	Trails    []*Trail      `json:",omitempty"`
	Failed    []*FailedEdge `json:",omitempty"`
	Signposts []*Signpost   `json:",omitempty"`
	Stats     *Stats

	tmap *TrailMap
	fine *FineMap
}

// JSON returns the trailgraph as json.
func (t *Trailgraph) JSON() ([]byte, error) {
	return json.Marshal(t)
}

// SaveJSON writes a json file to the given path.
func (t *Trailgraph) SaveJSON(fpath string) error {
	data, err := t.JSON()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, data, 0644)
}

// Map returns the coarse trail map of the whole window
func (t *Trailgraph) Map() *TrailMap {
	return t.tmap
}

// Fine returns the fine trail map of the whole window
func (t *Trailgraph) Fine() *FineMap {
	return t.fine
}

// generator holds working state for a single run
type generator struct {
	*Trailgraph

	cfg     *Config
	terrain Terrain
	catalog Catalog
	win     window

	// routed locations by pixel id & in resolution order
	locations map[int]*RoutedLocation
	ordered   []*RoutedLocation

	// terrain heights of the window, read as needed
	heights []int
}

// Generate routes trails between the locations of the 3x3 tile window
// centred on cfg.TileX, cfg.TileY.
//
// Problems with individual trails, gates, tiles or signposts are logged &
// counted in Stats but do not stop the run; an error is returned only if
// the run cannot start.
func Generate(cfg *Config, terrain Terrain, catalog Catalog) (*Trailgraph, error) {
	if cfg == nil || terrain == nil || catalog == nil {
		return nil, fmt.Errorf("%w: config, terrain & catalog are required", ErrInvalidConfig)
	}

	g := &generator{
		Trailgraph: &Trailgraph{},
		cfg:        cfg,
		terrain:    terrain,
		catalog:    catalog,
	}
	return g.Trailgraph, g.build()
}

// build runs each stage in turn, each relies on the one before
func (g *generator) build() error {
	err := g.init()
	if err != nil {
		return err
	}

	g.loadTiles()

	found, err := g.catalog.LocationsInWindow(g.cfg.TileX, g.cfg.TileY)
	if err != nil {
		return errors.Wrapf(err, "failed to read locations for tile %d,%d", g.cfg.TileX, g.cfg.TileY)
	}

	g.discoverLocations(found)
	g.findCandidates()

	g.Edges = g.resolveEdges()
	g.buildTrails(g.Edges)
	g.alignGates()

	g.fine.render(g.tmap)
	res := g.fine.stitch(g.tmap)
	g.Stats.StitchJoined = res.Joined
	g.Stats.StitchRedirect = res.Redirected
	g.Stats.StitchPruned = res.Pruned

	g.Signposts = g.buildSignposts()
	g.Stats.Crossroads = len(g.tmap.crossroads(g.win.centre()))
	g.Locations = g.ordered

	g.persist()
	return nil
}

// init validates config & sets up working state
func (g *generator) init() error {
	g.cfg.init()
	if g.cfg.Seed == 0 {
		g.cfg.Seed = time.Now().UnixNano()
	}

	world := g.terrain.Bounds()
	g.win = newWindow(g.cfg.TileX, g.cfg.TileY, world)
	if !g.win.centre().Add(g.win.origin).Overlaps(world) {
		return fmt.Errorf("%w: tile %d,%d is outside of the world %v", ErrInvalidConfig, g.cfg.TileX, g.cfg.TileY, world)
	}

	g.Seed = g.cfg.Seed
	g.TileX = g.cfg.TileX
	g.TileY = g.cfg.TileY
	g.Stats = &Stats{}
	g.Locations = []*RoutedLocation{}
	g.Edges = []*Edge{}
	g.Trails = []*Trail{}
	g.Failed = []*FailedEdge{}
	g.Signposts = []*Signpost{}

	g.tmap = newTrailMap(g.win)
	g.fine = newFineMap(g.win)
	g.locations = map[int]*RoutedLocation{}
	g.ordered = []*RoutedLocation{}

	g.heights = make([]int, WindowSize*WindowSize)
	for i := range g.heights {
		g.heights[i] = heightUnknown
	}

	return nil
}

// loadTiles reads trails saved by earlier runs so new trails can join them.
// Missing tiles are left empty.
func (g *generator) loadTiles() {
	if g.cfg.Store == nil {
		return
	}
	for i := 0; i < WindowTiles; i++ {
		for j := 0; j < WindowTiles; j++ {
			if !g.win.tileExists(i, j) {
				continue
			}
			tx, ty := g.win.tileCoord(i, j)

			im, err := g.cfg.Store.LoadTrailTile(tx, ty)
			if errors.Is(err, ErrTileNotFound) {
				g.cfg.Logger.Printf("store: trail tile %d,%d not found, using empty tile", tx, ty)
				g.Stats.MissingTiles++
				continue
			} else if err != nil {
				g.cfg.Logger.Printf("store: failed to load trail tile %d,%d, using empty tile: %v", tx, ty, err)
				g.Stats.MissingTiles++
				continue
			}

			g.tmap.loadTile(i, j, im)
		}
	}
}

// persist saves tiles, signposts & the run audit. Failures are logged.
// Fine tiles are saved only once all their borders are stitched.
func (g *generator) persist() {
	if g.cfg.Store == nil {
		return
	}
	store := g.cfg.Store

	byTile := map[image.Point][]*Signpost{}
	for _, post := range g.Signposts {
		tx, ty := post.Tile()
		byTile[image.Pt(tx, ty)] = append(byTile[image.Pt(tx, ty)], post)
	}

	collisions := []*Signpost{}
	for i := 0; i < WindowTiles; i++ {
		for j := 0; j < WindowTiles; j++ {
			if !g.win.tileExists(i, j) {
				continue
			}
			tx, ty := g.win.tileCoord(i, j)

			err := store.SaveTrailTile(tx, ty, g.tmap.Tile(i, j))
			if err != nil {
				g.cfg.Logger.Printf("store: %v", err)
			}
			// fine tiles with an open border are left to the window that
			// can stitch them
			if g.win.tileStitched(i, j) {
				err = store.SaveFineTile(tx, ty, g.fine.Tile(i, j))
				if err != nil {
					g.cfg.Logger.Printf("store: %v", err)
				}
			}

			posts, ok := byTile[image.Pt(tx, ty)]
			if !ok {
				continue
			}

			existing, err := store.LoadSignposts(tx, ty)
			if errors.Is(err, ErrTileNotFound) {
				existing = map[uint64]*Signpost{}
			} else if err != nil {
				g.cfg.Logger.Printf("store: %v", err)
				continue
			}

			for _, post := range mergeSignposts(existing, posts) {
				g.cfg.Logger.Printf("signposts: %v", fmt.Errorf("%w: key %d at %v", ErrSignpostCollision, post.Key, post.Position))
				collisions = append(collisions, post)
			}

			err = store.SaveSignposts(tx, ty, existing)
			if err != nil {
				g.cfg.Logger.Printf("store: %v", err)
			}
		}
	}

	g.Stats.SignpostErrors = len(collisions)
	if len(collisions) > 0 {
		err := store.SaveSignpostErrors(collisions)
		if err != nil {
			g.cfg.Logger.Printf("store: %v", err)
		}
	}

	data, err := g.JSON()
	if err != nil {
		g.cfg.Logger.Printf("store: failed to encode routes: %v", err)
		return
	}
	err = store.SaveRoutes(g.TileX, g.TileY, data)
	if err != nil {
		g.cfg.Logger.Printf("store: %v", err)
	}
}
