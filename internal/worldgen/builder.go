package worldgen

import (
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/unixpickle/model3d/model2d"
)

// Builder places points ('sites') within some bounds with some structure
// to how they're laid out; sites may be required to keep apart, sit on dry
// land etc.
type Builder struct {
	bounds image.Rectangle
	sites  []image.Point
	rng    *rand.Rand
	sfilt  []SiteFilter
	cfilt  []CandidateFilter

	// lookup of sites, rebuilt lazily after sites are added
	tree  *model2d.CoordTree
	index map[model2d.Coord]int
}

// NewBuilder returns a new site builder
func NewBuilder(bounds image.Rectangle) *Builder {
	return &Builder{
		bounds: bounds,
		sites:  []image.Point{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SiteCount returns how many sites we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// Sites returns all sites, indexed by site ID
func (b *Builder) Sites() []image.Point {
	return b.sites
}

// SetSeed sets our internal RNG seed
func (b *Builder) SetSeed(seed int64) {
	b.rng = rand.New(rand.NewSource(seed))
}

// SetCandidateFilters sets filters that accept / reject a proposed site without
// reference to other currently set site(s).
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// SetSiteFilters sets filters that compare proposed sites to all current sites.
func (b *Builder) SetSiteFilters(f ...SiteFilter) {
	b.sfilt = f
}

// AddRandomSite places a site at random, assuming it obeys all currently set filters.
func (b *Builder) AddRandomSite() (int, int, int, bool) {
	candidateX := b.rng.Intn(b.bounds.Dx()) + b.bounds.Min.X
	candidateY := b.rng.Intn(b.bounds.Dy()) + b.bounds.Min.Y

	if !b.accepted(candidateX, candidateY) {
		return 0, 0, 0, false
	}

	return candidateX, candidateY, b.addSite(candidateX, candidateY), true
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(x, y int) (int, bool) {
	if !image.Pt(x, y).In(b.bounds) || !b.accepted(x, y) {
		return 0, false
	}
	return b.addSite(x, y), true
}

// SiteFor returns the ID of the nearest site to the given point, or -1 if
// there are no sites.
func (b *Builder) SiteFor(x, y int) int {
	if len(b.sites) == 0 {
		return -1
	}
	if b.tree == nil {
		coords := make([]model2d.Coord, 0, len(b.sites))
		b.index = map[model2d.Coord]int{}
		for i, s := range b.sites {
			c := model2d.Coord{X: float64(s.X), Y: float64(s.Y)}
			if _, ok := b.index[c]; ok {
				continue
			}
			b.index[c] = i
			coords = append(coords, c)
		}
		b.tree = model2d.NewCoordTree(coords)
	}

	nearest := b.tree.KNN(1, model2d.Coord{X: float64(x), Y: float64(y)})
	if len(nearest) == 0 {
		return -1
	}
	return b.index[nearest[0]]
}

// accepted returns if the proposed site location (x, y) is acceptable to our filters.
// We run CandidateFilter(s) first so we can hopefully reject candidates early.
func (b *Builder) accepted(candidateX, candidateY int) bool {
	for _, fn := range b.cfilt {
		if !fn(candidateX, candidateY) {
			return false
		}
	}

	// check if we can reject with any SiteFilter, for every site
	for _, s := range b.sites {
		for _, fn := range b.sfilt {
			if !fn(candidateX, candidateY, s.X, s.Y) {
				return false
			}
		}
	}

	return true
}

// calculateDist standard pythag.
func calculateDist(ax, ay, bx, by int) float64 {
	return math.Sqrt(math.Pow(float64(ax-bx), 2) + math.Pow(float64(ay-by), 2))
}

// addSite adds a site, no filters are run.
func (b *Builder) addSite(x, y int) int {
	id := len(b.sites)
	b.sites = append(b.sites, image.Pt(x, y))
	b.tree = nil
	return id
}
