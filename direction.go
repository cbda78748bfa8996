package trailgraph

import (
	"image"

	"github.com/boljen/go-bitmap"
)

// Direction is one of the eight compass octants. The value doubles as the
// bit number of the octant inside a Mask.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// AllDirections in clockwise order starting from North
var AllDirections = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var (
	dirVectors = [8]image.Point{
		{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	}
	dirNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
)

// String returns the short compass name
func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "?"
	}
	return dirNames[d]
}

// Vector returns the unit step for this direction
func (d Direction) Vector() image.Point {
	return dirVectors[d&7]
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	return d.Rotate(4)
}

// Rotate turns clockwise by n octants (negative n turns anti-clockwise)
func (d Direction) Rotate(n int) Direction {
	return Direction(((int(d)+n)%8 + 8) % 8)
}

// Cardinal returns if this is one of N, E, S, W
func (d Direction) Cardinal() bool {
	return d%2 == 0
}

// DirectionOf returns the octant that best matches the step (dx, dy).
// Only the sign of each component matters. (0, 0) is not a direction.
func DirectionOf(dx, dy int) (Direction, bool) {
	v := image.Pt(sign(dx), sign(dy))
	for i, dv := range dirVectors {
		if dv == v {
			return Direction(i), true
		}
	}
	return North, false
}

// octantDistance returns how many octants apart a & b are (0-4)
func octantDistance(a, b Direction) int {
	d := ((int(a)-int(b))%8 + 8) % 8
	if d > 4 {
		d = 8 - d
	}
	return d
}

// Mask is an 8 bit direction bitmask, one bit per octant.
type Mask uint8

// Has returns if the octant bit is set
func (m Mask) Has(d Direction) bool {
	return bitmap.Bitmap{byte(m)}.Get(int(d))
}

// With returns the mask with the octant bit set
func (m Mask) With(d Direction) Mask {
	return m.set(d, true)
}

// Without returns the mask with the octant bit cleared
func (m Mask) Without(d Direction) Mask {
	return m.set(d, false)
}

func (m Mask) set(d Direction, v bool) Mask {
	bm := bitmap.Bitmap{byte(m)}
	bm.Set(int(d), v)
	return Mask(bm[0])
}

// Count returns the number of set octants
func (m Mask) Count() int {
	n := 0
	for _, d := range AllDirections {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// Directions returns the set octants in clockwise order
func (m Mask) Directions() []Direction {
	out := []Direction{}
	for _, d := range AllDirections {
		if m.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// MaskOf builds a mask with the given octants set
func MaskOf(dirs ...Direction) Mask {
	m := Mask(0)
	for _, d := range dirs {
		m = m.With(d)
	}
	return m
}

// IsCrossRoad returns if the combined (road|dirt|track) mask describes a
// junction, that is, three or more octants are in use.
func IsCrossRoad(union Mask) bool {
	return union.Count() >= 3
}

// sign returns -1, 0 or 1
func sign(i int) int {
	if i < 0 {
		return -1
	} else if i > 0 {
		return 1
	}
	return 0
}
