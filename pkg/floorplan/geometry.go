package floorplan

import "fmt"

// Point is a 2D position in database units.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// String formats the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle spanning [LL, UR].
type Rect struct {
	LL Point `json:"ll" toml:"ll"`
	UR Point `json:"ur" toml:"ur"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return r.UR.X - r.LL.X }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return r.UR.Y - r.LL.Y }

// Edge identifies one side of the die boundary. Slots are ordered
// counterclockwise: bottom left→right, right bottom→top, top right→left,
// left top→bottom.
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeRight
	EdgeTop
	EdgeLeft
)

var edgeNames = map[Edge]string{
	EdgeBottom: "bottom",
	EdgeRight:  "right",
	EdgeTop:    "top",
	EdgeLeft:   "left",
}

// String returns the lowercase edge name.
func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// ParseEdge converts an edge name ("bottom", "right", "top", "left") to an
// Edge. It returns false for unknown names.
func ParseEdge(name string) (Edge, bool) {
	for e, n := range edgeNames {
		if n == name {
			return e, true
		}
	}
	return 0, false
}

// Core is the die area the I/O boundary wraps. It supplies the mirror
// transform for mirrored pin pairs.
type Core struct {
	Bounds Rect
}

// MirroredPosition reflects a boundary position to the opposite edge of
// the core: positions on the left boundary map to the right boundary at
// the same Y, positions on the bottom map to the top at the same X, and
// vice versa. Positions not on a boundary line mirror their Y to the
// bottom edge.
func (c *Core) MirroredPosition(pos Point) Point {
	mirrored := pos
	switch {
	case pos.X == c.Bounds.LL.X:
		mirrored.X = c.Bounds.UR.X
	case pos.X == c.Bounds.UR.X:
		mirrored.X = c.Bounds.LL.X
	case pos.Y == c.Bounds.LL.Y:
		mirrored.Y = c.Bounds.UR.Y
	default:
		mirrored.Y = c.Bounds.LL.Y
	}
	return mirrored
}

// Reflector supplies the mirror-reflection transform for mirrored pins.
// Implementations must be pure: the same input always yields the same
// output, with no side effects.
type Reflector interface {
	MirroredPosition(pos Point) Point
}

var _ Reflector = (*Core)(nil)
