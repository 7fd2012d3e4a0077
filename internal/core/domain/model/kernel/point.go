package kernel

import "fmt"

// Base is the single depot every drone departs from and returns to.
var Base = Point{}

// Point is an integer position on the delivery grid.
// Unlike most kernel types the zero value is meaningful: it is Base.
//
// Example:
//
//	p := kernel.NewPoint(2, 3)
//	d := kernel.Base.Distance(p) // 5
type Point struct {
	x int
	y int
}

// NewPoint creates a Point. Coordinates are not bounded by the grid size;
// the grid is declared context only.
func NewPoint(x, y int) Point {
	return Point{x: x, y: y}
}

// X returns the horizontal coordinate.
func (p Point) X() int {
	return p.x
}

// Y returns the vertical coordinate.
func (p Point) Y() int {
	return p.y
}

// IsEqual reports whether both coordinates match.
func (p Point) IsEqual(other Point) bool {
	return p == other
}

// Distance returns the Manhattan distance |x1-x2| + |y1-y2|.
// Drones move on an axis-aligned grid, so there is no diagonal travel.
//
// Example:
//
//	a := kernel.NewPoint(1, 1)
//	b := kernel.NewPoint(4, 5)
//	a.Distance(b) // 7
func (p Point) Distance(other Point) int {
	return abs(p.x-other.x) + abs(p.y-other.y)
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("Point(%d,%d)", p.x, p.y)
}

// Distance is the free-function form of Point.Distance.
func Distance(a, b Point) int {
	return a.Distance(b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
