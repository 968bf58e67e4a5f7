/*Package geom contains the 2D geometric primitives used by the simulation:
vectors and the axis-aligned square regions that quadtree nodes describe.
*/
package geom

import (
	"math"
)

// Vec is a two dimensional vector.
type Vec [2]float64

// Add returns the sum of v and u.
func (v Vec) Add(u Vec) Vec { return Vec{v[0] + u[0], v[1] + u[1]} }

// Sub returns the difference of v and u.
func (v Vec) Sub(u Vec) Vec { return Vec{v[0] - u[0], v[1] - u[1]} }

// Scale returns v multiplied by the scalar s.
func (v Vec) Scale(s float64) Vec { return Vec{v[0] * s, v[1] * s} }

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 { return v[0]*u[0] + v[1]*u[1] }

// LenSq returns the squared length of v.
func (v Vec) LenSq() float64 { return v[0]*v[0] + v[1]*v[1] }

// Len returns the length of v.
func (v Vec) Len() float64 { return math.Sqrt(v.LenSq()) }

// Boundary is an axis-aligned square given by its center and half its side
// length. HalfSize must be positive.
type Boundary struct {
	Center   Vec
	HalfSize float64
}

// Size returns the full side length of b.
func (b *Boundary) Size() float64 { return 2 * b.HalfSize }

// Contains performs an inclusive box test on pt.
func (b *Boundary) Contains(pt Vec) bool {
	return pt[0] >= b.Center[0]-b.HalfSize && pt[0] <= b.Center[0]+b.HalfSize &&
		pt[1] >= b.Center[1]-b.HalfSize && pt[1] <= b.Center[1]+b.HalfSize
}

// Intersects reports whether b and b2 overlap, by the separating axis test.
func (b *Boundary) Intersects(b2 *Boundary) bool {
	return !(b2.Center[0]-b2.HalfSize > b.Center[0]+b.HalfSize ||
		b2.Center[0]+b2.HalfSize < b.Center[0]-b.HalfSize ||
		b2.Center[1]-b2.HalfSize > b.Center[1]+b.HalfSize ||
		b2.Center[1]+b2.HalfSize < b.Center[1]-b.HalfSize)
}

// quadrantOffsets gives the child centers in units of the child half-size.
// The order is NE, NW, SE, SW and insertion relies on it staying fixed.
var quadrantOffsets = [4]Vec{{1, -1}, {-1, -1}, {1, 1}, {-1, 1}}

// Quadrant returns the kth child square of b, for k in [0, 4).
func (b *Boundary) Quadrant(k int) Boundary {
	h := b.HalfSize / 2
	return Boundary{
		Center:   b.Center.Add(quadrantOffsets[k].Scale(h)),
		HalfSize: h,
	}
}
