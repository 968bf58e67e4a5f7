package geom

import (
	"math/rand"
	"testing"
)

func TestBoundaryContains(t *testing.T) {
	b := &Boundary{Vec{10, -5}, 4}

	table := []struct {
		pt Vec
		in bool
	}{
		{Vec{10, -5}, true},
		{Vec{14, -5}, true},  // right edge, inclusive
		{Vec{6, -5}, true},   // left edge, inclusive
		{Vec{10, -1}, true},  // top edge, inclusive
		{Vec{10, -9}, true},  // bottom edge, inclusive
		{Vec{14, -1}, true},  // corner, inclusive
		{Vec{14.001, -5}, false},
		{Vec{10, -9.001}, false},
		{Vec{-10, 5}, false},
	}

	for i, test := range table {
		if b.Contains(test.pt) != test.in {
			t.Errorf(
				"%d) Contains(%v) = %v, expected %v",
				i+1, test.pt, !test.in, test.in,
			)
		}
	}
}

func TestBoundaryIntersects(t *testing.T) {
	b := &Boundary{Vec{0, 0}, 2}

	table := []struct {
		b2        Boundary
		intersect bool
	}{
		{Boundary{Vec{0, 0}, 2}, true},
		{Boundary{Vec{3, 0}, 2}, true},
		{Boundary{Vec{4, 0}, 2}, true}, // touching edges
		{Boundary{Vec{5, 0}, 2}, false},
		{Boundary{Vec{0, -5}, 2}, false},
		{Boundary{Vec{4, 4}, 2}, true}, // touching corners
		{Boundary{Vec{0, 0}, 0.5}, true},
		{Boundary{Vec{100, 100}, 1}, false},
	}

	for i, test := range table {
		if b.Intersects(&test.b2) != test.intersect {
			t.Errorf(
				"%d) Intersects(%v) = %v, expected %v",
				i+1, test.b2, !test.intersect, test.intersect,
			)
		}
		if test.b2.Intersects(b) != test.intersect {
			t.Errorf("%d) Intersects is not symmetric for %v", i+1, test.b2)
		}
	}
}

func TestQuadrantGeometry(t *testing.T) {
	b := &Boundary{Vec{2, 6}, 8}
	h := b.HalfSize / 2

	centers := [4]Vec{
		{2 + h, 6 - h}, // NE
		{2 - h, 6 - h}, // NW
		{2 + h, 6 + h}, // SE
		{2 - h, 6 + h}, // SW
	}

	for k := 0; k < 4; k++ {
		q := b.Quadrant(k)
		if q.HalfSize != h {
			t.Errorf("%d) Quadrant half-size = %g, expected %g",
				k, q.HalfSize, h)
		}
		if q.Center != centers[k] {
			t.Errorf("%d) Quadrant center = %v, expected %v",
				k, q.Center, centers[k])
		}
		if !b.Intersects(&q) {
			t.Errorf("%d) Quadrant does not intersect its parent", k)
		}
	}
}

func TestQuadrantsCoverParent(t *testing.T) {
	rand.Seed(0)
	b := &Boundary{Vec{-3, 1}, 5}

	for i := 0; i < 1000; i++ {
		pt := Vec{
			b.Center[0] + (rand.Float64()*2-1)*b.HalfSize,
			b.Center[1] + (rand.Float64()*2-1)*b.HalfSize,
		}

		n := 0
		for k := 0; k < 4; k++ {
			q := b.Quadrant(k)
			if q.Contains(pt) {
				n++
			}
		}
		if n == 0 {
			t.Errorf("%d) No quadrant contains %v", i+1, pt)
		}
	}
}

func TestVecOps(t *testing.T) {
	v, u := Vec{3, 4}, Vec{-1, 2}

	if v.Add(u) != (Vec{2, 6}) {
		t.Errorf("Add: got %v", v.Add(u))
	}
	if v.Sub(u) != (Vec{4, 2}) {
		t.Errorf("Sub: got %v", v.Sub(u))
	}
	if v.Scale(2) != (Vec{6, 8}) {
		t.Errorf("Scale: got %v", v.Scale(2))
	}
	if v.Dot(u) != 5 {
		t.Errorf("Dot: got %g", v.Dot(u))
	}
	if v.Len() != 5 {
		t.Errorf("Len: got %g", v.Len())
	}
	if v.LenSq() != 25 {
		t.Errorf("LenSq: got %g", v.LenSq())
	}
}
