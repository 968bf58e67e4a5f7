/*Package tree implements the Barnes-Hut quadtree used to approximate
pairwise gravitational forces. A tree is built once per force evaluation from
a position/mass snapshot and is read-only afterwards, so concurrent force
queries against it need no synchronization.

Nodes live in a single arena slice and address their children by index, which
keeps a full rebuild every step from churning the allocator.
*/
package tree

import (
	"math"

	"github.com/phil-mansfield/nbody/geom"
)

const (
	// nilRef marks an empty child slot or particle slot.
	nilRef = -1

	// minHalfFrac scales the root half-size down to the smallest cell that
	// is still allowed to subdivide. Below it, leaves chain particles
	// instead, so coincident positions cannot recurse without bound.
	minHalfFrac = 1.0 / (1 << 48)
)

type node struct {
	bounds   geom.Boundary
	children [4]int32
	particle int32
	leaf     bool

	mass float64
	com  geom.Vec
}

// Tree is a quadtree over a snapshot of particle positions and masses. The
// snapshot slices are referenced, never copied; they must not be mutated
// while the tree is in use.
type Tree struct {
	nodes []node
	xs    []geom.Vec
	ms    []float64

	// next links particles chained onto the same minimum-size leaf.
	next    []int32
	minHalf float64
}

// New returns an empty tree over the given snapshot, rooted at bounds.
// HalfSize of bounds must be positive.
func New(bounds geom.Boundary, xs []geom.Vec, ms []float64) *Tree {
	t := &Tree{
		nodes:   make([]node, 1, 2*len(xs)+1),
		xs:      xs,
		ms:      ms,
		next:    make([]int32, len(xs)),
		minHalf: bounds.HalfSize * minHalfFrac,
	}
	t.nodes[0] = newNode(bounds)
	return t
}

// Build returns the tree for the given snapshot: every particle inserted and
// the center-of-mass pass run. Particles outside bounds are dropped, so the
// caller is responsible for sizing bounds around the snapshot.
func Build(bounds geom.Boundary, xs []geom.Vec, ms []float64) *Tree {
	t := New(bounds, xs, ms)
	for i := range xs {
		t.Insert(i)
	}
	t.UpdateCenterOfMass()
	return t
}

func newNode(bounds geom.Boundary) node {
	return node{
		bounds:   bounds,
		children: [4]int32{nilRef, nilRef, nilRef, nilRef},
		particle: nilRef,
		leaf:     true,
	}
}

// Insert adds particle i of the snapshot to the tree. It returns false, and
// inserts nothing, if the particle lies outside the root boundary.
func (t *Tree) Insert(i int) bool {
	return t.insert(0, int32(i))
}

func (t *Tree) insert(ni, p int32) bool {
	// The arena may grow inside this call, so nodes are always re-indexed
	// through t.nodes rather than held by pointer.
	if !t.nodes[ni].bounds.Contains(t.xs[p]) {
		return false
	}

	if t.nodes[ni].leaf {
		if t.nodes[ni].particle == nilRef {
			t.nodes[ni].particle = p
			t.next[p] = nilRef
			return true
		}
		if t.nodes[ni].bounds.HalfSize <= t.minHalf {
			// Coincident, or close enough that subdividing would never
			// separate them: chain onto the leaf.
			t.next[p] = t.nodes[ni].particle
			t.nodes[ni].particle = p
			return true
		}
		t.subdivide(ni)
	}

	for k := 0; k < 4; k++ {
		if t.insert(t.nodes[ni].children[k], p) {
			return true
		}
	}
	return false
}

// subdivide turns a full leaf into an internal node with four child leaves
// covering its quadrants, and reinserts the particle it held.
func (t *Tree) subdivide(ni int32) {
	for k := 0; k < 4; k++ {
		child := newNode(t.nodes[ni].bounds.Quadrant(k))
		t.nodes = append(t.nodes, child)
		t.nodes[ni].children[k] = int32(len(t.nodes) - 1)
	}

	p := t.nodes[ni].particle
	t.nodes[ni].particle = nilRef
	t.nodes[ni].leaf = false

	for k := 0; k < 4; k++ {
		if t.insert(t.nodes[ni].children[k], p) {
			break
		}
	}
}

// UpdateCenterOfMass recomputes the cached mass and center of mass of every
// node, bottom-up. Build calls it after the last insert; it must be rerun if
// Insert is called afterwards.
func (t *Tree) UpdateCenterOfMass() {
	t.updateCenterOfMass(0)
}

func (t *Tree) updateCenterOfMass(ni int32) {
	n := &t.nodes[ni]

	n.mass, n.com = 0, geom.Vec{}

	if n.leaf {
		for p := n.particle; p != nilRef; p = t.next[p] {
			n.mass += t.ms[p]
			n.com = n.com.Add(t.xs[p].Scale(t.ms[p]))
		}
	} else {
		for k := 0; k < 4; k++ {
			ci := n.children[k]
			t.updateCenterOfMass(ci)
			c := &t.nodes[ci]
			if c.mass == 0 {
				continue
			}
			n.mass += c.mass
			n.com = n.com.Add(c.com.Scale(c.mass))
		}
	}

	if n.mass > 0 {
		n.com = n.com.Scale(1 / n.mass)
	} else {
		// Physically inert default: zero mass contributes no force.
		n.com = n.bounds.Center
	}
}

// Mass returns the total mass held by the tree, i.e. the summed mass of
// every particle that was successfully inserted.
func (t *Tree) Mass() float64 { return t.nodes[0].mass }

// CenterOfMass returns the center of mass of the whole tree.
func (t *Tree) CenterOfMass() geom.Vec { return t.nodes[0].com }

// NodeCount returns the number of nodes in the arena.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// ForceOn returns the net gravitational force on particle i of the snapshot,
// with opening angle theta, gravitational constant g, and Plummer softening
// length soft. The particle's own contribution is excluded.
func (t *Tree) ForceOn(i int, theta, g, soft float64) geom.Vec {
	return t.forceOn(0, int32(i), theta, g, soft)
}

func (t *Tree) forceOn(ni, p int32, theta, g, soft float64) geom.Vec {
	n := &t.nodes[ni]
	if n.mass == 0 {
		return geom.Vec{}
	}

	if n.leaf {
		f := geom.Vec{}
		for q := n.particle; q != nilRef; q = t.next[q] {
			if q == p {
				continue
			}
			f = f.Add(pointForce(t.xs[p], t.xs[q], g*t.ms[p]*t.ms[q], soft))
		}
		return f
	}

	dr := n.com.Sub(t.xs[p])
	d := math.Sqrt(dr.LenSq() + soft*soft)
	if n.bounds.Size()/d < theta {
		return pointForce(t.xs[p], n.com, g*t.ms[p]*n.mass, soft)
	}

	f := geom.Vec{}
	for k := 0; k < 4; k++ {
		f = f.Add(t.forceOn(n.children[k], p, theta, g, soft))
	}
	return f
}

// pointForce is the softened inverse square law. The same r^3 denominator is
// used for exact pairs and for aggregated nodes, so the force is continuous
// across the opening criterion.
func pointForce(at, src geom.Vec, gmm, soft float64) geom.Vec {
	dr := src.Sub(at)
	r2 := dr.LenSq() + soft*soft
	if r2 == 0 {
		return geom.Vec{}
	}
	r3 := r2 * math.Sqrt(r2)
	return dr.Scale(gmm / r3)
}
