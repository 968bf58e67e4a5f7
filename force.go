package nbody

import (
	"math"
	"runtime"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/phil-mansfield/nbody/geom"
	"github.com/phil-mansfield/nbody/tree"
)

// boundsMargin scales the larger side of the snapshot's bounding box into
// the root half-size. Anything above 0.5 keeps every particle strictly
// inside the root, away from inclusive/exclusive edge ties.
const boundsMargin = 0.6

// ForceFunc computes one force vector per particle, index-aligned with its
// input. Integrators call it against hypothetical snapshots, so
// implementations must not retain or mutate the slice they are given.
type ForceFunc func(ps []Particle) []geom.Vec

// Evaluator computes net gravitational forces with the Barnes-Hut
// approximation: a fresh quadtree per call, and a traversal per particle
// that replaces distant clusters by their aggregated mass.
//
// Theta is the opening angle; smaller is more accurate and more expensive,
// with 0.3 - 1.0 the typical range. Workers sets the number of goroutines
// used for the per-particle traversals; zero or below means one per logical
// core.
type Evaluator struct {
	Theta   float64
	Workers int
}

// ComputeForces returns the net force on every particle of ps under
// gravitational constant g and Plummer softening length soft. The result is
// index-aligned with ps, and the call is pure: ps is read, never written.
func (ev *Evaluator) ComputeForces(ps []Particle, g, soft float64) []geom.Vec {
	forces := make([]geom.Vec, len(ps))
	if len(ps) == 0 {
		return forces
	}

	xs := make([]geom.Vec, len(ps))
	ms := make([]float64, len(ps))
	for i := range ps {
		xs[i] = ps[i].Position
		ms[i] = ps[i].Mass
	}

	tr := tree.Build(rootBounds(xs), xs, ms)

	workers := ev.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// The tree is read-only from here on and every task owns exactly one
	// output slot, so the map runs with no synchronization.
	theta := ev.Theta
	parallel.WithNumGoroutines(workers).For(len(ps), func(i, _ int) {
		forces[i] = tr.ForceOn(i, theta, g, soft)
	})

	return forces
}

// ForceFunc binds g and soft, giving the evaluation function integrators
// consume.
func (ev *Evaluator) ForceFunc(g, soft float64) ForceFunc {
	return func(ps []Particle) []geom.Vec {
		return ev.ComputeForces(ps, g, soft)
	}
}

// rootBounds returns a square centered on the snapshot's bounding box with
// enough margin that every particle passes the inclusive bounds test.
func rootBounds(xs []geom.Vec) geom.Boundary {
	min, max := xs[0], xs[0]
	for _, x := range xs {
		min[0] = math.Min(min[0], x[0])
		min[1] = math.Min(min[1], x[1])
		max[0] = math.Max(max[0], x[0])
		max[1] = math.Max(max[1], x[1])
	}

	half := boundsMargin * math.Max(max[0]-min[0], max[1]-min[1])
	if half <= 0 {
		// A single particle, or all particles stacked on one point.
		half = 1
	}
	return geom.Boundary{Center: min.Add(max).Scale(0.5), HalfSize: half}
}

// DirectForces is the exact O(N^2) pairwise sum with the same softened
// inverse square law as the tree. It is what ComputeForces converges to as
// Theta shrinks, and is the cheaper option for very small systems.
func DirectForces(ps []Particle, g, soft float64) []geom.Vec {
	forces := make([]geom.Vec, len(ps))
	for i := range ps {
		for j := range ps {
			if i == j {
				continue
			}
			dr := ps[j].Position.Sub(ps[i].Position)
			r2 := dr.LenSq() + soft*soft
			if r2 == 0 {
				continue
			}
			r3 := r2 * math.Sqrt(r2)
			forces[i] = forces[i].Add(dr.Scale(g * ps[i].Mass * ps[j].Mass / r3))
		}
	}
	return forces
}
