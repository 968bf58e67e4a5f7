package tree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/nbody/geom"
)

func randomSnapshot(n int, seed int64) ([]geom.Vec, []float64) {
	gen := rand.New(rand.NewSource(seed))
	xs := make([]geom.Vec, n)
	ms := make([]float64, n)
	for i := range xs {
		xs[i] = geom.Vec{gen.Float64()*200 - 100, gen.Float64()*200 - 100}
		ms[i] = gen.Float64()*10 + 0.1
	}
	return xs, ms
}

func TestEmptyTree(t *testing.T) {
	bounds := geom.Boundary{Center: geom.Vec{3, -7}, HalfSize: 10}
	tr := Build(bounds, nil, nil)

	assert.Equal(t, 0.0, tr.Mass(), "empty tree mass")
	assert.Equal(t, bounds.Center, tr.CenterOfMass(), "empty tree com")
	assert.Equal(t, 1, tr.NodeCount(), "empty tree is a bare root")
}

func TestMassConservation(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 100, 1000} {
		xs, ms := randomSnapshot(n, int64(n))
		bounds := geom.Boundary{Center: geom.Vec{0, 0}, HalfSize: 150}
		tr := Build(bounds, xs, ms)

		sum := 0.0
		for _, m := range ms {
			sum += m
		}
		assert.InEpsilon(t, sum, tr.Mass(), 1e-10, "n = %d", n)
	}
}

func TestCenterOfMassAggregation(t *testing.T) {
	xs := []geom.Vec{{-10, 0}, {10, 0}}
	ms := []float64{1, 3}
	tr := Build(geom.Boundary{Center: geom.Vec{0, 0}, HalfSize: 20}, xs, ms)

	assert.InEpsilon(t, 4.0, tr.Mass(), 1e-12)
	com := tr.CenterOfMass()
	assert.InDelta(t, 5.0, com[0], 1e-12, "com x")
	assert.InDelta(t, 0.0, com[1], 1e-12, "com y")
}

func TestInsertOutOfBounds(t *testing.T) {
	xs := []geom.Vec{{0, 0}, {100, 100}}
	ms := []float64{1, 1}
	tr := New(geom.Boundary{Center: geom.Vec{0, 0}, HalfSize: 10}, xs, ms)

	if !tr.Insert(0) {
		t.Errorf("In-bounds insert failed.")
	}
	if tr.Insert(1) {
		t.Errorf("Out-of-bounds insert succeeded.")
	}

	tr.UpdateCenterOfMass()
	assert.InEpsilon(t, 1.0, tr.Mass(), 1e-12,
		"dropped particle contributes mass")
}

func TestSelfForceExclusion(t *testing.T) {
	xs := []geom.Vec{{5, 5}}
	ms := []float64{100}
	tr := Build(geom.Boundary{Center: geom.Vec{0, 0}, HalfSize: 10}, xs, ms)

	f := tr.ForceOn(0, 0.5, 1, 0)
	assert.Equal(t, geom.Vec{}, f, "self force")
}

func TestPairForceMatchesAnalytic(t *testing.T) {
	g, soft := 2.5, 1.5
	xs := []geom.Vec{{0, 0}, {3, 4}}
	ms := []float64{10, 20}
	tr := Build(geom.Boundary{Center: geom.Vec{1.5, 2}, HalfSize: 5}, xs, ms)

	r2 := 25.0 + soft*soft
	mag := g * ms[0] * ms[1] / (r2 * math.Sqrt(r2))
	want := geom.Vec{3 * mag, 4 * mag}

	f := tr.ForceOn(0, 0.5, g, soft)
	assert.InDelta(t, want[0], f[0], 1e-12)
	assert.InDelta(t, want[1], f[1], 1e-12)

	// Newton's third law for the exact pair.
	f2 := tr.ForceOn(1, 0.5, g, soft)
	assert.InDelta(t, -f[0], f2[0], 1e-12)
	assert.InDelta(t, -f[1], f2[1], 1e-12)
}

func TestCoincidentParticles(t *testing.T) {
	// Identical positions can never be separated by subdivision. The build
	// must terminate and the aggregates must still be exact.
	xs := []geom.Vec{{1, 1}, {1, 1}, {1, 1}, {50, 50}}
	ms := []float64{2, 3, 5, 10}
	tr := Build(geom.Boundary{Center: geom.Vec{0, 0}, HalfSize: 100}, xs, ms)

	assert.InEpsilon(t, 20.0, tr.Mass(), 1e-12)

	// With softening the stacked particles exert finite force on each other.
	f := tr.ForceOn(0, 0.5, 1, 1)
	assert.False(t, math.IsNaN(f[0]) || math.IsInf(f[0], 0), "finite force")

	// Without softening a zero-separation pair contributes nothing rather
	// than NaN.
	f0 := tr.ForceOn(0, 0.5, 1, 0)
	assert.False(t, math.IsNaN(f0[0]) || math.IsInf(f0[0], 0))

	// The far particle still feels the full stacked mass.
	ffar := tr.ForceOn(3, 0.5, 1, 0)
	r := geom.Vec{1, 1}.Sub(geom.Vec{50, 50})
	mag := 10.0 * 10.0 / (r.LenSq() * r.Len())
	assert.InEpsilon(t, mag*r[0]/10, ffar[0]/10, 1e-10)
}

func TestDeterministicStructure(t *testing.T) {
	xs, ms := randomSnapshot(200, 42)
	bounds := geom.Boundary{Center: geom.Vec{0, 0}, HalfSize: 150}

	tr1 := Build(bounds, xs, ms)
	tr2 := Build(bounds, xs, ms)

	assert.Equal(t, tr1.NodeCount(), tr2.NodeCount(), "node count")
	for i := range xs {
		f1 := tr1.ForceOn(i, 0.7, 1, 0.5)
		f2 := tr2.ForceOn(i, 0.7, 1, 0.5)
		if f1 != f2 {
			t.Fatalf("%d) Rebuild changed force: %v != %v", i, f1, f2)
		}
	}
}
