/*energydrift measures the energy drift of each integration scheme on a
two-body orbit as the time step shrinks, and plots the result. RK4 should
show fourth order convergence, leapfrog second, semi-implicit Euler first.

Usage: $ energydrift plot_dir
*/
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/nbody"
	"github.com/phil-mansfield/nbody/geom"
)

const (
	g     = 1.0
	total = 20.0
)

var (
	schemes = []string{"rk4", "leapfrog", "euler"}
	colors  = []string{"DarkSlateBlue", "DarkTurquoise", "DeepPink"}
	dts     = []float64{0.2, 0.1, 0.05, 0.025, 0.0125}
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: $ %s plot_dir", os.Args[0])
	}
	plotDir := os.Args[1]

	plt.Figure()
	for si, scheme := range schemes {
		drifts := make([]float64, len(dts))
		for di, dt := range dts {
			drifts[di] = drift(scheme, dt)
			fmt.Printf("%-8s dt = %-7g |dE/E| = %g\n",
				scheme, dt, drifts[di])
		}
		plt.Plot(dts, drifts, plt.LW(3), plt.C(colors[si]))
	}

	plt.Title("Energy drift over a fixed interval")
	plt.XLabel(`$\Delta t$`, plt.FontSize(16))
	plt.YLabel(`$|\Delta E / E|$`, plt.FontSize(16))
	plt.XScale("log")
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(path.Join(plotDir, "energy_drift.png"))

	plt.Execute()
}

// drift integrates a mildly eccentric two-body orbit for a fixed interval at
// the given step and returns the relative energy error at the end.
func drift(scheme string, dt float64) float64 {
	ps := []nbody.Particle{
		{Position: geom.Vec{-10, 0}, Velocity: geom.Vec{0, -1.2}, Mass: 50},
		{Position: geom.Vec{10, 0}, Velocity: geom.Vec{0, 1.2}, Mass: 50},
	}

	integ, err := nbody.NewIntegrator(scheme)
	if err != nil {
		log.Fatal(err.Error())
	}

	f := func(ps []nbody.Particle) []geom.Vec {
		return nbody.DirectForces(ps, g, 0)
	}

	e0 := nbody.TotalEnergy(ps, g, 0)
	steps := int(total / dt)
	for step := 0; step < steps; step++ {
		if err := integ.Integrate(ps, f, dt); err != nil {
			log.Fatal(err.Error())
		}
	}

	return math.Abs((nbody.TotalEnergy(ps, g, 0) - e0) / e0)
}
