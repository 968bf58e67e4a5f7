/*Package nbody computes pairwise gravitational interactions among point
masses and advances them through time. Forces come from a Barnes-Hut
quadtree (see the tree subpackage), which trades the exact O(N^2) pairwise
sum for an O(N log N) traversal with error bounded by the opening angle.
Integration schemes are interchangeable behind the Integrator interface,
with fourth order Runge-Kutta as the default.
*/
package nbody

import (
	"fmt"
	"log"

	"github.com/phil-mansfield/nbody/geom"
)

// Config is the scalar configuration of a simulation. It is threaded
// explicitly through the evaluator and integrator rather than living in
// package globals.
type Config struct {
	// G is the gravitational constant. Must be positive.
	G float64
	// Softening is the Plummer softening length. Must be non-negative.
	Softening float64
	// Theta is the Barnes-Hut opening angle. Must be positive.
	Theta float64
	// TimeStep is the integration step. Must be positive.
	TimeStep float64
	// Workers is the number of goroutines used for force evaluation.
	// Zero or below means one per logical core.
	Workers int
	// Integrator selects the stepping scheme by name. Empty means "rk4".
	Integrator string
}

// DefaultConfig returns the configuration the bundled scenarios are tuned
// for: G scaled up for convenient time scales, a softening length of one
// distance unit, and RK4 stepping.
func DefaultConfig() Config {
	return Config{
		G:          6.67430e-2,
		Softening:  1.0,
		Theta:      0.5,
		TimeStep:   0.01,
		Integrator: "rk4",
	}
}

// CheckInit returns an error describing the first invalid field of con, or
// nil if the configuration is usable.
func (con *Config) CheckInit() error {
	if con.G <= 0 {
		return fmt.Errorf(
			"GravitationalConstant must be positive, but is %g.", con.G,
		)
	} else if con.Softening < 0 {
		return fmt.Errorf(
			"Softening must be non-negative, but is %g.", con.Softening,
		)
	} else if con.Theta <= 0 {
		return fmt.Errorf("Theta must be positive, but is %g.", con.Theta)
	} else if con.TimeStep <= 0 {
		return fmt.Errorf(
			"TimeStep must be positive, but is %g.", con.TimeStep,
		)
	}
	return nil
}

// Simulation owns a particle store and advances it step by step. The store
// is mutated synchronously by Step: a force evaluation never overlaps a
// mutation, and no state other than the store survives from one step to the
// next.
type Simulation struct {
	Particles []Particle

	cfg    Config
	ev     Evaluator
	integ  Integrator
	forces ForceFunc

	steps int
	log   bool
}

// NewSimulation returns a simulation over the given particle store. The
// store is owned by the simulation from here on. Configuration and particle
// data are validated up front so that a bad mass or time step fails here
// rather than as NaNs a thousand steps in.
func NewSimulation(ps []Particle, cfg Config) (*Simulation, error) {
	if err := cfg.CheckInit(); err != nil {
		return nil, err
	}
	if err := CheckParticles(ps); err != nil {
		return nil, err
	}

	integ, err := NewIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		Particles: ps,
		cfg:       cfg,
		ev:        Evaluator{Theta: cfg.Theta, Workers: cfg.Workers},
		integ:     integ,
	}
	sim.forces = sim.ev.ForceFunc(cfg.G, cfg.Softening)
	return sim, nil
}

// Log turns per-step progress logging on or off.
func (sim *Simulation) Log(flag bool) { sim.log = flag }

// Config returns the simulation's configuration.
func (sim *Simulation) Config() Config { return sim.cfg }

// Step advances the simulation by one time step.
func (sim *Simulation) Step() error {
	err := sim.integ.Integrate(sim.Particles, sim.forces, sim.cfg.TimeStep)
	if err != nil {
		return err
	}
	sim.steps++

	if sim.log && sim.steps%100 == 0 {
		log.Printf(
			"step %6d  t = %10.4f  E = %12.6g  p = %10.4g %10.4g",
			sim.steps, sim.Time(), sim.TotalEnergy(),
			sim.Momentum()[0], sim.Momentum()[1],
		)
	}
	return nil
}

// Run advances the simulation by n time steps.
func (sim *Simulation) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := sim.Step(); err != nil {
			return err
		}
	}
	return nil
}

// StepCount returns the number of completed steps.
func (sim *Simulation) StepCount() int { return sim.steps }

// Time returns the simulated time elapsed since construction.
func (sim *Simulation) Time() float64 {
	return float64(sim.steps) * sim.cfg.TimeStep
}

// KineticEnergy returns the store's total kinetic energy.
func (sim *Simulation) KineticEnergy() float64 {
	return KineticEnergy(sim.Particles)
}

// PotentialEnergy returns the store's total softened potential energy.
func (sim *Simulation) PotentialEnergy() float64 {
	return PotentialEnergy(sim.Particles, sim.cfg.G, sim.cfg.Softening)
}

// TotalEnergy returns the store's total energy.
func (sim *Simulation) TotalEnergy() float64 {
	return TotalEnergy(sim.Particles, sim.cfg.G, sim.cfg.Softening)
}

// Momentum returns the store's total linear momentum.
func (sim *Simulation) Momentum() geom.Vec {
	return Momentum(sim.Particles)
}
