package nbody

import (
	"fmt"

	"github.com/phil-mansfield/nbody/geom"
)

// Particle is a single point mass. The simulation's particle store is the
// sole owner of particle data: force evaluators only snapshot it and
// integrators mutate Position, Velocity, and Acceleration in place. A Fixed
// particle exerts force on others but is never moved.
//
// Name and Color are carried for scenario files and renderers. The core
// never reads or writes them.
type Particle struct {
	Position     geom.Vec
	Velocity     geom.Vec
	Acceleration geom.Vec
	Mass         float64
	Fixed        bool

	Name  string
	Color [3]uint8
}

// KineticEnergy returns the kinetic energy of p.
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * p.Velocity.LenSq()
}

// CheckParticles returns a descriptive error if any particle would poison
// the integration. Masses must be positive: dividing by a non-positive mass
// would silently propagate Infs and NaNs through every later step.
func CheckParticles(ps []Particle) error {
	for i := range ps {
		if ps[i].Mass <= 0 {
			return fmt.Errorf(
				"Particle %d has non-positive mass %g.", i, ps[i].Mass,
			)
		}
	}
	return nil
}
