package nbody

import (
	"math"

	"github.com/phil-mansfield/nbody/geom"
)

// KineticEnergy returns the total kinetic energy of the system.
func KineticEnergy(ps []Particle) float64 {
	sum := 0.0
	for i := range ps {
		sum += ps[i].KineticEnergy()
	}
	return sum
}

// PotentialEnergy returns the total gravitational potential energy of the
// system under the same softened law the force evaluators use,
// U = -g m_i m_j / sqrt(r^2 + soft^2) over all pairs. It is an O(N^2)
// diagnostic and is not part of the force path.
func PotentialEnergy(ps []Particle, g, soft float64) float64 {
	sum := 0.0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			r2 := ps[j].Position.Sub(ps[i].Position).LenSq() + soft*soft
			if r2 == 0 {
				continue
			}
			sum -= g * ps[i].Mass * ps[j].Mass / math.Sqrt(r2)
		}
	}
	return sum
}

// TotalEnergy returns the sum of kinetic and potential energy. For a closed
// system its drift over many steps measures integration error.
func TotalEnergy(ps []Particle, g, soft float64) float64 {
	return KineticEnergy(ps) + PotentialEnergy(ps, g, soft)
}

// Momentum returns the total linear momentum of the system.
func Momentum(ps []Particle) geom.Vec {
	p := geom.Vec{}
	for i := range ps {
		p = p.Add(ps[i].Velocity.Scale(ps[i].Mass))
	}
	return p
}
