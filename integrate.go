package nbody

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/nbody/geom"
)

// Integrator advances a particle store by one time step, given a function
// that evaluates forces for an arbitrary snapshot. Implementations must not
// depend on how that function computes its forces, must leave Fixed
// particles untouched, and must never hand the live store itself to f for a
// trial state.
type Integrator interface {
	Integrate(ps []Particle, f ForceFunc, dt float64) error
}

// NewIntegrator returns the integrator with the given name. Accepted names
// are "rk4" (the default when name is empty), "euler", and "leapfrog".
func NewIntegrator(name string) (Integrator, error) {
	switch strings.ToLower(name) {
	case "", "rk4":
		return RK4{}, nil
	case "euler":
		return SymplecticEuler{}, nil
	case "leapfrog":
		return Leapfrog{}, nil
	}
	return nil, fmt.Errorf("Unknown integrator '%s'.", name)
}

// derivative is the time derivative of a snapshot's state: dx is d/dt of
// position (velocity) and dv is d/dt of velocity (acceleration).
type derivative struct {
	dx, dv []geom.Vec
}

func newDerivative(n int) derivative {
	return derivative{make([]geom.Vec, n), make([]geom.Vec, n)}
}

// RK4 is the classic fourth order Runge-Kutta scheme: four force
// evaluations per step against trial snapshots at t, t+dt/2, t+dt/2, and
// t+dt, combined with the standard (k1 + 2 k2 + 2 k3 + k4)/6 weights.
type RK4 struct{}

func (RK4) Integrate(ps []Particle, f ForceFunc, dt float64) error {
	if err := CheckParticles(ps); err != nil {
		return err
	}

	scratch := make([]Particle, len(ps))

	k1 := rkStage(ps, scratch, newDerivative(len(ps)), 0, f)
	k2 := rkStage(ps, scratch, k1, dt/2, f)
	k3 := rkStage(ps, scratch, k2, dt/2, f)
	k4 := rkStage(ps, scratch, k3, dt, f)

	for i := range ps {
		if ps[i].Fixed {
			continue
		}
		dx := k1.dx[i].
			Add(k2.dx[i].Scale(2)).
			Add(k3.dx[i].Scale(2)).
			Add(k4.dx[i]).Scale(1.0 / 6)
		dv := k1.dv[i].
			Add(k2.dv[i].Scale(2)).
			Add(k3.dv[i].Scale(2)).
			Add(k4.dv[i]).Scale(1.0 / 6)

		ps[i].Position = ps[i].Position.Add(dx.Scale(dt))
		ps[i].Velocity = ps[i].Velocity.Add(dv.Scale(dt))
		ps[i].Acceleration = dv
	}
	return nil
}

// rkStage evaluates the derivative of the state displaced from ps by d over
// a time h. The trial state lives in scratch, never in ps. Fixed particles
// are pinned in trial states too: a fixed body's position cannot drift
// between sub-steps any more than between steps.
func rkStage(
	ps, scratch []Particle, d derivative, h float64, f ForceFunc,
) derivative {
	copy(scratch, ps)
	for i := range scratch {
		if scratch[i].Fixed {
			continue
		}
		scratch[i].Position = ps[i].Position.Add(d.dx[i].Scale(h))
		scratch[i].Velocity = ps[i].Velocity.Add(d.dv[i].Scale(h))
	}

	forces := f(scratch)

	out := newDerivative(len(ps))
	for i := range scratch {
		if scratch[i].Fixed {
			continue
		}
		out.dx[i] = scratch[i].Velocity
		out.dv[i] = forces[i].Scale(1 / scratch[i].Mass)
	}
	return out
}

// SymplecticEuler is the semi-implicit Euler scheme: one force evaluation
// per step, velocity updated first and the new velocity used for the
// position update. First order, but it does not secularly pump energy the
// way explicit Euler does.
type SymplecticEuler struct{}

func (SymplecticEuler) Integrate(ps []Particle, f ForceFunc, dt float64) error {
	if err := CheckParticles(ps); err != nil {
		return err
	}

	forces := f(ps)
	for i := range ps {
		if ps[i].Fixed {
			continue
		}
		acc := forces[i].Scale(1 / ps[i].Mass)
		ps[i].Velocity = ps[i].Velocity.Add(acc.Scale(dt))
		ps[i].Position = ps[i].Position.Add(ps[i].Velocity.Scale(dt))
		ps[i].Acceleration = acc
	}
	return nil
}

// Leapfrog is the kick-drift-kick scheme: second order, time reversible,
// two force evaluations per step.
type Leapfrog struct{}

func (Leapfrog) Integrate(ps []Particle, f ForceFunc, dt float64) error {
	if err := CheckParticles(ps); err != nil {
		return err
	}

	forces := f(ps)
	for i := range ps {
		if ps[i].Fixed {
			continue
		}
		acc := forces[i].Scale(1 / ps[i].Mass)
		ps[i].Velocity = ps[i].Velocity.Add(acc.Scale(dt / 2))
		ps[i].Position = ps[i].Position.Add(ps[i].Velocity.Scale(dt))
	}

	forces = f(ps)
	for i := range ps {
		if ps[i].Fixed {
			continue
		}
		acc := forces[i].Scale(1 / ps[i].Mass)
		ps[i].Velocity = ps[i].Velocity.Add(acc.Scale(dt / 2))
		ps[i].Acceleration = acc
	}
	return nil
}
