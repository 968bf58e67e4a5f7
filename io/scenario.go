package io

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/phil-mansfield/nbody"
	"github.com/phil-mansfield/nbody/geom"
)

// Scenario is the JSON description of an initial system: a particle list
// and, optionally, overrides for the physical settings.
type Scenario struct {
	Name      string             `json:"name,omitempty"`
	Particles []ScenarioParticle `json:"particles"`
	Settings  *ScenarioSettings  `json:"settings,omitempty"`
}

// ScenarioParticle is one body of a scenario file.
type ScenarioParticle struct {
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
	Mass     float64    `json:"mass"`
	Color    *[3]uint8  `json:"color,omitempty"`
	Name     string     `json:"name,omitempty"`
	Fixed    bool       `json:"fixed,omitempty"`
}

// ScenarioSettings overrides Config fields. Pointers distinguish "absent"
// from zero, so a scenario can set Softening = 0 explicitly.
type ScenarioSettings struct {
	GravitationalConstant *float64 `json:"gravitational_constant,omitempty"`
	TimeStep              *float64 `json:"time_step,omitempty"`
	Softening             *float64 `json:"softening,omitempty"`
}

// ReadScenario reads and validates a scenario file. Invalid particle data is
// rejected here, at the input boundary, rather than inside the force or
// integration core.
func ReadScenario(fname string) (*Scenario, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := &Scenario{}
	if err := json.NewDecoder(f).Decode(sc); err != nil {
		return nil, fmt.Errorf("Could not parse scenario '%s': %s",
			fname, err.Error())
	}
	if err := sc.CheckInit(); err != nil {
		return nil, err
	}
	return sc, nil
}

// CheckInit returns an error describing the first invalid record of sc.
func (sc *Scenario) CheckInit() error {
	if len(sc.Particles) == 0 {
		return fmt.Errorf("Scenario '%s' contains no particles.", sc.Name)
	}
	for i, p := range sc.Particles {
		if p.Mass <= 0 {
			return fmt.Errorf(
				"Particle %d ('%s') of scenario '%s' has "+
					"non-positive mass %g.",
				i, p.Name, sc.Name, p.Mass,
			)
		}
	}
	if s := sc.Settings; s != nil {
		if s.GravitationalConstant != nil && *s.GravitationalConstant <= 0 {
			return fmt.Errorf(
				"Scenario '%s' sets a non-positive "+
					"gravitational_constant.", sc.Name,
			)
		}
		if s.TimeStep != nil && *s.TimeStep <= 0 {
			return fmt.Errorf(
				"Scenario '%s' sets a non-positive time_step.", sc.Name,
			)
		}
		if s.Softening != nil && *s.Softening < 0 {
			return fmt.Errorf(
				"Scenario '%s' sets a negative softening.", sc.Name,
			)
		}
	}
	return nil
}

// ParticleStore converts the scenario's particle list into the store the
// simulation owns.
func (sc *Scenario) ParticleStore() []nbody.Particle {
	ps := make([]nbody.Particle, len(sc.Particles))
	for i, p := range sc.Particles {
		ps[i] = nbody.Particle{
			Position: geom.Vec{p.Position[0], p.Position[1]},
			Velocity: geom.Vec{p.Velocity[0], p.Velocity[1]},
			Mass:     p.Mass,
			Fixed:    p.Fixed,
			Name:     p.Name,
		}
		if p.Color != nil {
			ps[i].Color = *p.Color
		} else {
			ps[i].Color = [3]uint8{255, 255, 255}
		}
	}
	return ps
}

// ApplySettings writes the scenario's setting overrides, if any, into cfg.
func (sc *Scenario) ApplySettings(cfg *nbody.Config) {
	if sc.Settings == nil {
		return
	}
	if sc.Settings.GravitationalConstant != nil {
		cfg.G = *sc.Settings.GravitationalConstant
	}
	if sc.Settings.TimeStep != nil {
		cfg.TimeStep = *sc.Settings.TimeStep
	}
	if sc.Settings.Softening != nil {
		cfg.Softening = *sc.Settings.Softening
	}
}

// DefaultScenario returns the built-in four body system: a heavy central
// "Sun" and three light planets.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name: "Default",
		Particles: []ScenarioParticle{
			{
				Position: [2]float64{400, 300}, Mass: 5000,
				Color: &[3]uint8{255, 255, 0}, Name: "Sun",
			},
			{
				Position: [2]float64{400, 200},
				Velocity: [2]float64{50, 0}, Mass: 10,
				Color: &[3]uint8{0, 255, 255}, Name: "Planet 1",
			},
			{
				Position: [2]float64{550, 300},
				Velocity: [2]float64{0, 35}, Mass: 20,
				Color: &[3]uint8{255, 0, 0}, Name: "Planet 2",
			},
			{
				Position: [2]float64{400, 450},
				Velocity: [2]float64{-30, 0}, Mass: 15,
				Color: &[3]uint8{0, 255, 0}, Name: "Planet 3",
			},
		},
	}
}
