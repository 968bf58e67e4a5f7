/*Package io loads simulation input: gcfg configuration files, JSON scenario
files, and plain-text particle tables. It sits outside the simulation core;
everything here just populates the particle store and the Config scalars and
rejects invalid records before they reach the integrator.
*/
package io

import (
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/nbody"
)

const ExampleConfigFile = `[Simulation]

#######################
# Optional Parameters #
#######################
# Every parameter falls back to a usable default when unset.

# GravitationalConstant sets the strength of gravity. The default is scaled
# up from the SI value so that scenario-sized systems evolve on convenient
# time scales. Must be positive.
# GravitationalConstant = 0.0667430

# TimeStep is the integration step, in simulation time units. Must be
# positive.
# TimeStep = 0.01

# Softening is the Plummer softening length. Close encounters behave as if
# the bodies could not approach below roughly this separation, which keeps
# forces finite. Must be non-negative.
# Softening = 1.0

# Theta is the Barnes-Hut opening angle. A cluster of bodies is replaced by
# its center of mass once its angular size from the query body falls below
# Theta. Smaller values are more accurate and more expensive; 0.3 - 1.0 is
# the typical range. Must be positive.
# Theta = 0.5

# Integrator selects the stepping scheme: one of [ rk4 | euler | leapfrog ].
# Integrator = rk4

# Threads is the number of goroutines used for force evaluation. Zero or
# below means one per logical core.
# Threads = 0`

// SimulationConfig mirrors the [Simulation] section of a config file.
type SimulationConfig struct {
	GravitationalConstant float64
	TimeStep              float64
	Softening             float64
	Theta                 float64
	Integrator            string
	Threads               int
}

// ConfigWrapper is the top-level gcfg target.
type ConfigWrapper struct {
	Simulation SimulationConfig
}

// DefaultConfigWrapper returns a wrapper pre-filled with the core defaults,
// so unset file parameters keep their default values.
func DefaultConfigWrapper() *ConfigWrapper {
	def := nbody.DefaultConfig()
	return &ConfigWrapper{Simulation: SimulationConfig{
		GravitationalConstant: def.G,
		TimeStep:              def.TimeStep,
		Softening:             def.Softening,
		Theta:                 def.Theta,
		Integrator:            def.Integrator,
		Threads:               def.Workers,
	}}
}

// Config converts the file representation into the core's Config.
func (con *SimulationConfig) Config() nbody.Config {
	return nbody.Config{
		G:          con.GravitationalConstant,
		Softening:  con.Softening,
		Theta:      con.Theta,
		TimeStep:   con.TimeStep,
		Workers:    con.Threads,
		Integrator: con.Integrator,
	}
}

// ReadConfig reads and validates a [Simulation] config file. Parameters not
// set in the file keep their defaults.
func ReadConfig(fname string) (nbody.Config, error) {
	wrap := DefaultConfigWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nbody.Config{}, err
	}

	cfg := wrap.Simulation.Config()
	if err := cfg.CheckInit(); err != nil {
		return nbody.Config{}, err
	}
	return cfg, nil
}
