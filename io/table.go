package io

import (
	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/nbody"
	"github.com/phil-mansfield/nbody/geom"
)

// ReadParticleTable reads particles from a whitespace-separated text table
// with one body per row and the columns (x, y, vx, vy, mass, fixed), where
// fixed is 0 or 1. This is the convenient format for large generated
// systems, where JSON scenarios get unwieldy.
func ReadParticleTable(fname string) ([]nbody.Particle, error) {
	xCol, yCol, vxCol, vyCol, mCol, fixedCol := 0, 1, 2, 3, 4, 5
	colIdxs := []int{xCol, yCol, vxCol, vyCol, mCol, fixedCol}

	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}
	xs, ys, vxs, vys, ms, fs :=
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5]

	ps := make([]nbody.Particle, len(xs))
	for i := range ps {
		ps[i] = nbody.Particle{
			Position: geom.Vec{xs[i], ys[i]},
			Velocity: geom.Vec{vxs[i], vys[i]},
			Mass:     ms[i],
			Fixed:    fs[i] != 0,
			Color:    [3]uint8{255, 255, 255},
		}
	}

	if err := nbody.CheckParticles(ps); err != nil {
		return nil, err
	}
	return ps, nil
}
