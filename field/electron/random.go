// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package electron

import (
	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/field"
	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/param"
	"github.com/trjaffe/hammurabiX/turbulence"
	"github.com/trjaffe/hammurabiX/vec3"
)

// Global is the FFT-synthesised stochastic free-electron-density
// component (spec.md §4.2's scalar case), wiring
// turbulence.SynthesizeScalar on top of a precomputed grid.
type Global struct {
	Grid *grid.Scalar
}

func (g Global) Sample(pos vec3.T) float64 {
	return g.Grid.Interpolate(pos)
}

// NewRandom builds the random-field ScalarProvider selected by
// p.Fernd.Type, or nil if fernd is disabled (empty type).
func NewRandom(p *param.Params) field.ScalarProvider {
	switch p.Fernd.Type {
	case "":
		return nil
	case "Global":
		box := p.FerndBox.Box()
		c := p.Fernd.Global
		sp := turbulence.SpecParams{RMS: c.RMS, K0: c.K0, A0: c.A0}
		env := turbulence.Envelope{SunPosition: p.SunPositionCm(), R0: c.R0, Z0: c.Z0}
		g := turbulence.SynthesizeScalar(box, p.Fernd.Seed, sp, env)
		return Global{Grid: g}
	}
	chk.Panic("electron: unknown random field type %q", p.Fernd.Type)
	return nil
}
