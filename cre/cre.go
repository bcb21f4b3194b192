// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cre implements the Cosmic-Ray Emissivity component of
// spec.md §4.3: given a position and a LOS-perpendicular magnetic
// component, return total and polarised synchrotron volume emissivity at
// the simulation frequency. Grounded on
// original_source/src/fields/cre/cre_ana.cc (analytic variant) for the
// exact gamma-function emissivity formulas.
package cre

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/param"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// Provider is the CRE FieldProvider-like contract of spec.md §4: given a
// position, the simulation frequency and the perpendicular field
// component, return (j_tot, j_pol).
type Provider interface {
	Emissivity(pos vec3.T, freq, bPerp float64) (jTot, jPol float64)
}

// Analytic implements the closed-form CRE_ana model: a power-law electron
// spectrum with position-dependent spectral index and flux normalisation.
type Analytic struct {
	Alpha, Beta, Theta float64
	R0, Z0             float64
	E0, J0             float64
	SunPosition        vec3.T
}

func (m Analytic) fluxIdx(pos vec3.T) float64 {
	r := math.Hypot(pos[0], pos[1])
	z := math.Abs(pos[2])
	return -m.Alpha + m.Beta*r + m.Theta*z
}

func (m Analytic) rescal(pos vec3.T) float64 {
	r0 := math.Hypot(m.SunPosition[0], m.SunPosition[1])
	r := math.Hypot(pos[0], pos[1])
	return math.Exp((r0-r)/m.R0) / (math.Cosh(pos[2]/m.Z0) * math.Cosh(pos[2]/m.Z0))
}

// fluxNorm is the analytic model's flux_norm, spec.md §4.3 "n0(pos)".
func (m Analytic) fluxNorm(pos vec3.T) float64 {
	gamma0 := m.E0/units.MEC2 + 1
	norm := m.J0 * math.Pow(gamma0, -m.fluxIdx(m.SunPosition))
	return norm * m.rescal(pos)
}

// Emissivity implements spec.md §4.3's j_tot/j_pol formulas.
func (m Analytic) Emissivity(pos vec3.T, freq, bPerp float64) (jTot, jPol float64) {
	if bPerp == 0 {
		return 0, 0
	}
	index := m.fluxIdx(pos)
	bAbs := math.Abs(bPerp)
	norm := m.fluxNorm(pos) * units.SynchrotronNorm * bAbs
	A := 4 * units.ElecMass * units.CLight * units.Pi * freq / (3 * units.ElecChg * bAbs)
	mu := -0.5 * (3 + index)

	gTot := math.Gamma(0.5*mu+7.0/3.0) * math.Gamma(0.5*mu+2.0/3.0) / (mu + 2)
	jTot = norm * math.Pow(A, 0.5*(index+1)) * math.Pow(2, mu+1) * gTot / (4 * units.Pi)

	gPol := math.Gamma(0.5*mu+4.0/3.0) * math.Gamma(0.5*mu+2.0/3.0)
	jPol = norm * math.Pow(A, 0.5*(index+1)) * math.Pow(2, mu) * gPol / (4 * units.Pi)
	return
}

// Verify is a single power-law CRE model with constant spectral index,
// the Go analogue of the original's cre_test model.
type Verify struct {
	Alpha float64
	R0    float64
	E0    float64
	J0    float64
}

func (m Verify) Emissivity(pos vec3.T, freq, bPerp float64) (jTot, jPol float64) {
	a := Analytic{Alpha: m.Alpha, R0: m.R0, Z0: m.R0, E0: m.E0, J0: m.J0}
	return a.Emissivity(pos, freq, bPerp)
}

// NewProvider builds the CRE Provider selected by p.CRE.Type.
func NewProvider(p *param.Params) Provider {
	switch p.CRE.Type {
	case "Analytic":
		c := p.CRE.Analytic
		return Analytic{Alpha: c.Alpha, Beta: c.Beta, Theta: c.Theta, R0: c.R0, Z0: c.Z0, E0: c.E0, J0: c.J0, SunPosition: p.SunPositionCm()}
	case "Verify":
		c := p.CRE.Verify
		return Verify{Alpha: c.Alpha, R0: c.R0, E0: c.E0, J0: c.J0}
	case "Numeric":
		return NewNumeric(p.CRE.Numeric.TableFile)
	}
	chk.Panic("cre: unknown type %q", p.CRE.Type)
	return nil
}
