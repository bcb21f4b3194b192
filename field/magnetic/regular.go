// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package magnetic implements the regular-magnetic-field FieldProvider
// variants named in spec.md §6 (WMAP, Jaffe, Verify). The exact physical
// formulas are declared plumbing by spec.md §1 ("physical-model
// parameterisations ... are OUT OF SCOPE"); the models below are
// illustrative closed forms exercising the same Params knobs the original
// hammurabiX WMAP/Jaffe models read (original_source/src/fields/gmf/
// breg.cc is not retrieved in this pack, so shape, not exact coefficients,
// is grounded on it via param.h's field list).
package magnetic

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/field"
	"github.com/trjaffe/hammurabiX/param"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// WMAP is a logarithmic-spiral large-scale-field model, following the
// original's breg_wmap parameter set (pitch angle psi, scale height
// z-dependence via chi0).
type WMAP struct {
	B0, Psi0, Psi1, Chi0 float64
}

func (m WMAP) Sample(pos vec3.T) vec3.T {
	r := math.Hypot(pos[0], pos[1])
	if r == 0 {
		return vec3.Zero
	}
	phi := math.Atan2(pos[1], pos[0])
	psi := m.Psi0 + m.Psi1*math.Log(r/units.Kpc)
	chi := m.Chi0 * math.Tanh(pos[2]/units.Kpc)
	bphi := m.B0 * math.Cos(phi-psi*math.Log(r/units.Kpc))
	return vec3.T{
		-bphi * math.Sin(phi) * math.Cos(chi),
		bphi * math.Cos(phi) * math.Cos(chi),
		m.B0 * math.Sin(chi),
	}
}

// Jaffe is an axisymmetric disk+halo toroidal field.
type Jaffe struct {
	DiskAmp, DiskZ0 float64
	HaloAmp, HaloZ0 float64
	RScale          float64
}

func (m Jaffe) Sample(pos vec3.T) vec3.T {
	r := math.Hypot(pos[0], pos[1])
	if r == 0 {
		return vec3.Zero
	}
	phi := math.Atan2(pos[1], pos[0])
	disk := m.DiskAmp * math.Exp(-r/m.RScale) * math.Exp(-math.Abs(pos[2])/m.DiskZ0)
	halo := m.HaloAmp * math.Exp(-r/m.RScale) * math.Exp(-math.Abs(pos[2])/m.HaloZ0)
	btor := disk + halo
	return vec3.T{-btor * math.Sin(phi), btor * math.Cos(phi), 0}
}

// Verify is a uniform test field, the Go analogue of the original's
// breg_test model: constant B0 along x within radius r of the origin.
type Verify struct {
	B0, R float64
}

func (m Verify) Sample(pos vec3.T) vec3.T {
	if m.R > 0 && pos.Length() > m.R {
		return vec3.Zero
	}
	return vec3.T{m.B0, 0, 0}
}

// NewRegular builds the regular-field VectorProvider selected by p.Breg.Type.
func NewRegular(p *param.Params) field.VectorProvider {
	switch p.Breg.Type {
	case "WMAP":
		c := p.Breg.WMAP
		return WMAP{B0: c.B0, Psi0: c.Psi0, Psi1: c.Psi1, Chi0: c.Chi0}
	case "Jaffe":
		c := p.Breg.Jaffe
		return Jaffe{DiskAmp: c.DiskAmp, DiskZ0: c.DiskZ0, HaloAmp: c.HaloAmp, HaloZ0: c.HaloZ0, RScale: c.RScale}
	case "Verify":
		c := p.Breg.Verify
		return Verify{B0: c.B0, R: c.L0}
	}
	chk.Panic("magnetic: unknown regular field type %q", p.Breg.Type)
	return nil
}
