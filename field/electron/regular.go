// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package electron implements the regular free-electron-density
// FieldProvider variants named in spec.md §6 (YMW16, Verify). As with
// field/magnetic, the exact physical formulas are plumbing per spec.md §1;
// these are simplified thick/thin disk models exercising the same knobs
// the original YMW16 implementation's param.h lists (full fidelity would
// require the ~80-constant struct in original_source/include/param.h,
// which spec.md explicitly scopes out).
package electron

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/field"
	"github.com/trjaffe/hammurabiX/param"
	"github.com/trjaffe/hammurabiX/vec3"
)

// YMW16 is a simplified thick+thin Galactic disk electron-density model.
type YMW16 struct {
	ThickN0, ThickH1 float64
	ThinN0, ThinH1   float64
	R0               float64
}

func (m YMW16) Sample(pos vec3.T) float64 {
	r := math.Hypot(pos[0], pos[1])
	z := math.Abs(pos[2])
	radial := math.Exp(-r / m.R0)
	thick := m.ThickN0 * radial * math.Exp(-z/m.ThickH1)
	thin := m.ThinN0 * radial * math.Exp(-z/m.ThinH1)
	return thick + thin
}

// Verify is a simple exponential-disk test model, the analogue of the
// original's fereg_test model.
type Verify struct {
	N0, R0 float64
}

func (m Verify) Sample(pos vec3.T) float64 {
	r := math.Hypot(pos[0], pos[1])
	return m.N0 * math.Exp(-r/m.R0)
}

// NewRegular builds the regular-field ScalarProvider selected by p.Fereg.Type.
func NewRegular(p *param.Params) field.ScalarProvider {
	switch p.Fereg.Type {
	case "YMW16":
		c := p.Fereg.YMW16
		return YMW16{ThickN0: c.ThickN0, ThickH1: c.ThickH1, ThinN0: c.ThinN0, ThinH1: c.ThinH1, R0: c.R0}
	case "Verify":
		c := p.Fereg.Verify
		return Verify{N0: c.N0, R0: c.R0}
	}
	chk.Panic("electron: unknown regular field type %q", p.Fereg.Type)
	return nil
}
