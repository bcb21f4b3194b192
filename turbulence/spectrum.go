// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package turbulence implements the stochastic field synthesiser of
// spec.md §4.2: a Gaussian random field with a prescribed isotropic power
// spectrum, transformed to real space, rescaled by a spatial envelope and
// (for the magnetic variant) made locally anisotropic and divergence-free.
// It is grounded on original_source/src/fields/gmf/brnd_global.cc, the one
// file in the retrieved pack that spells out the full algorithm.
package turbulence

import "math"

// SpecParams are the per-synthesiser constants of spec.md §3 (rms
// amplitude, outer scale, spectral index).
type SpecParams struct {
	RMS, K0, A0 float64
}

// Spectrum is P(k) with the "hard cutoff" convention pinned in
// SPEC_FULL.md §4 (the open question in spec.md §9): zero below the outer
// scale, a power law above it. This matches brnd_global.cc::spec exactly:
// p0/(k/k0)^a0 for k>k0, 0 otherwise (no flat plateau branch).
func Spectrum(k float64, p SpecParams) float64 {
	if k <= 0 {
		return 0
	}
	if k <= p.K0 {
		return 0
	}
	p0 := p.RMS * p.RMS
	return p0 / math.Pow(k/p.K0, p.A0)
}

// PhysDensity is P(k)/(4*pi*k^2), the per-mode density used to assign
// per-cell variance (spec.md §4.2).
func PhysDensity(k float64, p SpecParams) float64 {
	if k <= 0 {
		return 0
	}
	return Spectrum(k, p) / (4 * math.Pi * k * k)
}

// SimpsonCell integrates PhysDensity across [k-halfdk, k+halfdk] with a
// three-point Simpson rule, per spec.md §4.2's "SHOULD integrate" guidance.
func SimpsonCell(k, halfdk float64, p SpecParams) float64 {
	return PhysDensity(k, p)*(2.0/3.0) +
		PhysDensity(k+halfdk, p)*(1.0/6.0) +
		PhysDensity(k-halfdk, p)*(1.0/6.0)
}

// Envelope_rescal (defined in synth.go) implements this profile; kept
// alongside Spectrum here as the two spatial/spectral shaping functions
// the synthesiser composes.
