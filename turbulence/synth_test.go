// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbulence

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/stat"

	"github.com/trjaffe/hammurabiX/field"
	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// flatEnvelope is an Envelope whose rescal factor is ~1 everywhere in
// testBox(), isolating the rms check below from the r0/z0 radial/vertical
// taper (spec.md §4.2 step 4).
func flatEnvelope() Envelope {
	return Envelope{SunPosition: vec3.T{}, R0: 1e6 * units.Kpc, Z0: 1e6 * units.Kpc}
}

func Test_spectrum_pinned_convention(tst *testing.T) {
	chk.PrintTitle("pinned P(k) cutoff convention")
	sp := SpecParams{RMS: 1, K0: 1, A0: 2}
	if Spectrum(0.5, sp) != 0 {
		tst.Fatalf("expected zero below k0, got %v", Spectrum(0.5, sp))
	}
	if Spectrum(1.0, sp) != 0 {
		tst.Fatalf("expected zero at k0, got %v", Spectrum(1.0, sp))
	}
	if Spectrum(2.0, sp) <= 0 {
		tst.Fatalf("expected positive power above k0, got %v", Spectrum(2.0, sp))
	}
}

func testBox() grid.Box {
	return grid.Box{
		Nx: 8, Ny: 8, Nz: 8,
		Xmin: -4 * units.Kpc, Xmax: 4 * units.Kpc,
		Ymin: -4 * units.Kpc, Ymax: 4 * units.Kpc,
		Zmin: -4 * units.Kpc, Zmax: 4 * units.Kpc,
	}
}

func Test_scalar_reproducibility(tst *testing.T) {
	chk.PrintTitle("scalar synthesis reproducibility")
	box := testBox()
	sp := SpecParams{RMS: 2, K0: 0.5, A0: 2.7}
	env := Envelope{SunPosition: vec3.T{-8.3 * units.Kpc, 0, 0}, R0: 8 * units.Kpc, Z0: 1 * units.Kpc}
	g1 := SynthesizeScalar(box, 42, sp, env)
	g2 := SynthesizeScalar(box, 42, sp, env)
	for i := range g1.Data {
		if g1.Data[i] != g2.Data[i] {
			tst.Fatalf("cell %d differs between identical-seed runs: %v != %v", i, g1.Data[i], g2.Data[i])
		}
	}
	g3 := SynthesizeScalar(box, 7, sp, env)
	same := true
	for i := range g1.Data {
		if g1.Data[i] != g3.Data[i] {
			same = false
			break
		}
	}
	if same {
		tst.Fatalf("different seeds produced identical grids")
	}
}

func Test_vector_divergence_free(tst *testing.T) {
	chk.PrintTitle("random magnetic field is divergence-free in k-space")
	box := testBox()
	sp := SpecParams{RMS: 1, K0: 0.5, A0: 2.7}
	env := Envelope{SunPosition: vec3.T{-8.3 * units.Kpc, 0, 0}, R0: 8 * units.Kpc, Z0: 1 * units.Kpc}
	background := constVector{vec3.T{1, 0, 0}}

	lx, ly, lz := box.Xmax-box.Xmin, box.Ymax-box.Ymin, box.Zmax-box.Zmin
	g := SynthesizeVector(box, 99, sp, env, background, 0.5)

	// forward-transform the resulting real-space field and check k.b ~ 0
	cx, cy, cz := newCube3D(box.Nx, box.Ny, box.Nz), newCube3D(box.Nx, box.Ny, box.Nz), newCube3D(box.Nx, box.Ny, box.Nz)
	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for l := 0; l < box.Nz; l++ {
				v := g.At(i, j, l)
				idx := cx.idx(i, j, l)
				cx.data[idx], cy.data[idx], cz.data[idx] = complex(v[0], 0), complex(v[1], 0), complex(v[2], 0)
			}
		}
	}
	cx.forwardDFT3()
	cy.forwardDFT3()
	cz.forwardDFT3()

	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for l := 0; l < box.Nz; l++ {
				if i == 0 && j == 0 && l == 0 {
					continue
				}
				k := kvec(i, j, l, box.Nx, box.Ny, box.Nz, lx, ly, lz)
				idx := cx.idx(i, j, l)
				b := vec3.T{real(cx.data[idx]), real(cy.data[idx]), real(cz.data[idx])}
				if b.Length() == 0 {
					continue
				}
				ratio := math.Abs(k.Dot(b)) / (k.Length() * b.Length())
				if ratio > 1e-3 {
					tst.Fatalf("cell (%d,%d,%d): |k.b|/(|k||b|) = %v exceeds tolerance", i, j, l, ratio)
				}
			}
		}
	}
}

// Test_scalar_rms_matches_target is spec.md §8 testable property 7: the
// empirical variance of a synthesised grid must land within 5% of the
// requested sp.RMS^2 (envelope held flat here so it isn't also mixed in).
// This is the property a spurious extra 1/box.FullSize() factor in
// SynthesizeScalar's normalisation would silently violate.
func Test_scalar_rms_matches_target(tst *testing.T) {
	chk.PrintTitle("scalar synthesis empirical rms matches target within 5%")
	box := testBox()
	const rms = 3.0
	sp := SpecParams{RMS: rms, K0: 0.5, A0: 2.7}
	env := flatEnvelope()
	g := SynthesizeScalar(box, 123, sp, env)

	got := stat.Variance(g.Data, nil)
	want := rms * rms
	if rel := math.Abs(got-want) / want; rel > 0.05 {
		tst.Fatalf("Var(grid) = %v, want within 5%% of RMS^2 = %v (rel err %v)", got, want, rel)
	}
}

type constVector struct{ v vec3.T }

func (c constVector) Sample(vec3.T) vec3.T { return c.v }

var _ field.VectorProvider = constVector{}
