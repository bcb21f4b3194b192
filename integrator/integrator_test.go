// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/cre"
	"github.com/trjaffe/hammurabiX/sky"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

func Test_shell_radii_geometric_halving(tst *testing.T) {
	chk.PrintTitle("Auto shell mode halves geometrically from ec_r_max")
	shells := BuildShellsAuto(3, 8*units.Kpc, 0.1*units.Kpc, []int{2, 4, 8})
	if shells[2].DStop != 8*units.Kpc {
		tst.Fatalf("outermost shell should stop at ec_r_max, got %v", shells[2].DStop)
	}
	if shells[2].DStart != 4*units.Kpc {
		tst.Fatalf("outermost shell should start at ec_r_max/2, got %v", shells[2].DStart)
	}
	if shells[0].DStart != 0 {
		tst.Fatalf("innermost shell must start at 0, got %v", shells[0].DStart)
	}
	if shells[0].DStop != 2*units.Kpc {
		tst.Fatalf("innermost shell should stop at ec_r_max/4, got %v", shells[0].DStop)
	}
}

func Test_shell_manual_mode(tst *testing.T) {
	chk.PrintTitle("Manual shell mode honours explicit cumulative fractions")
	shells := BuildShellsManual(10*units.Kpc, 0.1*units.Kpc, []float64{0.3, 0.6, 1.0}, []int{2, 4, 8})
	if shells[0].DStart != 0 || shells[0].DStop != 3*units.Kpc {
		tst.Fatalf("innermost shell wrong: %+v", shells[0])
	}
	if shells[2].DStart != 6*units.Kpc || shells[2].DStop != 10*units.Kpc {
		tst.Fatalf("outermost shell wrong: %+v", shells[2])
	}
}

func Test_shell_simpson_odd_step(tst *testing.T) {
	chk.PrintTitle("every shell has an odd sample count ending at d_stop")
	shells := BuildShellsAuto(4, 10*units.Kpc, 0.37*units.Kpc, []int{2, 2, 4, 4})
	for _, s := range shells {
		if len(s.Dist)%2 != 1 {
			tst.Fatalf("shell %d: sample count %d is not odd", s.Num, len(s.Dist))
		}
		if s.Dist[0] != s.DStart {
			tst.Fatalf("shell %d: dist[0]=%v, want d_start=%v", s.Num, s.Dist[0], s.DStart)
		}
		if math.Abs(s.Dist[len(s.Dist)-1]-s.DStop) > 1e-9*s.DStop {
			tst.Fatalf("shell %d: dist[last]=%v, want d_stop=%v", s.Num, s.Dist[len(s.Dist)-1], s.DStop)
		}
		for i := 1; i < len(s.Dist); i++ {
			got := s.Dist[i] - s.Dist[i-1]
			want := s.DeltaD / 2
			if math.Abs(got-want) > 1e-9*want {
				tst.Fatalf("shell %d: spacing[%d]=%v, want DeltaD/2=%v", s.Num, i, got, want)
			}
		}
	}
}

func Test_shell_partition_covers_full_range(tst *testing.T) {
	chk.PrintTitle("shells partition [0,R_max) disjointly and monotonically")
	const rMax = 12 * units.Kpc
	shells := BuildShellsAuto(3, rMax, 0.2*units.Kpc, []int{2, 2, 2})
	if shells[0].DStart != 0 {
		tst.Fatalf("innermost shell must start at 0, got %v", shells[0].DStart)
	}
	if shells[len(shells)-1].DStop != rMax {
		tst.Fatalf("outermost shell must stop at R_max, got %v", shells[len(shells)-1].DStop)
	}
	for i := 1; i < len(shells); i++ {
		if shells[i].DStart != shells[i-1].DStop {
			tst.Fatalf("shell %d starts at %v, want previous shell's stop %v", i, shells[i].DStart, shells[i-1].DStop)
		}
	}
}

type zeroField struct{}

func (zeroField) Sample(vec3.T) vec3.T { return vec3.Zero }

type uniformB struct{ v vec3.T }

func (u uniformB) Sample(vec3.T) vec3.T { return u.v }

type zeroScalar struct{}

func (zeroScalar) Sample(vec3.T) float64 { return 0 }

type uniformNe struct{ n float64 }

func (u uniformNe) Sample(vec3.T) float64 { return u.n }

func Test_run_dm_only(tst *testing.T) {
	chk.PrintTitle("DM-only integration produces positive, finite values")
	shells := BuildShellsAuto(2, 4*units.Kpc, 0.2*units.Kpc, []int{2, 2})
	ig := &Integrator{
		Breg: zeroField{}, Fereg: uniformNe{n: 0.03},
		CRE:      cre.Verify{Alpha: 3, R0: units.Kpc, E0: units.GeV, J0: 1},
		DoDM:     true,
		NsideSim: 2,
		Shells:   shells,
		GcRMax:   50 * units.Kpc, GcZMax: 50 * units.Kpc,
	}
	m := ig.Run()
	for ipix := 0; ipix < m.DM.Npix; ipix++ {
		v := m.DM.At(ipix)
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			tst.Fatalf("pixel %d: expected positive finite DM, got %v", ipix, v)
		}
	}
}

func Test_run_sync_nonzero_with_field(tst *testing.T) {
	chk.PrintTitle("synchrotron Stokes I is positive with a non-zero perpendicular field")
	shells := BuildShellsAuto(2, 4*units.Kpc, 0.2*units.Kpc, []int{2, 2})
	ig := &Integrator{
		Breg: uniformB{vec3.T{1e-6, 0, 0}}, Fereg: zeroScalar{},
		CRE:      cre.Verify{Alpha: 3, R0: units.Kpc, E0: units.GeV, J0: 1},
		DoFD:     true, DoSync: true,
		Freq:     1.4e9,
		NsideSim: 2,
		Shells:   shells,
		GcRMax:   50 * units.Kpc, GcZMax: 50 * units.Kpc,
	}
	m := ig.Run()
	for ipix := 0; ipix < m.Is.Npix; ipix++ {
		if m.Is.At(ipix) <= 0 {
			tst.Fatalf("pixel %d: expected positive Stokes I, got %v", ipix, m.Is.At(ipix))
		}
	}
}

func Test_latitude_mask_skips_pixels(tst *testing.T) {
	chk.PrintTitle("pixels within the latitude mask contribute zero observables")
	shells := BuildShellsAuto(1, 2*units.Kpc, 0.2*units.Kpc, []int{4})
	ig := &Integrator{
		Breg: zeroField{}, Fereg: uniformNe{n: 1},
		CRE:      cre.Verify{Alpha: 3, R0: units.Kpc, E0: units.GeV, J0: 1},
		DoDM:     true,
		NsideSim: 4,
		Shells:   shells,
		GcRMax:   50 * units.Kpc, GcZMax: 50 * units.Kpc,
		LatLim: math.Pi / 2, // mask everything
	}
	m := ig.Run()
	for ipix := 0; ipix < m.DM.Npix; ipix++ {
		if m.DM.At(ipix) != 0 {
			tst.Fatalf("pixel %d: expected zero DM under full latitude mask, got %v", ipix, m.DM.At(ipix))
		}
	}
}

// Test_scenario_S1_empty_fields_give_zero_maps is spec.md §8 scenario S1:
// all providers zero, all output maps must come out identically zero.
func Test_scenario_S1_empty_fields_give_zero_maps(tst *testing.T) {
	chk.PrintTitle("S1: empty fields produce all-zero maps")
	shells := BuildShellsAuto(1, 10*units.Kpc, 0.5*units.Kpc, []int{2})
	ig := &Integrator{
		Breg: zeroField{}, Fereg: zeroScalar{},
		CRE:      cre.Verify{Alpha: 3, R0: units.Kpc, E0: units.GeV, J0: 1},
		DoDM:     true, DoFD: true, DoSync: true,
		Freq:     1.4e9,
		NsideSim: 2,
		Shells:   shells,
		GcRMax:   50 * units.Kpc, GcZMax: 50 * units.Kpc,
	}
	m := ig.Run()
	for ipix := 0; ipix < m.DM.Npix; ipix++ {
		if m.DM.At(ipix) != 0 || m.FD.At(ipix) != 0 || m.Is.At(ipix) != 0 || m.Qs.At(ipix) != 0 || m.Us.At(ipix) != 0 {
			tst.Fatalf("pixel %d: expected all-zero observables, got %+v", ipix, Observables{
				DM: m.DM.At(ipix), FD: m.FD.At(ipix), Is: m.Is.At(ipix), Qs: m.Qs.At(ipix), Us: m.Us.At(ipix),
			})
		}
	}
}

// Test_scenario_S2_uniform_density_linear_DM is spec.md §8 scenario S2 /
// testable property 8: for uniform n_e = n0 along a ray of length L with
// zero magnetic field, DM = n0*L exactly (single shell, observer at origin).
func Test_scenario_S2_uniform_density_linear_DM(tst *testing.T) {
	chk.PrintTitle("S2: uniform n_e and zero B gives linear DM and zero FD/sync")
	const n0 = 0.1  // cm^-3
	const rMax = 10 * units.Kpc
	shells := BuildShellsAuto(1, rMax, 0.02*units.Kpc, []int{4})
	ig := &Integrator{
		Breg: zeroField{}, Fereg: uniformNe{n: n0},
		CRE:      cre.Verify{Alpha: 3, R0: units.Kpc, E0: units.GeV, J0: 1},
		DoDM:     true, DoFD: true, DoSync: true,
		Freq:     1.4e9,
		NsideSim: 4,
		Shells:   shells,
		GcRMax:   50 * units.Kpc, GcZMax: 50 * units.Kpc,
	}
	m := ig.Run()
	want := n0 * rMax
	for ipix := 0; ipix < m.DM.Npix; ipix++ {
		got := m.DM.At(ipix)
		if math.Abs(got-want) > 1e-6*want {
			tst.Fatalf("pixel %d: DM=%v, want n0*L=%v", ipix, got, want)
		}
		if m.FD.At(ipix) != 0 {
			tst.Fatalf("pixel %d: expected zero FD with zero B, got %v", ipix, m.FD.At(ipix))
		}
		if m.Is.At(ipix) != 0 {
			tst.Fatalf("pixel %d: expected zero synchrotron I with zero B, got %v", ipix, m.Is.At(ipix))
		}
	}
}

// Test_scenario_S3_faraday_sign is spec.md §8 scenario S3 / testable
// property 9: a uniform B along +x with positive n_e gives negative FD
// along the line of sight pointing in +x (theta=pi/2, phi=0), since
// FDForefactor is negative.
func Test_scenario_S3_faraday_sign(tst *testing.T) {
	chk.PrintTitle("S3: positive B_par and n_e gives negative FD")
	const rMax = 10 * units.Kpc
	shells := BuildShellsAuto(1, rMax, 0.02*units.Kpc, []int{4})
	ig := &Integrator{
		Breg: uniformB{vec3.T{1e-6, 0, 0}}, Fereg: uniformNe{n: 0.1},
		CRE:      cre.Verify{Alpha: 3, R0: units.Kpc, E0: units.GeV, J0: 1},
		DoFD:     true,
		NsideSim: 4,
		Shells:   shells,
		GcRMax:   50 * units.Kpc, GcZMax: 50 * units.Kpc,
	}
	m := ig.Run()
	ipix := sky.AngToPix(4, math.Pi/2, 0)
	if fd := m.FD.At(ipix); fd >= 0 {
		tst.Fatalf("pixel looking along +x: expected negative FD (B_par>0, n_e>0), got %v", fd)
	}
}
