// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Shell is one spherical shell of the line-of-sight integration, spec.md
// §4.4: a radial interval [DStart,DStop] sampled at DeltaD/2 spacing for
// composite Simpson's rule, resolved at its own HEALPix Nside.
type Shell struct {
	Num    int
	DStart float64
	DStop  float64
	DeltaD float64
	Dist   []float64 // sample radii, DStart..DStop step DeltaD/2
	Nside  int
}

// samplePoints implements spec.md §4.4's step(s): the point count (spec.md
// §3's "step") is ceil(2*(d_stop-d_start)/Δd_target)+1, raised to at least
// 3 and rounded up to an odd number to feed composite Simpson's rule with
// 2n+1 points.
// DeltaD (the target spacing passed in) is treated as Δd_target and is
// rescaled to the actual per-point spacing*2 that exactly tiles
// [DStart,DStop], so dist[0]=DStart, dist[step-1]=DStop exactly, and
// consecutive spacing is DeltaD/2 (spec.md §3 "Shell" invariants).
func (s *Shell) samplePoints() {
	span := s.DStop - s.DStart
	if span <= 0 || s.DeltaD <= 0 {
		chk.Panic("integrator: shell %d has non-positive span or DeltaD", s.Num)
	}
	step := int(math.Ceil(2*span/s.DeltaD)) + 1
	if step < 3 {
		step = 3
	}
	if step%2 == 0 {
		step++
	}
	h := span / float64(step-1) // actual consecutive spacing = DeltaD/2
	s.DeltaD = 2 * h
	s.Dist = make([]float64, step)
	for k := 0; k < step; k++ {
		s.Dist[k] = s.DStart + float64(k)*h
	}
	s.Dist[step-1] = s.DStop
}

// maxShellRadius implements get_max_shell_radius: geometric halving from
// the outermost shell inward.
func maxShellRadius(shellNum, totalShell int, radius float64) float64 {
	if shellNum < 1 || shellNum > totalShell {
		chk.Panic("integrator: invalid shell number %d (total %d)", shellNum, totalShell)
	}
	r := radius
	for n := totalShell; n != shellNum; n-- {
		r *= 0.5
	}
	return r
}

// minShellRadius implements get_min_shell_radius: the inner boundary of
// shell shellNum, zero for the innermost shell.
func minShellRadius(shellNum, totalShell int, radius float64) float64 {
	if shellNum < 1 || shellNum > totalShell {
		chk.Panic("integrator: invalid shell number %d (total %d)", shellNum, totalShell)
	}
	if shellNum == 1 {
		return 0
	}
	r := radius
	for n := totalShell; n != shellNum-1; n-- {
		r *= 0.5
	}
	return r
}

// BuildShellsAuto constructs totalShell shells via geometric halving of
// ecRMax, outermost shell spanning [ecRMax/2, ecRMax], innermost spanning
// [0, ecRMax/2^(totalShell-1)] — spec.md §4.4's "Auto" shell mode,
// grounded on get_max/min_shell_radius in integrator.cc.
func BuildShellsAuto(totalShell int, ecRMax, radialRes float64, nsideShell []int) []Shell {
	if len(nsideShell) != totalShell {
		chk.Panic("integrator: len(nsideShell)=%d must equal totalShell=%d", len(nsideShell), totalShell)
	}
	shells := make([]Shell, totalShell)
	for i := 1; i <= totalShell; i++ {
		s := Shell{
			Num:    i,
			DStart: minShellRadius(i, totalShell, ecRMax),
			DStop:  maxShellRadius(i, totalShell, ecRMax),
			DeltaD: radialRes,
			Nside:  nsideShell[i-1],
		}
		s.samplePoints()
		shells[i-1] = s
	}
	return shells
}

// BuildShellsManual constructs shells from explicit cumulative stop
// fractions of ecRMax (spec.md §4.4's "Manual" shell mode), shellFracs
// strictly increasing and ending at 1.
func BuildShellsManual(ecRMax, radialRes float64, shellFracs []float64, nsideShell []int) []Shell {
	if len(shellFracs) != len(nsideShell) {
		chk.Panic("integrator: len(shellFracs)=%d must equal len(nsideShell)=%d", len(shellFracs), len(nsideShell))
	}
	totalShell := len(shellFracs)
	shells := make([]Shell, totalShell)
	// shellFracs[0] is the innermost shell's cumulative stop fraction,
	// shellFracs[totalShell-1]==1 the outermost; shells are stored
	// innermost-first (Num==1 innermost), matching BuildShellsAuto's
	// ordering and the sequential inside-out processing order spec.md
	// §4.4 requires (FD accumulates from the observer outward).
	for i := 0; i < totalShell; i++ {
		stop := ecRMax * shellFracs[i]
		start := 0.0
		if i > 0 {
			start = ecRMax * shellFracs[i-1]
		}
		s := Shell{
			Num:    i + 1,
			DStart: start,
			DStop:  stop,
			DeltaD: radialRes,
			Nside:  nsideShell[i],
		}
		s.samplePoints()
		shells[i] = s
	}
	return shells
}
