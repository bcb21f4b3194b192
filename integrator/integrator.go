// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrator implements the radiative-transfer line-of-sight
// integration of spec.md §4.4: shell-by-shell composite-Simpson
// accumulation of dispersion measure, Faraday depth and synchrotron
// Stokes parameters, composited into a single simulation-resolution sky
// map. Grounded throughout on
// original_source/src/integrators/integrator.cc (write_grid,
// radial_integration, get_max/min_shell_radius); the OpenMP
// "#pragma omp parallel for schedule(dynamic)" per-pixel loop is
// translated to a bounded goroutine worker pool, and MPI/OpenMP are
// themselves declared out of scope by spec.md §1.
package integrator

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/trjaffe/hammurabiX/cre"
	"github.com/trjaffe/hammurabiX/field"
	"github.com/trjaffe/hammurabiX/sky"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// Observables is one pixel's line-of-sight accumulation, spec.md §4.4's
// struct_observables.
type Observables struct {
	DM, FD     float64
	Is, Qs, Us float64
}

// Maps holds the full set of simulation-resolution output maps enabled
// by the Integrator's Do* flags.
type Maps struct {
	DM         *sky.Map
	FD         *sky.Map
	Is, Qs, Us *sky.Map
}

// Integrator composes the field providers into per-pixel line-of-sight
// integrals and assembles the final sky maps.
type Integrator struct {
	Breg  field.VectorProvider
	Brnd  field.VectorProvider // may be nil
	Fereg field.ScalarProvider
	Fernd field.ScalarProvider // may be nil
	CRE   cre.Provider

	SunPosition vec3.T
	Freq        float64 // simulation frequency, Hz

	DoDM, DoFD, DoSync bool

	NsideSim int
	Shells   []Shell // innermost (Num==1) first

	GcRMax, GcZMax float64
	LatLim         float64

	Workers int // goroutine pool size, defaults to GOMAXPROCS if <= 0
}

func (ig *Integrator) brndAt(pos vec3.T) vec3.T {
	if ig.Brnd == nil {
		return vec3.Zero
	}
	return ig.Brnd.Sample(pos)
}

func (ig *Integrator) ferndAt(pos vec3.T) float64 {
	if ig.Fernd == nil {
		return 0
	}
	return ig.Fernd.Sample(pos)
}

// checkUpperLimit implements the original's check_simulation_upper_limit:
// true once val exceeds limit (LOS should stop).
func checkUpperLimit(val, limit float64) bool { return val > limit }

// checkLowerLimit implements check_simulation_lower_limit: true once val
// falls below limit (pixel should be skipped, e.g. within a latitude mask).
func checkLowerLimit(val, limit float64) bool { return val < limit }

// bParallel is the LOS-parallel component of B (signed).
func bParallel(b, los vec3.T) float64 { return b.Dot(los) }

// bPerpendicular is the magnitude of B's component perpendicular to the
// line of sight (un-scaled, per the original's comment that random-field
// rescaling happens inside the emissivity model, not here).
func bPerpendicular(b, los vec3.T) float64 {
	par := los.Scale(b.Dot(los))
	return b.Sub(par).Length()
}

// intrinsicPolAngle is the IAU electric-vector position angle of
// synchrotron emission: perpendicular to B's projection onto the local
// theta-phi plane transverse to the line of sight.
func intrinsicPolAngle(b vec3.T, theta, phi float64) float64 {
	ct, st := math.Cos(theta), math.Sin(theta)
	cp, sp := math.Cos(phi), math.Sin(phi)
	eTheta := vec3.T{ct * cp, ct * sp, -st}
	ePhi := vec3.T{-sp, cp, 0}
	bt, bp := b.Dot(eTheta), b.Dot(ePhi)
	return math.Atan2(bp, bt) + math.Pi/2
}

// radialIntegrate implements radial_integration: walk one shell's sample
// points along the line of sight (theta,phi), Simpson-integrating DM, FD
// and the synchrotron Stokes contributions. innerFD is the Faraday depth
// accumulated by all shells interior to this one (zero for the innermost
// shell); the returned Observables.FD is this shell's own contribution
// only, to be added to innerFD by the caller before it feeds the next
// shell outward.
func (ig *Integrator) radialIntegrate(s *Shell, theta, phi, innerFD float64) Observables {
	var obs Observables
	if checkLowerLimit(math.Abs(0.5*math.Pi-theta), ig.LatLim) {
		return obs
	}

	lambdaSq := (units.CLight / ig.Freq) * (units.CLight / ig.Freq)
	i2bt := units.CLight * units.CLight / (2 * units.Boltzmann * ig.Freq * ig.Freq)

	los := vec3.FromSpherical(theta, phi)

	n := len(s.Dist)
	fDM := make([]float64, 0, n)
	fFD := make([]float64, 0, n)
	fJtot := make([]float64, 0, n)
	fJpol := make([]float64, 0, n)
	polAng := make([]float64, 0, n)

	steps := 0
	for _, d := range s.Dist {
		pos := los.Scale(d).Add(ig.SunPosition)
		if checkUpperLimit(pos.Length(), ig.GcRMax) {
			break
		}
		if checkUpperLimit(math.Abs(pos[2]), ig.GcZMax) {
			break
		}

		b := ig.Breg.Sample(pos).Add(ig.brndAt(pos))
		bPar := bParallel(b, los)
		bPerp := bPerpendicular(b, los)

		te := ig.Fereg.Sample(pos) + ig.ferndAt(pos)
		if te < 0 {
			te = 0
		}

		if ig.DoDM {
			fDM = append(fDM, te*s.DeltaD)
		}
		if ig.DoFD || ig.DoSync {
			fFD = append(fFD, te*bPar*units.FDForefactor*s.DeltaD)
		}
		if ig.DoSync {
			jTot, jPol := ig.CRE.Emissivity(pos, ig.Freq, bPerp)
			fJtot = append(fJtot, jTot*s.DeltaD*i2bt)
			fJpol = append(fJpol, jPol*s.DeltaD*i2bt)
			polAng = append(polAng, intrinsicPolAngle(b, theta, phi))
		}
		steps++
	}

	for i := 1; i < steps-1; i += 2 {
		if ig.DoDM {
			obs.DM += (fDM[i-1] + 4*fDM[i] + fDM[i+1]) / 6
		}
		if ig.DoFD || ig.DoSync {
			obs.FD += (fFD[i-1] + 4*fFD[i] + fFD[i+1]) / 6
		}
		if ig.DoSync {
			qui := (innerFD+obs.FD)*lambdaSq + polAng[i]
			if math.Abs(qui) > 1e30 {
				chk.Panic("integrator: polarisation angle argument overflowed")
			}
			if fJtot[i] < 0 {
				chk.Panic("integrator: negative total synchrotron emissivity")
			}
			simpJtot := (fJtot[i-1] + 4*fJtot[i] + fJtot[i+1]) / 6
			simpJpol := (fJpol[i-1] + 4*fJpol[i] + fJpol[i+1]) / 6
			obs.Is += simpJtot
			obs.Qs += math.Cos(2*qui) * simpJpol
			obs.Us += math.Sin(2*qui) * simpJpol
		}
	}
	return obs
}

// workerCount resolves the goroutine pool size.
func (ig *Integrator) workerCount() int {
	if ig.Workers > 0 {
		return ig.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// runShell fills one shell's maps at its own Nside, in parallel over
// pixels, reading each pixel's accumulated interior Faraday depth from
// simFD (already composited from all inner shells).
func (ig *Integrator) runShell(s *Shell, simFD *sky.Map) (dm, fd, is, qs, us *sky.Map) {
	npix := sky.Npix(s.Nside)
	if ig.DoDM {
		dm = sky.NewMap(s.Nside)
	}
	if ig.DoSync {
		is, qs, us = sky.NewMap(s.Nside), sky.NewMap(s.Nside), sky.NewMap(s.Nside)
	}
	if ig.DoFD || ig.DoSync {
		fd = sky.NewMap(s.Nside)
	}

	jobs := make(chan int, npix)
	for ipix := 0; ipix < npix; ipix++ {
		jobs <- ipix
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < ig.workerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ipix := range jobs {
				theta, phi := sky.PixToAng(s.Nside, ipix)
				innerFD := 0.0
				if ig.DoFD || ig.DoSync {
					innerFD = simFD.Interpolate(theta, phi)
				}
				obs := ig.radialIntegrate(s, theta, phi, innerFD)
				if ig.DoDM {
					dm.Set(ipix, obs.DM)
				}
				if ig.DoSync {
					is.Set(ipix, obs.Is)
					qs.Set(ipix, obs.Qs)
					us.Set(ipix, obs.Us)
				}
				if ig.DoFD || ig.DoSync {
					fd.Set(ipix, obs.FD)
				}
			}
		}()
	}
	wg.Wait()
	return
}

// composite adds src (a shell map, possibly lower resolution) onto dst
// (the simulation-resolution map), interpolating src at each of dst's
// pixel directions — the "adding up new shell map to sim map" step of
// write_grid.
func composite(dst, src *sky.Map) {
	if src == nil {
		return
	}
	for ipix := 0; ipix < dst.Npix; ipix++ {
		theta, phi := dst.PixToAng(ipix)
		dst.Data[ipix] += src.Interpolate(theta, phi)
	}
}

// Run executes the full shell-by-shell integration (spec.md §4.4's
// write_grid), processing ig.Shells strictly in order from innermost to
// outermost (FD carries from inner to outer shells) and composites each
// shell's contribution into simulation-resolution maps.
func (ig *Integrator) Run() Maps {
	var m Maps
	if ig.DoDM {
		m.DM = sky.NewMap(ig.NsideSim)
	}
	if ig.DoSync {
		m.Is, m.Qs, m.Us = sky.NewMap(ig.NsideSim), sky.NewMap(ig.NsideSim), sky.NewMap(ig.NsideSim)
	}
	if ig.DoFD || ig.DoSync {
		m.FD = sky.NewMap(ig.NsideSim)
	}

	for i := range ig.Shells {
		s := &ig.Shells[i]
		io.Pf("INTEGRATOR: AT SHELL %d\n", s.Num)
		dm, fd, is, qs, us := ig.runShell(s, m.FD)
		composite(m.DM, dm)
		composite(m.Is, is)
		composite(m.Qs, qs)
		composite(m.Us, us)
		composite(m.FD, fd)
	}
	return m
}
