// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sky implements the equal-area sky pixelization the Integrator
// needs to assemble per-shell maps and composite them into the final
// simulation-resolution map (spec.md §3 "Map", §4.4 "shell-to-sim
// compositing"). A full HEALPix binding (healpix_base/healpix_map, used by
// original_source/src/integrators/integrator.cc) is not present anywhere
// in the retrieved pack, and HEALPix itself is declared an external
// collaborator's concern by spec.md §1 ("sky pixelization scheme"); this
// package is the from-scratch, in-module stand-in spec.md requires to
// make the Integrator runnable at all. It reproduces the classic HEALPix
// ring-ordered equal-area pixel layout (Gorski et al. 2005) rather than
// the bit-interleaved NESTED index order, since nothing outside this
// package inspects pixel numbering directly — only pixel *count* and
// pixel *direction* are load-bearing for the rest of the simulation.
package sky

import "math"

// Map is a fixed-resolution HEALPix-style pixel map: Npix = 12*Nside^2
// equal-area pixels covering the full sphere.
type Map struct {
	Nside int
	Npix  int
	Data  []float64
}

// NewMap allocates a zeroed map at the given resolution.
func NewMap(nside int) *Map {
	npix := Npix(nside)
	return &Map{Nside: nside, Npix: npix, Data: make([]float64, npix)}
}

// Npix is the standard HEALPix pixel count for a given Nside.
func Npix(nside int) int { return 12 * nside * nside }

// PixToAng returns the (theta, phi) direction of the center of pixel ipix
// (0-based), theta the colatitude in [0,pi] and phi the longitude in
// [0,2pi), using the HEALPix ring-ordering formulas.
func PixToAng(nside, ipix int) (theta, phi float64) {
	ns := float64(nside)
	ncap := 2 * nside * (nside - 1)
	npix := Npix(nside)

	switch {
	case ipix < ncap:
		p := float64(ipix + 1)
		i := math.Floor((1 + math.Sqrt(1+2*float64(ipix))) / 2)
		j := p - 2*i*(i-1)
		z := 1 - i*i/(3*ns*ns)
		phi = (j - 0.5) * math.Pi / (2 * i)
		theta = math.Acos(z)
	case ipix < npix-ncap:
		p := float64(ipix - ncap + 1)
		i := math.Floor((p-1)/(4*ns)) + ns
		j := math.Mod(p-1, 4*ns) + 1
		z := (2*ns - i) * 2 / (3 * ns)
		s := 0.5
		if math.Mod(i+ns, 2) != 0 {
			s = 1.0
		}
		phi = (j - s) * math.Pi / (2 * ns)
		theta = math.Acos(z)
	default:
		p := float64(npix - ipix)
		i := math.Floor((1 + math.Sqrt(2*p-1)) / 2)
		j := 4*i + 1 - (p - 2*i*(i-1))
		z := -1 + i*i/(3*ns*ns)
		phi = (j - 0.5) * math.Pi / (2 * i)
		theta = math.Acos(z)
	}
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return theta, phi
}

// Direction is the convenience float pair (theta, phi) of a pixel center.
type Direction struct{ Theta, Phi float64 }

// AngToPix finds the index of the pixel whose center is nearest (theta,phi)
// by a linear scan over every pixel center. This is O(Npix) rather than
// HEALPix's O(1) bit-trick lookup, acceptable given the per-shell
// interpolation call volumes in spec.md §4.4.
func AngToPix(nside int, theta, phi float64) int {
	npix := Npix(nside)
	best, bestD := 0, math.MaxFloat64
	z := math.Cos(theta)
	sinT := math.Sin(theta)
	x := sinT * math.Cos(phi)
	y := sinT * math.Sin(phi)
	for ipix := 0; ipix < npix; ipix++ {
		pt, pp := PixToAng(nside, ipix)
		pz := math.Cos(pt)
		ps := math.Sin(pt)
		px, py := ps*math.Cos(pp), ps*math.Sin(pp)
		d := (x-px)*(x-px) + (y-py)*(y-py) + (z-pz)*(z-pz)
		if d < bestD {
			bestD, best = d, ipix
		}
	}
	return best
}

// Set stores v at pixel ipix.
func (m *Map) Set(ipix int, v float64) { m.Data[ipix] = v }

// At returns the value at pixel ipix.
func (m *Map) At(ipix int) float64 { return m.Data[ipix] }

// PixToAng returns the direction of the center of pixel ipix on m.
func (m *Map) PixToAng(ipix int) (theta, phi float64) { return PixToAng(m.Nside, ipix) }

// Interpolate returns the map value at an arbitrary direction, nearest-pixel
// (spec.md §4.4's "interpolated_value" stand-in: a full bilinear scheme
// needs HEALPix's four neighbouring-pixel lookup, unavailable here).
func (m *Map) Interpolate(theta, phi float64) float64 {
	return m.At(AngToPix(m.Nside, theta, phi))
}

// Fill sets every pixel to v.
func (m *Map) Fill(v float64) {
	for i := range m.Data {
		m.Data[i] = v
	}
}
