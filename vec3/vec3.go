// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec3 implements the small set of 3-vector operations the field
// providers and integrator need, in the spirit of the Healpix vec3_t<double>
// used throughout original_source (see Brnd_global::gramschmidt, which this
// package's Gram-Schmidt step is grounded on).
package vec3

import "math"

// T is a Cartesian 3-vector.
type T [3]float64

// Zero is the additive identity.
var Zero = T{0, 0, 0}

func (v T) Add(w T) T { return T{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }
func (v T) Sub(w T) T { return T{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }
func (v T) Scale(s float64) T { return T{v[0] * s, v[1] * s, v[2] * s} }

func (v T) Dot(w T) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

func (v T) SquaredLength() float64 { return v.Dot(v) }

func (v T) Length() float64 { return math.Sqrt(v.SquaredLength()) }

// Versor returns the unit vector along v, or Zero if v is the zero vector.
func (v T) Versor() T {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return v.Scale(1 / l)
}

// ProjectOnto returns h*(h.v), the component of v along h when h is a unit
// vector. h is used as given, not renormalised, matching the original's
// H_versor usage where H is pre-normalised once per cell.
func (v T) ProjectOnto(h T) T {
	return h.Scale(h.Dot(v))
}

// GramSchmidt removes the component of b along k, the divergence-cleaning
// step of spec.md §4.2 step 7: b <- b - k*(k.b)/|k|^2. Unlike the
// anisotropy step (step 5), this is a plain projection with no
// renormalization back to |b|: the amplitude reduction is part of the
// divergence-free projection itself.
func GramSchmidt(k, b T) T {
	kk := k.SquaredLength()
	if kk == 0 {
		return Zero
	}
	proj := k.Dot(b) / kk
	return T{
		b[0] - k[0]*proj,
		b[1] - k[1]*proj,
		b[2] - k[2]*proj,
	}
}

// FromSpherical returns the LOS unit vector for a HEALPix-style (theta,phi)
// pointing: theta measured from the north pole, phi the longitude.
func FromSpherical(theta, phi float64) T {
	st := math.Sin(theta)
	return T{st * math.Cos(phi), st * math.Sin(phi), math.Cos(theta)}
}
