// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package units collects the CGS physical constants and unit conversions
// used throughout the simulator, grounded on original_source's
// cgs_units_file.h. Every length that reaches a FieldProvider or the
// Integrator is expected to already be in centimetres; Kpc and MicroGauss
// below are the only two conversion factors callers ordinarily need.
package units

import "math"

// Fundamental constants, CGS (centimetre-gram-second).
const (
	CLight    = 2.99792458e10              // speed of light, cm/s
	ElecMass  = 9.10938356e-28             // electron mass, g
	ElecChg   = 4.80320425e-10             // electron charge, esu
	MEC2      = ElecMass * CLight * CLight // electron rest energy, erg
	Boltzmann = 1.38064852e-16             // erg/K
	GeV       = 1.6021766208e-3            // erg
	Pi        = math.Pi
)

// Length and field conversions into CGS.
const (
	Kpc        = 3.0856775814913673e21 // cm per kiloparsec
	MicroGauss = 1.0e-6                // Gauss per microGauss (field already stored in Gauss)
)

// FDForefactor is the constant multiplying n_e*B_par*dl in the Faraday
// depth integrand: -e^3 / (2*pi*m_e^2*c^4). Negative sign fixes the global
// sign convention pinned by spec.md test 9 (positive B_par, positive n_e
// gives negative FD).
var FDForefactor = -(ElecChg * ElecChg * ElecChg) / (2 * Pi * MEC2 * MEC2)

// SynchrotronNorm is the proportionality constant in front of the CRE
// analytic emissivity formulas: sqrt(3)*e^3/(2*m_e*c^2*4*pi).
var SynchrotronNorm = math.Sqrt(3) * ElecChg * ElecChg * ElecChg / (2 * MEC2 * 4 * Pi)
