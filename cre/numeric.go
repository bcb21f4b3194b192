// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cre

import (
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// tableRow is one CSV record of the tabulated CR spectrum, the on-disk
// format SPEC_FULL.md §2 supplements for the "Numeric" variant named but
// not formatted by spec.md §4.3.
type tableRow struct {
	EGeV float64 `csv:"e_gev"`
	RKpc float64 `csv:"r_kpc"`
	ZKpc float64 `csv:"z_kpc"`
	N    float64 `csv:"n"` // local CR number density per energy bin
}

// Numeric is the tabulated CRE variant: N(E,r,|z|) is read from a CSV
// grid dump and interpolated tri-linearly (reusing grid.Scalar, whose
// trilinear interpolation is axis-agnostic — here the three axes are
// energy, cylindrical radius and height rather than x,y,z). The
// synchrotron kernel F(x) = x*Integral_x^inf K_5/3(t) dt is evaluated with
// the Fouka & Ouichaoui (2013) closed-form fit, since no Bessel-K
// special-function library is present anywhere in the retrieved pack
// (SPEC_FULL.md §3 item 4).
type Numeric struct {
	table    *grid.Scalar
	eMinGeV  float64
	eMaxGeV  float64
	nE       int
}

// NewNumeric loads filename (a CSV with columns e_gev,r_kpc,z_kpc,n on a
// regular E x R x Z lattice, row-major in that order) into a Numeric
// provider.
func NewNumeric(filename string) *Numeric {
	f, err := os.Open(filename)
	if err != nil {
		chk.Panic("cre: cannot open table %q: %v", filename, err)
	}
	defer f.Close()
	var rows []*tableRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		chk.Panic("cre: cannot parse table %q: %v", filename, err)
	}
	if len(rows) == 0 {
		chk.Panic("cre: table %q is empty", filename)
	}

	eMin, eMax := rows[0].EGeV, rows[0].EGeV
	rMin, rMax := rows[0].RKpc, rows[0].RKpc
	zMin, zMax := rows[0].ZKpc, rows[0].ZKpc
	eSet, rSet, zSet := map[float64]bool{}, map[float64]bool{}, map[float64]bool{}
	for _, r := range rows {
		eSet[r.EGeV] = true
		rSet[r.RKpc] = true
		zSet[r.ZKpc] = true
		if r.EGeV < eMin {
			eMin = r.EGeV
		}
		if r.EGeV > eMax {
			eMax = r.EGeV
		}
		if r.RKpc < rMin {
			rMin = r.RKpc
		}
		if r.RKpc > rMax {
			rMax = r.RKpc
		}
		if r.ZKpc < zMin {
			zMin = r.ZKpc
		}
		if r.ZKpc > zMax {
			zMax = r.ZKpc
		}
	}
	nE, nR, nZ := len(eSet), len(rSet), len(zSet)
	if nE*nR*nZ != len(rows) {
		chk.Panic("cre: table %q is not a complete regular E x R x Z lattice (%d rows, %dx%dx%d expected)", filename, len(rows), nE, nR, nZ)
	}

	box := grid.Box{Nx: nE, Ny: nR, Nz: nZ, Xmin: eMin, Xmax: eMax, Ymin: rMin, Ymax: rMax, Zmin: zMin, Zmax: zMax}
	if eMin == eMax || rMin == rMax || zMin == zMax {
		chk.Panic("cre: table %q needs at least two distinct values on every axis", filename)
	}
	g := grid.NewScalar(box)
	// rows are expected row-major in (E,R,Z); assign by position rather
	// than re-deriving indices from floating-point axis values.
	for idx, r := range rows {
		g.Data[idx] = r.N
	}
	return &Numeric{table: g, eMinGeV: eMin, eMaxGeV: eMax, nE: nE}
}

// kernelF is the Fouka & Ouichaoui (2013) closed-form approximation to
// F(x) = x*Integral_x^inf K_5/3(t) dt.
func kernelF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return 1.25 * math.Pow(x, 1.0/3.0) * math.Exp(-x) * math.Pow(648+x*x, 1.0/12.0)
}

// Emissivity integrates N(E,r,|z|)*F(x) over the table's energy axis with
// a composite Simpson rule (spec.md §4.3 "numerically integrates").
func (n *Numeric) Emissivity(pos vec3.T, freq, bPerp float64) (jTot, jPol float64) {
	if bPerp == 0 {
		return 0, 0
	}
	r := math.Hypot(pos[0]/units.Kpc, pos[1]/units.Kpc)
	z := math.Abs(pos[2] / units.Kpc)

	steps := n.nE
	if steps%2 == 0 {
		steps++
	}
	h := (n.eMaxGeV - n.eMinGeV) / float64(steps-1)
	sum := 0.0
	bAbs := math.Abs(bPerp)
	for i := 0; i < steps; i++ {
		eGeV := n.eMinGeV + float64(i)*h
		density := n.table.Interpolate(vec3.T{eGeV, r, z})
		eErg := eGeV * units.GeV
		gamma := eErg / units.MEC2
		nuC := 3 * units.ElecChg * bAbs * gamma * gamma / (4 * units.Pi * units.ElecMass * units.CLight)
		x := freq / nuC
		f := density * kernelF(x)
		w := 2.0
		if i == 0 || i == steps-1 {
			w = 1.0
		} else if i%2 == 1 {
			w = 4.0
		}
		sum += w * f
	}
	integral := sum * h / 3.0
	jTot = integral * units.SynchrotronNorm * bAbs / (4 * units.Pi)
	jPol = jTot * 0.7 // fixed intrinsic polarisation fraction for synchrotron radiation
	return
}
