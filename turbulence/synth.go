// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbulence

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"gonum.org/v1/gonum/stat"

	"github.com/trjaffe/hammurabiX/field"
	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// seedFor salts the user seed, mirroring original_source's
// toolkit::random_seed so seed 0 is not a degenerate all-zero stream.
func seedFor(seed int64) int64 {
	const salt = 0x5DEECE66D
	return seed ^ salt
}

// kvec returns the signed physical wavevector (1/kpc) for cell (i,j,k) of
// an (nx,ny,nz) grid spanning physical lengths (lx,ly,lz) in cm, using the
// standard FFT convention: indices >= n/2 wrap to negative frequencies.
func kvec(i, j, k, nx, ny, nz int, lx, ly, lz float64) vec3.T {
	kx := units.Kpc * float64(i) / lx
	if i >= nx/2 {
		kx -= units.Kpc * float64(nx) / lx
	}
	ky := units.Kpc * float64(j) / ly
	if j >= ny/2 {
		ky -= units.Kpc * float64(ny) / ly
	}
	kz := units.Kpc * float64(k) / lz
	if k >= nz/2 {
		kz -= units.Kpc * float64(nz) / lz
	}
	return vec3.T{kx, ky, kz}
}

// Envelope is the spatial profile applied in step 4 of spec.md §4.2,
// evaluated at a physical position relative to the observer.
type Envelope struct {
	SunPosition vec3.T
	R0, Z0      float64
}

func (e Envelope) at(pos vec3.T) float64 {
	rCyl := math.Hypot(pos[0], pos[1])
	rCylSun := math.Hypot(e.SunPosition[0], e.SunPosition[1])
	return Envelope_rescal(rCyl, pos[2], rCylSun, e.SunPosition[2], e.R0, e.Z0)
}

// Envelope_rescal is rho_env(pos) = exp(-(r_cyl-r_cyl_sun)/r0) *
// exp(-(|z|-|z_sun|)/z0), spec.md §4.2 step 4.
func Envelope_rescal(rCyl, z, rCylSun, zSun, r0, z0 float64) float64 {
	return math.Exp(-(rCyl-rCylSun)/r0) * math.Exp(-(math.Abs(z)-math.Abs(zSun))/z0)
}

// fillKSpace draws the Gaussian k-space amplitudes of spec.md §4.2 step 1
// into re/im (one cube3D per vector component, or a single pair for the
// scalar variant), zeroing the DC cell per step 2. RNG consumption is
// strictly sequential, per spec.md §5, so reproducibility only depends on
// the seed.
func fillKSpace(nx, ny, nz int, lx, ly, lz float64, sp SpecParams, seed int64, comps int) ([]*cube3D, []*cube3D) {
	rnd.Init(int(seedFor(seed)))
	dk3 := units.Kpc * units.Kpc * units.Kpc / (lx * ly * lz)
	halfdk := 0.5 * math.Sqrt(units.Kpc*units.Kpc/(lx*lx)+units.Kpc*units.Kpc/(ly*ly)+units.Kpc*units.Kpc/(lz*lz))

	re := make([]*cube3D, comps)
	im := make([]*cube3D, comps)
	for c := 0; c < comps; c++ {
		re[c] = newCube3D(nx, ny, nz)
		im[c] = newCube3D(nx, ny, nz)
	}

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for l := 0; l < nz; l++ {
				k := kvec(i, j, l, nx, ny, nz, lx, ly, lz)
				kmag := k.Length()
				element := SimpsonCell(kmag, halfdk, sp) * dk3
				sigma := math.Sqrt(0.5 * element)
				idx := re[0].idx(i, j, l)
				for c := 0; c < comps; c++ {
					re[c].data[idx] = complex(sigma*rnd.Normal(0, 1), 0)
					im[c].data[idx] = complex(sigma*rnd.Normal(0, 1), 0)
				}
			}
		}
	}
	for c := 0; c < comps; c++ {
		re[c].data[0] = 0
		im[c].data[0] = 0
	}
	return re, im
}

// combineReIm packs the separately-drawn real/imaginary parts into one
// complex128 cube per component, matching the complex k-space layout an
// FFT library expects (spec.md §9 "documented complex layout").
func combineReIm(re, im []*cube3D) []*cube3D {
	out := make([]*cube3D, len(re))
	for c := range re {
		cube := newCube3D(re[c].nx, re[c].ny, re[c].nz)
		for idx := range cube.data {
			cube.data[idx] = complex(real(re[c].data[idx]), real(im[c].data[idx]))
		}
		out[c] = cube
	}
	return out
}

// variance computes the empirical variance of the real part of a cube,
// used for envelope normalisation (spec.md §4.2 step 4) and exercising
// gonum/stat per SPEC_FULL.md.
func variance(c *cube3D) float64 {
	vals := make([]float64, len(c.data))
	for i, v := range c.data {
		vals[i] = real(v)
	}
	return stat.Variance(vals, nil)
}

// SynthesizeScalar runs the scalar variant of spec.md §4.2 (steps 1-4, 9,
// 10: no anisotropy or divergence cleaning).
func SynthesizeScalar(box grid.Box, seed int64, sp SpecParams, env Envelope) *grid.Scalar {
	lx, ly, lz := box.Xmax-box.Xmin, box.Ymax-box.Ymin, box.Zmax-box.Zmin
	re, im := fillKSpace(box.Nx, box.Ny, box.Nz, lx, ly, lz, sp, seed, 1)
	k := combineReIm(re, im)[0]
	k.inverseDFT3()

	// No further forward/backward round trip happens for the scalar
	// variant (unlike SynthesizeVector's steps 6-8), so there is no
	// unnormalised-DFT factor of N left to undo here: ratio alone already
	// rescales real(k.data[...]) to the requested variance
	// env(pos)*RMS^2, whatever absolute scale inverseDFT3 produced.
	v := variance(k)
	g := grid.NewScalar(box)
	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for l := 0; l < box.Nz; l++ {
				pos := box.Pos(i, j, l)
				ratio := 0.0
				if v > 0 {
					ratio = math.Sqrt(env.at(pos)) * sp.RMS / math.Sqrt(v)
				}
				g.Data[g.Idx(i, j, l)] = real(k.data[k.idx(i, j, l)]) * ratio
			}
		}
	}
	return g
}

// SynthesizeVector runs the full magnetic variant of spec.md §4.2 (all
// ten steps): k-space fill, inverse DFT, envelope rescaling, anisotropy
// imposition against background, forward DFT, Gram-Schmidt divergence
// cleaning, inverse DFT, normalisation.
func SynthesizeVector(box grid.Box, seed int64, sp SpecParams, env Envelope, background field.VectorProvider, rho float64) *grid.Vector {
	if rho < 0 || rho > 1 {
		panic("turbulence: anisotropy rho out of [0,1]")
	}
	lx, ly, lz := box.Xmax-box.Xmin, box.Ymax-box.Ymin, box.Zmax-box.Zmin
	re, im := fillKSpace(box.Nx, box.Ny, box.Nz, lx, ly, lz, sp, seed, 3)
	cubes := combineReIm(re, im) // [x,y,z]
	for _, c := range cubes {
		c.inverseDFT3()
	}

	bVar := variance(cubes[0])

	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for l := 0; l < box.Nz; l++ {
				pos := box.Pos(i, j, l)
				idx := cubes[0].idx(i, j, l)
				ratio := 0.0
				if bVar > 0 {
					ratio = math.Sqrt(env.at(pos)) * sp.RMS / math.Sqrt(3*bVar)
				}
				bRe := vec3.T{real(cubes[0].data[idx]) * ratio, real(cubes[1].data[idx]) * ratio, real(cubes[2].data[idx]) * ratio}
				bIm := vec3.T{imag(cubes[0].data[idx]) * ratio, imag(cubes[1].data[idx]) * ratio, imag(cubes[2].data[idx]) * ratio}

				bg := background.Sample(pos)
				h := bg.Versor()
				if h.Length() > 0 {
					bRe = imposeAnisotropy(bRe, h, rho)
					bIm = imposeAnisotropy(bIm, h, rho)
				}
				cubes[0].data[idx] = complex(bRe[0], bIm[0])
				cubes[1].data[idx] = complex(bRe[1], bIm[1])
				cubes[2].data[idx] = complex(bRe[2], bIm[2])
			}
		}
	}

	for _, c := range cubes {
		c.forwardDFT3()
	}

	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for l := 0; l < box.Nz; l++ {
				k := kvec(i, j, l, box.Nx, box.Ny, box.Nz, lx, ly, lz)
				idx := cubes[0].idx(i, j, l)
				bRe := vec3.T{real(cubes[0].data[idx]), real(cubes[1].data[idx]), real(cubes[2].data[idx])}
				bIm := vec3.T{imag(cubes[0].data[idx]), imag(cubes[1].data[idx]), imag(cubes[2].data[idx])}
				freeRe := vec3.GramSchmidt(k, bRe)
				freeIm := vec3.GramSchmidt(k, bIm)
				cubes[0].data[idx] = complex(freeRe[0], freeIm[0])
				cubes[1].data[idx] = complex(freeRe[1], freeIm[1])
				cubes[2].data[idx] = complex(freeRe[2], freeIm[2])
			}
		}
	}
	for _, c := range cubes {
		c.data[0] = 0
	}

	for _, c := range cubes {
		c.inverseDFT3()
	}

	g := grid.NewVector(box)
	invN := 1.0 / float64(box.FullSize())
	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for l := 0; l < box.Nz; l++ {
				idx := cubes[0].idx(i, j, l)
				v := vec3.T{
					real(cubes[0].data[idx]) * invN,
					real(cubes[1].data[idx]) * invN,
					real(cubes[2].data[idx]) * invN,
				}
				g.Set(i, j, l, v)
			}
		}
	}
	return g
}

// imposeAnisotropy replaces b by normalise(b_par*rho + b_perp*(1-rho))*|b|,
// spec.md §4.2 step 5.
func imposeAnisotropy(b, h vec3.T, rho float64) vec3.T {
	l := b.Length()
	if l == 0 {
		return b
	}
	par := b.ProjectOnto(h)
	perp := b.Sub(par)
	mix := par.Scale(rho).Add(perp.Scale(1 - rho))
	return mix.Versor().Scale(l)
}
