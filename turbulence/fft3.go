// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turbulence

import "gonum.org/v1/gonum/dsp/fourier"

// cube3D is a dense nx*ny*nz complex128 buffer in the same row-major
// index order as grid.Box.Idx: i*ny*nz + j*nz + k.
type cube3D struct {
	nx, ny, nz int
	data       []complex128
}

func newCube3D(nx, ny, nz int) *cube3D {
	return &cube3D{nx: nx, ny: ny, nz: nz, data: make([]complex128, nx*ny*nz)}
}

func (c *cube3D) idx(i, j, k int) int { return i*c.ny*c.nz + j*c.nz + k }

// transform1DAxis applies a 1-D complex FFT along one axis of the cube, in
// place. forward selects fourier.CmplxFFT.Coefficients (time->frequency)
// vs Sequence (frequency->time, unnormalised, matching the FFTW
// convention original_source relies on — a round trip scales values by N).
//
// gonum's dsp/fourier only offers a 1-D transform; a 3-D complex DFT is
// the separable composition of three 1-D transforms, one per axis, which
// is the standard way to get an N-D FFT without a CGo binding to FFTW
// (the external collaborator spec.md §1 names but does not mandate a
// specific implementation of).
func (c *cube3D) transform1DAxis(axis int, forward bool) {
	var n int
	switch axis {
	case 0:
		n = c.nx
	case 1:
		n = c.ny
	case 2:
		n = c.nz
	}
	fft := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	switch axis {
	case 0:
		for j := 0; j < c.ny; j++ {
			for k := 0; k < c.nz; k++ {
				for i := 0; i < n; i++ {
					line[i] = c.data[c.idx(i, j, k)]
				}
				out := transformLine(fft, line, forward)
				for i := 0; i < n; i++ {
					c.data[c.idx(i, j, k)] = out[i]
				}
			}
		}
	case 1:
		for i := 0; i < c.nx; i++ {
			for k := 0; k < c.nz; k++ {
				for j := 0; j < n; j++ {
					line[j] = c.data[c.idx(i, j, k)]
				}
				out := transformLine(fft, line, forward)
				for j := 0; j < n; j++ {
					c.data[c.idx(i, j, k)] = out[j]
				}
			}
		}
	case 2:
		for i := 0; i < c.nx; i++ {
			for j := 0; j < c.ny; j++ {
				for k := 0; k < n; k++ {
					line[k] = c.data[c.idx(i, j, k)]
				}
				out := transformLine(fft, line, forward)
				for k := 0; k < n; k++ {
					c.data[c.idx(i, j, k)] = out[k]
				}
			}
		}
	}
}

func transformLine(fft *fourier.CmplxFFT, line []complex128, forward bool) []complex128 {
	if forward {
		return fft.Coefficients(nil, line)
	}
	return fft.Sequence(nil, line)
}

// forwardDFT3 runs the 3-D forward complex DFT (real/k-space -> frequency
// domain in the original's terminology is reversed from ours: we start in
// k-space and go to real space, see synth.go step ordering).
func (c *cube3D) forwardDFT3() {
	c.transform1DAxis(0, true)
	c.transform1DAxis(1, true)
	c.transform1DAxis(2, true)
}

// inverseDFT3 runs the 3-D inverse (unnormalised) complex DFT.
func (c *cube3D) inverseDFT3() {
	c.transform1DAxis(0, false)
	c.transform1DAxis(1, false)
	c.transform1DAxis(2, false)
}
