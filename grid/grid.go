// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the rectilinear Cartesian sampler described in
// spec.md §4.1: a dense scalar or vector payload over a box, with trilinear
// interpolation that saturates (returns zero) outside the box. It is the
// Go home for what the teacher repo calls shape functions (shp package):
// the interpolation weights below play the same role gofem's shp package
// plays for finite elements, generalised from a handful of element corners
// to an arbitrary nx*ny*nz lattice.
package grid

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/vec3"
)

// Box describes the bounds and resolution of a rectilinear grid.
type Box struct {
	Nx, Ny, Nz             int
	Xmin, Xmax             float64
	Ymin, Ymax             float64
	Zmin, Zmax             float64
}

// Validate enforces the invariants in spec.md §3: positive counts and
// strictly increasing bounds on every axis.
func (b Box) Validate() {
	if b.Nx <= 0 || b.Ny <= 0 || b.Nz <= 0 {
		chk.Panic("grid: non-positive sample count nx=%d ny=%d nz=%d", b.Nx, b.Ny, b.Nz)
	}
	if b.Xmin >= b.Xmax || b.Ymin >= b.Ymax || b.Zmin >= b.Zmax {
		chk.Panic("grid: box bounds must be strictly increasing")
	}
}

// FullSize is the number of cells nx*ny*nz.
func (b Box) FullSize() int { return b.Nx * b.Ny * b.Nz }

// Idx is the dense row-major cell index i*ny*nz + j*nz + k.
func (b Box) Idx(i, j, k int) int { return i*b.Ny*b.Nz + j*b.Nz + k }

// Pos returns the physical position of cell (i,j,k).
func (b Box) Pos(i, j, k int) vec3.T {
	return vec3.T{
		b.Xmin + float64(i)*(b.Xmax-b.Xmin)/float64(b.Nx-1),
		b.Ymin + float64(j)*(b.Ymax-b.Ymin)/float64(b.Ny-1),
		b.Zmin + float64(k)*(b.Zmax-b.Zmin)/float64(b.Nz-1),
	}
}

// axisWeight computes l (lower index) and d (fractional weight in [0,1])
// for one axis, or ok=false if pos falls outside [min,max].
func axisWeight(p, min, max float64, n int) (l int, d float64, ok bool) {
	t := (p - min) * float64(n-1) / (max - min)
	if t < 0 || t > float64(n-1) {
		return 0, 0, false
	}
	l = int(math.Floor(t))
	d = t - float64(l)
	if l+1 >= n {
		l = n - 1
		d = 0
	}
	return l, d, true
}

// Scalar is a dense scalar grid, one f64 per cell.
type Scalar struct {
	Box
	Data []float64
}

// NewScalar allocates a zeroed scalar grid over box.
func NewScalar(box Box) *Scalar {
	box.Validate()
	return &Scalar{Box: box, Data: make([]float64, box.FullSize())}
}

// Interpolate implements spec.md §4.1: trilinear inside the box, zero
// outside, nearest-corner on the far edge.
func (g *Scalar) Interpolate(pos vec3.T) float64 {
	xl, xd, ok := axisWeight(pos[0], g.Xmin, g.Xmax, g.Nx)
	if !ok {
		return 0
	}
	yl, yd, ok := axisWeight(pos[1], g.Ymin, g.Ymax, g.Ny)
	if !ok {
		return 0
	}
	zl, zd, ok := axisWeight(pos[2], g.Zmin, g.Zmax, g.Nz)
	if !ok {
		return 0
	}
	xh, yh, zh := xl+1, yl+1, zl+1
	if xh >= g.Nx {
		xh = xl
	}
	if yh >= g.Ny {
		yh = yl
	}
	if zh >= g.Nz {
		zh = zl
	}
	c := func(i, j, k int) float64 { return g.Data[g.Idx(i, j, k)] }
	c000, c100 := c(xl, yl, zl), c(xh, yl, zl)
	c010, c110 := c(xl, yh, zl), c(xh, yh, zl)
	c001, c101 := c(xl, yl, zh), c(xh, yl, zh)
	c011, c111 := c(xl, yh, zh), c(xh, yh, zh)
	c00 := c000*(1-xd) + c100*xd
	c10 := c010*(1-xd) + c110*xd
	c01 := c001*(1-xd) + c101*xd
	c11 := c011*(1-xd) + c111*xd
	c0 := c00*(1-yd) + c10*yd
	c1 := c01*(1-yd) + c11*yd
	return c0*(1-zd) + c1*zd
}

// Vector is a dense vector grid, three interleaved f64 per cell (x,y,z),
// matching the on-disk layout mandated by spec.md §6.
type Vector struct {
	Box
	Data []float64 // length 3*FullSize(), component-interleaved per cell
}

// NewVector allocates a zeroed vector grid over box.
func NewVector(box Box) *Vector {
	box.Validate()
	return &Vector{Box: box, Data: make([]float64, 3*box.FullSize())}
}

// At returns the stored vector at cell (i,j,k).
func (g *Vector) At(i, j, k int) vec3.T {
	idx := 3 * g.Idx(i, j, k)
	return vec3.T{g.Data[idx], g.Data[idx+1], g.Data[idx+2]}
}

// Set stores v at cell (i,j,k).
func (g *Vector) Set(i, j, k int, v vec3.T) {
	idx := 3 * g.Idx(i, j, k)
	g.Data[idx], g.Data[idx+1], g.Data[idx+2] = v[0], v[1], v[2]
}

// Interpolate component-wise trilinearly interpolates the vector field.
func (g *Vector) Interpolate(pos vec3.T) vec3.T {
	xl, xd, ok := axisWeight(pos[0], g.Xmin, g.Xmax, g.Nx)
	if !ok {
		return vec3.Zero
	}
	yl, yd, ok := axisWeight(pos[1], g.Ymin, g.Ymax, g.Ny)
	if !ok {
		return vec3.Zero
	}
	zl, zd, ok := axisWeight(pos[2], g.Zmin, g.Zmax, g.Nz)
	if !ok {
		return vec3.Zero
	}
	xh, yh, zh := xl+1, yl+1, zl+1
	if xh >= g.Nx {
		xh = xl
	}
	if yh >= g.Ny {
		yh = yl
	}
	if zh >= g.Nz {
		zh = zl
	}
	lerp := func(a, b, d float64) float64 { return a*(1-d) + b*d }
	var out vec3.T
	for c := 0; c < 3; c++ {
		v := func(i, j, k int) float64 { return g.Data[3*g.Idx(i, j, k)+c] }
		c00 := lerp(v(xl, yl, zl), v(xh, yl, zl), xd)
		c10 := lerp(v(xl, yh, zl), v(xh, yh, zl), xd)
		c01 := lerp(v(xl, yl, zh), v(xh, yl, zh), xd)
		c11 := lerp(v(xl, yh, zh), v(xh, yh, zh), xd)
		c0 := lerp(c00, c10, yd)
		c1 := lerp(c01, c11, yd)
		out[c] = lerp(c0, c1, zd)
	}
	return out
}

// Dump writes the payload as little-endian f64 in index order, the exact
// on-disk contract of spec.md §6. No header is written.
func Dump(filename string, data []float64) error {
	f, err := os.Create(filename)
	if err != nil {
		return chk.Err("grid: cannot create %q: %v", filename, err)
	}
	defer f.Close()
	buf := make([]byte, 8)
	for _, v := range data {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		if _, err := f.Write(buf); err != nil {
			return chk.Err("grid: write failed on %q: %v", filename, err)
		}
	}
	return nil
}

// Load reads exactly len(data) little-endian f64 values from filename into
// data, failing if the file size does not match exactly (spec.md §6).
func Load(filename string, data []float64) error {
	f, err := os.Open(filename)
	if err != nil {
		return chk.Err("grid: cannot open %q: %v", filename, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return chk.Err("grid: cannot stat %q: %v", filename, err)
	}
	want := int64(len(data)) * 8
	if info.Size() != want {
		return chk.Err("grid: %q has size %d, want %d", filename, info.Size(), want)
	}
	buf := make([]byte, 8)
	for i := range data {
		if _, err := f.Read(buf); err != nil {
			return chk.Err("grid: read failed on %q: %v", filename, err)
		}
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
	}
	return nil
}
