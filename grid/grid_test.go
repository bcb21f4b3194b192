// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/vec3"
)

func Test_scalar_idempotence(tst *testing.T) {
	chk.PrintTitle("scalar interpolation idempotence")
	box := Box{Nx: 4, Ny: 5, Nz: 3, Xmin: -1, Xmax: 1, Ymin: -2, Ymax: 2, Zmin: 0, Zmax: 1}
	g := NewScalar(box)
	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for k := 0; k < box.Nz; k++ {
				g.Data[g.Idx(i, j, k)] = float64(i) + 10*float64(j) + 100*float64(k)
			}
		}
	}
	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for k := 0; k < box.Nz; k++ {
				pos := box.Pos(i, j, k)
				got := g.Interpolate(pos)
				want := g.Data[g.Idx(i, j, k)]
				if math.Abs(got-want) > 1e-12 {
					tst.Fatalf("cell (%d,%d,%d): got %v want %v", i, j, k, got, want)
				}
			}
		}
	}
}

func Test_scalar_outofbox_zero(tst *testing.T) {
	chk.PrintTitle("scalar out-of-box is zero")
	box := Box{Nx: 3, Ny: 3, Nz: 3, Xmin: 0, Xmax: 1, Ymin: 0, Ymax: 1, Zmin: 0, Zmax: 1}
	g := NewScalar(box)
	for i := range g.Data {
		g.Data[i] = 1
	}
	outside := []vec3.T{{-0.1, 0.5, 0.5}, {0.5, 1.1, 0.5}, {0.5, 0.5, -5}}
	for _, pos := range outside {
		if v := g.Interpolate(pos); v != 0 {
			tst.Fatalf("pos %v: got %v want 0", pos, v)
		}
	}
}

func Test_vector_interior_continuity(tst *testing.T) {
	chk.PrintTitle("vector interpolation is continuous on the interior")
	box := Box{Nx: 5, Ny: 5, Nz: 5, Xmin: 0, Xmax: 4, Ymin: 0, Ymax: 4, Zmin: 0, Zmax: 4}
	g := NewVector(box)
	for i := 0; i < box.Nx; i++ {
		for j := 0; j < box.Ny; j++ {
			for k := 0; k < box.Nz; k++ {
				pos := box.Pos(i, j, k)
				g.Set(i, j, k, vec3.T{pos[0], pos[1] * pos[1], pos[2]})
			}
		}
	}
	// a linear-in-x component must be reproduced exactly at non-grid points
	v := g.Interpolate(vec3.T{1.5, 0, 0})
	if math.Abs(v[0]-1.5) > 1e-9 {
		tst.Fatalf("linear component not reproduced: got %v want 1.5", v[0])
	}
}

func Test_dump_load_roundtrip(tst *testing.T) {
	chk.PrintTitle("grid dump/load roundtrip")
	data := []float64{1, 2, 3, 4.5, -6.25}
	fn := os.TempDir() + "/hammurabi_grid_test.bin"
	defer os.Remove(fn)
	if err := Dump(fn, data); err != nil {
		tst.Fatalf("dump failed: %v", err)
	}
	back := make([]float64, len(data))
	if err := Load(fn, back); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	for i := range data {
		if data[i] != back[i] {
			tst.Fatalf("roundtrip mismatch at %d: %v != %v", i, data[i], back[i])
		}
	}
}

func Test_load_wrong_size_fails(tst *testing.T) {
	chk.PrintTitle("grid load rejects wrong file size")
	data := []float64{1, 2, 3}
	fn := os.TempDir() + "/hammurabi_grid_test_small.bin"
	defer os.Remove(fn)
	if err := Dump(fn, data); err != nil {
		tst.Fatalf("dump failed: %v", err)
	}
	back := make([]float64, len(data)+1)
	if err := Load(fn, back); err == nil {
		tst.Fatalf("expected error for mismatched size")
	}
}
