// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/trjaffe/hammurabiX/param"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

func testParams() *param.Params {
	p := &param.Params{
		SunPosition: vec3.T{-8.3, 0, 0},
	}
	box := param.GridSpec{Nx: 6, Ny: 6, Nz: 6, Xmin: -10, Xmax: 10, Ymin: -10, Ymax: 10, Zmin: -2, Zmax: 2}
	p.BregBox, p.BrndBox, p.FeregBox, p.FerndBox = box, box, box, box

	p.Breg.Type = "Verify"
	p.Breg.Verify.B0 = 1e-6
	p.Breg.Verify.L0 = 0

	p.Fereg.Type = "Verify"
	p.Fereg.Verify.N0 = 0.03
	p.Fereg.Verify.R0 = 8

	p.CRE.Type = "Verify"
	p.CRE.Verify.Alpha = 3
	p.CRE.Verify.R0 = 8
	p.CRE.Verify.E0 = 1
	p.CRE.Verify.J0 = 1

	p.Obsout.DoDM = true
	p.Obsout.DoFD = true
	p.Obsout.NsideSim = 2
	p.Obsout.TotalShell = 2
	p.Obsout.NsideShell = []int{1, 2}
	p.Obsout.ShellMode = "Auto"
	p.Obsout.EcRMax = 6 * units.Kpc
	p.Obsout.RadialRes = 0.5 * units.Kpc
	p.Obsout.GcRMax = 50 * units.Kpc
	p.Obsout.GcZMax = 50 * units.Kpc
	p.Obsout.Sync = []param.SyncOutput{{Freq: 1.4e9, Enable: true}}
	return p
}

func Test_pipeline_resolves_providers_without_io(tst *testing.T) {
	chk.PrintTitle("pipeline resolves analytic providers when no persistence is requested")
	p := testParams()
	pl := New(p)
	if pl.Breg == nil || pl.Fereg == nil || pl.CRE == nil {
		tst.Fatalf("expected non-nil regular providers")
	}
	if pl.Brnd != nil || pl.Fernd != nil {
		tst.Fatalf("expected nil random providers when brnd/fernd types are empty")
	}
	if len(pl.Shells) != p.Obsout.TotalShell {
		tst.Fatalf("expected %d shells, got %d", p.Obsout.TotalShell, len(pl.Shells))
	}
}

func Test_pipeline_run_produces_dm_fd_and_sync_results(tst *testing.T) {
	chk.PrintTitle("pipeline run produces a DM/FD pass plus one synchrotron pass")
	p := testParams()
	pl := New(p)
	results := pl.Run()
	if len(results) != 2 {
		tst.Fatalf("expected 2 results (dm/fd pass + 1 sync pass), got %d", len(results))
	}
	if results[0].Maps.DM == nil || results[0].Maps.FD == nil {
		tst.Fatalf("expected DM/FD maps in first pass")
	}
	if results[1].Maps.Is == nil || results[1].Freq != 1.4e9 {
		tst.Fatalf("expected synchrotron maps at 1.4e9 Hz in second pass")
	}
}

func Test_pipeline_grid_persistence_roundtrip(tst *testing.T) {
	chk.PrintTitle("writing then reading a field grid reproduces the same samples")
	p := testParams()
	dir := tst.TempDir()
	p.Fieldout.BregGrid.Write = true
	p.Fieldout.BregGrid.Filename = filepath.Join(dir, "breg.bin")
	New(p) // writes breg.bin

	p2 := testParams()
	p2.Fieldout.BregGrid.Read = true
	p2.Fieldout.BregGrid.Filename = p.Fieldout.BregGrid.Filename
	pl2 := New(p2)

	pos := vec3.T{0, 0, 0}
	got := pl2.Breg.Sample(pos)
	want := vec3.T{1e-6, 0, 0} // Verify model: uniform B0 along x everywhere (L0==0)
	if got != want {
		tst.Fatalf("round-tripped grid sample = %v, want %v", got, want)
	}
}
