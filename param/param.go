// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package param holds the plain configuration record described in
// spec.md §3 ("Parameters") and §6 ("Configuration input"), and its YAML
// loader. The struct layout follows the teacher's inp.Data convention
// (a flat, tag-annotated record read once at startup) generalised from
// gofem's FEM options to the physical-model constants this simulator
// needs; the serialisation format is YAML (gopkg.in/yaml.v3) rather than
// the teacher's JSON or the original's XML, since parsing format is
// declared plumbing by spec.md §1.
package param

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"gopkg.in/yaml.v3"

	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/units"
	"github.com/trjaffe/hammurabiX/vec3"
)

// GridSpec mirrors spec.md §6 Grid.Box{...} for one field kind.
type GridSpec struct {
	Nx         int     `yaml:"nx"`
	Ny         int     `yaml:"ny"`
	Nz         int     `yaml:"nz"`
	Xmin       float64 `yaml:"xmin"`
	Xmax       float64 `yaml:"xmax"`
	Ymin       float64 `yaml:"ymin"`
	Ymax       float64 `yaml:"ymax"`
	Zmin       float64 `yaml:"zmin"`
	Zmax       float64 `yaml:"zmax"`
}

// Box converts a GridSpec (kpc) to a grid.Box (cm).
func (s GridSpec) Box() grid.Box {
	return grid.Box{
		Nx: s.Nx, Ny: s.Ny, Nz: s.Nz,
		Xmin: s.Xmin * units.Kpc, Xmax: s.Xmax * units.Kpc,
		Ymin: s.Ymin * units.Kpc, Ymax: s.Ymax * units.Kpc,
		Zmin: s.Zmin * units.Kpc, Zmax: s.Zmax * units.Kpc,
	}
}

// FieldIO is the read/write/filename persistence toggle common to every
// entry under Fieldout in spec.md §6.
type FieldIO struct {
	Read     bool   `yaml:"read"`
	Write    bool   `yaml:"write"`
	Filename string `yaml:"filename"`
}

// BregParams collects the regular-magnetic-field model constants. Exact
// physical formulas are out of scope per spec.md §1; these are the knobs
// the analytic models in field/magnetic actually read.
type BregParams struct {
	Type string `yaml:"type"` // WMAP | Jaffe | Verify

	WMAP struct {
		B0, Psi0, Psi1, Chi0 float64
	} `yaml:"wmap"`

	Jaffe struct {
		DiskAmp, DiskZ0 float64
		HaloAmp, HaloZ0 float64
		RScale          float64
	} `yaml:"jaffe"`

	Verify struct {
		B0 float64
		L0 float64
	} `yaml:"verify"`
}

// BrndParams collects the random-magnetic-field synthesiser constants
// (spec.md §4.2).
type BrndParams struct {
	Type string `yaml:"type"` // Global | Local
	Seed int64  `yaml:"seed"`

	Global struct {
		RMS, K0, A0, Rho, R0, Z0 float64
	} `yaml:"global"`

	Local struct {
		RMS, K0, R0, Z0 float64
	} `yaml:"local"`
}

// FeregParams collects the regular free-electron-density model constants.
type FeregParams struct {
	Type string `yaml:"type"` // YMW16 | Verify

	YMW16 struct {
		ThickN0, ThickH1 float64
		ThinN0, ThinH1   float64
		R0               float64
	} `yaml:"ymw16"`

	Verify struct {
		N0, R0 float64
	} `yaml:"verify"`
}

// FerndParams collects the random free-electron-density synthesiser
// constants.
type FerndParams struct {
	Type string `yaml:"type"` // Global
	Seed int64  `yaml:"seed"`

	Global struct {
		RMS, K0, A0, R0, Z0 float64
	} `yaml:"global"`
}

// CREParams collects cosmic-ray-electron model constants.
type CREParams struct {
	Type string `yaml:"type"` // Analytic | Verify | Numeric

	Analytic struct {
		Alpha, Beta, Theta float64
		R0, Z0             float64
		E0, J0             float64
	} `yaml:"analytic"`

	Verify struct {
		Alpha float64
		R0    float64
		E0    float64
		J0    float64
	} `yaml:"verify"`

	Numeric struct {
		TableFile string `yaml:"table_file"`
	} `yaml:"numeric"`
}

// SyncOutput is one entry of Obsout.Sync[] in spec.md §6.
type SyncOutput struct {
	Freq     float64 `yaml:"freq"`
	Filename string  `yaml:"filename"`
	Enable   bool    `yaml:"enable"`
}

// ObsoutParams collects the integrator/observable output options of
// spec.md §6.
type ObsoutParams struct {
	DoDM bool `yaml:"do_dm"`
	DoFD bool `yaml:"do_fd"`
	Sync []SyncOutput

	NsideSim    int     `yaml:"nside_sim"`
	NsideShell  []int   `yaml:"nside_shell"`
	TotalShell  int     `yaml:"total_shell"`
	ShellMode   string  `yaml:"shell_mode"` // auto | manual
	ShellFracs  []float64 `yaml:"shell_fracs"` // manual mode d_stop fractions, cumulative to 1
	EcRMax      float64 `yaml:"ec_r_max"`
	GcRMax      float64 `yaml:"gc_r_max"`
	GcZMax      float64 `yaml:"gc_z_max"`
	RadialRes   float64 `yaml:"radial_res"`
	LatLim      float64 `yaml:"lat_lim"`
}

// FieldoutParams collects the grid persistence toggles of spec.md §6.
type FieldoutParams struct {
	BregGrid  FieldIO `yaml:"breg_grid"`
	BrndGrid  FieldIO `yaml:"brnd_grid"`
	FeregGrid FieldIO `yaml:"fereg_grid"`
	FerndGrid FieldIO `yaml:"fernd_grid"`
	CREGrid   FieldIO `yaml:"cre_grid"`
}

// Params is the full configuration record, spec.md §3/§6.
type Params struct {
	SunPosition vec3.T `yaml:"sun_position"` // kpc

	BregBox  GridSpec `yaml:"breg_box"`
	BrndBox  GridSpec `yaml:"brnd_box"`
	FeregBox GridSpec `yaml:"fereg_box"`
	FerndBox GridSpec `yaml:"fernd_box"`

	Breg  BregParams  `yaml:"breg"`
	Brnd  BrndParams  `yaml:"brnd"`
	Fereg FeregParams `yaml:"fereg"`
	Fernd FerndParams `yaml:"fernd"`
	CRE   CREParams   `yaml:"cre"`

	Obsout   ObsoutParams   `yaml:"obsout"`
	Fieldout FieldoutParams `yaml:"fieldout"`
}

// SunPositionCm converts SunPosition from kpc to cm.
func (p *Params) SunPositionCm() vec3.T {
	return p.SunPosition.Scale(units.Kpc)
}

// Load reads and validates a YAML configuration file.
func Load(filename string) *Params {
	buf, err := os.ReadFile(filename)
	if err != nil {
		chk.Panic("param: cannot read %q: %v", filename, err)
	}
	p := new(Params)
	if err := yaml.Unmarshal(buf, p); err != nil {
		chk.Panic("param: cannot parse %q: %v", filename, err)
	}
	p.validate()
	return p
}

func (p *Params) validate() {
	switch p.Breg.Type {
	case "WMAP", "Jaffe", "Verify":
	default:
		chk.Panic("param: unknown breg.type %q", p.Breg.Type)
	}
	switch p.Brnd.Type {
	case "", "Global", "Local":
	default:
		chk.Panic("param: unknown brnd.type %q", p.Brnd.Type)
	}
	switch p.Fereg.Type {
	case "YMW16", "Verify":
	default:
		chk.Panic("param: unknown fereg.type %q", p.Fereg.Type)
	}
	switch p.Fernd.Type {
	case "", "Global":
	default:
		chk.Panic("param: unknown fernd.type %q", p.Fernd.Type)
	}
	switch p.CRE.Type {
	case "Analytic", "Verify", "Numeric":
	default:
		chk.Panic("param: unknown cre.type %q", p.CRE.Type)
	}
	if p.Obsout.TotalShell <= 0 {
		chk.Panic("param: obsout.total_shell must be positive")
	}
	if p.Obsout.RadialRes <= 0 {
		chk.Panic("param: obsout.radial_res must be positive")
	}
	if p.Obsout.EcRMax <= 0 {
		chk.Panic("param: obsout.ec_r_max must be positive")
	}
	if len(p.Obsout.NsideShell) != p.Obsout.TotalShell {
		chk.Panic("param: len(nside_shell)=%d must equal total_shell=%d", len(p.Obsout.NsideShell), p.Obsout.TotalShell)
	}
}
