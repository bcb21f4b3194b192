// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/trjaffe/hammurabiX/diag"
	"github.com/trjaffe/hammurabiX/param"
	"github.com/trjaffe/hammurabiX/pipeline"
	"github.com/trjaffe/hammurabiX/turbulence"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nhammurabiX-go -- Galactic radio-sky simulator\n\n")
	io.Pf("Copyright 2016 The Hammurabi Authors. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	report := flag.String("report", "", "optional HTML diagnostic report output path")
	flag.Parse()

	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a configuration filename. Ex.: params.yaml")
	}

	defer utl.DoProf(false)()

	p := param.Load(fnamepath)
	pl := pipeline.New(p)

	io.Pf("running pipeline: %d shells, %d sync outputs\n", len(pl.Shells), len(p.Obsout.Sync))
	results := pl.Run()

	for _, r := range results {
		if r.Freq == 0 {
			io.PfGreen("DM/FD pass complete\n")
			continue
		}
		io.PfGreen("synchrotron pass at %.3e Hz complete\n", r.Freq)
	}

	if *report != "" && p.Brnd.Type == "Global" {
		sp := turbulence.SpecParams{RMS: p.Brnd.Global.RMS, K0: p.Brnd.Global.K0, A0: p.Brnd.Global.A0}
		kMax := 10 * sp.K0
		diag.Report(*report, sp, kMax, pl.Shells)
	}
}
