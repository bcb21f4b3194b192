// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag produces the run-time diagnostics SPEC_FULL.md §2 adds on
// top of the core simulation: an HTML report of the stochastic power
// spectrum and shell radial partition (go-echarts, following the
// charting convention of JonasLazardGIT-SPRUCE's plot_pacs_sweep.go), a
// PNG mid-plane slice of a grid (gosl/plt, the teacher's own plotting
// dependency, following mallano-gofem/out/plot.go's plt.Save idiom), and
// a BLAKE2b fingerprint of a persisted grid dump so a pipeline run can
// confirm it reads back exactly what it wrote.
package diag

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/crypto/blake2b"

	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/integrator"
	"github.com/trjaffe/hammurabiX/turbulence"
)

// Fingerprint returns the BLAKE2b-256 digest of a grid payload, hex
// encoded, the practical stand-in for spec.md §9's bit-compatibility note.
func Fingerprint(data []float64) string {
	raw := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	sum := blake2b.Sum256(raw)
	return fmt.Sprintf("%x", sum)
}

// Report emits an HTML diagnostic page with the power-spectrum curve,
// the shell radial partition and per-shell pixel counts.
func Report(filename string, sp turbulence.SpecParams, kMax float64, shells []integrator.Shell) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stochastic field power spectrum"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "k"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "P(k)"}),
	)
	const nSamples = 200
	xs := make([]string, nSamples)
	ys := make([]opts.LineData, nSamples)
	for i := 0; i < nSamples; i++ {
		k := kMax * float64(i+1) / nSamples
		xs[i] = fmt.Sprintf("%.3f", k)
		ys[i] = opts.LineData{Value: turbulence.Spectrum(k, sp)}
	}
	line.SetXAxis(xs).AddSeries("P(k)", ys)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Shell radial partition"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "shell"}),
	)
	shellLabels := make([]string, len(shells))
	radii := make([]opts.BarData, len(shells))
	pixCounts := make([]opts.BarData, len(shells))
	for i, s := range shells {
		shellLabels[i] = fmt.Sprintf("%d", s.Num)
		radii[i] = opts.BarData{Value: s.DStop}
		pixCounts[i] = opts.BarData{Value: 12 * s.Nside * s.Nside}
	}
	bar.SetXAxis(shellLabels).
		AddSeries("d_stop", radii).
		AddSeries("npix", pixCounts)

	page := components.NewPage()
	page.AddCharts(line, bar)

	f, err := os.Create(filename)
	if err != nil {
		chk.Panic("diag: cannot create %q: %v", filename, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		chk.Panic("diag: render failed: %v", err)
	}
}

// PlotSlice saves a PNG of the grid's mid-z-plane as a set of line
// curves (one per x-row), following the teacher's plt.Plot/plt.Save
// convention rather than a dedicated heatmap API.
func PlotSlice(g *grid.Scalar, dirout, filename string) {
	plt.Reset(false, nil)
	midK := g.Nz / 2
	for i := 0; i < g.Nx; i++ {
		ys := make([]float64, g.Ny)
		xs := make([]float64, g.Ny)
		for j := 0; j < g.Ny; j++ {
			xs[j] = float64(j)
			ys[j] = g.Data[g.Idx(i, j, midK)]
		}
		plt.Plot(xs, ys, "'-', clip_on=0")
	}
	plt.Gll("y index", "value", "")
	plt.Title(fmt.Sprintf("mid-plane slice z=%d", midK), "")
	plt.Save(dirout, filename)
}
