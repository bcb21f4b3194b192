// Copyright 2016 The Hammurabi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field defines the FieldProvider contract of spec.md §3/§4: a
// polymorphic supplier of a scalar or vector value at any physical
// position, either an analytic closed form or a Grid sample. Following
// the design note in spec.md §9, this is one interface per field kind
// plus a Zero default, not a class hierarchy: dispatch is a single method
// call, never a virtual write/read-grid method only one variant implements.
package field

import (
	"github.com/trjaffe/hammurabiX/grid"
	"github.com/trjaffe/hammurabiX/vec3"
)

// ScalarProvider samples a scalar field (e.g. free-electron density) at a
// physical position.
type ScalarProvider interface {
	Sample(pos vec3.T) float64
}

// VectorProvider samples a vector field (e.g. magnetic field) at a
// physical position.
type VectorProvider interface {
	Sample(pos vec3.T) vec3.T
}

// ZeroScalar always returns 0 (spec.md §3 "ZeroField"). The pipeline does
// not use it for an unrequested random field: it leaves that provider nil,
// and the Integrator samples a nil provider as zero.
type ZeroScalar struct{}

func (ZeroScalar) Sample(vec3.T) float64 { return 0 }

// ZeroVector always returns the zero vector.
type ZeroVector struct{}

func (ZeroVector) Sample(vec3.T) vec3.T { return vec3.Zero }

// GriddedScalar delegates to a Grid's trilinear interpolation, returning
// zero outside the box (spec.md §3 "GriddedScalar").
type GriddedScalar struct{ Grid *grid.Scalar }

func (g GriddedScalar) Sample(pos vec3.T) float64 { return g.Grid.Interpolate(pos) }

// GriddedVector delegates to a Grid's trilinear interpolation.
type GriddedVector struct{ Grid *grid.Vector }

func (g GriddedVector) Sample(pos vec3.T) vec3.T { return g.Grid.Interpolate(pos) }
