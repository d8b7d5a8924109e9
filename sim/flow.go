// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements a host for viscosity models: a prescribed flow, a time-stepping
// driver with hot reload of parameters, and run metrics
package sim

import (
	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gorheo/mdl/rheology"
	"github.com/cpmech/gosl/chk"
)

// StaticFlow implements rheology.Flow with a prescribed strain-rate field
type StaticFlow struct {
	lay fld.Layout // mesh layout
	sr  *fld.Field // strain-rate magnitude
}

// NewStaticFlow allocates a flow with strain rates given by a profile
func NewStaticFlow(lay fld.Layout, rate inp.Profile) (o *StaticFlow, err error) {
	if lay.Ncells < 1 {
		return nil, chk.Err("mesh must have at least one cell")
	}
	o = &StaticFlow{lay: lay, sr: fld.New("strainRate", rheology.DimRate, lay)}
	err = o.SetRate(rate)
	if err != nil {
		return nil, err
	}
	return
}

// Layout returns the mesh layout
func (o *StaticFlow) Layout() fld.Layout { return o.lay }

// StrainRate returns the strain-rate field
func (o *StaticFlow) StrainRate() *fld.Field { return o.sr }

// SetRate replaces all strain rates
func (o *StaticFlow) SetRate(rate inp.Profile) error {
	return rate.Fill(o.sr)
}
