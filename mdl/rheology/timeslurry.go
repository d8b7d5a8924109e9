// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"math"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
)

// TimeSlurry implements a Herschel-Bulkley model with consistency growing exponentially in time
//   k(t) = k·exp(c·t)
//   ν    = min(νmax, (τ0 + k(t)·γ̇ⁿ) / max(γ̇, VSMALL))
//  Diagnostics (phase > 0):
//   <name>_Debug1 = max(γ̇, VSMALL)
//   <name>_Debug2 = ν
type TimeSlurry struct {
	base
	*diagnostics

	// parameters
	K         float64 // consistency at t = 0 [m²/s]
	N         float64 // flow index
	Tau0      float64 // yield stress [m²/s²]
	NuMax     float64 // upper limit of viscosity [m²/s]
	TimeCoeff float64 // c: rate of growth of consistency

	// auxiliary
	srl *fld.Field // floored strain rate
}

// keys of coefficients
var timeSlurryKeys = []string{"k", "n", "tau0", "nuMax", "timeCoeff"}

// add model to factory
func init() {
	allocators["timeSlurry"] = func() Model { return new(TimeSlurry) }
}

// Init initialises model
func (o *TimeSlurry) Init(args *Args) (err error) {
	err = o.init(TimeSlurryKind, args)
	if err != nil {
		return
	}
	err = o.read(args.Dict)
	if err != nil {
		return
	}
	name := o.nu.Name
	o.srl = fld.NewLike(name+"_srLimited", DimRate, o.nu)
	o.diagnostics = newDiagnostics(0, o.nu, []string{name + "_Debug1", name + "_Debug2"}, []unit.Dimensions{DimRate, DimViscosity})
	o.log.WithFields(o.logFields()).Info("model created")
	return o.Recompute(args.Time, args.Fields)
}

func (o *TimeSlurry) logFields() logrus.Fields {
	return logrus.Fields{"k": o.K, "n": o.N, "tau0": o.Tau0, "nuMax": o.NuMax, "timeCoeff": o.TimeCoeff}
}

// read reads coefficients; the current ones are kept if an error occurs
func (o *TimeSlurry) read(dict inp.Dict) error {
	v, err := readCoeffs(o.typ, dict, timeSlurryKeys)
	if err != nil {
		return err
	}
	o.K, o.N, o.Tau0, o.NuMax, o.TimeCoeff = v[0], v[1], v[2], v[3], v[4]
	return nil
}

// GetPrms gets (an example) of parameters
func (o *TimeSlurry) GetPrms(example bool) dbf.Params {
	if example {
		return params(timeSlurryKeys, 2, 0.8, 5, 100, 0.1)
	}
	return params(timeSlurryKeys, o.K, o.N, o.Tau0, o.NuMax, o.TimeCoeff)
}

// Consistency returns k(t)
func (o *TimeSlurry) Consistency(t float64) float64 {
	return o.K * math.Exp(o.TimeCoeff*t)
}

// Recompute computes viscosity and diagnostics at time t
func (o *TimeSlurry) Recompute(t float64, reg *fld.Registry) error {
	sr, err := o.strainRate()
	if err != nil {
		return err
	}
	k := o.Consistency(t)
	o.log.WithFields(logrus.Fields{"time": t, "k": k}).Debug("computing viscosity")
	err = o.evaluate(o.nu, sr, func(x float64) float64 {
		return bound(herschelBulkley(o.Tau0, k, x, o.N, VSMALL), math.Inf(-1), o.NuMax)
	})
	if err != nil {
		return err
	}
	err = o.evaluate(o.srl, sr, func(x float64) float64 {
		return floorRate(x, VSMALL)
	})
	if err != nil {
		return err
	}
	o.update(lookupPhase(reg, o.nu, o.log), o.part, o.red, o.srl, o.nu)
	o.commit(t, reg)
	o.publish(reg)
	return nil
}

// Reconfigure reads coefficients again and recomputes viscosity at the time of the last evaluation
func (o *TimeSlurry) Reconfigure(dict inp.Dict) error {
	err := o.read(dict)
	if err != nil {
		return err
	}
	o.log.WithFields(o.logFields()).Info("model reconfigured")
	return o.Recompute(o.tLast, o.regLast)
}
