// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"math"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/sirupsen/logrus"
)

// TimeSlurryPower implements a Herschel-Bulkley model with consistency growing as a power of time
//   k(t) = k·t^c
//   ν    = min(νmax, (τ0 + k(t)·γ̇ⁿ) / max(γ̇, VSMALL))
type TimeSlurryPower struct {
	base

	// parameters
	K         float64 // consistency at t = 1 [m²/s]
	N         float64 // flow index
	Tau0      float64 // yield stress [m²/s²]
	NuMax     float64 // upper limit of viscosity [m²/s]
	TimeCoeff float64 // c: exponent of time
}

// keys of coefficients
var timeSlurryPowerKeys = []string{"k", "n", "tau0", "nuMax", "timeCoeff"}

// add model to factory
func init() {
	allocators["timeSlurryPower"] = func() Model { return new(TimeSlurryPower) }
}

// Init initialises model
func (o *TimeSlurryPower) Init(args *Args) (err error) {
	err = o.init(TimeSlurryPowerKind, args)
	if err != nil {
		return
	}
	err = o.read(args.Dict)
	if err != nil {
		return
	}
	o.log.WithFields(logrus.Fields{"k": o.K, "n": o.N, "tau0": o.Tau0, "nuMax": o.NuMax, "timeCoeff": o.TimeCoeff}).Info("model created")
	return o.Recompute(args.Time, args.Fields)
}

// read reads coefficients; the current ones are kept if an error occurs
func (o *TimeSlurryPower) read(dict inp.Dict) error {
	v, err := readCoeffs(o.typ, dict, timeSlurryPowerKeys)
	if err != nil {
		return err
	}
	o.K, o.N, o.Tau0, o.NuMax, o.TimeCoeff = v[0], v[1], v[2], v[3], v[4]
	return nil
}

// GetPrms gets (an example) of parameters
func (o *TimeSlurryPower) GetPrms(example bool) dbf.Params {
	if example {
		return params(timeSlurryPowerKeys, 0.5, 0.9, 1, 50, 1.2)
	}
	return params(timeSlurryPowerKeys, o.K, o.N, o.Tau0, o.NuMax, o.TimeCoeff)
}

// Consistency returns k(t)
func (o *TimeSlurryPower) Consistency(t float64) float64 {
	return o.K * math.Pow(t, o.TimeCoeff)
}

// Recompute computes viscosity at time t
func (o *TimeSlurryPower) Recompute(t float64, reg *fld.Registry) error {
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
	o.commit(t, reg)
	return nil
}

// Reconfigure reads coefficients again and recomputes viscosity at the time of the last evaluation
func (o *TimeSlurryPower) Reconfigure(dict inp.Dict) error {
	err := o.read(dict)
	if err != nil {
		return err
	}
	o.log.WithFields(logrus.Fields{"k": o.K, "n": o.N, "tau0": o.Tau0, "nuMax": o.NuMax, "timeCoeff": o.TimeCoeff}).Info("model reconfigured")
	return o.Recompute(o.tLast, o.regLast)
}
