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

// EasyTime implements a yield-stress model in which time enters the exponent of the strain rate
//   ν = min(νmax, (τ0 + k·γ̇^(t^c)) / max(γ̇, VSMALL))
//  Diagnostics (phase > 0):
//   <name>_field1 = ν
//   <name>_alpha1 = phase
type EasyTime struct {
	base
	*diagnostics

	// parameters
	K         float64 // consistency [m²/s]
	Tau0      float64 // yield stress [m²/s²]
	NuMax     float64 // upper limit of viscosity [m²/s]
	TimeCoeff float64 // c: exponent of time
}

// keys of coefficients
var easyTimeKeys = []string{"k", "tau0", "nuMax", "timeCoeff"}

// add model to factory
func init() {
	allocators["easyTime"] = func() Model { return new(EasyTime) }
}

// Init initialises model
func (o *EasyTime) Init(args *Args) (err error) {
	err = o.init(EasyTimeKind, args)
	if err != nil {
		return
	}
	err = o.read(args.Dict)
	if err != nil {
		return
	}
	name := o.nu.Name
	o.diagnostics = newDiagnostics(0, o.nu, []string{name + "_field1", name + "_alpha1"}, []unit.Dimensions{DimViscosity, unit.Dimless})
	o.log.WithFields(logrus.Fields{"k": o.K, "tau0": o.Tau0, "nuMax": o.NuMax, "timeCoeff": o.TimeCoeff}).Info("model created")
	o.log.Warn("strain rate is raised to the power t^timeCoeff; this constitutive law is flagged for review")
	return o.Recompute(args.Time, args.Fields)
}

// read reads coefficients; the current ones are kept if an error occurs
func (o *EasyTime) read(dict inp.Dict) error {
	v, err := readCoeffs(o.typ, dict, easyTimeKeys)
	if err != nil {
		return err
	}
	o.K, o.Tau0, o.NuMax, o.TimeCoeff = v[0], v[1], v[2], v[3]
	return nil
}

// GetPrms gets (an example) of parameters
func (o *EasyTime) GetPrms(example bool) dbf.Params {
	if example {
		return params(easyTimeKeys, 0.1, 1, 10, 0.5)
	}
	return params(easyTimeKeys, o.K, o.Tau0, o.NuMax, o.TimeCoeff)
}

// Exponent returns the exponent of the strain rate at time t
func (o *EasyTime) Exponent(t float64) float64 {
	return math.Pow(t, o.TimeCoeff)
}

// Recompute computes viscosity and diagnostics at time t
func (o *EasyTime) Recompute(t float64, reg *fld.Registry) error {
	sr, err := o.strainRate()
	if err != nil {
		return err
	}
	e := o.Exponent(t)
	o.log.WithFields(logrus.Fields{"time": t, "exponent": e}).Debug("computing viscosity")
	err = o.evaluate(o.nu, sr, func(x float64) float64 {
		return bound(herschelBulkley(o.Tau0, o.K, x, e, VSMALL), math.Inf(-1), o.NuMax)
	})
	if err != nil {
		return err
	}
	phase := lookupPhase(reg, o.nu, o.log)
	o.update(phase, o.part, o.red, o.nu, phase)
	o.commit(t, reg)
	o.publish(reg)
	return nil
}

// Reconfigure reads coefficients again and recomputes viscosity at the time of the last evaluation
func (o *EasyTime) Reconfigure(dict inp.Dict) error {
	err := o.read(dict)
	if err != nil {
		return err
	}
	o.log.WithFields(logrus.Fields{"k": o.K, "tau0": o.Tau0, "nuMax": o.NuMax, "timeCoeff": o.TimeCoeff}).Info("model reconfigured")
	return o.Recompute(o.tLast, o.regLast)
}
