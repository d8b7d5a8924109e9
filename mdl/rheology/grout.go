// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"math"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
)

// TimeVaryingGrout implements a Herschel-Bulkley model with Papanastasiou regularisation [2]
// and limited exponential growth of consistency
//   kEff = min(νmax, k·exp(c·t))
//   ν    = (τ0·(1 - exp(-m·γ̇))/γ̇ + kEff·γ̇^(n-1)) / 2 · ρ   if γ̇ > VSMALL
//   ν    = τ0·m / 2 · ρ                                      otherwise
//  Note: νmax limits kEff only; ν itself is not limited
//  Diagnostics (phase > 0.9):
//   StrainRate_Debug1 = γ̇
//   CaluNu_Debug2     = kEff
//   physicalNu_Debug3 = ν
type TimeVaryingGrout struct {
	base
	*diagnostics

	// parameters
	K         float64 // consistency at t = 0 [m²/s]
	N         float64 // flow index
	Tau0      float64 // yield stress [m²/s²]
	NuMax     float64 // upper limit of consistency [m²/s]
	TimeCoeff float64 // c: rate of growth of consistency
	Rho       float64 // density [kg/m³]; read from the top level of the dictionary

	// auxiliary
	keff *fld.Field // uniform field with kEff
}

// keys of coefficients and parameters
var (
	timeVaryingGroutKeys = []string{"k", "n", "tau0", "nuMax", "timeCoeff"}
	timeVaryingGroutPrms = []string{"k", "n", "tau0", "nuMax", "timeCoeff", "rho"}
)

// add model to factory
func init() {
	allocators["timeVaryingGrout"] = func() Model { return new(TimeVaryingGrout) }
}

// Init initialises model
func (o *TimeVaryingGrout) Init(args *Args) (err error) {
	err = o.init(TimeVaryingGroutKind, args)
	if err != nil {
		return
	}
	err = o.read(args.Dict)
	if err != nil {
		return
	}
	o.keff = fld.NewLike(o.nu.Name+"_kEffective", DimViscosity, o.nu)
	o.diagnostics = newDiagnostics(0.9, o.nu,
		[]string{"StrainRate_Debug1", "CaluNu_Debug2", "physicalNu_Debug3"},
		[]unit.Dimensions{DimRate, DimViscosity, DimViscosity})
	o.log.WithFields(o.logFields()).Info("model created")
	return o.Recompute(args.Time, args.Fields)
}

func (o *TimeVaryingGrout) logFields() logrus.Fields {
	return logrus.Fields{"k": o.K, "n": o.N, "tau0": o.Tau0, "nuMax": o.NuMax, "timeCoeff": o.TimeCoeff, "rho": o.Rho}
}

// read reads coefficients; the current ones are kept if an error occurs
func (o *TimeVaryingGrout) read(dict inp.Dict) error {
	v, err := readCoeffs(o.typ, dict, timeVaryingGroutKeys)
	if err != nil {
		return err
	}
	rho, err := dict.Scalar("rho")
	if err != nil {
		return chk.Err("%s: cannot read density: %v", o.typ, err)
	}
	o.K, o.N, o.Tau0, o.NuMax, o.TimeCoeff = v[0], v[1], v[2], v[3], v[4]
	o.Rho = rho
	return nil
}

// GetPrms gets (an example) of parameters
func (o *TimeVaryingGrout) GetPrms(example bool) dbf.Params {
	if example {
		return params(timeVaryingGroutPrms, 1e-3, 1, 5e-4, 0.1, 1e-3, 1800)
	}
	return params(timeVaryingGroutPrms, o.K, o.N, o.Tau0, o.NuMax, o.TimeCoeff, o.Rho)
}

// Consistency returns kEff(t)
func (o *TimeVaryingGrout) Consistency(t float64) float64 {
	return math.Min(o.NuMax, o.K*math.Exp(o.TimeCoeff*t))
}

// ZeroShear returns the viscosity at zero strain rate
func (o *TimeVaryingGrout) ZeroShear() float64 {
	return papanastasiou(o.Tau0, 0, 0, o.N, o.Rho, PapM)
}

// Recompute computes viscosity and diagnostics at time t
func (o *TimeVaryingGrout) Recompute(t float64, reg *fld.Registry) error {
	sr, err := o.strainRate()
	if err != nil {
		return err
	}
	keff := o.Consistency(t)
	log := o.log.WithFields(logrus.Fields{"time": t, "kEffective": keff})
	log.Debug("computing viscosity")
	err = o.evaluate(o.nu, sr, func(x float64) float64 {
		return papanastasiou(o.Tau0, keff, x, o.N, o.Rho, PapM)
	})
	if err != nil {
		return err
	}
	o.keff.Fill(keff)
	o.update(lookupPhase(reg, o.nu, o.log), o.part, o.red, sr, o.keff, o.nu)
	o.report(log)
	log.WithFields(logrus.Fields{"nu0": o.ZeroShear(), "nuMax": o.NuMax}).Debug("viscosity at zero strain rate")
	o.commit(t, reg)
	o.publish(reg)
	return nil
}

// Reconfigure reads coefficients again and recomputes viscosity at the time of the last evaluation
func (o *TimeVaryingGrout) Reconfigure(dict inp.Dict) error {
	err := o.read(dict)
	if err != nil {
		return err
	}
	o.log.WithFields(o.logFields()).Info("model reconfigured")
	return o.Recompute(o.tLast, o.regLast)
}
