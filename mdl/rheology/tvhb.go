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
	"github.com/sirupsen/logrus"
)

// TimeVaryingHerschelBulkley implements a Herschel-Bulkley model with consistency given by
//   k(t) = k0           if t ≤ SMALL
//   k(t) = A·t^B        power
//   k(t) = A·exp(B·t)   exponential
//   ν    = min(νmax, max(νmin, (τ0 + k(t)·γ̇ⁿ) / max(γ̇, SMALL)))
type TimeVaryingHerschelBulkley struct {
	base

	// parameters
	K0        float64 // initial consistency [m²/s]
	N         float64 // flow index
	Tau0      float64 // yield stress [m²/s²]
	NuMin     float64 // lower limit of viscosity [m²/s]
	NuMax     float64 // upper limit of viscosity [m²/s]
	A         float64 // coefficient of consistency [m²/s]
	B         float64 // exponent (power) or rate (exponential) of consistency
	Variation string  // time variation type: "power" or "exponential"
}

// keys of coefficients
var tvhbKeys = []string{"k0", "n", "tau0", "nuMin", "nuMax", "A", "B"}

// keyword with the type of time variation
const tvhbTypeKey = "timeVariationType"

// add model to factory
func init() {
	allocators["timeVaryingHerschelBulkley"] = func() Model { return new(TimeVaryingHerschelBulkley) }
}

// Init initialises model
func (o *TimeVaryingHerschelBulkley) Init(args *Args) (err error) {
	err = o.init(TimeVaryingHerschelBulkleyKind, args)
	if err != nil {
		return
	}
	err = o.read(args.Dict)
	if err != nil {
		return
	}
	o.log.WithFields(o.logFields()).Info("model created")
	return o.Recompute(args.Time, args.Fields)
}

func (o *TimeVaryingHerschelBulkley) logFields() logrus.Fields {
	return logrus.Fields{"k0": o.K0, "n": o.N, "tau0": o.Tau0, "nuMin": o.NuMin, "nuMax": o.NuMax,
		"A": o.A, "B": o.B, tvhbTypeKey: o.Variation}
}

// read reads coefficients; the current ones are kept if an error occurs
func (o *TimeVaryingHerschelBulkley) read(dict inp.Dict) error {
	v, err := readCoeffs(o.typ, dict, tvhbKeys)
	if err != nil {
		return err
	}
	typ, err := readWord(o.typ, dict, tvhbTypeKey)
	if err != nil {
		return err
	}
	if typ != "power" && typ != "exponential" {
		return chk.Err("%s: unknown %s %q. Valid types are: power, exponential", o.typ, tvhbTypeKey, typ)
	}
	err = checkLimits(o.typ, v[3], v[4])
	if err != nil {
		return err
	}
	o.K0, o.N, o.Tau0, o.NuMin, o.NuMax, o.A, o.B = v[0], v[1], v[2], v[3], v[4], v[5], v[6]
	o.Variation = typ
	return nil
}

// GetPrms gets (an example) of parameters
func (o *TimeVaryingHerschelBulkley) GetPrms(example bool) dbf.Params {
	if example {
		return params(tvhbKeys, 0.01, 0.5, 1, 1e-6, 10, 0.02, 1.5)
	}
	return params(tvhbKeys, o.K0, o.N, o.Tau0, o.NuMin, o.NuMax, o.A, o.B)
}

// GetWords gets (an example) of keywords
func (o *TimeVaryingHerschelBulkley) GetWords(example bool) map[string]string {
	if example {
		return map[string]string{tvhbTypeKey: "power"}
	}
	return map[string]string{tvhbTypeKey: o.Variation}
}

// Consistency returns k(t)
func (o *TimeVaryingHerschelBulkley) Consistency(t float64) float64 {
	if t <= SMALL {
		return o.K0
	}
	if o.Variation == "exponential" {
		return o.A * math.Exp(o.B*t)
	}
	return o.A * math.Pow(t, o.B)
}

// Recompute computes viscosity at time t
func (o *TimeVaryingHerschelBulkley) Recompute(t float64, reg *fld.Registry) error {
	sr, err := o.strainRate()
	if err != nil {
		return err
	}
	k := o.Consistency(t)
	o.log.WithFields(logrus.Fields{"time": t, "k": k}).Debug("computing viscosity")
	err = o.evaluate(o.nu, sr, func(x float64) float64 {
		return bound(herschelBulkley(o.Tau0, k, x, o.N, SMALL), o.NuMin, o.NuMax)
	})
	if err != nil {
		return err
	}
	o.commit(t, reg)
	return nil
}

// Reconfigure reads coefficients again and recomputes viscosity at the time of the last evaluation
func (o *TimeVaryingHerschelBulkley) Reconfigure(dict inp.Dict) error {
	err := o.read(dict)
	if err != nil {
		return err
	}
	o.log.WithFields(o.logFields()).Info("model reconfigured")
	return o.Recompute(o.tLast, o.regLast)
}
