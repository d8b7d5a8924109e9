// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
)

// base holds data shared by all laws
type base struct {
	typ  string             // registered name
	kind Kind               // kind of law
	flow Flow               // velocity field
	nu   *fld.Field         // viscosity
	log  logrus.FieldLogger // logger tagged with model and field
	part fld.Partitions     // partitions of cells
	red  fld.Reducer        // global reduction

	// last evaluation
	tLast   float64       // time of last Recompute
	regLast *fld.Registry // registry of last Recompute
}

// init initialises the shared data
func (o *base) init(kind Kind, args *Args) error {
	o.kind = kind
	o.typ = kind.String()
	if args == nil {
		return chk.Err("%s: arguments are required", o.typ)
	}
	if args.U == nil {
		return chk.Err("%s: velocity field is required", o.typ)
	}
	if args.Dict == nil {
		return chk.Err("%s: viscosity dictionary is required", o.typ)
	}
	name := args.Name
	if name == "" {
		name = "nu"
	}
	var log logrus.FieldLogger = logrus.StandardLogger()
	if args.Log != nil {
		log = args.Log
	}
	o.log = log.WithFields(logrus.Fields{"model": o.typ, "field": name})
	o.flow = args.U
	lay := o.flow.Layout()
	o.nu = fld.New(name, DimViscosity, lay)
	o.part = fld.NewPartitions(lay.Ncells, args.Ndeg)
	o.red = args.Reduce
	if o.red == nil {
		o.red = fld.Serial{}
	}
	o.tLast = args.Time
	o.regLast = args.Fields
	return nil
}

// Viscosity returns the viscosity field
func (o *base) Viscosity() *fld.Field {
	return o.nu
}

// ViscosityOnPatch returns the viscosity on a boundary patch
func (o *base) ViscosityOnPatch(patch int) ([]float64, error) {
	return o.nu.Patch(patch)
}

// Kind returns the kind of law
func (o *base) Kind() Kind {
	return o.kind
}

// Name returns the name of the viscosity field
func (o *base) Name() string {
	return o.nu.Name
}

// Type returns the registered name of the model
func (o *base) Type() string {
	return o.typ
}

// strainRate returns the strain rate of the velocity field
func (o *base) strainRate() (*fld.Field, error) {
	sr := o.flow.StrainRate()
	if sr == nil {
		return nil, chk.Err("%s: strain rate is not available", o.typ)
	}
	if !sr.Compatible(o.nu) {
		return nil, chk.Err("%s: strain-rate field %q and viscosity field %q have different layouts", o.typ, sr.Name, o.nu.Name)
	}
	return sr, nil
}

// evaluate sets dst = law(src) on cells (in parallel) and patches
func (o *base) evaluate(dst, src *fld.Field, law func(x float64) float64) error {
	err := o.part.Run(func(p, lo, hi int) error {
		for i := lo; i < hi; i++ {
			dst.Cells[i] = law(src.Cells[i])
		}
		return nil
	})
	if err != nil {
		return err
	}
	for p, faces := range src.Patches {
		for j, x := range faces {
			dst.Patches[p][j] = law(x)
		}
	}
	return nil
}

// commit stores time and registry of the last evaluation and publishes the viscosity
func (o *base) commit(t float64, reg *fld.Registry) {
	o.tLast = t
	o.regLast = reg
	if reg != nil {
		reg.Publish(o.nu)
	}
}
