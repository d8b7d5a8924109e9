// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"github.com/cpmech/gorheo/fld"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
)

// diagnostics holds fields equal to a quantity where phase > threshold and zero elsewhere
type diagnostics struct {
	threshold float64      // phase threshold (strict)
	fields    []*fld.Field // diagnostic fields
	active    float64      // global number of active cells (last update)
}

// newDiagnostics allocates diagnostic fields with the same layout as like
func newDiagnostics(threshold float64, like *fld.Field, names []string, dims []unit.Dimensions) (o *diagnostics) {
	o = &diagnostics{threshold: threshold}
	o.fields = make([]*fld.Field, len(names))
	for i, name := range names {
		o.fields[i] = fld.NewLike(name, dims[i], like)
	}
	return
}

// lookupPhase returns the phase-indicator field or nil if it is not available
func lookupPhase(reg *fld.Registry, like *fld.Field, log logrus.FieldLogger) *fld.Field {
	if reg == nil {
		log.Warnf("%s not found: no field registry; diagnostics are set to zero", PhaseName)
		return nil
	}
	phase, err := reg.Lookup(PhaseName, unit.Dimless)
	if err != nil {
		log.WithError(err).Warnf("%s not available; diagnostics are set to zero", PhaseName)
		return nil
	}
	if !phase.Compatible(like) {
		log.Warnf("%s has a layout different from %q; diagnostics are set to zero", PhaseName, like.Name)
		return nil
	}
	return phase
}

// update computes diagnostics[k] = mask·sources[k] with mask = 1 if phase > threshold.
// All diagnostics are zeroed if phase is nil.
func (o *diagnostics) update(phase *fld.Field, part fld.Partitions, red fld.Reducer, sources ...*fld.Field) {

	// missing phase
	if phase == nil {
		for _, f := range o.fields {
			f.Fill(0)
		}
		o.active = 0
		return
	}

	// cells
	local := part.Sum(func(i int) float64 {
		on := phase.Cells[i] > o.threshold
		for k, f := range o.fields {
			f.Cells[i] = masked(on, sources[k].Cells[i])
		}
		if on {
			return 1
		}
		return 0
	})

	// patches
	for p, faces := range phase.Patches {
		for j, a := range faces {
			on := a > o.threshold
			for k, f := range o.fields {
				f.Patches[p][j] = masked(on, sources[k].Patches[p][j])
			}
		}
	}
	o.active = red.SumAll(local)
}

// publish publishes all diagnostic fields
func (o *diagnostics) publish(reg *fld.Registry) {
	if reg == nil {
		return
	}
	for _, f := range o.fields {
		reg.Publish(f)
	}
}

// report logs the range of each diagnostic and the number of active cells
func (o *diagnostics) report(log logrus.FieldLogger) {
	for _, f := range o.fields {
		log.WithFields(logrus.Fields{"min": f.Min(), "max": f.Max()}).Debugf("%s range", f.Name)
	}
	log.Debugf("number of cells with %s > %g: %g", PhaseName, o.threshold, o.active)
}

// Diagnostics returns the diagnostic fields
func (o *diagnostics) Diagnostics() []*fld.Field {
	return o.fields
}

// ActiveCells returns the global number of cells with phase above threshold
func (o *diagnostics) ActiveCells() float64 {
	return o.active
}

func masked(on bool, v float64) float64 {
	if on {
		return v
	}
	return 0
}
