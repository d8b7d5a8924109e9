// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"math"
	"time"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gorheo/mdl/rheology"
	"github.com/cpmech/gorheo/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ctessum/unit"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Driver runs a viscosity model over the time interval of a case
type Driver struct {
	Case    *inp.Case          // run data
	RunID   string             // unique identifier of this run
	Flow    *StaticFlow        // prescribed flow
	Fields  *fld.Registry      // all fields
	Model   rheology.Model     // viscosity model
	Series  *out.Series        // recorded results
	Monitor *Monitor           // metrics; may be nil
	Log     logrus.FieldLogger // logger tagged with run and case

	reload chan inp.Dict // pending reconfiguration
	nsteps int           // number of evaluations performed by Run
}

// NewDriver allocates the flow, the fields and the model of a case and evaluates the model at t0
func NewDriver(c *inp.Case, log logrus.FieldLogger, mon *Monitor) (o *Driver, err error) {
	if c == nil {
		return nil, chk.Err("driver requires a case")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	o = &Driver{Case: c, RunID: uuid.NewString(), Monitor: mon, reload: make(chan inp.Dict, 1)}
	o.Log = log.WithFields(logrus.Fields{"run": o.RunID, "case": c.Key})

	// viscosity dictionary
	dict, err := c.LoadDict()
	if err != nil {
		return nil, err
	}

	// fields
	o.Flow, err = NewStaticFlow(c.Mesh, c.Rate)
	if err != nil {
		return nil, err
	}
	o.Fields = fld.NewRegistry()
	o.Fields.Publish(o.Flow.StrainRate())
	if c.Phase != nil {
		phase := fld.New(rheology.PhaseName, unit.Dimless, c.Mesh)
		err = c.Phase.Fill(phase)
		if err != nil {
			return nil, err
		}
		o.Fields.Publish(phase)
	}

	// model
	o.Model, err = rheology.FromDict(&rheology.Args{
		Name:   c.Field,
		U:      o.Flow,
		Dict:   dict,
		Time:   c.Time.T0,
		Fields: o.Fields,
		Log:    o.Log,
		Ndeg:   c.Ndeg,
	})
	if err != nil {
		return nil, err
	}
	o.Series = out.NewSeries(c.Field, c.Probes)
	return
}

// Reload queues a dictionary to be applied before the next step; a pending one is replaced.
// It can be called from any goroutine.
func (o *Driver) Reload(dict inp.Dict) {
	for {
		select {
		case o.reload <- dict:
			return
		default:
			select {
			case <-o.reload:
			default:
			}
		}
	}
}

// Steps returns the number of evaluations performed by Run
func (o *Driver) Steps() int {
	return o.nsteps
}

// Run steps from t0 to tf and records results at every output time
func (o *Driver) Run(ctx context.Context) (err error) {

	// time control
	tc := o.Case.Time
	tol := 1e-10 * tc.Dt
	nsteps := int(math.Ceil((tc.Tf - tc.T0 - tol) / tc.Dt))
	if nsteps < 0 {
		nsteps = 0
	}
	o.Log.WithFields(logrus.Fields{"model": o.Model.Type(), "t0": tc.T0, "tf": tc.Tf, "dt": tc.Dt, "nsteps": nsteps}).Info("run started")

	// initial state
	err = o.record(tc.T0)
	if err != nil {
		return
	}
	tout := tc.T0 + tc.DtOut

	// time loop
	for i := 1; i <= nsteps; i++ {
		select {
		case <-ctx.Done():
			o.Log.WithField("steps", o.nsteps).Warn("run cancelled")
			return ctx.Err()
		default:
		}
		o.applyReload()
		t := math.Min(tc.T0+float64(i)*tc.Dt, tc.Tf)
		start := time.Now()
		err = o.Model.Recompute(t, o.Fields)
		if err != nil {
			return chk.Err("cannot compute viscosity at t = %g: %v", t, err)
		}
		o.nsteps++
		o.Monitor.Step(o.Model, t, time.Since(start))
		if t >= tout-tol || i == nsteps {
			err = o.record(t)
			if err != nil {
				return
			}
			for tc.DtOut > 0 && tout <= t+tol {
				tout += tc.DtOut
			}
		}
	}
	o.Log.WithFields(logrus.Fields{"steps": o.nsteps, "records": o.Series.Len()}).Info("run finished")
	return
}

// applyReload reconfigures the model with a pending dictionary, if any
func (o *Driver) applyReload() {
	select {
	case dict := <-o.reload:
		if name, err := dict.Model(); err == nil && name != o.Model.Type() {
			o.Log.Errorf("cannot switch model from %q to %q during a run; dictionary is ignored", o.Model.Type(), name)
			o.Monitor.Reload(o.Model, false)
			return
		}
		err := o.Model.Reconfigure(dict)
		if err != nil {
			o.Log.WithError(err).Error("reconfiguration failed; current parameters are kept")
			o.Monitor.Reload(o.Model, false)
			return
		}
		o.Monitor.Reload(o.Model, true)
	default:
	}
}

// record appends the current state to the series
func (o *Driver) record(t float64) error {
	var active float64
	if d, ok := o.Model.(rheology.Diagnosed); ok {
		active = d.ActiveCells()
	}
	err := o.Series.Add(t, o.Model.Viscosity(), active)
	if err != nil {
		return err
	}
	nu := o.Model.Viscosity()
	o.Log.WithFields(logrus.Fields{"time": t, "min": nu.Min(), "max": nu.Max()}).Debug("results recorded")
	return nil
}

// FileKey returns the key of output files; e.g. pipe01_1b4e28ba
func (o *Driver) FileKey() string {
	key := o.Case.Key
	if key == "" {
		key = "rheo"
	}
	return io.Sf("%s_%s", key, o.RunID[:8])
}

// WriteResults writes the table of results and, optionally, plots to the output directory
func (o *Driver) WriteResults(plot bool) (err error) {
	fnk := o.FileKey()
	err = o.Series.WriteTable(o.Case.DirOut, fnk+".res")
	if err != nil {
		return
	}
	if plot {
		err = o.Series.Plot(o.Case.DirOut, fnk+".png", false)
	}
	return
}
