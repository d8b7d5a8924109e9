// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output of viscosity runs: time series, probe tables and plots
package out

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
)

// Record holds the state of a viscosity field at one output time
type Record struct {
	T      float64   // time
	Min    float64   // minimum over cells
	Max    float64   // maximum over cells
	Mean   float64   // arithmetic mean over cells
	Active float64   // number of cells with active diagnostics
	Probes []float64 // values at probe cells
}

// Series holds the records of a viscosity field over time
type Series struct {
	Field   string    // name of field
	Probes  []int     // indices of probe cells
	Records []*Record // all records
}

// NewSeries returns a new series for field with given probe cells
func NewSeries(field string, probes []int) *Series {
	return &Series{Field: field, Probes: probes}
}

// Add appends a record with the current values of nu
func (o *Series) Add(t float64, nu *fld.Field, active float64) error {
	if nu == nil {
		return chk.Err("cannot record series of %q: field is not available", o.Field)
	}
	rec := &Record{T: t, Min: nu.Min(), Max: nu.Max(), Mean: nu.Mean(), Active: active}
	rec.Probes = make([]float64, len(o.Probes))
	for i, cell := range o.Probes {
		if cell < 0 || cell >= len(nu.Cells) {
			return chk.Err("probe cell %d is out of range [0, %d)", cell, len(nu.Cells))
		}
		rec.Probes[i] = nu.Cells[cell]
	}
	o.Records = append(o.Records, rec)
	return nil
}

// Len returns the number of records
func (o *Series) Len() int {
	return len(o.Records)
}

// ProbeKey returns the key of a probe cell
func ProbeKey(cell int) string {
	return io.Sf("p%d", cell)
}

// Keys returns all keys available in Get
func (o *Series) Keys() (keys []string) {
	keys = []string{"t", "min", "max", "mean", "active"}
	for _, cell := range o.Probes {
		keys = append(keys, ProbeKey(cell))
	}
	return
}

// Get returns the values corresponding to key over time
//  key -- "t", "min", "max", "mean", "active" or a probe key such as "p3"
func (o *Series) Get(key string) (res []float64, err error) {
	var get func(r *Record) float64
	switch key {
	case "t":
		get = func(r *Record) float64 { return r.T }
	case "min":
		get = func(r *Record) float64 { return r.Min }
	case "max":
		get = func(r *Record) float64 { return r.Max }
	case "mean":
		get = func(r *Record) float64 { return r.Mean }
	case "active":
		get = func(r *Record) float64 { return r.Active }
	default:
		idx, err := o.probeIndex(key)
		if err != nil {
			return nil, err
		}
		get = func(r *Record) float64 { return r.Probes[idx] }
	}
	res = make([]float64, len(o.Records))
	for i, r := range o.Records {
		res[i] = get(r)
	}
	return
}

// probeIndex finds the position of a probe key in Probes
func (o *Series) probeIndex(key string) (int, error) {
	if !strings.HasPrefix(key, "p") {
		return 0, chk.Err("key %q is not available in series of %q", key, o.Field)
	}
	cell, err := cast.ToIntE(key[1:])
	if err != nil {
		return 0, chk.Err("key %q is not available in series of %q", key, o.Field)
	}
	for i, c := range o.Probes {
		if c == cell {
			return i, nil
		}
	}
	return 0, chk.Err("cell %d is not a probe of series of %q", cell, o.Field)
}

// WriteTable writes all records to a text table with one column per key
func (o *Series) WriteTable(dirout, fn string) error {
	keys := o.Keys()
	cols := make([][]float64, len(keys))
	for i, key := range keys {
		cols[i], _ = o.Get(key)
	}
	var buf bytes.Buffer
	for _, key := range keys {
		io.Ff(&buf, "%23s", key)
	}
	io.Ff(&buf, "\n")
	for j := range o.Records {
		for i := range keys {
			io.Ff(&buf, "%23.15e", cols[i][j])
		}
		io.Ff(&buf, "\n")
	}
	err := os.MkdirAll(dirout, 0755)
	if err != nil {
		return chk.Err("cannot create output directory: %v", err)
	}
	err = os.WriteFile(filepath.Join(dirout, fn), buf.Bytes(), 0644)
	if err != nil {
		return chk.Err("cannot write table: %v", err)
	}
	return nil
}

// Plot plots the range of the field, the probe values and the number of active cells versus time
func (o *Series) Plot(dirout, fn string, split bool) error {
	var fig Figure
	t, _ := o.Get("t")
	fig.Splot("range", io.Sf("%s: range over cells", o.Field))
	for _, key := range []string{"min", "mean", "max"} {
		y, _ := o.Get(key)
		if err := fig.Plot(t, y, key); err != nil {
			return err
		}
	}
	fig.SplotConfig("t", "nu", "s", "m²/s")
	if len(o.Probes) > 0 {
		fig.Splot("probes", io.Sf("%s: probes", o.Field))
		for _, cell := range o.Probes {
			y, _ := o.Get(ProbeKey(cell))
			if err := fig.Plot(t, y, io.Sf("cell %d", cell)); err != nil {
				return err
			}
		}
		fig.SplotConfig("t", "nu", "s", "m²/s")
	}
	active, _ := o.Get("active")
	if len(active) > 0 && floats.Max(active) > 0 {
		fig.Splot("active", "active cells")
		if err := fig.Plot(t, active, "active"); err != nil {
			return err
		}
		fig.SplotConfig("t", "active", "s", "")
	}
	return fig.Draw(dirout, fn, split)
}
