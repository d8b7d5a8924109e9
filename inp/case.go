// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/go-playground/validator/v10"
)

// Profile defines the distribution of a scalar over the cells of a mesh
//  uniform: all cells get Value
//  linear:  cells get values linearly spaced from Min to Max
//  list:    cells get Values (one per cell)
// Boundary faces get Wall or, if Wall is not given, the mean over cells
type Profile struct {
	Type   string    `json:"type" validate:"oneof=uniform linear list"` // type of distribution
	Value  float64   `json:"value" validate:"gte=0"`                    // uniform value
	Min    float64   `json:"min" validate:"gte=0"`                      // linear: first cell
	Max    float64   `json:"max" validate:"gte=0"`                      // linear: last cell
	Values []float64 `json:"values" validate:"dive,gte=0"`              // list of values
	Wall   *float64  `json:"wall" validate:"omitempty,gte=0"`           // value on boundary faces
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	T0    float64 `json:"t0" validate:"gte=0"`       // initial time
	Tf    float64 `json:"tf" validate:"gtefield=T0"` // final time
	Dt    float64 `json:"dt" validate:"gt=0"`        // time step size
	DtOut float64 `json:"dtout" validate:"gte=0"`    // time step size for output; zero means every step
}

// Case holds all data of one run
type Case struct {

	// input
	Desc      string      `json:"desc"`                                       // description of run
	Dict      string      `json:"dict" validate:"required_without=Viscosity"` // path to viscosity dictionary (relative to case file)
	Viscosity Dict        `json:"viscosity" validate:"required_without=Dict"` // inline viscosity dictionary
	Model     string      `json:"model"`                                      // overrides transportModel in dictionary
	Field     string      `json:"field" validate:"required"`                  // name of viscosity field
	DirOut    string      `json:"dirout"`                                     // directory for output; e.g. /tmp/gorheo
	Mesh      fld.Layout  `json:"mesh"`                                       // number of cells and patches
	Rate      Profile     `json:"rate"`                                       // strain-rate magnitude
	Phase     *Profile    `json:"phase"`                                      // phase indicator (optional)
	Time      TimeControl `json:"time"`                                       // time control
	Probes    []int       `json:"probes" validate:"dive,gte=0"`               // cells to record
	Ndeg      int         `json:"ndeg" validate:"gte=0"`                      // parallel degree

	// derived
	Key      string // case key; e.g. pipe01.rheo => pipe01
	DictPath string // resolved path to dictionary file
}

// SetDefault sets defaults values
func (o *Case) SetDefault() {
	o.Field = "nu"
	o.Rate.Type = "uniform"
	o.Time.Tf = 1
	o.Time.Dt = 1
	o.Ndeg = 1
}

// SetDefault sets defaults values
func (o *Profile) SetDefault() {
	if o.Type == "" {
		o.Type = "uniform"
	}
}

// ReadCase reads all data of a run from a .rheo JSON file
func ReadCase(path string) (o *Case, err error) {

	// read file
	path = os.ExpandEnv(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read case file %q: %v", path, err)
	}

	// decode
	o, err = ParseCase(b)
	if err != nil {
		return nil, chk.Err("cannot load case file %q: %v", path, err)
	}

	// filename key and directories
	o.Key = io.FnKey(filepath.Base(path))
	if o.DirOut == "" {
		o.DirOut = "/tmp/gorheo/" + o.Key
	}
	if o.Dict != "" {
		o.DictPath = os.ExpandEnv(o.Dict)
		if !filepath.IsAbs(o.DictPath) {
			o.DictPath = filepath.Join(filepath.Dir(path), o.DictPath)
		}
	}
	return
}

// ParseCase decodes and validates case data given in JSON format
func ParseCase(data []byte) (o *Case, err error) {
	o = new(Case)
	o.SetDefault()
	err = json.Unmarshal(data, o)
	if err != nil {
		return nil, err
	}
	o.Rate.SetDefault()
	if o.Phase != nil {
		o.Phase.SetDefault()
	}
	if o.DictPath == "" {
		o.DictPath = o.Dict
	}
	err = o.Validate()
	if err != nil {
		return nil, err
	}
	return
}

// Validate checks the consistency of case data
func (o *Case) Validate() error {
	err := validator.New().Struct(o)
	if err != nil {
		return chk.Err("invalid case: %v", err)
	}
	for _, c := range o.Probes {
		if c >= o.Mesh.Ncells {
			return chk.Err("invalid case: probe cell %d is out of range [0, %d)", c, o.Mesh.Ncells)
		}
	}
	if o.Rate.Type == "list" && len(o.Rate.Values) != o.Mesh.Ncells {
		return chk.Err("invalid case: strain-rate list has %d values but mesh has %d cells", len(o.Rate.Values), o.Mesh.Ncells)
	}
	if o.Phase != nil && o.Phase.Type == "list" && len(o.Phase.Values) != o.Mesh.Ncells {
		return chk.Err("invalid case: phase list has %d values but mesh has %d cells", len(o.Phase.Values), o.Mesh.Ncells)
	}
	if o.Phase != nil {
		vals, err := o.Phase.Eval(o.Mesh.Ncells)
		if err != nil {
			return chk.Err("invalid case: %v", err)
		}
		if o.Phase.Type == "linear" {
			vals = append(vals, o.Phase.Max)
		}
		if o.Phase.Wall != nil {
			vals = append(vals, *o.Phase.Wall)
		}
		for _, v := range vals {
			if v > 1 {
				return chk.Err("invalid case: phase indicator must be in [0, 1]. %g is invalid", v)
			}
		}
	}
	return nil
}

// LoadDict returns the viscosity dictionary of this case with the model override applied
func (o *Case) LoadDict() (d Dict, err error) {
	if o.Viscosity != nil {
		d = o.Viscosity.Clone()
	} else {
		d, err = ReadDict(o.DictPath)
		if err != nil {
			return
		}
	}
	if o.Model != "" {
		d.Set(ModelKey, o.Model)
	}
	return
}

// Eval computes the values of this profile over n cells
func (o Profile) Eval(n int) (res []float64, err error) {
	switch o.Type {
	case "uniform", "":
		res = make([]float64, n)
		for i := range res {
			res[i] = o.Value
		}
	case "linear":
		if n == 1 {
			return []float64{o.Min}, nil
		}
		res = utl.LinSpace(o.Min, o.Max, n)
	case "list":
		if len(o.Values) != n {
			return nil, chk.Err("profile has %d values but %d are required", len(o.Values), n)
		}
		res = make([]float64, n)
		copy(res, o.Values)
	default:
		return nil, chk.Err("profile type %q is not available", o.Type)
	}
	return
}

// Fill sets the cells of a field with this profile and its patches with the wall value
func (o Profile) Fill(f *fld.Field) error {
	vals, err := o.Eval(len(f.Cells))
	if err != nil {
		return chk.Err("cannot fill field %q: %v", f.Name, err)
	}
	copy(f.Cells, vals)
	wall := f.Mean()
	if o.Wall != nil {
		wall = *o.Wall
	}
	for _, face := range f.Patches {
		for j := range face {
			face[j] = wall
		}
	}
	return nil
}
