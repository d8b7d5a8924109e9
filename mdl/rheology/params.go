// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
	"github.com/ctessum/unit"
)

// physical dimensions
var (
	DimViscosity = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -1} // kinematic viscosity [m²/s]
	DimStress    = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2} // kinematic stress [m²/s²]
	DimRate      = unit.Herz                                            // strain rate [1/s]
	DimDensity   = unit.KilogramPerMeter3                               // density [kg/m³]
)

// coeffDims holds the dimensions of coefficients; coefficients not listed are dimensionless
var coeffDims = map[string]unit.Dimensions{
	"k":     DimViscosity,
	"k0":    DimViscosity,
	"A":     DimViscosity,
	"nuMin": DimViscosity,
	"nuMax": DimViscosity,
	"tau0":  DimStress,
	"rho":   DimDensity,
}

// Dimensioned returns the current value of a parameter of a model as a dimensioned quantity
func Dimensioned(m Model, key string) (*unit.Unit, error) {
	prms := m.GetPrms(false)
	p := prms.Find(key)
	if p == nil {
		return nil, chk.Err("%s: parameter %q is not available", m.Type(), key)
	}
	dims, ok := coeffDims[key]
	if !ok {
		dims = unit.Dimless
	}
	return unit.New(p.V, dims), nil
}

// coeffsKey returns the name of the sub-dictionary holding the coefficients of a model
func coeffsKey(typ string) string {
	return typ + "Coeffs"
}

// readCoeffs reads the values of keys from the <typ>Coeffs sub-dictionary or,
// if that sub-dictionary does not exist, from the top level of dict
func readCoeffs(typ string, dict inp.Dict, keys []string) (values []float64, err error) {
	if dict == nil {
		return nil, chk.Err("%s: viscosity dictionary is required", typ)
	}
	coeffs := dict.OptionalSubDict(coeffsKey(typ))
	prms := coeffs.Params()
	values, found := prms.GetValues(keys)
	if utl.AllTrue(found) {
		return
	}
	for i, ok := range found {
		if !ok {
			_, err = coeffs.Scalar(keys[i])
			return nil, chk.Err("%s: cannot read coefficient from %q: %v", typ, coeffsKey(typ), err)
		}
	}
	return
}

// readWord reads a keyword from the <typ>Coeffs sub-dictionary
func readWord(typ string, dict inp.Dict, key string) (string, error) {
	word, err := dict.OptionalSubDict(coeffsKey(typ)).Word(key)
	if err != nil {
		return "", chk.Err("%s: cannot read keyword from %q: %v", typ, coeffsKey(typ), err)
	}
	return word, nil
}

// checkLimits checks that nuMin ≤ nuMax
func checkLimits(typ string, nuMin, nuMax float64) error {
	if nuMin > nuMax {
		return chk.Err("%s: nuMin = %g must not be greater than nuMax = %g", typ, nuMin, nuMax)
	}
	return nil
}

// params returns a list of parameters given names and values
func params(names []string, values ...float64) (prms dbf.Params) {
	for i, name := range names {
		prms = append(prms, &dbf.P{N: name, V: values[i]})
	}
	return
}

// topLevel holds parameters read from the top level of the dictionary instead of <typ>Coeffs
var topLevel = map[string]bool{"rho": true}

// ExampleDict returns a viscosity dictionary with an example of parameters of a model
func ExampleDict(name string) (inp.Dict, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'rheology' database", name)
	}
	model := allocator()
	dict := inp.Dict{inp.ModelKey: name}
	coeffs := inp.Dict{}
	for _, p := range model.GetPrms(true) {
		if topLevel[p.N] {
			dict[p.N] = p.V
			continue
		}
		coeffs[p.N] = p.V
	}
	if worded, ok := model.(Worded); ok {
		for key, word := range worded.GetWords(true) {
			coeffs[key] = word
		}
	}
	dict[coeffsKey(name)] = coeffs
	return dict, nil
}
