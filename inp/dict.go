// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from viscosity dictionaries and (.rheo) run cases
package inp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/spf13/cast"
)

// ModelKey is the top-level key holding the name of the viscosity model
const ModelKey = "transportModel"

// Dict is a string-keyed dictionary of scalars, words and sub-dictionaries
type Dict map[string]interface{}

// Has tells whether key exists
func (o Dict) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Set sets a value
func (o Dict) Set(key string, value interface{}) {
	o[key] = value
}

// SubDict returns the sub-dictionary under key
func (o Dict) SubDict(key string) (Dict, error) {
	v, ok := o[key]
	if !ok {
		return nil, chk.Err("cannot find sub-dictionary %q", key)
	}
	if d, ok := v.(Dict); ok {
		return d, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, chk.Err("entry %q is not a dictionary: %v", key, err)
	}
	return Dict(m), nil
}

// OptionalSubDict returns the sub-dictionary under key or the dictionary itself if key does not exist
func (o Dict) OptionalSubDict(key string) Dict {
	if !o.Has(key) {
		return o
	}
	d, err := o.SubDict(key)
	if err != nil {
		return o
	}
	return d
}

// Scalar returns the number under key
func (o Dict) Scalar(key string) (float64, error) {
	v, ok := o[key]
	if !ok {
		return 0, chk.Err("cannot find keyword %q", key)
	}
	if _, isBool := v.(bool); isBool {
		return 0, chk.Err("keyword %q must be a number; got %v", key, v)
	}
	x, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, chk.Err("keyword %q must be a number: %v", key, err)
	}
	return x, nil
}

// Word returns the string under key
func (o Dict) Word(key string) (string, error) {
	v, ok := o[key]
	if !ok {
		return "", chk.Err("cannot find keyword %q", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", chk.Err("keyword %q must be a word: %v", key, err)
	}
	return s, nil
}

// Model returns the name of the viscosity model
func (o Dict) Model() (string, error) {
	return o.Word(ModelKey)
}

// Params returns all numeric entries (sorted by name) as a list of parameters
func (o Dict) Params() (prms dbf.Params) {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		x, err := o.Scalar(key)
		if err != nil {
			continue
		}
		prms = append(prms, &dbf.P{N: key, V: x})
	}
	return
}

// Clone returns a deep copy of the dictionary
func (o Dict) Clone() Dict {
	res := make(Dict, len(o))
	for key, v := range o {
		if sub, err := o.SubDict(key); err == nil {
			res[key] = sub.Clone()
			continue
		}
		res[key] = v
	}
	return res
}
