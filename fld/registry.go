// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ctessum/unit"
)

// ErrNotFound is returned by Lookup when no field is registered under the given name
var ErrNotFound = errors.New("field not found")

// Registry holds fields shared by the solver, the models and the output layer
//  Note: fields are stored by pointer; publishing a field again after changing it is not needed
//        but harmless
type Registry struct {
	fields map[string]*Field
}

// NewRegistry returns a new empty registry
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]*Field)}
}

// Publish registers a field under its own name, replacing any previous one
func (o *Registry) Publish(f *Field) {
	o.fields[f.Name] = f
}

// Remove removes a field
func (o *Registry) Remove(name string) {
	delete(o.fields, name)
}

// Find returns a field by name
func (o *Registry) Find(name string) (f *Field, ok bool) {
	f, ok = o.fields[name]
	return
}

// Lookup returns a field by name and checks its dimensions
func (o *Registry) Lookup(name string, dims unit.Dimensions) (*Field, error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if !f.Dims.Matches(dims) {
		return nil, fmt.Errorf("field %q has dimensions [%s] but [%s] is required", name, f.Dims.String(), dims.String())
	}
	return f, nil
}

// Names returns the sorted names of all registered fields
func (o *Registry) Names() (names []string) {
	names = make([]string, 0, len(o.fields))
	for name := range o.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
