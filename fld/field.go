// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fld implements cell-centred scalar fields with boundary patches and a
// registry to share fields between the flow solver and the viscosity models
package fld

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/ctessum/unit"
	"gonum.org/v1/gonum/floats"
)

// Patch holds data of one boundary patch
type Patch struct {
	Name string `json:"name" validate:"required"` // name of patch; e.g. "inlet"
	Size int    `json:"size" validate:"gte=0"`    // number of faces
}

// Layout defines the shape of a field
type Layout struct {
	Ncells  int     `json:"ncells" validate:"gt=0"`   // number of cells
	Patches []Patch `json:"patches" validate:"dive"` // boundary patches
}

// PatchIndex returns the index of a patch or -1 if not found
func (o Layout) PatchIndex(name string) int {
	for i, p := range o.Patches {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Field holds one value per cell and one slice of face values per boundary patch
type Field struct {
	Name    string          // name of field; e.g. "nu"
	Dims    unit.Dimensions // physical dimensions
	Cells   []float64       // [ncells] internal values
	Patches [][]float64     // [npatches][nfaces] boundary values
}

// New allocates a zero field with the given layout
func New(name string, dims unit.Dimensions, lay Layout) (o *Field) {
	o = &Field{Name: name, Dims: dims}
	o.Cells = make([]float64, lay.Ncells)
	o.Patches = make([][]float64, len(lay.Patches))
	for i, p := range lay.Patches {
		o.Patches[i] = make([]float64, p.Size)
	}
	return
}

// NewLike allocates a zero field with the same layout as another one
func NewLike(name string, dims unit.Dimensions, other *Field) (o *Field) {
	o = &Field{Name: name, Dims: dims}
	o.Cells = make([]float64, len(other.Cells))
	o.Patches = make([][]float64, len(other.Patches))
	for i, vals := range other.Patches {
		o.Patches[i] = make([]float64, len(vals))
	}
	return
}

// Compatible tells whether two fields have the same number of cells and patch faces
func (o *Field) Compatible(other *Field) bool {
	if other == nil || len(o.Cells) != len(other.Cells) || len(o.Patches) != len(other.Patches) {
		return false
	}
	for i, vals := range o.Patches {
		if len(vals) != len(other.Patches[i]) {
			return false
		}
	}
	return true
}

// Patch returns the values on a boundary patch
func (o *Field) Patch(idx int) ([]float64, error) {
	if idx < 0 || idx >= len(o.Patches) {
		return nil, chk.Err("field %q: patch index %d is out of range [0, %d)", o.Name, idx, len(o.Patches))
	}
	return o.Patches[idx], nil
}

// Fill sets all cell and patch values to v
func (o *Field) Fill(v float64) {
	fill(o.Cells, v)
	for _, vals := range o.Patches {
		fill(vals, v)
	}
}

// Copy copies the values of another (compatible) field into this one
func (o *Field) Copy(src *Field) error {
	if !o.Compatible(src) {
		return chk.Err("cannot copy %q into %q: layouts are different", src.Name, o.Name)
	}
	copy(o.Cells, src.Cells)
	for i, vals := range src.Patches {
		copy(o.Patches[i], vals)
	}
	return nil
}

// Apply sets o = fn(src) on cells and patches
func (o *Field) Apply(src *Field, fn func(x float64) float64) error {
	if !o.Compatible(src) {
		return chk.Err("cannot apply function of %q into %q: layouts are different", src.Name, o.Name)
	}
	for i, x := range src.Cells {
		o.Cells[i] = fn(x)
	}
	for i, vals := range src.Patches {
		for j, x := range vals {
			o.Patches[i][j] = fn(x)
		}
	}
	return nil
}

// Scale multiplies all values by a
func (o *Field) Scale(a float64) {
	floats.Scale(a, o.Cells)
	for _, vals := range o.Patches {
		floats.Scale(a, vals)
	}
}

// Min returns the minimum among cell and patch values; +Inf if empty
func (o *Field) Min() (res float64) {
	res = math.Inf(1)
	if len(o.Cells) > 0 {
		res = floats.Min(o.Cells)
	}
	for _, vals := range o.Patches {
		if len(vals) > 0 {
			res = math.Min(res, floats.Min(vals))
		}
	}
	return
}

// Max returns the maximum among cell and patch values; -Inf if empty
func (o *Field) Max() (res float64) {
	res = math.Inf(-1)
	if len(o.Cells) > 0 {
		res = floats.Max(o.Cells)
	}
	for _, vals := range o.Patches {
		if len(vals) > 0 {
			res = math.Max(res, floats.Max(vals))
		}
	}
	return
}

// Sum returns the local sum of cell values
func (o *Field) Sum() float64 {
	return floats.Sum(o.Cells)
}

// Mean returns the mean of cell values; zero if there are no cells
func (o *Field) Mean() float64 {
	if len(o.Cells) == 0 {
		return 0
	}
	return o.Sum() / float64(len(o.Cells))
}

// Unit returns the value of a cell as a dimensioned quantity
func (o *Field) Unit(cell int) *unit.Unit {
	return unit.New(o.Cells[cell], o.Dims)
}

func fill(v []float64, a float64) {
	for i := range v {
		v[i] = a
	}
}
