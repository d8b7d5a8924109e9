// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// HerschelBulkley implements the closed-form apparent viscosity of a Herschel-Bulkley fluid
//   ν = min(νmax, (τ0 + k·γ̇ⁿ) / max(γ̇, floor))
type HerschelBulkley struct {
	Tau0  float64 // yield stress [m²/s²]
	K     float64 // consistency [m²/s]
	N     float64 // flow index
	NuMax float64 // upper limit of viscosity [m²/s]; ignored if zero
	Floor float64 // lower limit of strain rate in the denominator [1/s]
}

// Nu computes the apparent viscosity at strain rate sr
func (o HerschelBulkley) Nu(sr float64) float64 {
	den := math.Max(sr, o.Floor)
	nu := (o.Tau0 + o.K*math.Pow(sr, o.N)) / den
	if o.NuMax > 0 && !(nu <= o.NuMax) {
		return o.NuMax
	}
	return nu
}

// Stress computes the shear stress divided by density at strain rate sr
func (o HerschelBulkley) Stress(sr float64) float64 {
	return o.Tau0 + o.K*math.Pow(sr, o.N)
}

// Curve evaluates Nu at each strain rate
func (o HerschelBulkley) Curve(rates []float64) (nu []float64) {
	nu = make([]float64, len(rates))
	for i, sr := range rates {
		nu[i] = o.Nu(sr)
	}
	return
}
