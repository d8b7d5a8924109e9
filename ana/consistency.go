// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions and reference curves for time-dependent
// yield-stress fluids
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ConsistencyExp implements a consistency growing exponentially in time and saturating at νmax
//   kEff(t) = min(νmax, k·exp(c·t))
type ConsistencyExp struct {
	K         float64 // consistency at t = 0 [m²/s]
	TimeCoeff float64 // c: rate of growth [1/s]
	NuMax     float64 // saturation value [m²/s]
}

// KEff computes the effective consistency at time t
func (o ConsistencyExp) KEff(t float64) float64 {
	return math.Min(o.NuMax, o.K*math.Exp(o.TimeCoeff*t))
}

// Rate computes d kEff / dt; it is zero after saturation
func (o ConsistencyExp) Rate(t float64) float64 {
	k := o.K * math.Exp(o.TimeCoeff*t)
	if k >= o.NuMax {
		return 0
	}
	return o.TimeCoeff * k
}

// SaturationTime returns the time at which kEff reaches frac·νmax
//   t = ln(frac·νmax/k) / c
//  Note: zero is returned if the initial consistency is already above frac·νmax
func (o ConsistencyExp) SaturationTime(frac float64) (t float64, err error) {
	if frac <= 0 || frac > 1 {
		return 0, chk.Err("fraction of νmax must be in (0, 1]. %g is invalid", frac)
	}
	if o.K <= 0 {
		return 0, chk.Err("initial consistency must be positive. k = %g is invalid", o.K)
	}
	target := frac * o.NuMax
	if o.K >= target {
		return 0, nil
	}
	if o.TimeCoeff <= 0 {
		return 0, chk.Err("%g·νmax cannot be reached with timeCoeff = %g", frac, o.TimeCoeff)
	}
	return math.Log(target/o.K) / o.TimeCoeff, nil
}

// ConsistencyPow implements a consistency growing as a power of time
//   k(t) = k·t^c
type ConsistencyPow struct {
	K         float64 // consistency at t = 1 [m²/s]
	TimeCoeff float64 // c: exponent of time
}

// KEff computes the consistency at time t
func (o ConsistencyPow) KEff(t float64) float64 {
	return o.K * math.Pow(t, o.TimeCoeff)
}

// Sample holds one point of an evolution curve
type Sample struct {
	T    float64 // time
	K    float64 // consistency
	Dkdt float64 // rate of change (central differences; one-sided at the ends)
	Norm float64 // K divided by the reference value (zero if the reference is zero)
}

// Evolution evaluates k at the given times and estimates its rate of change
//  ref -- reference value used to normalise k; e.g. νmax
func Evolution(k func(t float64) float64, times []float64, ref float64) (res []Sample) {
	n := len(times)
	res = make([]Sample, n)
	for i, t := range times {
		res[i].T = t
		res[i].K = k(t)
		if ref != 0 {
			res[i].Norm = res[i].K / ref
		}
	}
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a, b := i-1, i+1
		if a < 0 {
			a = 0
		}
		if b > n-1 {
			b = n - 1
		}
		res[i].Dkdt = (res[b].K - res[a].K) / (res[b].T - res[a].T)
	}
	return
}
