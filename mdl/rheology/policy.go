// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import "math"

// floorRate limits the strain rate from below
func floorRate(sr, floor float64) float64 {
	if sr < floor {
		return floor
	}
	return sr
}

// herschelBulkley computes the apparent viscosity (tau0 + k·sr^n) / max(sr, floor)
//  Note: the numerator uses the true strain rate; only the denominator is floored
func herschelBulkley(tau0, k, sr, n, floor float64) float64 {
	return (tau0 + k*math.Pow(sr, n)) / floorRate(sr, floor)
}

// papanastasiou computes the regularised viscosity
//   sr > VSMALL:  ν = (tau0·(1 - exp(-m·sr))/sr + kEff·sr^(n-1)) / 2 · rho
//   otherwise:    ν = tau0·m / 2 · rho   (limit sr → 0)
//  Note: 1 - exp(-m·sr) is computed with Expm1 to keep the yield term exact as sr → 0
func papanastasiou(tau0, kEff, sr, n, rho, m float64) float64 {
	sr = math.Abs(sr)
	if sr > VSMALL {
		yield := tau0 * -math.Expm1(-m*sr) / sr
		visc := kEff * math.Pow(sr, n-1.0)
		return (yield + visc) / 2.0 * rho
	}
	return tau0 * m / 2.0 * rho
}

// bound limits v to [lo, hi]; NaN and +Inf are mapped to hi
func bound(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
