// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

// GetLabel returns the axis label of a key with optional unit
func GetLabel(key, unit string) string {
	var l string
	switch key {
	case "t", "time":
		l = "t"
	case "nu":
		l = "ν"
	case "nuMax":
		l = "νmax"
	case "keff", "kEffective":
		l = "kEff"
	case "dkdt":
		l = "d kEff / dt"
	case "norm":
		l = "kEff / νmax"
	case "sr", "strainRate":
		l = "γ̇"
	case "tau0":
		l = "τ0"
	case "active":
		l = "active cells"
	default:
		l = key
	}
	if unit != "" {
		l += " [" + unit + "]"
	}
	return l
}
