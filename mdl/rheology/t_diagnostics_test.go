// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheology

import (
	"strings"
	"testing"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// newTestPhase publishes a phase-indicator field into reg
func newTestPhase(reg *fld.Registry, flow *testFlow, cells []float64, patches ...[]float64) *fld.Field {
	phase := fld.New(PhaseName, unit.Dimless, flow.lay)
	copy(phase.Cells, cells)
	for i, vals := range patches {
		copy(phase.Patches[i], vals)
	}
	reg.Publish(phase)
	return phase
}

// countWarnings counts warnings mentioning the phase field
func countWarnings(hook *logtest.Hook) (n int) {
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, PhaseName) {
			n++
		}
	}
	return
}

func Test_diag01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag01. timeVaryingGrout")

	reg := fld.NewRegistry()
	flow := newTestFlow([]float64{0, 1, 2, 3, 4}, []float64{5, 6})
	newTestPhase(reg, flow, []float64{0.5, 0.9, 0.95, 1, 0}, []float64{0.91, 0.2})
	args, hook := newTestArgs(exampleDict(tst, "timeVaryingGrout", nil), flow, 0, reg)
	mdl, err := New("timeVaryingGrout", args)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.Int(tst, "warnings", countWarnings(hook), 0)

	o := mdl.(*TimeVaryingGrout)
	keff := o.Consistency(0)
	nu := mdl.Viscosity()
	diags := o.Diagnostics()
	chk.Int(tst, "ndiags", len(diags), 3)
	chk.String(tst, diags[0].Name, "StrainRate_Debug1")
	chk.String(tst, diags[1].Name, "CaluNu_Debug2")
	chk.String(tst, diags[2].Name, "physicalNu_Debug3")
	chk.Array(tst, "Debug1", 1e-17, diags[0].Cells, []float64{0, 0, 2, 3, 0})
	chk.Array(tst, "Debug2", 1e-17, diags[1].Cells, []float64{0, 0, keff, keff, 0})
	chk.Array(tst, "Debug3", 1e-17, diags[2].Cells, []float64{0, 0, nu.Cells[2], nu.Cells[3], 0})
	chk.Array(tst, "Debug1(patch)", 1e-17, diags[0].Patches[0], []float64{5, 0})
	chk.Array(tst, "Debug3(patch)", 1e-17, diags[2].Patches[0], []float64{nu.Patches[0][0], 0})
	chk.Float64(tst, "active", 1e-17, o.ActiveCells(), 2)
	onPatch, err := mdl.ViscosityOnPatch(0)
	if err != nil {
		tst.Errorf("ViscosityOnPatch failed: %v\n", err)
		return
	}
	chk.Array(tst, "nu(patch)", 1e-17, onPatch, nu.Patches[0])
	if _, err = mdl.ViscosityOnPatch(1); err == nil {
		tst.Errorf("ViscosityOnPatch should have failed with index out of range\n")
	}

	// published
	for _, name := range []string{"nu", "StrainRate_Debug1", "CaluNu_Debug2", "physicalNu_Debug3"} {
		if _, ok := reg.Find(name); !ok {
			tst.Errorf("field %q should have been published\n", name)
		}
	}

	// phase removed: diagnostics are zeroed but viscosity is not affected
	before := append([]float64{}, nu.Cells...)
	reg.Remove(PhaseName)
	err = mdl.Recompute(0, reg)
	if err != nil {
		tst.Errorf("Recompute failed: %v\n", err)
		return
	}
	chk.Int(tst, "warnings", countWarnings(hook), 1)
	chk.Array(tst, "nu", 0, nu.Cells, before)
	for _, f := range diags {
		chk.Float64(tst, f.Name+": min", 1e-17, f.Min(), 0)
		chk.Float64(tst, f.Name+": max", 1e-17, f.Max(), 0)
	}
	chk.Float64(tst, "active", 1e-17, o.ActiveCells(), 0)
}

func Test_diag02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag02. easyTime and timeSlurry")

	reg := fld.NewRegistry()
	flow := newTestFlow([]float64{0, 1, 2}, []float64{3})
	newTestPhase(reg, flow, []float64{0.3, 0, 1}, []float64{0.1})

	// easyTime
	args, hook := newTestArgs(exampleDict(tst, "easyTime", nil), flow, 1, reg)
	args.Name = "nuE"
	easy, err := New("easyTime", args)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	nu := easy.Viscosity()
	diags := easy.(Diagnosed).Diagnostics()
	chk.String(tst, diags[0].Name, "nuE_field1")
	chk.String(tst, diags[1].Name, "nuE_alpha1")
	chk.Array(tst, "field1", 1e-17, diags[0].Cells, []float64{nu.Cells[0], 0, nu.Cells[2]})
	chk.Array(tst, "alpha1", 1e-17, diags[1].Cells, []float64{0.3, 0, 1})
	chk.Array(tst, "alpha1(patch)", 1e-17, diags[1].Patches[0], []float64{0.1})
	chk.Float64(tst, "active", 1e-17, easy.(Diagnosed).ActiveCells(), 2)
	chk.Int(tst, "warnings", countWarnings(hook), 0)

	// timeSlurry
	args, hook = newTestArgs(exampleDict(tst, "timeSlurry", nil), flow, 1, reg)
	slurry, err := New("timeSlurry", args)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	nu = slurry.Viscosity()
	diags = slurry.(Diagnosed).Diagnostics()
	chk.String(tst, diags[0].Name, "nu_Debug1")
	chk.String(tst, diags[1].Name, "nu_Debug2")
	chk.Array(tst, "Debug1", 1e-17, diags[0].Cells, []float64{VSMALL, 0, 2})
	chk.Array(tst, "Debug2", 1e-17, diags[1].Cells, []float64{nu.Cells[0], 0, nu.Cells[2]})
	chk.Array(tst, "Debug1(patch)", 1e-17, diags[0].Patches[0], []float64{3})
	if _, ok := reg.Find("nu_Debug2"); !ok {
		tst.Errorf("nu_Debug2 should have been published\n")
	}

	// missing registry: uniform policy
	err = slurry.Recompute(2, nil)
	if err != nil {
		tst.Errorf("Recompute failed: %v\n", err)
		return
	}
	chk.Int(tst, "warnings", countWarnings(hook), 1)
	chk.Float64(tst, "max(Debug1)", 1e-17, diags[0].Max(), 0)
	chk.Float64(tst, "max(Debug2)", 1e-17, diags[1].Max(), 0)
}

func Test_diag03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag03. invalid phase fields")

	flow := newTestFlow([]float64{0, 1, 2})
	for _, phase := range []*fld.Field{
		fld.New(PhaseName, unit.Meter, flow.lay),                // wrong dimensions
		fld.New(PhaseName, unit.Dimless, fld.Layout{Ncells: 2}), // wrong layout
	} {
		phase.Fill(1)
		reg := fld.NewRegistry()
		reg.Publish(phase)
		args, hook := newTestArgs(exampleDict(tst, "timeSlurry", nil), flow, 0, reg)
		mdl, err := New("timeSlurry", args)
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			return
		}
		chk.Int(tst, "warnings", countWarnings(hook), 1)
		for _, f := range mdl.(Diagnosed).Diagnostics() {
			chk.Float64(tst, f.Name, 1e-17, f.Max(), 0)
		}
	}
}

func Test_diag04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag04. parallel count and global reduction")

	n := 1000
	rates := make([]float64, n)
	alpha := make([]float64, n)
	for i := 0; i < n; i++ {
		rates[i] = float64(i)
		if i%4 == 0 {
			alpha[i] = 1
		}
	}
	reg := fld.NewRegistry()
	flow := newTestFlow(rates)
	newTestPhase(reg, flow, alpha)
	for _, ndeg := range []int{1, 3, 8} {
		args, _ := newTestArgs(exampleDict(tst, "timeVaryingGrout", nil), flow, 0, reg)
		args.Ndeg = ndeg
		args.Reduce = twoParts{}
		mdl, err := New("timeVaryingGrout", args)
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			return
		}
		chk.Float64(tst, "active", 1e-17, mdl.(Diagnosed).ActiveCells(), 500)
	}
}

// twoParts mimics a domain decomposed into two identical parts
type twoParts struct{}

func (twoParts) SumAll(local float64) float64 { return 2 * local }

func Test_policy01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("policy01")

	inf := 1.0 / zero()
	chk.Float64(tst, "bound(NaN)", 1e-17, bound(inf-inf, 0, 3), 3)
	chk.Float64(tst, "bound(+Inf)", 1e-17, bound(inf, 0, 3), 3)
	chk.Float64(tst, "bound(-1)", 1e-17, bound(-1, 0, 3), 0)
	chk.Float64(tst, "bound(2)", 1e-17, bound(2, 0, 3), 2)
	chk.Float64(tst, "floor", 1e-17, floorRate(0, SMALL), SMALL)
	chk.Float64(tst, "floor", 1e-17, floorRate(2, SMALL), 2)
	chk.Float64(tst, "hb", 1e-15, herschelBulkley(1, 2, 4, 0.5, VSMALL), (1+2*2)/4.0)
	chk.Float64(tst, "hb(0)", 1e-300, herschelBulkley(1e-300, 2, 0, 0.5, 1), 1e-300)
	chk.Float64(tst, "papanastasiou(0)", 1e-15, papanastasiou(2, 1, 0, 1, 3, 10), 30)
}

func Test_policy02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("policy02. yield term near zero strain rate")

	tau0, rho := 5e-4, 1800.0
	nu0 := papanastasiou(tau0, 0, 0, 1, rho, PapM)
	chk.Float64(tst, "nu(0)", 1e-12, nu0, 450)
	for _, sr := range []float64{1e-9, 1e-16, 1e-19, 1e-250} {
		nu := papanastasiou(tau0, 0, sr, 1, rho, PapM)
		chk.Float64(tst, io.Sf("nu(%g)", sr), 1e-3, nu, nu0)
		if nu > nu0 {
			tst.Errorf("viscosity at sr=%g must not exceed the limit at zero: %g > %g\n", sr, nu, nu0)
		}
	}
}

func zero() float64 { return 0 }
