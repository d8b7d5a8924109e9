// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gosl/chk"
	"github.com/ctessum/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const caseJSON = `{
  "desc": "grout injection in a pipe",
  "dict": "grout.json",
  "mesh": {"ncells": 4, "patches": [{"name": "inlet", "size": 2}, {"name": "wall", "size": 3}]},
  "rate": {"type": "linear", "min": 0, "max": 3, "wall": 10},
  "phase": {"type": "list", "values": [0, 0.5, 0.95, 1]},
  "time": {"t0": 0, "tf": 10, "dt": 0.5, "dtout": 1},
  "probes": [0, 3],
  "ndeg": 2
}`

func Test_case01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("case01")

	dir := tst.TempDir()
	path := filepath.Join(dir, "pipe01.rheo")
	require.NoError(tst, os.WriteFile(path, []byte(caseJSON), 0644))
	require.NoError(tst, os.WriteFile(filepath.Join(dir, "grout.json"), []byte(dictJSON), 0644))

	c, err := ReadCase(path)
	require.NoError(tst, err)
	assert.Equal(tst, "pipe01", c.Key)
	assert.Equal(tst, "/tmp/gorheo/pipe01", c.DirOut)
	assert.Equal(tst, "nu", c.Field)
	assert.Equal(tst, filepath.Join(dir, "grout.json"), c.DictPath)
	chk.Int(tst, "ncells", c.Mesh.Ncells, 4)
	chk.Int(tst, "ndeg", c.Ndeg, 2)
	chk.Float64(tst, "tf", 1e-15, c.Time.Tf, 10)
	require.NotNil(tst, c.Phase)

	d, err := c.LoadDict()
	require.NoError(tst, err)
	model, err := d.Model()
	require.NoError(tst, err)
	assert.Equal(tst, "timeSlurry", model)

	c.Model = "timeSlurryPower"
	d, err = c.LoadDict()
	require.NoError(tst, err)
	model, err = d.Model()
	require.NoError(tst, err)
	assert.Equal(tst, "timeSlurryPower", model)

	// profiles
	rate := fld.New("strainRate", unit.Herz, c.Mesh)
	require.NoError(tst, c.Rate.Fill(rate))
	chk.Array(tst, "rate", 1e-15, rate.Cells, []float64{0, 1, 2, 3})
	chk.Array(tst, "rate(wall)", 1e-15, rate.Patches[1], []float64{10, 10, 10})

	phase := fld.New("alpha.grout", unit.Dimless, c.Mesh)
	require.NoError(tst, c.Phase.Fill(phase))
	chk.Array(tst, "phase", 1e-15, phase.Cells, []float64{0, 0.5, 0.95, 1})
	chk.Array(tst, "phase(inlet)", 1e-15, phase.Patches[0], []float64{0.6125, 0.6125})
}

func Test_case02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("case02")

	// inline dictionary and defaults
	c, err := ParseCase([]byte(`{
		"viscosity": {"transportModel": "easyTime", "easyTimeCoeffs": {"k": 1, "tau0": 0, "nuMax": 5, "timeCoeff": 1}},
		"mesh": {"ncells": 3},
		"rate": {"value": 2}
	}`))
	require.NoError(tst, err)
	assert.Equal(tst, "uniform", c.Rate.Type)
	assert.Nil(tst, c.Phase)
	chk.Float64(tst, "dt", 1e-15, c.Time.Dt, 1)
	vals, err := c.Rate.Eval(3)
	require.NoError(tst, err)
	chk.Array(tst, "rate", 1e-15, vals, []float64{2, 2, 2})
	d, err := c.LoadDict()
	require.NoError(tst, err)
	model, err := d.Model()
	require.NoError(tst, err)
	assert.Equal(tst, "easyTime", model)

	// invalid cases
	for _, data := range []string{
		`{"mesh": {"ncells": 3}}`,                                                            // no dictionary
		`{"dict": "a.json", "mesh": {"ncells": 0}}`,                                          // no cells
		`{"dict": "a.json", "mesh": {"ncells": 3}, "rate": {"type": "parabolic"}}`,           // unknown profile
		`{"dict": "a.json", "mesh": {"ncells": 3}, "rate": {"value": -1}}`,                   // negative strain rate
		`{"dict": "a.json", "mesh": {"ncells": 3}, "time": {"t0": 2, "tf": 1}}`,              // tf < t0
		`{"dict": "a.json", "mesh": {"ncells": 3}, "time": {"dt": 0}}`,                       // zero time step
		`{"dict": "a.json", "mesh": {"ncells": 3}, "probes": [3]}`,                           // probe out of range
		`{"dict": "a.json", "mesh": {"ncells": 3}, "rate": {"type": "list", "values": [1]}}`, // wrong list
		`{"dict": "a.json", "mesh": {"ncells": 3, "patches": [{"size": 2}]}}`,                // unnamed patch
		`{"dict": "a.json", "mesh": {"ncells": 3}, "phase": {"value": 1.5}}`,                 // phase above one
		`{"dict": "a.json", "mesh": {"ncells": 3}, "phase": {"type": "linear", "max": 2}}`,   // phase above one
		`{"dict": "a.json", "mesh": {"ncells": 3}, "phase": {"value": 1, "wall": 1.1}}`,      // wall above one
		`{"dict": "a.json", "mesh": {"ncells": 3}, "phase": {"type": "list", "values": [0, 0.5, 3]}}`,
	} {
		_, err = ParseCase([]byte(data))
		assert.Error(tst, err, data)
	}

	// phase indicator at the limits
	c, err = ParseCase([]byte(`{"dict": "a.json", "mesh": {"ncells": 2}, "phase": {"type": "list", "values": [0, 1], "wall": 1}}`))
	require.NoError(tst, err)
	assert.Equal(tst, "list", c.Phase.Type)

	_, err = ReadCase("/tmp/gorheo/does/not/exist.rheo")
	assert.Error(tst, err)
}

func Test_profile01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile01")

	p := Profile{Type: "linear", Min: 1, Max: 2}
	vals, err := p.Eval(1)
	require.NoError(tst, err)
	chk.Array(tst, "single", 1e-15, vals, []float64{1})

	vals, err = p.Eval(5)
	require.NoError(tst, err)
	chk.Array(tst, "linear", 1e-15, vals, []float64{1, 1.25, 1.5, 1.75, 2})

	_, err = Profile{Type: "list", Values: []float64{1, 2}}.Eval(3)
	assert.Error(tst, err)
	_, err = Profile{Type: "random"}.Eval(3)
	assert.Error(tst, err)
}
