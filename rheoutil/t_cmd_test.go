// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheoutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gorheo/mdl/rheology"
	"github.com/cpmech/gosl/chk"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args after resetting all flags to their defaults
func execute(args ...string) (stdout, stderr string, err error) {
	reset := func(set *pflag.FlagSet) {
		set.VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(Root.PersistentFlags())
	for _, c := range Root.Commands() {
		reset(c.Flags())
	}
	var out, errs bytes.Buffer
	Root.SetOut(&out)
	Root.SetErr(&errs)
	Root.SetArgs(args)
	err = Root.Execute()
	return out.String(), errs.String(), err
}

// columns parses the numeric rows of a table skipping comments and headers
func columns(tst *testing.T, table string) (res [][]float64) {
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		row := make([]float64, len(fields))
		var err error
		for i, s := range fields {
			row[i], err = cast.ToFloat64E(s)
			if err != nil {
				break
			}
		}
		if err != nil {
			continue
		}
		res = append(res, row)
	}
	return
}

func Test_cmd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd01. version and models")

	stdout, _, err := execute("version")
	require.NoError(tst, err)
	assert.Equal(tst, "gorheo v"+Version+"\n", stdout)

	stdout, _, err = execute("models")
	require.NoError(tst, err)
	for _, name := range rheology.Names() {
		assert.Contains(tst, stdout, name+"\n")
	}
	assert.Contains(tst, stdout, "timeCoeff")

	_, _, err = execute("nonexistent")
	assert.Error(tst, err)
}

func Test_cmd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd02. curve and evolve")

	stdout, _, err := execute("curve", "--model", "timeSlurry", "--rates", "1:1000:2", "--time", "10")
	require.NoError(tst, err)
	assert.Contains(tst, stdout, "# timeSlurry at t = 10")
	rows := columns(tst, stdout)
	require.Len(tst, rows, 2)
	chk.Array(tst, "sr", 1e-15, []float64{rows[0][0], rows[1][0]}, []float64{1, 1000})
	chk.Array(tst, "nu", 1e-12, []float64{rows[0][1], rows[1][1]}, []float64{10.43656365691809, 1.370603048385066})

	// logarithmic spacing and figure
	dir := tst.TempDir()
	stdout, _, err = execute("curve", "-m", "timeSlurry", "--rates", "0.01:100:5", "--logscale", "--png", "curve.png", "--dirout", dir)
	require.NoError(tst, err)
	rows = columns(tst, stdout)
	require.Len(tst, rows, 5)
	chk.Float64(tst, "sr[2]", 1e-15, rows[2][0], 1)
	_, err = os.Stat(filepath.Join(dir, "curve.png"))
	assert.NoError(tst, err)

	// viscosity saturates at nuMax
	stdout, _, err = execute("evolve", "-m", "timeSlurry", "--rate", "1", "--t0", "0", "--tf", "10", "--np", "3")
	require.NoError(tst, err)
	rows = columns(tst, stdout)
	require.Len(tst, rows, 3)
	chk.Float64(tst, "t[1]", 1e-15, rows[1][0], 5)
	chk.Float64(tst, "nu(0)", 1e-12, rows[0][1], 7)
	chk.Float64(tst, "nu(10)", 1e-12, rows[2][1], 10.43656365691809)

	// dictionary file with model override
	path := filepath.Join(tst.TempDir(), "viscosity.yaml")
	require.NoError(tst, os.WriteFile(path, []byte("transportModel: timeSlurryPower\ntimeSlurryCoeffs: {k: 2, n: 0.8, tau0: 5, nuMax: 100, timeCoeff: 0.1}\n"), 0644))
	_, _, err = execute("curve", "--dict", path, "--model", "timeSlurry", "--rates", "1:1:1")
	assert.NoError(tst, err)

	// errors
	for _, args := range [][]string{
		{"curve"},
		{"curve", "-m", "binghamPlastic"},
		{"curve", "-m", "timeSlurry", "--rates", "1:10"},
		{"curve", "-m", "timeSlurry", "--rates", "10:1:5"},
		{"curve", "-m", "timeSlurry", "--rates", "0:1:5", "--logscale"},
		{"curve", "-m", "timeSlurry", "--png", "curve.svg", "--dirout", dir},
		{"evolve", "-m", "timeSlurry", "--np", "1"},
		{"evolve", "-m", "timeSlurry", "--t0", "5", "--tf", "1"},
		{"curve", "-m", "timeSlurry", "--loglevel", "loud"},
		{"curve", "-m", "timeSlurry", "--config", filepath.Join(dir, "missing.yaml")},
	} {
		_, _, err = execute(args...)
		assert.Error(tst, err, strings.Join(args, " "))
	}
}

func Test_cmd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd03. keff")

	stdout, _, err := execute("keff", "-m", "timeVaryingGrout", "--t0", "0", "--tf", "8000", "--np", "5")
	require.NoError(tst, err)
	assert.Contains(tst, stdout, "# t50 = 3912.02")
	rows := columns(tst, stdout)
	require.Len(tst, rows, 5)
	chk.Float64(tst, "keff(0)", 1e-15, rows[0][1], 1e-3)
	chk.Float64(tst, "keff(tf)", 1e-15, rows[4][1], 0.1)
	chk.Float64(tst, "norm(tf)", 1e-15, rows[4][3], 1)

	// configuration file
	dir := tst.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(tst, os.WriteFile(cfg, []byte("tf = 100.0\nnp = 2\n"), 0644))
	stdout, _, err = execute("keff", "-m", "timeVaryingGrout", "--config", cfg)
	require.NoError(tst, err)
	rows = columns(tst, stdout)
	require.Len(tst, rows, 2)
	chk.Float64(tst, "t[1]", 1e-15, rows[1][0], 100)

	_, _, err = execute("keff", "-m", "timeSlurry")
	assert.Error(tst, err)
}

func Test_cmd04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd04. run")

	dir := tst.TempDir()
	dirout := filepath.Join(dir, "results")
	dict := `{"transportModel": "timeSlurry", "timeSlurryCoeffs": {"k": 2, "n": 0.8, "tau0": 5, "nuMax": 100, "timeCoeff": 0.1}}`
	require.NoError(tst, os.WriteFile(filepath.Join(dir, "slurry.json"), []byte(dict), 0644))
	data := `{
  "dict": "slurry.json",
  "dirout": "` + dirout + `",
  "mesh": {"ncells": 4},
  "rate": {"type": "list", "values": [0, 0.01, 1, 1000]},
  "phase": {"type": "uniform", "value": 1},
  "time": {"t0": 0, "tf": 10, "dt": 1, "dtout": 5},
  "probes": [2]
}`
	path := filepath.Join(dir, "slurry01.rheo")
	require.NoError(tst, os.WriteFile(path, []byte(data), 0644))

	stdout, _, err := execute("run", path, "--watch", "--metrics", "127.0.0.1:0", "--plot")
	require.NoError(tst, err)
	assert.Contains(tst, stdout, "slurry01: 10 steps")
	for _, pattern := range []string{"slurry01_*.res", "slurry01_*.png"} {
		matches, err := filepath.Glob(filepath.Join(dirout, pattern))
		require.NoError(tst, err)
		assert.Len(tst, matches, 1, pattern)
	}

	// final viscosity in table
	matches, _ := filepath.Glob(filepath.Join(dirout, "slurry01_*.res"))
	require.Len(tst, matches, 1)
	b, err := os.ReadFile(matches[0])
	require.NoError(tst, err)
	rows := columns(tst, string(b))
	require.Len(tst, rows, 3)
	chk.Float64(tst, "p2(10)", 1e-12, rows[2][len(rows[2])-1], 10.43656365691809)

	// inline dictionary cannot be watched
	inline := filepath.Join(dir, "inline.rheo")
	require.NoError(tst, os.WriteFile(inline, []byte(`{"viscosity": `+dict+`, "mesh": {"ncells": 1}, "dirout": "`+dirout+`"}`), 0644))
	_, _, err = execute("run", inline, "--watch")
	assert.Error(tst, err)
	_, _, err = execute("run", inline)
	assert.NoError(tst, err)

	// errors
	_, _, err = execute("run")
	assert.Error(tst, err)
	_, _, err = execute("run", filepath.Join(dir, "missing.rheo"))
	assert.Error(tst, err)
}

// ensure all subcommands are registered
func Test_cmd05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd05. commands")

	names := make(map[string]*cobra.Command)
	for _, c := range Root.Commands() {
		names[c.Name()] = c
	}
	for _, name := range []string{"version", "models", "curve", "evolve", "keff", "run"} {
		_, ok := names[name]
		assert.True(tst, ok, name)
	}
	for _, name := range []string{"dict", "model", "png", "dirout"} {
		assert.NotNil(tst, names["keff"].Flags().Lookup(name), name)
	}
}
