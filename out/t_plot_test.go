// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/ctessum/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeries(tst *testing.T) *Series {
	nu := fld.New("nu", unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -1}, fld.Layout{Ncells: 4})
	s := NewSeries("nu", []int{0, 3})
	for i := 0; i < 3; i++ {
		t := float64(i)
		copy(nu.Cells, []float64{1 + t, 2, 3, 4 + 2*t})
		if err := s.Add(t, nu, t); err != nil {
			tst.Fatalf("Add failed: %v\n", err)
		}
	}
	return s
}

func Test_series01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("series01")

	s := newTestSeries(tst)
	chk.Int(tst, "len", s.Len(), 3)
	chk.Strings(tst, "keys", s.Keys(), []string{"t", "min", "max", "mean", "active", "p0", "p3"})

	t, err := s.Get("t")
	require.NoError(tst, err)
	chk.Array(tst, "t", 1e-17, t, []float64{0, 1, 2})
	min, _ := s.Get("min")
	chk.Array(tst, "min", 1e-17, min, []float64{1, 2, 2})
	max, _ := s.Get("max")
	chk.Array(tst, "max", 1e-17, max, []float64{4, 6, 8})
	mean, _ := s.Get("mean")
	chk.Array(tst, "mean", 1e-15, mean, []float64{2.5, 3.25, 4})
	active, _ := s.Get("active")
	chk.Array(tst, "active", 1e-17, active, []float64{0, 1, 2})
	p3, err := s.Get(ProbeKey(3))
	require.NoError(tst, err)
	chk.Array(tst, "p3", 1e-17, p3, []float64{4, 6, 8})

	for _, key := range []string{"x", "p1", "p", "pa"} {
		_, err = s.Get(key)
		assert.Error(tst, err, key)
	}

	// probes out of range
	bad := NewSeries("nu", []int{4})
	assert.Error(tst, bad.Add(0, fld.New("nu", unit.Dimless, fld.Layout{Ncells: 4}), 0))
	assert.Error(tst, bad.Add(0, nil, 0))
	chk.Int(tst, "len", bad.Len(), 0)
}

func Test_series02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("series02. table")

	s := newTestSeries(tst)
	dir := tst.TempDir()
	require.NoError(tst, s.WriteTable(filepath.Join(dir, "sub"), "nu.res"))

	b, err := os.ReadFile(filepath.Join(dir, "sub", "nu.res"))
	require.NoError(tst, err)
	io.Pforan("%s", b)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(tst, lines, 4)
	assert.Equal(tst, s.Keys(), strings.Fields(lines[0]))
	last := strings.Fields(lines[3])
	require.Len(tst, last, 7)
	assert.Equal(tst, "2.000000000000000e+00", last[0])
	assert.Equal(tst, "8.000000000000000e+00", last[6])
}

func Test_plot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plot01")

	dir := tst.TempDir()
	s := newTestSeries(tst)
	require.NoError(tst, s.Plot(dir, "nu.png", false))
	require.NoError(tst, s.Plot(dir, "nu.png", true))
	for _, fn := range []string{"nu.png", "nu_range.png", "nu_probes.png", "nu_active.png"} {
		info, err := os.Stat(filepath.Join(dir, fn))
		require.NoError(tst, err, fn)
		assert.True(tst, info.Size() > 0, fn)
	}

	var fig Figure
	assert.Error(tst, fig.Draw(dir, "empty.png", false))
	assert.Error(tst, fig.Plot([]float64{0, 1}, []float64{0}, "bad"))
	require.NoError(tst, fig.Plot([]float64{0, 1}, []float64{1, 2}, "line"))
	fig.Hline(1.5)
	fig.SplotConfig("t", "keff", "s", "m²/s")
	chk.String(tst, fig.Csplot.Ylbl, "kEff [m²/s]")
	chk.String(tst, fig.Csplot.Id, "0")
	assert.Error(tst, fig.Draw(dir, "fig.eps", false))
	require.NoError(tst, fig.Draw(dir, "fig.png", false))
}
