// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheoutil

import (
	"bytes"
	"math"
	"os"
	"strings"

	"github.com/cpmech/gorheo/ana"
	"github.com/cpmech/gorheo/fld"
	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gorheo/mdl/rheology"
	"github.com/cpmech/gorheo/out"
	"github.com/cpmech/gorheo/sim"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available models and their example coefficients",
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf bytes.Buffer
		for _, name := range rheology.Names() {
			prms, err := rheology.Example(name)
			if err != nil {
				return err
			}
			io.Ff(&buf, "%s\n", name)
			for _, p := range prms {
				io.Ff(&buf, "  %-18s = %g\n", p.N, p.V)
			}
			dict, err := rheology.ExampleDict(name)
			if err != nil {
				return err
			}
			sub := dict.OptionalSubDict(name + "Coeffs")
			for key, v := range sub {
				if s, ok := v.(string); ok {
					io.Ff(&buf, "  %-18s = %s\n", key, s)
				}
			}
		}
		cmd.Print(buf.String())
		return nil
	},
	DisableAutoGenTag: true,
}

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Compute viscosity versus strain rate at a given time",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		dict, err := loadDict()
		if err != nil {
			return err
		}
		rates, err := parseRates(Cfg.GetString("rates"), Cfg.GetBool("logscale"))
		if err != nil {
			return err
		}
		t := Cfg.GetFloat64("time")
		mdl, _, err := newModel(dict, rates, t, log)
		if err != nil {
			return err
		}
		nu := mdl.Viscosity().Cells

		var buf bytes.Buffer
		io.Ff(&buf, "# %s at t = %g\n", mdl.Type(), t)
		io.Ff(&buf, "%23s%23s\n", "sr", "nu")
		for i, sr := range rates {
			io.Ff(&buf, "%23.15e%23.15e\n", sr, nu[i])
		}
		cmd.Print(buf.String())

		var fig out.Figure
		fig.Splot("curve", io.Sf("%s at t = %g", mdl.Type(), t))
		if err = fig.Plot(rates, nu, mdl.Type()); err != nil {
			return err
		}
		fig.SplotConfig("sr", "nu", "1/s", "m²/s")
		return savePng(&fig)
	},
	DisableAutoGenTag: true,
}

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Compute viscosity versus time at a given strain rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		dict, err := loadDict()
		if err != nil {
			return err
		}
		times, err := timeSpace()
		if err != nil {
			return err
		}
		rate := Cfg.GetFloat64("rate")
		mdl, reg, err := newModel(dict, []float64{rate}, times[0], log)
		if err != nil {
			return err
		}
		nu := make([]float64, len(times))
		var buf bytes.Buffer
		io.Ff(&buf, "# %s at sr = %g\n", mdl.Type(), rate)
		io.Ff(&buf, "%23s%23s\n", "t", "nu")
		for i, t := range times {
			if err = mdl.Recompute(t, reg); err != nil {
				return err
			}
			nu[i] = mdl.Viscosity().Cells[0]
			io.Ff(&buf, "%23.15e%23.15e\n", t, nu[i])
		}
		cmd.Print(buf.String())

		var fig out.Figure
		fig.Splot("evolution", io.Sf("%s at sr = %g", mdl.Type(), rate))
		if err = fig.Plot(times, nu, mdl.Type()); err != nil {
			return err
		}
		prms := mdl.GetPrms(false)
		if p := prms.Find("nuMax"); p != nil && mdl.Kind() != rheology.TimeVaryingGroutKind {
			fig.Hline(p.V)
		}
		fig.SplotConfig("t", "nu", "s", "m²/s")
		return savePng(&fig)
	},
	DisableAutoGenTag: true,
}

var keffCmd = &cobra.Command{
	Use:   "keff",
	Short: "Analyse the evolution of the effective consistency of timeVaryingGrout",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		dict, err := loadDict()
		if err != nil {
			return err
		}
		times, err := timeSpace()
		if err != nil {
			return err
		}
		mdl, _, err := newModel(dict, []float64{1}, times[0], log)
		if err != nil {
			return err
		}
		if mdl.Kind() != rheology.TimeVaryingGroutKind {
			return chk.Err("keff analysis requires %q. %q is not supported", rheology.TimeVaryingGroutKind, mdl.Type())
		}
		prms := mdl.GetPrms(false)
		c := ana.ConsistencyExp{K: prms.Find("k").V, TimeCoeff: prms.Find("timeCoeff").V, NuMax: prms.Find("nuMax").V}
		res := ana.Evolution(c.KEff, times, c.NuMax)

		var buf bytes.Buffer
		io.Ff(&buf, "# k = %g, timeCoeff = %g, nuMax = %g\n", c.K, c.TimeCoeff, c.NuMax)
		for _, frac := range []float64{0.5, 0.9, 0.99} {
			ts, err := c.SaturationTime(frac)
			if err != nil {
				io.Ff(&buf, "# t%g: not reachable\n", frac*100)
				continue
			}
			io.Ff(&buf, "# t%g = %g\n", frac*100, ts)
		}
		io.Ff(&buf, "%23s%23s%23s%23s\n", "t", "keff", "dkdt", "norm")
		for _, s := range res {
			io.Ff(&buf, "%23.15e%23.15e%23.15e%23.15e\n", s.T, s.K, s.Dkdt, s.Norm)
		}
		cmd.Print(buf.String())

		var fig out.Figure
		t := make([]float64, len(res))
		k := make([]float64, len(res))
		dkdt := make([]float64, len(res))
		norm := make([]float64, len(res))
		for i, s := range res {
			t[i], k[i], dkdt[i], norm[i] = s.T, s.K, math.Abs(s.Dkdt), s.Norm
		}
		fig.Splot("keff", "effective consistency")
		if err = fig.Plot(t, k, "keff"); err != nil {
			return err
		}
		fig.Hline(c.NuMax)
		fig.SplotConfig("t", "keff", "s", "m²/s")
		fig.Splot("rate", "rate of change")
		if err = fig.Plot(t, dkdt, "|dkdt|"); err != nil {
			return err
		}
		fig.SplotConfig("t", "dkdt", "s", "m²/s²")
		fig.Splot("norm", "normalised consistency")
		if err = fig.Plot(t, norm, "keff/nuMax"); err != nil {
			return err
		}
		for _, frac := range []float64{0.5, 0.9, 0.99, 1} {
			fig.Hline(frac)
		}
		fig.SplotConfig("t", "norm", "s", "")
		return savePng(&fig)
	},
	DisableAutoGenTag: true,
}

// loadDict reads the viscosity dictionary or returns the example of a model
func loadDict() (inp.Dict, error) {
	path := os.ExpandEnv(Cfg.GetString("dict"))
	model := Cfg.GetString("model")
	if path == "" {
		if model == "" {
			return nil, chk.Err("either --dict or --model must be given")
		}
		return rheology.ExampleDict(model)
	}
	dict, err := inp.ReadDict(path)
	if err != nil {
		return nil, err
	}
	if model != "" {
		dict.Set(inp.ModelKey, model)
	}
	return dict, nil
}

// newModel allocates a model over one cell per strain rate with a fully active phase
func newModel(dict inp.Dict, rates []float64, t float64, log logrus.FieldLogger) (mdl rheology.Model, reg *fld.Registry, err error) {
	flow, err := sim.NewStaticFlow(fld.Layout{Ncells: len(rates)}, inp.Profile{Type: "list", Values: rates})
	if err != nil {
		return
	}
	reg = fld.NewRegistry()
	phase := fld.New(rheology.PhaseName, unit.Dimless, flow.Layout())
	phase.Fill(1)
	reg.Publish(phase)
	mdl, err = rheology.FromDict(&rheology.Args{U: flow, Dict: dict, Time: t, Fields: reg, Log: log})
	return
}

// parseRates parses min:max:number
func parseRates(s string, logscale bool) (rates []float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, chk.Err("strain rates must be given as min:max:number. %q is invalid", s)
	}
	lo, err := cast.ToFloat64E(parts[0])
	if err != nil {
		return nil, chk.Err("invalid minimum strain rate %q", parts[0])
	}
	hi, err := cast.ToFloat64E(parts[1])
	if err != nil {
		return nil, chk.Err("invalid maximum strain rate %q", parts[1])
	}
	n, err := cast.ToIntE(parts[2])
	if err != nil || n < 1 {
		return nil, chk.Err("invalid number of strain rates %q", parts[2])
	}
	if lo < 0 || hi < lo {
		return nil, chk.Err("strain rates must satisfy 0 ≤ min ≤ max. %q is invalid", s)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	if !logscale {
		return utl.LinSpace(lo, hi, n), nil
	}
	if lo <= 0 {
		return nil, chk.Err("logarithmic spacing requires min > 0. %q is invalid", s)
	}
	rates = utl.LinSpace(math.Log10(lo), math.Log10(hi), n)
	for i, x := range rates {
		rates[i] = math.Pow(10, x)
	}
	return
}

// timeSpace returns the output times given by t0, tf and np
func timeSpace() ([]float64, error) {
	t0, tf, np := Cfg.GetFloat64("t0"), Cfg.GetFloat64("tf"), Cfg.GetInt("np")
	if np < 2 || tf <= t0 || t0 < 0 {
		return nil, chk.Err("time space requires 0 ≤ t0 < tf and np ≥ 2. t0=%g, tf=%g, np=%d is invalid", t0, tf, np)
	}
	return utl.LinSpace(t0, tf, np), nil
}

// savePng saves figure if the png option is set
func savePng(fig *out.Figure) error {
	fn := Cfg.GetString("png")
	if fn == "" {
		return nil
	}
	return fig.Draw(os.ExpandEnv(Cfg.GetString("dirout")), fn, false)
}
