// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rheoutil

import (
	"context"
	"os"
	"os/signal"

	"github.com/cpmech/gorheo/inp"
	"github.com/cpmech/gorheo/sim"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run CASE.rheo",
	Short: "Run a viscosity model over a prescribed flow",
	Long: `run reads a case file, computes the viscosity from t0 to tf and writes a table
(and optionally figures) of results to the output directory of the case. With --watch,
the viscosity dictionary is read again whenever it changes and the new coefficients
are applied between time steps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		c, err := inp.ReadCase(args[0])
		if err != nil {
			return err
		}
		watch, addr := Cfg.GetBool("watch"), Cfg.GetString("metrics")
		if watch && c.Viscosity != nil {
			return chk.Err("--watch requires a dictionary file; case %q has an inline dictionary", c.Key)
		}

		var mon *sim.Monitor
		if addr != "" {
			mon = sim.NewMonitor()
		}
		d, err := sim.NewDriver(c, log, mon)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		g, gctx := errgroup.WithContext(ctx)
		if watch {
			w, err := sim.NewWatcher(c.DictPath, 0, d.Log, d.Reload)
			if err != nil {
				cancel()
				return err
			}
			g.Go(func() error { return w.Run(gctx) })
		}
		if mon != nil {
			g.Go(func() error { return mon.Serve(gctx, addr) })
		}
		err = d.Run(gctx)
		cancel()
		if gerr := g.Wait(); err == nil {
			err = gerr
		}
		if err != nil {
			return err
		}

		err = d.WriteResults(Cfg.GetBool("plot"))
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d steps; results written to %s\n", c.Key, d.Steps(), io.Sf("%s/%s.res", c.DirOut, d.FileKey()))
		return nil
	},
	DisableAutoGenTag: true,
}
