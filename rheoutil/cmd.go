// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rheoutil implements the command line interface of gorheo
package rheoutil

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version of gorheo
const Version = "1.0.0"

// Cfg holds configuration information
var Cfg *viper.Viper

// option defines one configuration option and the flag sets it belongs to
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	options = []option{
		{
			name:       "config",
			usage:      "configuration file (yaml, toml or json) with values for any of the flags",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "loglevel",
			usage:      "logging level: debug, info, warning or error",
			defaultVal: "warning",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "dict",
			usage:      "viscosity dictionary file (.json, .yaml or .toml)",
			shorthand:  "d",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "model",
			usage:      "model name; overrides transportModel or, without --dict, selects the example coefficients",
			shorthand:  "m",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "time",
			usage:      "time at which the viscosity is computed",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{curveCmd.Flags()},
		},
		{
			name:       "rates",
			usage:      "strain rates given as min:max:number",
			defaultVal: "0.01:100:50",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags()},
		},
		{
			name:       "logscale",
			usage:      "space strain rates logarithmically",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{curveCmd.Flags()},
		},
		{
			name:       "rate",
			usage:      "strain rate [1/s]",
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{evolveCmd.Flags()},
		},
		{
			name:       "t0",
			usage:      "initial time",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "tf",
			usage:      "final time",
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "np",
			usage:      "number of points",
			defaultVal: 101,
			flagsets:   []*pflag.FlagSet{evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "png",
			usage:      "file name of figure; e.g. curve.png. No figure is saved if empty",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "dirout",
			usage:      "directory for figures",
			defaultVal: "/tmp/gorheo",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags(), evolveCmd.Flags(), keffCmd.Flags()},
		},
		{
			name:       "watch",
			usage:      "reload the viscosity dictionary whenever it changes",
			shorthand:  "w",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "metrics",
			usage:      "address to expose metrics at /metrics; e.g. :9090. Disabled if empty",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "plot",
			usage:      "save figures of results",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// environment variables such as RHEO_LOGLEVEL
	Cfg.SetEnvPrefix("RHEO")
	Cfg.AutomaticEnv()

	for _, opt := range options {
		for i, set := range opt.flagsets {
			if i != 0 {
				set.AddFlag(opt.flagsets[0].Lookup(opt.name))
				continue
			}
			switch val := opt.defaultVal.(type) {
			case string:
				set.StringP(opt.name, opt.shorthand, val, opt.usage)
			case bool:
				set.BoolP(opt.name, opt.shorthand, val, opt.usage)
			case int:
				set.IntP(opt.name, opt.shorthand, val, opt.usage)
			case float64:
				set.Float64P(opt.name, opt.shorthand, val, opt.usage)
			default:
				chk.Panic("invalid type of default value of option %q", opt.name)
			}
			Cfg.BindPFlag(opt.name, set.Lookup(opt.name))
		}
	}
}

func init() {
	Root.AddCommand(versionCmd)
	Root.AddCommand(modelsCmd)
	Root.AddCommand(curveCmd)
	Root.AddCommand(evolveCmd)
	Root.AddCommand(keffCmd)
	Root.AddCommand(runCmd)
}

// setConfig reads the configuration file, if there is one
func setConfig() error {
	if path := Cfg.GetString("config"); path != "" {
		Cfg.SetConfigFile(os.ExpandEnv(path))
		if err := Cfg.ReadInConfig(); err != nil {
			return chk.Err("cannot read configuration file: %v", err)
		}
	}
	return nil
}

// newLogger returns a logger writing to the error stream of cmd
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(strings.ToLower(Cfg.GetString("loglevel")))
	if err != nil {
		return nil, chk.Err("invalid log level: %v", err)
	}
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	return log, nil
}

// Root is the main command
var Root = &cobra.Command{
	Use:   "rheo",
	Short: "Time-dependent yield-stress viscosity models",
	Long: `rheo evaluates time-dependent Herschel-Bulkley viscosity models: viscosity
versus strain rate, viscosity versus time, evolution of the effective consistency,
and runs over a prescribed flow with hot reload of coefficients.

Configuration can be given by flags, by a configuration file (--config) or by
environment variables in the format 'RHEO_var' where 'var' is the name of the flag.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gorheo v%s\n", Version)
	},
	DisableAutoGenTag: true,
}
