/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oceanmesh/omt/InputParameters"
	"github.com/oceanmesh/omt/boundary"
)

var (
	cfgFile    string
	paramsFile string
	verbose    bool
	profileRun bool

	logger   *zap.Logger
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "omt",
	Short: "Reads ADCIRC fort.14 meshes and rebuilds their boundary polylines",
	Long: `
Reads ADCIRC fort.14 meshes, validates the node, element and boundary tables and rebuilds
the open and land boundary arcs as polylines, split at spatial gaps, classified as coastline
or other by IBTYPE, and screened for suspiciously long edges.

omt summary fort.14
omt boundaries fort.14 --out debug/
omt plot fort.14 --gap-threshold 0.05`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logger, err = config.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if profileRun {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("file", f))
		}
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// Parameter keys, shared by the YAML parameter file, the config file and OMT_ environment variables
const (
	keyGapThreshold     = "gap_threshold"
	keyCoastlineIBTypes = "coastline_ibtypes"
	keyAnomalyThreshold = "anomaly_length_threshold"
	keyAnomalyCap       = "anomaly_cap"
	keyFailFast         = "fail_fast"
	keyMetric           = "metric"
	keyCoastSubtractTol = "coast_subtract_tol"
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.omt.yaml)")
	pf.StringVarP(&paramsFile, "params", "I", "", "YAML file with boundary parameters like:\n\t- gap_threshold\n\t- coastline_ibtypes")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&profileRun, "profile", false, "write a CPU profile of the run to the current directory")

	defaults := InputParameters.NewBoundaryParameters()
	pf.Float64(flagName(keyGapThreshold), defaults.GapThreshold,
		"split boundary arcs where consecutive nodes are further apart than this, 0 disables")
	pf.IntSlice(flagName(keyCoastlineIBTypes), defaults.CoastlineIBTypes, "IBTYPE codes drawn as coastline")
	pf.Float64("anomaly-threshold", defaults.AnomalyLengthThreshold,
		"flag boundary edges longer than this, 0 disables")
	pf.Int(flagName(keyAnomalyCap), defaults.AnomalyCap, "maximum number of anomalies reported")
	pf.Bool(flagName(keyFailFast), defaults.FailFast, "fail when any boundary edge is flagged")
	pf.String(flagName(keyMetric), defaults.Metric,
		fmt.Sprintf("distance metric, one of %v", InputParameters.MetricNames))
	pf.Float64(flagName(keyCoastSubtractTol), defaults.CoastSubtractTol,
		"drop coastline polylines lying within this distance of the open boundary, 0 disables")

	for key, flag := range map[string]string{
		keyGapThreshold:     flagName(keyGapThreshold),
		keyCoastlineIBTypes: flagName(keyCoastlineIBTypes),
		keyAnomalyThreshold: "anomaly-threshold",
		keyAnomalyCap:       flagName(keyAnomalyCap),
		keyFailFast:         flagName(keyFailFast),
		keyMetric:           flagName(keyMetric),
		keyCoastSubtractTol: flagName(keyCoastSubtractTol),
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		// Search config in home directory with name ".omt" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".omt")
	}
	viper.SetEnvPrefix("omt")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "error reading config file:", err)
		os.Exit(1)
	}
}

/*
resolveParameters layers the boundary parameters: defaults, then the YAML parameter file, then
anything set in the config file, the environment or on the command line.
*/
func resolveParameters(v *viper.Viper, fileName string) (bp *InputParameters.BoundaryParameters, err error) {
	bp = InputParameters.NewBoundaryParameters()
	if fileName != "" {
		if err = bp.ParseFile(fileName); err != nil {
			return nil, err
		}
	}
	if v.IsSet(keyGapThreshold) {
		bp.GapThreshold = v.GetFloat64(keyGapThreshold)
	}
	if v.IsSet(keyCoastlineIBTypes) {
		bp.CoastlineIBTypes = v.GetIntSlice(keyCoastlineIBTypes)
	}
	if v.IsSet(keyAnomalyThreshold) {
		bp.AnomalyLengthThreshold = v.GetFloat64(keyAnomalyThreshold)
	}
	if v.IsSet(keyAnomalyCap) {
		bp.AnomalyCap = v.GetInt(keyAnomalyCap)
	}
	if v.IsSet(keyFailFast) {
		bp.FailFast = v.GetBool(keyFailFast)
	}
	if v.IsSet(keyMetric) {
		bp.Metric = v.GetString(keyMetric)
	}
	if v.IsSet(keyCoastSubtractTol) {
		bp.CoastSubtractTol = v.GetFloat64(keyCoastSubtractTol)
	}
	if err = bp.Validate(); err != nil {
		return nil, err
	}
	return
}

func newEngine() (e *boundary.Engine, bp *InputParameters.BoundaryParameters, err error) {
	if bp, err = resolveParameters(viper.GetViper(), paramsFile); err != nil {
		return
	}
	if verbose {
		bp.Print(os.Stderr)
	}
	e, err = boundary.NewEngine(bp, logger)
	return
}
