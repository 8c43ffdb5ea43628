// SPDX-License-Identifier: MIT

package main

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/metrics"
	"github.com/katalvlaran/exactlp/problemfile"
)

// common holds the state shared by every subcommand.
type common struct {
	v           *viper.Viper
	klogFlags   *goflag.FlagSet
	configPath  string
	problemPath string
	dump        bool
	showMetrics bool

	cfg      problemfile.Config
	registry *prometheus.Registry
	recorder *metrics.Recorder
}

// NewCommandRoot builds the exactlp command tree writing to out and errOut.
func NewCommandRoot(out, errOut io.Writer) *cobra.Command {
	c := &common{v: problemfile.NewViper(), klogFlags: goflag.NewFlagSet("klog", goflag.ContinueOnError)}
	klog.InitFlags(c.klogFlags)

	root := &cobra.Command{
		Use:           "exactlp",
		Short:         "Exact rational and integer linear programming",
		Long:          "Solve mixed integer programs and parametric integer programs with exact arithmetic.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Configuration file (YAML, TOML or JSON)")
	flags.StringVarP(&c.problemPath, "file", "f", "", "Problem file")
	flags.BoolVar(&c.dump, "dump", false, "Print the text dump of the solved problem")
	flags.BoolVar(&c.showMetrics, "metrics", false, "Print solver counters after solving")
	flags.String("pricing", "", "Entering-column rule of the simplex (mip)")
	flags.Int("stall-threshold", 0, "Degenerate pivots before falling back to textbook pricing (mip)")
	flags.String("cutting-strategy", "", "Rows receiving Gomory cuts: first, deepest or all (pip)")
	flags.String("pivot-row-strategy", "", "Negative row pivoted next: first or max-column (pip)")
	flags.Duration("timeout", 0, "Abandon the solve after this long (0 means never)")
	flags.AddGoFlagSet(c.klogFlags)
	c.bindFlags(flags)

	root.AddCommand(NewCommandMIP(c))
	root.AddCommand(NewCommandPIP(c))

	return root
}

func (c *common) bindFlags(flags *pflag.FlagSet) {
	for key, name := range map[string]string{
		problemfile.KeyPricing:          "pricing",
		problemfile.KeyStallThreshold:   "stall-threshold",
		problemfile.KeyCuttingStrategy:  "cutting-strategy",
		problemfile.KeyPivotRowStrategy: "pivot-row-strategy",
		problemfile.KeyTimeout:          "timeout",
	} {
		// BindPFlag only fails on a nil flag.
		_ = c.v.BindPFlag(key, flags.Lookup(name))
	}
}

// setup loads the configuration and prepares logging and metrics.
func (c *common) setup(cmd *cobra.Command) error {
	cfg, err := problemfile.LoadConfig(c.v, c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Flags win over the configured verbosity.
	if f := cmd.Flag("v"); f != nil && !f.Changed && cfg.Verbosity > 0 {
		if err := c.klogFlags.Set("v", strconv.Itoa(cfg.Verbosity)); err != nil {
			return err
		}
	}

	c.registry = prometheus.NewRegistry()
	c.recorder, err = metrics.NewRecorder(c.registry)

	return err
}

// solveContext bounds ctx by the configured timeout.
func (c *common) solveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, c.cfg.Timeout)
	}

	return context.WithCancel(ctx)
}

func (c *common) readProblem() (*problemfile.File, error) {
	if c.problemPath == "" {
		return nil, fmt.Errorf("no problem file: use -f")
	}

	return problemfile.ReadFile(c.problemPath)
}

// writeMetrics prints every gathered counter in the Prometheus text format.
func (c *common) writeMetrics(w io.Writer) error {
	if !c.showMetrics {
		return nil
	}
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
