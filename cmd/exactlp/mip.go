// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/mip"
)

// NewCommandMIP builds "exactlp mip".
func NewCommandMIP(c *common) *cobra.Command {
	return &cobra.Command{
		Use:   "mip",
		Short: "Solve a mixed integer program",
		Long: "Solve a mixed integer program and print its status, the optimizing point " +
			"(or a feasible point when the problem is unbounded) and the objective value.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMIP(cmd, c)
		},
	}
}

func runMIP(cmd *cobra.Command, c *common) error {
	f, err := c.readProblem()
	if err != nil {
		return err
	}
	opts, err := c.cfg.MIPOptions()
	if err != nil {
		return err
	}
	p, err := f.MIP(append(opts, mip.WithMetrics(c.recorder))...)
	if err != nil {
		return err
	}

	ctx, cancel := c.solveContext(cmd.Context())
	defer cancel()
	st, err := p.Solve(ctx)
	if err != nil {
		return err
	}
	klog.V(2).Infof("exactlp: %s: %s", c.problemPath, st)

	out := cmd.OutOrStdout()
	if err := writeMIPResult(out, p, st, f.Dimensions); err != nil {
		return err
	}
	if c.dump {
		if err := p.Dump(out); err != nil {
			return err
		}
	}

	return c.writeMetrics(out)
}

func writeMIPResult(w io.Writer, p *mip.Problem, st mip.Status, names []string) error {
	if _, err := fmt.Fprintf(w, "status: %s\n", st); err != nil {
		return err
	}
	var (
		pt  mip.Point
		err error
	)
	switch st {
	case mip.Optimized:
		pt, err = p.OptimizingPoint()
	case mip.Unbounded:
		pt, err = p.FeasiblePoint()
	default:
		return nil
	}
	if err != nil {
		return err
	}
	for i := 0; i < pt.Dimension(); i++ {
		if _, err := fmt.Fprintf(w, "%s = %s\n", names[i], pt.Coordinate(i).RatString()); err != nil {
			return err
		}
	}
	if st != mip.Optimized {
		return nil
	}
	v, err := p.ObjectiveValue()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "objective = %s\n", v.RatString())

	return err
}
