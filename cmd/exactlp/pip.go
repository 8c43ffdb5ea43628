// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/pip"
	"github.com/katalvlaran/exactlp/problemfile"
)

// NewCommandPIP builds "exactlp pip".
func NewCommandPIP(c *common) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "pip",
		Short: "Solve a parametric integer program",
		Long: "Solve a parametric integer program and print its solution tree, or, with --at, " +
			"the lexicographic minimum for one assignment of the parameters.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPIP(cmd, c, at)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Parameter assignment, e.g. n=2,m=3")

	return cmd
}

func runPIP(cmd *cobra.Command, c *common, at string) error {
	f, err := c.readProblem()
	if err != nil {
		return err
	}
	opts, err := c.cfg.PIPOptions()
	if err != nil {
		return err
	}
	p, err := f.PIP(append(opts, pip.WithMetrics(c.recorder))...)
	if err != nil {
		return err
	}
	var params []*big.Int
	if at != "" {
		if params, err = f.Assignment(at); err != nil {
			return err
		}
	}

	ctx, cancel := c.solveContext(cmd.Context())
	defer cancel()
	tree, err := p.Solve(ctx)
	if err != nil {
		return err
	}
	klog.V(2).Infof("exactlp: %s: %d decisions, %d solutions", c.problemPath, pip.NumDecisions(tree), pip.NumSolutions(tree))

	out := cmd.OutOrStdout()
	if params != nil {
		err = writeAssignment(out, tree, params, p.Variables(), f)
	} else {
		err = pip.Print(out, tree, f.Dimensions)
	}
	if err != nil {
		return err
	}
	if c.dump {
		if err := p.Dump(out); err != nil {
			return err
		}
	}

	return c.writeMetrics(out)
}

func writeAssignment(w io.Writer, tree pip.Node, params []*big.Int, vars []int, f *problemfile.File) error {
	values, ok, err := pip.Evaluate(tree, params)
	if err != nil {
		return err
	}
	if !ok {
		_, err = io.WriteString(w, "_|_\n")

		return err
	}
	parts := make([]string, len(values))
	for k, v := range values {
		parts[k] = fmt.Sprintf("%s = %s", f.Dimensions[vars[k]], v)
	}
	_, err = fmt.Fprintf(w, "{%s}\n", strings.Join(parts, ", "))

	return err
}
