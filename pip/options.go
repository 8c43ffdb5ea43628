// SPDX-License-Identifier: MIT

// Package pip: functional configuration of the parametric solver.
// This file defines:
//   - CuttingStrategy and PivotRowStrategy,
//   - documented defaults (constants),
//   - WithX constructors with strict validation (panic on nonsensical values),
//   - gatherOptions, applying setters in order (last writer wins).
package pip

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/metrics"
)

// CuttingStrategy selects which non-integral rows receive a Gomory cut.
type CuttingStrategy uint8

const (
	// CutFirst cuts the first non-integral row.
	CutFirst CuttingStrategy = iota
	// CutDeepest cuts the row with the largest fractional depth: the ratio
	// of the fractional parts of its parametric part to those of its
	// variable part.
	CutDeepest
	// CutAll cuts every non-integral row at once.
	CutAll
)

var cuttingNames = [...]string{
	CutFirst:   "first",
	CutDeepest: "deepest",
	CutAll:     "all",
}

// String returns the strategy name.
func (c CuttingStrategy) String() string {
	if int(c) < len(cuttingNames) {
		return cuttingNames[c]
	}

	return fmt.Sprintf("CuttingStrategy(%d)", uint8(c))
}

// ParseCuttingStrategy is the inverse of CuttingStrategy.String.
func ParseCuttingStrategy(s string) (CuttingStrategy, error) {
	for i, name := range cuttingNames {
		if name == s {
			return CuttingStrategy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: cutting %q", ErrUnknownStrategy, s)
}

// PivotRowStrategy selects the negative row pivoted next.
type PivotRowStrategy uint8

const (
	// PivotRowFirst pivots the first negative row.
	PivotRowFirst PivotRowStrategy = iota
	// PivotRowMaxColumn pivots the negative row whose entering column is
	// lexicographically largest, which moves the solution the furthest.
	PivotRowMaxColumn
)

var pivotRowNames = [...]string{
	PivotRowFirst:     "first",
	PivotRowMaxColumn: "max-column",
}

// String returns the strategy name.
func (s PivotRowStrategy) String() string {
	if int(s) < len(pivotRowNames) {
		return pivotRowNames[s]
	}

	return fmt.Sprintf("PivotRowStrategy(%d)", uint8(s))
}

// ParsePivotRowStrategy is the inverse of PivotRowStrategy.String.
func ParsePivotRowStrategy(s string) (PivotRowStrategy, error) {
	for i, name := range pivotRowNames {
		if name == s {
			return PivotRowStrategy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: pivot row %q", ErrUnknownStrategy, s)
}

// Defaults (single source of truth).
const (
	DefaultCuttingStrategy  = CutFirst
	DefaultPivotRowStrategy = PivotRowFirst

	// DefaultLogLevel is the klog verbosity of node-level messages.
	DefaultLogLevel klog.Level = 4
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	cutting  CuttingStrategy
	pivotRow PivotRowStrategy
	recorder *metrics.Recorder
	logLevel klog.Level
}

// WithCuttingStrategy selects the rows receiving Gomory cuts.
// Panics on a value outside the declared set.
func WithCuttingStrategy(c CuttingStrategy) Option {
	if c > CutAll {
		panic(panicCuttingStrategy)
	}

	return func(o *Options) { o.cutting = c }
}

// WithPivotRowStrategy selects the negative row pivoted next.
// Panics on a value outside the declared set.
func WithPivotRowStrategy(s PivotRowStrategy) Option {
	if s > PivotRowMaxColumn {
		panic(panicPivotRowStrategy)
	}

	return func(o *Options) { o.pivotRow = s }
}

// WithMetrics attaches a metrics recorder; nil disables metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Options) { o.recorder = r }
}

// WithLogLevel sets the klog verbosity of node-level messages; per-pivot
// messages use two levels more.
func WithLogLevel(v klog.Level) Option {
	return func(o *Options) { o.logLevel = v }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		cutting:  DefaultCuttingStrategy,
		pivotRow: DefaultPivotRowStrategy,
		logLevel: DefaultLogLevel,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
