// SPDX-License-Identifier: MIT

// Package mip: functional configuration of the simplex engine.
// This file defines:
//   - Pricing (entering-column rules),
//   - documented defaults (constants),
//   - WithX constructors with strict validation (panic on nonsensical values),
//   - gatherOptions, applying setters in order (last writer wins).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Every option is observable: pricing and stall threshold are part of
//     the text dump and can be changed on a live Problem.
package mip

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/katalvlaran/exactlp/metrics"
)

// Pricing selects how the entering column of a pivot is chosen.
type Pricing uint8

const (
	// PricingSteepestEdgeFloat ranks improving columns by the steepest-edge
	// score computed in floating point. Only the choice is approximate;
	// every pivot stays exact.
	PricingSteepestEdgeFloat Pricing = iota
	// PricingSteepestEdgeExact computes the same score with rationals.
	PricingSteepestEdgeExact
	// PricingTextbook takes the first improving column (Bland's rule).
	PricingTextbook
)

var pricingNames = [...]string{
	PricingSteepestEdgeFloat: "steepest-edge-float",
	PricingSteepestEdgeExact: "steepest-edge-exact",
	PricingTextbook:          "textbook",
}

// String returns the rule name.
func (p Pricing) String() string {
	if int(p) < len(pricingNames) {
		return pricingNames[p]
	}

	return fmt.Sprintf("Pricing(%d)", uint8(p))
}

// ParsePricing is the inverse of Pricing.String.
func ParsePricing(s string) (Pricing, error) {
	for i, name := range pricingNames {
		if name == s {
			return Pricing(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPricing, s)
}

// Defaults (single source of truth).
const (
	// DefaultPricing is the floating-point steepest-edge rule.
	DefaultPricing = PricingSteepestEdgeFloat

	// DefaultStallThreshold is the number of consecutive non-improving
	// (degenerate) pivots after which a phase falls back to textbook pricing.
	DefaultStallThreshold = 200

	// DefaultLogLevel is the klog verbosity of phase-level messages.
	DefaultLogLevel klog.Level = 4
)

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	pricing        Pricing
	stallThreshold int
	recorder       *metrics.Recorder
	logLevel       klog.Level
}

// WithPricing selects the entering-column rule.
// Panics on a value outside the declared Pricing set.
func WithPricing(p Pricing) Option {
	if p > PricingTextbook {
		panic(panicPricing)
	}

	return func(o *Options) { o.pricing = p }
}

// WithStallThreshold sets how many consecutive degenerate pivots trigger the
// fallback to textbook pricing.
// Panics when n is not positive.
func WithStallThreshold(n int) Option {
	if n <= 0 {
		panic(panicStallThreshold)
	}

	return func(o *Options) { o.stallThreshold = n }
}

// WithMetrics attaches a metrics recorder; nil disables metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *Options) { o.recorder = r }
}

// WithLogLevel sets the klog verbosity used for phase-level messages;
// per-pivot messages use two levels more.
func WithLogLevel(v klog.Level) Option {
	return func(o *Options) { o.logLevel = v }
}

// gatherOptions applies user setters over the defaults, in order.
func gatherOptions(user ...Option) Options {
	o := Options{
		pricing:        DefaultPricing,
		stallThreshold: DefaultStallThreshold,
		logLevel:       DefaultLogLevel,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
