// SPDX-License-Identifier: MIT

// Package metrics exposes solver work counters as Prometheus collectors.
//
// A nil *Recorder is a valid no-op, so solvers call it unconditionally:
//
//	rec, err := metrics.NewRecorder(prometheus.DefaultRegisterer)
//	p, _ := mip.NewProblem(2, mip.WithMetrics(rec))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "exactlp"

// Solver label values.
const (
	SolverMIP    = "mip"
	SolverPIP    = "pip"
	SolverCompat = "compat"
)

// Tree node label values.
const (
	NodeDecision = "decision"
	NodeSolution = "solution"
)

// Recorder counts pivots, cuts and search nodes.
type Recorder struct {
	pivots      *prometheus.CounterVec
	cuts        *prometheus.CounterVec
	treeNodes   *prometheus.CounterVec
	bbNodes     prometheus.Counter
	fallbacks   prometheus.Counter
	artificials prometheus.Counter
}

// NewRecorder builds the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered (useful in tests).
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		pivots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pivots_total",
			Help:      "Number of tableau pivots performed, by solver.",
		}, []string{"solver"}),
		cuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cuts_total",
			Help:      "Number of Gomory cuts generated, by solver.",
		}, []string{"solver"}),
		treeNodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pip_nodes_total",
			Help:      "Number of parametric tree nodes built, by kind.",
		}, []string{"kind"}),
		bbNodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bb_nodes_total",
			Help:      "Number of branch-and-bound relaxations solved.",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_fallbacks_total",
			Help:      "Number of times a stalled pricing rule fell back to textbook pricing.",
		}),
		artificials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artificial_parameters_total",
			Help:      "Number of artificial parameters introduced by parametric cuts.",
		}),
	}
	if reg == nil {
		return r, nil
	}
	for _, c := range []prometheus.Collector{r.pivots, r.cuts, r.treeNodes, r.bbNodes, r.fallbacks, r.artificials} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Pivot counts one pivot of the given solver.
func (r *Recorder) Pivot(solver string) {
	if r == nil {
		return
	}
	r.pivots.WithLabelValues(solver).Inc()
}

// Cut counts one generated cut.
func (r *Recorder) Cut(solver string) {
	if r == nil {
		return
	}
	r.cuts.WithLabelValues(solver).Inc()
}

// TreeNode counts one parametric tree node of the given kind.
func (r *Recorder) TreeNode(kind string) {
	if r == nil {
		return
	}
	r.treeNodes.WithLabelValues(kind).Inc()
}

// BranchNode counts one branch-and-bound relaxation.
func (r *Recorder) BranchNode() {
	if r == nil {
		return
	}
	r.bbNodes.Inc()
}

// PricingFallback counts one switch to textbook pricing.
func (r *Recorder) PricingFallback() {
	if r == nil {
		return
	}
	r.fallbacks.Inc()
}

// ArtificialParameter counts one newly allocated artificial parameter.
func (r *Recorder) ArtificialParameter() {
	if r == nil {
		return
	}
	r.artificials.Inc()
}
