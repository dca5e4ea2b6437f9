package app

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dshills/inkwell/internal/engine/state"
	"github.com/dshills/inkwell/internal/input/mode"
	"github.com/dshills/inkwell/internal/reconcile"
)

const metricsNamespace = "inkwell"

// Metrics exports editor activity as Prometheus counters. It implements
// engine.Observer and reconcile.Observer. A nil *Metrics records nothing.
type Metrics struct {
	edits        *prometheus.CounterVec
	native       *prometheus.CounterVec
	compositions *prometheus.CounterVec
	rebuilds     prometheus.Counter
	recoveries   prometheus.Counter
	events       *prometheus.CounterVec
	modeChanges  *prometheus.CounterVec
}

// NewMetrics creates the editor metrics and registers them with reg. A
// nil reg creates unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: change (the change type of the pushed edit)
		edits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "edits_total",
			Help:      "Edits pushed onto the editor state by change type",
		}, []string{"change"}),

		// Labels: accepted (true when the host kept its own rendering)
		native: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "native_inserts_total",
			Help:      "Host-originated insertions by fast path result",
		}, []string{"accepted"}),

		// Labels: cause (end, implicit, timeout), outcome (noop, native, rebuilt)
		compositions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "composition",
			Name:      "commits_total",
			Help:      "Composition sessions committed",
		}, []string{"cause", "outcome"}),

		rebuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "host",
			Name:      "rebuilds_total",
			Help:      "Host surface rebuilds requested",
		}),

		recoveries: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "host",
			Name:      "selection_recoveries_total",
			Help:      "Host selections that could not be resolved",
		}),

		// Labels: mode, event
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "editor",
			Name:      "events_total",
			Help:      "Host events dispatched by mode and kind",
		}, []string{"mode", "event"}),

		// Labels: from, to
		modeChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "editor",
			Name:      "mode_changes_total",
			Help:      "Input mode transitions",
		}, []string{"from", "to"}),
	}
}

// EditApplied implements engine.Observer.
func (m *Metrics) EditApplied(ct state.ChangeType) {
	if m == nil {
		return
	}
	m.edits.WithLabelValues(ct.String()).Inc()
}

// NativeInsert implements engine.Observer.
func (m *Metrics) NativeInsert(accepted bool) {
	if m == nil {
		return
	}
	m.native.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}

// CompositionCommitted implements reconcile.Observer.
func (m *Metrics) CompositionCommitted(cause reconcile.Cause, outcome reconcile.Outcome) {
	if m == nil {
		return
	}
	m.compositions.WithLabelValues(cause.String(), outcome.String()).Inc()
}

// HostRebuilt implements reconcile.Observer.
func (m *Metrics) HostRebuilt() {
	if m == nil {
		return
	}
	m.rebuilds.Inc()
}

// SelectionRecovered implements reconcile.Observer.
func (m *Metrics) SelectionRecovered() {
	if m == nil {
		return
	}
	m.recoveries.Inc()
}

// EventDispatched records one dispatched host event.
func (m *Metrics) EventDispatched(md mode.Mode, kind EventKind) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(md.String(), kind.String()).Inc()
}

// ModeChanged records a mode transition.
func (m *Metrics) ModeChanged(from, to mode.Mode) {
	if m == nil {
		return
	}
	m.modeChanges.WithLabelValues(from.String(), to.String()).Inc()
}
