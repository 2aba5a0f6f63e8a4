package node

import (
	"go/ast"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible metrics for code-generation
// tooling built on this package.
//
// Metrics exposed (all namespaced with "graphgen_"):
//
// 1. registered_kinds (gauge): Number of node kinds a Registry can decode.
//
// 2. decodes_total (counter): Definition decode attempts.
// Labels: kind, status (ok/error).
//
// 3. expressions_total (counter): Call expressions synthesized through an
// instrumented evaluator. Labels: kind (fn/expr), stateful (true/false).
//
// 4. manifest_deps (gauge): Size of the most recently aggregated
// dependency manifest.
//
// The descriptor layer itself stays pure: nothing here is touched unless a
// collector is attached explicitly via WithMetrics or Instrument.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := node.NewMetrics(registry)
//	kinds := node.DefaultRegistry(node.WithMetrics(metrics))
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// Thread-safe: collectors are safe for concurrent use; Enable and Disable
// are guarded by a mutex.
type Metrics struct {
	registeredKinds prometheus.Gauge
	decodes         *prometheus.CounterVec
	expressions     *prometheus.CounterVec
	manifestDeps    prometheus.Gauge

	mu      sync.RWMutex
	enabled bool
}

// NewMetrics creates and registers all graphgen metrics with the provided
// Prometheus registry. A nil registry falls back to the global default
// registerer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		enabled: true,
		registeredKinds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "graphgen",
			Name:      "registered_kinds",
			Help:      "Number of node kinds registered for decoding.",
		}),
		decodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphgen",
			Name:      "decodes_total",
			Help:      "Node definition decode attempts by kind and status.",
		}, []string{"kind", "status"}),
		expressions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphgen",
			Name:      "expressions_total",
			Help:      "Call expressions synthesized by evaluator kind.",
		}, []string{"kind", "stateful"}),
		manifestDeps: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "graphgen",
			Name:      "manifest_deps",
			Help:      "Dependencies in the most recently aggregated manifest.",
		}),
	}
}

// Enable turns metric recording on. Metrics are enabled by default.
func (m *Metrics) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}

// Disable turns metric recording off without unregistering collectors.
func (m *Metrics) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

func (m *Metrics) recording() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// ObserveManifest records the size of an aggregated dependency manifest.
func (m *Metrics) ObserveManifest(deps []Dep) {
	if !m.recording() {
		return
	}
	m.manifestDeps.Set(float64(len(deps)))
}

func (m *Metrics) kindsRegistered(n int) {
	if !m.recording() {
		return
	}
	m.registeredKinds.Set(float64(n))
}

func (m *Metrics) decoded(kind string, err error) {
	if !m.recording() {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.decodes.WithLabelValues(kind, status).Inc()
}

// Instrument wraps an evaluator so every synthesized expression increments
// the expressions_total counter under the given kind label. Arity queries
// pass straight through.
func Instrument(ev Evaluator, m *Metrics, kind string) Evaluator {
	return instrumented{ev: ev, m: m, kind: kind}
}

type instrumented struct {
	ev   Evaluator
	m    *Metrics
	kind string
}

func (i instrumented) NInputs() uint32  { return i.ev.NInputs() }
func (i instrumented) NOutputs() uint32 { return i.ev.NOutputs() }

func (i instrumented) Expr(args []ast.Expr, stateful bool) ast.Expr {
	expr := i.ev.Expr(args, stateful)
	if i.m.recording() {
		label := "false"
		if stateful {
			label = "true"
		}
		i.m.expressions.WithLabelValues(i.kind, label).Inc()
	}
	return expr
}
