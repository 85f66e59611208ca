package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	reconcileAdded   *prometheus.CounterVec
	reconcileUpdated *prometheus.CounterVec
	reconcileErrors  *prometheus.CounterVec
	transformMisses  *prometheus.CounterVec
	timestampClamps  prometheus.Counter
	recordsStored    *prometheus.CounterVec
}

// New creates and registers all counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reconcileAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blitz_reconcile_added_total",
			Help: "Keys added to a reference collection by reconcile",
		}, []string{"collection"}),
		reconcileUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blitz_reconcile_updated_total",
			Help: "Keys updated in a reference collection by reconcile",
		}, []string{"collection"}),
		reconcileErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blitz_reconcile_errors_total",
			Help: "Reconcile calls aborted by invalid data",
		}, []string{"collection"}),
		transformMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blitz_transform_misses_total",
			Help: "Payloads skipped because no conversion produced the target type",
		}, []string{"target"}),
		timestampClamps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blitz_timestamp_clamps_total",
			Help: "Upstream timestamps clamped to now due to clock skew",
		}),
		recordsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blitz_records_stored_total",
			Help: "Stat records upserted by kind",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		m.reconcileAdded,
		m.reconcileUpdated,
		m.reconcileErrors,
		m.transformMisses,
		m.timestampClamps,
		m.recordsStored,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReconcile records the size of one reconcile diff.
func (m *Metrics) ObserveReconcile(collection string, added, updated int) {
	if m == nil {
		return
	}
	m.reconcileAdded.WithLabelValues(collection).Add(float64(added))
	m.reconcileUpdated.WithLabelValues(collection).Add(float64(updated))
}

// ObserveReconcileError counts an aborted reconcile.
func (m *Metrics) ObserveReconcileError(collection string) {
	if m == nil {
		return
	}
	m.reconcileErrors.WithLabelValues(collection).Inc()
}

// ObserveTransformMiss counts payloads that could not be converted.
func (m *Metrics) ObserveTransformMiss(target string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.transformMisses.WithLabelValues(target).Add(float64(n))
}

// ObserveClamp counts clamped timestamps.
func (m *Metrics) ObserveClamp(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.timestampClamps.Add(float64(n))
}

// ObserveStored counts upserted stat records.
func (m *Metrics) ObserveStored(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsStored.WithLabelValues(kind).Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
