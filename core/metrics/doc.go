// Package metrics exposes Prometheus counters for ingestion and reconcile.
//
// Counters live on a dedicated registry owned by Metrics rather than the
// global default, so tests can create isolated instances. All Observe
// methods are safe on a nil *Metrics, which lets services run without
// metrics wired.
//
// The Handler method adapts promhttp to a Fiber route:
//
//	m := metrics.New()
//	app.Get("/metrics", m.Handler())
package metrics
