// Package metrics provides the observability stack of quantum-keycheck.
//
// # Metrics
//
// A Collector counts validations by outcome and keeps a latency histogram
// in microseconds:
//
//	c := metrics.NewCollector(metrics.Labels{"host": "kms-1"})
//	c.RecordValid("Kyber1024", d)
//	snap := c.Snapshot()
//
// The same values are mirrored to OpenTelemetry instruments created from
// the global MeterProvider, or the one passed with WithMeterProvider.
//
// PrometheusExporter writes a Collector in the Prometheus text format,
// typically to a file picked up by node_exporter's textfile collector:
//
//	exp := metrics.NewPrometheusExporter(c, "keycheck")
//	err := exp.WriteFile("/var/lib/node_exporter/keycheck.prom")
//
// # Tracing
//
// StartSpan wraps an OpenTelemetry tracer and returns a SpanEnder that
// records the error and status:
//
//	ctx, end := metrics.StartSpan(ctx, tracer, metrics.SpanValidate,
//		metrics.AttrScheme.String(p.Name()))
//	defer func() { end(err) }()
//
// # Logging
//
// NewLogger builds a zap.Logger in text or JSON format. Key material is
// never logged; callers log fingerprints.
package metrics
