package metrics

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PrometheusExporter renders a Collector in the Prometheus text format, for
// node_exporter's textfile collector or a push gateway.
type PrometheusExporter struct {
	collector *Collector
	namespace string
}

// NewPrometheusExporter creates an exporter. The namespace is prepended to
// every metric name (e.g. "keycheck").
func NewPrometheusExporter(c *Collector, namespace string) *PrometheusExporter {
	return &PrometheusExporter{collector: c, namespace: namespace}
}

// WriteMetrics writes all metrics to w.
func (e *PrometheusExporter) WriteMetrics(w io.Writer) error {
	bw := bufio.NewWriter(w)
	snap := e.collector.Snapshot()
	labels := formatLabels(snap.Labels)

	e.writeHeader(bw, "validations_total", "counter", "Key pair validations by outcome")
	for _, o := range []struct {
		outcome string
		n       uint64
	}{
		{OutcomeValid, snap.Valid},
		{OutcomeMismatch, snap.Mismatches},
		{OutcomeProviderError, snap.ProviderErrors},
	} {
		e.writeMetric(bw, "validations_total", joinLabels(labels, `outcome="`+o.outcome+`"`), float64(o.n))
	}

	e.writeHeader(bw, "batches_total", "counter", "Completed batch runs")
	e.writeMetric(bw, "batches_total", labels, float64(snap.Batches))

	e.writeHeader(bw, "selftests_total", "counter", "Provider self-tests by result")
	e.writeMetric(bw, "selftests_total", joinLabels(labels, `result="pass"`), float64(snap.SelfTestsPassed))
	e.writeMetric(bw, "selftests_total", joinLabels(labels, `result="fail"`), float64(snap.SelfTestsFailed))

	e.writeHeader(bw, "uptime_seconds", "gauge", "Time since the collector was created")
	e.writeMetric(bw, "uptime_seconds", labels, snap.Uptime.Seconds())

	e.writeHistogram(bw, "validation_duration_microseconds",
		"Encapsulate-decapsulate round trip time in microseconds", labels, snap.Latency)

	return bw.Flush()
}

// WriteFile writes the metrics to path atomically, so a scraper never sees
// a partial file.
func (e *PrometheusExporter) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".keycheck-metrics-*")
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := e.WriteMetrics(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write metrics: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close metrics file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod metrics file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func (e *PrometheusExporter) writeHeader(w io.Writer, name, typ, help string) {
	fmt.Fprintf(w, "# HELP %s_%s %s\n", e.namespace, name, help)
	fmt.Fprintf(w, "# TYPE %s_%s %s\n", e.namespace, name, typ)
}

func (e *PrometheusExporter) writeMetric(w io.Writer, name, labels string, value float64) {
	if labels != "" {
		fmt.Fprintf(w, "%s_%s{%s} %g\n", e.namespace, name, labels, value)
	} else {
		fmt.Fprintf(w, "%s_%s %g\n", e.namespace, name, value)
	}
}

func (e *PrometheusExporter) writeHistogram(w io.Writer, name, help, labels string, h HistogramSummary) {
	e.writeHeader(w, name, "histogram", help)
	full := e.namespace + "_" + name

	for _, b := range h.Buckets {
		le := fmt.Sprintf("%g", b.UpperBound)
		if math.IsInf(b.UpperBound, 1) {
			le = "+Inf"
		}
		fmt.Fprintf(w, "%s_bucket{%s} %d\n", full, joinLabels(labels, `le="`+le+`"`), b.Count)
	}
	if labels != "" {
		fmt.Fprintf(w, "%s_sum{%s} %g\n", full, labels, h.Sum)
		fmt.Fprintf(w, "%s_count{%s} %d\n", full, labels, h.Count)
	} else {
		fmt.Fprintf(w, "%s_sum %g\n", full, h.Sum)
		fmt.Fprintf(w, "%s_count %d\n", full, h.Count)
	}
}

// formatLabels renders labels sorted by key.
func formatLabels(labels Labels) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", k, escapePromValue(labels[k])))
	}
	return strings.Join(parts, ",")
}

func joinLabels(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + "," + extra
}

func escapePromValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
