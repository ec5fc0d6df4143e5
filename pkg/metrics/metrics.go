package metrics

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
)

// Outcome labels recorded for each validation.
const (
	OutcomeValid         = "valid"
	OutcomeMismatch      = "mismatch"
	OutcomeProviderError = "provider_error"
)

// Collector aggregates validation metrics. Counts are kept in process for
// Snapshot and the Prometheus exporter, and mirrored to OpenTelemetry
// instruments so an installed MeterProvider sees the same values.
type Collector struct {
	validations    atomic.Uint64
	valid          atomic.Uint64
	mismatches     atomic.Uint64
	providerErrors atomic.Uint64

	batches         atomic.Uint64
	selfTestsPassed atomic.Uint64
	selfTestsFailed atomic.Uint64

	latency *Histogram

	otelValidations metric.Int64Counter
	otelDuration    metric.Float64Histogram
	otelSelfTests   metric.Int64Counter

	createdAt atomic.Int64 // unix nanoseconds
	labels    Labels
}

// Labels are constant key-value pairs attached to every exported series.
type Labels map[string]string

// CollectorOption configures a Collector.
type CollectorOption func(*collectorConfig)

type collectorConfig struct {
	meterProvider metric.MeterProvider
	buckets       []float64
}

// WithMeterProvider sets the OpenTelemetry MeterProvider instruments are
// created from. The global provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) CollectorOption {
	return func(c *collectorConfig) {
		c.meterProvider = mp
	}
}

// WithLatencyBuckets overrides LatencyBuckets.
func WithLatencyBuckets(b []float64) CollectorOption {
	return func(c *collectorConfig) {
		c.buckets = b
	}
}

// NewCollector creates a collector.
func NewCollector(labels Labels, opts ...CollectorOption) *Collector {
	cfg := collectorConfig{buckets: LatencyBuckets}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.meterProvider == nil {
		cfg.meterProvider = otel.GetMeterProvider()
	}
	if labels == nil {
		labels = make(Labels)
	}

	c := &Collector{
		latency: NewHistogram(cfg.buckets),
		labels:  labels,
	}
	c.createdAt.Store(time.Now().UnixNano())
	c.initInstruments(cfg.meterProvider.Meter(constants.ToolName), cfg.buckets)
	return c
}

func (c *Collector) initInstruments(m metric.Meter, buckets []float64) {
	var err error
	fallback := noop.Meter{}

	c.otelValidations, err = m.Int64Counter("keycheck.validations",
		metric.WithDescription("Key pair validations by outcome"))
	if err != nil {
		otel.Handle(err)
		c.otelValidations, _ = fallback.Int64Counter("keycheck.validations")
	}

	c.otelDuration, err = m.Float64Histogram("keycheck.validation.duration",
		metric.WithDescription("Encapsulate-decapsulate round trip time"),
		metric.WithUnit("us"),
		metric.WithExplicitBucketBoundaries(buckets...))
	if err != nil {
		otel.Handle(err)
		c.otelDuration, _ = fallback.Float64Histogram("keycheck.validation.duration")
	}

	c.otelSelfTests, err = m.Int64Counter("keycheck.selftests",
		metric.WithDescription("Provider self-tests by result"))
	if err != nil {
		otel.Handle(err)
		c.otelSelfTests, _ = fallback.Int64Counter("keycheck.selftests")
	}
}

// RecordValid records a pair that validated.
func (c *Collector) RecordValid(scheme string, d time.Duration) {
	c.valid.Add(1)
	c.record(scheme, OutcomeValid, d)
}

// RecordMismatch records a pair whose shared secrets differed.
func (c *Collector) RecordMismatch(scheme string, d time.Duration) {
	c.mismatches.Add(1)
	c.record(scheme, OutcomeMismatch, d)
}

// RecordProviderError records a validation the provider failed to complete.
func (c *Collector) RecordProviderError(scheme string, d time.Duration) {
	c.providerErrors.Add(1)
	c.record(scheme, OutcomeProviderError, d)
}

func (c *Collector) record(scheme, outcome string, d time.Duration) {
	c.validations.Add(1)
	us := float64(d.Microseconds())
	c.latency.Observe(us)

	attrs := metric.WithAttributes(
		attribute.String("kem.scheme", scheme),
		attribute.String("outcome", outcome),
	)
	ctx := context.Background()
	c.otelValidations.Add(ctx, 1, attrs)
	c.otelDuration.Record(ctx, us, attrs)
}

// RecordBatch counts a completed batch run.
func (c *Collector) RecordBatch() {
	c.batches.Add(1)
}

// RecordSelfTest counts a provider self-test result.
func (c *Collector) RecordSelfTest(scheme string, passed bool) {
	if passed {
		c.selfTestsPassed.Add(1)
	} else {
		c.selfTestsFailed.Add(1)
	}
	c.otelSelfTests.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("kem.scheme", scheme),
		attribute.Bool("passed", passed),
	))
}

// Snapshot is a point-in-time copy of a Collector.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Uptime    time.Duration `json:"uptime"`

	Validations    uint64 `json:"validations"`
	Valid          uint64 `json:"valid"`
	Mismatches     uint64 `json:"mismatches"`
	ProviderErrors uint64 `json:"provider_errors"`

	Batches         uint64 `json:"batches"`
	SelfTestsPassed uint64 `json:"selftests_passed"`
	SelfTestsFailed uint64 `json:"selftests_failed"`

	// Latency is in microseconds.
	Latency HistogramSummary `json:"latency"`

	Labels Labels `json:"labels,omitempty"`
}

// Snapshot returns the current counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:       time.Now(),
		Uptime:          time.Since(time.Unix(0, c.createdAt.Load())),
		Validations:     c.validations.Load(),
		Valid:           c.valid.Load(),
		Mismatches:      c.mismatches.Load(),
		ProviderErrors:  c.providerErrors.Load(),
		Batches:         c.batches.Load(),
		SelfTestsPassed: c.selfTestsPassed.Load(),
		SelfTestsFailed: c.selfTestsFailed.Load(),
		Latency:         c.latency.Summary(),
		Labels:          c.labels,
	}
}

// Reset clears the in-process counters. OpenTelemetry instruments are
// cumulative and are not affected.
func (c *Collector) Reset() {
	c.validations.Store(0)
	c.valid.Store(0)
	c.mismatches.Store(0)
	c.providerErrors.Store(0)
	c.batches.Store(0)
	c.selfTestsPassed.Store(0)
	c.selfTestsFailed.Store(0)
	c.latency.Reset()
	c.createdAt.Store(time.Now().UnixNano())
}
