package keycheck

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

// Validator runs Validate for one provider and reports each result to a
// tracer, an optional Collector and a logger.
type Validator struct {
	provider  kem.Provider
	tracer    trace.Tracer
	collector *metrics.Collector
	log       *otelzap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithTracer sets the tracer. Defaults to the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(v *Validator) {
		v.tracer = t
	}
}

// WithCollector records every outcome in c.
func WithCollector(c *metrics.Collector) Option {
	return func(v *Validator) {
		v.collector = c
	}
}

// WithLogger sets the logger. Entries are also attached to the active span
// as events.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l == nil {
			l = zap.NewNop()
		}
		v.log = otelzap.New(l, otelzap.WithMinLevel(zapcore.DebugLevel))
	}
}

// New creates a Validator for p.
func New(p kem.Provider, opts ...Option) *Validator {
	v := &Validator{
		provider: p,
		tracer:   metrics.Tracer(nil),
		log:      otelzap.New(zap.NewNop()),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Provider returns the provider the Validator was built with.
func (v *Validator) Provider() kem.Provider {
	return v.provider
}

// Scheme returns the provider's name, or "" without a provider.
func (v *Validator) Scheme() string {
	if v.provider == nil {
		return ""
	}
	return v.provider.Name()
}

// Validate is Validate with tracing, metrics and logging. A context that is
// already done returns its error without touching the provider; once
// started, the round trip runs to completion.
func (v *Validator) Validate(ctx context.Context, pk, sk []byte) error {
	return v.validate(ctx, "", pk, sk)
}

func (v *Validator) validate(ctx context.Context, pair string, pk, sk []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scheme := v.Scheme()
	attrs := []attribute.KeyValue{metrics.AttrScheme.String(scheme)}
	if pair != "" {
		attrs = append(attrs, metrics.AttrPair.String(pair))
	}
	ctx, end := metrics.StartSpan(ctx, v.tracer, metrics.SpanValidate, attrs...)

	var p kem.Provider
	if v.provider != nil {
		p = tracedProvider{Provider: v.provider, ctx: ctx, tracer: v.tracer}
	}

	start := time.Now()
	err := Validate(p, pk, sk)
	elapsed := time.Since(start)

	outcome := Classify(err)
	trace.SpanFromContext(ctx).SetAttributes(metrics.AttrOutcome.String(outcome.String()))
	v.record(scheme, outcome, elapsed)

	fields := []zap.Field{
		zap.String("scheme", scheme),
		zap.Stringer("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	if pair != "" {
		fields = append(fields, zap.String("pair", pair))
	}
	if outcome == OutcomeProviderError {
		fields = append(fields, zap.Error(err))
	}
	v.log.Ctx(ctx).Debug("key pair checked", fields...)

	end(err)
	return err
}

func (v *Validator) record(scheme string, outcome Outcome, d time.Duration) {
	if v.collector == nil {
		return
	}
	switch outcome {
	case OutcomeValid:
		v.collector.RecordValid(scheme, d)
	case OutcomeMismatch:
		v.collector.RecordMismatch(scheme, d)
	default:
		v.collector.RecordProviderError(scheme, d)
	}
}
