package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
)

// Span names for keycheck operations.
const (
	SpanValidate    = "keycheck.validate"
	SpanEncapsulate = "keycheck.encapsulate"
	SpanDecapsulate = "keycheck.decapsulate"
	SpanBatch       = "keycheck.batch"
	SpanSelfTest    = "keycheck.selftest"
)

// Span attribute keys.
const (
	AttrScheme  = attribute.Key("kem.scheme")
	AttrOutcome = attribute.Key("keycheck.outcome")
	AttrPair    = attribute.Key("keycheck.pair")
	AttrPairs   = attribute.Key("keycheck.pairs")
)

// SpanEnder ends a span. Pass nil for success or the error that failed the
// operation.
type SpanEnder func(err error)

// Tracer returns the keycheck tracer from tp, or from the global provider
// when tp is nil.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(constants.ToolName)
}

// StartSpan starts an internal span. A nil tracer uses the global provider.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, SpanEnder) {
	if tracer == nil {
		tracer = Tracer(nil)
	}
	ctx, span := tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
