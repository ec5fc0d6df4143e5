package keycheck

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/sara-star-quant/quantum-keycheck/pkg/kem"
	"github.com/sara-star-quant/quantum-keycheck/pkg/metrics"
)

// tracedProvider opens a child span of ctx around each provider call.
type tracedProvider struct {
	kem.Provider
	ctx    context.Context
	tracer trace.Tracer
}

func (p tracedProvider) Encapsulate(pk []byte) (ss, ct []byte, err error) {
	_, end := metrics.StartSpan(p.ctx, p.tracer, metrics.SpanEncapsulate,
		metrics.AttrScheme.String(p.Name()))
	ss, ct, err = p.Provider.Encapsulate(pk)
	end(err)
	return ss, ct, err
}

func (p tracedProvider) Decapsulate(ct, sk []byte) ([]byte, error) {
	_, end := metrics.StartSpan(p.ctx, p.tracer, metrics.SpanDecapsulate,
		metrics.AttrScheme.String(p.Name()))
	ss, err := p.Provider.Decapsulate(ct, sk)
	end(err)
	return ss, err
}
