package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys
const (
	AttrPolicy   = "verdict.policy.name"
	AttrDecision = "verdict.policy.decision"
	AttrReason   = "verdict.policy.reason"
	AttrRelation = "verdict.relation.name"
)

// SpanOptions provides configuration for span creation.
type SpanOptions struct {
	Policy   string
	Relation string
}

// StartSpan starts a new span with common Verdict attributes.
func (p *Provider) StartSpan(ctx context.Context, name string, opts SpanOptions) (context.Context, trace.Span) {
	tracer := p.Tracer()
	if tracer == nil {
		return ctx, nil
	}

	attrs := []attribute.KeyValue{}

	if opts.Policy != "" {
		attrs = append(attrs, attribute.String(AttrPolicy, opts.Policy))
	}
	if opts.Relation != "" {
		attrs = append(attrs, attribute.String(AttrRelation, opts.Relation))
	}

	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// SpanEvaluation starts a span for a checker evaluation.
func (p *Provider) SpanEvaluation(ctx context.Context, checker string) (context.Context, trace.Span) {
	return p.StartSpan(ctx, "verdict.evaluate", SpanOptions{
		Policy: checker,
	})
}

// SpanRelationCheck starts a span for a relationship lookup.
func (p *Provider) SpanRelationCheck(ctx context.Context, relation string) (context.Context, trace.Span) {
	return p.StartSpan(ctx, "verdict.relation.check", SpanOptions{
		Relation: relation,
	})
}

// ---- Utility Functions ----

// SetSpanError marks a span as having an error.
func SetSpanError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanSuccess marks a span as successful.
func SetSpanSuccess(span trace.Span) {
	if span == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span.
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// EndSpan ends a span with optional error handling.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		SetSpanError(span, err)
	} else {
		SetSpanSuccess(span)
	}
	span.End()
}
