package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/getverdict/verdict/policy"
)

// ObserveEvaluation implements the checker observer contract so a Provider
// can be wired directly into a PermissionChecker: each decision increments
// the decision counter and records the evaluation duration. If the caller's
// context carries an active span, the decision is attached to it as a span
// event.
func (p *Provider) ObserveEvaluation(ctx context.Context, event policy.Event) {
	p.RecordDecision(ctx, event.Policy, event.Granted, event.Duration)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		AddSpanEvent(span, "verdict.decision",
			attribute.String(AttrPolicy, event.Policy),
			attribute.Bool(AttrDecision, event.Granted),
			attribute.String(AttrReason, event.Reason),
		)
	}
}

var _ policy.Observer = (*Provider)(nil)
