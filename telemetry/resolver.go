package telemetry

import (
	"context"

	"github.com/getverdict/verdict/policy"
)

// instrumentedResolver decorates a relationship resolver: every lookup
// runs inside a span and lands in the relation-check counter.
type instrumentedResolver[S, R any, Rel policy.Relation] struct {
	provider *Provider
	next     policy.RelationshipResolver[S, R, Rel]
}

// InstrumentResolver wraps next so its lookups are traced and counted by
// the provider. The decision semantics are untouched; errors pass through.
func InstrumentResolver[S, R any, Rel policy.Relation](p *Provider, next policy.RelationshipResolver[S, R, Rel]) policy.RelationshipResolver[S, R, Rel] {
	return &instrumentedResolver[S, R, Rel]{provider: p, next: next}
}

func (r *instrumentedResolver[S, R, Rel]) Holds(ctx context.Context, subject S, resource R, relation Rel) (bool, error) {
	ctx, span := r.provider.SpanRelationCheck(ctx, string(relation))
	held, err := r.next.Holds(ctx, subject, resource, relation)
	r.provider.RecordRelationCheck(ctx, string(relation), held)
	EndSpan(span, err)
	return held, err
}
