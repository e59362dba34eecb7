package policy

import (
	"context"
	"fmt"
	"strings"
)

// RebacPolicy implements relationship-based access control. It holds a
// RelationshipResolver and an ordered set of relations that are sufficient
// to grant the evaluated action. Relations are checked in declared order
// and the scan stops at the first relation that holds, so resolver lookups
// for later relations are never issued.
//
// A resolver lookup that fails (store unavailable, timeout) is treated as
// "relation not established", but the denial reason records the failure
// separately from a true absence so operators can tell an infrastructure
// fault from a real denial.
type RebacPolicy[S, A, R, C any, Rel Relation] struct {
	resolver  RelationshipResolver[S, R, Rel]
	relations []Rel
}

// NewRebacPolicy creates a relationship-based policy accepting the given
// relations, checked in the order declared here.
func NewRebacPolicy[S, A, R, C any, Rel Relation](
	resolver RelationshipResolver[S, R, Rel],
	first Rel, rest ...Rel,
) *RebacPolicy[S, A, R, C, Rel] {
	relations := make([]Rel, 0, len(rest)+1)
	relations = append(relations, first)
	relations = append(relations, rest...)
	return &RebacPolicy[S, A, R, C, Rel]{resolver: resolver, relations: relations}
}

func (p *RebacPolicy[S, A, R, C, Rel]) Name() string { return "RebacPolicy" }

func (p *RebacPolicy[S, A, R, C, Rel]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result {
	checked := make([]string, 0, len(p.relations))

	for _, rel := range p.relations {
		holds, err := p.resolver.Holds(ctx, subject, resource, rel)
		if err != nil {
			checked = append(checked, fmt.Sprintf("%s (lookup failed: %v)", string(rel), err))
			continue
		}
		if holds {
			return Grant(p.Name(), fmt.Sprintf("subject has %q relation to resource", string(rel)))
		}
		checked = append(checked, fmt.Sprintf("%s (not established)", string(rel)))
	}

	return Deny(p.Name(), "no accepted relation holds: "+strings.Join(checked, ", "))
}
