// Package policy implements a composable authorization decision engine.
//
// A Policy is a single decision unit that checks whether a subject may
// perform an action on a resource within a given evaluation context. The
// package provides combinators (And, Or, Not) for composing policies,
// built-in role-based (RbacPolicy), attribute-based (AbacPolicy) and
// relationship-based (RebacPolicy) evaluators, a staged Builder for ad-hoc
// predicate policies, and a PermissionChecker that aggregates heterogeneous
// policies with OR semantics.
//
// Every evaluation produces a Result: a decision plus a structured trace
// mirroring the policy composition, recording exactly which policies ran,
// in what order, and why they decided the way they did. The trace is the
// audit record; short-circuited siblings never appear in it.
//
// Policies are immutable once constructed and safe to share across
// concurrently running evaluations.
package policy

import "context"

// Policy is the uniform evaluation contract every policy implements.
// It is generic over the subject, action, resource and evaluation-context
// types supplied by the embedding application; the package places no
// structural requirements on them.
type Policy[S, A, R, C any] interface {
	// Name identifies the policy in traces and evaluation events.
	Name() string

	// Evaluate decides whether subject may perform action on resource,
	// taking the evaluation context env into account. It always returns a
	// well-formed Result; failures of underlying collaborators (resolvers,
	// predicates) fold into a denial rather than surfacing as errors.
	Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result
}

// Relation constrains relation types to string-like values so trace reasons
// can name the relation that was checked.
type Relation interface{ ~string }

// RelationshipResolver answers whether a named relation holds between a
// subject and a resource. Implementations are supplied by the integrator
// and may be backed by a remote store; they must be safe to call repeatedly
// and concurrently. Caching of relationship data, if any, is the resolver's
// concern.
type RelationshipResolver[S, R any, Rel Relation] interface {
	Holds(ctx context.Context, subject S, resource R, relation Rel) (bool, error)
}
