package policy

import (
	"context"
	"fmt"
)

// Builder assembles an ad-hoc policy from independently optional predicates
// over the subject, action, resource and evaluation context, plus an
// optional combined predicate over all four. Each staged call records one
// predicate; Build freezes the accumulated predicates into an immutable
// policy. The built policy ANDs every supplied predicate, checking them in
// the fixed order subject, action, resource, context, when; a predicate
// that was never supplied is treated as always true.
type Builder[S, A, R, C any] struct {
	name     string
	subject  func(S) bool
	action   func(A) bool
	resource func(R) bool
	env      func(C) bool
	when     func(S, A, R, C) bool
}

// NewBuilder starts a builder for a policy with the given trace name.
func NewBuilder[S, A, R, C any](name string) *Builder[S, A, R, C] {
	return &Builder[S, A, R, C]{name: name}
}

// Subjects records a predicate over the subject.
func (b *Builder[S, A, R, C]) Subjects(pred func(S) bool) *Builder[S, A, R, C] {
	b.subject = pred
	return b
}

// Actions records a predicate over the action.
func (b *Builder[S, A, R, C]) Actions(pred func(A) bool) *Builder[S, A, R, C] {
	b.action = pred
	return b
}

// Resources records a predicate over the resource.
func (b *Builder[S, A, R, C]) Resources(pred func(R) bool) *Builder[S, A, R, C] {
	b.resource = pred
	return b
}

// Context records a predicate over the evaluation context.
func (b *Builder[S, A, R, C]) Context(pred func(C) bool) *Builder[S, A, R, C] {
	b.env = pred
	return b
}

// When records a combined predicate over all four inputs, checked after the
// per-input predicates.
func (b *Builder[S, A, R, C]) When(pred func(S, A, R, C) bool) *Builder[S, A, R, C] {
	b.when = pred
	return b
}

// Build freezes the builder into an immutable policy. Later mutation of the
// builder does not affect the built policy.
func (b *Builder[S, A, R, C]) Build() Policy[S, A, R, C] {
	name := b.name
	if name == "" {
		name = "PredicatePolicy"
	}
	return &predicatePolicy[S, A, R, C]{
		name:     name,
		subject:  b.subject,
		action:   b.action,
		resource: b.resource,
		env:      b.env,
		when:     b.when,
	}
}

// predicatePolicy is the frozen product of a Builder: an implicit AND over
// simple predicates. The denial reason names the first predicate that
// rejected the request.
type predicatePolicy[S, A, R, C any] struct {
	name     string
	subject  func(S) bool
	action   func(A) bool
	resource func(R) bool
	env      func(C) bool
	when     func(S, A, R, C) bool
}

func (p *predicatePolicy[S, A, R, C]) Name() string { return p.name }

func (p *predicatePolicy[S, A, R, C]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Deny(p.name, fmt.Sprintf("policy predicate failed: %v", r))
		}
	}()

	if p.subject != nil && !p.subject(subject) {
		return Deny(p.name, "subject predicate rejected the request")
	}
	if p.action != nil && !p.action(action) {
		return Deny(p.name, "action predicate rejected the request")
	}
	if p.resource != nil && !p.resource(resource) {
		return Deny(p.name, "resource predicate rejected the request")
	}
	if p.env != nil && !p.env(env) {
		return Deny(p.name, "context predicate rejected the request")
	}
	if p.when != nil && !p.when(subject, action, resource, env) {
		return Deny(p.name, "when predicate rejected the request")
	}
	return Grant(p.name, "all predicates satisfied")
}
