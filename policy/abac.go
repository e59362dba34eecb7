package policy

import (
	"context"
	"fmt"
)

// Condition is the attribute predicate evaluated by AbacPolicy. It receives
// all four inputs and may consult external data through ctx. Returning an
// error denies access with a reason flagging the predicate failure.
type Condition[S, A, R, C any] func(ctx context.Context, subject S, action A, resource R, env C) (bool, error)

// AbacPolicy implements attribute-based access control: access is granted
// iff the stored condition evaluates to true. A condition that returns an
// error or panics never aborts the evaluation of sibling policies; the
// failure is folded into a denial.
type AbacPolicy[S, A, R, C any] struct {
	name       string
	denyReason string
	condition  Condition[S, A, R, C]
}

// NewAbacPolicy creates an attribute-based policy from a condition.
func NewAbacPolicy[S, A, R, C any](condition Condition[S, A, R, C]) *AbacPolicy[S, A, R, C] {
	return &AbacPolicy[S, A, R, C]{
		name:       "AbacPolicy",
		denyReason: "attribute condition evaluated to false",
		condition:  condition,
	}
}

// Named returns a copy of the policy using the given name in traces.
func (p *AbacPolicy[S, A, R, C]) Named(name string) *AbacPolicy[S, A, R, C] {
	q := *p
	q.name = name
	return &q
}

// WithDenyReason returns a copy of the policy that denies with the given
// reason when the condition evaluates to false.
func (p *AbacPolicy[S, A, R, C]) WithDenyReason(reason string) *AbacPolicy[S, A, R, C] {
	q := *p
	q.denyReason = reason
	return &q
}

func (p *AbacPolicy[S, A, R, C]) Name() string { return p.name }

func (p *AbacPolicy[S, A, R, C]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Deny(p.name, fmt.Sprintf("policy predicate failed: %v", r))
		}
	}()

	ok, err := p.condition(ctx, subject, action, resource, env)
	if err != nil {
		return Deny(p.name, fmt.Sprintf("policy predicate failed: %v", err))
	}
	if !ok {
		return Deny(p.name, p.denyReason)
	}
	return Grant(p.name, "attribute condition evaluated to true")
}
