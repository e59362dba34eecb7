package policy

import (
	"context"
	"fmt"
)

// AndPolicy combines policies with a logical AND. Access is granted only if
// every child grants it. Evaluation follows construction order and stops at
// the first denial; children after the denying one are never invoked.
type AndPolicy[S, A, R, C any] struct {
	policies []Policy[S, A, R, C]
}

// And composes one or more policies under AND semantics. Requiring the
// first child as a separate argument makes an empty combinator
// unrepresentable.
func And[S, A, R, C any](first Policy[S, A, R, C], rest ...Policy[S, A, R, C]) *AndPolicy[S, A, R, C] {
	policies := make([]Policy[S, A, R, C], 0, len(rest)+1)
	policies = append(policies, first)
	policies = append(policies, rest...)
	return &AndPolicy[S, A, R, C]{policies: policies}
}

func (p *AndPolicy[S, A, R, C]) Name() string { return "AndPolicy" }

func (p *AndPolicy[S, A, R, C]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result {
	children := make([]Result, 0, len(p.policies))

	for _, child := range p.policies {
		res := child.Evaluate(ctx, subject, action, resource, env)
		children = append(children, res)

		// Short-circuit on first denial.
		if !res.Granted {
			return Result{
				Policy:    p.Name(),
				Operation: OpAnd,
				Reason:    fmt.Sprintf("%s: %s", res.Policy, res.Reason),
				Children:  children,
			}
		}
	}

	return Result{
		Policy:    p.Name(),
		Operation: OpAnd,
		Granted:   true,
		Reason:    "all policies granted access",
		Children:  children,
	}
}

// OrPolicy combines policies with a logical OR. Access is granted if any
// child grants it. Evaluation follows construction order and stops at the
// first grant; children after the granting one are never invoked. This is
// the combinator form of PermissionChecker's default strategy.
type OrPolicy[S, A, R, C any] struct {
	policies []Policy[S, A, R, C]
}

// Or composes one or more policies under OR semantics.
func Or[S, A, R, C any](first Policy[S, A, R, C], rest ...Policy[S, A, R, C]) *OrPolicy[S, A, R, C] {
	policies := make([]Policy[S, A, R, C], 0, len(rest)+1)
	policies = append(policies, first)
	policies = append(policies, rest...)
	return &OrPolicy[S, A, R, C]{policies: policies}
}

func (p *OrPolicy[S, A, R, C]) Name() string { return "OrPolicy" }

func (p *OrPolicy[S, A, R, C]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result {
	children := make([]Result, 0, len(p.policies))

	for _, child := range p.policies {
		res := child.Evaluate(ctx, subject, action, resource, env)
		children = append(children, res)

		// Short-circuit on first grant.
		if res.Granted {
			return Result{
				Policy:    p.Name(),
				Operation: OpOr,
				Granted:   true,
				Reason:    fmt.Sprintf("%s: %s", res.Policy, res.Reason),
				Children:  children,
			}
		}
	}

	return Result{
		Policy:    p.Name(),
		Operation: OpOr,
		Reason:    "no policy granted access",
		Children:  children,
	}
}

// NotPolicy inverts the decision of a single inner policy. The inner trace
// is always recorded; with one child there is nothing to short-circuit.
type NotPolicy[S, A, R, C any] struct {
	policy Policy[S, A, R, C]
}

// Not wraps a policy, inverting Granted and Denied.
func Not[S, A, R, C any](p Policy[S, A, R, C]) *NotPolicy[S, A, R, C] {
	return &NotPolicy[S, A, R, C]{policy: p}
}

func (p *NotPolicy[S, A, R, C]) Name() string { return "NotPolicy" }

func (p *NotPolicy[S, A, R, C]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result {
	inner := p.policy.Evaluate(ctx, subject, action, resource, env)

	return Result{
		Policy:    p.Name(),
		Operation: OpNot,
		Granted:   !inner.Granted,
		Reason:    fmt.Sprintf("inverted decision of %s: %s", inner.Policy, inner.Reason),
		Children:  []Result{inner},
	}
}
