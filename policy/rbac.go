package policy

import (
	"context"
	"fmt"
)

// RbacPolicy implements role-based access control. It grants access when
// the subject holds at least one of the roles required for the evaluated
// action/resource pair.
//
// Both role sets are supplied through resolver functions fixed at
// construction: one mapping an (action, resource) pair to the roles that
// permit it, the other extracting the subject's granted roles. The policy
// itself stores no role data and is immutable after construction.
type RbacPolicy[S, A, R, C any, Role comparable] struct {
	requiredRoles func(action A, resource R) []Role
	subjectRoles  func(subject S) []Role
}

// NewRbacPolicy creates a role-based policy from the two role resolvers.
func NewRbacPolicy[S, A, R, C any, Role comparable](
	requiredRoles func(action A, resource R) []Role,
	subjectRoles func(subject S) []Role,
) *RbacPolicy[S, A, R, C, Role] {
	return &RbacPolicy[S, A, R, C, Role]{
		requiredRoles: requiredRoles,
		subjectRoles:  subjectRoles,
	}
}

func (p *RbacPolicy[S, A, R, C, Role]) Name() string { return "RbacPolicy" }

func (p *RbacPolicy[S, A, R, C, Role]) Evaluate(ctx context.Context, subject S, action A, resource R, env C) Result {
	required := p.requiredRoles(action, resource)
	actual := p.subjectRoles(subject)

	for _, want := range required {
		for _, have := range actual {
			if want == have {
				return Grant(p.Name(), fmt.Sprintf("subject has required role %v", want))
			}
		}
	}

	if len(actual) == 0 {
		return Deny(p.Name(), fmt.Sprintf("subject has no roles; required roles %v", required))
	}
	return Deny(p.Name(), fmt.Sprintf("subject lacks required roles: required %v, subject has %v", required, actual))
}
