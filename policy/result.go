package policy

import (
	"fmt"
	"strings"
)

// Combinator operations recorded on internal trace nodes.
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpNot = "NOT"
)

// Result is one node of an evaluation trace. A leaf node records a single
// policy's decision; an internal node records a combinator's decision plus
// the ordered children it actually invoked. When a combinator
// short-circuits, the children list is strictly shorter than its child set,
// so an auditor can tell an early exit from full consensus by looking at
// the trace alone.
type Result struct {
	// Policy is the name of the policy that produced this node.
	Policy string
	// Operation is the combinator operation (OpAnd, OpOr, OpNot); empty
	// for leaf policies.
	Operation string
	// Granted reports whether this node's decision was a grant.
	Granted bool
	// Reason explains the decision in human-readable form.
	Reason string
	// Children are the sub-results in evaluation order. Only combinator
	// nodes have children, and only the children that actually ran.
	Children []Result
}

// Grant returns a leaf result granting access.
func Grant(policy, reason string) Result {
	return Result{Policy: policy, Granted: true, Reason: reason}
}

// Deny returns a leaf result denying access.
func Deny(policy, reason string) Result {
	return Result{Policy: policy, Reason: reason}
}

// Format renders the evaluation tree with indentation for readability:
//
//	✗ PermissionChecker (OR)
//	  ✗ RbacPolicy DENIED: subject lacks required roles
//	  ✗ AbacPolicy DENIED: attribute condition evaluated to false
func (r Result) Format() string {
	var b strings.Builder
	r.format(&b, 0)
	return b.String()
}

func (r Result) format(b *strings.Builder, indent int) {
	pad := strings.Repeat(" ", indent)
	mark := "✗"
	if r.Granted {
		mark = "✓"
	}

	if r.Operation == "" {
		verdict := "DENIED"
		if r.Granted {
			verdict = "GRANTED"
		}
		fmt.Fprintf(b, "%s%s %s %s", pad, mark, r.Policy, verdict)
		if r.Reason != "" {
			fmt.Fprintf(b, ": %s", r.Reason)
		}
		return
	}

	fmt.Fprintf(b, "%s%s %s (%s)", pad, mark, r.Policy, r.Operation)
	for _, child := range r.Children {
		b.WriteByte('\n')
		child.format(b, indent+2)
	}
}

// Evaluation is the complete outcome of a permission check: the decision,
// the policy that settled it, a summary reason and the full trace. It is
// created fresh per call and owned by the caller.
type Evaluation struct {
	// Granted reports whether access was granted.
	Granted bool
	// Policy is the name of the policy that granted access; empty when
	// access was denied.
	Policy string
	// Reason summarizes the decision.
	Reason string
	// Trace is the full evaluation tree, including denied siblings that
	// ran before the granting policy.
	Trace Result
}

// Allowed is the boolean projection for callers that do not need the trace.
func (e Evaluation) Allowed() bool { return e.Granted }

// Err projects a denial into an error carrying the reason and trace, so
// callers can short-circuit their own control flow on denial. It returns
// nil when access was granted. The conversion never loses the trace.
func (e Evaluation) Err() error {
	if e.Granted {
		return nil
	}
	return &Error{Reason: e.Reason, Trace: e.Trace}
}

// Error is the error form of a denied Evaluation.
type Error struct {
	// Reason summarizes why access was denied.
	Reason string
	// Trace is the full evaluation tree behind the denial.
	Trace Result
}

func (e *Error) Error() string {
	return "access denied: " + e.Reason
}
