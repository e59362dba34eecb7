package policy

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
)

func TestAndGrantsOnlyWhenAllGrant(t *testing.T) {
	subject, action, resource, env := testRequest()

	all := And[testUser, string, testDoc, testEnv](
		allowPolicy{name: "A"}, allowPolicy{name: "B"},
	)
	if res := all.Evaluate(context.Background(), subject, action, resource, env); !res.Granted {
		t.Error("And(grant, grant) must grant")
	}

	mixed := And[testUser, string, testDoc, testEnv](
		allowPolicy{name: "A"}, denyPolicy{name: "B", reason: "b denies"},
	)
	res := mixed.Evaluate(context.Background(), subject, action, resource, env)
	if res.Granted {
		t.Fatal("And(grant, deny) must deny")
	}
	if res.Operation != OpAnd {
		t.Errorf("operation = %q, want %q", res.Operation, OpAnd)
	}
	if len(res.Children) != 2 {
		t.Errorf("children = %d, want 2", len(res.Children))
	}
	// Denial reason is the first denying child's reason, tagged with its name.
	if !strings.Contains(res.Reason, "B") || !strings.Contains(res.Reason, "b denies") {
		t.Errorf("reason = %q, want it tagged with the denying child", res.Reason)
	}
}

func TestAndShortCircuitsOnFirstDenial(t *testing.T) {
	var calls atomic.Int64
	subject, action, resource, env := testRequest()

	p := And[testUser, string, testDoc, testEnv](
		denyPolicy{name: "First", reason: "stop here"},
		countingPolicy{name: "Unreached", granted: true, calls: &calls},
	)
	res := p.Evaluate(context.Background(), subject, action, resource, env)
	if res.Granted {
		t.Fatal("expected denial")
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("sibling after the denying child was invoked %d times, want 0", n)
	}
	if len(res.Children) != 1 {
		t.Errorf("short-circuited trace has %d children, want 1", len(res.Children))
	}
}

func TestOrGrantsWhenAnyGrants(t *testing.T) {
	subject, action, resource, env := testRequest()

	p := Or[testUser, string, testDoc, testEnv](
		denyPolicy{name: "A", reason: "a denies"}, allowPolicy{name: "B"},
	)
	res := p.Evaluate(context.Background(), subject, action, resource, env)
	if !res.Granted {
		t.Fatal("Or(deny, grant) must grant")
	}
	if res.Operation != OpOr {
		t.Errorf("operation = %q, want %q", res.Operation, OpOr)
	}
	// The denied sibling that ran first stays in the trace.
	if len(res.Children) != 2 {
		t.Errorf("children = %d, want 2", len(res.Children))
	}
}

func TestOrDeniesWhenAllDeny(t *testing.T) {
	subject, action, resource, env := testRequest()

	p := Or[testUser, string, testDoc, testEnv](
		denyPolicy{name: "A", reason: "a denies"},
		denyPolicy{name: "B", reason: "b denies"},
	)
	res := p.Evaluate(context.Background(), subject, action, resource, env)
	if res.Granted {
		t.Fatal("Or(deny, deny) must deny")
	}
	if res.Reason != "no policy granted access" {
		t.Errorf("reason = %q", res.Reason)
	}
	trace := res.Format()
	if !strings.Contains(trace, "a denies") || !strings.Contains(trace, "b denies") {
		t.Errorf("aggregate trace missing a denial reason:\n%s", trace)
	}
}

func TestOrShortCircuitsOnFirstGrant(t *testing.T) {
	var calls atomic.Int64
	subject, action, resource, env := testRequest()

	p := Or[testUser, string, testDoc, testEnv](
		allowPolicy{name: "First"},
		countingPolicy{name: "Unreached", granted: false, calls: &calls},
	)
	res := p.Evaluate(context.Background(), subject, action, resource, env)
	if !res.Granted {
		t.Fatal("expected grant")
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("sibling after the granting child was invoked %d times, want 0", n)
	}
	if len(res.Children) != 1 {
		t.Errorf("short-circuited trace has %d children, want 1", len(res.Children))
	}
}

func TestNotInvertsDecision(t *testing.T) {
	subject, action, resource, env := testRequest()

	overDeny := Not[testUser, string, testDoc, testEnv](denyPolicy{name: "Deny", reason: "inner denial"})
	res := overDeny.Evaluate(context.Background(), subject, action, resource, env)
	if !res.Granted {
		t.Error("Not(deny) must grant")
	}
	if res.Operation != OpNot || len(res.Children) != 1 {
		t.Errorf("unexpected trace shape: %+v", res)
	}
	if !strings.Contains(res.Reason, "inner denial") {
		t.Errorf("reason = %q, want it to carry the inner reason", res.Reason)
	}

	overAllow := Not[testUser, string, testDoc, testEnv](allowPolicy{name: "Allow"})
	if res := overAllow.Evaluate(context.Background(), subject, action, resource, env); res.Granted {
		t.Error("Not(grant) must deny")
	}
}

func TestDeeplyNestedCombinators(t *testing.T) {
	// Not(And(Allow, Or(Deny, Not(Deny)))) evaluates to a denial.
	subject, action, resource, env := testRequest()

	innerNot := Not[testUser, string, testDoc, testEnv](denyPolicy{name: "InnerDeny", reason: "inner"})
	innerOr := Or[testUser, string, testDoc, testEnv](denyPolicy{name: "MidDeny", reason: "mid"}, innerNot)
	innerAnd := And[testUser, string, testDoc, testEnv](allowPolicy{name: "Allow"}, innerOr)
	outer := Not[testUser, string, testDoc, testEnv](innerAnd)

	res := outer.Evaluate(context.Background(), subject, action, resource, env)
	if res.Granted {
		t.Fatal("nested structure should deny")
	}
	trace := res.Format()
	for _, want := range []string{"NOT", "AND", "OR", "InnerDeny"} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing %q:\n%s", want, trace)
		}
	}
}

func TestCombinatorEvaluationOrderIsDeclarationOrder(t *testing.T) {
	// With two denying children, the surfaced reason must be the first
	// child's, because And checks in declared order.
	subject, action, resource, env := testRequest()

	p := And[testUser, string, testDoc, testEnv](
		denyPolicy{name: "First", reason: "first reason"},
		denyPolicy{name: "Second", reason: "second reason"},
	)
	res := p.Evaluate(context.Background(), subject, action, resource, env)
	if !strings.Contains(res.Reason, "first reason") {
		t.Errorf("reason = %q, want the first denying child's reason", res.Reason)
	}
	if strings.Contains(res.Reason, "second reason") {
		t.Errorf("reason = %q leaked the short-circuited child's reason", res.Reason)
	}
}
