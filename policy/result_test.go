package policy

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatLeaf(t *testing.T) {
	grant := Grant("RbacPolicy", "subject has required role admin")
	if got := grant.Format(); got != "✓ RbacPolicy GRANTED: subject has required role admin" {
		t.Errorf("Format() = %q", got)
	}

	deny := Deny("AbacPolicy", "condition false")
	if got := deny.Format(); got != "✗ AbacPolicy DENIED: condition false" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatTreeIndentsChildren(t *testing.T) {
	root := Result{
		Policy:    "AndPolicy",
		Operation: OpAnd,
		Reason:    "Deny: no",
		Children: []Result{
			Grant("Allow", "yes"),
			Deny("Deny", "no"),
		},
	}

	got := root.Format()
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "✗ AndPolicy (AND)") {
		t.Errorf("root line = %q", lines[0])
	}
	for _, child := range lines[1:] {
		if !strings.HasPrefix(child, "  ") {
			t.Errorf("child line %q is not indented", child)
		}
	}
}

func TestEvaluationErrProjection(t *testing.T) {
	granted := Evaluation{Granted: true, Policy: "P", Reason: "ok"}
	if err := granted.Err(); err != nil {
		t.Errorf("granted evaluation produced error: %v", err)
	}

	trace := Deny("P", "nope")
	denied := Evaluation{Reason: "no policy granted access", Trace: trace}
	err := denied.Err()
	if err == nil {
		t.Fatal("denied evaluation must produce an error")
	}

	var denial *Error
	if !errors.As(err, &denial) {
		t.Fatalf("error type = %T, want *policy.Error", err)
	}
	if denial.Reason != "no policy granted access" {
		t.Errorf("reason = %q", denial.Reason)
	}
	// The projection must not lose the trace.
	if denial.Trace.Policy != "P" {
		t.Errorf("trace lost in projection: %+v", denial.Trace)
	}
	if !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Error() = %q", err.Error())
	}
}
