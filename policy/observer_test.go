package policy

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestCheckerNotifiesObservers(t *testing.T) {
	var events []Event
	checker := NewPermissionChecker[testUser, string, testDoc, testEnv](
		WithLogger(zap.NewNop()),
		WithObserver(ObserverFunc(func(ctx context.Context, ev Event) {
			events = append(events, ev)
		})),
	)
	checker.AddPolicy(denyPolicy{name: "Deny1", reason: "first says no"})
	checker.AddPolicy(allowPolicy{name: "Allow2"})

	subject, action, resource, env := testRequest()
	checker.EvaluateAccess(context.Background(), subject, action, resource, env)
	checker.EvaluateAccess(context.Background(), subject, "delete", resource, env)

	if len(events) != 2 {
		t.Fatalf("observed %d events, want 2", len(events))
	}

	first := events[0]
	if first.ID == "" {
		t.Error("event ID is empty")
	}
	if !first.Granted || first.Policy != "Allow2" {
		t.Errorf("event = %+v, want grant decided by Allow2", first)
	}
	if len(first.Trace.Children) != 2 {
		t.Errorf("event trace children = %d, want the full trace", len(first.Trace.Children))
	}
	if first.At.IsZero() {
		t.Error("event timestamp is zero")
	}
	if events[0].ID == events[1].ID {
		t.Error("event IDs must be unique per evaluation")
	}
}
