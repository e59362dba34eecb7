package policy

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAbacOwnershipCondition(t *testing.T) {
	p := NewAbacPolicy(func(ctx context.Context, subject testUser, action string, resource testDoc, env testEnv) (bool, error) {
		return subject.ID == resource.OwnerID, nil
	})

	owner := testUser{ID: "u1"}
	owned := testDoc{ID: "doc1", OwnerID: "u1"}
	foreign := testDoc{ID: "doc2", OwnerID: "u9"}

	if res := p.Evaluate(context.Background(), owner, "read", owned, testEnv{}); !res.Granted {
		t.Errorf("owner should be granted, got: %s", res.Reason)
	}
	if res := p.Evaluate(context.Background(), owner, "read", foreign, testEnv{}); res.Granted {
		t.Error("non-owner should be denied")
	}
}

func TestAbacCustomDenyReason(t *testing.T) {
	p := NewAbacPolicy(func(ctx context.Context, subject testUser, action string, resource testDoc, env testEnv) (bool, error) {
		return false, nil
	}).Named("OwnerOnly").WithDenyReason("subject does not own the document")

	res := p.Evaluate(context.Background(), testUser{}, "read", testDoc{}, testEnv{})
	if res.Granted {
		t.Fatal("expected denial")
	}
	if res.Policy != "OwnerOnly" {
		t.Errorf("policy name = %q, want OwnerOnly", res.Policy)
	}
	if res.Reason != "subject does not own the document" {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestAbacConditionErrorFoldsIntoDenial(t *testing.T) {
	p := NewAbacPolicy(func(ctx context.Context, subject testUser, action string, resource testDoc, env testEnv) (bool, error) {
		return false, errors.New("attribute store unreachable")
	})

	res := p.Evaluate(context.Background(), testUser{}, "read", testDoc{}, testEnv{})
	if res.Granted {
		t.Fatal("failing condition must deny")
	}
	if !strings.Contains(res.Reason, "policy predicate failed") {
		t.Errorf("reason = %q, want it flagged as a predicate failure", res.Reason)
	}
	if !strings.Contains(res.Reason, "attribute store unreachable") {
		t.Errorf("reason = %q, want the underlying error preserved", res.Reason)
	}
}

func TestAbacConditionPanicFoldsIntoDenial(t *testing.T) {
	p := NewAbacPolicy(func(ctx context.Context, subject testUser, action string, resource testDoc, env testEnv) (bool, error) {
		panic("bad predicate")
	})

	res := p.Evaluate(context.Background(), testUser{}, "read", testDoc{}, testEnv{})
	if res.Granted {
		t.Fatal("panicking condition must deny")
	}
	if !strings.Contains(res.Reason, "policy predicate failed") {
		t.Errorf("reason = %q, want it flagged as a predicate failure", res.Reason)
	}
}

func TestAbacFeatureFlagContext(t *testing.T) {
	p := NewAbacPolicy(func(ctx context.Context, subject testUser, action string, resource testDoc, env testEnv) (bool, error) {
		return env.FeatureEnabled, nil
	})

	if res := p.Evaluate(context.Background(), testUser{}, "read", testDoc{}, testEnv{FeatureEnabled: true}); !res.Granted {
		t.Error("enabled flag should grant")
	}
	if res := p.Evaluate(context.Background(), testUser{}, "read", testDoc{}, testEnv{FeatureEnabled: false}); res.Granted {
		t.Error("disabled flag should deny")
	}
}
