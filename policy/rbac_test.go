package policy

import (
	"context"
	"strings"
	"testing"
)

func newDocRbacPolicy() *RbacPolicy[testUser, string, testDoc, testEnv, string] {
	return NewRbacPolicy[testUser, string, testDoc, testEnv](
		func(action string, resource testDoc) []string {
			if action == "delete" {
				return []string{"admin", "owner"}
			}
			return []string{"viewer"}
		},
		func(subject testUser) []string { return subject.Roles },
	)
}

func TestRbacGrantsOnRoleIntersection(t *testing.T) {
	p := newDocRbacPolicy()
	admin := testUser{ID: "u1", Roles: []string{"admin"}}

	res := p.Evaluate(context.Background(), admin, "delete", testDoc{ID: "doc1"}, testEnv{})
	if !res.Granted {
		t.Fatalf("admin should be allowed to delete, got: %s", res.Reason)
	}
	if !strings.Contains(res.Reason, "admin") {
		t.Errorf("reason = %q, want it to name the matching role", res.Reason)
	}
}

func TestRbacDenialListsRequiredAndActualRoles(t *testing.T) {
	p := newDocRbacPolicy()
	viewer := testUser{ID: "u1", Roles: []string{"viewer"}}

	res := p.Evaluate(context.Background(), viewer, "delete", testDoc{ID: "doc1"}, testEnv{})
	if res.Granted {
		t.Fatal("viewer must not delete")
	}
	for _, want := range []string{"admin", "owner", "viewer"} {
		if !strings.Contains(res.Reason, want) {
			t.Errorf("denial reason = %q, want it to list %q", res.Reason, want)
		}
	}
}

func TestRbacDenialNotesRoleAbsence(t *testing.T) {
	p := newDocRbacPolicy()
	nobody := testUser{ID: "u2"}

	res := p.Evaluate(context.Background(), nobody, "delete", testDoc{ID: "doc1"}, testEnv{})
	if res.Granted {
		t.Fatal("role-less subject must be denied")
	}
	if !strings.Contains(res.Reason, "no roles") {
		t.Errorf("reason = %q, want it to note the subject has no roles", res.Reason)
	}
}
