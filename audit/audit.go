// Package audit records authorization decisions as structured events
// suitable for compliance review. Events capture who asked, what was
// decided, why, and the full rendered evaluation trace.
package audit

import (
	"context"
	"time"
)

// Decision classifies the outcome of an evaluation.
type Decision string

const (
	DecisionGranted Decision = "granted"
	DecisionDenied  Decision = "denied"
)

// Event is one persisted authorization decision.
type Event struct {
	ID        string            `json:"id"`
	Policy    string            `json:"policy"`   // policy that settled the decision
	Decision  Decision          `json:"decision"` // "granted" or "denied"
	Reason    string            `json:"reason"`   // human-readable summary
	Trace     string            `json:"trace"`    // rendered evaluation tree
	Duration  time.Duration     `json:"duration"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"` // caller-supplied context
}

// Store persists and queries decision events.
type Store interface {
	// SaveEvent persists one event.
	SaveEvent(ctx context.Context, event Event) error

	// Query returns events matching the filter, oldest first.
	Query(ctx context.Context, filter Filter) ([]Event, error)

	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter selects events; zero fields match everything.
type Filter struct {
	Policy    string
	Decision  Decision
	StartTime time.Time
	EndTime   time.Time
	Limit     int
}

// Matches reports whether the event satisfies the filter. Limit is a
// pagination concern and is ignored here.
func (f Filter) Matches(e Event) bool {
	if f.Policy != "" && e.Policy != f.Policy {
		return false
	}
	if f.Decision != "" && e.Decision != f.Decision {
		return false
	}
	if !f.StartTime.IsZero() && e.CreatedAt.Before(f.StartTime) {
		return false
	}
	if !f.EndTime.IsZero() && e.CreatedAt.After(f.EndTime) {
		return false
	}
	return true
}
