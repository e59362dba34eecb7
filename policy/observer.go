package policy

import (
	"context"
	"time"
)

// Event is the structured record emitted to observers after a checker
// evaluation completes. It carries enough to reconstruct the decision for
// audit or telemetry without querying the engine again.
type Event struct {
	// ID uniquely identifies this evaluation.
	ID string
	// Policy is the name of the policy that settled the decision; for a
	// denial it is the checker's own name.
	Policy string
	// Granted reports the decision.
	Granted bool
	// Reason summarizes the decision.
	Reason string
	// Trace is the full evaluation tree.
	Trace Result
	// Duration is how long the evaluation took.
	Duration time.Duration
	// At is when the evaluation completed (UTC).
	At time.Time
}

// Observer receives evaluation events from a PermissionChecker. This is a
// one-way notification interface; the engine never queries an observer.
// Implementations must be safe for concurrent use and should return
// quickly, offloading slow sinks internally.
type Observer interface {
	ObserveEvaluation(ctx context.Context, event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) ObserveEvaluation(ctx context.Context, event Event) {
	f(ctx, event)
}
