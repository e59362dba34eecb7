package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/getverdict/verdict/policy"
)

// Recorder turns checker evaluation events into audit records. Saving
// happens on a detached goroutine so a slow store never delays a
// decision; Wait flushes pending saves.
type Recorder struct {
	store    Store
	log      *zap.Logger
	metadata map[string]string
	wg       sync.WaitGroup
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger used to report save failures.
func WithLogger(log *zap.Logger) RecorderOption {
	return func(r *Recorder) {
		r.log = log
	}
}

// WithMetadata attaches static metadata to every recorded event, e.g.
// the service name or deployment environment.
func WithMetadata(metadata map[string]string) RecorderOption {
	return func(r *Recorder) {
		r.metadata = metadata
	}
}

// NewRecorder creates a Recorder persisting to store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{store: store, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ObserveEvaluation records the decision asynchronously.
func (r *Recorder) ObserveEvaluation(ctx context.Context, event policy.Event) {
	record := Event{
		ID:        event.ID,
		Policy:    event.Policy,
		Decision:  DecisionDenied,
		Reason:    event.Reason,
		Trace:     event.Trace.Format(),
		Duration:  event.Duration,
		CreatedAt: event.At,
		Metadata:  r.metadata,
	}
	if event.Granted {
		record.Decision = DecisionGranted
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		// Detached context: the request that triggered the decision may
		// already be done by the time the save lands.
		if err := r.store.SaveEvent(context.Background(), record); err != nil {
			r.log.Error("saving audit event",
				zap.String("event_id", record.ID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until all pending saves have completed.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

var _ policy.Observer = (*Recorder)(nil)
