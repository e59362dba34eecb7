package audit

import (
	"context"
	"sync"
)

// DefaultCapacity bounds the in-memory store when no capacity is given.
const DefaultCapacity = 10000

// MemoryStore keeps events in a bounded ring; once full, the oldest
// events are dropped. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

// NewMemoryStore creates a store holding at most capacity events. A
// non-positive capacity falls back to DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity}
}

func (s *MemoryStore) SaveEvent(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, filter Filter) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if !filter.Matches(e) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Count(ctx context.Context, filter Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.events {
		if filter.Matches(e) {
			n++
		}
	}
	return n, nil
}

var _ Store = (*MemoryStore)(nil)
