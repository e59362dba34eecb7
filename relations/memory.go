package relations

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory TupleStore for tests, development and
// single-instance deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	tuples []Tuple
}

// NewMemoryStore creates an empty in-memory tuple store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Write(ctx context.Context, tuple Tuple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(tuple)
	return nil
}

func (s *MemoryStore) WriteBatch(ctx context.Context, tuples []Tuple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tuples {
		s.write(t)
	}
	return nil
}

func (s *MemoryStore) write(tuple Tuple) {
	for _, t := range s.tuples {
		if t == tuple {
			return
		}
	}
	s.tuples = append(s.tuples, tuple)
}

func (s *MemoryStore) Delete(ctx context.Context, tuple Tuple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tuples {
		if t == tuple {
			s.tuples[i] = s.tuples[len(s.tuples)-1]
			s.tuples = s.tuples[:len(s.tuples)-1]
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) DeleteMatching(ctx context.Context, filter Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tuples[:0]
	for _, t := range s.tuples {
		if !filter.Matches(t) {
			kept = append(kept, t)
		}
	}
	s.tuples = kept
	return nil
}

func (s *MemoryStore) Read(ctx context.Context, filter Filter) ([]Tuple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []Tuple
	for _, t := range s.tuples {
		if filter.Matches(t) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *MemoryStore) Exists(ctx context.Context, tuple Tuple) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tuples {
		if t == tuple {
			return true, nil
		}
	}
	return false, nil
}

var _ TupleStore = (*MemoryStore)(nil)
