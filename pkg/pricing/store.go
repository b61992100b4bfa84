package pricing

import (
	"fmt"
	"sync"
)

// DefaultCapacity bounds the number of simultaneously live batches.
const DefaultCapacity = 10000

// BatchStore is the registry of live batches. Identifiers start at 1 and are
// never reused.
type BatchStore struct {
	mu       sync.RWMutex
	capacity int
	lastID   int64
	batches  map[int64]*Batch
}

// NewBatchStore creates an empty registry. A non-positive capacity falls back
// to DefaultCapacity.
func NewBatchStore(capacity int) *BatchStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &BatchStore{
		capacity: capacity,
		batches:  make(map[int64]*Batch),
	}
}

// Create registers a new open batch under the next identifier.
func (s *BatchStore) Create() (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.batches) >= s.capacity {
		return nil, fmt.Errorf("%d live batches: %w", len(s.batches), ErrCapacityExceeded)
	}
	s.lastID++
	b := newBatch(s.lastID)
	s.batches[b.id] = b
	return b, nil
}

// Get returns the live batch registered under id.
func (s *BatchStore) Get(id int64) (*Batch, error) {
	s.mu.RLock()
	b, ok := s.batches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, batchNotFound(id)
	}
	return b, nil
}

// Retire removes id from the registry. It must only be called by the caller
// whose finalize succeeded.
func (s *BatchStore) Retire(id int64) {
	s.mu.Lock()
	delete(s.batches, id)
	s.mu.Unlock()
}

// Len returns the number of live batches.
func (s *BatchStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.batches)
}
