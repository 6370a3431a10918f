package dispatch

import (
	"context"
	"fmt"
	"sync"
)

// Store persists dispatch records. NextID must be atomic: two concurrent
// creates may never observe the same id.
type Store interface {
	NextID(ctx context.Context) (string, error)
	Upsert(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
}

const dispatchIDFormat = "DSP-%03d"

// MemoryStore keeps records for the process lifetime. The mutex makes id
// allocation and insertion a single critical section.
type MemoryStore struct {
	mu      sync.Mutex
	seq     int
	records map[string]Record
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

func (s *MemoryStore) NextID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return fmt.Sprintf(dispatchIDFormat, s.seq), nil
}

func (s *MemoryStore) Upsert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.DispatchID]; !exists {
		s.order = append(s.order, rec.DispatchID)
	}
	s.records[rec.DispatchID] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}
