package emergency

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("emergency not found")

// Record carries whatever fields the intake client submitted, plus the
// assigned id and status. The extraction engine, not this store, owns
// schema validation.
type Record map[string]interface{}

// Store holds emergencies for the process lifetime.
type Store struct {
	mu      sync.Mutex
	seq     int
	records []Record
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Create(data map[string]interface{}) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{}
	for k, v := range data {
		rec[k] = v
	}

	s.seq++
	rec["id"] = fmt.Sprintf("EMG-%03d", s.seq)
	rec["status"] = "new"

	s.records = append(s.records, rec)
	return rec.clone()
}

func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.clone())
	}
	return out
}

func (s *Store) Get(id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec["id"] == id {
			return rec.clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) Update(id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec["id"] == id {
			for k, v := range data {
				if k == "id" {
					continue
				}
				rec[k] = v
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, rec := range s.records {
		if rec["id"] != id {
			kept = append(kept, rec)
		}
	}
	s.records = kept
}

// clone copies the record so callers never hold a map that a later Update can
// write to concurrently.
func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
