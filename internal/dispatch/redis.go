package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/searchandrescuegg/lifeline/internal/kv"
)

const (
	redisSequenceKey = "dispatch:seq"
	redisRecordsKey  = "dispatch:records"
)

// RedisStore shares the dispatch sequence and records across replicas. INCR
// keeps id allocation atomic without a process-local lock.
type RedisStore struct {
	kv *kv.Client
}

func NewRedisStore(client *kv.Client) *RedisStore {
	return &RedisStore{kv: client}
}

func (s *RedisStore) NextID(ctx context.Context) (string, error) {
	n, err := s.kv.Incr(ctx, redisSequenceKey)
	if err != nil {
		return "", fmt.Errorf("failed to allocate dispatch id: %w", err)
	}
	return fmt.Sprintf(dispatchIDFormat, n), nil
}

func (s *RedisStore) Upsert(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch record: %w", err)
	}

	if err := s.kv.HSet(ctx, redisRecordsKey, rec.DispatchID, payload); err != nil {
		return fmt.Errorf("failed to store dispatch record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	payload, err := s.kv.HGet(ctx, redisRecordsKey, id)
	if err != nil {
		return Record{}, err
	}
	if payload == "" {
		return Record{}, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal dispatch record %s: %w", id, err)
	}
	return rec, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	payloads, err := s.kv.HGetAll(ctx, redisRecordsKey)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(payloads))
	for id, payload := range payloads {
		var rec Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dispatch record %s: %w", id, err)
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DispatchID < out[j].DispatchID })
	return out, nil
}
