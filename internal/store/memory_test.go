package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// InMemoryRunStore is a map-backed RunStore the SQLite store is checked against.
type InMemoryRunStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewInMemoryRunStore creates an empty in-memory store.
func NewInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{runs: make(map[string]Run)}
}

// SaveRun stores run.
func (s *InMemoryRunStore) SaveRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if run.Report.Summary == nil {
		return fmt.Errorf("run %s has no summary", run.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("run %s already exists", run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

// GetRun returns a stored run or ErrRunNotFound.
func (s *InMemoryRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	return &run, nil
}

// ListRuns returns run summaries, newest first.
func (s *InMemoryRunStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, RunSummary{
			ID:        run.ID,
			StartedAt: run.StartedAt,
			MapPath:   run.MapPath,
			Ants:      run.Ants,
			Summary:   *run.Report.Summary,
		})
	}
	slices.SortFunc(out, func(a, b RunSummary) int {
		return cmp.Or(b.StartedAt.Compare(a.StartedAt), cmp.Compare(a.ID, b.ID))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op.
func (s *InMemoryRunStore) Close() error {
	return nil
}
