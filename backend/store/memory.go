// ABOUTME: In-memory project store guarded by a RWMutex
// ABOUTME: Used by default and in tests; contents are lost on restart

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/engestimate/estimator/backend/models"
)

// MemoryStore keeps projects in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]models.Project
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{projects: make(map[string]models.Project)}
}

func (s *MemoryStore) Create(_ context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Archived = false

	s.mu.Lock()
	s.projects[p.ID] = clone(p)
	s.mu.Unlock()
	return p, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) List(_ context.Context, includeArchived bool) ([]models.Project, error) {
	s.mu.RLock()
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.Archived && !includeArchived {
			continue
		}
		out = append(out, clone(p))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) SaveEstimate(_ context.Context, id string, snap models.EstimateSnapshot) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	p.Estimate = &snap
	p.UpdatedAt = time.Now().UTC()
	s.projects[id] = p
	return clone(p), nil
}

func (s *MemoryStore) Archive(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Archived = true
	p.UpdatedAt = time.Now().UTC()
	s.projects[id] = p
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) Close() error { return nil }

// clone copies the estimate pointer so callers cannot mutate stored state.
func clone(p models.Project) models.Project {
	if p.Estimate != nil {
		snap := *p.Estimate
		p.Estimate = &snap
	}
	return p
}
