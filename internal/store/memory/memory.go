// Package memory serves donor activity and projects from an in-memory
// snapshot, typically loaded from a batch file.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/store"
	"github.com/dshills/qfscore/internal/trust"
)

// Store is an in-memory implementation of store.ActivitySource and
// store.ProjectSource.
type Store struct {
	mu       sync.RWMutex
	donors   map[string]trust.Activity
	projects map[string]project.Project
}

var (
	_ store.ActivitySource = (*Store)(nil)
	_ store.ProjectSource  = (*Store)(nil)
)

func New() *Store {
	return &Store{
		donors:   make(map[string]trust.Activity),
		projects: make(map[string]project.Project),
	}
}

// FromBatch builds a store holding every donor and project of b.
func FromBatch(b *input.Batch) (*Store, error) {
	s := New()
	for _, d := range b.Donors {
		if err := s.PutDonor(d.ID, d.Activity); err != nil {
			return nil, err
		}
	}
	for _, p := range b.Projects {
		if err := s.PutProject(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// PutDonor stores or replaces a donor's activity.
func (s *Store) PutDonor(id string, a trust.Activity) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donors[id] = a
	return nil
}

// PutProject stores or replaces a project.
func (s *Store) PutProject(p project.Project) error {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return store.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	return nil
}

func (s *Store) Activity(_ context.Context, donorID string) (trust.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.donors[strings.TrimSpace(donorID)]
	if !ok {
		return trust.Activity{}, store.ErrNotFound
	}
	return a, nil
}

// List returns every project ordered by ID.
func (s *Store) List(_ context.Context) ([]project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
