package property

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
)

// MemStore keeps properties in memory. It backs tests and the pure CLI paths
// that never touch Postgres.
type MemStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Property
}

func NewMemStore(ps ...Property) *MemStore {
	s := &MemStore{items: make(map[uuid.UUID]Property, len(ps))}
	for _, p := range ps {
		s.items[p.ID] = p
	}
	return s
}

func (s *MemStore) Create(_ context.Context, p Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Name == p.Name {
			return db.ErrDuplicate
		}
	}
	s.items[p.ID] = p
	return nil
}

func (s *MemStore) Get(_ context.Context, id uuid.UUID) (Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return Property{}, db.ErrNotFound
	}
	return p, nil
}

func (s *MemStore) List(_ context.Context) ([]Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Property, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) UpdateTimezone(_ context.Context, id uuid.UUID, timezone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return db.ErrNotFound
	}
	p.Timezone = strings.TrimSpace(timezone)
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	s.items[id] = p
	return nil
}
