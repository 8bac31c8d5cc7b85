package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
)

// MemStore keeps reservations in memory.
type MemStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Reservation
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[uuid.UUID]Reservation)}
}

func (s *MemStore) Create(_ context.Context, r Reservation) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID]; ok {
		return db.ErrDuplicate
	}
	s.items[r.ID] = r
	return nil
}

func (s *MemStore) Get(_ context.Context, id uuid.UUID) (Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return Reservation{}, db.ErrNotFound
	}
	return r, nil
}

func (s *MemStore) ListOverlapping(_ context.Context, propertyID uuid.UUID, from, to time.Time) ([]Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Reservation
	for _, r := range s.items {
		if r.PropertyID != propertyID || r.Status == StatusCancelled {
			continue
		}
		if !r.CheckInAt.Before(to) || r.CheckOutAt.Before(from) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInAt.Before(out[j].CheckInAt) })
	return out, nil
}
