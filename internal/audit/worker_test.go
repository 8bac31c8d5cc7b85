package audit

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sandarbhasthana/pms-app-sub005/internal/logger"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type memClosures struct {
	mu    sync.Mutex
	items map[uuid.UUID]map[opday.Date]Closure
}

func newMemClosures() *memClosures {
	return &memClosures{items: make(map[uuid.UUID]map[opday.Date]Closure)}
}

func (m *memClosures) LastClosed(_ context.Context, id uuid.UUID) (opday.Date, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last opday.Date
	found := false
	for d := range m.items[id] {
		if !found || d.After(last) {
			last, found = d, true
		}
	}
	return last, found, nil
}

func (m *memClosures) Close(_ context.Context, c Closure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[c.PropertyID] == nil {
		m.items[c.PropertyID] = make(map[opday.Date]Closure)
	}
	if _, ok := m.items[c.PropertyID][c.Date]; !ok {
		m.items[c.PropertyID][c.Date] = c
	}
	return nil
}

func (m *memClosures) List(_ context.Context, id uuid.UUID, limit int) ([]Closure, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Closure
	for _, c := range m.items[id] {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func dates(cs []Closure) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Date.String())
	}
	return out
}

func mustAt(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestWorker_ClosesEndedDays(t *testing.T) {
	ctx := context.Background()
	hotel, err := property.New("Harbor View", "America/New_York")
	require.NoError(t, err)
	broken := property.Property{ID: uuid.New(), Name: "Broken", Timezone: "Not/AZone"}
	props := property.NewMemStore(hotel, broken)

	rs := reservation.NewMemStore()
	stay, err := reservation.New(hotel.ID, "Ada", mustAt(t, "2025-01-15T20:00:00Z"), mustAt(t, "2025-01-17T16:00:00Z"))
	require.NoError(t, err)
	require.NoError(t, rs.Create(ctx, stay))

	clock := &fakeClock{now: mustAt(t, "2025-01-17T10:59:00Z")} // 05:59 EST, still the 16th
	closures := newMemClosures()
	w := &Worker{
		Properties: props,
		Sheets:     &reservation.Service{Properties: props, Reservations: rs},
		Closures:   closures,
		Clock:      clock,
		Logger:     logger.Discard(),
	}

	w.Tick(ctx)
	got, err := closures.List(ctx, hotel.ID, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"2025-01-15"}, dates(got))
	require.Equal(t, 1, got[0].Arrivals)
	require.Equal(t, 1, got[0].InHouse)
	require.Equal(t, clock.now, got[0].ClosedAt)

	none, err := closures.List(ctx, broken.ID, 0)
	require.NoError(t, err)
	require.Empty(t, none)

	// 06:00 EST on the 19th: the worker catches up through the 18th
	clock.now = mustAt(t, "2025-01-19T11:00:00Z")
	w.Tick(ctx)
	w.Tick(ctx)
	got, err = closures.List(ctx, hotel.ID, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"2025-01-18", "2025-01-17", "2025-01-16"}, dates(got))
	require.Equal(t, 1, got[1].Departures)
	require.Equal(t, 0, got[1].InHouse)
}

func TestWorker_CatchUpIsBounded(t *testing.T) {
	ctx := context.Background()
	hotel, err := property.New("Lake Palace", "Asia/Kolkata")
	require.NoError(t, err)
	props := property.NewMemStore(hotel)
	closures := newMemClosures()
	require.NoError(t, closures.Close(ctx, Closure{PropertyID: hotel.ID, Date: opday.MustParseDate("2024-01-01")}))

	w := &Worker{
		Properties: props,
		Sheets:     &reservation.Service{Properties: props, Reservations: reservation.NewMemStore()},
		Closures:   closures,
		Clock:      &fakeClock{now: mustAt(t, "2025-01-15T12:00:00Z")},
		Logger:     logger.Discard(),
	}
	w.Tick(ctx)

	got, err := closures.List(ctx, hotel.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, maxCatchUp+1)
	require.Equal(t, "2025-01-14", got[0].Date.String())
	require.Equal(t, "2024-12-15", got[maxCatchUp-1].Date.String())
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	props := property.NewMemStore()
	w := &Worker{
		Properties: props,
		Sheets:     &reservation.Service{Properties: props, Reservations: reservation.NewMemStore()},
		Closures:   newMemClosures(),
		Interval:   time.Millisecond,
		Logger:     logger.Discard(),
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

type blockingSheets struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSheets) DaySheet(_ context.Context, id uuid.UUID, d opday.Date) (reservation.DaySheet, error) {
	close(b.entered)
	<-b.release
	return reservation.DaySheet{PropertyID: id}, nil
}

func TestWorker_RunWaitsForInFlightClosure(t *testing.T) {
	hotel, err := property.New("Harbor View", "America/New_York")
	require.NoError(t, err)
	sheets := &blockingSheets{entered: make(chan struct{}), release: make(chan struct{})}
	closures := newMemClosures()
	w := &Worker{
		Properties: property.NewMemStore(hotel),
		Sheets:     sheets,
		Closures:   closures,
		Clock:      &fakeClock{now: mustAt(t, "2025-01-16T12:00:00Z")},
		Interval:   time.Hour,
		Logger:     logger.Discard(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	<-sheets.entered
	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while a closure was being written")
	case <-time.After(100 * time.Millisecond):
	}

	close(sheets.release)
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	got, err := closures.List(context.Background(), hotel.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
