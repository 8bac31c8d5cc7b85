package property

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

func TestNew_Validation(t *testing.T) {
	p, err := New("  Harbor View ", "America/New_York")
	require.NoError(t, err)
	require.Equal(t, "Harbor View", p.Name)
	require.NotEqual(t, uuid.Nil, p.ID)

	_, err = New("", "America/New_York")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = New("Harbor View", "Not/AZone")
	require.ErrorIs(t, err, opday.ErrInvalidTimezone)

	_, err = New("Harbor View", "")
	require.ErrorIs(t, err, opday.ErrInvalidTimezone)
}

func TestParseSeed(t *testing.T) {
	ps, err := ParseSeed([]byte(`
properties:
  - name: Harbor View
    timezone: America/New_York
  - name: Lake Palace
    timezone: Asia/Kolkata
`))
	require.NoError(t, err)
	require.Len(t, ps, 2)
	require.Equal(t, "Asia/Kolkata", ps[1].Timezone)

	_, err = ParseSeed([]byte(`
properties:
  - name: Nowhere Inn
    timezone: Mars/Olympus
`))
	require.ErrorIs(t, err, opday.ErrInvalidTimezone)
	require.ErrorContains(t, err, "Nowhere Inn")

	_, err = ParseSeed([]byte("properties: [:"))
	require.Error(t, err)
}

func TestImport_SkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	a, err := New("Harbor View", "America/New_York")
	require.NoError(t, err)
	b, err := New("Lake Palace", "Asia/Kolkata")
	require.NoError(t, err)
	dup, err := New("Harbor View", "Europe/London")
	require.NoError(t, err)

	n, err := Import(ctx, store, []Property{a, b, dup})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Harbor View", list[0].Name)
	require.Equal(t, "America/New_York", list[0].Timezone)

	_, err = store.Get(ctx, dup.ID)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestMemStore_UpdateTimezone(t *testing.T) {
	ctx := context.Background()
	p, err := New("Harbor View", "America/New_York")
	require.NoError(t, err)
	store := NewMemStore(p)

	require.NoError(t, store.UpdateTimezone(ctx, p.ID, " Europe/London "))
	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Europe/London", got.Timezone)
	require.False(t, got.UpdatedAt.Before(p.UpdatedAt))

	err = store.UpdateTimezone(ctx, p.ID, "Not/AZone")
	require.ErrorIs(t, err, opday.ErrInvalidTimezone)
	got, err = store.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Europe/London", got.Timezone)

	require.ErrorIs(t, store.UpdateTimezone(ctx, uuid.New(), "UTC"), db.ErrNotFound)
}

// fakeRow scans fixed column values, the way pgx hands them back.
type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

func TestScanProperty(t *testing.T) {
	id := uuid.New()
	ist := time.FixedZone("IST", 5*3600+1800)
	created := time.Date(2025, 1, 15, 6, 0, 0, 0, ist)

	p, err := scanProperty(fakeRow{vals: []any{id, "Lake Palace", "Asia/Kolkata", created, created}})
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.Equal(t, "Asia/Kolkata", p.Timezone)
	require.Equal(t, time.UTC, p.CreatedAt.Location())
	require.True(t, p.CreatedAt.Equal(created))

	_, err = scanProperty(fakeRow{err: pgx.ErrNoRows})
	require.ErrorIs(t, db.WrapNotFound(err), db.ErrNotFound)
}
