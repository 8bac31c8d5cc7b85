package audit

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/sandarbhasthana/pms-app-sub005/internal/db"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
)

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

func TestScanClosure_DateRoundTrip(t *testing.T) {
	id := uuid.New()
	closedAt := time.Date(2025, 1, 16, 6, 0, 5, 0, time.FixedZone("EST", -5*3600))

	for _, s := range []string{"2025-01-15", "2024-02-29", "2025-03-09", "2025-12-31"} {
		d := opday.MustParseDate(s)
		c, err := scanClosure(fakeRow{vals: []any{id, dateParam(d), closedAt, 2, 1, 5}})
		require.NoError(t, err, s)
		require.Equal(t, d, c.Date, s)
		require.Equal(t, id, c.PropertyID)
		require.True(t, c.ClosedAt.Equal(closedAt))
		require.Equal(t, time.UTC, c.ClosedAt.Location())
		require.Equal(t, 2, c.Arrivals)
		require.Equal(t, 1, c.Departures)
		require.Equal(t, 5, c.InHouse)
	}
}

func TestScanLastClosed(t *testing.T) {
	_, ok, err := scanLastClosed(fakeRow{vals: []any{(*time.Time)(nil)}})
	require.NoError(t, err)
	require.False(t, ok)

	last := dateParam(opday.MustParseDate("2025-01-15"))
	d, ok, err := scanLastClosed(fakeRow{vals: []any{&last}})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2025-01-15", d.String())

	_, _, err = scanLastClosed(fakeRow{err: pgx.ErrNoRows})
	require.ErrorIs(t, err, db.ErrNotFound)
}
