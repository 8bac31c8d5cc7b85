package reservation

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	vals []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

func TestScanReservation(t *testing.T) {
	id, pid := uuid.New(), uuid.New()
	est := time.FixedZone("EST", -5*3600)
	in := time.Date(2025, 1, 16, 5, 59, 59, 999500000, est)
	out := time.Date(2025, 1, 17, 11, 0, 0, 0, est)
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	r, err := scanReservation(fakeRow{vals: []any{id, pid, "Edsger", in, out, "cancelled", created}})
	require.NoError(t, err)
	require.Equal(t, id, r.ID)
	require.Equal(t, pid, r.PropertyID)
	require.Equal(t, StatusCancelled, r.Status)
	require.Equal(t, time.UTC, r.CheckInAt.Location())
	require.True(t, r.CheckInAt.Equal(in))
	require.Equal(t, 999500000, r.CheckInAt.Nanosecond())
	require.True(t, r.CheckOutAt.Equal(out))
}
