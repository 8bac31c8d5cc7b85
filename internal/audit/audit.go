// Package audit closes each property's operational day once its 06:00
// rollover has passed.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

// Clock provides time for the worker.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Closure is the record of one closed operational day.
type Closure struct {
	PropertyID uuid.UUID  `json:"property_id"`
	Date       opday.Date `json:"business_date"`
	ClosedAt   time.Time  `json:"closed_at"`
	Arrivals   int        `json:"arrivals"`
	Departures int        `json:"departures"`
	InHouse    int        `json:"in_house"`
}

// ClosureStore persists closures. Close must be idempotent per
// (property, date).
type ClosureStore interface {
	LastClosed(ctx context.Context, propertyID uuid.UUID) (opday.Date, bool, error)
	Close(ctx context.Context, c Closure) error
	List(ctx context.Context, propertyID uuid.UUID, limit int) ([]Closure, error)
}

// DaySheeter produces the movements a closure counts.
type DaySheeter interface {
	DaySheet(ctx context.Context, propertyID uuid.UUID, d opday.Date) (reservation.DaySheet, error)
}
