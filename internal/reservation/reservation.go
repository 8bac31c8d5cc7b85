package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalid = errors.New("reservation: invalid")

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type Reservation struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	GuestName  string    `json:"guest_name"`
	CheckInAt  time.Time `json:"check_in_at"`
	CheckOutAt time.Time `json:"check_out_at"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// New builds a confirmed reservation with a fresh id. Instants are stored in
// UTC.
func New(propertyID uuid.UUID, guest string, checkIn, checkOut time.Time) (Reservation, error) {
	r := Reservation{
		ID:         uuid.New(),
		PropertyID: propertyID,
		GuestName:  strings.TrimSpace(guest),
		CheckInAt:  checkIn.UTC(),
		CheckOutAt: checkOut.UTC(),
		Status:     StatusConfirmed,
		CreatedAt:  time.Now().UTC(),
	}
	return r, r.Validate()
}

func (r Reservation) Validate() error {
	if r.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: property_id required", ErrInvalid)
	}
	if r.GuestName == "" {
		return fmt.Errorf("%w: guest_name required", ErrInvalid)
	}
	if r.CheckInAt.IsZero() || r.CheckOutAt.IsZero() {
		return fmt.Errorf("%w: check_in_at and check_out_at required", ErrInvalid)
	}
	if !r.CheckOutAt.After(r.CheckInAt) {
		return fmt.Errorf("%w: check_out_at must be after check_in_at", ErrInvalid)
	}
	switch r.Status {
	case StatusConfirmed, StatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, r.Status)
	}
	return nil
}

// Store persists reservations.
type Store interface {
	Create(ctx context.Context, r Reservation) error
	Get(ctx context.Context, id uuid.UUID) (Reservation, error)
	// ListOverlapping returns non-cancelled reservations of a property whose
	// stay touches [from, to): checked out at or after from, checked in
	// before to.
	ListOverlapping(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]Reservation, error)
}
