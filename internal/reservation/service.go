package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
)

// Service answers operational-day questions about reservations using the
// owning property's timezone.
type Service struct {
	Properties   property.Store
	Reservations Store
	Calc         opday.Calculator
}

// Summary is a reservation with its stay expressed in operational dates.
type Summary struct {
	Reservation
	Timezone     string       `json:"timezone"`
	Nights       int          `json:"nights"`
	CheckInDate  opday.Date   `json:"check_in_date"`
	CheckOutDate opday.Date   `json:"check_out_date"`
	StayDates    []opday.Date `json:"stay_dates"`
}

// DaySheet lists the movements of one property on one operational day.
type DaySheet struct {
	PropertyID uuid.UUID      `json:"property_id"`
	Boundary   opday.Boundary `json:"boundary"`
	Arrivals   []Reservation  `json:"arrivals"`
	Departures []Reservation  `json:"departures"`
	InHouse    []Reservation  `json:"in_house"`
}

// Create stores r after checking the property exists.
func (s *Service) Create(ctx context.Context, r Reservation) (Summary, error) {
	p, err := s.Properties.Get(ctx, r.PropertyID)
	if err != nil {
		return Summary{}, fmt.Errorf("property %s: %w", r.PropertyID, err)
	}
	sum, err := s.summarize(p, r)
	if err != nil {
		return Summary{}, err
	}
	if err := s.Reservations.Create(ctx, r); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// Summary loads reservation id and derives its operational dates.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (Summary, error) {
	r, err := s.Reservations.Get(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	p, err := s.Properties.Get(ctx, r.PropertyID)
	if err != nil {
		return Summary{}, fmt.Errorf("property %s: %w", r.PropertyID, err)
	}
	return s.summarize(p, r)
}

func (s *Service) summarize(p property.Property, r Reservation) (Summary, error) {
	z, err := s.Calc.Zone(p.Timezone)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Reservation:  r,
		Timezone:     z.Name(),
		Nights:       z.Nights(r.CheckInAt, r.CheckOutAt),
		CheckInDate:  z.OperationalDate(r.CheckInAt),
		CheckOutDate: z.OperationalDate(r.CheckOutAt),
		StayDates:    z.StayDates(r.CheckInAt, r.CheckOutAt),
	}, nil
}

// DaySheet returns arrivals, departures and in-house guests of a property on
// operational date d. A guest is in house when d is one of their stay dates.
func (s *Service) DaySheet(ctx context.Context, propertyID uuid.UUID, d opday.Date) (DaySheet, error) {
	p, err := s.Properties.Get(ctx, propertyID)
	if err != nil {
		return DaySheet{}, fmt.Errorf("property %s: %w", propertyID, err)
	}
	z, err := s.Calc.Zone(p.Timezone)
	if err != nil {
		return DaySheet{}, err
	}

	b := z.BoundaryOn(d)
	// every arrival, departure and in-house stay on d touches the window;
	// the upper bound is the next day's start, exclusive
	rs, err := s.Reservations.ListOverlapping(ctx, propertyID, b.Start, b.End.Add(time.Millisecond))
	if err != nil {
		return DaySheet{}, err
	}

	sheet := DaySheet{
		PropertyID: propertyID,
		Boundary:   b,
		Arrivals:   []Reservation{},
		Departures: []Reservation{},
		InHouse:    []Reservation{},
	}
	for _, r := range rs {
		if b.Contains(r.CheckInAt) {
			sheet.Arrivals = append(sheet.Arrivals, r)
		}
		if b.Contains(r.CheckOutAt) {
			sheet.Departures = append(sheet.Departures, r)
		}
		if stays(z, r, d) {
			sheet.InHouse = append(sheet.InHouse, r)
		}
	}
	return sheet, nil
}

func stays(z opday.Zone, r Reservation, d opday.Date) bool {
	first := z.OperationalDate(r.CheckInAt)
	if d.Before(first) {
		return false
	}
	return opday.DaysBetween(first, d) < z.Nights(r.CheckInAt, r.CheckOutAt)
}
