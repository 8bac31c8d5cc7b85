package opday

import (
	"errors"
	"time"
)

// Observer is told about every calculator call and whether its zone
// resolved.
type Observer interface {
	ObserveCalc(op string, err error)
}

// Calculator resolves zone names through its Resolver and evaluates the
// operational-day operations. The zero value resolves against the IANA
// database and observes nothing. A Calculator holds no other state and is
// safe for concurrent use.
type Calculator struct {
	Resolver Resolver
	Observer Observer
}

// New returns a Calculator backed by r.
func New(r Resolver) Calculator {
	return Calculator{Resolver: r}
}

// Zone validates name and returns the resolved Zone.
func (c Calculator) Zone(name string) (Zone, error) {
	return c.zone("zone", name)
}

func (c Calculator) zone(op, name string) (Zone, error) {
	r := c.Resolver
	if r == nil {
		r = defaultTZDB
	}
	loc, err := r.Resolve(name)
	if err == nil && loc == nil {
		err = errors.New("resolver returned no location")
	}
	if err != nil {
		err = &ZoneError{Op: op, Zone: name, Err: err}
	}
	if c.Observer != nil {
		c.Observer.ObserveCalc(op, err)
	}
	if err != nil {
		return Zone{}, err
	}
	return Zone{name: name, loc: loc}, nil
}

// DayStart returns 06:00 local time, in UTC, of the operational day
// containing t. Use DayStartOn to get the start of a given calendar date.
func (c Calculator) DayStart(t time.Time, zone string) (time.Time, error) {
	z, err := c.zone("day start", zone)
	if err != nil {
		return time.Time{}, err
	}
	return z.DayStart(t), nil
}

// DayEnd returns 05:59:59.999 local time on the following calendar date, in
// UTC, of the operational day containing t. See DayEndOn for a given date.
func (c Calculator) DayEnd(t time.Time, zone string) (time.Time, error) {
	z, err := c.zone("day end", zone)
	if err != nil {
		return time.Time{}, err
	}
	return z.DayEnd(t), nil
}

// DayStartOn returns the start of operational date d.
func (c Calculator) DayStartOn(d Date, zone string) (time.Time, error) {
	z, err := c.zone("day start", zone)
	if err != nil {
		return time.Time{}, err
	}
	return z.StartOn(d), nil
}

// DayEndOn returns the last millisecond of operational date d.
func (c Calculator) DayEndOn(d Date, zone string) (time.Time, error) {
	z, err := c.zone("day end", zone)
	if err != nil {
		return time.Time{}, err
	}
	return z.EndOn(d), nil
}

// OperationalDate returns the operational date t belongs to.
func (c Calculator) OperationalDate(t time.Time, zone string) (Date, error) {
	z, err := c.zone("operational date", zone)
	if err != nil {
		return Date{}, err
	}
	return z.OperationalDate(t), nil
}

// Nights returns the number of nights between check-in and check-out, at
// least 1.
func (c Calculator) Nights(checkIn, checkOut time.Time, zone string) (int, error) {
	z, err := c.zone("nights", zone)
	if err != nil {
		return 0, err
	}
	return z.Nights(checkIn, checkOut), nil
}

// SpanNights is Nights for a Span.
func (c Calculator) SpanNights(s Span) (int, error) {
	return c.Nights(s.CheckIn, s.CheckOut, s.Zone)
}

// StayDates lists the operational date of each night of a stay.
func (c Calculator) StayDates(checkIn, checkOut time.Time, zone string) ([]Date, error) {
	z, err := c.zone("stay dates", zone)
	if err != nil {
		return nil, err
	}
	return z.StayDates(checkIn, checkOut), nil
}

// IsWithinDay reports whether t belongs to operational date d.
func (c Calculator) IsWithinDay(t time.Time, d Date, zone string) (bool, error) {
	z, err := c.zone("within day", zone)
	if err != nil {
		return false, err
	}
	return z.IsWithinDay(t, d), nil
}

// Boundary returns the window of the operational day containing t.
func (c Calculator) Boundary(t time.Time, zone string) (Boundary, error) {
	z, err := c.zone("boundary", zone)
	if err != nil {
		return Boundary{}, err
	}
	return z.Boundary(t), nil
}

// BoundaryOn returns the window of operational date d.
func (c Calculator) BoundaryOn(d Date, zone string) (Boundary, error) {
	z, err := c.zone("boundary", zone)
	if err != nil {
		return Boundary{}, err
	}
	return z.BoundaryOn(d), nil
}

var std Calculator

// DayStart is Calculator.DayStart on the IANA database.
func DayStart(t time.Time, zone string) (time.Time, error) { return std.DayStart(t, zone) }

// DayEnd is Calculator.DayEnd on the IANA database.
func DayEnd(t time.Time, zone string) (time.Time, error) { return std.DayEnd(t, zone) }

// OperationalDate is Calculator.OperationalDate on the IANA database.
func OperationalDate(t time.Time, zone string) (Date, error) { return std.OperationalDate(t, zone) }

// Nights is Calculator.Nights on the IANA database.
func Nights(checkIn, checkOut time.Time, zone string) (int, error) {
	return std.Nights(checkIn, checkOut, zone)
}

// IsWithinDay is Calculator.IsWithinDay on the IANA database.
func IsWithinDay(t time.Time, d Date, zone string) (bool, error) {
	return std.IsWithinDay(t, d, zone)
}
