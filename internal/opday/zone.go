package opday

import "time"

// DayStartHour is the local hour at which an operational day begins.
const DayStartHour = 6

// Zone is a validated IANA timezone. The zero Zone is not usable; obtain one
// from LoadZone or Calculator.Zone.
type Zone struct {
	name string
	loc  *time.Location
}

// LoadZone resolves name against the IANA database.
func LoadZone(name string) (Zone, error) {
	return Calculator{}.Zone(name)
}

// Name returns the IANA identifier the zone was loaded from.
func (z Zone) Name() string { return z.name }

// Location returns the resolved rule set.
func (z Zone) Location() *time.Location { return z.loc }

// OperationalDate returns the operational day t falls in: the local calendar
// date, or the previous one when the local hour is before DayStartHour.
func (z Zone) OperationalDate(t time.Time) Date {
	local := t.In(z.loc)
	d := DateOf(local)
	if local.Hour() < DayStartHour {
		d = d.AddDays(-1)
	}
	return d
}

// StartOn returns 06:00:00.000 local time on d, in UTC.
func (z Zone) StartOn(d Date) time.Time {
	return d.At(DayStartHour, 0, 0, 0, z.loc).UTC()
}

// EndOn returns 05:59:59.999 local time on the day after d, in UTC.
func (z Zone) EndOn(d Date) time.Time {
	return d.AddDays(1).At(DayStartHour-1, 59, 59, int(999*time.Millisecond), z.loc).UTC()
}

// DayStart returns the start of the operational day containing t.
func (z Zone) DayStart(t time.Time) time.Time {
	return z.StartOn(z.OperationalDate(t))
}

// DayEnd returns the last millisecond of the operational day containing t.
func (z Zone) DayEnd(t time.Time) time.Time {
	return z.EndOn(z.OperationalDate(t))
}

// BoundaryOn returns the window of operational date d.
func (z Zone) BoundaryOn(d Date) Boundary {
	return Boundary{
		Date:  d,
		Zone:  z.name,
		Start: z.StartOn(d),
		End:   z.EndOn(d),
	}
}

// Boundary returns the window of the operational day containing t.
func (z Zone) Boundary(t time.Time) Boundary {
	return z.BoundaryOn(z.OperationalDate(t))
}

// Nights counts the operational dates between check-in and check-out. A stay
// is never shorter than one night, including check-outs that fall in the same
// operational day as the check-in or before it.
func (z Zone) Nights(checkIn, checkOut time.Time) int {
	n := DaysBetween(z.OperationalDate(checkIn), z.OperationalDate(checkOut))
	if n < 1 {
		return 1
	}
	return n
}

// IsWithinDay reports whether t falls in operational date d.
func (z Zone) IsWithinDay(t time.Time, d Date) bool {
	return z.OperationalDate(t) == d
}

// StayDates lists the operational date of every night of a stay, starting
// with the check-in date. len(StayDates(a, b)) == Nights(a, b).
func (z Zone) StayDates(checkIn, checkOut time.Time) []Date {
	first := z.OperationalDate(checkIn)
	n := z.Nights(checkIn, checkOut)
	out := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, first.AddDays(i))
	}
	return out
}
