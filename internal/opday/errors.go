package opday

import (
	"errors"
	"fmt"
)

// ErrInvalidTimezone is returned when a timezone name cannot be resolved.
// It indicates misconfiguration and is never recovered inside this package.
var ErrInvalidTimezone = errors.New("opday: invalid timezone")

// ZoneError records the operation and zone name that failed to resolve.
// errors.Is(err, ErrInvalidTimezone) holds for every ZoneError.
type ZoneError struct {
	Op   string
	Zone string
	Err  error
}

func (e *ZoneError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("opday: %s: invalid timezone %q", e.Op, e.Zone)
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *ZoneError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ZoneError) Is(target error) bool {
	return target == ErrInvalidTimezone
}

// IsInvalidTimezone reports whether err stems from an unresolvable zone.
func IsInvalidTimezone(err error) bool {
	return errors.Is(err, ErrInvalidTimezone)
}
