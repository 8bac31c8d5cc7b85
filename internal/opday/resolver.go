package opday

import (
	"errors"
	"fmt"
	"sync"
	"time"

	// fallback for hosts without a zoneinfo database
	_ "time/tzdata"
)

// Resolver turns an IANA timezone name into its rule set.
type Resolver interface {
	Resolve(name string) (*time.Location, error)
}

// TZDB resolves names against the IANA timezone database and memoizes the
// loaded locations. It is safe for concurrent use.
type TZDB struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

// NewTZDB returns an empty TZDB.
func NewTZDB() *TZDB {
	return &TZDB{cache: make(map[string]*time.Location)}
}

var defaultTZDB = NewTZDB()

// Resolve loads name from the timezone database. The empty string and
// "Local" are rejected: time.LoadLocation maps them to UTC and the host zone,
// neither of which is a property setting.
func (d *TZDB) Resolve(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%q is not an IANA identifier", name)
	}

	d.mu.RLock()
	loc, ok := d.cache[name]
	d.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.cache == nil {
		d.cache = make(map[string]*time.Location)
	}
	d.cache[name] = loc
	d.mu.Unlock()
	return loc, nil
}

// FixedResolver maps zone names to fixed locations, usually built with
// time.FixedZone. Unknown names fail.
type FixedResolver map[string]*time.Location

// Resolve looks name up in the table.
func (r FixedResolver) Resolve(name string) (*time.Location, error) {
	loc, ok := r[name]
	if !ok || loc == nil {
		return nil, errors.New("unknown zone")
	}
	return loc, nil
}
