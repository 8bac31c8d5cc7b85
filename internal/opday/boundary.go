package opday

import "time"

// Boundary is the window of one operational day. Start is inclusive; End is
// the last millisecond of the day, so the window is [Start, End+1ms).
type Boundary struct {
	Date  Date      `json:"date"`
	Zone  string    `json:"timezone"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (b Boundary) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End.Add(time.Millisecond))
}

// Span is a reservation's stay as seen by the calculator.
type Span struct {
	CheckIn  time.Time
	CheckOut time.Time
	Zone     string
}
