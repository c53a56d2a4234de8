package shift

import (
	"fmt"
	"time"
)

// Shift is a reference work schedule. Times are wall-clock "HH:MM" strings
// interpreted in the company timezone.
type Shift struct {
	ID        string
	CompanyID string
	Name      string
	StartTime string
	EndTime   string

	// BreakMinutes is the scheduled unpaid break, informational only:
	// worked hours are measured from actual clock events, not the schedule.
	BreakMinutes int

	// Weekdays the shift is active on, 0=Sunday through 6=Saturday. Days
	// outside the pattern count as rest days in payroll aggregation; an
	// empty pattern means the Monday through Friday default.
	Weekdays []int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Shift) ActiveOn(day time.Weekday) bool {
	for _, wd := range s.Weekdays {
		if wd == int(day) {
			return true
		}
	}
	return false
}

// ClockMinutes converts an "HH:MM" wall-clock string to minutes after
// midnight.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
