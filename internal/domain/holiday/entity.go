package holiday

import "time"

// Holiday marks a date range as company-wide non-working. A holiday takes
// precedence over leave and attendance classification.
type Holiday struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// Covers reports whether day falls inside the holiday's inclusive range.
func (h Holiday) Covers(day time.Time) bool {
	return !day.Before(h.StartDate) && !day.After(h.EndDate)
}
