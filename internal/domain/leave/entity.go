package leave

import "time"

type Type string

const (
	TypeAnnual Type = "annual"
	TypeSick   Type = "sick"
	TypePermit Type = "permit"
)

var TypeValues = []string{string(TypeAnnual), string(TypeSick), string(TypePermit)}

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypePermit:
		return true
	}
	return false
}

// Grant is an approved absence over an inclusive date range. A grant that
// overlaps a working day suppresses attendance evaluation for that day.
type Grant struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	CreatedAt  time.Time
}

// Covers reports whether day falls inside the grant's inclusive range.
// day must be truncated to midnight in the same location as the range.
func (g Grant) Covers(day time.Time) bool {
	return !day.Before(g.StartDate) && !day.After(g.EndDate)
}
