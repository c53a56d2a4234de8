package attendance

import (
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

// Kind is the kind of presence event an employee can submit.
type Kind string

const (
	KindClockIn  Kind = "clock_in"
	KindClockOut Kind = "clock_out"
	KindBreakOut Kind = "break_out"
	KindBreakIn  Kind = "break_in"
)

var KindValues = []string{
	string(KindClockIn),
	string(KindClockOut),
	string(KindBreakOut),
	string(KindBreakIn),
}

func (k Kind) Valid() bool {
	return validator.IsInSlice(string(k), KindValues)
}

// Event is one physical presence event. Records are append-only: they are
// created only through a successful validation pass and never updated or
// deleted by the normal flow.
type Event struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Kind       Kind

	// Timestamp is always assigned by the validating service, never trusted
	// from the caller.
	Timestamp time.Time

	Latitude  float64
	Longitude float64
	AccuracyM float64
	PhotoRef  string

	// SuspectedMock marks an implausibly precise fix sitting almost exactly
	// on the geofence boundary. It never blocks the event.
	SuspectedMock bool
	Note          *string

	CreatedAt time.Time

	// Joined fields
	EmployeeName *string
}
