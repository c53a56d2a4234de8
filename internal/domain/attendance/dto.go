package attendance

import (
	"fmt"
	"math"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

// MaxAccuracyMeters is the largest device-reported accuracy accepted for an
// event. The boundary is inclusive.
const MaxAccuracyMeters = 100

type SubmitEventRequest struct {
	EventKind string `json:"event_kind"`
	// Latitude and Longitude are pointers so a body that omits them is
	// distinguishable from a fix at (0, 0).
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	AccuracyM float64  `json:"accuracy_m"`
	PhotoRef  string   `json:"photo_ref"`
}

// Validate runs the ordered input checks of the submission contract. The
// first failing check wins so every rejection has exactly one code.
func (r *SubmitEventRequest) Validate() error {
	if !Kind(r.EventKind).Valid() {
		return ErrInvalidType
	}
	if r.Latitude == nil || r.Longitude == nil {
		return ErrInvalidCoords
	}
	if !validator.IsValidLatitude(*r.Latitude) || !validator.IsValidLongitude(*r.Longitude) {
		return ErrInvalidCoords
	}
	if validator.IsEmpty(r.PhotoRef) {
		return ErrNoPhoto
	}
	if r.AccuracyM > MaxAccuracyMeters {
		return NewError(CodeLowAccuracy,
			fmt.Sprintf("location accuracy too low: %dm (max %dm)", int(math.Round(r.AccuracyM)), MaxAccuracyMeters)).
			WithDetail("accuracy", math.Round(r.AccuracyM))
	}
	return nil
}

type EventResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	EventKind     string   `json:"event_kind"`
	Timestamp     string   `json:"timestamp"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	AccuracyM     float64  `json:"accuracy_m"`
	PhotoRef      string   `json:"photo_ref"`
	SuspectedMock bool     `json:"suspected_mock"`
	Note          *string  `json:"note,omitempty"`
	DistanceM     *float64 `json:"distance_m,omitempty"`
}

// SubmitEventResult is the success envelope of the submission contract.
type SubmitEventResult struct {
	Success bool          `json:"success"`
	Record  EventResponse `json:"record"`
	Message string        `json:"message"`
}

type EventFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Kind       *string

	Page  int
	Limit int
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if f.Kind != nil && *f.Kind != "" && !Kind(*f.Kind).Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be one of " + fmt.Sprint(KindValues)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Events     []EventResponse `json:"events"`
}

// MapEventToResponse converts an Event entity to its wire representation.
func MapEventToResponse(ev Event) EventResponse {
	return EventResponse{
		ID:            ev.ID,
		EmployeeID:    ev.EmployeeID,
		EmployeeName:  ev.EmployeeName,
		EventKind:     string(ev.Kind),
		Timestamp:     ev.Timestamp.UTC().Format(time.RFC3339),
		Latitude:      ev.Latitude,
		Longitude:     ev.Longitude,
		AccuracyM:     ev.AccuracyM,
		PhotoRef:      ev.PhotoRef,
		SuspectedMock: ev.SuspectedMock,
		Note:          ev.Note,
	}
}
