package attendance

import (
	"context"
	"time"
)

// Guard inspects the employee's events for the event's local calendar day,
// in timestamp order, and returns a coded error to veto the insertion.
type Guard func(dayEvents []Event) error

// AttendanceRepository defines data access for attendance events.
type AttendanceRepository interface {
	// SubmitWithGuard atomically checks and inserts an event. The guard runs
	// inside a transaction that holds a per-employee-per-day advisory lock,
	// so two concurrent submissions for the same employee and day cannot
	// both pass the guard. dayStart/dayEnd bound the local calendar day in
	// UTC instants. Either the event is fully inserted or nothing happens.
	SubmitWithGuard(ctx context.Context, event Event, dayStart, dayEnd time.Time, guard Guard) (Event, error)

	// ListByEmployeeAndPeriod returns the employee's events with timestamps
	// in [start, end), ordered by timestamp ascending.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Event, error)

	// List returns events matching the filter with pagination, company scoped.
	List(ctx context.Context, filter EventFilter, companyID string) ([]Event, int64, error)
}

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// SubmitEvent validates a presence event against policy and ordering
	// rules and persists it with a server-assigned timestamp.
	SubmitEvent(ctx context.Context, req SubmitEventRequest) (SubmitEventResult, error)

	// GetMyEvents returns the authenticated employee's events.
	GetMyEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)

	// ListEvents returns events across employees (admin).
	ListEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)
}
