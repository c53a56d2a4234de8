package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const eventColumns = `
	id, employee_id, company_id, kind, "timestamp",
	latitude, longitude, accuracy_m, photo_ref,
	suspected_mock, note, created_at
`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.Kind, &ev.Timestamp,
		&ev.Latitude, &ev.Longitude, &ev.AccuracyM, &ev.PhotoRef,
		&ev.SuspectedMock, &ev.Note, &ev.CreatedAt,
	)
	return ev, err
}

// SubmitWithGuard implements attendance.AttendanceRepository.
//
// The advisory lock keyed on (employee, local day) serializes concurrent
// check-then-insert sequences: two simultaneous clock_in submissions for the
// same employee and day cannot both pass the guard.
func (a *attendanceRepository) SubmitWithGuard(ctx context.Context, event attendance.Event, dayStart, dayEnd time.Time, guard attendance.Guard) (attendance.Event, error) {
	var inserted attendance.Event

	err := WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, a.db)

		lockKey := event.EmployeeID + "|" + dayStart.UTC().Format("2006-01-02")
		if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			return fmt.Errorf("acquire day lock: %w", err)
		}

		rows, err := q.Query(txCtx, `
			SELECT `+eventColumns+`
			FROM attendance_events
			WHERE employee_id = $1
			  AND "timestamp" >= $2
			  AND "timestamp" < $3
			ORDER BY "timestamp" ASC
		`, event.EmployeeID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("list events for day: %w", err)
		}

		dayEvents, err := collectEvents(rows)
		if err != nil {
			return err
		}

		if err := guard(dayEvents); err != nil {
			return err
		}

		err = q.QueryRow(txCtx, `
			INSERT INTO attendance_events (
				employee_id, company_id, kind, "timestamp",
				latitude, longitude, accuracy_m, photo_ref,
				suspected_mock, note
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`,
			event.EmployeeID, event.CompanyID, event.Kind, event.Timestamp,
			event.Latitude, event.Longitude, event.AccuracyM, event.PhotoRef,
			event.SuspectedMock, event.Note,
		).Scan(&event.ID, &event.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert attendance event: %w", err)
		}

		inserted = event
		return nil
	})
	if err != nil {
		return attendance.Event{}, err
	}

	return inserted, nil
}

// ListByEmployeeAndPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT `+eventColumns+`
		FROM attendance_events
		WHERE employee_id = $1
		  AND "timestamp" >= $2
		  AND "timestamp" < $3
		ORDER BY "timestamp" ASC
	`, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query events by period: %w", err)
	}

	return collectEvents(rows)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.EventFilter, companyID string) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.\"timestamp\" >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.\"timestamp\" < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Kind != nil && *filter.Kind != "" {
		baseWhere += fmt.Sprintf(" AND a.kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_events a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendance events: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	selectQuery := fmt.Sprintf(`
		SELECT
			a.id, a.employee_id, a.company_id, a.kind, a."timestamp",
			a.latitude, a.longitude, a.accuracy_m, a.photo_ref,
			a.suspected_mock, a.note, a.created_at,
			e.full_name AS employee_name
		FROM attendance_events a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a."timestamp" DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.Kind, &ev.Timestamp,
			&ev.Latitude, &ev.Longitude, &ev.AccuracyM, &ev.PhotoRef,
			&ev.SuspectedMock, &ev.Note, &ev.CreatedAt,
			&ev.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, ev)
	}

	return events, total, nil
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate attendance events: %w", err)
	}

	return events, nil
}
