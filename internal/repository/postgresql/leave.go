package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/leave"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func scanGrant(row pgx.Row) (leave.Grant, error) {
	var g leave.Grant
	err := row.Scan(
		&g.ID, &g.EmployeeID, &g.CompanyID, &g.Type,
		&g.StartDate, &g.EndDate, &g.Reason, &g.CreatedAt,
	)
	return g, err
}

// Create implements leave.LeaveRepository.
func (l *leaveRepository) Create(ctx context.Context, grant leave.Grant) (leave.Grant, error) {
	q := GetQuerier(ctx, l.db)

	err := q.QueryRow(ctx, `
		INSERT INTO leave_grants (employee_id, company_id, type, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		grant.EmployeeID, grant.CompanyID, grant.Type,
		grant.StartDate, grant.EndDate, grant.Reason,
	).Scan(&grant.ID, &grant.CreatedAt)
	if err != nil {
		return leave.Grant{}, fmt.Errorf("create leave grant: %w", err)
	}

	return grant, nil
}

// ListByEmployeeAndPeriod implements leave.LeaveRepository.
func (l *leaveRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]leave.Grant, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, company_id, type, start_date, end_date, reason, created_at
		FROM leave_grants
		WHERE employee_id = $1
		  AND company_id = $2
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date ASC
	`, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query leave grants by period: %w", err)
	}
	defer rows.Close()

	var grants []leave.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}

	return grants, nil
}

// ListByCompany implements leave.LeaveRepository.
func (l *leaveRepository) ListByCompany(ctx context.Context, companyID string) ([]leave.Grant, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, company_id, type, start_date, end_date, reason, created_at
		FROM leave_grants
		WHERE company_id = $1
		ORDER BY start_date DESC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}

	return grants, nil
}
