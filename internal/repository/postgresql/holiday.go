package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/holiday"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.CompanyID, &h.Name, &h.StartDate, &h.EndDate, &h.CreatedAt)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO holidays (company_id, name, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, h.CompanyID, h.Name, h.StartDate, h.EndDate).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("create holiday: %w", err)
	}

	return h, nil
}

// ListByPeriod implements holiday.HolidayRepository.
func (r *holidayRepository) ListByPeriod(ctx context.Context, start, end time.Time, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, company_id, name, start_date, end_date, created_at
		FROM holidays
		WHERE company_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date ASC
	`, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query holidays by period: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}

// ListByCompany implements holiday.HolidayRepository.
func (r *holidayRepository) ListByCompany(ctx context.Context, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, company_id, name, start_date, end_date, created_at
		FROM holidays
		WHERE company_id = $1
		ORDER BY start_date DESC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}
