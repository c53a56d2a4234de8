package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	var sh shift.Shift
	err := q.QueryRow(ctx, `
		SELECT id, company_id, name, start_time, end_time, break_minutes, weekdays,
		       created_at, updated_at
		FROM shifts
		WHERE id = $1 AND company_id = $2
	`, id, companyID).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.StartTime, &sh.EndTime, &sh.BreakMinutes, &sh.Weekdays,
		&sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("get shift by id: %w", err)
	}

	return sh, nil
}
