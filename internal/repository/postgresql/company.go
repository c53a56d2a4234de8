package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

// GetPolicy implements company.CompanyRepository.
func (c *companyRepository) GetPolicy(ctx context.Context, companyID string) (company.Policy, error) {
	q := GetQuerier(ctx, c.db)

	var p company.Policy
	err := q.QueryRow(ctx, `
		SELECT id, name, timezone,
		       office_latitude, office_longitude, geofence_radius_m,
		       grace_period_minutes, default_start_time, default_end_time,
		       standard_work_hours,
		       late_penalty_per_minute, early_leave_penalty_per_minute, overtime_rate_per_hour,
		       contributions_enabled, tax_enabled,
		       created_at, updated_at
		FROM companies
		WHERE id = $1
	`, companyID).Scan(
		&p.ID, &p.Name, &p.Timezone,
		&p.OfficeLatitude, &p.OfficeLongitude, &p.GeofenceRadiusM,
		&p.GracePeriodMinutes, &p.DefaultStartTime, &p.DefaultEndTime,
		&p.StandardWorkHours,
		&p.LatePenaltyPerMinute, &p.EarlyLeavePenaltyPerMinute, &p.OvertimeRatePerHour,
		&p.ContributionsEnabled, &p.TaxEnabled,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Policy{}, company.ErrCompanyNotFound
		}
		return company.Policy{}, fmt.Errorf("get company policy: %w", err)
	}

	return p, nil
}
