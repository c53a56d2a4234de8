package postgresql

import (
	"context"
	"fmt"

	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

// Insert implements audit.AuditRepository. Audit entries never ride the
// caller's transaction: the primary operation must not be rolled back by an
// audit fault, and an audit row must not outlive a rolled-back operation.
func (a *auditRepository) Insert(ctx context.Context, entry audit.Entry) error {
	_, err := a.db.Pool.Exec(ctx, `
		INSERT INTO audit_log (actor_id, action, resource_type, resource_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		entry.ActorID, entry.Action, entry.ResourceType, entry.ResourceID,
		entry.Details, entry.IPAddress, entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

// List implements audit.AuditRepository.
func (a *auditRepository) List(ctx context.Context, filter audit.Filter) ([]audit.Entry, int64, error) {
	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.ActorID != nil && *filter.ActorID != "" {
		baseWhere += fmt.Sprintf(" AND actor_id = $%d", argIdx)
		args = append(args, *filter.ActorID)
		argIdx++
	}
	if filter.ResourceType != nil && *filter.ResourceType != "" {
		baseWhere += fmt.Sprintf(" AND resource_type = $%d", argIdx)
		args = append(args, *filter.ResourceType)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND created_at < ($%d::date + interval '1 day')", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	if err := a.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM audit_log WHERE "+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit entries: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := a.db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT id, actor_id, action, resource_type, resource_id, details, ip_address, user_agent, created_at
		FROM audit_log
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID, &e.ActorID, &e.Action, &e.ResourceType, &e.ResourceID,
			&e.Details, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}
