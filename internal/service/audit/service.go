package audit

import (
	"context"
	"fmt"

	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	repo audit.AuditRepository
}

func NewAuditService(repo audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{repo: repo}
}

// ListEntries implements audit.AuditService.
func (s *AuditServiceImpl) ListEntries(ctx context.Context, filter audit.Filter) (audit.ListEntriesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return audit.ListEntriesResponse{}, fmt.Errorf("failed to list audit entries: %w", err)
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, audit.MapEntryToResponse(e))
	}
	return audit.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Entries:    responses,
	}, nil
}
