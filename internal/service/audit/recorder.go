package audit

import (
	"context"
	"log/slog"

	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
)

// RecorderImpl appends entries through the repository. A failed append is
// logged and swallowed: the audit trail must never fail the operation that
// produced it.
type RecorderImpl struct {
	repo   audit.AuditRepository
	logger *slog.Logger
}

func NewRecorder(repo audit.AuditRepository, logger *slog.Logger) audit.Recorder {
	return &RecorderImpl{repo: repo, logger: logger}
}

func (r *RecorderImpl) Record(ctx context.Context, entry audit.Entry) {
	if meta, ok := audit.RequestMetadataFromContext(ctx); ok {
		if entry.IPAddress == nil && meta.IPAddress != "" {
			entry.IPAddress = &meta.IPAddress
		}
		if entry.UserAgent == nil && meta.UserAgent != "" {
			entry.UserAgent = &meta.UserAgent
		}
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "failed to append audit entry",
			slog.String("action", entry.Action),
			slog.String("resource_type", entry.ResourceType),
			slog.String("resource_id", entry.ResourceID),
			slog.Any("error", err),
		)
	}
}
