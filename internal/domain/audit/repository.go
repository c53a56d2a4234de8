package audit

import "context"

type AuditRepository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
}

// Recorder is a best-effort append-only sink. Implementations must never
// fail the caller's primary operation; faults are surfaced to operations
// monitoring instead.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type AuditService interface {
	ListEntries(ctx context.Context, filter Filter) (ListEntriesResponse, error)
}

type ListEntriesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Entries    []EntryResponse `json:"entries"`
}
