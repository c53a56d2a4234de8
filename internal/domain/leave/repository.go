package leave

import (
	"context"
	"errors"
	"time"
)

var ErrGrantNotFound = errors.New("leave grant not found")

type LeaveRepository interface {
	Create(ctx context.Context, grant Grant) (Grant, error)

	// ListByEmployeeAndPeriod returns approved grants whose ranges overlap
	// [start, end], company scoped.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Grant, error)

	ListByCompany(ctx context.Context, companyID string) ([]Grant, error)
}

type LeaveService interface {
	CreateGrant(ctx context.Context, req CreateGrantRequest) (GrantResponse, error)
	ListGrants(ctx context.Context) ([]GrantResponse, error)
}
