package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)

	// ListByPeriod returns holidays whose ranges overlap [start, end],
	// company scoped.
	ListByPeriod(ctx context.Context, start, end time.Time, companyID string) ([]Holiday, error)

	ListByCompany(ctx context.Context, companyID string) ([]Holiday, error)
}

type HolidayService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
}
