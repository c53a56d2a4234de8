package company

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy is the company-wide attendance and payroll configuration. Office
// coordinates and the geofence radius live here, never in client requests.
type Policy struct {
	ID       string
	Name     string
	Timezone string

	OfficeLatitude  float64
	OfficeLongitude float64
	GeofenceRadiusM float64

	GracePeriodMinutes int

	// DefaultStartTime and DefaultEndTime are "HH:MM" fallbacks used when an
	// employee has no assigned shift.
	DefaultStartTime string
	DefaultEndTime   string

	StandardWorkHours float64

	LatePenaltyPerMinute       decimal.Decimal
	EarlyLeavePenaltyPerMinute decimal.Decimal
	OvertimeRatePerHour        decimal.Decimal

	// Statutory contribution and withholding tax computation are optional
	// per company; the rates themselves are fixed by statute.
	ContributionsEnabled bool
	TaxEnabled           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the policy timezone, falling back to the given location
// when the stored name is empty or unknown. Calendar-day boundaries for
// attendance and payroll are computed in the returned location.
func (p Policy) Location(fallback *time.Location) *time.Location {
	if p.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
