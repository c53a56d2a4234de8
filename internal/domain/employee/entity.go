package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes office employees, who are evaluated on punctuality,
// from field employees, who are evaluated only on worked duration.
type Kind string

const (
	KindOffice Kind = "office"
	KindField  Kind = "field"
)

// SalaryBasis determines how the monthly salary is derived from BaseSalary.
type SalaryBasis string

const (
	BasisMonthly SalaryBasis = "monthly"
	BasisDaily   SalaryBasis = "daily"
)

type Employee struct {
	ID        string
	CompanyID string
	UserID    *string
	FullName  string

	Kind            Kind
	RequireGeofence bool
	ShiftID         *string

	BaseSalary  decimal.Decimal
	SalaryBasis SalaryBasis

	// TaxCategory is the declared dependent/marital bracket used to pick the
	// non-taxable income threshold, e.g. "TK/0" or "K/2".
	TaxCategory string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
