package payroll

import (
	"errors"

	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

var ErrInvalidPeriod = errors.New("invalid payroll period")

type RunPayrollRequest struct {
	// EmployeeIDs limits the run to the given employees. Empty means every
	// active employee of the company.
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunPayrollResponse struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	GeneratedAt string   `json:"generated_at"`
	Results     []Result `json:"results"`
}
