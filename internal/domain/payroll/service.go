package payroll

import "context"

// PayrollService runs the read-only payroll aggregation for a period. The
// run is idempotent: it produces fresh results on every call and persists
// nothing.
type PayrollService interface {
	Run(ctx context.Context, req RunPayrollRequest) (RunPayrollResponse, error)
}
