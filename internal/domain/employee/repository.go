package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetActiveByCompanyID returns all active employees of a company.
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// GetActiveByIDs returns the active employees among ids, company scoped.
	GetActiveByIDs(ctx context.Context, ids []string, companyID string) ([]Employee, error)
}
