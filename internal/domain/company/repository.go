package company

import (
	"context"
	"errors"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	GetPolicy(ctx context.Context, companyID string) (Policy, error)
}
