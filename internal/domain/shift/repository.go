package shift

import (
	"context"
	"errors"
)

var ErrShiftNotFound = errors.New("shift not found")

type ShiftRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
}
