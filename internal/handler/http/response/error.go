package response

import (
	"errors"
	"net/http"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/auth"
	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/domain/leave"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/domain/user"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

// rejectionStatus maps stable attendance rejection codes to HTTP statuses.
var rejectionStatus = map[string]int{
	attendance.CodeInvalidType:      http.StatusBadRequest,
	attendance.CodeInvalidCoords:    http.StatusBadRequest,
	attendance.CodeNoPhoto:          http.StatusBadRequest,
	attendance.CodeLowAccuracy:      http.StatusUnprocessableEntity,
	attendance.CodeOutsideGeofence:  http.StatusUnprocessableEntity,
	attendance.CodeAlreadyClockedIn: http.StatusConflict,
	attendance.CodeNotClockedIn:     http.StatusConflict,
	attendance.CodeNoAuth:           http.StatusUnauthorized,
	attendance.CodeInvalidUser:      http.StatusForbidden,
	attendance.CodeNoProfile:        http.StatusNotFound,
	attendance.CodeInsertFailed:     http.StatusInternalServerError,
	attendance.CodeInternalError:    http.StatusInternalServerError,
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Coded attendance rejections keep the flat submission contract shape.
	var coded *attendance.Error
	if errors.As(err, &coded) {
		status, ok := rejectionStatus[coded.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		Rejection(w, status, coded.Code, coded.Message, coded.Details)
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Reference data errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, leave.ErrGrantNotFound):
		NotFound(w, "Leave grant not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
