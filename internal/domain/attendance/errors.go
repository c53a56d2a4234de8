package attendance

// Stable, machine-checkable rejection codes.
const (
	CodeInvalidType      = "INVALID_TYPE"
	CodeInvalidCoords    = "INVALID_COORDS"
	CodeNoPhoto          = "NO_PHOTO"
	CodeLowAccuracy      = "LOW_ACCURACY"
	CodeOutsideGeofence  = "OUTSIDE_GEOFENCE"
	CodeAlreadyClockedIn = "ALREADY_CLOCKED_IN"
	CodeNotClockedIn     = "NOT_CLOCKED_IN"
	CodeNoAuth           = "NO_AUTH"
	CodeInvalidUser      = "INVALID_USER"
	CodeNoProfile        = "NO_PROFILE"
	CodeInsertFailed     = "INSERT_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Error is a coded rejection. Details carries machine-readable context such
// as the measured distance and allowed radius for geofence rejections so the
// caller can explain the rejection to the user.
type Error struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Rejections with no dynamic context.
var (
	ErrInvalidType      = NewError(CodeInvalidType, "invalid attendance event kind")
	ErrInvalidCoords    = NewError(CodeInvalidCoords, "latitude and longitude are required and must be valid coordinates")
	ErrNoPhoto          = NewError(CodeNoPhoto, "attendance proof photo is required")
	ErrAlreadyClockedIn = NewError(CodeAlreadyClockedIn, "you are already clocked in")
	ErrNotClockedIn     = NewError(CodeNotClockedIn, "you are not clocked in")
	ErrBreakOpen        = NewError(CodeAlreadyClockedIn, "you already have an open break")
	ErrNoOpenBreak      = NewError(CodeNotClockedIn, "you have no open break")
	ErrOnBreak          = NewError(CodeNotClockedIn, "you must end your break before clocking out")
	ErrNoAuth           = NewError(CodeNoAuth, "authentication required")
	ErrInvalidUser      = NewError(CodeInvalidUser, "authenticated user is not linked to an employee")
	ErrNoProfile        = NewError(CodeNoProfile, "employee profile not found")
	ErrInsertFailed     = NewError(CodeInsertFailed, "failed to store attendance event")
)
