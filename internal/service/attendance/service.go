package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/geo"
)

// Spoofing heuristic thresholds. A fix this precise sitting almost exactly
// on the geofence boundary is flagged, never rejected.
const (
	mockAccuracyMaxMeters   = 5.0
	mockBoundaryBandMeters  = 10.0
	defaultHistoryRangeDays = 30
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	company.CompanyRepository
	recorder    audit.Recorder
	fallbackLoc *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	recorder audit.Recorder,
	fallbackLoc *time.Location,
) attendance.AttendanceService {
	if fallbackLoc == nil {
		fallbackLoc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		CompanyRepository:    companyRepo,
		recorder:             recorder,
		fallbackLoc:          fallbackLoc,
	}
}

func identityFromContext(ctx context.Context) (employeeID, companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", attendance.ErrNoAuth
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", "", attendance.ErrInvalidUser
	}

	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", attendance.ErrInvalidUser
	}

	userID, _ = claims["user_id"].(string)
	return employeeID, companyID, userID, nil
}

// localDayBounds returns the UTC instants bounding now's calendar day in loc.
func localDayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	nowLocal := now.In(loc)
	startLocal := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	return startLocal.UTC(), startLocal.Add(24 * time.Hour).UTC()
}

func acceptedMessage(kind attendance.Kind) string {
	switch kind {
	case attendance.KindClockIn:
		return "clock-in recorded"
	case attendance.KindClockOut:
		return "clock-out recorded"
	case attendance.KindBreakOut:
		return "break start recorded"
	case attendance.KindBreakIn:
		return "break end recorded"
	}
	return "event recorded"
}

// SubmitEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SubmitEvent(ctx context.Context, req attendance.SubmitEventRequest) (attendance.SubmitEventResult, error) {
	employeeID, companyID, userID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.SubmitEventResult{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.SubmitEventResult{}, err
	}
	kind := attendance.Kind(req.EventKind)
	lat, lon := *req.Latitude, *req.Longitude
	nowUTC := time.Now().UTC()

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.SubmitEventResult{}, attendance.ErrNoProfile
		}
		return attendance.SubmitEventResult{}, fmt.Errorf("failed to load employee profile: %w", err)
	}
	if !emp.Active {
		return attendance.SubmitEventResult{}, attendance.ErrNoProfile
	}

	policy, err := a.CompanyRepository.GetPolicy(ctx, companyID)
	if err != nil {
		return attendance.SubmitEventResult{}, fmt.Errorf("failed to load company policy: %w", err)
	}

	var distanceM *float64
	suspectedMock := false
	if emp.RequireGeofence {
		dist := geo.Distance(lat, lon, policy.OfficeLatitude, policy.OfficeLongitude)
		distanceM = &dist

		if dist > policy.GeofenceRadiusM {
			return attendance.SubmitEventResult{}, attendance.NewError(attendance.CodeOutsideGeofence,
				fmt.Sprintf("you are %dm from the office (max %dm)",
					int(math.Round(dist)), int(math.Round(policy.GeofenceRadiusM)))).
				WithDetail("distance", math.Round(dist)).
				WithDetail("max_distance", policy.GeofenceRadiusM)
		}

		if req.AccuracyM < mockAccuracyMaxMeters && math.Abs(dist-policy.GeofenceRadiusM) < mockBoundaryBandMeters {
			suspectedMock = true
		}
	}

	dayStart, dayEnd := localDayBounds(nowUTC, policy.Location(a.fallbackLoc))

	var note *string
	if suspectedMock {
		n := "suspected mock location"
		note = &n
	}

	data := attendance.Event{
		EmployeeID:    employeeID,
		CompanyID:     companyID,
		Kind:          kind,
		Timestamp:     nowUTC,
		Latitude:      lat,
		Longitude:     lon,
		AccuracyM:     req.AccuracyM,
		PhotoRef:      req.PhotoRef,
		SuspectedMock: suspectedMock,
		Note:          note,
	}

	saved, err := a.AttendanceRepository.SubmitWithGuard(ctx, data, dayStart, dayEnd, func(dayEvents []attendance.Event) error {
		return checkTransition(dayEvents, kind)
	})
	if err != nil {
		var coded *attendance.Error
		if errors.As(err, &coded) {
			return attendance.SubmitEventResult{}, err
		}
		return attendance.SubmitEventResult{}, attendance.ErrInsertFailed
	}

	details := map[string]interface{}{
		"event_kind":     string(kind),
		"suspected_mock": suspectedMock,
	}
	if distanceM != nil {
		details["distance_m"] = math.Round(*distanceM)
	}
	a.recorder.Record(ctx, audit.Entry{
		ActorID:      userID,
		Action:       "attendance.submit",
		ResourceType: "attendance_event",
		ResourceID:   saved.ID,
		Details:      details,
	})

	resp := attendance.MapEventToResponse(saved)
	resp.DistanceM = distanceM

	return attendance.SubmitEventResult{
		Success: true,
		Record:  resp,
		Message: acceptedMessage(kind),
	}, nil
}

// GetMyEvents implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyEvents(ctx context.Context, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	employeeID, companyID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}
	filter.EmployeeID = &employeeID
	normalizeFilter(&filter)
	if filter.StartDate == nil || *filter.StartDate == "" {
		start := time.Now().UTC().AddDate(0, 0, -defaultHistoryRangeDays).Format("2006-01-02")
		filter.StartDate = &start
	}

	events, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return buildListResponse(events, total, filter), nil
}

// ListEvents implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	_, companyID, _, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}
	normalizeFilter(&filter)

	events, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return buildListResponse(events, total, filter), nil
}

func normalizeFilter(filter *attendance.EventFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}

func buildListResponse(events []attendance.Event, total int64, filter attendance.EventFilter) attendance.ListEventsResponse {
	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.MapEventToResponse(ev))
	}
	return attendance.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Events:     responses,
	}
}
