package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
)

const (
	testEmployeeID = "emp-1"
	testCompanyID  = "com-1"
	testUserID     = "usr-1"

	officeLat = -6.2000000
	officeLon = 106.8166667
)

type fakeAttendanceRepo struct {
	events    []attendance.Event
	submitErr error
}

func (f *fakeAttendanceRepo) SubmitWithGuard(_ context.Context, event attendance.Event, dayStart, dayEnd time.Time, guard attendance.Guard) (attendance.Event, error) {
	if f.submitErr != nil {
		return attendance.Event{}, f.submitErr
	}
	var day []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == event.EmployeeID && !ev.Timestamp.Before(dayStart) && ev.Timestamp.Before(dayEnd) {
			day = append(day, ev)
		}
	}
	sort.Slice(day, func(i, j int) bool { return day[i].Timestamp.Before(day[j].Timestamp) })
	if err := guard(day); err != nil {
		return attendance.Event{}, err
	}
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndPeriod(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Timestamp.Before(start) && ev.Timestamp.Before(end) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.EventFilter, companyID string) ([]attendance.Event, int64, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && ev.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Kind != nil && *filter.Kind != "" && string(ev.Kind) != *filter.Kind {
			continue
		}
		out = append(out, ev)
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID && emp.Active {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetActiveByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if emp, err := f.GetByID(ctx, id, companyID); err == nil && emp.Active {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	policy company.Policy
}

func (f *fakeCompanyRepo) GetPolicy(_ context.Context, companyID string) (company.Policy, error) {
	if companyID != f.policy.ID {
		return company.Policy{}, company.ErrCompanyNotFound
	}
	return f.policy, nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(_ context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func testPolicy() company.Policy {
	return company.Policy{
		ID:                 testCompanyID,
		Name:               "Test Company",
		Timezone:           "Asia/Jakarta",
		OfficeLatitude:     officeLat,
		OfficeLongitude:    officeLon,
		GeofenceRadiusM:    100,
		GracePeriodMinutes: 15,
		DefaultStartTime:   "08:00",
		DefaultEndTime:     "17:00",
		StandardWorkHours:  8,
	}
}

func testEmployee(kind employee.Kind, geofenced bool) employee.Employee {
	return employee.Employee{
		ID:              testEmployeeID,
		CompanyID:       testCompanyID,
		FullName:        "Test Employee",
		Kind:            kind,
		RequireGeofence: geofenced,
		BaseSalary:      decimal.NewFromInt(5000000),
		SalaryBasis:     employee.BasisMonthly,
		TaxCategory:     "TK/0",
		Active:          true,
	}
}

func newTestService(repo *fakeAttendanceRepo, emp employee.Employee, policy company.Policy) (attendance.AttendanceService, *fakeRecorder) {
	recorder := &fakeRecorder{}
	svc := NewAttendanceService(
		repo,
		&fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		&fakeCompanyRepo{policy: policy},
		recorder,
		time.UTC,
	)
	return svc, recorder
}

func authedContext(t *testing.T, employeeID, companyID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	tok, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":     testUserID,
		"employee_id": employeeID,
		"company_id":  companyID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func coord(v float64) *float64 {
	return &v
}

func validRequest(kind attendance.Kind) attendance.SubmitEventRequest {
	return attendance.SubmitEventRequest{
		EventKind: string(kind),
		Latitude:  coord(officeLat),
		Longitude: coord(officeLon),
		AccuracyM: 10,
		PhotoRef:  "photos/2026-03-02/emp-1.jpg",
	}
}

func TestSubmitEvent_ClockInSuccess(t *testing.T) {
	svc, recorder := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	result, err := svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "clock-in recorded", result.Message)
	assert.Equal(t, string(attendance.KindClockIn), result.Record.EventKind)
	assert.NotEmpty(t, result.Record.ID)
	assert.NotEmpty(t, result.Record.Timestamp)
	assert.False(t, result.Record.SuspectedMock)
	require.NotNil(t, result.Record.DistanceM)
	assert.Less(t, *result.Record.DistanceM, 1.0)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "attendance.submit", recorder.entries[0].Action)
	assert.Equal(t, testUserID, recorder.entries[0].ActorID)
}

func TestSubmitEvent_ServerAssignsTimestamp(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	before := time.Now().UTC().Add(-time.Second)
	result, err := svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	require.NoError(t, err)
	after := time.Now().UTC().Add(time.Second)

	stamped, err := time.Parse(time.RFC3339, result.Record.Timestamp)
	require.NoError(t, err)
	assert.True(t, stamped.After(before) && stamped.Before(after))
}

func TestSubmitEvent_ValidationOrder(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	// Multiple inputs are bad at once; the kind check wins.
	req := attendance.SubmitEventRequest{
		EventKind: "lunch",
		Latitude:  coord(500),
		AccuracyM: 9999,
	}
	_, err := svc.SubmitEvent(ctx, req)

	var coded *attendance.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeInvalidType, coded.Code)

	// A body that never carries coordinates must not pass as (0, 0).
	req = attendance.SubmitEventRequest{
		EventKind: string(attendance.KindClockIn),
		AccuracyM: 10,
		PhotoRef:  "photos/2026-03-02/emp-1.jpg",
	}
	_, err = svc.SubmitEvent(ctx, req)
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeInvalidCoords, coded.Code)

	req.Latitude = coord(officeLat)
	_, err = svc.SubmitEvent(ctx, req)
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeInvalidCoords, coded.Code, "one missing coordinate still rejects")
}

func TestSubmitEvent_AccuracyBoundary(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	req := validRequest(attendance.KindClockIn)
	req.AccuracyM = 100
	_, err := svc.SubmitEvent(ctx, req)
	assert.NoError(t, err, "accuracy exactly at the limit is accepted")

	svc2, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	req.AccuracyM = 101
	_, err = svc2.SubmitEvent(ctx, req)

	var coded *attendance.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeLowAccuracy, coded.Code)
}

func TestSubmitEvent_OutsideGeofence(t *testing.T) {
	svc, recorder := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	req := validRequest(attendance.KindClockIn)
	req.Latitude = coord(officeLat + 0.01) // roughly 1.1km north

	_, err := svc.SubmitEvent(ctx, req)

	var coded *attendance.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeOutsideGeofence, coded.Code)
	assert.Greater(t, coded.Details["distance"].(float64), 1000.0)
	assert.Equal(t, float64(100), coded.Details["max_distance"])
	assert.Empty(t, recorder.entries, "rejections are not audited")
}

func TestSubmitEvent_FieldEmployeeSkipsGeofence(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindField, false), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	req := validRequest(attendance.KindClockIn)
	req.Latitude = coord(officeLat + 2) // far from the office
	req.Longitude = coord(officeLon + 2)

	result, err := svc.SubmitEvent(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.Record.DistanceM)
	assert.False(t, result.Record.SuspectedMock)
}

func TestSubmitEvent_SuspectedMockFlagged(t *testing.T) {
	// An implausibly precise fix near the boundary is flagged but accepted.
	policy := testPolicy()
	policy.GeofenceRadiusM = 8
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), policy)
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	req := validRequest(attendance.KindClockIn)
	req.AccuracyM = 3

	result, err := svc.SubmitEvent(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Record.SuspectedMock)
	require.NotNil(t, result.Record.Note)
	assert.Equal(t, "suspected mock location", *result.Record.Note)
}

func TestSubmitEvent_DoubleClockInRejected(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc, _ := newTestService(repo, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	_, err := svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	require.NoError(t, err)

	_, err = svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	var coded *attendance.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeAlreadyClockedIn, coded.Code)
	assert.Len(t, repo.events, 1, "rejected event must not be stored")
}

func TestSubmitEvent_BreakSequence(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc, _ := newTestService(repo, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	for _, kind := range []attendance.Kind{
		attendance.KindClockIn,
		attendance.KindBreakOut,
		attendance.KindBreakIn,
		attendance.KindClockOut,
	} {
		_, err := svc.SubmitEvent(ctx, validRequest(kind))
		require.NoError(t, err, "kind %s", kind)
	}
	assert.Len(t, repo.events, 4)
}

func TestSubmitEvent_ClockOutDuringBreakRejected(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc, _ := newTestService(repo, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	_, err := svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	require.NoError(t, err)
	_, err = svc.SubmitEvent(ctx, validRequest(attendance.KindBreakOut))
	require.NoError(t, err)

	_, err = svc.SubmitEvent(ctx, validRequest(attendance.KindClockOut))
	var coded *attendance.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, attendance.CodeNotClockedIn, coded.Code)
}

func TestSubmitEvent_NoAuth(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())

	_, err := svc.SubmitEvent(context.Background(), validRequest(attendance.KindClockIn))
	assert.ErrorIs(t, err, attendance.ErrNoAuth)
}

func TestSubmitEvent_NoEmployeeClaim(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())

	tokenAuth := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	tok, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": testUserID})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), tok, nil)

	_, err = svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	assert.ErrorIs(t, err, attendance.ErrInvalidUser)
}

func TestSubmitEvent_NoProfile(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, "emp-unknown", testCompanyID)

	_, err := svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	assert.ErrorIs(t, err, attendance.ErrNoProfile)
}

func TestSubmitEvent_InsertFailure(t *testing.T) {
	repo := &fakeAttendanceRepo{submitErr: errors.New("connection reset")}
	svc, _ := newTestService(repo, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	_, err := svc.SubmitEvent(ctx, validRequest(attendance.KindClockIn))
	assert.ErrorIs(t, err, attendance.ErrInsertFailed)
}

func TestGetMyEvents_ScopedToCaller(t *testing.T) {
	repo := &fakeAttendanceRepo{events: []attendance.Event{
		{ID: "a", EmployeeID: testEmployeeID, CompanyID: testCompanyID, Kind: attendance.KindClockIn, Timestamp: time.Now().UTC()},
		{ID: "b", EmployeeID: "emp-2", CompanyID: testCompanyID, Kind: attendance.KindClockIn, Timestamp: time.Now().UTC()},
	}}
	svc, _ := newTestService(repo, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	resp, err := svc.GetMyEvents(ctx, attendance.EventFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "a", resp.Events[0].ID)
	assert.Equal(t, int64(1), resp.TotalCount)
}

func TestListEvents_FilterByKind(t *testing.T) {
	kind := string(attendance.KindClockOut)
	repo := &fakeAttendanceRepo{events: []attendance.Event{
		{ID: "a", EmployeeID: testEmployeeID, CompanyID: testCompanyID, Kind: attendance.KindClockIn, Timestamp: time.Now().UTC()},
		{ID: "b", EmployeeID: testEmployeeID, CompanyID: testCompanyID, Kind: attendance.KindClockOut, Timestamp: time.Now().UTC()},
	}}
	svc, _ := newTestService(repo, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	resp, err := svc.ListEvents(ctx, attendance.EventFilter{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "b", resp.Events[0].ID)
}

func TestListEvents_InvalidEmployeeIDFilter(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	bad := "not-a-uuid"
	_, err := svc.ListEvents(ctx, attendance.EventFilter{EmployeeID: &bad})
	assert.Error(t, err)
}

func TestListEvents_InvalidFilterDate(t *testing.T) {
	svc, _ := newTestService(&fakeAttendanceRepo{}, testEmployee(employee.KindOffice, true), testPolicy())
	ctx := authedContext(t, testEmployeeID, testCompanyID)

	bad := "02-03-2026"
	_, err := svc.ListEvents(ctx, attendance.EventFilter{StartDate: &bad})
	assert.Error(t, err)
}
