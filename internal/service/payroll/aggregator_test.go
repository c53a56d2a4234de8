package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/domain/holiday"
	"github.com/hadirin/hadirin-backend-go/internal/domain/leave"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
)

// Monday 2026-03-02.
var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

var shiftFixture = shift.Shift{
	ID:        "shift-1",
	Name:      "Late Shift",
	StartTime: "09:00",
	EndTime:   "18:00",
	Weekdays:  []int{1, 2, 3, 4, 5},
}

func officeEmployee() employee.Employee {
	return employee.Employee{ID: "emp-1", Kind: employee.KindOffice, SalaryBasis: employee.BasisMonthly}
}

func fieldEmployee() employee.Employee {
	return employee.Employee{ID: "emp-1", Kind: employee.KindField, SalaryBasis: employee.BasisMonthly}
}

func aggregatorPolicy() company.Policy {
	return company.Policy{
		Timezone:           "UTC",
		GracePeriodMinutes: 15,
		DefaultStartTime:   "08:00",
		DefaultEndTime:     "17:00",
		StandardWorkHours:  8,
	}
}

func at(day time.Time, hour, min, sec int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, sec, 0, time.UTC)
}

func clockPair(day time.Time, inH, inM, inS, outH, outM, outS int) []attendance.Event {
	return []attendance.Event{
		{EmployeeID: "emp-1", Kind: attendance.KindClockIn, Timestamp: at(day, inH, inM, inS)},
		{EmployeeID: "emp-1", Kind: attendance.KindClockOut, Timestamp: at(day, outH, outM, outS)},
	}
}

func singleDayInput(emp employee.Employee, events []attendance.Event) aggregateInput {
	return aggregateInput{
		Employee:    emp,
		Policy:      aggregatorPolicy(),
		Events:      events,
		PeriodStart: testDay,
		PeriodEnd:   testDay,
		Location:    time.UTC,
		Now:         testDay.AddDate(0, 0, 7),
	}
}

func TestAggregate_LatenessBoundaries(t *testing.T) {
	cases := []struct {
		name        string
		inSec       [3]int // hour, minute, second
		wantMinutes int
		wantLateDay bool
	}{
		{"exactly at grace limit", [3]int{8, 15, 0}, 0, false},
		{"one second past grace floors to zero", [3]int{8, 15, 1}, 0, false},
		{"one minute past grace", [3]int{8, 16, 0}, 1, true},
		{"an hour late", [3]int{9, 0, 0}, 45, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := clockPair(testDay, tc.inSec[0], tc.inSec[1], tc.inSec[2], 17, 0, 0)
			totals := aggregate(singleDayInput(officeEmployee(), events))

			assert.Equal(t, tc.wantMinutes, totals.TotalLateMinutes)
			if tc.wantLateDay {
				assert.Equal(t, 1, totals.LateDays)
			} else {
				assert.Zero(t, totals.LateDays)
			}
			assert.Equal(t, 1, totals.PresentDays)
		})
	}
}

func TestAggregate_FieldEmployeeNeverLate(t *testing.T) {
	events := clockPair(testDay, 10, 0, 0, 18, 0, 0)
	totals := aggregate(singleDayInput(fieldEmployee(), events))

	assert.Zero(t, totals.TotalLateMinutes)
	assert.Zero(t, totals.LateDays)
	assert.Zero(t, totals.TotalEarlyLeaveMinutes)
	assert.Equal(t, 1, totals.PresentDays)
	assert.InDelta(t, 8.0, totals.WorkedHours, 0.001)
}

func TestAggregate_EarlyLeave(t *testing.T) {
	events := clockPair(testDay, 8, 0, 0, 16, 0, 0)
	totals := aggregate(singleDayInput(officeEmployee(), events))

	assert.Equal(t, 60, totals.TotalEarlyLeaveMinutes)
	assert.Equal(t, 1, totals.EarlyLeaveDays)
}

func TestAggregate_OvertimeNeverNegative(t *testing.T) {
	// Six hours worked against an eight hour standard.
	events := clockPair(testDay, 8, 0, 0, 14, 0, 0)
	totals := aggregate(singleDayInput(officeEmployee(), events))

	assert.Zero(t, totals.OvertimeHours)
	assert.InDelta(t, 6.0, totals.WorkedHours, 0.001)
}

func TestAggregate_OvertimeAccrues(t *testing.T) {
	events := clockPair(testDay, 8, 0, 0, 19, 0, 0)
	totals := aggregate(singleDayInput(officeEmployee(), events))

	assert.InDelta(t, 3.0, totals.OvertimeHours, 0.001)
}

func TestAggregate_FirstInLastOutAcrossCycles(t *testing.T) {
	events := []attendance.Event{
		{EmployeeID: "emp-1", Kind: attendance.KindClockIn, Timestamp: at(testDay, 8, 0, 0)},
		{EmployeeID: "emp-1", Kind: attendance.KindClockOut, Timestamp: at(testDay, 12, 0, 0)},
		{EmployeeID: "emp-1", Kind: attendance.KindClockIn, Timestamp: at(testDay, 13, 0, 0)},
		{EmployeeID: "emp-1", Kind: attendance.KindClockOut, Timestamp: at(testDay, 17, 0, 0)},
	}
	totals := aggregate(singleDayInput(officeEmployee(), events))

	assert.Equal(t, 1, totals.PresentDays)
	// 08:00 to 17:00, the intermediate cycle boundaries are ignored.
	assert.InDelta(t, 9.0, totals.WorkedHours, 0.001)
	assert.InDelta(t, 1.0, totals.OvertimeHours, 0.001)
}

func TestAggregate_AbsentDay(t *testing.T) {
	totals := aggregate(singleDayInput(officeEmployee(), nil))

	assert.Equal(t, 1, totals.WorkingDays)
	assert.Equal(t, 1, totals.AbsentDays)
	assert.Zero(t, totals.PresentDays)
}

func TestAggregate_FutureDayNotAbsent(t *testing.T) {
	in := singleDayInput(officeEmployee(), nil)
	in.Now = testDay.AddDate(0, 0, -7) // the whole period is in the future

	totals := aggregate(in)
	assert.Equal(t, 1, totals.WorkingDays)
	assert.Zero(t, totals.AbsentDays)
	assert.Zero(t, totals.PresentDays)
}

func TestAggregate_WeekendTally(t *testing.T) {
	// Monday through Sunday.
	in := singleDayInput(officeEmployee(), nil)
	in.PeriodEnd = testDay.AddDate(0, 0, 6)

	totals := aggregate(in)
	assert.Equal(t, 5, totals.WorkingDays)
	assert.Equal(t, 2, totals.WeekendDays)
}

func TestAggregate_LeaveSuppressesAttendance(t *testing.T) {
	in := singleDayInput(officeEmployee(), nil)
	in.Leaves = []leave.Grant{{
		EmployeeID: "emp-1",
		Type:       leave.TypeSick,
		StartDate:  testDay,
		EndDate:    testDay,
	}}

	totals := aggregate(in)
	assert.Equal(t, 1, totals.WorkingDays)
	assert.Equal(t, 1, totals.SickDays)
	assert.Zero(t, totals.AbsentDays)
	assert.Zero(t, totals.PresentDays)
}

func TestAggregate_LeaveTypes(t *testing.T) {
	// Monday to Wednesday, one grant of each type.
	in := singleDayInput(officeEmployee(), nil)
	in.PeriodEnd = testDay.AddDate(0, 0, 2)
	in.Leaves = []leave.Grant{
		{EmployeeID: "emp-1", Type: leave.TypeAnnual, StartDate: testDay, EndDate: testDay},
		{EmployeeID: "emp-1", Type: leave.TypeSick, StartDate: testDay.AddDate(0, 0, 1), EndDate: testDay.AddDate(0, 0, 1)},
		{EmployeeID: "emp-1", Type: leave.TypePermit, StartDate: testDay.AddDate(0, 0, 2), EndDate: testDay.AddDate(0, 0, 2)},
	}

	totals := aggregate(in)
	assert.Equal(t, 1, totals.LeaveDays)
	assert.Equal(t, 1, totals.SickDays)
	assert.Equal(t, 1, totals.PermitDays)
}

func TestAggregate_HolidayBeatsLeaveAndEvents(t *testing.T) {
	in := singleDayInput(officeEmployee(), clockPair(testDay, 8, 0, 0, 17, 0, 0))
	in.Holidays = []holiday.Holiday{{Name: "Nyepi", StartDate: testDay, EndDate: testDay}}
	in.Leaves = []leave.Grant{{
		EmployeeID: "emp-1",
		Type:       leave.TypeAnnual,
		StartDate:  testDay,
		EndDate:    testDay,
	}}

	totals := aggregate(in)
	assert.Equal(t, 1, totals.HolidayDays)
	assert.Zero(t, totals.WorkingDays)
	assert.Zero(t, totals.LeaveDays)
	assert.Zero(t, totals.PresentDays)
	assert.Zero(t, totals.AbsentDays)
}

func TestAggregate_NoClockOutNoWorkedHours(t *testing.T) {
	events := []attendance.Event{
		{EmployeeID: "emp-1", Kind: attendance.KindClockIn, Timestamp: at(testDay, 8, 0, 0)},
	}
	totals := aggregate(singleDayInput(officeEmployee(), events))

	assert.Equal(t, 1, totals.PresentDays)
	assert.Zero(t, totals.WorkedHours)
	assert.Zero(t, totals.TotalEarlyLeaveMinutes, "no clock out means no early leave evaluation")
}

func TestAggregate_ShiftWeekdaysDefineRestDays(t *testing.T) {
	// Tuesday through Saturday pattern over a Monday-to-Sunday period:
	// Monday and Sunday become the rest days, Saturday is a working day.
	tueSat := shiftFixture
	tueSat.Weekdays = []int{2, 3, 4, 5, 6}

	in := singleDayInput(officeEmployee(), nil)
	in.PeriodEnd = testDay.AddDate(0, 0, 6)
	in.Shift = &tueSat

	totals := aggregate(in)
	assert.Equal(t, 5, totals.WorkingDays)
	assert.Equal(t, 2, totals.WeekendDays)
	assert.Equal(t, 5, totals.AbsentDays, "the Saturday of the pattern is absent-able")
}

func TestAggregate_ShiftOverridesDefaults(t *testing.T) {
	in := singleDayInput(officeEmployee(), clockPair(testDay, 9, 20, 0, 18, 0, 0))
	in.Shift = &shiftFixture

	totals := aggregate(in)
	// Shift starts 09:00 with a 15 minute grace, arrival 09:20 is 5 late.
	assert.Equal(t, 5, totals.TotalLateMinutes)
}
