package payroll

import (
	"math"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/domain/holiday"
	"github.com/hadirin/hadirin-backend-go/internal/domain/leave"
	"github.com/hadirin/hadirin-backend-go/internal/domain/payroll"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
)

// aggregateInput bundles the per-employee reference data for one period walk.
type aggregateInput struct {
	Employee employee.Employee
	Shift    *shift.Shift
	Policy   company.Policy

	Events   []attendance.Event
	Leaves   []leave.Grant
	Holidays []holiday.Holiday

	// PeriodStart and PeriodEnd are inclusive local calendar dates.
	PeriodStart time.Time
	PeriodEnd   time.Time

	Location *time.Location
	Now      time.Time
}

// aggregate walks every calendar day of the period and classifies it.
// Precedence per day: holiday, then rest day, then leave, then events.
// The walk holds no state between calls and is safe to re-run.
func aggregate(in aggregateInput) payroll.Totals {
	var totals payroll.Totals

	startMin, endMin := scheduleMinutes(in.Shift, in.Policy)
	todayLocal := dateOnly(in.Now.In(in.Location))

	for day := in.PeriodStart; !day.After(in.PeriodEnd); day = day.AddDate(0, 0, 1) {
		// Holiday and leave ranges are stored as plain dates.
		dayDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		if coveredByHoliday(in.Holidays, dayDate) {
			totals.HolidayDays++
			continue
		}
		if restDay(in.Shift, day.Weekday()) {
			totals.WeekendDays++
			continue
		}

		totals.WorkingDays++

		if grant, ok := coveringGrant(in.Leaves, dayDate); ok {
			switch grant.Type {
			case leave.TypeSick:
				totals.SickDays++
			case leave.TypePermit:
				totals.PermitDays++
			default:
				totals.LeaveDays++
			}
			continue
		}

		firstIn, lastOut := dayBoundaryEvents(in.Events, day, in.Location)
		if firstIn == nil {
			if day.Before(todayLocal) || day.Equal(todayLocal) {
				totals.AbsentDays++
			}
			continue
		}

		totals.PresentDays++

		if in.Employee.Kind == employee.KindOffice {
			lateThreshold := clockOnDay(day, startMin+in.Policy.GracePeriodMinutes, in.Location)
			if lateMin := flooredMinutes(firstIn.Timestamp.In(in.Location).Sub(lateThreshold)); lateMin > 0 {
				totals.TotalLateMinutes += lateMin
				totals.LateDays++
			}

			if lastOut != nil {
				shiftEnd := clockOnDay(day, endMin, in.Location)
				if earlyMin := flooredMinutes(shiftEnd.Sub(lastOut.Timestamp.In(in.Location))); earlyMin > 0 {
					totals.TotalEarlyLeaveMinutes += earlyMin
					totals.EarlyLeaveDays++
				}
			}
		}

		if lastOut != nil {
			worked := lastOut.Timestamp.Sub(firstIn.Timestamp).Hours()
			if worked > 0 {
				totals.WorkedHours += worked
				if overtime := worked - in.Policy.StandardWorkHours; overtime > 0 {
					totals.OvertimeHours += overtime
				}
			}
		}
	}

	return totals
}

// restDay reports whether the day falls outside the employee's work pattern.
// A shift with explicit weekdays defines the pattern; without one Saturday
// and Sunday are the rest days.
func restDay(sh *shift.Shift, wd time.Weekday) bool {
	if sh != nil && len(sh.Weekdays) > 0 {
		return !sh.ActiveOn(wd)
	}
	return wd == time.Saturday || wd == time.Sunday
}

// scheduleMinutes resolves the day schedule as minutes after midnight, the
// shift when assigned, otherwise the company defaults. Unparseable clock
// strings fall back rather than fail.
func scheduleMinutes(sh *shift.Shift, policy company.Policy) (int, int) {
	const (
		fallbackStart = 8 * 60
		fallbackEnd   = 17 * 60
	)

	startStr, endStr := policy.DefaultStartTime, policy.DefaultEndTime
	if sh != nil {
		startStr, endStr = sh.StartTime, sh.EndTime
	}

	startMin, err := shift.ClockMinutes(startStr)
	if err != nil {
		startMin = fallbackStart
	}
	endMin, err := shift.ClockMinutes(endStr)
	if err != nil {
		endMin = fallbackEnd
	}
	return startMin, endMin
}

func coveredByHoliday(holidays []holiday.Holiday, day time.Time) bool {
	for _, h := range holidays {
		if h.Covers(day) {
			return true
		}
	}
	return false
}

func coveringGrant(grants []leave.Grant, day time.Time) (leave.Grant, bool) {
	for _, g := range grants {
		if g.Covers(day) {
			return g, true
		}
	}
	return leave.Grant{}, false
}

// dayBoundaryEvents returns the first clock_in and last clock_out of the
// local calendar day, nil when absent.
func dayBoundaryEvents(events []attendance.Event, day time.Time, loc *time.Location) (*attendance.Event, *attendance.Event) {
	var firstIn, lastOut *attendance.Event
	for i := range events {
		ev := &events[i]
		local := ev.Timestamp.In(loc)
		if local.Year() != day.Year() || local.Month() != day.Month() || local.Day() != day.Day() {
			continue
		}
		switch ev.Kind {
		case attendance.KindClockIn:
			if firstIn == nil || ev.Timestamp.Before(firstIn.Timestamp) {
				firstIn = ev
			}
		case attendance.KindClockOut:
			if lastOut == nil || ev.Timestamp.After(lastOut.Timestamp) {
				lastOut = ev
			}
		}
	}
	return firstIn, lastOut
}

func clockOnDay(day time.Time, minutes int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// flooredMinutes truncates a positive duration to whole minutes. Anything
// under a full minute does not count.
func flooredMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Floor(d.Minutes()))
}
