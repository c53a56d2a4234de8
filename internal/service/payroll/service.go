package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/hadirin/hadirin-backend-go/internal/domain/attendance"
	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/domain/holiday"
	"github.com/hadirin/hadirin-backend-go/internal/domain/leave"
	"github.com/hadirin/hadirin-backend-go/internal/domain/payroll"
	"github.com/hadirin/hadirin-backend-go/internal/domain/shift"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.LeaveRepository
	holiday.HolidayRepository
	shift.ShiftRepository
	company.CompanyRepository
	recorder    audit.Recorder
	fallbackLoc *time.Location
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
	shiftRepo shift.ShiftRepository,
	companyRepo company.CompanyRepository,
	recorder audit.Recorder,
	fallbackLoc *time.Location,
) payroll.PayrollService {
	if fallbackLoc == nil {
		fallbackLoc = time.UTC
	}
	return &PayrollServiceImpl{
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		LeaveRepository:      leaveRepo,
		HolidayRepository:    holidayRepo,
		ShiftRepository:      shiftRepo,
		CompanyRepository:    companyRepo,
		recorder:             recorder,
		fallbackLoc:          fallbackLoc,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", errors.New("company_id claim is missing or invalid")
	}
	userID, _ = claims["user_id"].(string)
	return companyID, userID, nil
}

// Run implements payroll.PayrollService. The run is a pure read-compute
// pass: results are produced fresh every call and nothing is persisted.
func (s *PayrollServiceImpl) Run(ctx context.Context, req payroll.RunPayrollRequest) (payroll.RunPayrollResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunPayrollResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return payroll.RunPayrollResponse{}, err
	}
	startDate, _ := validator.IsValidDate(req.PeriodStart)
	endDate, _ := validator.IsValidDate(req.PeriodEnd)

	policy, err := s.CompanyRepository.GetPolicy(ctx, companyID)
	if err != nil {
		return payroll.RunPayrollResponse{}, fmt.Errorf("failed to load company policy: %w", err)
	}

	loc := policy.Location(s.fallbackLoc)
	periodStart := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
	periodEnd := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, loc)

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.EmployeeRepository.GetActiveByIDs(ctx, req.EmployeeIDs, companyID)
	} else {
		employees, err = s.EmployeeRepository.GetActiveByCompanyID(ctx, companyID)
	}
	if err != nil {
		return payroll.RunPayrollResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}

	holidays, err := s.HolidayRepository.ListByPeriod(ctx, startDate, endDate, companyID)
	if err != nil {
		return payroll.RunPayrollResponse{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	now := time.Now().UTC()
	eventsFrom := periodStart.UTC()
	eventsTo := periodEnd.AddDate(0, 0, 1).UTC()

	results := make([]payroll.Result, 0, len(employees))
	for _, emp := range employees {
		events, err := s.AttendanceRepository.ListByEmployeeAndPeriod(ctx, emp.ID, eventsFrom, eventsTo)
		if err != nil {
			return payroll.RunPayrollResponse{}, fmt.Errorf("failed to load events for employee %s: %w", emp.ID, err)
		}

		leaves, err := s.LeaveRepository.ListByEmployeeAndPeriod(ctx, emp.ID, startDate, endDate, companyID)
		if err != nil {
			return payroll.RunPayrollResponse{}, fmt.Errorf("failed to load leaves for employee %s: %w", emp.ID, err)
		}

		var empShift *shift.Shift
		if emp.ShiftID != nil {
			sh, err := s.ShiftRepository.GetByID(ctx, *emp.ShiftID, companyID)
			if err == nil {
				empShift = &sh
			} else if !errors.Is(err, shift.ErrShiftNotFound) {
				return payroll.RunPayrollResponse{}, fmt.Errorf("failed to load shift for employee %s: %w", emp.ID, err)
			}
		}

		totals := aggregate(aggregateInput{
			Employee:    emp,
			Shift:       empShift,
			Policy:      policy,
			Events:      events,
			Leaves:      leaves,
			Holidays:    holidays,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Location:    loc,
			Now:         now,
		})
		results = append(results, buildResult(emp, policy, totals, req.PeriodStart, req.PeriodEnd))
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:      userID,
		Action:       "payroll.run",
		ResourceType: "payroll_period",
		ResourceID:   req.PeriodStart + ".." + req.PeriodEnd,
		Details: map[string]interface{}{
			"employee_count": len(results),
		},
	})

	return payroll.RunPayrollResponse{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		GeneratedAt: now.Format(time.RFC3339),
		Results:     results,
	}, nil
}
