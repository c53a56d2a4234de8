package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/hadirin/hadirin-backend-go/internal/domain/company"
	"github.com/hadirin/hadirin-backend-go/internal/domain/employee"
	"github.com/hadirin/hadirin-backend-go/internal/domain/payroll"
)

// Statutory contribution rates, fixed percentages of the monthly salary.
// Health insurance plus the two pension components (old-age savings and
// pension guarantee), split between the employee-borne and employer-borne
// portions. Only the employee portion reduces net pay.
var (
	rateHealthEmployee = decimal.NewFromFloat(0.01)
	rateHealthEmployer = decimal.NewFromFloat(0.04)

	rateOldAgeEmployee = decimal.NewFromFloat(0.02)
	rateOldAgeEmployer = decimal.NewFromFloat(0.037)

	ratePensionEmployee = decimal.NewFromFloat(0.01)
	ratePensionEmployer = decimal.NewFromFloat(0.02)
)

var twelve = decimal.NewFromInt(12)

// buildResult attaches money to the period totals. The identity
// net = monthly + additions - deductions holds exactly: every component is
// computed once and summed, never re-derived.
func buildResult(emp employee.Employee, policy company.Policy, totals payroll.Totals, periodStart, periodEnd string) payroll.Result {
	monthlySalary := emp.BaseSalary
	if emp.SalaryBasis == employee.BasisDaily {
		monthlySalary = emp.BaseSalary.Mul(decimal.NewFromInt(int64(totals.WorkingDays)))
	}

	lateDeduction := decimal.NewFromInt(int64(totals.TotalLateMinutes)).Mul(policy.LatePenaltyPerMinute)
	earlyLeaveDeduction := decimal.NewFromInt(int64(totals.TotalEarlyLeaveMinutes)).Mul(policy.EarlyLeavePenaltyPerMinute)
	overtimeAmount := decimal.NewFromFloat(totals.OvertimeHours).Round(1).Mul(policy.OvertimeRatePerHour)

	employeeContributions := decimal.Zero
	employerContributions := decimal.Zero
	if policy.ContributionsEnabled {
		employeeRate := rateHealthEmployee.Add(rateOldAgeEmployee).Add(ratePensionEmployee)
		employerRate := rateHealthEmployer.Add(rateOldAgeEmployer).Add(ratePensionEmployer)
		employeeContributions = monthlySalary.Mul(employeeRate).Round(0)
		employerContributions = monthlySalary.Mul(employerRate).Round(0)
	}

	incomeTax := decimal.Zero
	if policy.TaxEnabled {
		incomeTax = monthlyWithholding(monthlySalary, emp.TaxCategory)
	}

	totalDeductions := lateDeduction.Add(earlyLeaveDeduction).Add(employeeContributions).Add(incomeTax)
	totalAdditions := overtimeAmount
	netSalary := monthlySalary.Add(totalAdditions).Sub(totalDeductions)

	return payroll.Result{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,

		WorkingDays: totals.WorkingDays,
		HolidayDays: totals.HolidayDays,
		WeekendDays: totals.WeekendDays,

		PresentDays:    totals.PresentDays,
		AbsentDays:     totals.AbsentDays,
		LateDays:       totals.LateDays,
		EarlyLeaveDays: totals.EarlyLeaveDays,

		LeaveDays:  totals.LeaveDays,
		SickDays:   totals.SickDays,
		PermitDays: totals.PermitDays,

		TotalLateMinutes:       totals.TotalLateMinutes,
		TotalEarlyLeaveMinutes: totals.TotalEarlyLeaveMinutes,

		WorkedHours:   totals.WorkedHours,
		OvertimeHours: totals.OvertimeHours,

		MonthlySalary:       monthlySalary,
		LateDeduction:       lateDeduction,
		EarlyLeaveDeduction: earlyLeaveDeduction,
		OvertimeAmount:      overtimeAmount,

		EmployeeContributions: employeeContributions,
		EmployerContributions: employerContributions,
		IncomeTax:             incomeTax,

		TotalDeductions: totalDeductions,
		TotalAdditions:  totalAdditions,
		NetSalary:       netSalary,
	}
}
