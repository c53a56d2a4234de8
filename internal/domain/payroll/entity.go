package payroll

import "github.com/shopspring/decimal"

// Totals are the raw per-period accumulations produced by the aggregator
// before any money is attached.
type Totals struct {
	WorkingDays int
	HolidayDays int
	WeekendDays int

	PresentDays    int
	AbsentDays     int
	LateDays       int
	EarlyLeaveDays int

	LeaveDays  int
	SickDays   int
	PermitDays int

	TotalLateMinutes       int
	TotalEarlyLeaveMinutes int

	WorkedHours   float64
	OvertimeHours float64
}

// Result is the per-employee payroll figure for a period. It is derived on
// every aggregation request and never persisted.
type Result struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`

	WorkingDays int `json:"working_days"`
	HolidayDays int `json:"holiday_days"`
	WeekendDays int `json:"weekend_days"`

	PresentDays    int `json:"present_days"`
	AbsentDays     int `json:"absent_days"`
	LateDays       int `json:"late_days"`
	EarlyLeaveDays int `json:"early_leave_days"`

	LeaveDays  int `json:"leave_days"`
	SickDays   int `json:"sick_days"`
	PermitDays int `json:"permit_days"`

	TotalLateMinutes       int `json:"total_late_minutes"`
	TotalEarlyLeaveMinutes int `json:"total_early_leave_minutes"`

	WorkedHours   float64 `json:"worked_hours"`
	OvertimeHours float64 `json:"overtime_hours"`

	MonthlySalary       decimal.Decimal `json:"monthly_salary"`
	LateDeduction       decimal.Decimal `json:"late_deduction"`
	EarlyLeaveDeduction decimal.Decimal `json:"early_leave_deduction"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`

	EmployeeContributions decimal.Decimal `json:"employee_contributions"`
	EmployerContributions decimal.Decimal `json:"employer_contributions"`
	IncomeTax             decimal.Decimal `json:"income_tax"`

	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalAdditions  decimal.Decimal `json:"total_additions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}
