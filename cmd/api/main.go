package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hadirin/hadirin-backend-go/internal/config"
	appHTTP "github.com/hadirin/hadirin-backend-go/internal/handler/http"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/jwt"
	"github.com/hadirin/hadirin-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirin/hadirin-backend-go/internal/service/attendance"
	auditService "github.com/hadirin/hadirin-backend-go/internal/service/audit"
	authService "github.com/hadirin/hadirin-backend-go/internal/service/auth"
	holidayService "github.com/hadirin/hadirin-backend-go/internal/service/holiday"
	leaveService "github.com/hadirin/hadirin-backend-go/internal/service/leave"
	payrollService "github.com/hadirin/hadirin-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hadirin-backend"),
		slog.String("env", cfg.App.Env),
	)

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	recorder := auditService.NewRecorder(auditRepo, logger)

	fallbackLoc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Warn("unknown APP_TIMEZONE, falling back to UTC", slog.String("timezone", cfg.App.Timezone))
		fallbackLoc = time.UTC
	}

	authSvc := authService.NewAuthService(userRepo, jwtSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, companyRepo, recorder, fallbackLoc)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, attendanceRepo, leaveRepo, holidayRepo, shiftRepo, companyRepo, recorder, fallbackLoc)
	auditSvc := auditService.NewAuditService(auditRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, recorder)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, recorder)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		attendanceHandler,
		payrollHandler,
		auditHandler,
		holidayHandler,
		leaveHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
