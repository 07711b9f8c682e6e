package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/presensia/attendance-backend-go/internal/config"
	appHTTP "github.com/presensia/attendance-backend-go/internal/handler/http"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
	"github.com/presensia/attendance-backend-go/internal/repository/postgresql"
	approvalService "github.com/presensia/attendance-backend-go/internal/service/approval"
	attendanceService "github.com/presensia/attendance-backend-go/internal/service/attendance"
	notificationService "github.com/presensia/attendance-backend-go/internal/service/notification"
	scheduleService "github.com/presensia/attendance-backend-go/internal/service/schedule"
	worksettingsService "github.com/presensia/attendance-backend-go/internal/service/worksettings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "presensia-attendance"),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	settingsRepo := postgresql.NewSettingsRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRequestRepository(db)
	summaryRepo := postgresql.NewMonthlySummaryRequestRepository(db)

	accessExpiration, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		fmt.Println("Invalid JWT_ACCESS_EXPIRATION_TIME:", err)
		return
	}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessExpiration)

	dispatcher := notificationService.NewDispatcher(logger, notificationService.Config{
		QueueSize:   cfg.Notification.QueueSize,
		WorkerCount: cfg.Notification.WorkerCount,
	})
	defer dispatcher.Stop()

	evaluator := scheduleService.NewEvaluator(holidayRepo)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		settingsRepo,
		evaluator,
		dispatcher,
		logger,
	)
	approvalSvc := approvalService.NewApprovalService(
		overtimeRepo,
		summaryRepo,
		attendanceRepo,
		employeeRepo,
		settingsRepo,
		evaluator,
		dispatcher,
		logger,
	)
	settingsSvc := worksettingsService.NewSettingsService(db, settingsRepo, holidayRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	approvalHandler := appHTTP.NewApprovalHandler(approvalSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		approvalHandler,
		settingsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
