package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/config"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/fleet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/fleet-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/fleet-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/fleet-backend-go/internal/service/auth"
	billService "github.com/cmlabs-hris/fleet-backend-go/internal/service/bill"
	dashboardService "github.com/cmlabs-hris/fleet-backend-go/internal/service/dashboard"
	expenseService "github.com/cmlabs-hris/fleet-backend-go/internal/service/expense"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/file"
	jobService "github.com/cmlabs-hris/fleet-backend-go/internal/service/job"
	"github.com/cmlabs-hris/fleet-backend-go/internal/service/master"
	paymentService "github.com/cmlabs-hris/fleet-backend-go/internal/service/payment"
	reportService "github.com/cmlabs-hris/fleet-backend-go/internal/service/report"
	salaryService "github.com/cmlabs-hris/fleet-backend-go/internal/service/salary"
	workerService "github.com/cmlabs-hris/fleet-backend-go/internal/service/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "fleet-backend")))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	vehicleRepo := postgresql.NewVehicleRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryPaymentRepository(db)
	billRepo := postgresql.NewBillRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("init local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())

	authSvc := serviceAuth.NewAuthService(tx, userRepo, JWTService, refreshTokenRepo)
	masterSvc := master.NewMasterService(clientRepo, vehicleRepo)
	workerSvc := workerService.NewWorkerService(workerRepo)
	jobSvc := jobService.NewJobService(jobRepo, clientRepo, vehicleRepo, workerRepo)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, vehicleRepo, fileService)
	paymentSvc := paymentService.NewPaymentService(paymentRepo, clientRepo, jobRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, workerRepo)
	salarySvc := salaryService.NewSalaryPaymentService(salaryRepo, workerRepo, attendanceRepo)
	billSvc := billService.NewBillService(tx, billRepo, vehicleRepo, clientRepo, jobRepo, cfg.App.CompanyName)
	reportSvc := reportService.NewReportService(reportService.Repositories{
		Client:     clientRepo,
		Vehicle:    vehicleRepo,
		Worker:     workerRepo,
		Job:        jobRepo,
		Payment:    paymentRepo,
		Expense:    expenseRepo,
		Attendance: attendanceRepo,
		Salary:     salaryRepo,
	}, fileService, cfg.App.CompanyName)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, jobRepo, paymentRepo, expenseRepo)

	if cfg.Seed.AdminEmail != "" {
		admin, err := authSvc.EnsureUser(context.Background(), user.CreateUserRequest{
			Name:     cfg.Seed.AdminName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
			Role:     string(user.RoleAdmin),
		})
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		slog.Info("admin account ready", "email", admin.Email)
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Worker:     appHTTP.NewWorkerHandler(workerSvc, attendanceSvc),
		Job:        appHTTP.NewJobHandler(jobSvc),
		Expense:    appHTTP.NewExpenseHandler(expenseSvc),
		Payment:    appHTTP.NewPaymentHandler(paymentSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Bill:       appHTTP.NewBillHandler(billSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		File:       appHTTP.NewFileHandler(fileService),
	}, appHTTP.RouterConfig{
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	scheduler.Add(cron.SessionPurgeTask(authSvc))
	scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
		stop()
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		serveErr = server.Shutdown(shutdownCtx)
	}

	scheduler.Wait()
	return serveErr
}
