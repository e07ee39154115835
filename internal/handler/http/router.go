package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fleet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the app settings the router needs.
type RouterConfig struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
}

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Master     MasterHandler
	Worker     WorkerHandler
	Job        JobHandler
	Expense    ExpenseHandler
	Payment    PaymentHandler
	Attendance AttendanceHandler
	Salary     SalaryHandler
	Bill       BillHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	File       FileHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fleet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)

			// The access token is optional on logout; an expired one still lets the
			// refresh token be revoked.
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Post("/logout", h.Auth.Logout)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/clients", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListClients)
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Master.GetClient)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Master.CreateClient)
					r.Put("/{id}", h.Master.UpdateClient)
					r.Delete("/{id}", h.Master.DeleteClient)
				})
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListVehicles)
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Master.GetVehicle)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Master.CreateVehicle)
					r.Put("/{id}", h.Master.UpdateVehicle)
					r.Delete("/{id}", h.Master.DeleteVehicle)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Worker.List)
				r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Worker.Get)
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/{id}/attendance/summary", h.Worker.AttendanceSummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Worker.Create)
					r.Put("/{id}", h.Worker.Update)
					r.Delete("/{id}", h.Worker.Delete)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionJobView)).Get("/", h.Job.List)
				r.With(middleware.RequirePermission(user.PermissionJobView)).Get("/{id}", h.Job.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionJobManage))
					r.Post("/", h.Job.Create)
					r.Put("/{id}", h.Job.Update)
					r.Patch("/{id}/status", h.Job.UpdateStatus)
					r.Delete("/{id}", h.Job.Delete)
				})
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionExpenseManage))
				r.Get("/", h.Expense.List)
				r.Post("/", h.Expense.Create)
				r.Get("/{id}", h.Expense.Get)
				r.Put("/{id}", h.Expense.Update)
				r.Delete("/{id}", h.Expense.Delete)
				r.Post("/{id}/receipt", h.Expense.UploadReceipt)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPaymentManage))
				r.Get("/", h.Payment.List)
				r.Post("/", h.Payment.Create)
				r.Get("/{id}", h.Payment.Get)
				r.Put("/{id}", h.Payment.Update)
				r.Delete("/{id}", h.Payment.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceView)).Get("/", h.Attendance.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Post("/", h.Attendance.Create)
					r.Put("/", h.Attendance.Mark)
					r.Post("/bulk", h.Attendance.BulkMark)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/salary-payments", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionSalaryManage))
				r.Get("/", h.Salary.List)
				r.Post("/", h.Salary.Create)
				r.Get("/{id}", h.Salary.Get)
				r.Put("/{id}", h.Salary.Update)
				r.Delete("/{id}", h.Salary.Delete)
			})

			r.Route("/bills", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionBillManage))
				r.Get("/", h.Bill.List)
				r.Post("/", h.Bill.Create)
				r.Get("/prefill", h.Bill.Prefill)
				r.Get("/{id}", h.Bill.Get)
				r.Put("/{id}", h.Bill.Update)
				r.Delete("/{id}", h.Bill.Delete)
				r.Get("/{id}/export", h.Bill.Export)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/clients/{id}/statement", h.Report.ClientStatement)
				r.Get("/vehicles/{id}", h.Report.VehicleReport)
				r.Get("/paysheet", h.Report.Paysheet)
				r.Get("/workers/{id}/payslip", h.Report.Payslip)
			})

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})

	// Uploaded receipts, served behind the same auth as the API.
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService))
		r.Get("/uploads/*", h.File.Serve)
	})

	return r
}
