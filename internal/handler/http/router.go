package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/attendance-backend-go/internal/handler/http/middleware"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	approvalHandler ApprovalHandler,
	settingsHandler SettingsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presensia-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/lateness-precheck", attendanceHandler.LatenessPrecheck)
				r.Get("/potential-overtime", attendanceHandler.PotentialOvertime)
			})

			r.Route("/overtime-requests", func(r chi.Router) {
				r.Post("/", approvalHandler.CreateOvertimeRequest)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/approve-level1", approvalHandler.ApproveOvertimeLevel1)
					r.Post("/approve-final", approvalHandler.ApproveOvertimeFinal)
					r.Post("/reject", approvalHandler.RejectOvertime)
					r.Post("/cancel", approvalHandler.CancelOvertime)
				})
			})

			r.Route("/monthly-summary-requests", func(r chi.Router) {
				r.Post("/", approvalHandler.CreateMonthlySummaryRequest)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/approve-level1", approvalHandler.ApproveSummaryLevel1)
					r.Post("/approve-final", approvalHandler.ApproveSummaryFinal)
					r.Post("/reject", approvalHandler.RejectSummary)
					r.Post("/cancel", approvalHandler.CancelSummary)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/work", settingsHandler.GetWorkSettings)
				r.Get("/holidays", settingsHandler.ListHolidays)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/work", settingsHandler.UpdateWorkSettings)
					r.Put("/holidays", settingsHandler.UpsertHoliday)
				})
			})
		})
	})
	return r
}
