package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/alefshop/attendance-backend/internal/config"
	"github.com/alefshop/attendance-backend/internal/handler/http/middleware"
	"github.com/alefshop/attendance-backend/internal/handler/http/response"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Worker     WorkerHandler
	Attendance AttendanceHandler
	Finance    FinanceHandler
	Report     ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			// Header only, so the revocation check sees the same token that was verified.
			r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(jwtService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.Post("/", h.Worker.Create)
				r.Get("/{id}", h.Worker.Get)
				r.Put("/{id}", h.Worker.Update)
				r.Delete("/{id}", h.Worker.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/today", h.Attendance.Today)
				r.Put("/{id}", h.Attendance.Update)
				r.Delete("/{id}", h.Attendance.Delete)
			})

			r.Route("/finances", func(r chi.Router) {
				r.Get("/", h.Finance.List)
				r.Post("/", h.Finance.Create)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", h.Report.DailyAttendance)
				r.Get("/workers/{id}", h.Report.WorkerReport)
				r.Get("/workers/{id}/monthly", h.Report.MonthlyReport)
				r.Get("/workers/{id}/monthly/export", h.Report.ExportMonthlyReport)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
