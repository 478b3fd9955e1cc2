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
	_ "time/tzdata"

	"github.com/alefshop/attendance-backend/internal/config"
	appHTTP "github.com/alefshop/attendance-backend/internal/handler/http"
	"github.com/alefshop/attendance-backend/internal/pkg/cron"
	"github.com/alefshop/attendance-backend/internal/pkg/database"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/alefshop/attendance-backend/internal/repository/postgresql"
	attendanceService "github.com/alefshop/attendance-backend/internal/service/attendance"
	serviceAuth "github.com/alefshop/attendance-backend/internal/service/auth"
	financeService "github.com/alefshop/attendance-backend/internal/service/finance"
	reportService "github.com/alefshop/attendance-backend/internal/service/report"
	workerService "github.com/alefshop/attendance-backend/internal/service/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	loc := cfg.Attendance.Location()
	expectedStart := cfg.Attendance.ExpectedStartClock()

	userRepo := postgresql.NewUserRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	financeRepo := postgresql.NewFinanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.AccessTTL())
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	workerSvc := workerService.NewWorkerService(workerRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		postgresql.NewTransactor(db),
		attendanceRepo,
		workerRepo,
		loc,
		expectedStart,
		cfg.Attendance.AutoCheckoutClock(),
	)
	financeSvc := financeService.NewFinanceService(financeRepo, workerRepo, loc)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		financeRepo,
		workerRepo,
		loc,
		expectedStart,
		cfg.Attendance.WeekStartDay(),
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler, cfg.Attendance.AutoCheckoutEvery)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Finance:    appHTTP.NewFinanceHandler(financeSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "timezone", loc.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
