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

	"github.com/cmlabs-hris/presensi-backend-go/internal/config"
	"github.com/cmlabs-hris/presensi-backend-go/internal/domain/attendance"
	appHTTP "github.com/cmlabs-hris/presensi-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/presensi-backend-go/internal/pkg/redis"
	"github.com/cmlabs-hris/presensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/presensi-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/presensi-backend-go/internal/service/auth"
	reportService "github.com/cmlabs-hris/presensi-backend-go/internal/service/report"
	userService "github.com/cmlabs-hris/presensi-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	policy, err := attendancePolicy(cfg, loc)
	if err != nil {
		return err
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.JWT.CookieSecure)

	userSvc := userService.NewUserService(userRepo)
	authSvc := serviceAuth.NewAuthService(transactor, userRepo, userSvc, refreshTokenRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, policy)
	reportSvc := reportService.NewReportService(reportRepo, userRepo)

	var locker cron.Locker
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		locker = redis.NewLocker(redisClient)
	}

	scheduler := cron.NewScheduler(loc, locker, cfg.Schedule.LockTTL)
	if cfg.Schedule.Enabled {
		attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, policy)
		if err := attendanceJobs.RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register attendance jobs: %w", err)
		}

		reportJobs := cron.NewReportJobs(reportSvc, cron.ReportSchedule{
			Daily:   cfg.Schedule.DailyReport,
			Weekly:  cfg.Schedule.WeeklyReport,
			Monthly: cfg.Schedule.MonthlyReport,
		}, loc)
		if err := reportJobs.RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register report jobs: %w", err)
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		authHandler,
		userHandler,
		attendanceHandler,
		reportHandler,
		dashboardHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func attendancePolicy(cfg *config.Config, loc *time.Location) (attendance.Policy, error) {
	startHour, startMinute, err := config.ParseClock(cfg.Attendance.WorkStart)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid ATTENDANCE_WORK_START: %w", err)
	}
	cutoffHour, cutoffMinute, err := config.ParseClock(cfg.Attendance.AutoCheckoutTime)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid ATTENDANCE_AUTO_CHECKOUT_TIME: %w", err)
	}

	return attendance.Policy{
		Location:        loc,
		WorkStartHour:   startHour,
		WorkStartMinute: startMinute,
		CutoffHour:      cutoffHour,
		CutoffMinute:    cutoffMinute,
	}, nil
}
