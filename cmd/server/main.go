package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/babytrack/internal/auth"
	"github.com/mamadbah2/babytrack/internal/config"
	"github.com/mamadbah2/babytrack/internal/repository"
	"github.com/mamadbah2/babytrack/internal/repository/memory"
	"github.com/mamadbah2/babytrack/internal/repository/mongodb"
	"github.com/mamadbah2/babytrack/internal/repository/sheets"
	"github.com/mamadbah2/babytrack/internal/scheduler"
	"github.com/mamadbah2/babytrack/internal/server/handlers"
	"github.com/mamadbah2/babytrack/internal/server/middleware"
	"github.com/mamadbah2/babytrack/internal/server/router"
	reportingsvc "github.com/mamadbah2/babytrack/internal/service/reporting"
	"github.com/mamadbah2/babytrack/internal/service/tracker"
	whatsappclient "github.com/mamadbah2/babytrack/pkg/clients/whatsapp"
	"github.com/mamadbah2/babytrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStorage(ctx, cfg, baseLogger)
	defer closeStore()

	loc := cfg.Location()
	trackerSvc := tracker.NewService(store, loc, logger.Named(baseLogger, "svc.tracker"))

	defaultUser, err := trackerSvc.EnsureDefaultUser(ctx, cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword)
	if err != nil {
		baseLogger.Fatal("failed to ensure default user", zap.Error(err))
	}

	deps := router.Deps{
		Tracker: handlers.NewTrackerHandler(trackerSvc, logger.Named(baseLogger, "handlers.tracker")),
	}
	if cfg.Auth.Enabled() {
		tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		deps.Auth = handlers.NewAuthHandler(trackerSvc, tokens, logger.Named(baseLogger, "handlers.auth"))
		deps.Identity = middleware.RequireToken(tokens, logger.Named(baseLogger, "middleware.auth"))
		baseLogger.Info("token authentication enabled")
	} else {
		deps.Identity = middleware.DefaultUser(defaultUser.ID)
		baseLogger.Warn("JWT_SECRET not set, every request acts as the default user", zap.Int64("user_id", defaultUser.ID))
	}
	engine := router.New(deps, logger.Named(baseLogger, "router"))

	reportingSvc := newReportingService(ctx, cfg, store, defaultUser.ID, baseLogger)
	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	serve(ctx, cfg, engine, baseLogger)
}

// openStorage returns the configured storage engine and its release func.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Storage, func()) {
	if cfg.Storage.Backend != config.BackendMongoDB {
		log.Info("using in-memory storage")
		return memory.NewStore(), func() {}
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(log, "repo.mongodb"))
	if err != nil {
		log.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	return mongoRepo, func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			log.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}

func newReportingService(ctx context.Context, cfg *config.Config, store repository.Storage, ownerID int64, log *zap.Logger) *reportingsvc.Service {
	var sheet reportingsvc.SheetExporter
	if cfg.Sheets.Enabled() {
		digestSheet, err := sheets.NewDigestSheet(ctx, cfg.Sheets, logger.Named(log, "repo.sheets"))
		if err != nil {
			log.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheet = digestSheet
	} else {
		log.Info("google sheets not configured, digest export disabled")
	}

	var messenger reportingsvc.Messenger
	if cfg.WhatsApp.Enabled() {
		messenger = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		log.Info("whatsapp not configured, digest messages disabled")
	}

	return reportingsvc.NewService(store, ownerID, sheet, messenger, cfg.WhatsApp.DigestRecipient, logger.Named(log, "svc.reporting"))
}

func serve(ctx context.Context, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
