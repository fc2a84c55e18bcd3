package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dualtrack/internal/config"
	"dualtrack/internal/notify"
	"dualtrack/internal/repository"
	"dualtrack/internal/server"
	"dualtrack/internal/service"
	"dualtrack/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	occRepo := repository.NewOccurrenceRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	photoStore, err := storage.NewPhotoStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal("photo store", zap.Error(err))
	}

	planner := service.NewPlannerService(taskRepo)
	materializer := service.NewMaterializer(taskRepo, occRepo, settingRepo, cfg.Policy, nil)
	scoring := service.NewScoringService(taskRepo, occRepo, cfg.PointsPerTask)
	journal := service.NewJournalService(journalRepo, photoStore, logger)

	srv := server.New(planner, materializer, scoring, journal, settingRepo, cfg.MaxUploadBytes, photoStore.Dir(), logger)

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.MaterializeTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := materializer.EnsureDay(jobCtx, time.Now()); err != nil {
			logger.Error("scheduled materialization", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("schedule materialization", zap.Error(err))
	}

	if cfg.RematerializeInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.RematerializeInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := materializer.EnsureDay(jobCtx, time.Now()); err != nil {
				logger.Error("interval materialization", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("schedule interval materialization", zap.Error(err))
		}
	}

	if cfg.TelegramEnabled() {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, materializer, scoring, logger)
		if err != nil {
			logger.Fatal("telegram notifier", zap.Error(err))
		}
		if _, err := scheduler.ScheduleDaily(cfg.SummaryTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := notifier.SendDailySummary(jobCtx, time.Now()); err != nil {
				logger.Error("daily summary", zap.Error(err))
			}
		}); err != nil {
			logger.Fatal("schedule daily summary", zap.Error(err))
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("dualtrack started", zap.String("port", cfg.Port), zap.String("policy", cfg.Policy))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func buildLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}
