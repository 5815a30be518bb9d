package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ctrlKshav/feedy-backend/internal/application"
	appai "github.com/ctrlKshav/feedy-backend/internal/application/ai"
	"github.com/ctrlKshav/feedy-backend/internal/application/feedback"
	"github.com/ctrlKshav/feedy-backend/internal/config"
	infraai "github.com/ctrlKshav/feedy-backend/internal/infra/ai"
	"github.com/ctrlKshav/feedy-backend/internal/infra/httpserver"
	"github.com/ctrlKshav/feedy-backend/internal/infra/pdf"
	"github.com/ctrlKshav/feedy-backend/internal/infra/storage"
	"github.com/ctrlKshav/feedy-backend/internal/middleware"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// init storage
	store, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal("storage init error", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	// init inference
	provider, err := infraai.NewProvider(ctx, cfg.Inference)
	if err != nil {
		logger.Fatal("inference init error", zap.String("provider", cfg.Inference.Provider), zap.Error(err))
	}

	svc := &feedback.Service{
		Store:          store,
		Extractor:      pdf.NewExtractor(),
		AI:             appai.NewService(provider, aiSettings(cfg.Inference)),
		Clock:          application.SystemClock{},
		KeyPrefix:      cfg.Storage.Prefix,
		DefaultPersona: cfg.Analysis.DefaultPersona,
		Concurrency:    cfg.Analysis.Concurrency,
		Logger:         logger.Named("feedback"),
	}

	handler := httpserver.NewRouter(svc, httpserver.Options{
		Logger:      logger.Named("http"),
		APIKeys:     cfg.Server.APIKeys,
		MaxUploadMB: cfg.Server.MaxUploadMB,
		Checkers: map[string]middleware.HealthChecker{
			"storage": &middleware.StorageHealthChecker{Store: store},
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", addr),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("provider", cfg.Inference.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	if format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func aiSettings(in config.Inference) appai.Settings {
	return appai.Settings{
		VisionModel:       in.VisionModel,
		TextModel:         in.TextModel,
		RefineModel:       in.RefineModel,
		Temperature:       in.AnalysisTemperature(),
		MaxTokens:         in.MaxTokens,
		RefineTemperature: in.RefinementTemperature(),
		RefineMaxTokens:   in.RefineMaxTokens,
	}
}
