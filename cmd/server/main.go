package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/draftroom/draftroom/internal/advisor"
	"github.com/draftroom/draftroom/internal/catalog"
	"github.com/draftroom/draftroom/internal/config"
	"github.com/draftroom/draftroom/internal/httpapi"
	"github.com/draftroom/draftroom/internal/hub"
	"github.com/draftroom/draftroom/internal/metrics"
	"github.com/draftroom/draftroom/internal/orchestrator"
	"github.com/draftroom/draftroom/internal/recorder"
	"github.com/draftroom/draftroom/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var st store.Store
	if cfg.DatabaseDSN != "" {
		pg, err := store.NewPostgres(cfg.DatabaseDSN)
		if err != nil {
			logger.Fatal("open store", zap.Error(err))
		}
		st = pg
	} else {
		logger.Warn("no DATABASE_DSN set, drafts live in memory only")
		st = store.NewMemory()
	}

	var src catalog.Source = catalog.DefaultSource{}
	if cfg.PlayerFile != "" {
		src = catalog.FileSource{Path: cfg.PlayerFile}
	}

	var adv advisor.Advisor
	if cfg.AnthropicAPIKey != "" {
		adv = advisor.NewAnthropic(cfg.AnthropicAPIKey, cfg.AdvisorModel, logger)
	} else {
		logger.Warn("no ANTHROPIC_API_KEY set, all seats draft by the fallback rule")
	}

	mets := metrics.New()
	rec := recorder.New(st, logger, mets)
	seeder := catalog.NewSeeder(st, src, logger, mets)
	h := hub.NewHub(ctx)
	orc := orchestrator.New(rec, seeder, adv, h, logger, mets,
		time.Duration(cfg.AdvisorTimeoutSec)*time.Second)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(orc, h, mets, httpapi.Defaults{
			Participants: cfg.Rules.Participants,
			Rounds:       cfg.Rules.Rounds,
			PickTimerSec: cfg.Rules.PickTimerSec,
		}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
