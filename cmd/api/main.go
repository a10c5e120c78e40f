package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/config"
	"github.com/hamed0406/dbkeepalive/internal/domain"
	"github.com/hamed0406/dbkeepalive/internal/history"
	"github.com/hamed0406/dbkeepalive/internal/httpapi"
	"github.com/hamed0406/dbkeepalive/internal/logging"
	"github.com/hamed0406/dbkeepalive/internal/probe"
	"github.com/hamed0406/dbkeepalive/internal/registry"
	"github.com/hamed0406/dbkeepalive/internal/repo"
	"github.com/hamed0406/dbkeepalive/internal/repo/memory"
	"github.com/hamed0406/dbkeepalive/internal/repo/postgres"
	"github.com/hamed0406/dbkeepalive/internal/repo/sqlite"
	"github.com/hamed0406/dbkeepalive/internal/runner"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := newHistoryStore(ctx, cfg, logger)
	hist := history.New(store, logger)
	pinger := probe.NewHTTPPinger(cfg.ProbeTimeout, cfg.ProbePath, logger)
	discover := func() []domain.Target { return registry.Discover(os.Getenv, logger) }

	run := runner.New(logger, pinger, hist, discover, cfg.PingInterval)
	go run.Run(ctx)

	api := httpapi.NewServer(logger, run, hist)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router(cfg.TriggerRPM, cfg.TriggerBurst)); err != nil {
		log.Fatal(err)
	}
}

func newHistoryStore(ctx context.Context, cfg config.Config, logger *zap.Logger) repo.HistoryStore {
	switch {
	case cfg.DatabaseURL != "":
		s, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		logger.Info("history_store", zap.String("backend", "postgres"))
		return s
	case cfg.HistoryDB != "":
		s, err := sqlite.New(ctx, cfg.HistoryDB)
		if err != nil {
			log.Fatal(err)
		}
		logger.Info("history_store", zap.String("backend", "sqlite"), zap.String("path", cfg.HistoryDB))
		return s
	default:
		logger.Info("history_store", zap.String("backend", "memory"))
		return memory.New()
	}
}
