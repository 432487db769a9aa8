package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/talent-search/internal/app"
	"github.com/honeycarbs/talent-search/internal/config"
	"github.com/honeycarbs/talent-search/pkg/logging"
	"github.com/honeycarbs/talent-search/pkg/shutdown"
)

func main() {
	cfg, err := config.Load(os.Getenv("TALENT_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	a, cleanup, err := app.Initialize(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		a.Server,
	)

	logger.Info("talent-search server starting",
		"addr", a.Server.Addr(),
		"backend", cfg.TalentAPI.BaseURL,
		"plan", cfg.BillingPlan,
	)

	if err := a.Server.Run(); err != nil {
		logger.Error("HTTP server exited with error", "err", err)
	} else {
		logger.Info("HTTP server stopped")
	}
}
