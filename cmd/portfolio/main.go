// Package main is the entry point for the portfolio web server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/app"
	"github.com/Faultbox/morphfolio/internal/config"
	"github.com/Faultbox/morphfolio/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== morphfolio server ===")
	logger.Sugar.Debugf("Config: %+v", cfg.Redacted())

	seed := app.Seed(cfg, time.Now)
	srv, err := app.NewServer(cfg, seed, logger.Log)
	if err != nil {
		logger.Error("failed to create server", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving",
		zap.String("addr", cfg.Server.Addr),
		zap.String("store", cfg.Contact.Store),
		zap.String("mailer", cfg.Contact.Mailer),
		zap.Bool("notifyOnSubmit", cfg.Contact.NotifyOnSubmit),
		zap.Int64("seed", seed),
	)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
