// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command trust-backfill recomputes every author's trust profile once and exits.
//
// It is meant to be triggered on a schedule (cron, Kubernetes CronJob). Two
// runs must not overlap: the job assumes it is the only writer of the trust
// columns.
//
// # Exit Codes
//   - 0: Profiles written
//   - 1: Configuration, connection or recompute failure
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/hanqa/internal/platform/constants"
	pgstore "github.com/taibuivan/hanqa/internal/platform/postgres"
	"github.com/taibuivan/hanqa/internal/trust"
)

// backfillConfig is the subset of settings the job needs. The API's full
// config would demand JWT keys and admin credentials it never uses.
type backfillConfig struct {
	DatabaseURL string        `env:"DATABASE_URL,required,notEmpty"`
	Timeout     time.Duration `env:"TRUST_BACKFILL_TIMEOUT" envDefault:"10m"`
	Debug       bool          `env:"DEBUG"                  envDefault:"false"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var cfg backfillConfig
	parseErr := env.Parse(&cfg)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("job", "trust-backfill"))

	if parseErr != nil {
		log.Error("startup_failure", slog.String("context", "load configuration"), slog.Any("error", parseErr))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.BatchOptions(), log)
	if err != nil {
		log.Error("startup_failure", slog.String("context", "connect to postgres"), slog.Any("error", err))
		return 1
	}
	defer pool.Close()

	report, err := trust.NewService(trust.NewPostgresRepository(pool), log).Recompute(ctx)
	if err != nil {
		log.Error("trust_backfill_failed", slog.Any("error", err))
		return 1
	}

	log.Info("trust_backfill_done",
		slog.Int("users", report.Users),
		slog.Time("at", report.At),
	)
	return 0
}
