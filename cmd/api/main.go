// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the HanQA HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the content pipeline and rate limiters.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/hanqa/internal/admin"
	"github.com/taibuivan/hanqa/internal/api"
	"github.com/taibuivan/hanqa/internal/moderation"
	"github.com/taibuivan/hanqa/internal/platform/config"
	"github.com/taibuivan/hanqa/internal/platform/constants"
	"github.com/taibuivan/hanqa/internal/platform/migration"
	pgstore "github.com/taibuivan/hanqa/internal/platform/postgres"
	redisstore "github.com/taibuivan/hanqa/internal/platform/redis"
	"github.com/taibuivan/hanqa/internal/platform/sec"
	"github.com/taibuivan/hanqa/internal/qa"
	"github.com/taibuivan/hanqa/internal/ratelimit"
	"github.com/taibuivan/hanqa/internal/trust"
	"github.com/taibuivan/hanqa/internal/ugc"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("rate_limit_store", cfg.RateLimit.Store),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process; stops the in-memory limiter sweepers.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.ServerOptions(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, cfg.Debug, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	adminTokens, err := sec.NewAdminTokenService(cfg.Admin.JWTSecret, cfg.IsProduction(), constants.AdminSessionTTL,
		sec.WithIssuer(constants.AdminIssuer))
	must(log, err, "initialize admin token service")

	credentials := sec.NewCredentialVerifier(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash)

	// ── 7. Content Pipeline ───────────────────────────────────────────────
	policy, err := ugc.LoadPolicy(cfg.ModerationPolicyPath)
	must(log, err, "load moderation policy")

	log.Info("moderation_policy_loaded",
		slog.String("version", policy.Version),
		slog.Int("rules", policy.RuleCount()),
	)

	allowlist := ugc.NewAllowlist(ugc.AllowlistConfig{
		SiteURL:      cfg.SiteURL,
		AppURL:       cfg.AppURL,
		StorageURL:   cfg.SupabaseURL,
		ExtraDomains: cfg.ExtraDomains(),
	})
	screener := ugc.NewScreener(
		ugcLimits(cfg.UGC),
		ugc.NewSanitizer(),
		ugc.NewFilter(policy, cfg.SiteURL, cfg.AppURL, cfg.SupabaseURL),
		allowlist,
	)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	qaRepository := qa.NewPostgresRepository(pool)
	submissionWindow := ratelimit.Window{Max: cfg.RateLimit.SubmissionMax, Period: cfg.RateLimit.SubmissionWindow}
	qaService := qa.NewService(qaRepository, screener,
		ratelimit.NewWindowLimiter(qaRepository, submissionWindow), submissionWindow.RetryAfterSeconds(), log)

	moderationRepository := moderation.NewPostgresRepository(pool)
	reportWindow := ratelimit.Window{Max: cfg.RateLimit.ReportMax, Period: cfg.RateLimit.ReportWindow}
	moderationService := moderation.NewService(moderationRepository,
		ratelimit.NewWindowLimiter(moderationRepository, reportWindow), reportWindow.RetryAfterSeconds(), log)

	trustService := trust.NewService(trust.NewPostgresRepository(pool), log)
	adminService := admin.NewService(credentials, adminTokens, log)

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(log,
		api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	probeWindow := ratelimit.Window{Max: cfg.RateLimit.ProbeMax, Period: cfg.RateLimit.ProbeWindow}
	limits := api.Limits{
		Global:           globalLimiter(appCtx, cfg, rdb),
		GlobalRetryAfter: 1,
		Probe:            ratelimit.NewWindowedMemoryLimiter(appCtx, probeWindow, constants.RateLimitCleanupInterval),
		ProbeRetryAfter:  probeWindow.RetryAfterSeconds(),
	}

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		QA:         qa.NewHandler(qaService),
		UGC:        ugc.NewHandler(screener),
		Trust:      trust.NewHandler(trustService),
		Moderation: moderation.NewHandler(moderationService),
		Admin:      admin.NewHandler(adminService, cfg.IsProduction()),
	}

	server := api.NewServer(cfg, log, tokens, limits, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger builds the JSON logger tagged with the app name.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// globalLimiter picks the per-IP request limiter backend.
//
// The memory store is per process; run more than one replica with redis.
func globalLimiter(ctx context.Context, cfg *config.Config, rdb *goredis.Client) ratelimit.Limiter {
	if cfg.RateLimit.Store == "redis" {
		// One-second fixed windows approximate the token bucket rate.
		return ratelimit.NewRedisLimiter(rdb, constants.RedisPrefixRateLimit,
			ratelimit.Window{Max: cfg.RateLimit.Burst, Period: time.Second})
	}
	return ratelimit.NewMemoryLimiter(ctx, rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst,
		constants.RateLimitCleanupInterval, constants.RateLimitClientTTL)
}

// ugcLimits maps the UGC_* settings onto the screener bounds.
func ugcLimits(c config.UGCLimits) ugc.Limits {
	return ugc.Limits{
		PostTitle: ugc.Bounds{Min: c.PostTitleMin, Max: c.PostTitleMax},
		Post:      ugc.Bounds{Min: c.PostBodyMin, Max: c.PostBodyMax},
		Answer:    ugc.Bounds{Min: c.AnswerMin, Max: c.AnswerMax},
		Comment:   ugc.Bounds{Min: c.CommentMin, Max: c.CommentMax},
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
