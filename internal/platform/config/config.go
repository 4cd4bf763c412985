// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, allowlist, limits) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/hanqa/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the HanQA API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// End-user access tokens are issued by the auth provider; we only need the public key.
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// Admin surface
	Admin AdminConfig `envPrefix:"ADMIN_"`

	// Public hostnames used by the link allowlist and the content filter.
	SiteURL                string `env:"SITE_URL"    envDefault:"https://hanqa.kr"`
	AppURL                 string `env:"APP_URL"`
	SupabaseURL            string `env:"SUPABASE_URL"`
	AllowedExternalDomains string `env:"ALLOWED_EXTERNAL_DOMAINS"`

	// ModerationPolicyPath points at a YAML policy that replaces the embedded default.
	ModerationPolicyPath string `env:"MODERATION_POLICY_PATH"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	UGC UGCLimits `envPrefix:"UGC_"`
}

// AdminConfig holds the credentials and signing secret of the admin session.
type AdminConfig struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD"`

	// PasswordHash, when set, switches credential checks to bcrypt.
	PasswordHash string `env:"PASSWORD_HASH"`

	// JWTSecret signs admin session tokens. Required in production.
	JWTSecret string `env:"JWT_SECRET"`
}

// RateLimitConfig controls both the global request limiter and submission windows.
type RateLimitConfig struct {
	// Store selects the global limiter backend: "memory" or "redis".
	Store string  `env:"STORE" envDefault:"memory"`
	RPS   float64 `env:"RPS"   envDefault:"100"`
	Burst int     `env:"BURST" envDefault:"150"`

	// Submission windows are counted against rows in the database.
	SubmissionWindow time.Duration `env:"SUBMISSION_WINDOW" envDefault:"10m"`
	SubmissionMax    int           `env:"SUBMISSION_MAX"    envDefault:"20"`
	ReportWindow     time.Duration `env:"REPORT_WINDOW"     envDefault:"1h"`
	ReportMax        int           `env:"REPORT_MAX"        envDefault:"10"`

	// Probe applies to the public /ugc/validate endpoint.
	ProbeWindow time.Duration `env:"PROBE_WINDOW" envDefault:"1m"`
	ProbeMax    int           `env:"PROBE_MAX"    envDefault:"30"`
}

// UGCLimits are the visible-character bounds per content type.
type UGCLimits struct {
	PostTitleMin int `env:"POST_TITLE_MIN" envDefault:"10"`
	PostTitleMax int `env:"POST_TITLE_MAX" envDefault:"120"`
	PostBodyMin  int `env:"POST_BODY_MIN"  envDefault:"10"`
	PostBodyMax  int `env:"POST_BODY_MAX"  envDefault:"8000"`
	AnswerMin    int `env:"ANSWER_MIN"     envDefault:"10"`
	AnswerMax    int `env:"ANSWER_MAX"     envDefault:"5000"`
	CommentMin   int `env:"COMMENT_MIN"    envDefault:"10"`
	CommentMax   int `env:"COMMENT_MAX"    envDefault:"800"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces cross-field rules env tags cannot express.
func (c *Config) validate() error {
	if c.IsProduction() && c.Admin.JWTSecret == "" {
		return fmt.Errorf("config: ADMIN_JWT_SECRET is required in production")
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("config: one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	switch c.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: RATE_LIMIT_STORE must be memory or redis, got %q", c.RateLimit.Store)
	}

	for name, max := range map[string]int{
		"RATE_LIMIT_SUBMISSION_MAX": c.RateLimit.SubmissionMax,
		"RATE_LIMIT_REPORT_MAX":     c.RateLimit.ReportMax,
		"RATE_LIMIT_PROBE_MAX":      c.RateLimit.ProbeMax,
	} {
		if max < 1 {
			return fmt.Errorf("config: %s must be positive", name)
		}
	}

	bounds := [][2]int{
		{c.UGC.PostTitleMin, c.UGC.PostTitleMax},
		{c.UGC.PostBodyMin, c.UGC.PostBodyMax},
		{c.UGC.AnswerMin, c.UGC.AnswerMax},
		{c.UGC.CommentMin, c.UGC.CommentMax},
	}
	for _, b := range bounds {
		if b[0] < 0 || b[1] < b[0] {
			return fmt.Errorf("config: invalid UGC length bounds [%d,%d]", b[0], b[1])
		}
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ExtraDomains returns the parsed ALLOWED_EXTERNAL_DOMAINS list.
func (c *Config) ExtraDomains() []string {
	return query.StringSlice(c.AllowedExternalDomains)
}

// CORSOrigins lists the browser origins allowed to call the API in production.
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, origin := range []string{c.SiteURL, c.AppURL} {
		if origin != "" {
			origins = append(origins, strings.TrimSuffix(origin, "/"))
		}
	}
	return origins
}
