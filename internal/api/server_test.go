// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/admin"
	"github.com/taibuivan/hanqa/internal/api"
	"github.com/taibuivan/hanqa/internal/moderation"
	"github.com/taibuivan/hanqa/internal/platform/config"
	"github.com/taibuivan/hanqa/internal/platform/constants"
	"github.com/taibuivan/hanqa/internal/platform/sec"
	"github.com/taibuivan/hanqa/internal/qa"
	"github.com/taibuivan/hanqa/internal/ratelimit"
	"github.com/taibuivan/hanqa/internal/trust"
	"github.com/taibuivan/hanqa/internal/ugc"
)

// allowAll is a limiter that never blocks.
type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }

func newServer(t *testing.T, probeMax int, checks ...api.HealthCheck) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "0", Environment: "development"}

	policy, err := ugc.DefaultPolicy()
	require.NoError(t, err)
	screener := ugc.NewScreener(ugc.DefaultLimits(), ugc.NewSanitizer(), ugc.NewFilter(policy, cfg.SiteURL),
		ugc.NewAllowlist(ugc.AllowlistConfig{SiteURL: "https://hanqa.kr"}))

	tokens, err := sec.NewAdminTokenService("", false, constants.AdminSessionTTL)
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(logger, checks...)
	probe := ratelimit.Window{Max: probeMax, Period: time.Minute}

	server := api.NewServer(cfg, logger, sec.NewTokenServiceFromKeys(nil, nil, constants.AuthIssuer),
		api.Limits{
			Global:           allowAll{},
			GlobalRetryAfter: 1,
			Probe:            ratelimit.NewWindowedMemoryLimiter(t.Context(), probe, time.Minute),
			ProbeRetryAfter:  probe.RetryAfterSeconds(),
		},
		api.Handlers{
			Liveness:   liveness,
			Readiness:  readiness,
			QA:         qa.NewHandler(qa.NewService(nil, screener, allowAll{}, 60, logger)),
			UGC:        ugc.NewHandler(screener),
			Trust:      trust.NewHandler(trust.NewService(nil, logger)),
			Moderation: moderation.NewHandler(moderation.NewService(nil, allowAll{}, 60, logger)),
			Admin:      admin.NewHandler(admin.NewService(sec.NewCredentialVerifier("admin", "pw", ""), tokens, logger), false),
		},
	)
	return server.Handler()
}

/*
TestServer_Health verifies liveness and readiness reporting.
*/
func TestServer_Health(t *testing.T) {
	healthy := api.HealthCheck{Name: "postgres", Check: func(context.Context) error { return nil }}
	broken := api.HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("Liveness", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		newServer(t, 5, broken).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
	})

	t.Run("Ready", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		newServer(t, 5, healthy).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"ready"`)
	})

	t.Run("Degraded", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		newServer(t, 5, healthy, broken).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "connection refused")
	})
}

/*
TestServer_ProbeRateLimit verifies that the probe has its own IP budget.
*/
func TestServer_ProbeRateLimit(t *testing.T) {
	router := newServer(t, 2)
	body := `{"contentType":"comment","content":"Thanks, that worked for me."}`

	codes := make([]int, 0, 3)
	for range 3 {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/ugc/validate", strings.NewReader(body)))
		codes = append(codes, recorder.Code)

		if recorder.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", recorder.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

/*
TestServer_AdminGuard verifies that every admin section is behind the session cookie.
*/
func TestServer_AdminGuard(t *testing.T) {
	router := newServer(t, 5)

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/reports"},
		{http.MethodDelete, "/api/v1/admin/content/posts/0190b5a4-8f1e-7c3a-9d2b-0000000000aa"},
		{http.MethodPost, "/api/v1/admin/trust/recompute"},
		{http.MethodGet, "/api/v1/admin/session"},
	} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, target.path)
	}
}

/*
TestServer_Anonymous verifies that submissions require a user session.
*/
func TestServer_Anonymous(t *testing.T) {
	router := newServer(t, 5)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/posts", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{}`))
	bad.Header.Set("Authorization", "Bearer not-a-token")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, bad)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
