// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/moderation"
	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/ratelimit"
	"github.com/taibuivan/hanqa/pkg/pagination"
	"github.com/taibuivan/hanqa/pkg/pointer"
)

const (
	reporterID = "0190b5a4-8f1e-7c3a-9d2b-000000000001"
	postID     = "0190b5a4-8f1e-7c3a-9d2b-0000000000aa"
)

// memoryRepository mirrors the partial unique index on pending reports.
type memoryRepository struct {
	mu      sync.Mutex
	reports []*moderation.Report
}

func (m *memoryRepository) Create(_ context.Context, report *moderation.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reports {
		if existing.Status == moderation.StatusPending &&
			existing.ReporterID == report.ReporterID &&
			existing.TargetType == report.TargetType &&
			existing.TargetID == report.TargetID {
			return apperr.Conflict("Pending report already exists")
		}
	}
	copied := *report
	m.reports = append(m.reports, &copied)
	return nil
}

func (m *memoryRepository) List(_ context.Context, status moderation.Status, limit, offset int) ([]*moderation.Report, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []*moderation.Report
	for i := len(m.reports) - 1; i >= 0; i-- {
		if status == "" || m.reports[i].Status == status {
			matched = append(matched, m.reports[i])
		}
	}
	total := len(matched)
	if offset >= total {
		return []*moderation.Report{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (m *memoryRepository) UpdateStatus(_ context.Context, id string, decision moderation.Decision, handledBy *string, handledAt *time.Time) (*moderation.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, report := range m.reports {
		if report.ID == id {
			report.Status = decision.Status
			report.ReviewNote = decision.ReviewNote
			report.HandledBy = handledBy
			report.HandledAt = handledAt
			copied := *report
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Report")
}

func (m *memoryRepository) CountSince(_ context.Context, reporterID string, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, report := range m.reports {
		if report.ReporterID == reporterID && report.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count, nil
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(repo *memoryRepository, max int) *moderation.Service {
	clock := func() time.Time { return fixedNow }
	limiter := ratelimit.NewWindowLimiter(repo, ratelimit.Window{Max: max, Period: time.Hour}).WithNow(clock)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return moderation.NewService(repo, limiter, 3600, logger).WithClock(clock)
}

func validInput() moderation.ReportInput {
	return moderation.ReportInput{TargetType: moderation.TargetPost, TargetID: postID, Reason: "Advertising a visa broker"}
}

/*
TestService_FileReport_Validation covers the input rules.
*/
func TestService_FileReport_Validation(t *testing.T) {
	service := newService(&memoryRepository{}, 10)

	tests := []struct {
		name  string
		input moderation.ReportInput
	}{
		{"unknown_target_type", moderation.ReportInput{TargetType: "chapter", TargetID: postID, Reason: "spam spam"}},
		{"bad_target_id", moderation.ReportInput{TargetType: moderation.TargetPost, TargetID: "42", Reason: "spam spam"}},
		{"reason_too_short", moderation.ReportInput{TargetType: moderation.TargetPost, TargetID: postID, Reason: "  bad "}},
		{"self_report", moderation.ReportInput{TargetType: moderation.TargetUser, TargetID: reporterID, Reason: "reporting myself"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.FileReport(context.Background(), reporterID, tt.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_FileReport_Duplicate verifies that a second pending report is a conflict.
*/
func TestService_FileReport_Duplicate(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo, 10)

	report, err := service.FileReport(context.Background(), reporterID, validInput())
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, report.Status)
	assert.Len(t, report.ID, 36)

	_, err = service.FileReport(context.Background(), reporterID, validInput())
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// A dismissed report can be filed again.
	_, err = service.Decide(context.Background(), report.ID, moderation.Decision{Status: moderation.StatusDismissed}, "alice")
	require.NoError(t, err)
	_, err = service.FileReport(context.Background(), reporterID, validInput())
	assert.NoError(t, err)
}

/*
TestService_FileReport_RateLimit verifies the per-reporter window budget.
*/
func TestService_FileReport_RateLimit(t *testing.T) {
	service := newService(&memoryRepository{}, 2)

	targets := []string{
		"0190b5a4-8f1e-7c3a-9d2b-0000000000b1",
		"0190b5a4-8f1e-7c3a-9d2b-0000000000b2",
		"0190b5a4-8f1e-7c3a-9d2b-0000000000b3",
	}

	for i, target := range targets {
		input := validInput()
		input.TargetID = target
		_, err := service.FileReport(context.Background(), reporterID, input)

		if i < 2 {
			require.NoError(t, err)
			continue
		}
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "RATE_LIMITED", ae.Code)
		assert.Equal(t, 3600, ae.Meta["retryAfter"])
	}
}

/*
TestService_Decide verifies handler stamping and re-opening.
*/
func TestService_Decide(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo, 10)

	report, err := service.FileReport(context.Background(), reporterID, validInput())
	require.NoError(t, err)

	resolved, err := service.Decide(context.Background(), report.ID, moderation.Decision{
		Status:     moderation.StatusResolved,
		ReviewNote: pointer.To("Post removed"),
	}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", pointer.Val(resolved.HandledBy))
	assert.Equal(t, fixedNow, pointer.Val(resolved.HandledAt))

	assert.Equal(t, "Post removed", pointer.Val(resolved.ReviewNote))

	reopened, err := service.Decide(context.Background(), report.ID, moderation.Decision{
		Status:     moderation.StatusPending,
		ReviewNote: pointer.To("   "),
	}, "alice")
	require.NoError(t, err)
	assert.Nil(t, reopened.HandledBy)
	assert.Nil(t, reopened.HandledAt)
	assert.Nil(t, reopened.ReviewNote)

	_, err = service.Decide(context.Background(), report.ID, moderation.Decision{Status: "escalated"}, "alice")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.Decide(context.Background(), "0190b5a4-8f1e-7c3a-9d2b-0000000000ff", moderation.Decision{Status: moderation.StatusReviewed}, "alice")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_ListReports verifies status filtering and paging.
*/
func TestService_ListReports(t *testing.T) {
	repo := &memoryRepository{}
	service := newService(repo, 10)

	first, err := service.FileReport(context.Background(), reporterID, validInput())
	require.NoError(t, err)

	second := validInput()
	second.TargetID = "0190b5a4-8f1e-7c3a-9d2b-0000000000b1"
	_, err = service.FileReport(context.Background(), reporterID, second)
	require.NoError(t, err)

	_, err = service.Decide(context.Background(), first.ID, moderation.Decision{Status: moderation.StatusReviewed}, "alice")
	require.NoError(t, err)

	pending, total, err := service.ListReports(context.Background(), moderation.StatusPending, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, second.TargetID, pending[0].TargetID)

	_, _, err = service.ListReports(context.Background(), "open", pagination.Params{Page: 1, Limit: 20})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
