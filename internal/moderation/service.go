// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
	"github.com/taibuivan/hanqa/internal/platform/validate"
	"github.com/taibuivan/hanqa/internal/ratelimit"
	"github.com/taibuivan/hanqa/pkg/pagination"
	"github.com/taibuivan/hanqa/pkg/pointer"
	"github.com/taibuivan/hanqa/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates report filing and moderation decisions.
type Service struct {
	repo       Repository
	limiter    ratelimit.Limiter
	retryAfter int
	logger     *slog.Logger
	now        func() time.Time
}

/*
NewService constructs a new moderation [Service].

Parameters:
  - repo: Repository
  - limiter: ratelimit.Limiter (per-reporter budget, usually a [ratelimit.WindowLimiter] over repo)
  - retryAfter: int (seconds advertised on 429)
  - logger: *slog.Logger
*/
func NewService(repo Repository, limiter ratelimit.Limiter, retryAfter int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		limiter:    limiter,
		retryAfter: retryAfter,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	clone := *service
	clone.now = now
	return &clone
}

/*
FileReport validates and stores a new report.

Description: Checks run in order: input validation, self-report, the
reporter's rate budget, then the insert. A second pending report on the same
target by the same reporter fails with 409.

Parameters:
  - context: context.Context
  - reporterID: string
  - input: ReportInput

Returns:
  - *Report: The stored report
  - error: VALIDATION_ERROR, RATE_LIMITED, CONFLICT or persistence failures
*/
func (service *Service) FileReport(context context.Context, reporterID string, input ReportInput) (*Report, error) {
	input.Reason = strings.TrimSpace(input.Reason)

	validator := &validate.Validator{}
	validator.
		OneOf(FieldTargetType, string(input.TargetType), TargetTypes...).
		UUID(FieldTargetID, input.TargetID).
		Between(FieldReason, input.Reason, reasonMinRunes, reasonMaxRunes).
		Custom(FieldTargetID, input.TargetType == TargetUser && strings.EqualFold(input.TargetID, reporterID),
			"You cannot report yourself")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	allowed, err := service.limiter.Allow(context, reporterID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !allowed {
		ctxutil.GetLogger(context).Warn("report_rate_limited", slog.String("reporter_id", reporterID))
		return nil, apperr.RateLimited(service.retryAfter)
	}

	report := &Report{
		ID:         uuidv7.New(),
		ReporterID: reporterID,
		TargetType: input.TargetType,
		TargetID:   strings.ToLower(input.TargetID),
		Reason:     input.Reason,
		Status:     StatusPending,
		CreatedAt:  service.now().UTC(),
	}

	if err := service.repo.Create(context, report); err != nil {
		return nil, err
	}

	service.logger.Info("report_filed",
		slog.String("report_id", report.ID),
		slog.String("reporter_id", reporterID),
		slog.String("target_type", string(report.TargetType)),
		slog.String("target_id", report.TargetID),
	)

	return report, nil
}

/*
ListReports returns a page of reports for the admin queue.

Parameters:
  - context: context.Context
  - status: Status (empty for all)
  - page: pagination.Params

Returns:
  - []*Report: Page of reports
  - int: Total matching count
  - error: Validation or retrieval failures
*/
func (service *Service) ListReports(context context.Context, status Status, page pagination.Params) ([]*Report, int, error) {
	if status != "" {
		if err := (&validate.Validator{}).OneOf(FieldStatus, string(status), Statuses...).Err(); err != nil {
			return nil, 0, err
		}
	}

	page = page.Normalize()
	return service.repo.List(context, status, page.Limit, page.Offset())
}

/*
Decide records an admin decision on a report.

Description: Any non-pending status stamps the admin and the time. Moving a
report back to pending re-opens it and clears both.

Parameters:
  - context: context.Context
  - reportID: string
  - decision: Decision
  - admin: string (Admin username)

Returns:
  - *Report: The updated report
  - error: VALIDATION_ERROR, NOT_FOUND or persistence failures
*/
func (service *Service) Decide(context context.Context, reportID string, decision Decision, admin string) (*Report, error) {
	validator := &validate.Validator{}
	validator.
		UUID("id", reportID).
		OneOf(FieldStatus, string(decision.Status), Statuses...)
	if decision.ReviewNote != nil {
		validator.MaxLen(FieldReviewNote, *decision.ReviewNote, reviewNoteMaxRunes)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// A blank note is stored as NULL.
	decision.ReviewNote = pointer.NonZero(strings.TrimSpace(pointer.Val(decision.ReviewNote)))

	var (
		handledBy *string
		handledAt *time.Time
	)
	if decision.Status != StatusPending {
		handledBy = pointer.To(admin)
		handledAt = pointer.To(service.now().UTC())
	}

	report, err := service.repo.UpdateStatus(context, reportID, decision, handledBy, handledAt)
	if err != nil {
		return nil, err
	}

	service.logger.Info("report_decided",
		slog.String("report_id", reportID),
		slog.String("status", string(decision.Status)),
		slog.String("admin", admin),
	)

	return report, nil
}
