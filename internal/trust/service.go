// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package trust

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/hanqa/internal/platform/validate"
	"github.com/taibuivan/hanqa/pkg/slice"
)

// BadgeTypes are the account badge types admins may assign.
var BadgeTypes = []string{
	"student",
	"worker",
	"expert",
	"expert_immigration",
	"expert_labor",
	"expert_tax",
}

// RecomputeReport summarises one backfill run.
type RecomputeReport struct {
	Users    int           `json:"users"`
	At       time.Time     `json:"at"`
	Duration time.Duration `json:"duration"`
}

// ProfileScore is the trust profile together with its composite score.
type ProfileScore struct {
	Profile
	Score
}

// # Service Layer

// Service orchestrates the trust backfill and profile reads.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new trust [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	clone := *service
	clone.now = now
	return &clone
}

/*
Recompute rebuilds every trust profile from the current aggregates.

Description: All profiles share a single timestamp. Running it twice with
unchanged data writes identical values. It must not run concurrently with
itself.

Parameters:
  - context: context.Context

Returns:
  - RecomputeReport: Number of profiles written and elapsed time
  - error: Retrieval or persistence failures
*/
func (service *Service) Recompute(context context.Context) (RecomputeReport, error) {
	started := service.now()

	stats, err := service.repo.AuthorStats(context)
	if err != nil {
		return RecomputeReport{}, err
	}

	profiles := slice.Map(stats, Compute)
	if err := service.repo.SaveProfiles(context, profiles, started); err != nil {
		return RecomputeReport{}, err
	}

	report := RecomputeReport{
		Users:    len(profiles),
		At:       started,
		Duration: service.now().Sub(started),
	}

	service.logger.Info("trust_recompute_finished",
		slog.Int("users", report.Users),
		slog.Duration("duration", report.Duration),
	)

	return report, nil
}

/*
GetScore returns the stored profile of a user with its composite score.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *ProfileScore: Profile and score
  - error: NotFound if the user does not exist
*/
func (service *Service) GetScore(context context.Context, userID string) (*ProfileScore, error) {
	profile, err := service.repo.FindProfile(context, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileScore{Profile: *profile, Score: CompositeScore(*profile)}, nil
}

/*
UpdateSignals sets the expert, verified and badge flags of a user.

Parameters:
  - context: context.Context
  - userID: string
  - patch: SignalsPatch
  - admin: string (Username recorded in the audit log)

Returns:
  - *Signals: Flags after the update
  - error: Validation, NotFound or persistence failures
*/
func (service *Service) UpdateSignals(context context.Context, userID string, patch SignalsPatch, admin string) (*Signals, error) {
	validator := &validate.Validator{}
	validator.UUID("userId", userID)
	if patch.BadgeType != nil && *patch.BadgeType != "" {
		validator.OneOf("badgeType", *patch.BadgeType, BadgeTypes...)
	}
	validator.Custom("signals", patch.IsExpert == nil && patch.IsVerified == nil && patch.BadgeType == nil,
		"At least one of isExpert, isVerified or badgeType is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	signals, err := service.repo.UpdateSignals(context, userID, patch)
	if err != nil {
		return nil, err
	}

	service.logger.Info("trust_signals_updated",
		slog.String("user_id", userID),
		slog.String("admin", admin),
		slog.Bool("is_expert", signals.IsExpert),
		slog.Bool("is_verified", signals.IsVerified),
	)

	return signals, nil
}
