// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package trust

import (
	"context"
	"time"
)

// # Trust Data Access

// Repository defines the data access contract for trust profiles and signals.
type Repository interface {

	/*
		AuthorStats aggregates answer and follower counts for every active account.

		Parameters:
		  - context: context.Context

		Returns:
		  - []AuthorStats: One row per account, accounts without activity included
		  - error: Database retrieval failures
	*/
	AuthorStats(context context.Context) ([]AuthorStats, error)

	/*
		SaveProfiles writes derived profiles by primary key, all stamped with at.

		Parameters:
		  - context: context.Context
		  - profiles: []Profile
		  - at: time.Time (Recompute timestamp)

		Returns:
		  - error: Persistence failures; nothing is written on error
	*/
	SaveProfiles(context context.Context, profiles []Profile, at time.Time) error

	/*
		FindProfile retrieves the stored trust profile of a user.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)

		Returns:
		  - *Profile: Stored profile
		  - error: NotFound if the account is missing or deleted
	*/
	FindProfile(context context.Context, userID string) (*Profile, error)

	/*
		UpdateSignals applies a partial update to the admin trust flags.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - patch: SignalsPatch

		Returns:
		  - *Signals: The flags after the update
		  - error: NotFound if the account is missing or deleted
	*/
	UpdateSignals(context context.Context, userID string, patch SignalsPatch) (*Signals, error)
}

// SignalsPatch is a partial update of [Signals]. Nil fields are left alone;
// an empty BadgeType clears the badge.
type SignalsPatch struct {
	IsExpert   *bool   `json:"isExpert"`
	IsVerified *bool   `json:"isVerified"`
	BadgeType  *string `json:"badgeType"`
}
