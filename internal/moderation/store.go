// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation

import (
	"context"
	"time"
)

// # Report Data Access

// Repository defines the data access contract for reports.
type Repository interface {

	/*
		Create persists a new pending report.

		Parameters:
		  - context: context.Context
		  - report: *Report

		Returns:
		  - error: Conflict when the reporter already has a pending report on the target
	*/
	Create(context context.Context, report *Report) error

	/*
		List returns reports newest first, optionally filtered by status.

		Parameters:
		  - context: context.Context
		  - status: Status (empty for all)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Report: Page of reports
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, status Status, limit, offset int) ([]*Report, int, error)

	/*
		UpdateStatus records a decision on a report.

		Parameters:
		  - context: context.Context
		  - id: string
		  - decision: Decision
		  - handledBy: *string (nil re-opens the report)
		  - handledAt: *time.Time

		Returns:
		  - *Report: The updated report
		  - error: NotFound if the report does not exist
	*/
	UpdateStatus(context context.Context, id string, decision Decision, handledBy *string, handledAt *time.Time) (*Report, error)

	/*
		CountSince counts reports filed by a reporter after cutoff.

		Parameters:
		  - context: context.Context
		  - reporterID: string
		  - cutoff: time.Time

		Returns:
		  - int: Number of reports
		  - error: Database retrieval failures
	*/
	CountSince(context context.Context, reporterID string, cutoff time.Time) (int, error)
}
