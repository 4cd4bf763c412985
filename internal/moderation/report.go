// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package moderation handles user reports and the admin decisions on them.

# Lifecycle

A report starts as pending. An admin moves it to reviewed, resolved or
dismissed, which records who handled it and when. Moving it back to pending
re-opens it and clears the handler.

A reporter can hold only one pending report per target. The database enforces
this with a partial unique index, and the service maps the violation to 409.
*/
package moderation

import "time"

// # Enums

// TargetType is the kind of entity being reported.
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetAnswer  TargetType = "answer"
	TargetComment TargetType = "comment"
	TargetUser    TargetType = "user"
)

// TargetTypes lists every reportable entity kind.
var TargetTypes = []string{string(TargetPost), string(TargetAnswer), string(TargetComment), string(TargetUser)}

// Status is the moderation state of a report.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Statuses lists every valid report status.
var Statuses = []string{string(StatusPending), string(StatusReviewed), string(StatusResolved), string(StatusDismissed)}

// # Entities

// Report is a user's complaint about a post, answer, comment or user.
type Report struct {
	ID         string     `json:"id"` // UUIDv7
	ReporterID string     `json:"reporterId"`
	TargetType TargetType `json:"targetType"`
	TargetID   string     `json:"targetId"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	ReviewNote *string    `json:"reviewNote,omitempty"`
	HandledBy  *string    `json:"handledBy,omitempty"`
	HandledAt  *time.Time `json:"handledAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ReportInput is the body of a new report.
type ReportInput struct {
	TargetType TargetType `json:"targetType"`
	TargetID   string     `json:"targetId"`
	Reason     string     `json:"reason"`
}

// Decision is an admin's ruling on a report.
type Decision struct {
	Status     Status  `json:"status"`
	ReviewNote *string `json:"reviewNote"`
}

// # Field Identifiers

const (
	FieldTargetType = "targetType"
	FieldTargetID   = "targetId"
	FieldReason     = "reason"
	FieldStatus     = "status"
	FieldReviewNote = "reviewNote"
)

const (
	reasonMinRunes     = 5
	reasonMaxRunes     = 500
	reviewNoteMaxRunes = 1000
)
