// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ugc gates user-generated content before it is persisted.

Every post, answer and comment passes the same pipeline, in this order:

 1. [Sanitizer.Sanitize] reduces the markup to a safe subset.
 2. [ToPlainText] derives the visible text.
 3. [Validate] checks length bounds and the low-quality heuristic.
 4. [Filter.HasProhibitedContent] rejects profanity and spam signals.
 5. [Allowlist.ValidateExternalLinks] rejects links to unknown hosts.

Sanitizing first means tags the sanitizer drops cannot hide banned text or
links from the later checks. [Screener] runs the whole pipeline and maps each
failure to an [apperr.AppError].

Validators never return errors for bad input; they return verdicts. All
types here are read-only after construction and safe for concurrent use.
*/
package ugc

import (
	"fmt"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
)

// # Content Types

// ContentType identifies which length bounds apply to a piece of text.
type ContentType string

const (
	ContentPostTitle ContentType = "post_title"
	ContentPost      ContentType = "post"
	ContentAnswer    ContentType = "answer"
	ContentComment   ContentType = "comment"
)

// # Verdicts

// VerdictCode is the machine-readable reason of a rejected verdict.
type VerdictCode string

const (
	CodeRequired   VerdictCode = "REQUIRED"
	CodeTooShort   VerdictCode = "TOO_SHORT"
	CodeTooLong    VerdictCode = "TOO_LONG"
	CodeLowQuality VerdictCode = "LOW_QUALITY"
)

// Verdict is the result of [Validate].
//
// Length is always the rune count of the visible text, never the byte
// length of the submitted markup.
type Verdict struct {
	OK     bool        `json:"ok"`
	Code   VerdictCode `json:"code,omitempty"`
	Length int         `json:"length"`
	Min    int         `json:"min"`
	Max    int         `json:"max"`
}

// Err converts a rejected verdict to a 400 [apperr.AppError] carrying
// {length, min, max} in its meta. It returns nil for an OK verdict.
func (v Verdict) Err() *apperr.AppError {
	if v.OK {
		return nil
	}

	var message string
	switch v.Code {
	case CodeRequired:
		message = "Content is required"
	case CodeTooShort:
		message = fmt.Sprintf("Content must be at least %d characters", v.Min)
	case CodeTooLong:
		message = fmt.Sprintf("Content must be at most %d characters", v.Max)
	default:
		message = "Content looks like placeholder or low-quality text"
	}

	return apperr.Rejected(string(v.Code), message).
		WithMeta("length", v.Length).
		WithMeta("min", v.Min).
		WithMeta("max", v.Max)
}

// # Length Bounds

// Bounds is an inclusive [Min, Max] visible-character range.
type Bounds struct {
	Min int
	Max int
}

// Limits holds the bounds of every content type.
type Limits struct {
	PostTitle Bounds
	Post      Bounds
	Answer    Bounds
	Comment   Bounds
}

// DefaultLimits returns the production bounds.
func DefaultLimits() Limits {
	return Limits{
		PostTitle: Bounds{Min: 10, Max: 120},
		Post:      Bounds{Min: 10, Max: 8000},
		Answer:    Bounds{Min: 10, Max: 5000},
		Comment:   Bounds{Min: 10, Max: 800},
	}
}

// For returns the bounds of contentType.
func (l Limits) For(contentType ContentType) (Bounds, bool) {
	switch contentType {
	case ContentPostTitle:
		return l.PostTitle, true
	case ContentPost:
		return l.Post, true
	case ContentAnswer:
		return l.Answer, true
	case ContentComment:
		return l.Comment, true
	}
	return Bounds{}, false
}

// Validate runs [Validate] with the bounds of contentType.
func (l Limits) Validate(contentType ContentType, text string) (Verdict, error) {
	bounds, ok := l.For(contentType)
	if !ok {
		return Verdict{}, fmt.Errorf("ugc: unknown content type %q", contentType)
	}
	return Validate(text, bounds.Min, bounds.Max), nil
}
