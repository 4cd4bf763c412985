// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/taibuivan/hanqa/internal/platform/apperr"
	"github.com/taibuivan/hanqa/internal/platform/ctxutil"
)

// Rejection codes raised by the screener besides the [VerdictCode] values.
const (
	CodeProhibitedContent = "PROHIBITED_CONTENT"
	CodeDisallowedLink    = "DISALLOWED_LINK"
)

// Screened is content that passed every gate.
type Screened struct {
	// HTML is the sanitized markup to persist. Empty for plain fields.
	HTML string
	// Text is the visible text, stored for search and excerpts.
	Text string
	// Length is the rune count of Text.
	Length int
}

// Screener runs the full UGC pipeline.
type Screener struct {
	limits    Limits
	sanitizer *Sanitizer
	filter    *Filter
	allowlist *Allowlist
}

/*
NewScreener assembles the pipeline from its parts.

Parameters:
  - limits: Limits (length bounds per content type)
  - sanitizer: *Sanitizer
  - filter: *Filter
  - allowlist: *Allowlist

Returns:
  - *Screener: The ready screener
*/
func NewScreener(limits Limits, sanitizer *Sanitizer, filter *Filter, allowlist *Allowlist) *Screener {
	return &Screener{limits: limits, sanitizer: sanitizer, filter: filter, allowlist: allowlist}
}

// Limits returns the configured length bounds.
func (s *Screener) Limits() Limits {
	return s.limits
}

/*
Screen sanitizes rich markup and checks it.

The order is fixed: sanitize, derive plain text, validate length and
quality, filter content, then check links. The first failure wins.

Returns:
  - Screened: The sanitized markup and its plain text
  - error: *apperr.AppError, Validation kind for verdicts and ContentPolicy kind for filter or link rejections
*/
func (s *Screener) Screen(ctx context.Context, contentType ContentType, markup string) (Screened, error) {
	clean := s.sanitizer.Sanitize(markup)
	text := ToPlainText(clean)

	if err := s.check(ctx, contentType, clean, text); err != nil {
		return Screened{}, err
	}

	return Screened{HTML: clean, Text: text, Length: utf8.RuneCountInString(text)}, nil
}

// ScreenPlain checks a plain-text field such as a post title. Any markup in
// text is stripped, never kept.
func (s *Screener) ScreenPlain(ctx context.Context, contentType ContentType, text string) (Screened, error) {
	plain := ToPlainText(text)

	if err := s.check(ctx, contentType, plain, plain); err != nil {
		return Screened{}, err
	}

	return Screened{Text: plain, Length: utf8.RuneCountInString(plain)}, nil
}

func (s *Screener) check(ctx context.Context, contentType ContentType, markup, text string) error {
	verdict, err := s.limits.Validate(contentType, markup)
	if err != nil {
		return apperr.Internal(err)
	}

	logger := ctxutil.GetLogger(ctx)

	if !verdict.OK {
		return verdict.Err().WithMeta("contentType", string(contentType))
	}

	if rule, blocked := s.filter.Match(text); blocked {
		logger.Info("ugc_prohibited_content",
			slog.String("content_type", string(contentType)),
			slog.String("rule", rule),
		)
		return apperr.ContentPolicy(CodeProhibitedContent, "Content contains prohibited words, contact details or advertising").
			WithMeta("contentType", string(contentType))
	}

	if links := s.allowlist.ValidateExternalLinks(markup); !links.OK {
		logger.Info("ugc_disallowed_link",
			slog.String("content_type", string(contentType)),
			slog.String("domain", links.Domain),
		)
		return apperr.ContentPolicy(CodeDisallowedLink, "Links to "+links.Domain+" are not allowed").
			WithMeta("domain", links.Domain).
			WithMeta("contentType", string(contentType))
	}

	return nil
}
