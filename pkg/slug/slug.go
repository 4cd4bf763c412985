// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates URL slugs from question titles.
//
// # Usage
//
// Titles arrive in Korean, Vietnamese, Chinese and English. Latin accents are
// folded to ASCII ("Thủ tục" → "thu-tuc") while other scripts are kept as-is
// so that Hangul titles still produce readable paths.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxRunes bounds the slug length before the disambiguating suffix.
const MaxRunes = 80

// From converts an arbitrary Unicode title into a URL-safe slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and removes combining marks (accents).
// 2. Folds letters with no decomposition (đ → d).
// 3. Lowercases and turns every non letter/digit run into a single hyphen.
// 4. Recomposes to NFC and truncates to [MaxRunes].
func From(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2-3. Fold, lowercase and hyphenate in one pass
	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(result) {
		switch {
		case r == 'đ':
			r = 'd'
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			pendingHyphen = builder.Len() > 0
			continue
		}

		if pendingHyphen {
			builder.WriteByte('-')
			pendingHyphen = false
		}
		builder.WriteRune(r)
	}

	// 4. Recompose Hangul syllables split by NFD, then bound the length
	out := []rune(norm.NFC.String(builder.String()))
	if len(out) > MaxRunes {
		out = out[:MaxRunes]
	}

	return strings.Trim(string(out), "-")
}

// WithSuffix appends a short disambiguator, e.g. "visa-renewal-1a2b3c4d".
//
// Empty slugs (titles made only of punctuation or emoji) become the suffix alone.
func WithSuffix(s, suffix string) string {
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
