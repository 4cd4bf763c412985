// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// entityReplacer decodes the four entities editors emit. &amp; is last so
	// that "&amp;lt;" becomes the literal "&lt;" and not "<".
	entityReplacer = []struct{ from, to string }{
		{"&nbsp;", " "},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&amp;", "&"},
	}
)

const (
	// maxRepeatRun is the consecutive repetition that marks keyboard mashing.
	maxRepeatRun = 8
	// minLengthForVariety is the core length from which variety is checked.
	minLengthForVariety = 12
	// maxDistinctForFiller is the distinct-rune count at or below which a long core is filler.
	maxDistinctForFiller = 2
)

// ToPlainText converts editor markup to the visible text used for length and
// content checks.
//
// Tags become a single space, the four basic entities are decoded, the
// result is NFC-normalised, whitespace runs collapse to one space and the
// ends are trimmed.
func ToPlainText(markup string) string {
	text := tagPattern.ReplaceAllString(markup, " ")
	for _, entity := range entityReplacer {
		text = strings.ReplaceAll(text, entity.from, entity.to)
	}

	text = norm.NFC.String(text)
	return strings.Join(strings.Fields(text), " ")
}

// Validate checks text against [min, max] and the low-quality heuristic.
//
// The checks run in a fixed order: REQUIRED, TOO_SHORT, TOO_LONG, then
// LOW_QUALITY. The result is deterministic for a given input.
func Validate(text string, min, max int) Verdict {
	plain := ToPlainText(text)
	length := utf8.RuneCountInString(plain)

	verdict := Verdict{Length: length, Min: min, Max: max}
	switch {
	case length == 0:
		verdict.Code = CodeRequired
	case length < min:
		verdict.Code = CodeTooShort
	case length > max:
		verdict.Code = CodeTooLong
	case IsLowQualityText(plain):
		verdict.Code = CodeLowQuality
	default:
		verdict.OK = true
	}

	return verdict
}

// IsLowQualityText reports whether text is filler rather than content.
//
// The check runs on the core of the text: letters and numbers only, with
// case folded, so "abABabABabAB" has two distinct runes. Text is low quality
// when the core
//   - is empty,
//   - is all digits,
//   - is made only of standalone Hangul jamo (ㅋㅋㅋ, ㅠㅠ),
//   - repeats one rune 8 or more times in a row,
//   - or is at least 12 runes long with at most 2 distinct runes.
func IsLowQualityText(text string) bool {
	core := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			core = append(core, unicode.ToLower(r))
		}
	}

	if len(core) == 0 {
		return true
	}

	allDigits, allJamo := true, true
	distinct := make(map[rune]struct{}, 8)
	run := 0
	for i, r := range core {
		if !unicode.IsDigit(r) {
			allDigits = false
		}
		if !isJamo(r) {
			allJamo = false
		}

		if i > 0 && core[i-1] == r {
			run++
		} else {
			run = 1
		}
		if run >= maxRepeatRun {
			return true
		}

		distinct[r] = struct{}{}
	}

	if allDigits || allJamo {
		return true
	}

	return len(core) >= minLengthForVariety && len(distinct) <= maxDistinctForFiller
}

// isJamo reports whether r is a compatibility or conjoining Hangul jamo,
// i.e. a consonant or vowel that is not part of a complete syllable.
func isJamo(r rune) bool {
	return (r >= 0x3131 && r <= 0x3163) || (r >= 0x1100 && r <= 0x11FF)
}
