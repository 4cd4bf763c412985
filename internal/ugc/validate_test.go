// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/hanqa/internal/ugc"
)

/*
TestToPlainText verifies tag stripping, entity decoding and whitespace collapse.
*/
func TestToPlainText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"tags_become_spaces", "<p>hello</p><p>world</p>", "hello world"},
		{"entities", "a&nbsp;&lt;b&gt;&amp;c", "a <b>&c"},
		{"double_escaped_stays_escaped", "&amp;lt;", "&lt;"},
		{"whitespace", "  one \n\t two  ", "one two"},
		{"empty_paragraph", "<p> </p>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ugc.ToPlainText(tt.markup))
		})
	}
}

/*
TestValidate verifies the verdict order and the reported bounds.
*/
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		min    int
		max    int
		code   ugc.VerdictCode
		length int
	}{
		{"empty", "", 10, 100, ugc.CodeRequired, 0},
		{"markup_only", "<p>  </p><br>", 10, 100, ugc.CodeRequired, 0},
		{"too_short", "abcdefghi", 10, 100, ugc.CodeTooShort, 9},
		{"too_long_before_quality", "aaaaaa1111111111", 10, 15, ugc.CodeTooLong, 16},
		{"repeated_rune", "aaaaaaaaaaaa", 10, 100, ugc.CodeLowQuality, 12},
		{"all_digits", "1234567890123", 10, 100, ugc.CodeLowQuality, 13},
		{"jamo_only", "ㅋㅋㅋㅎㅎㅋㅋㅎㅎㅋ", 10, 100, ugc.CodeLowQuality, 10},
		{"two_runes", "abababababab", 10, 100, ugc.CodeLowQuality, 12},
		{"exact_min", "abcdefghij", 10, 100, "", 10},
		{"exact_max", "abcdefghij", 1, 10, "", 10},
		{"korean_question", "외국인 등록증 갱신은 어디서 하나요?", 10, 100, "", 20},
		{"markup_counts_visible_text", "<p>Xin chào các bạn &amp; mọi người</p>", 10, 100, "", 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := ugc.Validate(tt.text, tt.min, tt.max)

			assert.Equal(t, tt.code == "", verdict.OK)
			assert.Equal(t, tt.code, verdict.Code)
			assert.Equal(t, tt.length, verdict.Length)
			assert.Equal(t, tt.min, verdict.Min)
			assert.Equal(t, tt.max, verdict.Max)
		})
	}
}

/*
TestValidate_NormalizationInvariant verifies that NFD and NFC input count the same.
*/
func TestValidate_NormalizationInvariant(t *testing.T) {
	text := "Tôi cần gia hạn thị thực"

	nfc := ugc.Validate(norm.NFC.String(text), 10, 100)
	nfd := ugc.Validate(norm.NFD.String(text), 10, 100)

	assert.True(t, nfc.OK)
	assert.Equal(t, nfc, nfd)
}

/*
TestIsLowQualityText covers the heuristic directly.
*/
func TestIsLowQualityText(t *testing.T) {
	tests := []struct {
		name string
		text string
		low  bool
	}{
		{"punctuation_only", "!!! ??? ...", true},
		{"case_folded_repeat", "AaAaAaAaAaAa", true},
		{"case_folded_variety", "abABabABabAB", true},
		{"mixed_case_real_variety", "abABcdCDefEF", false},
		{"seven_repeats", "aaaaaaab visa", false},
		{"eight_repeats", "aaaaaaaab visa", true},
		{"short_two_runes", "abab", false},
		{"real_question", "How do I renew my visa?", false},
		{"hangul_syllables", "ㅋㅋ 진짜 감사합니다", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.low, ugc.IsLowQualityText(tt.text))
		})
	}
}

/*
TestLimits_For verifies the default bounds and unknown types.
*/
func TestLimits_For(t *testing.T) {
	limits := ugc.DefaultLimits()

	bounds, ok := limits.For(ugc.ContentComment)
	assert.True(t, ok)
	assert.Equal(t, ugc.Bounds{Min: 10, Max: 800}, bounds)

	_, ok = limits.For("chapter")
	assert.False(t, ok)

	_, err := limits.Validate("chapter", "whatever text")
	assert.Error(t, err)
}
