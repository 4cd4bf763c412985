// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/ugc"
)

func newFilter(t *testing.T, ownHosts ...string) *ugc.Filter {
	t.Helper()
	policy, err := ugc.DefaultPolicy()
	require.NoError(t, err)
	return ugc.NewFilter(policy, ownHosts...)
}

/*
TestFilter_HasProhibitedContent runs the default policy against common inputs.
*/
func TestFilter_HasProhibitedContent(t *testing.T) {
	filter := newFilter(t, "https://cdn.example.org")

	tests := []struct {
		name    string
		text    string
		blocked bool
	}{
		{"email", "contact me at test@example.com", true},
		{"phone", "call 010-1234-5678 anytime", true},
		{"long_digits", "my account 1234567890", true},
		{"foreign_url", "see https://random-broker.com/offer", true},
		{"slashless_url", "see https:random-broker.com/offer", true},
		{"single_slash_url", "see https:/random-broker.com/offer", true},
		{"backslash_url", `see https:\random-broker.com`, true},
		{"slashless_trusted_storage_url", "photo https:/abc.supabase.co/storage/x.png thanks", false},
		{"scheme_word_only", "the https: prefix matters", false},
		{"trusted_storage_url", "Here is the photo https://abc.supabase.co/storage/v1/object/public/x.png thanks", false},
		{"own_host_url", "image at https://img.cdn.example.org/a.png.", false},
		{"profanity_in_trusted_url", "look https://abc.supabase.co/fuck.png", true},
		{"english_profanity", "what the fuck is this", true},
		{"korean_profanity", "씨발 진짜", true},
		{"chinese_profanity", "你是傻逼", true},
		{"vietnamese_profanity", "đụ má nó", true},
		{"korean_broker", "비자 대행 해드립니다", true},
		{"vietnamese_broker", "Nhận làm visa giá rẻ", true},
		{"starting_point_is_not_profanity", "시발점이 어디인가요", false},
		{"place_name", "I live near Scunthorpe", false},
		{"date", "Deadline 2026-10-15 for renewal", false},
		{"plain_question", "How do I extend my D-2 visa?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, filter.HasProhibitedContent(tt.text))
		})
	}
}

/*
TestFilter_Match verifies that the matching rule is named.
*/
func TestFilter_Match(t *testing.T) {
	rule, blocked := newFilter(t).Match("write to test@example.com")
	assert.True(t, blocked)
	assert.Equal(t, "email", rule)

	_, blocked = newFilter(t).Match("nothing to see")
	assert.False(t, blocked)
}

/*
TestParsePolicy_Errors verifies that broken documents fail loudly.
*/
func TestParsePolicy_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad_yaml", "spam: [unclosed"},
		{"empty_pattern", "spam:\n  - name: x\n    pattern: ''\n"},
		{"unsupported_flag", "spam:\n  - pattern: 'a'\n    flags: g\n"},
		{"lookahead", "spam:\n  - pattern: 'a(?!b)'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ugc.ParsePolicy([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

/*
TestLoadPolicy verifies the embedded default and file loading.
*/
func TestLoadPolicy(t *testing.T) {
	def, err := ugc.LoadPolicy("")
	require.NoError(t, err)
	assert.NotEmpty(t, def.Version)
	assert.Greater(t, def.RuleCount(), 20)

	path := filepath.Join(t.TempDir(), "policy.yaml")
	doc := "version: test\nspam:\n  - name: banana\n    pattern: 'banana'\n    flags: i\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	custom, err := ugc.LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, "test", custom.Version)
	assert.True(t, ugc.NewFilter(custom).HasProhibitedContent("BANANA offer"))
	assert.False(t, ugc.NewFilter(custom).HasProhibitedContent("test@example.com"))

	_, err = ugc.LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
