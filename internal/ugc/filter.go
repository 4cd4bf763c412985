// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/hanqa/pkg/slice"
)

// urlCandidatePattern finds URLs in plain text, including the slash-less and
// backslashed spellings browsers still open.
var urlCandidatePattern = regexp.MustCompile(`(?i)\bhttps?:[/\\]*[^\s<>"'/\\][^\s<>"']*`)

// trailingPunctuation is trimmed from URL candidates found in prose.
const trailingPunctuation = ".,;:!?)]}'\"»”’"

// Filter detects profanity and spam signals in plain text.
//
// A Filter is read-only after construction and safe for concurrent use.
type Filter struct {
	policy *Policy
	// ownHosts are trusted in addition to the policy's trusted_hosts.
	ownHosts []string
}

/*
NewFilter builds a content filter.

Parameters:
  - policy: *Policy (compiled moderation policy)
  - ownHosts: ...string (hosts of the site and its storage, trusted with their subdomains)

Returns:
  - *Filter: The ready filter
*/
func NewFilter(policy *Policy, ownHosts ...string) *Filter {
	return &Filter{policy: policy, ownHosts: slice.Compact(slice.Map(ownHosts, normalizeHost))}
}

/*
HasProhibitedContent reports whether text contains profanity or spam.

URLs on trusted hosts are blanked before the spam rules run, so a link to the
site's own storage does not count as a spam URL. Profanity rules see the
full text, trusted URLs included.
*/
func (f *Filter) HasProhibitedContent(text string) bool {
	_, blocked := f.Match(text)
	return blocked
}

// Match is [Filter.HasProhibitedContent] that also returns the name of the
// first matching rule, for logs.
func (f *Filter) Match(text string) (string, bool) {
	text = norm.NFC.String(text)

	for _, rule := range f.policy.profanity {
		if rule.re.MatchString(text) {
			return rule.name, true
		}
	}

	stripped := f.blankTrustedURLs(text)
	for _, rule := range f.policy.spam {
		if rule.re.MatchString(stripped) {
			return rule.name, true
		}
	}

	return "", false
}

func (f *Filter) blankTrustedURLs(text string) string {
	return urlCandidatePattern.ReplaceAllStringFunc(text, func(candidate string) string {
		trimmed := strings.TrimRight(candidate, trailingPunctuation)
		parsed, err := url.Parse(normalizeLinkCandidate(trimmed))
		if err != nil || !f.isTrustedHost(parsed.Hostname()) {
			return candidate
		}
		// Keep whatever punctuation followed the URL.
		return " " + candidate[len(trimmed):]
	})
}

func (f *Filter) isTrustedHost(host string) bool {
	host = normalizeHost(host)
	if host == "" {
		return false
	}

	for _, own := range f.ownHosts {
		if host == own || strings.HasSuffix(host, "."+own) {
			return true
		}
	}
	for _, rule := range f.policy.trustedHosts {
		if rule.re.MatchString(host) {
			return true
		}
	}
	return false
}
