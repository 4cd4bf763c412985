// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer reduces editor markup to the tags the rich-text editor emits.
//
// Links keep href, target and rel. Images keep src, alt, title, width,
// height and data-thumbnail. Only absolute http(s) URLs with a host survive
// in href and src. Script-like elements are dropped together with their content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the UGC sanitizer.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr",
		"strong", "b", "em", "i", "u", "s", "strike", "sub", "sup", "mark",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "code",
		"ul", "ol", "li",
	)

	p.AllowAttrs("href", "rel").OnElements("a")
	p.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")

	p.AllowAttrs("src", "alt", "title", "data-thumbnail").OnElements("img")
	p.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("img")

	p.AllowURLSchemeWithCustomPolicy("http", hasHost)
	p.AllowURLSchemeWithCustomPolicy("https", hasHost)
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(false)

	p.SkipElementsContent(
		"script", "style", "iframe", "object", "embed", "form",
		"svg", "math", "noscript", "template", "textarea", "select",
	)

	return &Sanitizer{policy: p}
}

// hasHost rejects http(s) URLs without an authority, such as "https:evil.com",
// which browsers would still open as a remote host.
func hasHost(u *url.URL) bool {
	return u.Host != ""
}

// Sanitize returns the safe subset of markup. Blank input yields "".
func (s *Sanitizer) Sanitize(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	return strings.TrimSpace(s.policy.Sanitize(markup))
}
