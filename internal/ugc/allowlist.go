// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	"net"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// governmentDomains are the official immigration, labour and civil-service
// sites foreigners in Korea are routinely pointed to.
var governmentDomains = []string{
	"hikorea.go.kr",
	"immigration.go.kr",
	"moj.go.kr",
	"moel.go.kr",
	"eps.go.kr",
	"work24.go.kr",
	"nhis.or.kr",
	"nts.go.kr",
	"hometax.go.kr",
	"1345.go.kr",
	"mofa.go.kr",
	"0404.go.kr",
	"korea.net",
	"visa.go.kr",
	"kosaf.go.kr",
	"studyinkorea.go.kr",
}

// governmentPortals are allowed as written, without their subdomains.
// gov.kr is the Government24 portal.
var governmentPortals = []string{
	"gov.kr",
}

// schemeSlashes matches an http(s) scheme and the run of slashes after it.
var schemeSlashes = regexp.MustCompile(`(?i)^(https?):/*`)

// AllowlistConfig names the deployment hosts that links may point to on top
// of the built-in government domains.
type AllowlistConfig struct {
	SiteURL      string
	AppURL       string
	StorageURL   string
	ExtraDomains []string
}

// LinkVerdict is the result of [Allowlist.ValidateExternalLinks]. Domain is
// the first rejected host when OK is false.
type LinkVerdict struct {
	OK     bool   `json:"ok"`
	Domain string `json:"domain,omitempty"`
}

// Allowlist decides which hosts user content may link to.
//
// A host is allowed when it, or any parent domain of it, is in the set, or
// when it equals one of the exact portal hosts. Hosts are compared
// lowercased with a leading "www." stripped.
type Allowlist struct {
	hosts map[string]struct{}
	exact map[string]struct{}
	base  *url.URL
}

/*
NewAllowlist builds the allowlist from the government domains plus the
deployment hosts in cfg.

Entries may be bare hosts or full URLs. Unparseable entries are skipped.
Relative links in content resolve against cfg.SiteURL.
*/
func NewAllowlist(cfg AllowlistConfig) *Allowlist {
	list := &Allowlist{
		hosts: make(map[string]struct{}, len(governmentDomains)+8),
		exact: make(map[string]struct{}, len(governmentPortals)),
	}
	for _, portal := range governmentPortals {
		list.exact[normalizeHost(portal)] = struct{}{}
	}

	entries := append([]string{cfg.SiteURL, cfg.AppURL, cfg.StorageURL}, governmentDomains...)
	entries = append(entries, cfg.ExtraDomains...)
	for _, entry := range entries {
		if host := normalizeHost(entry); host != "" {
			list.hosts[host] = struct{}{}
		}
	}

	base, err := url.Parse(cfg.SiteURL)
	if err != nil || base.Host == "" {
		base = &url.URL{Scheme: "https", Host: "hanqa.kr", Path: "/"}
	}
	list.base = base

	return list
}

// Allows reports whether host or one of its parent domains is allowed.
func (a *Allowlist) Allows(host string) bool {
	host = normalizeHost(host)
	if _, ok := a.exact[host]; ok {
		return true
	}
	for host != "" {
		if _, ok := a.hosts[host]; ok {
			return true
		}
		_, parent, found := strings.Cut(host, ".")
		if !found {
			return false
		}
		host = parent
	}
	return false
}

// Hosts returns the allowed hosts in sorted order.
func (a *Allowlist) Hosts() []string {
	hosts := make([]string, 0, len(a.hosts)+len(a.exact))
	for host := range a.hosts {
		hosts = append(hosts, host)
	}
	for host := range a.exact {
		if _, dup := a.hosts[host]; !dup {
			hosts = append(hosts, host)
		}
	}
	sort.Strings(hosts)
	return hosts
}

/*
ValidateExternalLinks checks every link in markup against the allowlist.

Candidates are href and src attribute values plus bare http(s) URLs in the
text. Each candidate is first read the way a browser reads it (see
[normalizeLinkCandidate]), so "https:evil.com" and "https:\evil.com" are
checked as https://evil.com. Fragments, query-only links, root-relative
paths, mailto: and tel: are skipped. Everything else resolves against the
site URL, so a protocol-relative "//host" link is checked like an absolute
one. An http(s) link that still has no host is rejected.

Returns:
  - LinkVerdict: OK, or the first disallowed host in document order
*/
func (a *Allowlist) ValidateExternalLinks(markup string) LinkVerdict {
	for _, candidate := range extractLinkCandidates(markup) {
		link := normalizeLinkCandidate(candidate)
		if skipLink(link) {
			continue
		}

		ref, err := url.Parse(link)
		if err != nil {
			continue
		}

		resolved := a.base.ResolveReference(ref)
		host := resolved.Hostname()
		if host == "" {
			if isWebScheme(resolved.Scheme) {
				return LinkVerdict{Domain: link}
			}
			continue
		}

		if !a.Allows(host) {
			return LinkVerdict{Domain: normalizeHost(host)}
		}
	}

	return LinkVerdict{OK: true}
}

// extractLinkCandidates returns link values in document order without
// duplicates.
func extractLinkCandidates(markup string) []string {
	seen := make(map[string]struct{})
	var candidates []string

	add := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if _, dup := seen[value]; dup {
			return
		}
		seen[value] = struct{}{}
		candidates = append(candidates, value)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			for _, bare := range urlCandidatePattern.FindAllString(markup, -1) {
				add(strings.TrimRight(bare, trailingPunctuation))
			}
			return candidates

		case html.StartTagToken, html.SelfClosingTagToken:
			for _, attr := range tokenizer.Token().Attr {
				if attr.Key == "href" || attr.Key == "src" {
					add(attr.Val)
				}
			}
		}
	}
}

/*
normalizeLinkCandidate rewrites link the way a browser parses it.

Surrounding whitespace and control characters are trimmed and embedded tabs
and newlines dropped. Backslashes count as slashes, and any run of slashes
after an http(s) scheme introduces the host, so "https:/evil.com",
"https:///evil.com" and "https:evil.com" all become "https://evil.com".
*/
func normalizeLinkCandidate(link string) string {
	link = strings.TrimFunc(link, func(r rune) bool { return r <= ' ' })
	link = linkNoise.Replace(link)
	return schemeSlashes.ReplaceAllString(link, "${1}://")
}

var linkNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "", `\`, "/")

func isWebScheme(scheme string) bool {
	scheme = strings.ToLower(scheme)
	return scheme == "http" || scheme == "https"
}

func skipLink(link string) bool {
	lower := strings.ToLower(link)
	switch {
	case strings.HasPrefix(lower, "#"), strings.HasPrefix(lower, "?"):
		return true
	case strings.HasPrefix(lower, "/") && !strings.HasPrefix(lower, "//"):
		return true
	case strings.HasPrefix(lower, "mailto:"), strings.HasPrefix(lower, "tel:"):
		return true
	}
	return false
}

// normalizeHost lowercases a host or URL entry and strips the scheme, port,
// path, trailing dot and a leading "www.".
func normalizeHost(entry string) string {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if entry == "" {
		return ""
	}

	if strings.Contains(entry, "://") {
		parsed, err := url.Parse(entry)
		if err != nil {
			return ""
		}
		entry = parsed.Host
	}

	if i := strings.IndexAny(entry, "/?#"); i >= 0 {
		entry = entry[:i]
	}
	if host, _, err := net.SplitHostPort(entry); err == nil {
		entry = host
	}

	entry = strings.TrimSuffix(entry, ".")
	return strings.TrimPrefix(entry, "www.")
}
