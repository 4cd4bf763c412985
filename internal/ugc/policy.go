// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ugc

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed default_policy.yaml
var defaultPolicy []byte

// # Policy Document

// Rule is a single named pattern of the policy document.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Flags   string `yaml:"flags"`
}

// PolicyDocument is the YAML shape of a moderation policy.
type PolicyDocument struct {
	Version      string `yaml:"version"`
	TrustedHosts []Rule `yaml:"trusted_hosts"`
	Profanity    []Rule `yaml:"profanity"`
	Spam         []Rule `yaml:"spam"`
}

// compiledRule is a [Rule] ready for matching.
type compiledRule struct {
	name string
	re   *regexp.Regexp
}

// Policy is a compiled [PolicyDocument].
type Policy struct {
	Version      string
	trustedHosts []compiledRule
	profanity    []compiledRule
	spam         []compiledRule
}

/*
LoadPolicy reads and compiles the policy at path.

An empty path yields the embedded default policy, so the service always
boots with a working filter.

Returns:
  - *Policy: The compiled policy
  - error: Read, YAML or pattern errors, naming the offending rule
*/
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read moderation policy: %w", err)
	}
	return ParsePolicy(data)
}

// DefaultPolicy compiles the embedded policy.
func DefaultPolicy() (*Policy, error) {
	return ParsePolicy(defaultPolicy)
}

// ParsePolicy compiles a YAML policy document.
func ParsePolicy(data []byte) (*Policy, error) {
	var doc PolicyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode moderation policy: %w", err)
	}

	policy := &Policy{Version: doc.Version}

	var err error
	if policy.trustedHosts, err = compileRules("trusted_hosts", doc.TrustedHosts); err != nil {
		return nil, err
	}
	if policy.profanity, err = compileRules("profanity", doc.Profanity); err != nil {
		return nil, err
	}
	if policy.spam, err = compileRules("spam", doc.Spam); err != nil {
		return nil, err
	}

	return policy, nil
}

// RuleCount returns the number of compiled profanity and spam rules.
func (p *Policy) RuleCount() int {
	return len(p.profanity) + len(p.spam)
}

func compileRules(section string, rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for i, rule := range rules {
		name := rule.Name
		if name == "" {
			name = fmt.Sprintf("%s[%d]", section, i)
		}

		if rule.Pattern == "" {
			return nil, fmt.Errorf("moderation policy %s: empty pattern", name)
		}

		expr := rule.Pattern
		switch rule.Flags {
		case "":
		case "i":
			expr = "(?i)" + expr
		default:
			return nil, fmt.Errorf("moderation policy %s: unsupported flags %q", name, rule.Flags)
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("moderation policy %s: %w", name, err)
		}
		compiled = append(compiled, compiledRule{name: name, re: re})
	}

	return compiled, nil
}
