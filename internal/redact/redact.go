// Package redact applies ordered, verbatim find/replace rules to document
// content before it is published.
package redact

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultWord replaces every entry of a plain word list.
const DefaultWord = "**"

// Rule replaces every occurrence of Match with Replace.
type Rule struct {
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
}

// Replacer holds the resolved rules in application order.
type Replacer struct {
	rules []Rule
}

// New resolves a rule set. Each of words becomes a rule replacing it with
// word (DefaultWord when empty); pairs follow in their given order. Keys that
// are base64 encodings of printable text are decoded first. Empty keys are
// dropped.
func New(word string, words []string, pairs []Rule) *Replacer {
	if word == "" {
		word = DefaultWord
	}
	r := &Replacer{rules: make([]Rule, 0, len(words)+len(pairs))}
	for _, w := range words {
		r.add(Rule{Match: w, Replace: word})
	}
	for _, p := range pairs {
		r.add(p)
	}
	return r
}

func (r *Replacer) add(rule Rule) {
	rule.Match = DecodeKey(rule.Match)
	if rule.Match == "" {
		return
	}
	r.rules = append(r.rules, rule)
}

// Len reports the number of effective rules.
func (r *Replacer) Len() int { return len(r.rules) }

// Rules returns a copy of the effective rules.
func (r *Replacer) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Apply runs every rule over content in order. Later rules see the output of
// earlier ones.
func (r *Replacer) Apply(content string) string {
	for _, rule := range r.rules {
		content = strings.ReplaceAll(content, rule.Match, rule.Replace)
	}
	return content
}

// DecodeKey returns the decoded form of key when key is canonical standard
// base64 of printable UTF-8 text, and key unchanged otherwise.
func DecodeKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return key
	}
	raw, err := base64.StdEncoding.Strict().DecodeString(key)
	if err != nil || len(raw) == 0 {
		return key
	}
	if base64.StdEncoding.EncodeToString(raw) != key {
		return key
	}
	if !printable(raw) {
		return key
	}
	return string(raw)
}

func printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
