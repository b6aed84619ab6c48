// Package tokenize turns raw document and query text into token streams for
// the pattern matcher, posting builder, and query planner (spec §4.1, §4.3).
package tokenize

import "strings"

// MinTokenLength is the shortest non-stopword token that counts as
// meaningful when Tokenize decides whether to filter stop words; shorter
// tokens are not dropped.
const MinTokenLength = 2

// stopWords mirrors the teacher's filtering table: common function words
// that rarely help ranking, but some ("all", "show", "get", "list") are
// kept even when otherwise classified as stop words because they carry
// query intent.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "been": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "must": true, "can": true, "what": true,
	"which": true, "who": true, "when": true, "where": true, "how": true,
	"why": true, "that": true, "this": true, "these": true, "those": true,
	"i": true, "me": true, "my": true, "mine": true, "we": true,
	"us": true, "our": true, "ours": true, "you": true, "your": true,
	"yours": true, "he": true, "him": true, "his": true, "she": true,
	"her": true, "hers": true, "it": true, "its": true, "they": true,
	"them": true, "their": true, "theirs": true,
}

// alwaysKept overrides stopWords for tokens that still carry query intent.
var alwaysKept = map[string]bool{
	"all": true, "show": true, "get": true, "list": true, "not": true,
}

func isSeparator(r rune) bool {
	switch r {
	case '.', '-', '_', ' ', '\t', '\n', '\r', '/', ':', '?', '&', '=', '#':
		return true
	default:
		return false
	}
}

// Tokenize lowercases s and splits it into word tokens, filtering common
// stop words once there are at least two meaningful words remaining —
// exactly the teacher's "only filter when there's enough signal left" rule,
// generalized away from its telemetry-specific keyword list.
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	tokens := strings.FieldsFunc(s, isSeparator)

	meaningful := 0
	for _, tok := range tokens {
		if !stopWords[tok] && len(tok) >= MinTokenLength {
			meaningful++
		}
	}

	if meaningful < 2 {
		return tokens
	}

	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !stopWords[tok] || alwaysKept[tok] {
			filtered = append(filtered, tok)
		}
	}
	return filtered
}

// Fields splits s on whitespace only, preserving operator-prefixed tokens
// like "site:" or quoted phrases for the query parser to inspect before any
// stopword filtering happens.
func Fields(s string) []string {
	return strings.Fields(s)
}
