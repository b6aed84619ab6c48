package optic

import (
	"github.com/searchcore/engine/internal/pattern"
	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/pkg/model"
)

// FieldTokens resolves a candidate document's token stream for a field, so
// Should contributions can be re-evaluated directly against an
// already-fetched candidate without a second posting-list lookup (spec
// §4.5: Should contributions never gate, so this only ever runs against
// docs the boolean assembly already accepted).
type FieldTokens func(model.TextField) []string

// EvaluateBoosts walks every Boost/Downrank contribution against a
// candidate document and sums its signed boosts (spec §4.5: "collect
// per-doc signed boosts from all matching Should rules").
func EvaluateBoosts(contributions []Contribution, tokens FieldTokens) (up, down float64) {
	for _, c := range contributions {
		if !matchesSubQuery(c.Clauses, tokens) {
			continue
		}
		if c.Boost >= 0 {
			up += c.Boost
		} else {
			down += -c.Boost
		}
	}
	return up, down
}

// matchesSubQuery reports whether a candidate matches a contribution's
// SubQuery: outer OR of inner AND clauses, each leaf checked via
// internal/pattern (or a plain term-presence test for LeafTermUnion).
func matchesSubQuery(clauses [][]query.Leaf, tokens FieldTokens) bool {
	for _, clause := range clauses {
		if matchesClause(clause, tokens) {
			return true
		}
	}
	return false
}

func matchesClause(clause []query.Leaf, tokens FieldTokens) bool {
	for _, leaf := range clause {
		if !matchesLeaf(leaf, tokens) {
			return false
		}
	}
	return true
}

func matchesLeaf(leaf query.Leaf, tokens FieldTokens) bool {
	switch leaf.Kind {
	case query.LeafPattern:
		for _, field := range leaf.Fields {
			if pattern.Match(leaf.Pattern, tokens(field)) {
				return true
			}
		}
		return false
	case query.LeafTermUnion:
		for _, field := range leaf.Fields {
			for _, tok := range tokens(field) {
				if tok == leaf.Term {
					return true
				}
			}
		}
		return false
	case query.LeafPhrase:
		for _, field := range leaf.Fields {
			if containsAdjacent(tokens(field), leaf.Tokens) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func containsAdjacent(haystack, needle []string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, t := range needle {
			if haystack[i+j] != t {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Boost computes the multiplicative factor B from signed up/down sums
// (spec §4.5): B = up>=down ? (up-down+1) : 1/(1+(down-up)).
func Boost(up, down float64) float64 {
	if up >= down {
		return up - down + 1.0
	}
	return 1.0 / (1.0 + (down - up))
}
