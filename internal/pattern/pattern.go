// Package pattern evaluates optic PatternPart sequences (raw tokens, `*`
// wildcard, `|` anchors) against token streams for a named text field
// (spec §4.3).
package pattern

import (
	"strings"

	"github.com/searchcore/engine/pkg/model"
)

// Match reports whether pattern matches some sliding alignment against
// tokens. Raw parts must equal the token at that position (case-folded);
// Wildcard consumes zero or more tokens; a leading/trailing Anchor pins the
// pattern to the first/last token respectively. Adjacent Raw parts must
// match adjacent tokens — there is no implicit gap between them.
//
// The walk is a two-pointer greedy match (the same shape as the classic
// wildcard-matching algorithm), not a backtracking regex engine: an
// unanchored pattern is matched by implicitly bracketing it with a leading
// and/or trailing Wildcard, then running one linear two-pointer pass.
func Match(pat []model.PatternPart, tokens []string) bool {
	anchorStart, anchorEnd, core := splitAnchors(pat)

	if len(core) == 0 {
		if anchorStart && anchorEnd {
			return len(tokens) == 0
		}
		return true
	}

	if !anchorStart && core[0].Kind != model.PatternWildcard {
		core = append([]model.PatternPart{model.Wildcard()}, core...)
	}
	if !anchorEnd && core[len(core)-1].Kind != model.PatternWildcard {
		core = append(core, model.Wildcard())
	}

	return matchCore(core, tokens)
}

// splitAnchors peels a leading/trailing Anchor off pat and returns the
// remaining Raw/Wildcard core. An Anchor anywhere else is a no-op: the
// optic compiler rejects those at parse time (spec §6: "`|` between tokens
// not permitted").
func splitAnchors(pat []model.PatternPart) (anchorStart, anchorEnd bool, core []model.PatternPart) {
	core = make([]model.PatternPart, 0, len(pat))
	for i, p := range pat {
		if p.Kind == model.PatternAnchor {
			switch i {
			case 0:
				anchorStart = true
			case len(pat) - 1:
				anchorEnd = true
			}
			continue
		}
		core = append(core, p)
	}
	return anchorStart, anchorEnd, core
}

// matchCore runs the two-pointer walk over a pattern that has already had
// its anchors resolved into explicit leading/trailing wildcards where
// needed.
func matchCore(parts []model.PatternPart, tokens []string) bool {
	ti, pi := 0, 0
	starAt, starTi := -1, -1

	for ti < len(tokens) {
		switch {
		case pi < len(parts) && parts[pi].Kind == model.PatternRaw && tokenEquals(tokens[ti], parts[pi].Token):
			ti++
			pi++
		case pi < len(parts) && parts[pi].Kind == model.PatternWildcard:
			starAt = pi
			starTi = ti
			pi++
		case starAt != -1:
			pi = starAt + 1
			starTi++
			ti = starTi
		default:
			return false
		}
	}

	for pi < len(parts) && parts[pi].Kind == model.PatternWildcard {
		pi++
	}
	return pi == len(parts)
}

func tokenEquals(token, raw string) bool {
	return strings.EqualFold(token, raw)
}
