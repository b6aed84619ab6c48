// Package query parses free-text search queries into a plan tree and lowers
// that plan into a boolean query tree over internal/postings leaves (spec
// §4.1).
package query

import (
	"strings"

	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/internal/errs"
	"github.com/searchcore/engine/internal/tokenize"
)

// PlanKind distinguishes the plan-tree node shapes of spec §4.1.
type PlanKind int

const (
	PlanSimple PlanKind = iota
	PlanPhrase
	PlanNot
	PlanSite
	PlanDomain
	PlanLinkTo
	PlanInTitle
	PlanInUrl
	PlanExactUrl
)

// PlanNode is one node of the pre-lowering plan tree. Fields are populated
// according to Kind; unused fields are zero.
type PlanNode struct {
	Kind  PlanKind
	Term  string   // PlanSimple, PlanInTitle, PlanInUrl
	Terms []string // PlanPhrase
	Raw   string   // PlanSite, PlanDomain, PlanLinkTo, PlanExactUrl: the un-tokenized operator value
	Inner *PlanNode // PlanNot wraps any other kind
}

// ParsedQuery is the result of parsing free text: the plan tree plus the
// bang markers stripped out for external handling.
type ParsedQuery struct {
	Nodes       []PlanNode
	Bangs       []string
	NgramLookup []string // Simple terms considered for n-gram scoring, capped at MaxNgramLookupTerms
}

// operatorRule is one entry of the declarative, order-walked prefix table
// that recognizes a single token's operator (style precedent: the
// teacher's FieldMapping table walked by keyword).
type operatorRule struct {
	prefixes []string
	build    func(value string) PlanNode
}

var operatorRules = []operatorRule{
	{
		prefixes: []string{"site:"},
		build:    func(v string) PlanNode { return PlanNode{Kind: PlanSite, Raw: v} },
	},
	{
		prefixes: []string{"domain:"},
		build:    func(v string) PlanNode { return PlanNode{Kind: PlanDomain, Raw: v} },
	},
	{
		// linkto/linksto/linkstoo are historically lenient synonyms
		// (Design Notes §9): accept all three as the same operator.
		prefixes: []string{"linkto:", "linksto:", "linkstoo:"},
		build:    func(v string) PlanNode { return PlanNode{Kind: PlanLinkTo, Raw: v} },
	},
	{
		prefixes: []string{"intitle:"},
		build:    func(v string) PlanNode { return PlanNode{Kind: PlanInTitle, Term: v} },
	},
	{
		prefixes: []string{"inurl:"},
		build:    func(v string) PlanNode { return PlanNode{Kind: PlanInUrl, Term: v} },
	},
	{
		prefixes: []string{"exacturl:"},
		build:    func(v string) PlanNode { return PlanNode{Kind: PlanExactUrl, Raw: v} },
	},
}

// matchOperator returns the PlanNode an operator-prefixed token lowers to,
// and whether any rule matched.
func matchOperator(token string) (PlanNode, bool) {
	lower := strings.ToLower(token)
	for _, rule := range operatorRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(lower, prefix) {
				value := token[len(prefix):]
				return rule.build(value), true
			}
		}
	}
	return PlanNode{}, false
}

// Parse tokenizes raw query text with the lenient grammar of spec §4.1:
// whitespace-separated terms, "phrase" spans, leading "-" negation,
// operator prefixes on a single token, and trailing "!" bang markers.
func Parse(text string) (ParsedQuery, error) {
	tokens := splitRespectingQuotes(text)

	var nodes []PlanNode
	var bangs []string
	seenSimple := make(map[string]bool)

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.HasSuffix(tok, "!") && tok != "!" {
			bangs = append(bangs, strings.TrimSuffix(tok, "!"))
			continue
		}
		if tok == "!" {
			continue
		}

		negated := false
		if strings.HasPrefix(tok, "-") && len(tok) > 1 {
			negated = true
			tok = tok[1:]
		}

		var node PlanNode
		switch {
		case strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2:
			phrase := strings.Trim(tok, `"`)
			node = PlanNode{Kind: PlanPhrase, Terms: tokenize.Tokenize(phrase)}
		default:
			if opNode, ok := matchOperator(tok); ok {
				node = opNode
			} else {
				term := strings.ToLower(tok)
				// Deduplicate identical simple terms before lowering
				// (spec §4.1: "the the the ..." collapses); phrase
				// terms are exempt.
				if seenSimple[term] {
					continue
				}
				seenSimple[term] = true
				node = PlanNode{Kind: PlanSimple, Term: term}
			}
		}

		if negated {
			inner := node
			node = PlanNode{Kind: PlanNot, Inner: &inner}
		}
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		return ParsedQuery{}, errs.ErrEmptyQuery
	}

	ngram := ngramLookupTerms(nodes)
	return ParsedQuery{Nodes: nodes, Bangs: bangs, NgramLookup: ngram}, nil
}

// ngramLookupTerms collects Simple-term values in order, capped at
// constants.MaxNgramLookupTerms, to bound the cost of n-gram signal
// lookups (spec §4.1: "truncate at <=16 ngram-lookup terms").
func ngramLookupTerms(nodes []PlanNode) []string {
	var terms []string
	for _, n := range nodes {
		if n.Kind == PlanSimple {
			terms = append(terms, n.Term)
		}
		if len(terms) >= constants.MaxNgramLookupTerms {
			break
		}
	}
	return terms
}

// splitRespectingQuotes splits on whitespace but keeps a "quoted phrase"
// together as one token.
func splitRespectingQuotes(text string) []string {
	var out []string
	var b strings.Builder
	inQuotes := false

	flush := func() {
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}
