package query

import (
	"strings"

	"github.com/searchcore/engine/internal/tokenize"
	"github.com/searchcore/engine/pkg/model"
)

// parsePipeAnchors peels a leading/trailing "|" anchor marker off a raw
// operator value, as used by site/domain/linkto patterns (spec §4.3:
// "|example.com|" anchors both ends).
func parsePipeAnchors(raw string) (anchorStart, anchorEnd bool, body string) {
	if strings.HasPrefix(raw, "|") {
		anchorStart = true
		raw = raw[1:]
	}
	if strings.HasSuffix(raw, "|") {
		anchorEnd = true
		raw = raw[:len(raw)-1]
	}
	return anchorStart, anchorEnd, raw
}

func tokensToPattern(anchorStart, anchorEnd bool, tokens []string) []model.PatternPart {
	parts := make([]model.PatternPart, 0, len(tokens)+2)
	if anchorStart {
		parts = append(parts, model.Anchor())
	}
	for _, t := range tokens {
		parts = append(parts, model.Raw(t))
	}
	if anchorEnd {
		parts = append(parts, model.Anchor())
	}
	return parts
}

// BuildSitePattern builds a pattern for the UrlForSiteOperator field (spec
// §4.1): a bare TLD prefix (".com") is a suffix pattern with an implicit
// trailing anchor even without an explicit "|"; any path segment after "/"
// is carried along as trailing pattern tokens on the same field.
func BuildSitePattern(raw string) []model.PatternPart {
	anchorStart, anchorEnd, body := parsePipeAnchors(raw)
	if strings.HasPrefix(body, ".") && !anchorStart {
		anchorEnd = true
	}
	tokens := tokenize.TokenizePath(body)
	return tokensToPattern(anchorStart, anchorEnd, tokens)
}

// looksLikeSitePattern reports whether a domain: operator value is
// anchored at both ends (e.g. "|sub.example.com|"), which spec §4.1
// auto-routes to the site-operator field instead of Domain.
func looksLikeSitePattern(raw string) bool {
	return strings.HasPrefix(raw, "|") && strings.HasSuffix(raw, "|") && len(raw) > 1
}

// BuildDomainPattern builds a pattern for the Domain field, unless raw
// looks like a full site pattern, in which case it is rewritten onto the
// site-operator field (spec §4.1).
func BuildDomainPattern(raw string) (field model.TextField, pattern []model.PatternPart) {
	if looksLikeSitePattern(raw) {
		return model.FieldUrlForSiteOperator, BuildSitePattern(raw)
	}
	anchorStart, anchorEnd, body := parsePipeAnchors(raw)
	tokens := tokenize.TokenizePath(body)
	return model.FieldDomain, tokensToPattern(anchorStart, anchorEnd, tokens)
}

// Occur mirrors the boolean-assembly roles of spec §4.4/§4.1: Must
// contributes additively and gates, MustNot gates exclusion, Should
// contributes additively without gating.
type Occur int

const (
	OccurMust Occur = iota
	OccurMustNot
	OccurShould
)

// LeafKind distinguishes the leaf shapes a lowered QueryNode can carry
// (Design Notes §9: a tagged-variant sum type, not trait objects).
type LeafKind int

const (
	// LeafTermUnion unions postings for Term across Fields, each wrapped
	// in a constant-score ConstQuery (spec §4.1): boolean matching and
	// BM25 ranking are separate concerns, so the boolean leaf doesn't
	// leak its own score.
	LeafTermUnion LeafKind = iota
	// LeafPhrase is a position-aware intersection across Fields (spec
	// §4.1: the base body and title fields) requiring Tokens adjacent
	// and in order.
	LeafPhrase
	// LeafPattern drives a pattern match on a single Field (spec §4.3).
	LeafPattern
)

// Leaf is the data a lowered QueryNode needs to build its
// internal/postings iterator once a model.Reader is available.
type Leaf struct {
	Kind    LeafKind
	Fields  []model.TextField
	Term    string
	Tokens  []string
	Pattern []model.PatternPart
}

// QueryNode is one tagged entry of a lowered boolean query: an Occur role
// plus the leaf it wraps.
type QueryNode struct {
	Occur Occur
	Leaf  Leaf
}

// BooleanQuery is the flat lowered form of a plan tree: every node already
// carries its own Occur role, so execution never needs to recurse through
// nested group wrappers (Design Notes §9).
type BooleanQuery struct {
	Nodes []QueryNode
}

// baseTextFields is the set of text fields a bare term is matched against
// for boolean gating; n-gram/stemmed siblings are scored separately by the
// signal aggregator (spec §4.1: "posting list for the monogram text field
// with stemmed/n-gram siblings enabled at scoring time").
var baseTextFields = []model.TextField{model.FieldAllBody, model.FieldTitle, model.FieldCleanBody}

// phraseFields is where phrase queries require position-adjacent matches
// (spec §4.1: "position-aware intersection on the base body and title
// fields").
var phraseFields = []model.TextField{model.FieldCleanBody, model.FieldTitle}

// Lower converts a plan tree into a flat boolean query tree (spec §4.1).
func Lower(nodes []PlanNode) BooleanQuery {
	var bq BooleanQuery
	for _, n := range nodes {
		bq.Nodes = append(bq.Nodes, lowerNode(n, false)...)
	}
	return bq
}

func lowerNode(n PlanNode, negated bool) []QueryNode {
	if n.Kind == PlanNot {
		return lowerNode(*n.Inner, !negated)
	}

	occur := OccurMust
	if negated {
		occur = OccurMustNot
	}

	switch n.Kind {
	case PlanSimple:
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafTermUnion, Fields: baseTextFields, Term: n.Term},
		}}
	case PlanPhrase:
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafPhrase, Fields: phraseFields, Tokens: n.Terms},
		}}
	case PlanSite:
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafPattern, Fields: []model.TextField{model.FieldUrlForSiteOperator}, Pattern: BuildSitePattern(n.Raw)},
		}}
	case PlanDomain:
		field, pattern := BuildDomainPattern(n.Raw)
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafPattern, Fields: []model.TextField{field}, Pattern: pattern},
		}}
	case PlanLinkTo:
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafPattern, Fields: []model.TextField{model.FieldBacklinkText}, Pattern: BuildSitePattern(n.Raw)},
		}}
	case PlanInTitle:
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafTermUnion, Fields: []model.TextField{model.FieldTitle}, Term: n.Term},
		}}
	case PlanInUrl:
		return []QueryNode{{
			Occur: occur,
			Leaf:  Leaf{Kind: LeafTermUnion, Fields: []model.TextField{model.FieldUrl}, Term: n.Term},
		}}
	case PlanExactUrl:
		return []QueryNode{{
			Occur: occur,
			Leaf: Leaf{
				Kind:    LeafPattern,
				Fields:  []model.TextField{model.FieldUrl},
				Pattern: tokensToPattern(true, true, tokenize.TokenizePath(n.Raw)),
			},
		}}
	default:
		return nil
	}
}
