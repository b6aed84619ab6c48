package optic

import (
	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/internal/tokenize"
	"github.com/searchcore/engine/pkg/model"
)

// Contribution is one compiled rule's effect on the boolean/scoring
// assembly (spec §4.2): a SubQuery (outer OR of inner AND pattern leaves)
// plus the Occur role it plays and, for Should contributions, its signed
// boost.
type Contribution struct {
	Clauses [][]query.Leaf // outer OR of inner AND leaf groups
	Occur   query.Occur
	Boost   float64 // signed: positive for Boost, negative for Downrank
}

// Compiled is the full output of compiling an optic (spec §4.2).
type Compiled struct {
	Contributions      []Contribution
	DiscardNonMatching bool
}

// Compile expands host rankings into synthetic rules, then compiles every
// rule (synthetic and explicit) into its SubQuery/Occur/boost contribution
// (spec §4.2).
func Compile(optic model.Optic) Compiled {
	rules := append(expandHostRankings(optic.HostRankings), optic.Rules...)

	compiled := Compiled{DiscardNonMatching: optic.DiscardNonMatching}
	for _, rule := range rules {
		compiled.Contributions = append(compiled.Contributions, compileRule(rule))
	}
	return compiled
}

// expandHostRankings turns each liked/disliked/blocked host into a
// synthetic rule matching an exact site (spec §4.2: "each liked host -> a
// Boost on an exact-site match" etc).
func expandHostRankings(hr model.HostRankings) []model.Rule {
	var rules []model.Rule
	for _, host := range hr.Liked {
		rules = append(rules, exactSiteRule(host, model.Action{Kind: model.ActionBoost, Boost: 1.0}))
	}
	for _, host := range hr.Disliked {
		rules = append(rules, exactSiteRule(host, model.Action{Kind: model.ActionDownrank, Boost: 1.0}))
	}
	for _, host := range hr.Blocked {
		rules = append(rules, exactSiteRule(host, model.Action{Kind: model.ActionDiscard}))
	}
	return rules
}

func exactSiteRule(host string, action model.Action) model.Rule {
	pattern := tokensAnchoredBothEnds(tokenize.TokenizePath(host))
	return model.Rule{
		Matches: [][]model.Matching{{{Location: model.LocationSite, Pattern: pattern}}},
		Action:  action,
	}
}

func tokensAnchoredBothEnds(tokens []string) []model.PatternPart {
	parts := make([]model.PatternPart, 0, len(tokens)+2)
	parts = append(parts, model.Anchor())
	for _, t := range tokens {
		parts = append(parts, model.Raw(t))
	}
	parts = append(parts, model.Anchor())
	return parts
}

// compileRule builds one rule's SubQuery and maps its action to an Occur
// role (spec §4.2): Boost/Downrank -> Should with a numeric boost
// (Downrank negates); Discard -> MustNot.
func compileRule(rule model.Rule) Contribution {
	clauses := make([][]query.Leaf, 0, len(rule.Matches))
	for _, clause := range rule.Matches {
		leaves := make([]query.Leaf, 0, len(clause))
		for _, m := range clause {
			leaves = append(leaves, lowerMatching(m))
		}
		clauses = append(clauses, leaves)
	}

	switch rule.Action.Kind {
	case model.ActionDiscard:
		return Contribution{Clauses: clauses, Occur: query.OccurMustNot}
	case model.ActionDownrank:
		return Contribution{Clauses: clauses, Occur: query.OccurShould, Boost: -rule.Action.Boost}
	default: // ActionBoost
		return Contribution{Clauses: clauses, Occur: query.OccurShould, Boost: rule.Action.Boost}
	}
}

// lowerMatching maps a Matching's location to its backing field(s) and
// pattern (spec §4.2).
func lowerMatching(m model.Matching) query.Leaf {
	switch m.Location {
	case model.LocationSite:
		return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldUrlForSiteOperator}, Pattern: m.Pattern}
	case model.LocationUrl:
		return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldUrl}, Pattern: m.Pattern}
	case model.LocationDomain:
		return lowerDomainMatching(m)
	case model.LocationTitle:
		return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldTitle}, Pattern: m.Pattern}
	case model.LocationDescription:
		return query.Leaf{
			Kind:    query.LeafPattern,
			Fields:  []model.TextField{model.FieldDescription, model.FieldDmozDescription},
			Pattern: m.Pattern,
		}
	case model.LocationContent:
		return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldCleanBody}, Pattern: m.Pattern}
	case model.LocationMicroformatTag:
		return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldMicroformatTags}, Pattern: m.Pattern}
	case model.LocationSchema:
		return query.Leaf{
			Kind:    query.LeafPattern,
			Fields:  []model.TextField{model.FieldFlattenedSchemaOrgJson},
			Pattern: prefixSchemaType(m.Pattern),
		}
	default:
		return query.Leaf{}
	}
}

// lowerDomainMatching auto-upgrades a both-ends-anchored domain pattern to
// the site-operator field, mirroring internal/query's Domain auto-routing
// (spec §4.1, §4.2).
func lowerDomainMatching(m model.Matching) query.Leaf {
	if isAnchoredBothEnds(m.Pattern) {
		return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldUrlForSiteOperator}, Pattern: m.Pattern}
	}
	return query.Leaf{Kind: query.LeafPattern, Fields: []model.TextField{model.FieldDomain}, Pattern: m.Pattern}
}

func isAnchoredBothEnds(pattern []model.PatternPart) bool {
	if len(pattern) < 2 {
		return false
	}
	return pattern[0].Kind == model.PatternAnchor && pattern[len(pattern)-1].Kind == model.PatternAnchor
}

// prefixSchemaType anchors the JSON-LD type path of a Schema(...) pattern
// by prefixing its first raw token with constants.SchemaTypePrefix (spec
// §4.2).
func prefixSchemaType(pattern []model.PatternPart) []model.PatternPart {
	out := make([]model.PatternPart, len(pattern))
	copy(out, pattern)
	for i := range out {
		if out[i].Kind == model.PatternRaw {
			out[i] = model.Raw(constants.SchemaTypePrefix + out[i].Token)
			break
		}
	}
	return out
}
