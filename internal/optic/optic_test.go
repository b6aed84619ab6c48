package optic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/pkg/model"
)

func tokensFromMap(m map[model.TextField][]string) FieldTokens {
	return func(f model.TextField) []string { return m[f] }
}

func TestParse_DiscardNonMatching(t *testing.T) {
	o, err := Parse(`DiscardNonMatching;`)
	require.NoError(t, err)
	assert.True(t, o.DiscardNonMatching)
}

func TestParse_RuleDiscard(t *testing.T) {
	o, err := Parse(`Rule { Matches { Domain("b.com") }, Action(Discard) };`)
	require.NoError(t, err)
	require.Len(t, o.Rules, 1)
	assert.Equal(t, model.ActionDiscard, o.Rules[0].Action.Kind)
	require.Len(t, o.Rules[0].Matches, 1)
	require.Len(t, o.Rules[0].Matches[0], 1)
	assert.Equal(t, model.LocationDomain, o.Rules[0].Matches[0][0].Location)
}

func TestParse_RuleBoost(t *testing.T) {
	o, err := Parse(`Rule { Matches { Domain("a.com") }, Action(Boost(100)) };`)
	require.NoError(t, err)
	require.Len(t, o.Rules, 1)
	assert.Equal(t, model.ActionBoost, o.Rules[0].Action.Kind)
	assert.InDelta(t, 100.0, o.Rules[0].Action.Boost, 0.0001)
}

func TestParse_LikeDislike(t *testing.T) {
	o, err := Parse(`Like(Site("good.com")); Dislike(Site("bad.com"));`)
	require.NoError(t, err)
	assert.Equal(t, []string{"good.com"}, o.HostRankings.Liked)
	assert.Equal(t, []string{"bad.com"}, o.HostRankings.Disliked)
}

func TestParse_Ranking(t *testing.T) {
	o, err := Parse(`Ranking(Signal("HostCentrality"), 2.5);`)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, o.SignalCoefficients[model.SignalHostCentrality], 0.0001)
}

func TestParse_SyntaxError_HasPosition(t *testing.T) {
	_, err := Parse(`Rule { Matches { Domain("a.com") } };`)
	require.Error(t, err)
	var perr interface{ Error() string } = err
	assert.NotEmpty(t, perr.Error())
}

func TestParsePatternString_Anchors(t *testing.T) {
	pat, err := parsePatternString(`|This`)
	require.NoError(t, err)
	assert.Equal(t, []model.PatternPart{model.Anchor(), model.Raw("this")}, pat)

	pat, err = parsePatternString(`|is`)
	require.NoError(t, err)
	assert.Equal(t, []model.PatternPart{model.Anchor(), model.Raw("is")}, pat)
}

func TestParsePatternString_MidPipeIsError(t *testing.T) {
	_, err := parsePatternString(`a|b`)
	assert.Error(t, err)
}

func TestScenario3_DiscardThenBoost(t *testing.T) {
	// Two docs a.com, b.com; Discard on Domain("b.com") leaves only a.com.
	oDiscard, err := Parse(`Rule { Matches { Domain("b.com") }, Action(Discard) };`)
	require.NoError(t, err)
	compiled := Compile(oDiscard)
	require.Len(t, compiled.Discards(), 1)
	assert.Equal(t, query.OccurMustNot, compiled.Discards()[0].Occur)

	// Boost on Domain("a.com") should produce a positive Should.
	oBoost, err := Parse(`Rule { Matches { Domain("a.com") }, Action(Boost(100)) };`)
	require.NoError(t, err)
	compiledBoost := Compile(oBoost)
	require.Len(t, compiledBoost.NonDiscards(), 1)
	assert.InDelta(t, 100.0, compiledBoost.NonDiscards()[0].Boost, 0.0001)
}

func TestScenario4_DiscardNonMatchingWithEmptyBlock(t *testing.T) {
	src := `DiscardNonMatching; Rule { Matches { Domain("a.com") }, Action(Boost(6)) }; Rule { Matches { Domain("b.com") }, Action(Boost(1)) };`
	o, err := Parse(src)
	require.NoError(t, err)
	compiled := Compile(o)
	assert.True(t, compiled.DiscardNonMatching)
	require.Len(t, compiled.NonDiscards(), 2)
}

func TestScenario5_PatternAnchors(t *testing.T) {
	docA := tokensFromMap(map[model.TextField][]string{
		model.FieldTitle: {"this", "is", "an", "example", "website"},
	})
	docB := tokensFromMap(map[model.TextField][]string{
		model.FieldTitle: {"another", "thing", "with", "no", "words", "in", "common"},
	})

	oNeither, err := Parse(`Rule { Matches { Title("|is") }, Action(Discard) };`)
	require.NoError(t, err)
	compiledNeither := Compile(oNeither)
	assert.False(t, matchesSubQuery(compiledNeither.Discards()[0].Clauses, docA))
	assert.False(t, matchesSubQuery(compiledNeither.Discards()[0].Clauses, docB))

	oFirst, err := Parse(`Rule { Matches { Title("|This") }, Action(Discard) };`)
	require.NoError(t, err)
	compiledFirst := Compile(oFirst)
	assert.True(t, matchesSubQuery(compiledFirst.Discards()[0].Clauses, docA))
	assert.False(t, matchesSubQuery(compiledFirst.Discards()[0].Clauses, docB))
}

func TestBoost_Formula(t *testing.T) {
	assert.InDelta(t, 1.0, Boost(0, 0), 0.0001)
	assert.InDelta(t, 101.0, Boost(100, 0), 0.0001)
	assert.InDelta(t, 1.0/6.0, Boost(0, 5), 0.0001)
}

func TestExpandHostRankings_ProducesExactSitePatterns(t *testing.T) {
	hr := model.HostRankings{Liked: []string{"good.com"}, Blocked: []string{"bad.com"}}
	rules := expandHostRankings(hr)
	require.Len(t, rules, 2)
	assert.Equal(t, model.ActionBoost, rules[0].Action.Kind)
	assert.Equal(t, model.ActionDiscard, rules[1].Action.Kind)
	assert.Equal(t, model.Anchor(), rules[0].Matches[0][0].Pattern[0])
}
