package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/searchcore/engine/pkg/model"
)

func TestMatch_AnchorAtStart(t *testing.T) {
	tokens := []string{"this", "is", "an", "example", "website"}

	// `|is` anchors "is" to the first token — it isn't, so no match.
	assert.False(t, Match([]model.PatternPart{model.Anchor(), model.Raw("is")}, tokens))

	// `|This` anchors "this" to the first token — it is.
	assert.True(t, Match([]model.PatternPart{model.Anchor(), model.Raw("this")}, tokens))
}

func TestMatch_AnchorAtEnd(t *testing.T) {
	tokens := []string{"this", "is", "an", "example", "website"}
	assert.True(t, Match([]model.PatternPart{model.Raw("website"), model.Anchor()}, tokens))
	assert.False(t, Match([]model.PatternPart{model.Raw("example"), model.Anchor()}, tokens))
}

func TestMatch_Wildcard(t *testing.T) {
	tokens := []string{"this", "is", "an", "example", "website"}
	assert.True(t, Match([]model.PatternPart{
		model.Raw("this"), model.Wildcard(), model.Raw("website"),
	}, tokens))
	assert.False(t, Match([]model.PatternPart{
		model.Raw("this"), model.Wildcard(), model.Raw("missing"),
	}, tokens))
}

func TestMatch_AdjacentRawRequiresAdjacentTokens(t *testing.T) {
	tokens := []string{"this", "is", "an", "example", "website"}
	assert.True(t, Match([]model.PatternPart{model.Raw("an"), model.Raw("example")}, tokens))
	assert.False(t, Match([]model.PatternPart{model.Raw("is"), model.Raw("example")}, tokens))
}

func TestMatch_SiteAnchorBothEnds(t *testing.T) {
	tokens := []string{"example", "com"}
	pat := []model.PatternPart{model.Anchor(), model.Raw("example"), model.Raw("com"), model.Anchor()}
	assert.True(t, Match(pat, tokens))
	assert.False(t, Match(pat, []string{"www", "example", "com"}))
}

func TestMatch_EmptyPattern(t *testing.T) {
	assert.True(t, Match(nil, []string{"anything"}))
}
