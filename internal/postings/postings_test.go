package postings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/searchcore/engine/pkg/model"
)

func postingsOf(docs ...model.DocID) []Posting {
	out := make([]Posting, len(docs))
	for i, d := range docs {
		out[i] = Posting{Doc: d, TermFreq: 1}
	}
	return out
}

func drain(it model.PostingList) []model.DocID {
	var out []model.DocID
	for d := it.Advance(); d != model.NoDoc; d = it.Advance() {
		out = append(out, d)
	}
	return out
}

func TestTermPostings_AdvanceAndSeek(t *testing.T) {
	tp := NewTermPostings(postingsOf(1, 3, 7, 9))
	assert.Equal(t, model.DocID(1), tp.Advance())
	assert.Equal(t, model.DocID(7), tp.Seek(5))
	assert.Equal(t, model.DocID(9), tp.Advance())
	assert.Equal(t, model.NoDoc, tp.Advance())
}

func TestIntersection_MatchesCommonDocsOnly(t *testing.T) {
	a := NewTermPostings(postingsOf(1, 2, 3, 5, 8))
	b := NewTermPostings(postingsOf(2, 3, 4, 8))
	inter := NewIntersection([]model.PostingList{a, b})
	assert.Equal(t, []model.DocID{2, 3, 8}, drain(inter))
}

func TestIntersection_Empty(t *testing.T) {
	a := NewTermPostings(postingsOf(1, 2))
	b := NewTermPostings(postingsOf(3, 4))
	inter := NewIntersection([]model.PostingList{a, b})
	assert.Equal(t, model.NoDoc, inter.Advance())
}

func TestUnion_MergesAndDedups(t *testing.T) {
	a := NewTermPostings(postingsOf(1, 3, 5))
	b := NewTermPostings(postingsOf(2, 3, 6))
	u := NewUnion([]model.PostingList{a, b})
	assert.Equal(t, []model.DocID{1, 2, 3, 5, 6}, drain(u))
}

func TestConstQuery_PassesThroughDocsWithFixedScore(t *testing.T) {
	inner := NewTermPostings(postingsOf(4, 5))
	cq := NewConstQuery(inner, 2.5)
	assert.Equal(t, []model.DocID{4, 5}, drain(cq))
	assert.InDelta(t, 2.5, cq.Score, 0.0001)
}

func TestShortCircuit_CapsYieldedDocs(t *testing.T) {
	inner := NewTermPostings(postingsOf(1, 2, 3, 4, 5))
	sc := NewShortCircuit(inner, 3)
	assert.Equal(t, []model.DocID{1, 2, 3}, drain(sc))
}

func TestPatternQuery_RevalidatesAgainstFullPattern(t *testing.T) {
	inner := NewTermPostings(postingsOf(1, 2))
	tokensByDoc := map[model.DocID][]string{
		1: {"the", "quick", "fox"},
		2: {"quick", "brown", "fox"},
	}
	pat := []model.PatternPart{model.Raw("quick"), model.Wildcard(), model.Raw("fox")}
	pq := NewPatternQuery(inner, pat, func(d model.DocID) []string { return tokensByDoc[d] })
	assert.Equal(t, []model.DocID{1, 2}, drain(pq))
}

func TestPatternQuery_RejectsNonMatchingCandidate(t *testing.T) {
	inner := NewTermPostings(postingsOf(1, 2))
	tokensByDoc := map[model.DocID][]string{
		1: {"quick", "fox"},
		2: {"quick", "brown", "dog"},
	}
	pat := []model.PatternPart{model.Anchor(), model.Raw("quick"), model.Raw("fox"), model.Anchor()}
	pq := NewPatternQuery(inner, pat, func(d model.DocID) []string { return tokensByDoc[d] })
	assert.Equal(t, []model.DocID{1}, drain(pq))
}
