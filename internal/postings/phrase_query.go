package postings

import "github.com/searchcore/engine/pkg/model"

// PhraseQuery re-validates phrase adjacency against a candidate's full
// token stream, the same prefilter-then-recheck shape as PatternQuery: the
// inner iterator (typically an Intersection over each phrase word's own
// postings) only guarantees co-occurrence, not order or adjacency.
type PhraseQuery struct {
	inner   model.PostingList
	terms   []string
	tokens  FieldTokens
	current model.DocID
}

// NewPhraseQuery wraps inner with an adjacency re-check against terms, in
// the order given, using tokens to fetch a candidate's token stream.
func NewPhraseQuery(inner model.PostingList, terms []string, tokens FieldTokens) *PhraseQuery {
	return &PhraseQuery{inner: inner, terms: terms, tokens: tokens, current: model.NoDoc}
}

// Doc implements model.PostingList.
func (p *PhraseQuery) Doc() model.DocID { return p.current }

// Advance implements model.PostingList.
func (p *PhraseQuery) Advance() model.DocID {
	for d := p.inner.Advance(); d != model.NoDoc; d = p.inner.Advance() {
		if containsAdjacent(p.tokens(d), p.terms) {
			p.current = d
			return p.current
		}
	}
	p.current = model.NoDoc
	return p.current
}

// Seek implements model.PostingList.
func (p *PhraseQuery) Seek(target model.DocID) model.DocID {
	d := p.inner.Seek(target)
	for d != model.NoDoc {
		if containsAdjacent(p.tokens(d), p.terms) {
			p.current = d
			return p.current
		}
		d = p.inner.Advance()
	}
	p.current = model.NoDoc
	return p.current
}

// TermFreq implements model.PostingList.
func (p *PhraseQuery) TermFreq() uint32 { return p.inner.TermFreq() }

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

var _ model.PostingList = (*PhraseQuery)(nil)
