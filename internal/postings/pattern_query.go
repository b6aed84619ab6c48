package postings

import (
	"github.com/searchcore/engine/internal/pattern"
	"github.com/searchcore/engine/pkg/model"
)

// FieldTokens resolves the token stream for a field on a doc, so
// PatternQuery can re-validate a candidate against the full pattern
// rather than trusting the coarse posting-list prefilter alone.
type FieldTokens func(doc model.DocID) []string

// PatternQuery drives an optic pattern match off an inner candidate
// iterator (usually the Union of postings for every Raw token in the
// pattern), re-checking each candidate doc against the full pattern via
// internal/pattern.Match before yielding it. The inner iterator is a
// prefilter only: it narrows candidates but Raw/Wildcard/Anchor sequence
// semantics are re-validated per doc since a posting-list intersection
// alone cannot express adjacency or anchoring.
type PatternQuery struct {
	inner   model.PostingList
	pat     []model.PatternPart
	tokens  FieldTokens
	current model.DocID
}

func NewPatternQuery(inner model.PostingList, pat []model.PatternPart, tokens FieldTokens) *PatternQuery {
	return &PatternQuery{inner: inner, pat: pat, tokens: tokens, current: model.NoDoc}
}

func (p *PatternQuery) Doc() model.DocID { return p.current }

func (p *PatternQuery) Advance() model.DocID {
	for d := p.inner.Advance(); d != model.NoDoc; d = p.inner.Advance() {
		if pattern.Match(p.pat, p.tokens(d)) {
			p.current = d
			return p.current
		}
	}
	p.current = model.NoDoc
	return p.current
}

func (p *PatternQuery) Seek(target model.DocID) model.DocID {
	for d := p.inner.Seek(target); d != model.NoDoc; d = p.inner.Advance() {
		if pattern.Match(p.pat, p.tokens(d)) {
			p.current = d
			return p.current
		}
	}
	p.current = model.NoDoc
	return p.current
}

func (p *PatternQuery) TermFreq() uint32 { return p.inner.TermFreq() }

var _ model.PostingList = (*PatternQuery)(nil)
