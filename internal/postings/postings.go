// Package postings implements the per-term/per-field posting iterator layer
// and its boolean combinators (spec §4.4): union, intersection, const-score,
// pattern, and short-circuit.
package postings

import "github.com/searchcore/engine/pkg/model"

// Posting is one entry of a (field, term) posting list.
type Posting struct {
	Doc       model.DocID
	TermFreq  uint32
	Positions []uint32 // required for phrase/n-gram fields, optional elsewhere
}

// TermPostings is an ascending, in-memory (doc_id, term_freq, positions?)
// sequence for one (field, term) pair (spec §3).
type TermPostings struct {
	postings []Posting
	cursor   int
}

// NewTermPostings builds an iterator over an already-ascending postings
// slice. Callers (internal/segment) are responsible for the ascending
// invariant at build time.
func NewTermPostings(postings []Posting) *TermPostings {
	return &TermPostings{postings: postings, cursor: -1}
}

// Doc implements model.PostingList. Before the first Advance/Seek call it
// reports NoDoc, matching the "exhausted until positioned" convention every
// combinator in this package relies on.
func (p *TermPostings) Doc() model.DocID {
	return p.peekOrNone(p.cursor)
}

func (p *TermPostings) peekOrNone(i int) model.DocID {
	if i < 0 || i >= len(p.postings) {
		return model.NoDoc
	}
	return p.postings[i].Doc
}

// Advance implements model.PostingList.
func (p *TermPostings) Advance() model.DocID {
	p.cursor++
	return p.peekOrNone(p.cursor)
}

// Seek implements model.PostingList: returns the smallest doc >= target.
func (p *TermPostings) Seek(target model.DocID) model.DocID {
	if p.cursor < 0 {
		p.cursor = 0
	}
	// Linear from the cursor: segments are bounded and callers already
	// leap-frog via intersection, so cursor rarely starts far behind
	// target.
	for p.cursor < len(p.postings) && p.postings[p.cursor].Doc < target {
		p.cursor++
	}
	return p.peekOrNone(p.cursor)
}

// TermFreq implements model.PostingList.
func (p *TermPostings) TermFreq() uint32 {
	if p.cursor < 0 || p.cursor >= len(p.postings) {
		return 0
	}
	return p.postings[p.cursor].TermFreq
}

// Positions returns the position list at the current doc, for phrase and
// pattern matching.
func (p *TermPostings) Positions() []uint32 {
	if p.cursor < 0 || p.cursor >= len(p.postings) {
		return nil
	}
	return p.postings[p.cursor].Positions
}

// DocFreq returns the number of documents carrying this (field, term)
// posting list, for the signal aggregator's BM25 document-frequency input.
func (p *TermPostings) DocFreq() int {
	return len(p.postings)
}

var _ model.PostingList = (*TermPostings)(nil)
