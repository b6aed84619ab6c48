// Package segment loads a segment bundle (a JSON manifest of documents and
// their column values) into a queryable model.Reader, building a posting
// list per (field, term) the way the teacher's internal/embedding built an
// inverted index over its embedding table (spec §3, §6).
package segment

import (
	"fmt"

	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/pkg/model"
)

// Segment is an in-memory, read-only model.Reader backing one segment of
// the index.
type Segment struct {
	id        uint32
	docs      []model.Document
	fields    []model.TextField
	postings  map[model.TextField]map[string][]postings.Posting
	fieldLens map[model.TextField][]uint32
}

func (s *Segment) Fields() []model.TextField { return s.fields }

// Postings builds a fresh iterator over the stored (field, term) postings.
// A fresh TermPostings is constructed per call since its cursor is not
// safe for concurrent reuse across goroutines (internal/searcher spawns one
// worker per segment per query).
func (s *Segment) Postings(field model.TextField, term string) (model.PostingList, bool, error) {
	byTerm, ok := s.postings[field]
	if !ok {
		return nil, false, nil
	}
	list, ok := byTerm[term]
	if !ok {
		return nil, false, nil
	}
	return postings.NewTermPostings(list), true, nil
}

func (s *Segment) Column(doc model.DocID) (model.Columns, error) {
	if int(doc) < 0 || int(doc) >= len(s.docs) {
		return model.Columns{}, fmt.Errorf("segment %d: doc %d out of range", s.id, doc)
	}
	return s.docs[doc].Columns, nil
}

func (s *Segment) FieldNorm(doc model.DocID, field model.TextField) (uint32, error) {
	lens, ok := s.fieldLens[field]
	if !ok || int(doc) < 0 || int(doc) >= len(lens) {
		return 0, fmt.Errorf("segment %d: field norm for doc %d field %s unavailable", s.id, doc, field)
	}
	return lens[doc], nil
}

func (s *Segment) Doc(doc model.DocID) (*model.Document, error) {
	if int(doc) < 0 || int(doc) >= len(s.docs) {
		return nil, fmt.Errorf("segment %d: doc %d out of range", s.id, doc)
	}
	return &s.docs[doc], nil
}

func (s *Segment) NumDocs() int { return len(s.docs) }

func (s *Segment) SegmentID() uint32 { return s.id }

// AvgFieldLen returns the mean token count for field across every document
// in the segment, feeding internal/signal's BM25 FieldStats (spec §4.5).
func (s *Segment) AvgFieldLen(field model.TextField) float64 {
	lens, ok := s.fieldLens[field]
	if !ok || len(lens) == 0 {
		return 0
	}
	var sum uint64
	for _, l := range lens {
		sum += uint64(l)
	}
	return float64(sum) / float64(len(lens))
}

var _ model.Reader = (*Segment)(nil)
