package segment

import (
	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/pkg/model"
)

// builtSegment is the gob-serializable shape of a built Segment: plain
// exported fields standing in for Segment's private ones, since gob only
// encodes exported fields (internal/cache.SaveBinary/LoadBinary).
type builtSegment struct {
	Docs      []model.Document
	Fields    []model.TextField
	Postings  map[model.TextField]map[string][]postings.Posting
	FieldLens map[model.TextField][]uint32
}

func fromSegment(s *Segment) builtSegment {
	return builtSegment{
		Docs:      s.docs,
		Fields:    s.fields,
		Postings:  s.postings,
		FieldLens: s.fieldLens,
	}
}

func (b builtSegment) toSegment(segmentID uint32) *Segment {
	return &Segment{
		id:        segmentID,
		docs:      b.Docs,
		fields:    b.Fields,
		postings:  b.Postings,
		fieldLens: b.FieldLens,
	}
}
