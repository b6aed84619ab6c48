package searcher

import (
	"github.com/searchcore/engine/internal/optic"
	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/internal/segment"
	"github.com/searchcore/engine/pkg/model"
)

// resolveLeaf builds the posting iterator for one query leaf against one
// segment reader (spec §4.1, §4.4). It is the shared optic.LeafResolver
// used both for the boolean query's own leaves and every optic
// contribution's SubQuery leaves, since both lower to the same query.Leaf
// shape.
func resolveLeaf(r model.Reader, leaf query.Leaf) (model.PostingList, error) {
	switch leaf.Kind {
	case query.LeafTermUnion:
		return unionOverFields(r, leaf.Fields, leaf.Term)
	case query.LeafPhrase:
		return phraseOverFields(r, leaf.Fields, leaf.Tokens)
	case query.LeafPattern:
		return patternOverFields(r, leaf.Fields, leaf.Pattern)
	default:
		return postings.NewUnion(nil), nil
	}
}

// postingsFieldTokens returns a postings.FieldTokens closure re-tokenizing
// one field of a candidate doc, the way the field was indexed (spec §4.3:
// pattern/phrase re-validation must agree with the posting-list
// prefilter).
func postingsFieldTokens(r model.Reader, field model.TextField) postings.FieldTokens {
	return func(doc model.DocID) []string {
		d, err := r.Doc(doc)
		if err != nil {
			return nil
		}
		return segment.TokensForField(field, d.FieldText(field))
	}
}

// opticFieldTokens returns an optic.FieldTokens closure fixed to one
// candidate doc, re-tokenizing whichever field a Should contribution asks
// for (internal/optic.EvaluateBoosts).
func opticFieldTokens(r model.Reader, doc model.DocID) optic.FieldTokens {
	d, err := r.Doc(doc)
	return func(field model.TextField) []string {
		if err != nil {
			return nil
		}
		return segment.TokensForField(field, d.FieldText(field))
	}
}

func unionOverFields(r model.Reader, fields []model.TextField, term string) (model.PostingList, error) {
	var its []model.PostingList
	for _, f := range fields {
		pl, ok, err := r.Postings(f, term)
		if err != nil {
			return nil, err
		}
		if ok {
			its = append(its, postings.NewConstQuery(pl, 1))
		}
	}
	return postings.NewUnion(its), nil
}

// phraseOverFields builds, per field, an intersection of each phrase
// word's own postings (a co-occurrence prefilter) wrapped in a
// PhraseQuery re-checking adjacency, then unions across fields.
func phraseOverFields(r model.Reader, fields []model.TextField, terms []string) (model.PostingList, error) {
	if len(terms) == 0 {
		return postings.NewUnion(nil), nil
	}
	var perField []model.PostingList
	for _, f := range fields {
		inner, ok, err := intersectTerms(r, f, terms)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		perField = append(perField, postings.NewPhraseQuery(inner, terms, postingsFieldTokens(r, f)))
	}
	return postings.NewUnion(perField), nil
}

// patternOverFields builds, per field named by the pattern's match
// location, a prefilter over the pattern's raw tokens wrapped in a
// PatternQuery re-validating the full Raw/Wildcard/Anchor sequence, then
// unions across fields (spec §4.3).
func patternOverFields(r model.Reader, fields []model.TextField, pat []model.PatternPart) (model.PostingList, error) {
	rawTerms := rawTokens(pat)
	var perField []model.PostingList
	for _, f := range fields {
		var inner model.PostingList
		if len(rawTerms) == 0 {
			inner = allDocs(r)
		} else {
			i, ok, err := intersectTerms(r, f, rawTerms)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			inner = i
		}
		perField = append(perField, postings.NewPatternQuery(inner, pat, postingsFieldTokens(r, f)))
	}
	return postings.NewUnion(perField), nil
}

// intersectTerms resolves every term's posting list on field and
// intersects them; ok is false if any term has no postings on this field
// (so the clause can never match and is dropped rather than contributing
// an always-empty intersection).
func intersectTerms(r model.Reader, field model.TextField, terms []string) (model.PostingList, bool, error) {
	var its []model.PostingList
	for _, t := range terms {
		pl, ok, err := r.Postings(field, t)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		its = append(its, pl)
	}
	if len(its) == 1 {
		return its[0], true, nil
	}
	return postings.NewIntersection(its), true, nil
}

func rawTokens(pat []model.PatternPart) []string {
	var out []string
	for _, p := range pat {
		if p.Kind == model.PatternRaw {
			out = append(out, p.Token)
		}
	}
	return out
}

// allDocsIterator walks every doc id in a segment in ascending order, used
// as the prefilter for patterns with no Raw tokens (a bare wildcard).
type allDocsIterator struct {
	n   int
	idx int
}

func allDocs(r model.Reader) model.PostingList {
	return &allDocsIterator{n: r.NumDocs(), idx: -1}
}

func (a *allDocsIterator) Doc() model.DocID {
	if a.idx < 0 || a.idx >= a.n {
		return model.NoDoc
	}
	return model.DocID(a.idx)
}

func (a *allDocsIterator) Advance() model.DocID {
	a.idx++
	return a.Doc()
}

func (a *allDocsIterator) Seek(target model.DocID) model.DocID {
	if int(target) > a.idx {
		a.idx = int(target)
	}
	return a.Doc()
}

func (a *allDocsIterator) TermFreq() uint32 { return 1 }

var _ model.PostingList = (*allDocsIterator)(nil)
