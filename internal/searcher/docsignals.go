package searcher

import (
	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/internal/region"
	"github.com/searchcore/engine/internal/signal"
	"github.com/searchcore/engine/internal/similarity"
	"github.com/searchcore/engine/pkg/model"
)

// QueryCentralityScorer computes the personalized-walk-over-webgraph
// signal of spec §4.5's QueryCentrality row. It is supplied by an
// out-of-scope collaborator; a nil scorer contributes 0, the same
// "identity, 0 if unset" treatment as the external signals.
type QueryCentralityScorer interface {
	Score(host model.HostNodeID) float64
}

// scoreContext bundles the per-query collaborators buildDocSignals needs,
// so a worker can build one DocSignals per candidate without threading six
// separate parameters through every call.
type scoreContext struct {
	reader          model.Reader
	terms           termSet
	regionCounts    *region.Counts
	queryRegion     *model.Region
	similarityScore *similarity.Scorer
	queryCentrality QueryCentralityScorer
	nowUnix         int64
}

// buildDocSignals assembles signal.DocSignals for one candidate doc: BM25
// term/field statistics per text field the query touched, plus the column
// and derived signals (spec §4.5).
func buildDocSignals(sc scoreContext, doc model.DocID) (signal.DocSignals, error) {
	d, err := sc.reader.Doc(doc)
	if err != nil {
		return signal.DocSignals{}, err
	}

	ds := signal.DocSignals{
		Columns:        d.Columns,
		ExternalScores: d.ExternalScores,
		NowUnix:        sc.nowUnix,
		BM25Terms:      make(map[model.TextField]signal.TermStats, len(bm25Fields)),
		FieldStats:     make(map[model.TextField]signal.FieldStats, len(bm25Fields)),
	}

	for _, field := range bm25Fields {
		terms := sc.terms.termsFor(field)
		if len(terms) == 0 {
			continue
		}
		ts, err := termStatsFor(sc.reader, field, terms, doc)
		if err != nil {
			return signal.DocSignals{}, err
		}
		if ts.TermFreq == 0 {
			continue
		}
		ds.BM25Terms[field] = ts
		ds.FieldStats[field] = fieldStatsFor(sc.reader, field)
	}

	ds.RegionScore = region.ScoreRegion(d.Columns.Region, sc.queryRegion, sc.regionCounts)
	if sc.similarityScore != nil {
		ds.InboundSimilarity = sc.similarityScore.Score(d.Columns.HostNodeID)
	}
	if sc.queryCentrality != nil {
		ds.QueryCentrality = sc.queryCentrality.Score(d.Columns.HostNodeID)
	}
	return ds, nil
}

// termStatsFor sums TermFreq/DocFreq across every query term mapped to
// field, matching the teacher's per-word-contribution summation (spec:
// "BM25Terms... already summed across the query's terms").
func termStatsFor(r model.Reader, field model.TextField, terms []string, doc model.DocID) (signal.TermStats, error) {
	var ts signal.TermStats
	fieldLen, err := r.FieldNorm(doc, field)
	if err != nil {
		return signal.TermStats{}, nil //nolint:nilerr // field absent for this doc, contributes nothing
	}
	ts.FieldLen = float64(fieldLen)

	seen := map[string]bool{}
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true

		pl, ok, err := r.Postings(field, term)
		if err != nil {
			return signal.TermStats{}, err
		}
		if !ok {
			continue
		}
		tp, ok := pl.(*postings.TermPostings)
		if !ok {
			continue
		}
		ts.DocFreq += uint32(tp.DocFreq())
		if tp.Seek(doc) == doc {
			ts.TermFreq += tp.TermFreq()
		}
	}
	return ts, nil
}

func fieldStatsFor(r model.Reader, field model.TextField) signal.FieldStats {
	fs := signal.FieldStats{NumDocs: r.NumDocs()}
	if avg, ok := r.(interface{ AvgFieldLen(model.TextField) float64 }); ok {
		fs.AvgFieldLen = avg.AvgFieldLen(field)
	}
	return fs
}
