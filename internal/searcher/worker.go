package searcher

import (
	"context"
	"strconv"

	"github.com/searchcore/engine/internal/collector"
	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/internal/optic"
	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/internal/signal"
	"github.com/searchcore/engine/pkg/model"
)

// segmentPlan is the per-segment-invariant part of a query: everything
// built once from the parsed query and optic, then reused against every
// segment's reader.
type segmentPlan struct {
	bq       query.BooleanQuery
	compiled optic.Compiled
	coef     signal.SignalCoefficients
}

// segmentResult is what one worker hands back to the searcher: its local
// top-k candidates, how many docs it actually scored, and any degrade
// warning.
type segmentResult struct {
	candidates []collector.Candidate
	considered int
	warning    string
}

// searchSegment scores every candidate doc of one segment that survives
// the boolean gate, applying the optic boost multiplicatively, and
// collects the segment's own top-k (spec §4.4, §4.5, §5). It never
// returns a fatal error for a segment-local problem: SegmentIo/
// PostingsMissing degrade into a warning on the result instead (spec §7:
// "an error on segment k degrades the query but does not abort the
// others").
func searchSegment(ctx context.Context, r model.Reader, plan segmentPlan, sc scoreContext, capacity, maxDocs int) segmentResult {
	gate, mustNot, err := buildGate(r, plan)
	if err != nil {
		return segmentResult{warning: degradeWarning(r, err)}
	}

	nonDiscards := plan.compiled.NonDiscards()
	coll := collector.New(capacity)
	agg := signal.NewAggregator(plan.coef)
	sc.reader = r

	considered := 0
	checkStride := maxDocs / constants.CancellationCheckDivisor
	if checkStride < 1 {
		checkStride = 1
	}

	for d := gate.Advance(); d != model.NoDoc; d = gate.Advance() {
		if maxDocs > 0 && considered >= maxDocs {
			break
		}
		considered++
		if considered%checkStride == 0 && ctx.Err() != nil {
			break
		}
		if matchesAnyMustNot(mustNot, d) {
			continue
		}

		ds, err := buildDocSignals(sc, d)
		if err != nil {
			return segmentResult{candidates: coll.Drain(0, 0), considered: considered, warning: degradeWarning(r, err)}
		}
		score := agg.Score(ds)

		if len(nonDiscards) > 0 {
			up, down := optic.EvaluateBoosts(nonDiscards, opticFieldTokens(r, d))
			score *= optic.Boost(up, down)
		}

		doc, err := r.Doc(d)
		var simHash uint64
		if err == nil {
			simHash = doc.Columns.SimHash
		}
		coll.Offer(collector.Candidate{Score: score, SegmentID: r.SegmentID(), DocID: d, SimHash: simHash})
	}

	return segmentResult{candidates: coll.Drain(0, 0), considered: considered}
}

// buildGate combines the boolean query's Must leaves, the optic
// DiscardNonMatching gate, and the optic Discard contributions into one
// forward-advancing candidate iterator plus a separate MustNot list
// checked per candidate (spec §4.1 step 4, §4.2 step 4).
func buildGate(r model.Reader, plan segmentPlan) (model.PostingList, []model.PostingList, error) {
	var musts []model.PostingList
	var mustNots []model.PostingList

	for _, n := range plan.bq.Nodes {
		it, err := resolveLeaf(r, n.Leaf)
		if err != nil {
			return nil, nil, err
		}
		switch n.Occur {
		case query.OccurMust:
			musts = append(musts, it)
		case query.OccurMustNot:
			mustNots = append(mustNots, it)
		}
	}

	discardGate, err := plan.compiled.BuildDiscardNonMatchingGate(func(l query.Leaf) (model.PostingList, error) {
		return resolveLeaf(r, l)
	})
	if err != nil {
		return nil, nil, err
	}
	if discardGate != nil {
		musts = append(musts, discardGate)
	}

	for _, contrib := range plan.compiled.Discards() {
		sub, err := optic.BuildSubQuery(contrib, func(l query.Leaf) (model.PostingList, error) {
			return resolveLeaf(r, l)
		})
		if err != nil {
			return nil, nil, err
		}
		mustNots = append(mustNots, sub)
	}

	var gate model.PostingList
	switch len(musts) {
	case 0:
		gate = allDocs(r)
	case 1:
		gate = musts[0]
	default:
		gate = postings.NewIntersection(musts)
	}
	return gate, mustNots, nil
}

// matchesAnyMustNot reports whether doc d matches any MustNot iterator.
// Safe to call only with strictly ascending d across a single segment
// sweep, since each iterator's cursor only moves forward (spec §5: "within
// a segment, documents are scored in ascending doc-id order").
func matchesAnyMustNot(iters []model.PostingList, d model.DocID) bool {
	for _, it := range iters {
		if it.Seek(d) == d {
			return true
		}
	}
	return false
}

// degradeWarning formats a per-segment warning for the result's Warnings
// list (spec §7: SegmentIo/PostingsMissing degrade rather than abort).
func degradeWarning(r model.Reader, err error) string {
	return "segment " + strconv.FormatUint(uint64(r.SegmentID()), 10) + ": " + err.Error()
}
