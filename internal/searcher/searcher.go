// Package searcher fans a parsed query and compiled optic out across every
// segment of an index and merges each segment's top-k into one globally
// ordered result (spec §4, §5, §6), generalizing the teacher's channel and
// semaphore-bounded worker pool in internal/search/full_search.go into an
// errgroup-bounded pool with one signal.Aggregator per worker.
package searcher

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/searchcore/engine/internal/collector"
	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/internal/errs"
	"github.com/searchcore/engine/internal/optic"
	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/internal/region"
	"github.com/searchcore/engine/internal/signal"
	"github.com/searchcore/engine/internal/similarity"
	"github.com/searchcore/engine/pkg/model"
)

// HostResolver maps a hostname (as carried on SearchQuery.HostRankings) to
// the stable HostNodeID the webgraph and inbound-similarity store key on.
// An out-of-scope collaborator (spec §6: host-node-id assignment is
// produced by the indexer).
type HostResolver interface {
	Resolve(host string) (model.HostNodeID, bool)
}

// Searcher executes search queries against a fixed set of segment readers.
// Segment readers are read-only and shared across concurrent queries (spec
// §5: "Arc of immutable"); everything else a Search call needs (compiled
// optic, signal coefficients, term set) is built fresh per query.
type Searcher struct {
	segments        []model.Reader
	regionCounts    *region.Counts
	similarityStore similarity.Store
	hostResolver    HostResolver
	queryCentrality QueryCentralityScorer
	linearModel     map[model.Signal]float64
	maxDocsTotal    int
	maxWorkers      int
	now             func() int64
}

// Option configures a Searcher at construction.
type Option func(*Searcher)

// WithRegionCounts supplies the per-region document counts used by the
// Region signal (spec §4.5).
func WithRegionCounts(c *region.Counts) Option {
	return func(s *Searcher) { s.regionCounts = c }
}

// WithSimilarityStore supplies the shared inbound-link store backing the
// InboundSimilarity signal (spec §4.7).
func WithSimilarityStore(store similarity.Store) Option {
	return func(s *Searcher) { s.similarityStore = store }
}

// WithHostResolver supplies the hostname -> HostNodeID lookup used to turn
// a request's HostRankings into the host-id preference vector the
// InboundSimilarity scorer needs.
func WithHostResolver(r HostResolver) Option {
	return func(s *Searcher) { s.hostResolver = r }
}

// WithQueryCentrality supplies the personalized-webgraph-walk scorer
// feeding the QueryCentrality signal. Omitted, it contributes 0.
func WithQueryCentrality(qc QueryCentralityScorer) Option {
	return func(s *Searcher) { s.queryCentrality = qc }
}

// WithLinearModel supplies default per-signal overrides from a trained
// linear-regression model, applied before any optic override (spec §4.5:
// "optic wins if both").
func WithLinearModel(m map[model.Signal]float64) Option {
	return func(s *Searcher) { s.linearModel = m }
}

// WithMaxDocsConsidered bounds the total candidate docs scored across all
// segments for one query (spec §4.6, §7's MaxDocsExceeded).
func WithMaxDocsConsidered(n int) Option {
	return func(s *Searcher) { s.maxDocsTotal = n }
}

// WithMaxWorkers bounds how many segments are searched concurrently.
func WithMaxWorkers(n int) Option {
	return func(s *Searcher) { s.maxWorkers = n }
}

const defaultMaxDocsConsidered = 200_000

// New returns a Searcher over the given segment readers.
func New(segments []model.Reader, opts ...Option) *Searcher {
	s := &Searcher{
		segments:     segments,
		maxDocsTotal: defaultMaxDocsConsidered,
		now:          func() int64 { return time.Now().Unix() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search executes query against every segment and merges the results (spec
// §6). It never returns a partial result through the error return: budget
// degradation is reported via SearchResult.Partial/TimedOut, leaving the
// error return for input errors (EmptyQuery, OpticParse) the caller must
// report back structured (spec §7).
func (s *Searcher) Search(ctx context.Context, q model.SearchQuery) (model.SearchResult, error) {
	parsed, err := query.Parse(q.Query)
	if err != nil {
		return model.SearchResult{}, err
	}
	if len(parsed.Nodes) == 0 {
		return model.SearchResult{}, errs.ErrEmptyQuery
	}

	bq := query.Lower(parsed.Nodes)
	compiled := optic.Compile(mergedOptic(q))
	coef := signal.DefaultSignalCoefficients().WithOverrides(s.linearModel, q.SignalCoefficients)
	plan := segmentPlan{bq: bq, compiled: compiled, coef: coef}
	terms := buildTermSet(dedup(append(append([]string{}, parsed.NgramLookup...), monogramTerms(bq)...)))

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, constants.DefaultSearchDeadline)
		defer cancel()
	}

	numResults := q.NumResults
	if numResults <= 0 {
		numResults = constants.DefaultNumResults
	}
	if numResults > constants.MaxResults {
		numResults = constants.MaxResults
	}
	perSegmentCapacity := q.Page*numResults + numResults
	if perSegmentCapacity <= 0 {
		perSegmentCapacity = numResults
	}
	maxDocsPerSegment := s.maxDocsTotal
	if n := len(s.segments); n > 1 {
		maxDocsPerSegment = s.maxDocsTotal / n
	}

	var similarityScorer *similarity.Scorer
	if s.similarityStore != nil && s.hostResolver != nil && q.HostRankings != nil {
		liked := resolveHosts(s.hostResolver, q.HostRankings.Liked)
		disliked := resolveHosts(s.hostResolver, q.HostRankings.Disliked)
		similarityScorer = similarity.NewScorer(s.similarityStore, liked, disliked)
	}

	results := make([]segmentResult, len(s.segments))
	group, gctx := errgroup.WithContext(ctx)
	if s.maxWorkers > 0 {
		group.SetLimit(s.maxWorkers)
	}
	for i, r := range s.segments {
		i, r := i, r
		group.Go(func() error {
			sc := scoreContext{
				terms:           terms,
				regionCounts:    s.regionCounts,
				queryRegion:     q.SelectedRegion,
				queryCentrality: s.queryCentrality,
				nowUnix:         s.now(),
			}
			if similarityScorer != nil {
				sc.similarityScore = similarityScorer.Clone()
			}
			results[i] = searchSegment(gctx, r, plan, sc, perSegmentCapacity, maxDocsPerSegment)
			return nil
		})
	}
	_ = group.Wait()

	return s.mergeResults(results, q, numResults, ctx.Err() != nil)
}

// mergedOptic combines a request's Optic and HostRankings into the single
// model.Optic internal/optic.Compile expects (spec §6: both are optional
// and independent on SearchQuery).
func mergedOptic(q model.SearchQuery) model.Optic {
	var o model.Optic
	if q.Optic != nil {
		o = *q.Optic
	}
	if q.HostRankings != nil {
		o.HostRankings = *q.HostRankings
	}
	return o
}

// monogramTerms collects every LeafTermUnion term a lowered boolean query
// carries, so intitle:/inurl: operator terms (which the parser doesn't put
// in ParsedQuery.NgramLookup) still get BM25-scored.
func monogramTerms(bq query.BooleanQuery) []string {
	var out []string
	for _, n := range bq.Nodes {
		if n.Leaf.Kind == query.LeafTermUnion && n.Leaf.Term != "" {
			out = append(out, n.Leaf.Term)
		}
	}
	return out
}

func resolveHosts(r HostResolver, hosts []string) []model.HostNodeID {
	var out []model.HostNodeID
	for _, h := range hosts {
		if id, ok := r.Resolve(h); ok {
			out = append(out, id)
		}
	}
	return out
}

func dedup(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// mergeResults folds every segment's local top-k into one global Collector
// ordered by (score, seg, doc) and renders the requested page (spec §4.6,
// §5: "merged in the global top-k heap").
func (s *Searcher) mergeResults(results []segmentResult, q model.SearchQuery, numResults int, timedOut bool) (model.SearchResult, error) {
	global := collector.New(q.Page*numResults + numResults)
	var warnings []string
	var totalConsidered uint64
	for _, r := range results {
		if r.warning != "" {
			warnings = append(warnings, r.warning)
		}
		totalConsidered += uint64(r.considered)
		for _, c := range r.candidates {
			global.Offer(c)
		}
	}

	page := global.Drain(q.Page*numResults, numResults)
	webpages := make([]model.WebPage, 0, len(page))
	for _, c := range page {
		wp, ok := s.renderWebPage(c)
		if !ok {
			continue
		}
		webpages = append(webpages, wp)
	}

	result := model.SearchResult{
		Webpages: webpages,
		Warnings: warnings,
		TimedOut: timedOut,
		Partial:  timedOut || len(warnings) > 0,
	}
	if q.CountResultsExact {
		result.NumHits = &totalConsidered
	}
	return result, nil
}

func (s *Searcher) renderWebPage(c collector.Candidate) (model.WebPage, bool) {
	for _, r := range s.segments {
		if r.SegmentID() != c.SegmentID {
			continue
		}
		d, err := r.Doc(c.DocID)
		if err != nil {
			return model.WebPage{}, false
		}
		return model.WebPage{
			DocID:       d.ID,
			Url:         d.FieldText(model.FieldUrl),
			Title:       d.FieldText(model.FieldTitle),
			Description: d.FieldText(model.FieldDescription),
			Score:       c.Score,
		}, true
	}
	return model.WebPage{}, false
}
