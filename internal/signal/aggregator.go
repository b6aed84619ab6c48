package signal

import (
	"math"

	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/pkg/model"
)

// TermStats carries the per-term, per-field statistics an Aggregator needs
// to compute one field's BM25 contribution for one document: term
// frequency in this doc's field, document frequency across the segment,
// and the field's token length for this doc.
type TermStats struct {
	TermFreq uint32
	DocFreq  uint32
	FieldLen float64
}

// FieldStats carries the per-field statistics shared across every document
// in a segment: total doc count and the field's average length.
type FieldStats struct {
	NumDocs     int
	AvgFieldLen float64
}

// DocSignals is the per-candidate input to Aggregator.Score: everything
// needed to evaluate the closed set of signals for one document against
// one query (spec §4.5).
type DocSignals struct {
	Columns model.Columns

	// BM25Terms maps each text field the query touched to the term
	// statistics for that field, already summed across the query's terms
	// (a field with multiple matching query terms contributes one
	// aggregated TermStats per field, matching how the teacher's
	// scorer sums per-word contributions into one running total).
	BM25Terms  map[model.TextField]TermStats
	FieldStats map[model.TextField]FieldStats

	QueryCentrality   float64
	InboundSimilarity float64
	RegionScore       float64
	ExternalScores    model.ExternalScores

	NowUnix int64
}

// Aggregator combines BM25, column normalizations, n-gram dampening, and
// externally-supplied signals into the raw per-document score (spec §4.5):
// doc_score = Σ coef_i * value_i. The final doc_score * B (optic boost)
// multiplication is left to the caller, which also supplies QueryCentrality,
// InboundSimilarity and RegionScore (computed by sibling packages).
//
// An Aggregator is cheap to construct and holds no state between calls
// beyond its clamp-warning counter; the
// searcher constructs one per worker goroutine rather than sharing one
// across threads.
type Aggregator struct {
	coef     SignalCoefficients
	warnings int
}

// NewAggregator returns an Aggregator scoring with the given coefficients.
func NewAggregator(coef SignalCoefficients) *Aggregator {
	return &Aggregator{coef: coef}
}

// Warnings returns the number of NaN/Inf values clamped to 0 since
// construction (spec §7: scoring failures are degraded, not fatal).
func (a *Aggregator) Warnings() int {
	return a.warnings
}

// Score computes doc_score for one document.
func (a *Aggregator) Score(ds DocSignals) float64 {
	total := 0.0
	total += a.bm25Signals(ds)
	total += a.columnSignals(ds)
	total += a.derivedSignals(ds)
	total += a.externalSignals(ds)
	return total
}

// add folds one signal's contribution into a running total, clamping a
// NaN/Inf value to 0 and counting a warning instead of poisoning the sum.
func (a *Aggregator) add(total float64, value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		a.warnings++
		return total
	}
	return total + value
}

// bm25Signals scores every text field the query touched, applying n-gram
// dampening within each base field family (spec §4.5): a positive hit on
// the larger-n signal in a family multiplies every later (smaller-n)
// signal's coefficient by constants.NgramDampening.
func (a *Aggregator) bm25Signals(ds DocSignals) float64 {
	total := 0.0
	dampened := map[model.Signal]float64{}

	for _, fam := range model.NgramFamilies() {
		factor := 1.0
		for _, sig := range []model.Signal{fam.Trigram, fam.Bigram, fam.Monogram} {
			coef := a.coef.Coefficient(sig) * factor
			value, hit := a.bm25For(ds, sig)
			total = a.add(total, coef*value)
			dampened[sig] = coef
			if hit {
				factor *= constants.NgramDampening
			}
		}
	}

	for _, sig := range nonFamilySignals {
		if _, done := dampened[sig]; done {
			continue
		}
		value, _ := a.bm25For(ds, sig)
		total = a.add(total, a.coef.Coefficient(sig)*value)
	}
	return total
}

// nonFamilySignals lists the BM25 signals with no n-gram family, scored
// without dampening.
var nonFamilySignals = []model.Signal{
	model.SignalBm25AllBody,
	model.SignalBm25Url,
	model.SignalBm25Site,
	model.SignalBm25Domain,
	model.SignalBm25BacklinkText,
	model.SignalBm25StemmedTitle,
	model.SignalBm25StemmedCleanBody,
	model.SignalBm25SiteNoTokenizer,
	model.SignalBm25DomainNoTokenizer,
	model.SignalBm25DomainIfHomepage,
}

// bm25Field maps a BM25 signal to the text field its term statistics are
// keyed by.
var bm25Field = map[model.Signal]model.TextField{
	model.SignalBm25Title:             model.FieldTitle,
	model.SignalBm25CleanBody:         model.FieldCleanBody,
	model.SignalBm25AllBody:           model.FieldAllBody,
	model.SignalBm25Url:               model.FieldUrl,
	model.SignalBm25Site:              model.FieldSite,
	model.SignalBm25Domain:            model.FieldDomain,
	model.SignalBm25BacklinkText:      model.FieldBacklinkText,
	model.SignalBm25TitleBigrams:      model.FieldTitleBigrams,
	model.SignalBm25TitleTrigrams:     model.FieldTitleTrigrams,
	model.SignalBm25CleanBodyBigrams:  model.FieldCleanBodyBigrams,
	model.SignalBm25CleanBodyTrigrams: model.FieldCleanBodyTrigrams,
	model.SignalBm25StemmedTitle:      model.FieldStemmedTitle,
	model.SignalBm25StemmedCleanBody:  model.FieldStemmedCleanBody,
	model.SignalBm25SiteNoTokenizer:   model.FieldSiteNoTokenizer,
	model.SignalBm25DomainNoTokenizer: model.FieldDomainNoTokenizer,
	model.SignalBm25DomainIfHomepage:  model.FieldDomainIfHomepage,
}

// bm25For returns a BM25 signal's raw value and whether it was a positive
// hit (termFreq > 0), given the document's per-field term/field stats.
func (a *Aggregator) bm25For(ds DocSignals, sig model.Signal) (value float64, hit bool) {
	field, ok := bm25Field[sig]
	if !ok {
		return 0, false
	}
	ts, ok := ds.BM25Terms[field]
	if !ok || ts.TermFreq == 0 {
		return 0, false
	}
	fs := ds.FieldStats[field]
	value = BM25(ts.TermFreq, ts.DocFreq, fs.NumDocs, ts.FieldLen, fs.AvgFieldLen)
	return value, value > 0
}

// columnSignals scores the fixed-width column fields (spec §4.5 table).
func (a *Aggregator) columnSignals(ds DocSignals) float64 {
	total := 0.0
	c := ds.Columns

	total = a.add(total, a.coef.Coefficient(model.SignalHostCentrality)*c.HostCentralityF())
	total = a.add(total, a.coef.Coefficient(model.SignalHostCentralityRank)*rankScore(c.HostCentralityRank))
	total = a.add(total, a.coef.Coefficient(model.SignalPageCentrality)*c.PageCentralityF())
	total = a.add(total, a.coef.Coefficient(model.SignalPageCentralityRank)*rankScore(c.PageCentralityRank))
	total = a.add(total, a.coef.Coefficient(model.SignalLinkDensity)*linkDensityScore(c.LinkDensityF()))
	total = a.add(total, a.coef.Coefficient(model.SignalFetchTimeMs)*fetchTimeScore(c.FetchTimeMs))
	total = a.add(total, a.coef.Coefficient(model.SignalUpdateTimestamp)*updateTimestampScore(ds.NowUnix, c.LastUpdated))
	total = a.add(total, a.coef.Coefficient(model.SignalTrackerScore)*rankScore(c.TrackerScore))
	total = a.add(total, a.coef.Coefficient(model.SignalUrlDigits)*rankScore(c.NumPathAndQueryDigits))
	total = a.add(total, a.coef.Coefficient(model.SignalUrlSlashes)*rankScore(c.NumPathAndQuerySlashes))

	if c.IsHomepage {
		total = a.add(total, a.coef.Coefficient(model.SignalIsHomepage))
	}
	return total
}

// derivedSignals scores the signals computed by sibling packages and
// handed in on DocSignals: region, query centrality, inbound similarity.
func (a *Aggregator) derivedSignals(ds DocSignals) float64 {
	total := 0.0
	total = a.add(total, a.coef.Coefficient(model.SignalRegion)*ds.RegionScore)
	total = a.add(total, a.coef.Coefficient(model.SignalQueryCentrality)*ds.QueryCentrality)
	total = a.add(total, a.coef.Coefficient(model.SignalInboundSimilarity)*ds.InboundSimilarity)
	return total
}

// externalSignals scores signals set by an out-of-scope stage (snippet
// cross-encoder, title cross-encoder, LambdaMART). Their coefficients
// default to 0 (spec §4.5), so they contribute nothing unless an optic or
// linear-model override sets one.
func (a *Aggregator) externalSignals(ds DocSignals) float64 {
	total := 0.0
	total = a.add(total, a.coef.Coefficient(model.SignalCrossEncoderSnippet)*ds.ExternalScores.CrossEncoderSnippet)
	total = a.add(total, a.coef.Coefficient(model.SignalCrossEncoderTitle)*ds.ExternalScores.CrossEncoderTitle)
	total = a.add(total, a.coef.Coefficient(model.SignalLambdaMART)*ds.ExternalScores.LambdaMART)
	return total
}
