// Package signal computes the closed set of per-document ranking signals
// (spec §4.5) and combines them into a final score.
package signal

import "github.com/searchcore/engine/pkg/model"

// SignalCoefficients is the named per-signal weight struct that drives
// scoring, generalizing the teacher's ScoringConfig (same named-float64-
// fields shape, a new field per spec §4.5 signal).
type SignalCoefficients struct {
	Bm25Title             float64
	Bm25CleanBody         float64
	Bm25AllBody           float64
	Bm25Url               float64
	Bm25Site              float64
	Bm25Domain            float64
	Bm25BacklinkText      float64
	Bm25TitleBigrams      float64
	Bm25TitleTrigrams     float64
	Bm25CleanBodyBigrams  float64
	Bm25CleanBodyTrigrams float64
	Bm25StemmedTitle      float64
	Bm25StemmedCleanBody  float64
	Bm25SiteNoTokenizer   float64
	Bm25DomainNoTokenizer float64
	Bm25DomainIfHomepage  float64

	HostCentrality     float64
	HostCentralityRank float64
	PageCentrality     float64
	PageCentralityRank float64
	IsHomepage         float64
	LinkDensity        float64
	FetchTimeMs        float64
	UpdateTimestamp    float64
	TrackerScore       float64
	UrlDigits          float64
	UrlSlashes         float64
	Region             float64

	QueryCentrality   float64
	InboundSimilarity float64

	CrossEncoderSnippet float64
	CrossEncoderTitle   float64
	LambdaMART          float64
}

// DefaultSignalCoefficients returns the hard-coded default weights (spec
// §4.5: "per-signal default coefficients are hard-coded constants").
func DefaultSignalCoefficients() SignalCoefficients {
	return SignalCoefficients{
		Bm25Title:             4.0,
		Bm25CleanBody:         2.0,
		Bm25AllBody:           1.0,
		Bm25Url:               1.0,
		Bm25Site:               2.0,
		Bm25Domain:            2.0,
		Bm25BacklinkText:      1.5,
		Bm25TitleBigrams:      2.5,
		Bm25TitleTrigrams:     3.0,
		Bm25CleanBodyBigrams:  1.2,
		Bm25CleanBodyTrigrams: 1.5,
		Bm25StemmedTitle:      1.0,
		Bm25StemmedCleanBody:  0.5,
		Bm25SiteNoTokenizer:   3.0,
		Bm25DomainNoTokenizer: 3.0,
		Bm25DomainIfHomepage:  2.0,

		HostCentrality:     3000.0,
		HostCentralityRank: 500.0,
		PageCentrality:     4500.0,
		PageCentralityRank: 500.0,
		IsHomepage:         0.1,
		LinkDensity:        1.0,
		FetchTimeMs:        1.0,
		UpdateTimestamp:    300.0,
		TrackerScore:       1.0,
		UrlDigits:          1.0,
		UrlSlashes:         1.0,
		Region:             50.0,

		QueryCentrality:   3000.0,
		InboundSimilarity: 1000.0,

		CrossEncoderSnippet: 0,
		CrossEncoderTitle:   0,
		LambdaMART:          0,
	}
}

// Coefficient returns the weight for a single signal.
func (c SignalCoefficients) Coefficient(s model.Signal) float64 {
	switch s {
	case model.SignalBm25Title:
		return c.Bm25Title
	case model.SignalBm25CleanBody:
		return c.Bm25CleanBody
	case model.SignalBm25AllBody:
		return c.Bm25AllBody
	case model.SignalBm25Url:
		return c.Bm25Url
	case model.SignalBm25Site:
		return c.Bm25Site
	case model.SignalBm25Domain:
		return c.Bm25Domain
	case model.SignalBm25BacklinkText:
		return c.Bm25BacklinkText
	case model.SignalBm25TitleBigrams:
		return c.Bm25TitleBigrams
	case model.SignalBm25TitleTrigrams:
		return c.Bm25TitleTrigrams
	case model.SignalBm25CleanBodyBigrams:
		return c.Bm25CleanBodyBigrams
	case model.SignalBm25CleanBodyTrigrams:
		return c.Bm25CleanBodyTrigrams
	case model.SignalBm25StemmedTitle:
		return c.Bm25StemmedTitle
	case model.SignalBm25StemmedCleanBody:
		return c.Bm25StemmedCleanBody
	case model.SignalBm25SiteNoTokenizer:
		return c.Bm25SiteNoTokenizer
	case model.SignalBm25DomainNoTokenizer:
		return c.Bm25DomainNoTokenizer
	case model.SignalBm25DomainIfHomepage:
		return c.Bm25DomainIfHomepage
	case model.SignalHostCentrality:
		return c.HostCentrality
	case model.SignalHostCentralityRank:
		return c.HostCentralityRank
	case model.SignalPageCentrality:
		return c.PageCentrality
	case model.SignalPageCentralityRank:
		return c.PageCentralityRank
	case model.SignalIsHomepage:
		return c.IsHomepage
	case model.SignalLinkDensity:
		return c.LinkDensity
	case model.SignalFetchTimeMs:
		return c.FetchTimeMs
	case model.SignalUpdateTimestamp:
		return c.UpdateTimestamp
	case model.SignalTrackerScore:
		return c.TrackerScore
	case model.SignalUrlDigits:
		return c.UrlDigits
	case model.SignalUrlSlashes:
		return c.UrlSlashes
	case model.SignalRegion:
		return c.Region
	case model.SignalQueryCentrality:
		return c.QueryCentrality
	case model.SignalInboundSimilarity:
		return c.InboundSimilarity
	case model.SignalCrossEncoderSnippet:
		return c.CrossEncoderSnippet
	case model.SignalCrossEncoderTitle:
		return c.CrossEncoderTitle
	case model.SignalLambdaMART:
		return c.LambdaMART
	default:
		return 0
	}
}

// set assigns the weight for a single signal; used by WithOverrides.
func (c *SignalCoefficients) set(s model.Signal, v float64) {
	switch s {
	case model.SignalBm25Title:
		c.Bm25Title = v
	case model.SignalBm25CleanBody:
		c.Bm25CleanBody = v
	case model.SignalBm25AllBody:
		c.Bm25AllBody = v
	case model.SignalBm25Url:
		c.Bm25Url = v
	case model.SignalBm25Site:
		c.Bm25Site = v
	case model.SignalBm25Domain:
		c.Bm25Domain = v
	case model.SignalBm25BacklinkText:
		c.Bm25BacklinkText = v
	case model.SignalBm25TitleBigrams:
		c.Bm25TitleBigrams = v
	case model.SignalBm25TitleTrigrams:
		c.Bm25TitleTrigrams = v
	case model.SignalBm25CleanBodyBigrams:
		c.Bm25CleanBodyBigrams = v
	case model.SignalBm25CleanBodyTrigrams:
		c.Bm25CleanBodyTrigrams = v
	case model.SignalBm25StemmedTitle:
		c.Bm25StemmedTitle = v
	case model.SignalBm25StemmedCleanBody:
		c.Bm25StemmedCleanBody = v
	case model.SignalBm25SiteNoTokenizer:
		c.Bm25SiteNoTokenizer = v
	case model.SignalBm25DomainNoTokenizer:
		c.Bm25DomainNoTokenizer = v
	case model.SignalBm25DomainIfHomepage:
		c.Bm25DomainIfHomepage = v
	case model.SignalHostCentrality:
		c.HostCentrality = v
	case model.SignalHostCentralityRank:
		c.HostCentralityRank = v
	case model.SignalPageCentrality:
		c.PageCentrality = v
	case model.SignalPageCentralityRank:
		c.PageCentralityRank = v
	case model.SignalIsHomepage:
		c.IsHomepage = v
	case model.SignalLinkDensity:
		c.LinkDensity = v
	case model.SignalFetchTimeMs:
		c.FetchTimeMs = v
	case model.SignalUpdateTimestamp:
		c.UpdateTimestamp = v
	case model.SignalTrackerScore:
		c.TrackerScore = v
	case model.SignalUrlDigits:
		c.UrlDigits = v
	case model.SignalUrlSlashes:
		c.UrlSlashes = v
	case model.SignalRegion:
		c.Region = v
	case model.SignalQueryCentrality:
		c.QueryCentrality = v
	case model.SignalInboundSimilarity:
		c.InboundSimilarity = v
	case model.SignalCrossEncoderSnippet:
		c.CrossEncoderSnippet = v
	case model.SignalCrossEncoderTitle:
		c.CrossEncoderTitle = v
	case model.SignalLambdaMART:
		c.LambdaMART = v
	}
}

// WithOverrides returns a copy of c with linearModel applied first and
// optic applied second, so an optic override always wins over a linear
// model override over the default (spec §4.5: "an optic may override any
// of them; a linear-regression model may also override (optic wins if
// both)").
func (c SignalCoefficients) WithOverrides(linearModel, optic map[model.Signal]float64) SignalCoefficients {
	out := c
	for s, v := range linearModel {
		out.set(s, v)
	}
	for s, v := range optic {
		out.set(s, v)
	}
	return out
}
