package model

// Signal names one member of the closed set of ranking signals (spec §4.5).
type Signal int

const (
	SignalBm25Title Signal = iota
	SignalBm25CleanBody
	SignalBm25AllBody
	SignalBm25Url
	SignalBm25Site
	SignalBm25Domain
	SignalBm25BacklinkText
	SignalBm25TitleBigrams
	SignalBm25TitleTrigrams
	SignalBm25CleanBodyBigrams
	SignalBm25CleanBodyTrigrams
	SignalBm25StemmedTitle
	SignalBm25StemmedCleanBody
	SignalBm25SiteNoTokenizer
	SignalBm25DomainNoTokenizer
	SignalBm25DomainIfHomepage

	SignalHostCentrality
	SignalHostCentralityRank
	SignalPageCentrality
	SignalPageCentralityRank
	SignalIsHomepage
	SignalLinkDensity
	SignalFetchTimeMs
	SignalUpdateTimestamp
	SignalTrackerScore
	SignalUrlDigits
	SignalUrlSlashes
	SignalRegion

	SignalQueryCentrality
	SignalInboundSimilarity

	SignalCrossEncoderSnippet
	SignalCrossEncoderTitle
	SignalLambdaMART

	signalCount
)

var signalNames = map[Signal]string{
	SignalBm25Title:             "Bm25Title",
	SignalBm25CleanBody:         "Bm25CleanBody",
	SignalBm25AllBody:           "Bm25AllBody",
	SignalBm25Url:               "Bm25Url",
	SignalBm25Site:              "Bm25Site",
	SignalBm25Domain:            "Bm25Domain",
	SignalBm25BacklinkText:      "Bm25BacklinkText",
	SignalBm25TitleBigrams:      "Bm25TitleBigrams",
	SignalBm25TitleTrigrams:     "Bm25TitleTrigrams",
	SignalBm25CleanBodyBigrams:  "Bm25CleanBodyBigrams",
	SignalBm25CleanBodyTrigrams: "Bm25CleanBodyTrigrams",
	SignalBm25StemmedTitle:      "Bm25StemmedTitle",
	SignalBm25StemmedCleanBody:  "Bm25StemmedCleanBody",
	SignalBm25SiteNoTokenizer:   "Bm25SiteNoTokenizer",
	SignalBm25DomainNoTokenizer: "Bm25DomainNoTokenizer",
	SignalBm25DomainIfHomepage:  "Bm25DomainIfHomepage",
	SignalHostCentrality:        "HostCentrality",
	SignalHostCentralityRank:    "HostCentralityRank",
	SignalPageCentrality:        "PageCentrality",
	SignalPageCentralityRank:    "PageCentralityRank",
	SignalIsHomepage:            "IsHomepage",
	SignalLinkDensity:           "LinkDensity",
	SignalFetchTimeMs:           "FetchTimeMs",
	SignalUpdateTimestamp:       "UpdateTimestamp",
	SignalTrackerScore:          "TrackerScore",
	SignalUrlDigits:             "UrlDigits",
	SignalUrlSlashes:            "UrlSlashes",
	SignalRegion:                "Region",
	SignalQueryCentrality:       "QueryCentrality",
	SignalInboundSimilarity:     "InboundSimilarity",
	SignalCrossEncoderSnippet:   "CrossEncoderSnippet",
	SignalCrossEncoderTitle:     "CrossEncoderTitle",
	SignalLambdaMART:            "LambdaMART",
}

var signalsByName = func() map[string]Signal {
	m := make(map[string]Signal, len(signalNames))
	for sig, name := range signalNames {
		m[name] = sig
	}
	return m
}()

// String returns the signal's canonical name.
func (s Signal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseSignal resolves a signal by its canonical name, as used by the optic
// `Ranking(Signal("name"), n)` statement.
func ParseSignal(name string) (Signal, bool) {
	s, ok := signalsByName[name]
	return s, ok
}

// AllSignals returns every signal in the closed set, in declaration order.
func AllSignals() []Signal {
	out := make([]Signal, 0, signalCount)
	for s := Signal(0); s < signalCount; s++ {
		out = append(out, s)
	}
	return out
}

// NgramFamily groups the n-gram/monogram signal variants for a base text
// field, ordered from largest n to smallest, for n-gram dampening
// (spec §4.5).
type NgramFamily struct {
	Trigram  Signal
	Bigram   Signal
	Monogram Signal
}

// NgramFamilies lists every base field that has monogram/bigram/trigram
// signal variants, in the order dampening should walk them.
func NgramFamilies() []NgramFamily {
	return []NgramFamily{
		{Trigram: SignalBm25TitleTrigrams, Bigram: SignalBm25TitleBigrams, Monogram: SignalBm25Title},
		{Trigram: SignalBm25CleanBodyTrigrams, Bigram: SignalBm25CleanBodyBigrams, Monogram: SignalBm25CleanBody},
	}
}
