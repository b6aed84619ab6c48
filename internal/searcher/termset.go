package searcher

import (
	"github.com/searchcore/engine/internal/tokenize"
	"github.com/searchcore/engine/pkg/model"
)

var stemmer = tokenize.SuffixStemmer{}

// termSet derives every n-gram/stemmed variant of a query's monogram terms
// once per query, so each segment worker scores BM25 signals without
// re-deriving bigrams/trigrams/stems per candidate document (spec §4.5's
// n-gram family signals).
type termSet struct {
	monogram []string
	bigram   []string
	trigram  []string
	stemmed  []string
}

func buildTermSet(words []string) termSet {
	return termSet{
		monogram: words,
		bigram:   tokenize.Bigrams(words),
		trigram:  tokenize.Trigrams(words),
		stemmed:  tokenize.StemAll(stemmer, words),
	}
}

// bm25Fields lists every text field the aggregator scores a BM25 signal
// against (spec §4.5).
var bm25Fields = []model.TextField{
	model.FieldTitle, model.FieldCleanBody, model.FieldAllBody,
	model.FieldUrl, model.FieldSite, model.FieldDomain, model.FieldBacklinkText,
	model.FieldTitleBigrams, model.FieldTitleTrigrams,
	model.FieldCleanBodyBigrams, model.FieldCleanBodyTrigrams,
	model.FieldStemmedTitle, model.FieldStemmedCleanBody,
	model.FieldSiteNoTokenizer, model.FieldDomainNoTokenizer, model.FieldDomainIfHomepage,
}

// termsFor returns the query term variant matching field's tokenizer
// family, so a bigram field is scored against the query's bigrams rather
// than its raw monogram terms.
func (ts termSet) termsFor(field model.TextField) []string {
	switch field {
	case model.FieldTitleBigrams, model.FieldCleanBodyBigrams:
		return ts.bigram
	case model.FieldTitleTrigrams, model.FieldCleanBodyTrigrams:
		return ts.trigram
	case model.FieldStemmedTitle, model.FieldStemmedCleanBody:
		return ts.stemmed
	default:
		return ts.monogram
	}
}
