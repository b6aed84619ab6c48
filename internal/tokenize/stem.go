package tokenize

import "strings"

// Stemmer reduces a token to its stem. The query parser and planner pass
// tokenizer sets explicitly (Design Notes §9: no global tokenizer
// registry) rather than reaching for a package-level default.
type Stemmer interface {
	Stem(token string) string
}

// SuffixStemmer is a small, dependency-free suffix-stripping stemmer: good
// enough to fold "statistics"/"statistic" or "routers"/"router" together
// for the Stemmed{Title,CleanBody} fields without pulling in a full
// linguistic stemming library.
type SuffixStemmer struct{}

var suffixRules = []struct {
	suffix      string
	replacement string
	minStemLen  int
}{
	{"ies", "y", 2},
	{"sses", "ss", 2},
	{"es", "e", 2},
	{"s", "", 2},
	{"ing", "", 3},
	{"edly", "", 3},
	{"ed", "", 3},
	{"ly", "", 3},
}

// Stem applies the first matching suffix rule whose remaining stem is at
// least minStemLen runes long.
func (SuffixStemmer) Stem(token string) string {
	for _, rule := range suffixRules {
		if strings.HasSuffix(token, rule.suffix) {
			stem := strings.TrimSuffix(token, rule.suffix)
			if len(stem) >= rule.minStemLen {
				return stem + rule.replacement
			}
		}
	}
	return token
}

// StemAll stems every token with s, preserving order.
func StemAll(s Stemmer, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = s.Stem(t)
	}
	return out
}
