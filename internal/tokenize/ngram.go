package tokenize

import "strings"

// Bigrams joins adjacent token pairs with a single space, the same
// delimiter the teacher used when building ad hoc bigrams in scorer.go.
func Bigrams(words []string) []string {
	if len(words) < 2 {
		return nil
	}
	out := make([]string, 0, len(words)-1)
	for i := 0; i < len(words)-1; i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

// Trigrams joins adjacent token triples with a single space.
func Trigrams(words []string) []string {
	if len(words) < 3 {
		return nil
	}
	out := make([]string, 0, len(words)-2)
	for i := 0; i < len(words)-2; i++ {
		out = append(out, strings.Join(words[i:i+3], " "))
	}
	return out
}
