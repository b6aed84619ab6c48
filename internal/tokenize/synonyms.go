package tokenize

// synonyms generalizes the teacher's ExpandSynonyms map away from its
// telemetry vocabulary (interface/bgp/alarm misspellings) to common web
// query variants: plural/singular folding and a handful of frequent
// misspellings, so a query like "photoz of paris" still reaches the same
// postings as "photo of paris".
//
//nolint:misspell // intentionally includes common misspellings for expansion
var synonyms = map[string]string{
	"photos":     "photo",
	"pics":       "photo",
	"pictures":   "photo",
	"vids":       "video",
	"videos":     "video",
	"docs":       "document",
	"documents":  "document",
	"recieve":    "receive",
	"recieved":   "received",
	"definately": "definitely",
	"seperate":   "separate",
	"occured":    "occurred",
	"wich":       "which",
	"thier":      "their",
	"teh":        "the",
	"recipies":   "recipe",
	"recipe":     "recipe",
	"recipes":    "recipe",
	"reviews":    "review",
	"tutorials":  "tutorial",
	"howto":      "tutorial",
}

// ExpandSynonyms maps each word to its canonical synonym when one is known,
// leaving unrecognized words untouched — same shape as the teacher's
// ExpandSynonyms, new vocabulary.
func ExpandSynonyms(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if s, ok := synonyms[w]; ok {
			out = append(out, s)
		} else {
			out = append(out, w)
		}
	}
	return out
}
