package signal

import (
	"math"

	"github.com/searchcore/engine/internal/constants"
)

// BM25 computes the standard Okapi BM25 score for one term occurrence
// (spec §4.5): k1=1.2, b=0.75 unless a signal states otherwise.
//
//   - termFreq: occurrences of the term in the field for this doc
//   - docFreq: number of docs containing the term, across the segment
//   - numDocs: total docs in the segment
//   - fieldLen: length (in tokens) of this field for this doc
//   - avgFieldLen: average length of this field across the segment
func BM25(termFreq, docFreq uint32, numDocs int, fieldLen, avgFieldLen float64) float64 {
	if termFreq == 0 || docFreq == 0 || numDocs == 0 || avgFieldLen == 0 {
		return 0
	}
	idf := math.Log(1.0 + (float64(numDocs)-float64(docFreq)+0.5)/(float64(docFreq)+0.5))
	tf := float64(termFreq)
	norm := 1.0 - constants.BM25B + constants.BM25B*(fieldLen/avgFieldLen)
	numerator := tf * (constants.BM25K1 + 1.0)
	denominator := tf + constants.BM25K1*norm
	return idf * (numerator / denominator)
}
