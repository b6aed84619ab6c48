// Package collector implements the bounded top-k min-heap spec §4.6
// describes: a fixed-capacity heap of (final_score, segment_id, doc_id),
// with de-rank suppression for near-duplicates and offset-aware draining.
//
// This generalizes the teacher's hand-rolled "keep top N, replace worst,
// re-sort" loop in internal/search/full_search.go's findTopCandidates into
// a container/heap-backed structure with the same intent: bound a running
// top-N during a single full scan.
package collector

import (
	"container/heap"
	"math/bits"

	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/pkg/model"
)

// Candidate is one scored document awaiting insertion into a Collector.
type Candidate struct {
	Score     float64
	SegmentID uint32
	DocID     model.DocID
	SimHash   uint64
}

// Collector is a fixed-capacity min-heap over Candidate, keeping the
// capacity highest-scoring candidates seen so far (spec §4.6).
type Collector struct {
	capacity int
	items    candidateHeap
	accepted []uint64 // SimHash of every candidate ever inserted, for de-rank lookups
}

// New returns a Collector bounded to capacity candidates.
func New(capacity int) *Collector {
	return &Collector{capacity: capacity}
}

// Offer inserts a candidate, de-ranking it first if it is a near-duplicate
// (by SimHash Hamming distance) of an already-accepted candidate (spec
// §4.6: "downrank its score by a fixed penalty before insertion; does not
// discard"). Returns true if the candidate made it into the heap.
func (c *Collector) Offer(cand Candidate) bool {
	if c.isNearDuplicate(cand.SimHash) {
		cand.Score *= constants.SimHashDerankPenalty
	}

	if c.capacity <= 0 {
		return false
	}
	if len(c.items) < c.capacity {
		heap.Push(&c.items, cand)
		c.accepted = append(c.accepted, cand.SimHash)
		return true
	}
	if less(c.items[0], cand) {
		c.items[0] = cand
		heap.Fix(&c.items, 0)
		c.accepted = append(c.accepted, cand.SimHash)
		return true
	}
	return false
}

// isNearDuplicate reports whether cand's SimHash is within
// constants.SimHashDerankThreshold bits of any previously accepted
// candidate.
func (c *Collector) isNearDuplicate(sim uint64) bool {
	for _, prior := range c.accepted {
		if bits.OnesCount64(prior^sim) < constants.SimHashDerankThreshold {
			return true
		}
	}
	return false
}

// Drain returns the collected candidates sorted descending by
// (score, -segment_id, -doc_id) (spec §4.6), applying offset/limit pagination. offset
// and limit are both measured in already-sorted result order; a limit of 0
// means "no limit beyond capacity".
func (c *Collector) Drain(offset, limit int) []Candidate {
	sorted := make([]Candidate, len(c.items))
	copy(sorted, c.items)
	sortDescending(sorted)

	if offset >= len(sorted) {
		return nil
	}
	sorted = sorted[offset:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// Len reports how many candidates are currently held (pre-drain, pre-offset).
func (c *Collector) Len() int {
	return len(c.items)
}

// sortDescending orders by score descending, ties broken by lower segment
// id and then by lower doc id (spec §4.6: "ties broken by lower doc id").
func sortDescending(items []Candidate) {
	// insertion sort: collector capacities are small (tens to low hundreds)
	// and this runs once per segment merge, not per candidate.
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && less(items[j-1], items[j]) {
			items[j-1], items[j] = items[j], items[j-1]
			j--
		}
	}
}

// less reports whether a ranks below b in the
// descending-by-(score,-segmentID,-docID) order: a should come after b.
func less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.SegmentID != b.SegmentID {
		return a.SegmentID > b.SegmentID
	}
	return a.DocID > b.DocID
}

// candidateHeap is a container/heap min-heap ordered so the weakest
// candidate (by the descending final order) sits at the root and is the
// first one evicted.
type candidateHeap []Candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(Candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
