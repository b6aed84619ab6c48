// Package region assigns and scores the Region column signal (spec §4.5's
// Region row): score_region(r, q) = (r == q ? 50.0 : 0.0) +
// region_count.score(r), where region_count.score is a log-scaled relative
// frequency learned per index generation.
package region

import (
	"math"

	"github.com/searchcore/engine/pkg/model"
)

// exactMatchBonus is the flat bonus when a document's region matches the
// query's selected region exactly (spec §4.5).
const exactMatchBonus = 50.0

// Counts holds the per-region document counts for one index generation,
// used to log-scale a region's relative frequency (spec: "learned per
// index generation").
type Counts struct {
	perRegion map[model.Region]uint64
	total     uint64
}

// NewCounts builds a Counts table from raw per-region document counts.
func NewCounts(perRegion map[model.Region]uint64) *Counts {
	c := &Counts{perRegion: make(map[model.Region]uint64, len(perRegion))}
	for r, n := range perRegion {
		c.perRegion[r] = n
		c.total += n
	}
	return c
}

// Score returns region_count.score(r): a log-scaled relative frequency in
// [0, log2(2)] growing with how common r is in the index, 0 for an unknown
// or the no-region sentinel.
func (c *Counts) Score(r model.Region) float64 {
	if r == model.NoRegion || c == nil || c.total == 0 {
		return 0
	}
	n, ok := c.perRegion[r]
	if !ok || n == 0 {
		return 0
	}
	return math.Log2(1.0 + float64(n)/float64(c.total))
}

// ScoreRegion implements score_region(r, q) exactly (spec §4.5, §4.5
// Region row).
func ScoreRegion(docRegion model.Region, queryRegion *model.Region, counts *Counts) float64 {
	score := counts.Score(docRegion)
	if queryRegion != nil && docRegion == *queryRegion {
		score += exactMatchBonus
	}
	return score
}
