package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchcore/engine/pkg/model"
)

func TestCollector_KeepsTopKByScore(t *testing.T) {
	c := New(2)
	c.Offer(Candidate{Score: 1, DocID: 1, SimHash: 0})
	c.Offer(Candidate{Score: 3, DocID: 2, SimHash: ^uint64(0)})
	c.Offer(Candidate{Score: 2, DocID: 3, SimHash: 0xFFFFFFFF})

	out := c.Drain(0, 0)
	require.Len(t, out, 2)
	assert.Equal(t, model.DocID(2), out[0].DocID)
	assert.Equal(t, model.DocID(3), out[1].DocID)
}

func TestCollector_TieBrokenByLowerDocID(t *testing.T) {
	c := New(2)
	c.Offer(Candidate{Score: 5, DocID: 10, SimHash: 0})
	c.Offer(Candidate{Score: 5, DocID: 2, SimHash: ^uint64(0)})

	out := c.Drain(0, 0)
	require.Len(t, out, 2)
	assert.Equal(t, model.DocID(2), out[0].DocID)
	assert.Equal(t, model.DocID(10), out[1].DocID)
}

func TestCollector_OffsetAndLimitPaginate(t *testing.T) {
	c := New(5)
	for i := 0; i < 5; i++ {
		c.Offer(Candidate{Score: float64(5 - i), DocID: model.DocID(i)})
	}
	out := c.Drain(1, 2)
	require.Len(t, out, 2)
	assert.Equal(t, model.DocID(1), out[0].DocID)
	assert.Equal(t, model.DocID(2), out[1].DocID)
}

func TestCollector_OffsetPastEndReturnsEmpty(t *testing.T) {
	c := New(3)
	c.Offer(Candidate{Score: 1, DocID: 1})
	assert.Empty(t, c.Drain(10, 5))
}

func TestCollector_NearDuplicateIsDownrankedNotDiscarded(t *testing.T) {
	c := New(2)
	c.Offer(Candidate{Score: 10, DocID: 1, SimHash: 0b0000})
	accepted := c.Offer(Candidate{Score: 10, DocID: 2, SimHash: 0b0001})

	require.True(t, accepted)
	out := c.Drain(0, 0)
	require.Len(t, out, 2)
	// the near-duplicate's score was penalized, so it now ranks second
	// despite having offered an equal raw score.
	assert.Equal(t, model.DocID(1), out[0].DocID)
	assert.Equal(t, model.DocID(2), out[1].DocID)
	assert.Less(t, out[1].Score, 10.0)
}

func TestCollector_DistinctSimHashesAreNotDownranked(t *testing.T) {
	c := New(2)
	c.Offer(Candidate{Score: 10, DocID: 1, SimHash: 0})
	c.Offer(Candidate{Score: 10, DocID: 2, SimHash: ^uint64(0)})

	out := c.Drain(0, 0)
	require.Len(t, out, 2)
	assert.InDelta(t, 10.0, out[0].Score, 0.0001)
	assert.InDelta(t, 10.0, out[1].Score, 0.0001)
}

func TestCollector_RejectsWhenWeakerThanFullHeap(t *testing.T) {
	c := New(1)
	c.Offer(Candidate{Score: 10, DocID: 1})
	accepted := c.Offer(Candidate{Score: 1, DocID: 2})
	assert.False(t, accepted)
	out := c.Drain(0, 0)
	require.Len(t, out, 1)
	assert.Equal(t, model.DocID(1), out[0].DocID)
}
