package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchcore/engine/pkg/model"
)

type fakeStore map[model.HostNodeID]BitSet

func (f fakeStore) Inbound(h model.HostNodeID) (BitSet, bool) {
	bs, ok := f[h]
	return bs, ok
}

func bs(bits ...uint64) BitSet {
	b := NewBitSet(128)
	for _, i := range bits {
		b.Set(i)
	}
	return b
}

func TestJaccard_IdenticalSetsIsOne(t *testing.T) {
	a := bs(1, 2, 3)
	assert.InDelta(t, 1.0, Jaccard(a, a), 0.0001)
}

func TestJaccard_DisjointSetsIsZero(t *testing.T) {
	a := bs(1, 2)
	b := bs(3, 4)
	assert.InDelta(t, 0.0, Jaccard(a, b), 0.0001)
}

func TestJaccard_PartialOverlap(t *testing.T) {
	a := bs(1, 2, 3)
	b := bs(2, 3, 4)
	// intersection {2,3}=2, union {1,2,3,4}=4
	assert.InDelta(t, 0.5, Jaccard(a, b), 0.0001)
}

func TestJaccard_BothEmptyIsZero(t *testing.T) {
	a := NewBitSet(64)
	b := NewBitSet(64)
	assert.Equal(t, 0.0, Jaccard(a, b))
}

func TestScorer_EmptyPreferenceVectorAlwaysZero(t *testing.T) {
	store := fakeStore{1: bs(1, 2)}
	s := NewScorer(store, nil, nil)
	assert.Equal(t, 0.0, s.Score(1))
}

func TestScorer_LikedOverlapProducesPositiveScore(t *testing.T) {
	store := fakeStore{
		10: bs(1, 2, 3), // liked host's inbound set
		20: bs(1, 2, 3), // candidate with identical inbound set
	}
	s := NewScorer(store, []model.HostNodeID{10}, nil)
	score := s.Score(20)
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScorer_DislikedOverlapReducesScore(t *testing.T) {
	store := fakeStore{
		10: bs(1, 2, 3),
		11: bs(1, 2, 3),
		20: bs(1, 2, 3),
	}
	withoutDislike := NewScorer(store, []model.HostNodeID{10}, nil)
	withDislike := NewScorer(store, []model.HostNodeID{10}, []model.HostNodeID{11})

	assert.Greater(t, withoutDislike.Score(20), withDislike.Score(20))
}

func TestScorer_UnknownHostScoresZero(t *testing.T) {
	store := fakeStore{10: bs(1)}
	s := NewScorer(store, []model.HostNodeID{10}, nil)
	assert.Equal(t, 0.0, s.Score(999))
}

func TestScorer_CloneSharesPreferencesFreshCache(t *testing.T) {
	store := fakeStore{10: bs(1, 2), 20: bs(1, 2)}
	s := NewScorer(store, []model.HostNodeID{10}, nil)
	clone := s.Clone()

	require.NotSame(t, s.cache, clone.cache)
	assert.Equal(t, s.Score(20), clone.Score(20))
}
