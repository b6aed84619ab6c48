package similarity

import (
	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/pkg/model"
)

// defaultCacheCapacity bounds a Scorer's per-query inbound(·) LRU.
const defaultCacheCapacity = 4096

// Store is the shared, read-only backing for inbound(h) lookups. A single
// Store is shared by every concurrent query (spec §5: "shared read-only").
type Store interface {
	Inbound(h model.HostNodeID) (BitSet, bool)
}

// Scorer computes sim(P, h) for a fixed preference vector P against
// candidate hosts h (spec §4.7). It is cloneable: Clone shares the
// underlying Store and precomputed preference bit-vectors but gets its own
// LRU cache, matching the teacher's per-query clone-on-use pattern for
// shared scoring state.
type Scorer struct {
	store    Store
	liked    []BitSet
	disliked []BitSet
	empty    bool
	cache    *lruCache
}

// NewScorer builds a Scorer for the preference vector (liked, disliked).
// Each host's inbound(·) is resolved once up front; hosts absent from the
// store are skipped. An empty preference vector (spec: "precomputed when P
// is empty, default = 0") short-circuits Score to always return 0.
func NewScorer(store Store, liked, disliked []model.HostNodeID) *Scorer {
	s := &Scorer{
		store: store,
		empty: len(liked) == 0 && len(disliked) == 0,
		cache: newLRUCache(defaultCacheCapacity),
	}
	for _, u := range liked {
		if bs, ok := store.Inbound(u); ok {
			s.liked = append(s.liked, bs)
		}
	}
	for _, u := range disliked {
		if bs, ok := store.Inbound(u); ok {
			s.disliked = append(s.disliked, bs)
		}
	}
	return s
}

// Clone returns a Scorer over the same preference vector and Store, with a
// fresh, empty LRU cache.
func (s *Scorer) Clone() *Scorer {
	return &Scorer{
		store:    s.store,
		liked:    s.liked,
		disliked: s.disliked,
		empty:    s.empty,
		cache:    newLRUCache(defaultCacheCapacity),
	}
}

// Score computes sim(P, h), normalized to [0, 1] (spec §4.7).
func (s *Scorer) Score(h model.HostNodeID) float64 {
	if s.empty {
		return 0
	}
	inboundH, ok := s.inbound(h)
	if !ok {
		return 0
	}

	x := 0.0
	for _, u := range s.liked {
		x += Jaccard(u, inboundH)
	}
	for _, u := range s.disliked {
		x -= constants.InboundSimilarityAlpha * Jaccard(u, inboundH)
	}

	norm := x / (x + 1)
	switch {
	case norm < 0:
		return 0
	case norm > 1:
		return 1
	default:
		return norm
	}
}

func (s *Scorer) inbound(h model.HostNodeID) (BitSet, bool) {
	key := uint64(h)
	if bs, ok := s.cache.get(key); ok {
		return bs, true
	}
	bs, ok := s.store.Inbound(h)
	if !ok {
		return nil, false
	}
	s.cache.put(key, bs)
	return bs, true
}
