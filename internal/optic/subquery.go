package optic

import (
	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/internal/query"
	"github.com/searchcore/engine/pkg/model"
)

// LeafResolver turns a leaf's field/pattern spec into a posting iterator
// against one segment. internal/searcher supplies this, since only it
// holds the model.Reader.
type LeafResolver func(query.Leaf) (model.PostingList, error)

// BuildSubQuery builds the posting iterator for one contribution's
// SubQuery: an outer Union of inner Intersections, exactly the "inner AND,
// outer OR" shape of spec §4.2.
func BuildSubQuery(c Contribution, resolve LeafResolver) (model.PostingList, error) {
	var clauseIters []model.PostingList
	for _, clause := range c.Clauses {
		var leafIters []model.PostingList
		for _, leaf := range clause {
			it, err := resolve(leaf)
			if err != nil {
				return nil, err
			}
			leafIters = append(leafIters, it)
		}
		switch len(leafIters) {
		case 0:
			continue
		case 1:
			clauseIters = append(clauseIters, leafIters[0])
		default:
			clauseIters = append(clauseIters, postings.NewIntersection(leafIters))
		}
	}
	switch len(clauseIters) {
	case 0:
		return postings.NewUnion(nil), nil
	case 1:
		return clauseIters[0], nil
	default:
		return postings.NewUnion(clauseIters), nil
	}
}

// Discards returns the Discard contributions (Occur == MustNot).
func (c Compiled) Discards() []Contribution {
	var out []Contribution
	for _, contrib := range c.Contributions {
		if contrib.Occur == query.OccurMustNot {
			out = append(out, contrib)
		}
	}
	return out
}

// NonDiscards returns the Boost/Downrank contributions (Occur == Should).
func (c Compiled) NonDiscards() []Contribution {
	var out []Contribution
	for _, contrib := range c.Contributions {
		if contrib.Occur == query.OccurShould {
			out = append(out, contrib)
		}
	}
	return out
}

// BuildDiscardNonMatchingGate builds the Must(Union(...)) gate of spec
// §4.2's step 4: a document must match at least one non-Discard rule's
// SubQuery to survive, when DiscardNonMatching is set. Returns nil if
// DiscardNonMatching is false. With no non-Discard rules it returns an
// empty Union (an optic with DiscardNonMatching and only Discard rules
// yields an always-empty gate per spec §8's testable property).
func (c Compiled) BuildDiscardNonMatchingGate(resolve LeafResolver) (model.PostingList, error) {
	if !c.DiscardNonMatching {
		return nil, nil
	}
	nonDiscards := c.NonDiscards()
	if len(nonDiscards) == 0 {
		return postings.NewUnion(nil), nil
	}
	var subQueries []model.PostingList
	for _, contrib := range nonDiscards {
		sub, err := BuildSubQuery(contrib, resolve)
		if err != nil {
			return nil, err
		}
		subQueries = append(subQueries, sub)
	}
	return postings.NewUnion(subQueries), nil
}
