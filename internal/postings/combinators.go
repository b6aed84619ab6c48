package postings

import "github.com/searchcore/engine/pkg/model"

// Intersection advances all children in lock-step using the classic
// leap-frog algorithm: the first child proposes a candidate doc, every
// other child seeks to it, and whenever one lands past it the first child
// seeks forward to that doc; this repeats until all children agree.
// Grounded loosely on the golucene posting readers' skip-free linear
// advance shape (other_examples), adapted to children expressed through
// model.PostingList rather than the Lucene on-disk term-dictionary format.
type Intersection struct {
	children []model.PostingList
	current  model.DocID
}

// NewIntersection builds a Must (AND) combinator over children. An empty
// children slice yields an iterator that is immediately exhausted.
func NewIntersection(children []model.PostingList) *Intersection {
	return &Intersection{children: children, current: model.NoDoc}
}

func (it *Intersection) Doc() model.DocID { return it.current }

func (it *Intersection) Advance() model.DocID {
	if len(it.children) == 0 {
		it.current = model.NoDoc
		return it.current
	}
	// Start the walk from one past wherever we are, by advancing the
	// first child and then leap-frogging.
	target := it.children[0].Advance()
	return it.settle(target)
}

func (it *Intersection) Seek(target model.DocID) model.DocID {
	if len(it.children) == 0 {
		it.current = model.NoDoc
		return it.current
	}
	target = it.children[0].Seek(target)
	return it.settle(target)
}

// settle leap-frogs every child to target until either all agree (a
// match) or one child is exhausted (no more matches possible).
func (it *Intersection) settle(target model.DocID) model.DocID {
	for {
		if target == model.NoDoc {
			it.current = model.NoDoc
			return it.current
		}
		agree := true
		for i := 1; i < len(it.children); i++ {
			d := it.children[i].Seek(target)
			if d == model.NoDoc {
				it.current = model.NoDoc
				return it.current
			}
			if d != target {
				target = it.children[0].Seek(d)
				agree = false
				break
			}
		}
		if agree {
			it.current = target
			return it.current
		}
	}
}

// TermFreq sums child term frequencies at the current doc (used by BM25
// over an intersection, e.g. implicit AND of query terms).
func (it *Intersection) TermFreq() uint32 {
	var sum uint32
	for _, c := range it.children {
		sum += c.TermFreq()
	}
	return sum
}

var _ model.PostingList = (*Intersection)(nil)

// Union advances to the smallest current doc among its children (an OR /
// Should combinator), skipping duplicates.
type Union struct {
	children []model.PostingList
	started  []bool
	current  model.DocID
}

func NewUnion(children []model.PostingList) *Union {
	return &Union{children: children, started: make([]bool, len(children)), current: model.NoDoc}
}

func (it *Union) Doc() model.DocID { return it.current }

func (it *Union) Advance() model.DocID {
	min := model.NoDoc
	for i, c := range it.children {
		var d model.DocID
		if !it.started[i] {
			d = c.Advance()
			it.started[i] = true
		} else if c.Doc() == it.current {
			d = c.Advance()
		} else {
			d = c.Doc()
		}
		if d != model.NoDoc && (min == model.NoDoc || d < min) {
			min = d
		}
	}
	it.current = min
	return it.current
}

func (it *Union) Seek(target model.DocID) model.DocID {
	min := model.NoDoc
	for i, c := range it.children {
		d := c.Seek(target)
		it.started[i] = true
		if d != model.NoDoc && (min == model.NoDoc || d < min) {
			min = d
		}
	}
	it.current = min
	return it.current
}

// TermFreq sums the term frequency of every child currently sitting on
// the matched doc (Should semantics: only contributing children count).
func (it *Union) TermFreq() uint32 {
	var sum uint32
	for _, c := range it.children {
		if c.Doc() == it.current {
			sum += c.TermFreq()
		}
	}
	return sum
}

var _ model.PostingList = (*Union)(nil)

// ConstQuery wraps an inner iterator and flags that its contribution
// should be scored as a fixed constant rather than via BM25. The searcher
// wraps each field's postings of a simple query term in one, so the
// boolean match carries no score of its own; BM25 is computed separately.
type ConstQuery struct {
	inner model.PostingList
	Score float64
}

func NewConstQuery(inner model.PostingList, score float64) *ConstQuery {
	return &ConstQuery{inner: inner, Score: score}
}

func (c *ConstQuery) Doc() model.DocID          { return c.inner.Doc() }
func (c *ConstQuery) Advance() model.DocID      { return c.inner.Advance() }
func (c *ConstQuery) Seek(t model.DocID) model.DocID { return c.inner.Seek(t) }
func (c *ConstQuery) TermFreq() uint32          { return c.inner.TermFreq() }

var _ model.PostingList = (*ConstQuery)(nil)

// ShortCircuit caps the number of docs an inner iterator will yield
// before reporting exhaustion, bounding work for queries whose Must
// clauses are cheap to over-satisfy (spec §4.4 / §7 budget handling).
type ShortCircuit struct {
	inner   model.PostingList
	limit   int
	yielded int
}

func NewShortCircuit(inner model.PostingList, limit int) *ShortCircuit {
	return &ShortCircuit{inner: inner, limit: limit}
}

func (s *ShortCircuit) Doc() model.DocID {
	if s.yielded > s.limit {
		return model.NoDoc
	}
	return s.inner.Doc()
}

func (s *ShortCircuit) Advance() model.DocID {
	if s.yielded > s.limit {
		return model.NoDoc
	}
	s.yielded++
	if s.yielded > s.limit {
		return model.NoDoc
	}
	return s.inner.Advance()
}

func (s *ShortCircuit) Seek(target model.DocID) model.DocID {
	if s.yielded > s.limit {
		return model.NoDoc
	}
	d := s.inner.Seek(target)
	if d == model.NoDoc {
		s.yielded = s.limit + 1
	}
	return d
}

func (s *ShortCircuit) TermFreq() uint32 { return s.inner.TermFreq() }

var _ model.PostingList = (*ShortCircuit)(nil)
