// Package constants defines scoring weights and operational thresholds used
// throughout the query, optic, and ranking pipeline.
package constants

import "time"

// BM25 defaults (spec: "standard BM25 with k1=1.2, b=0.75 unless stated").
const (
	BM25K1 = 1.2
	BM25B  = 0.75
)

// NGRAM_DAMPENING is the multiplicative dampening applied to the
// coefficients of smaller-n signals within a base field once a larger-n
// signal has scored positively. Not pinned by any external contract;
// adopted from the observed source and kept configurable.
const NgramDampening = 0.4

// Fixed-point scale for stored centrality values: floor(x * Scale).
const CentralityScale = 1 << 24

// HostNodeIDUnknown is the sentinel for "no host node id assigned".
const HostNodeIDUnknown uint64 = 1<<64 - 1

// MaxResults bounds the number of results a single search can request.
const MaxResults = 100

// DefaultNumResults is used when SearchQuery.NumResults is zero.
const DefaultNumResults = 10

// MaxNgramLookupTerms truncates a query at this many ngram-lookup terms to
// bound planning and execution cost (spec §4.1).
const MaxNgramLookupTerms = 16

// SimHashDerankThreshold is the Hamming-distance (in bits) below which a
// candidate is considered a near-duplicate of an already accepted result
// and is downranked rather than discarded. Not pinned by any external
// contract; adopted from the observed source and kept configurable.
const SimHashDerankThreshold = 3

// SimHashDerankPenalty is the multiplicative penalty applied to a
// near-duplicate candidate's score before insertion into the collector.
const SimHashDerankPenalty = 0.1

// InboundSimilarityAlpha weights the disliked-host term in the inbound
// similarity formula (spec §4.7).
const InboundSimilarityAlpha = 1.0

// CancellationCheckDivisor: a search worker checks the shared cancellation
// flag every MaxDocsConsidered/CancellationCheckDivisor candidates.
const CancellationCheckDivisor = 64

// DefaultSearchDeadline bounds a single search's wall-clock budget absent an
// explicit deadline on the context.
const DefaultSearchDeadline = 2 * time.Second

// RobotsMaxInputBytes caps robots.txt input per RFC 9309 tolerant parsing
// (spec §4.8).
const RobotsMaxInputBytes = 512 * 1024

// SchemaTypePrefix anchors the JSON-LD type path when matching an optic
// Schema(...) pattern against FlattenedSchemaOrgJson: the first raw token
// of the pattern is prefixed with this marker so "Type/sub.property"
// entries can't be confused with a plain property-name token (spec §4.2).
const SchemaTypePrefix = "TYPE_PREFIX:"
