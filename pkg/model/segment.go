package model

// PostingList is the per (field, term) posting iterator contract
// implemented by internal/postings (spec §4.4, §6).
type PostingList interface {
	// Doc returns the current doc, or NoDoc at exhaustion.
	Doc() DocID
	// Advance moves to the next doc, returning it (or NoDoc).
	Advance() DocID
	// Seek returns the smallest doc >= target (or NoDoc).
	Seek(target DocID) DocID
	// TermFreq returns the term frequency at the current doc.
	TermFreq() uint32
}

// Reader is the abstract, read-only backing store a segment exposes to the
// query executor and signal aggregator (spec §6): iterate fields, open
// postings for a term, random-access column values and field norms by doc
// id. Any backend satisfying this contract is acceptable.
type Reader interface {
	// Fields lists the text fields this segment indexes.
	Fields() []TextField
	// Postings opens an iterator over (field, term); ok is false when the
	// term is absent from the field's dictionary.
	Postings(field TextField, term string) (PostingList, bool, error)
	// Column returns the fixed-width fast fields for a doc id.
	Column(doc DocID) (Columns, error)
	// FieldNorm returns the field-norm length code used by BM25.
	FieldNorm(doc DocID, field TextField) (uint32, error)
	// Doc returns the full document, including text fields, for a doc id.
	Doc(doc DocID) (*Document, error)
	// NumDocs returns the number of documents in the segment.
	NumDocs() int
	// SegmentID identifies the segment for result ordering and warnings.
	SegmentID() uint32
}
