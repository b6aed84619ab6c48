// Package model defines the data types shared across the query, optic, and
// ranking pipeline: documents, segments, queries, optics, and results.
package model

import "github.com/searchcore/engine/internal/constants"

// DocID is a segment-local 32-bit document ordinal.
type DocID uint32

// NoDoc is the sentinel doc id returned by exhausted iterators.
const NoDoc DocID = 1<<32 - 1

// HostNodeID is a stable 64-bit id for a host, assigned by the (external)
// webgraph builder. constants.HostNodeIDUnknown marks "unknown host".
type HostNodeID uint64

// Region is an opaque region identifier assigned to a document.
type Region uint32

// NoRegion marks a document with no assigned region.
const NoRegion Region = 0

// TextField names every text field a document carries, including stemmed,
// n-gram, and if-homepage variants (spec §3).
type TextField int

const (
	FieldTitle TextField = iota
	FieldCleanBody
	FieldAllBody
	FieldUrl
	FieldSite
	FieldDomain
	FieldDescription
	FieldDmozDescription
	FieldBacklinkText
	FieldFlattenedSchemaOrgJson
	FieldMicroformatTags

	// UrlForSiteOperator is a path-aware tokenization of Url used
	// specifically by the site: operator and Site matching location
	// (spec §4.1, §4.2).
	FieldUrlForSiteOperator

	// Stemmed variants.
	FieldStemmedTitle
	FieldStemmedCleanBody

	// N-gram variants, by base field.
	FieldTitleBigrams
	FieldTitleTrigrams
	FieldCleanBodyBigrams
	FieldCleanBodyTrigrams

	// Whole-string (no tokenizer) variants.
	FieldSiteNoTokenizer
	FieldDomainNoTokenizer

	// If-homepage variants: populated only when IsHomepage == 1.
	FieldDomainIfHomepage
)

// String names the field for logging and error messages.
func (f TextField) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldCleanBody:
		return "CleanBody"
	case FieldAllBody:
		return "AllBody"
	case FieldUrl:
		return "Url"
	case FieldSite:
		return "Site"
	case FieldDomain:
		return "Domain"
	case FieldDescription:
		return "Description"
	case FieldDmozDescription:
		return "DmozDescription"
	case FieldBacklinkText:
		return "BacklinkText"
	case FieldFlattenedSchemaOrgJson:
		return "FlattenedSchemaOrgJson"
	case FieldMicroformatTags:
		return "MicroformatTags"
	case FieldUrlForSiteOperator:
		return "UrlForSiteOperator"
	case FieldStemmedTitle:
		return "StemmedTitle"
	case FieldStemmedCleanBody:
		return "StemmedCleanBody"
	case FieldTitleBigrams:
		return "TitleBigrams"
	case FieldTitleTrigrams:
		return "TitleTrigrams"
	case FieldCleanBodyBigrams:
		return "CleanBodyBigrams"
	case FieldCleanBodyTrigrams:
		return "CleanBodyTrigrams"
	case FieldSiteNoTokenizer:
		return "SiteNoTokenizer"
	case FieldDomainNoTokenizer:
		return "DomainNoTokenizer"
	case FieldDomainIfHomepage:
		return "DomainIfHomepage"
	default:
		return "Unknown"
	}
}

// Columns holds the fixed-width "fast fields" every indexed document carries
// (spec §3 invariant: all column fields are present).
type Columns struct {
	HostCentrality     uint64 // fixed-point floor(x * constants.CentralityScale)
	HostCentralityRank uint32
	PageCentrality     uint64
	PageCentralityRank uint32
	FetchTimeMs        uint32
	LastUpdated        int64 // unix seconds
	TrackerScore       uint32
	Region             Region
	IsHomepage         bool
	LinkDensity        uint64 // fixed-point floor(x * constants.CentralityScale)

	NumPathAndQuerySlashes uint32
	NumPathAndQueryDigits  uint32
	HostNodeID             HostNodeID

	NumUrlTokens         uint32
	NumTitleTokens       uint32
	NumCleanBodyTokens   uint32
	NumDescriptionTokens uint32

	SiteHash   uint64
	UrlHash    uint64
	DomainHash uint64
	TitleHash  uint64
	SimHash    uint64
}

// HostCentralityF returns the fixed-point HostCentrality as a float in
// [0, 1].
func (c Columns) HostCentralityF() float64 {
	return float64(c.HostCentrality) / float64(constants.CentralityScale)
}

// PageCentralityF returns the fixed-point PageCentrality as a float in
// [0, 1].
func (c Columns) PageCentralityF() float64 {
	return float64(c.PageCentrality) / float64(constants.CentralityScale)
}

// LinkDensityF returns the fixed-point LinkDensity as a float in [0, 1].
func (c Columns) LinkDensityF() float64 {
	return float64(c.LinkDensity) / float64(constants.CentralityScale)
}

// Document is an immutable, segment-local indexed web page. Text fields may
// be empty; column fields are always present.
type Document struct {
	ID      DocID
	Columns Columns
	Text    map[TextField]string

	// InboundHosts is the set of host node ids that link to this
	// document's host, used by the inbound-similarity scorer (spec §4.7).
	InboundHosts []HostNodeID

	// ExternalScores carries signals set by a later, out-of-scope stage
	// (snippet cross-encoder, LambdaMART). Zero value means "unset".
	ExternalScores ExternalScores
}

// ExternalScores holds signals computed outside this module's scope.
type ExternalScores struct {
	CrossEncoderSnippet float64
	CrossEncoderTitle   float64
	LambdaMART          float64
}

// FieldText returns a document's text for a field, or "" if absent.
func (d *Document) FieldText(f TextField) string {
	if d.Text == nil {
		return ""
	}
	return d.Text[f]
}
