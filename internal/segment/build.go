package segment

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/searchcore/engine/internal/constants"
	"github.com/searchcore/engine/internal/postings"
	"github.com/searchcore/engine/internal/tokenize"
	"github.com/searchcore/engine/pkg/model"
)

var stemmer = tokenize.SuffixStemmer{}

// indexedFields lists every TextField a built segment indexes, in the order
// spec §3 enumerates them.
var indexedFields = []model.TextField{
	model.FieldTitle, model.FieldCleanBody, model.FieldAllBody,
	model.FieldUrl, model.FieldSite, model.FieldDomain,
	model.FieldDescription, model.FieldDmozDescription, model.FieldBacklinkText,
	model.FieldFlattenedSchemaOrgJson, model.FieldMicroformatTags,
	model.FieldUrlForSiteOperator,
	model.FieldStemmedTitle, model.FieldStemmedCleanBody,
	model.FieldTitleBigrams, model.FieldTitleTrigrams,
	model.FieldCleanBodyBigrams, model.FieldCleanBodyTrigrams,
	model.FieldSiteNoTokenizer, model.FieldDomainNoTokenizer,
	model.FieldDomainIfHomepage,
}

// rawText returns the text stored on Document.Text for a field: what gets
// re-tokenized identically at query time by TokensForField, so a pattern
// match or phrase check against a fetched candidate agrees with how the
// field was indexed.
func rawText(f model.TextField, d DocumentDTO) string {
	switch f {
	case model.FieldTitle, model.FieldStemmedTitle, model.FieldTitleBigrams, model.FieldTitleTrigrams:
		return d.Title
	case model.FieldCleanBody, model.FieldStemmedCleanBody, model.FieldCleanBodyBigrams, model.FieldCleanBodyTrigrams:
		return d.CleanBody
	case model.FieldAllBody:
		return strings.Join([]string{d.Title, d.CleanBody, d.Description}, " ")
	case model.FieldUrl, model.FieldUrlForSiteOperator:
		return d.Url
	case model.FieldSite, model.FieldSiteNoTokenizer:
		return tokenize.SiteOf(d.Url)
	case model.FieldDomain, model.FieldDomainNoTokenizer:
		return tokenize.DomainOf(d.Url)
	case model.FieldDescription:
		return d.Description
	case model.FieldDmozDescription:
		return d.DmozDescription
	case model.FieldBacklinkText:
		return d.BacklinkText
	case model.FieldFlattenedSchemaOrgJson:
		return d.FlattenedSchemaOrgJson
	case model.FieldMicroformatTags:
		return d.MicroformatTags
	case model.FieldDomainIfHomepage:
		if !d.IsHomepage {
			return ""
		}
		return tokenize.DomainOf(d.Url)
	default:
		return ""
	}
}

// TokensForField re-tokenizes a field's stored raw text identically to how
// Build indexed it, so query-time phrase/pattern re-checks against an
// already-fetched candidate (internal/optic's boost evaluation,
// internal/postings.PatternQuery) agree with the posting-list prefilter.
func TokensForField(f model.TextField, text string) []string {
	switch f {
	case model.FieldTitle, model.FieldCleanBody, model.FieldAllBody, model.FieldDescription,
		model.FieldDmozDescription, model.FieldBacklinkText, model.FieldFlattenedSchemaOrgJson,
		model.FieldMicroformatTags:
		return tokenize.Tokenize(text)
	case model.FieldUrl, model.FieldUrlForSiteOperator, model.FieldSite, model.FieldDomain:
		return tokenize.TokenizePath(text)
	case model.FieldStemmedTitle, model.FieldStemmedCleanBody:
		return tokenize.StemAll(stemmer, tokenize.Tokenize(text))
	case model.FieldTitleBigrams, model.FieldCleanBodyBigrams:
		return tokenize.Bigrams(tokenize.Tokenize(text))
	case model.FieldTitleTrigrams, model.FieldCleanBodyTrigrams:
		return tokenize.Trigrams(tokenize.Tokenize(text))
	case model.FieldSiteNoTokenizer, model.FieldDomainNoTokenizer, model.FieldDomainIfHomepage:
		return wholeToken(text)
	default:
		return nil
	}
}

// fieldTokens tokenizes a document's raw text for field at index time.
func fieldTokens(f model.TextField, d DocumentDTO) []string {
	return TokensForField(f, rawText(f, d))
}

func wholeToken(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// Build assembles a queryable Segment from a parsed manifest (generalizing
// embedding.BuildInvertedIndex): populates per-doc text/columns, derives
// host/page centrality ranks, hashes, and a simhash for near-duplicate
// detection (internal/collector), then builds a posting list per
// (field, term).
func Build(m Manifest, segmentID uint32) *Segment {
	docs := make([]model.Document, len(m.Documents))
	fieldLens := make(map[model.TextField][]uint32, len(indexedFields))
	postingsByField := make(map[model.TextField]map[string][]postings.Posting, len(indexedFields))
	for _, f := range indexedFields {
		fieldLens[f] = make([]uint32, len(m.Documents))
		postingsByField[f] = make(map[string][]postings.Posting)
	}

	for i, dto := range m.Documents {
		doc := model.Document{
			ID:   model.DocID(i),
			Text: make(map[model.TextField]string, len(indexedFields)),
			Columns: model.Columns{
				HostCentrality: toFixedPoint(dto.HostCentrality),
				PageCentrality: toFixedPoint(dto.PageCentrality),
				FetchTimeMs:    dto.FetchTimeMs,
				LastUpdated:    dto.LastUpdated,
				TrackerScore:   dto.TrackerScore,
				Region:         model.Region(dto.Region),
				IsHomepage:     dto.IsHomepage,
				LinkDensity:    toFixedPoint(dto.LinkDensity),
				HostNodeID:     model.HostNodeID(dto.HostNodeID),
			},
			ExternalScores: model.ExternalScores{
				CrossEncoderSnippet: dto.CrossEncoderSnippet,
				CrossEncoderTitle:   dto.CrossEncoderTitle,
				LambdaMART:          dto.LambdaMART,
			},
		}
		for _, h := range dto.InboundHosts {
			doc.InboundHosts = append(doc.InboundHosts, model.HostNodeID(h))
		}

		slashes, digits := countPathSlashesAndDigits(dto.Url)
		doc.Columns.NumPathAndQuerySlashes = slashes
		doc.Columns.NumPathAndQueryDigits = digits
		doc.Columns.SiteHash = xxhash.Sum64String(tokenize.SiteOf(dto.Url))
		doc.Columns.UrlHash = xxhash.Sum64String(dto.Url)
		doc.Columns.DomainHash = xxhash.Sum64String(tokenize.DomainOf(dto.Url))
		doc.Columns.TitleHash = xxhash.Sum64String(dto.Title)

		docID := model.DocID(i)
		var titleTokens, bodyTokens, urlTokens, descTokens []string

		for _, f := range indexedFields {
			doc.Text[f] = rawText(f, dto)
			tokens := fieldTokens(f, dto)
			fieldLens[f][i] = uint32(len(tokens))
			addPostings(postingsByField[f], tokens, docID)

			switch f {
			case model.FieldTitle:
				titleTokens = tokens
			case model.FieldCleanBody:
				bodyTokens = tokens
			case model.FieldUrl:
				urlTokens = tokens
			case model.FieldDescription:
				descTokens = tokens
			}
		}
		doc.Columns.NumTitleTokens = uint32(len(titleTokens))
		doc.Columns.NumCleanBodyTokens = uint32(len(bodyTokens))
		doc.Columns.NumUrlTokens = uint32(len(urlTokens))
		doc.Columns.NumDescriptionTokens = uint32(len(descTokens))
		doc.Columns.SimHash = simHash(append(append([]string{}, titleTokens...), bodyTokens...))

		docs[i] = doc
	}

	assignCentralityRanks(docs, m.Documents)

	return &Segment{
		id:        segmentID,
		docs:      docs,
		fields:    append([]model.TextField{}, indexedFields...),
		postings:  postingsByField,
		fieldLens: fieldLens,
	}
}

func toFixedPoint(x float64) uint64 {
	if x <= 0 {
		return 0
	}
	return uint64(x * float64(constants.CentralityScale))
}

func addPostings(byTerm map[string][]postings.Posting, tokens []string, doc model.DocID) {
	if len(tokens) == 0 {
		return
	}
	freq := make(map[string]uint32, len(tokens))
	positions := make(map[string][]uint32, len(tokens))
	for pos, tok := range tokens {
		freq[tok]++
		positions[tok] = append(positions[tok], uint32(pos))
	}
	for tok, f := range freq {
		byTerm[tok] = append(byTerm[tok], postings.Posting{Doc: doc, TermFreq: f, Positions: positions[tok]})
	}
}

func countPathSlashesAndDigits(rawURL string) (slashes, digits uint32) {
	path := rawURL
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
	}
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[i:]
	} else {
		path = ""
	}
	for _, r := range path {
		switch {
		case r == '/':
			slashes++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	return slashes, digits
}

// simHash computes a 64-bit simhash over tokens via xxhash bit-voting
// (spec §4.6's near-duplicate signal): each token's hash casts one
// +1/-1 vote per bit, and the result bit is set wherever votes are net
// positive.
func simHash(tokens []string) uint64 {
	var votes [64]int
	for _, tok := range tokens {
		h := xxhash.Sum64String(tok)
		for b := 0; b < 64; b++ {
			if h&(1<<uint(b)) != 0 {
				votes[b]++
			} else {
				votes[b]--
			}
		}
	}
	var out uint64
	for b := 0; b < 64; b++ {
		if votes[b] > 0 {
			out |= 1 << uint(b)
		}
	}
	return out
}

// assignCentralityRanks sets HostCentralityRank/PageCentralityRank (spec §3)
// by sorting documents descending by each centrality value; rank 1 is the
// highest. Ties keep doc-id order for determinism.
func assignCentralityRanks(docs []model.Document, dtos []DocumentDTO) {
	byHost := make([]int, len(docs))
	byPage := make([]int, len(docs))
	for i := range docs {
		byHost[i], byPage[i] = i, i
	}
	sort.SliceStable(byHost, func(a, b int) bool {
		return dtos[byHost[a]].HostCentrality > dtos[byHost[b]].HostCentrality
	})
	sort.SliceStable(byPage, func(a, b int) bool {
		return dtos[byPage[a]].PageCentrality > dtos[byPage[b]].PageCentrality
	})
	for rank, idx := range byHost {
		docs[idx].Columns.HostCentralityRank = uint32(rank + 1)
	}
	for rank, idx := range byPage {
		docs[idx].Columns.PageCentralityRank = uint32(rank + 1)
	}
}
