package model

import "encoding/json"

// SearchQuery is the external search request (spec §6).
type SearchQuery struct {
	Query              string
	NumResults         int
	Page               int
	SelectedRegion     *Region
	Optic              *Optic
	OpticSource        string // raw optic DSL, used for AST cache lookups
	HostRankings       *HostRankings
	SignalCoefficients map[Signal]float64
	SafeSearch         bool
	CountResultsExact  bool
}

// WebPage is one ranked result (spec §6).
type WebPage struct {
	DocID       DocID
	Url         string
	Title       string
	Description string
	Score       float64
	Explanation string
}

// MarshalJSON renders a WebPage the way the teacher's SearchResult did: a
// small hand-written struct decoupled from the internal field names.
func (w *WebPage) MarshalJSON() ([]byte, error) {
	type jsonResult struct {
		Url         string  `json:"url"`
		Title       string  `json:"title"`
		Description string  `json:"description,omitempty"`
		Score       float64 `json:"score"`
		Explanation string  `json:"explanation,omitempty"`
	}
	return json.Marshal(jsonResult{
		Url:         w.Url,
		Title:       w.Title,
		Description: w.Description,
		Score:       w.Score,
		Explanation: w.Explanation,
	})
}

// BangResult is returned instead of Webpages when the query resolves to a
// bang redirect (spec §6; bang resolution itself is an external
// collaborator, only the result shape is specified here).
type BangResult struct {
	Redirect string
}

// SearchResult is either a ranked page list or a bang redirect (spec §6).
type SearchResult struct {
	Webpages []WebPage
	NumHits  *uint64
	Bang     *BangResult

	Partial  bool
	TimedOut bool
	Warnings []string
}
