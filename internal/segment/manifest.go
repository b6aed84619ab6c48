package segment

// Manifest is the JSON shape a segment bundle's document file carries: one
// flat record per document, columns and text fields side by side (spec §3,
// §6). Grounded on the teacher's models.EmbeddingDB, whose single JSON
// table of {key, text, reference text, metadata} generalizes here into one
// record per indexed document with every spec §3 column and text field.
type Manifest struct {
	Documents []DocumentDTO `json:"documents"`
}

// DocumentDTO is one document's raw, pre-indexing fields.
type DocumentDTO struct {
	ID  uint32 `json:"id"`
	Url string `json:"url"`

	Title                  string `json:"title"`
	CleanBody              string `json:"clean_body"`
	Description            string `json:"description"`
	DmozDescription        string `json:"dmoz_description"`
	BacklinkText           string `json:"backlink_text"`
	FlattenedSchemaOrgJson string `json:"flattened_schema_org_json"`
	MicroformatTags        string `json:"microformat_tags"`

	HostCentrality float64 `json:"host_centrality"`
	PageCentrality float64 `json:"page_centrality"`
	FetchTimeMs    uint32  `json:"fetch_time_ms"`
	LastUpdated    int64   `json:"last_updated"`
	TrackerScore   uint32  `json:"tracker_score"`
	Region         uint32  `json:"region"`
	IsHomepage     bool    `json:"is_homepage"`
	LinkDensity    float64 `json:"link_density"`
	HostNodeID     uint64  `json:"host_node_id"`
	InboundHosts   []uint64 `json:"inbound_hosts"`

	CrossEncoderSnippet float64 `json:"cross_encoder_snippet"`
	CrossEncoderTitle   float64 `json:"cross_encoder_title"`
	LambdaMART          float64 `json:"lambda_mart"`
}
