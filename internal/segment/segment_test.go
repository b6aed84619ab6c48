package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchcore/engine/pkg/model"
)

func sampleManifest() Manifest {
	return Manifest{Documents: []DocumentDTO{
		{
			ID: 0, Url: "https://example.com/foo/bar",
			Title: "Example Foo Page", CleanBody: "this page is about foo and bar",
			HostCentrality: 0.9, PageCentrality: 0.5, IsHomepage: false,
		},
		{
			ID: 1, Url: "https://example.com/",
			Title: "Example Home", CleanBody: "welcome to the example homepage",
			HostCentrality: 0.1, PageCentrality: 0.9, IsHomepage: true,
		},
	}}
}

func TestBuild_PostingsFindMatchingDoc(t *testing.T) {
	seg := Build(sampleManifest(), 7)

	pl, ok, err := seg.Postings(model.FieldCleanBody, "foo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.DocID(0), pl.Advance())
	assert.Equal(t, model.NoDoc, pl.Advance())
}

func TestBuild_MissingTermReturnsNotOK(t *testing.T) {
	seg := Build(sampleManifest(), 7)
	_, ok, err := seg.Postings(model.FieldCleanBody, "zzz-nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuild_CentralityRanksAreDescending(t *testing.T) {
	seg := Build(sampleManifest(), 7)
	doc0, err := seg.Doc(0)
	require.NoError(t, err)
	doc1, err := seg.Doc(1)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), doc0.Columns.HostCentralityRank)
	assert.Equal(t, uint32(2), doc1.Columns.HostCentralityRank)
	assert.Equal(t, uint32(1), doc1.Columns.PageCentralityRank)
	assert.Equal(t, uint32(2), doc0.Columns.PageCentralityRank)
}

func TestBuild_DomainIfHomepageOnlyPopulatedForHomepage(t *testing.T) {
	seg := Build(sampleManifest(), 7)

	_, ok, err := seg.Postings(model.FieldDomainIfHomepage, "example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	pl, _, _ := seg.Postings(model.FieldDomainIfHomepage, "example.com")
	assert.Equal(t, model.DocID(1), pl.Advance())
	assert.Equal(t, model.NoDoc, pl.Advance())
}

func TestBuild_FieldNormCountsTokens(t *testing.T) {
	seg := Build(sampleManifest(), 7)
	n, err := seg.FieldNorm(0, model.FieldCleanBody)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), n) // "this page is about foo and bar" minus stop words
}

func TestSegment_ColumnOutOfRangeErrors(t *testing.T) {
	seg := Build(sampleManifest(), 7)
	_, err := seg.Column(99)
	assert.Error(t, err)
}

func TestSegment_SegmentIDAndNumDocs(t *testing.T) {
	seg := Build(sampleManifest(), 42)
	assert.Equal(t, uint32(42), seg.SegmentID())
	assert.Equal(t, 2, seg.NumDocs())
}

func TestSegment_AvgFieldLen(t *testing.T) {
	seg := Build(sampleManifest(), 7)
	avg := seg.AvgFieldLen(model.FieldCleanBody)
	assert.Greater(t, avg, 0.0)
}

func TestBuild_SimHashDistinguishesDissimilarDocs(t *testing.T) {
	seg := Build(sampleManifest(), 7)
	doc0, _ := seg.Doc(0)
	doc1, _ := seg.Doc(1)
	assert.NotEqual(t, doc0.Columns.SimHash, doc1.Columns.SimHash)
}
