package main

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/searchcore/engine/internal/errs"
	"github.com/searchcore/engine/internal/segment"
)

func writeFixtureIndex(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := segment.Manifest{Documents: []segment.DocumentDTO{
		{ID: 0, Url: "https://example.com/foo", Title: "Foo Page", CleanBody: "all about foo"},
	}}
	data, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seg0.json"), data, 0o644))
	return dir
}

func TestSearchCmd_FindsMatchingDoc(t *testing.T) {
	dir := writeFixtureIndex(t)

	cmd := searchCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--index", dir, "--json", "foo"})

	err := cmd.Execute()
	require.NoError(t, err)
}

func TestOpticLintCmd_ValidProgramSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.optic")
	require.NoError(t, os.WriteFile(path, []byte(`Rule { Matches { Domain("a.com") }, Action(Boost(1)) };`), 0o644))

	cmd := opticLintCmd()
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())
}

func TestOpticLintCmd_InvalidProgramErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.optic")
	require.NoError(t, os.WriteFile(path, []byte(`not valid {{{`), 0o644))

	cmd := opticLintCmd()
	cmd.SetArgs([]string{path})
	assert.Error(t, cmd.Execute())
}

func TestLoadSegments_NoBundlesErrors(t *testing.T) {
	_, err := loadSegments(t.TempDir(), false, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadSegments_LoadsEachJSONBundle(t *testing.T) {
	dir := writeFixtureIndex(t)
	segments, err := loadSegments(dir, false, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, segments, 1)
}

func TestReportInputError_ClassifiesEmptyQuery(t *testing.T) {
	err := reportInputError(errs.ErrEmptyQuery)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty query")
}

func TestReportInputError_PassesThroughNonInputErrors(t *testing.T) {
	other := errors.New("boom")
	err := reportInputError(other)
	assert.Equal(t, other, err)
}

func TestRobotsCheckCmd_ReportsDisallowedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robots.txt")
	require.NoError(t, os.WriteFile(path, []byte("User-agent: *\nDisallow: /private\n"), 0o644))

	cmd := robotsCheckCmd()
	cmd.SetArgs([]string{path, "/private/page"})
	require.NoError(t, cmd.Execute())
}

func TestRobotsCheckCmd_ReportsAllowedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robots.txt")
	require.NoError(t, os.WriteFile(path, []byte("User-agent: *\nDisallow: /private\n"), 0o644))

	cmd := robotsCheckCmd()
	cmd.SetArgs([]string{path, "/public/page"})
	require.NoError(t, cmd.Execute())
}

func TestEnsureIndexDir_NoURLReturnsDirUnchanged(t *testing.T) {
	dir, err := ensureIndexDir(context.Background(), "/some/dir", "", "", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "/some/dir", dir)
}

func TestEnsureIndexDir_FetchesAndExtractsArchive(t *testing.T) {
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)
	content := []byte(`{"documents":[]}`)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "seg.json", Mode: 0o644, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	dir := t.TempDir()
	got, err := ensureIndexDir(context.Background(), dir, server.URL, "seg.json", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.FileExists(t, filepath.Join(dir, "seg.json"))
}
