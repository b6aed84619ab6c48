package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarGzArchive(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0o644}))
	_, err := tw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gzw.Close())
	return buf.Bytes()
}

func TestEnsureBundle_DownloadsAndExtractsWhenMissing(t *testing.T) {
	archive := tarGzArchive(t, "segment.json", `{"documents":[]}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir)

	path, err := f.EnsureBundle(context.Background(), srv.URL, "segment.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "segment.json"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"documents":[]}`, string(content))
}

func TestEnsureBundle_SkipsDownloadWhenAlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "segment.json"), []byte("cached"), 0o644))

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	f := NewFetcher(dir)
	path, err := f.EnsureBundle(context.Background(), srv.URL, "segment.json")
	require.NoError(t, err)
	assert.False(t, called)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(content))
}

func TestEnsureBundle_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	_, err := f.EnsureBundle(context.Background(), srv.URL, "segment.json")
	assert.Error(t, err)
}
