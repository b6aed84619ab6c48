// Package fetch retrieves a segment bundle from an HTTP .tar.gz release
// asset when no local path is given, generalizing the teacher's
// internal/download package (EnsureEmbeddings/DownloadEmbeddings) from
// Nokia telemetry embedding archives to search-index segment bundles
// (spec §6, SPEC_FULL §2.12).
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

const dirPermissions = 0o755

// Fetcher downloads and extracts segment bundle archives into a local
// directory, caching by the presence of the expected manifest file.
type Fetcher struct {
	dir    string
	client *http.Client
}

// NewFetcher creates a Fetcher that extracts archives into dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{dir: dir, client: http.DefaultClient}
}

// EnsureBundle returns the local path to manifestFile inside dir, fetching
// and extracting url's tar.gz archive first if the file isn't already
// present (mirrors the teacher's EnsureEmbeddings flow).
func (f *Fetcher) EnsureBundle(ctx context.Context, url, manifestFile string) (string, error) {
	if err := os.MkdirAll(f.dir, dirPermissions); err != nil {
		return "", fmt.Errorf("create segment bundle directory: %w", err)
	}

	path := filepath.Join(f.dir, manifestFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := f.download(ctx, url); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("expected manifest %s not found after extraction: %w", manifestFile, err)
	}
	return path, nil
}

func (f *Fetcher) download(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch segment bundle %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch segment bundle %s: HTTP %d", url, resp.StatusCode)
	}

	return f.extractTarGz(resp.Body)
}

func (f *Fetcher) extractTarGz(r io.Reader) error {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		target := filepath.Join(f.dir, header.Name)
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirPermissions); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := extractFile(target, tr); err != nil {
				return err
			}
		}
	}
}

func extractFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("write file %s: %w", target, err)
	}
	return nil
}
