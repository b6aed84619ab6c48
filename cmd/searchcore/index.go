package main

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/searchcore/engine/internal/fetch"
	"github.com/searchcore/engine/internal/segment"
	"github.com/searchcore/engine/pkg/model"
)

// ensureIndexDir returns dir unchanged, unless bundleURL is set, in which
// case it fetches and extracts the archive at bundleURL into dir first
// (spec §6, generalizing the teacher's EnsureEmbeddings flow into a
// same-process predecessor step to loadSegments).
func ensureIndexDir(ctx context.Context, dir, bundleURL, manifestFile string, logger *zap.Logger) (string, error) {
	if bundleURL == "" {
		return dir, nil
	}
	f := fetch.NewFetcher(dir)
	path, err := f.EnsureBundle(ctx, bundleURL, manifestFile)
	if err != nil {
		return "", fmt.Errorf("fetch segment bundle: %w", err)
	}
	logger.Info("fetched segment bundle", zap.String("url", bundleURL), zap.String("manifest", path))
	return dir, nil
}

// loadSegments loads every *.json bundle under dir as its own segment,
// segment ids assigned in directory order. Mirrors the teacher's
// auto-discovered single embedding DB, generalized to a directory of
// segment bundles (spec §2.15: "local segment directory").
func loadSegments(dir string, verbose bool, logger *zap.Logger) ([]model.Reader, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no segment bundles (*.json) found under %s", dir)
	}

	segments := make([]model.Reader, 0, len(paths))
	for i, path := range paths {
		seg, err := segment.Load(path, uint32(i), verbose)
		if err != nil {
			return nil, fmt.Errorf("load segment %s: %w", path, err)
		}
		logger.Info("loaded segment", zap.String("path", path), zap.Uint32("segment_id", uint32(i)), zap.Int("docs", seg.NumDocs()))
		segments = append(segments, seg)
	}
	return segments, nil
}
