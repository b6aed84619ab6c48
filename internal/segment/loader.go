package segment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/searchcore/engine/internal/cache"
)

// memCache holds fully-built segments keyed by bundle path, the in-process
// half of the two-level cache (spec §6: "segments load once per process").
var memCache = cache.NewKeyed[*Segment]()

// Load loads a segment bundle from path (generalizing embedding.LoadDB):
// memory cache, then a gob binary cache next to the manifest, then a full
// JSON parse and rebuild. segmentID tags every doc this segment returns to
// the collector and searcher.
func Load(path string, segmentID uint32, verbose bool) (*Segment, error) {
	if cached, ok := memCache.Get(path); ok {
		if verbose {
			fmt.Printf("segment %s: using in-memory cache\n", path)
		}
		return cached, nil
	}

	cachePath := binaryCachePath(path)
	if isBinaryCacheValid(path, cachePath) {
		if verbose {
			fmt.Printf("segment %s: loading binary cache\n", path)
		}
		if built, err := cache.LoadBinary[builtSegment](cachePath); err == nil {
			seg := built.toSegment(segmentID)
			memCache.Put(path, seg)
			return seg, nil
		} else if verbose {
			fmt.Printf("segment %s: binary cache load failed, falling back to JSON: %v\n", path, err)
		}
	}

	if verbose {
		fmt.Printf("segment %s: parsing manifest\n", path)
	}
	manifest, err := parseManifest(path)
	if err != nil {
		return nil, err
	}

	seg := Build(manifest, segmentID)

	if err := cache.SaveBinary(cachePath, fromSegment(seg)); err != nil && verbose {
		fmt.Printf("segment %s: failed to save binary cache: %v\n", path, err)
	}

	memCache.Put(path, seg)
	return seg, nil
}

func parseManifest(path string) (Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("open segment bundle %s: %w", path, err)
	}
	defer file.Close()

	var m Manifest
	if err := json.NewDecoder(file).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode segment bundle %s: %w", path, err)
	}
	return m, nil
}

func binaryCachePath(jsonPath string) string {
	dir := filepath.Dir(jsonPath)
	base := filepath.Base(jsonPath)
	return filepath.Join(dir, "."+base+".cache")
}

// isBinaryCacheValid reports whether the binary cache exists and is newer
// than the source manifest.
func isBinaryCacheValid(jsonPath, cachePath string) bool {
	src, err := os.Stat(jsonPath)
	if err != nil {
		return false
	}
	dst, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	return dst.ModTime().After(src.ModTime())
}
