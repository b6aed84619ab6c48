package optic

import (
	"github.com/searchcore/engine/internal/cache"
	"github.com/searchcore/engine/pkg/model"
)

// astCache memoizes parsed optics by a content hash of their source text
// (spec §5), so a repeatedly-applied saved optic is parsed once per
// process rather than once per query.
var astCache = cache.NewKeyed[model.Optic]()

// ParseCached parses optic source, returning a cached AST when the same
// source text (by content hash) has been parsed before.
func ParseCached(src string) (model.Optic, error) {
	key := cache.ContentHash([]byte(src))
	return astCache.GetOrCompute(key, func() (model.Optic, error) {
		return Parse(src)
	})
}
