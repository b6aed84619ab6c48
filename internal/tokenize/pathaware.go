package tokenize

import "strings"

// TokenizePath is the path-aware tokenizer used for Url/Site/Domain fields
// (spec §4.3): slashes, dots, and schemes become token boundaries, and no
// stopword filtering is applied (these aren't natural language).
func TokenizePath(s string) []string {
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")

	isBoundary := func(r rune) bool {
		switch r {
		case '.', '/', '-', '_', '?', '&', '=', '#', ':':
			return true
		default:
			return false
		}
	}

	tokens := strings.FieldsFunc(s, isBoundary)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SiteOf extracts the registrable host portion of a URL the way the site:
// operator needs it: scheme and path stripped, trailing dot-segments kept
// in order so pattern anchors (`|example.com|`) align against them.
func SiteOf(rawURL string) string {
	s := strings.ToLower(rawURL)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// DomainOf extracts the registrable domain (site minus subdomains) using a
// simple two-label heuristic; good enough for pattern matching purposes,
// which operate on tokens rather than a public-suffix list.
func DomainOf(rawURL string) string {
	site := SiteOf(rawURL)
	labels := strings.Split(site, ".")
	if len(labels) <= 2 {
		return site
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
