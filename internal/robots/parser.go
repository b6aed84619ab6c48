package robots

import "strings"

type directiveKind int

const (
	directiveUnknown directiveKind = iota
	directiveUserAgent
	directiveAllow
	directiveDisallow
	directiveCrawlDelay
	directiveSitemap
)

// directiveAliases maps a normalized (lowercased, spaces/hyphens/
// underscores stripped) directive name to its canonical kind, tolerating
// the separator variants and common misspellings spec §4.8 calls out.
var directiveAliases = map[string]directiveKind{
	"useragent":  directiveUserAgent,
	"allow":      directiveAllow,
	"disallow":   directiveDisallow,
	"dissallow":  directiveDisallow,
	"disalow":    directiveDisallow,
	"disallowd":  directiveDisallow,
	"dis-allow":  directiveDisallow,
	"crawldelay": directiveCrawlDelay,
	"sitemap":    directiveSitemap,
	"sitemaps":   directiveSitemap,
}

type line struct {
	kind  directiveKind
	value string
}

// normalizeDirective strips separators so "user-agent", "useragent", and
// "user agent" all compare equal.
func normalizeDirective(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	return s
}

// parseLines splits robots.txt text into directive/value lines, tolerant of
// a missing ':' separator (spec §4.8's "disallow /" example) and unknown
// directives (silently ignored rather than rejected).
func parseLines(text string) []line {
	var out []line
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(stripComment(raw))
		if raw == "" {
			continue
		}
		name, value, ok := splitDirective(raw)
		if !ok {
			continue
		}
		kind, ok := directiveAliases[normalizeDirective(name)]
		if !ok {
			continue
		}
		out = append(out, line{kind: kind, value: strings.TrimSpace(value)})
	}
	return out
}

// stripComment removes a trailing "# ..." comment.
func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// splitDirective splits "Name: value" or the tolerated "Name value" form.
func splitDirective(s string) (name, value string, ok bool) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	fields := strings.SplitN(s, " ", 2)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
