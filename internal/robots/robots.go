// Package robots implements a tolerant RFC 9309 robots.txt parser and
// Google-compatible longest-match allow/disallow matcher (spec §4.8).
// Grounded on original_source/crates/robotstxt/src/lib.rs where the
// distilled spec is silent, expressed idiomatically in Go rather than
// translated line-for-line.
package robots

import (
	"strconv"
	"strings"
	"time"

	"github.com/searchcore/engine/internal/constants"
)

type rule struct {
	pattern string
	allow   bool
}

type group struct {
	agents []string
	rules  []rule
	delay  *float64
}

// Robots is the parsed, user-agent-resolved rule set for one robots.txt
// document.
type Robots struct {
	rules      []rule
	crawlDelay *float64
	sitemaps   []string
}

// Parse parses robotstxt for the given user agent (spec §4.8): input is
// capped at constants.RobotsMaxInputBytes, NUL bytes become newlines,
// directives are grouped under their User-agent block, and every block
// with an agent name that appears in userAgent as a case-insensitive
// substring applies; absent a match, the "*" block applies.
func Parse(userAgent, robotstxt string) *Robots {
	if len(robotstxt) > constants.RobotsMaxInputBytes {
		robotstxt = robotstxt[:constants.RobotsMaxInputBytes]
	}
	robotstxt = strings.ReplaceAll(robotstxt, "\x00", "\n")

	groups, sitemaps := parseGroups(parseLines(robotstxt))

	agent := strings.ToLower(userAgent)
	matched := matchingGroups(groups, agent)
	if len(matched) == 0 {
		matched = matchingGroups(groups, "*")
	}

	r := &Robots{sitemaps: sitemaps}
	for _, g := range matched {
		r.rules = append(r.rules, g.rules...)
		if g.delay != nil {
			r.crawlDelay = g.delay
		}
	}
	return r
}

// parseGroups groups directive lines into User-agent blocks. Rules that
// precede any User-agent line form an implicit "*" group (matching the
// original implementation's "preceding rules are global rules").
func parseGroups(lines []line) (groups []*group, sitemaps []string) {
	var cur *group
	bodyStarted := false

	for _, ln := range lines {
		switch ln.kind {
		case directiveUserAgent:
			if cur == nil || bodyStarted {
				cur = &group{}
				groups = append(groups, cur)
				bodyStarted = false
			}
			cur.agents = append(cur.agents, ln.value)
		case directiveAllow, directiveDisallow:
			if cur == nil {
				cur = &group{agents: []string{"*"}}
				groups = append(groups, cur)
			}
			bodyStarted = true
			if ln.value != "" {
				cur.rules = append(cur.rules, rule{pattern: ln.value, allow: ln.kind == directiveAllow})
			}
		case directiveCrawlDelay:
			if cur != nil {
				if d, err := strconv.ParseFloat(ln.value, 64); err == nil {
					cur.delay = &d
				}
				bodyStarted = true
			}
		case directiveSitemap:
			if ln.value != "" {
				sitemaps = append(sitemaps, ln.value)
			}
		}
	}
	return groups, sitemaps
}

// matchingGroups returns every group with an agent name that appears in
// agent as a case-insensitive substring (spec §4.8: "case-insensitive
// substring after User-agent"); "*" matches only the "*" lookup.
func matchingGroups(groups []*group, agent string) []*group {
	var out []*group
	for _, g := range groups {
		for _, a := range g.agents {
			al := strings.ToLower(strings.TrimSpace(a))
			if al == "*" && agent == "*" {
				out = append(out, g)
				break
			}
			if al != "*" && agent != "*" && strings.Contains(agent, al) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// IsAllowed reports whether path is allowed, re-checking path+"index.html"
// when a trailing-slash path is denied (spec §4.8).
func (r *Robots) IsAllowed(path string) bool {
	if ok := r.isPathAllowedPrecise(path); ok {
		return true
	}
	if strings.HasSuffix(path, "/") {
		return r.isPathAllowedPrecise(path + "index.html")
	}
	return false
}

func (r *Robots) isPathAllowedPrecise(path string) bool {
	if path == "" {
		path = "/"
	}
	if path == "/robots.txt" {
		return true
	}

	bestLen := -1
	bestAllow := true
	for _, ru := range r.rules {
		if !matchPattern(ru.pattern, path) {
			continue
		}
		length := len(ru.pattern)
		if length > bestLen || (length == bestLen && ru.allow && !bestAllow) {
			bestLen = length
			bestAllow = ru.allow
		}
	}
	if bestLen < 0 {
		return true
	}
	return bestAllow
}

// CrawlDelay returns the parsed crawl-delay directive, if any.
func (r *Robots) CrawlDelay() (time.Duration, bool) {
	if r.crawlDelay == nil {
		return 0, false
	}
	return time.Duration(*r.crawlDelay * float64(time.Second)), true
}

// Sitemaps returns every Sitemap: url encountered, regardless of which
// User-agent block it appeared under (by-product per spec §4.8).
func (r *Robots) Sitemaps() []string {
	return r.sitemaps
}
