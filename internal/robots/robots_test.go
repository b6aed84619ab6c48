package robots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_SimpleDisallowBlocksMatchingAgent(t *testing.T) {
	txt := "user-agent: FooBot\ndisallow: /\n"
	assert.True(t, Parse("FooBot", "").IsAllowed(""))
	assert.True(t, Parse("BarBot", txt).IsAllowed(""))
	assert.False(t, Parse("FooBot", txt).IsAllowed(""))
}

func TestParse_ToleratesMissingColon(t *testing.T) {
	txt := "user-agent: FooBot\ndisallow /\n"
	assert.False(t, Parse("FooBot", txt).IsAllowed("/x/y"))
}

func TestParse_IgnoresUnknownDirectives(t *testing.T) {
	txt := "fooL FooBot\nbar: /\n"
	assert.True(t, Parse("FooBot", txt).IsAllowed("/x/y"))
}

func TestParse_TreatsCommonMisspellingsAsDisallow(t *testing.T) {
	txt := "user-agent: *\ndissallow: /private\n"
	r := Parse("AnyBot", txt)
	assert.False(t, r.IsAllowed("/private/page"))
	assert.True(t, r.IsAllowed("/public/page"))
}

func TestParse_FallsBackToStarWhenNoAgentMatches(t *testing.T) {
	txt := "user-agent: OtherBot\ndisallow: /\n\nuser-agent: *\nallow: /\n"
	assert.True(t, Parse("FooBot", txt).IsAllowed("/anything"))
}

func TestParse_SubstringAgentMatch(t *testing.T) {
	txt := "user-agent: fooBot\ndisallow: /\n"
	assert.False(t, Parse("fooBot/1.0", txt).IsAllowed("/x"))
}

func TestIsAllowed_RobotsTxtIsAlwaysAllowed(t *testing.T) {
	txt := "user-agent: *\ndisallow: /\n"
	assert.True(t, Parse("AnyBot", txt).IsAllowed("/robots.txt"))
}

func TestIsAllowed_LongestMatchWins(t *testing.T) {
	txt := "user-agent: *\ndisallow: /foo\nallow: /foo/bar\n"
	r := Parse("AnyBot", txt)
	assert.True(t, r.IsAllowed("/foo/bar"))
	assert.False(t, r.IsAllowed("/foo/baz"))
}

func TestIsAllowed_TieGoesToAllow(t *testing.T) {
	txt := "user-agent: *\ndisallow: /foo\nallow: /foo\n"
	r := Parse("AnyBot", txt)
	assert.True(t, r.IsAllowed("/foo"))
}

func TestIsAllowed_TrailingSlashRechecksIndexHtml(t *testing.T) {
	txt := "user-agent: *\ndisallow: /dir/\nallow: /dir/index.html\n"
	r := Parse("AnyBot", txt)
	assert.True(t, r.IsAllowed("/dir/"))
}

func TestMatchPattern_WildcardAndEndAnchor(t *testing.T) {
	assert.True(t, matchPattern("/foo*bar", "/foo123bar"))
	assert.True(t, matchPattern("/foo*bar", "/foo123barbaz"))
	assert.True(t, matchPattern("/foo*bar$", "/foo123bar"))
	assert.False(t, matchPattern("/foo*bar$", "/foo123barx"))
}

func TestCrawlDelay_ParsedAsDuration(t *testing.T) {
	txt := "user-agent: *\ncrawl-delay: 2.5\n"
	r := Parse("AnyBot", txt)
	d, ok := r.CrawlDelay()
	assert.True(t, ok)
	assert.Equal(t, 2500_000_000.0, float64(d))
}

func TestSitemaps_CollectedRegardlessOfBlock(t *testing.T) {
	txt := "sitemap: https://example.com/sitemap.xml\nuser-agent: *\ndisallow:\n"
	r := Parse("AnyBot", txt)
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, r.Sitemaps())
}

func TestIsAllowed_GlobalRulesBeforeAnyUserAgentLineApply(t *testing.T) {
	txt := "disallow: /secret\nuser-agent: *\nallow: /\n"
	r := Parse("AnyBot", txt)
	assert.False(t, r.IsAllowed("/secret/x"))
}
