package text

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy     *bluemonday.Policy
	ugcPolicyOnce sync.Once
)

func policy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
		ugcPolicy.RequireNoFollowOnLinks(true)
		ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return ugcPolicy
}

// SanitizeHTML strips scripts, event handlers and other markup not allowed
// in user-generated article bodies. Plain text passes through unchanged
// apart from HTML escaping.
func SanitizeHTML(s string) string {
	return strings.TrimSpace(policy().Sanitize(s))
}

// PlainText returns the visible text of an HTML fragment with whitespace collapsed.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most n runes of the visible text, ending with "…" when cut.
func Excerpt(html string, n int) string {
	t := PlainText(html)
	if CountRunes(t) <= n {
		return t
	}
	return strings.TrimSpace(TruncateRunes(t, n-1)) + "…"
}
