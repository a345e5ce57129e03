// Package textutil provides the text helpers shared by the normalizer and
// the SEO builder: HTML sanitization, slugs and word-level trimming.
package textutil

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips everything outside a small allowlist of content tags.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the allowlist policy used for web article HTML.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "p", "ul", "ol", "li", "b", "i", "em", "strong", "br", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	return &Sanitizer{policy: p}
}

// Sanitize returns html reduced to the allowlisted elements.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// Slugify produces a URL-safe slug from a title.
func Slugify(title string) string {
	return slug.Make(title)
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// TrimWords returns at most max words of s, joined by single spaces.
func TrimWords(s string, max int) string {
	fields := strings.Fields(s)
	if len(fields) <= max {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:max], " ")
}
