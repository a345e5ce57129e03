// Package seo builds the search metadata and NewsArticle JSON-LD for web
// articles.
package seo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/varta-media/newsdesk/internal/textutil"
)

const (
	metaDescriptionWords = 30
	schemaContext        = "https://schema.org"
	schemaType           = "NewsArticle"
)

// Meta is the search-facing metadata for a web article.
type Meta struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CanonicalURL string   `json:"canonical_url"`
	Keywords     []string `json:"keywords"`
}

// Input carries everything the builder needs from the normalized content.
type Input struct {
	Headline    string
	PlainText   string
	Slug        string
	BaseURL     string
	Images      []string
	Keywords    []string
	PublishedAt time.Time
}

// Builder produces Meta and JSON-LD documents.
type Builder struct{}

// NewBuilder returns a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildMeta derives the meta description from the leading words of the body
// and the canonical URL from the domain base URL and slug.
func (b *Builder) BuildMeta(in Input) Meta {
	return Meta{
		Title:        in.Headline,
		Description:  textutil.TrimWords(in.PlainText, metaDescriptionWords),
		CanonicalURL: canonicalURL(in.BaseURL, in.Slug),
		Keywords:     in.Keywords,
	}
}

// BuildJSONLD renders a schema.org NewsArticle document.
func (b *Builder) BuildJSONLD(in Input) ([]byte, error) {
	meta := b.BuildMeta(in)

	doc := map[string]any{
		"@context":      schemaContext,
		"@type":         schemaType,
		"headline":      in.Headline,
		"description":   meta.Description,
		"datePublished": in.PublishedAt.UTC().Format(time.RFC3339),
		"dateModified":  in.PublishedAt.UTC().Format(time.RFC3339),
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   meta.CanonicalURL,
		},
	}
	if len(in.Images) > 0 {
		doc["image"] = in.Images
	}
	if len(in.Keywords) > 0 {
		doc["keywords"] = strings.Join(in.Keywords, ", ")
	}

	return json.Marshal(doc)
}

func canonicalURL(baseURL, slug string) string {
	if baseURL == "" {
		return "/" + slug
	}
	return strings.TrimRight(baseURL, "/") + "/" + slug
}
