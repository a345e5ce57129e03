package pipeline

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/seo"
	"github.com/varta-media/newsdesk/internal/textutil"
)

// RenderBlock is one unit of the minimal web rendering: h1, h2, p or list.
type RenderBlock struct {
	Tag   string   `json:"tag"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// WebContent is the canonical web-ready representation of a submission,
// used when the web article must be created synchronously.
type WebContent struct {
	Title       string
	Slug        string
	Blocks      []RenderBlock
	ContentHTML string
	PlainText   string
	Meta        seo.Meta
	JSONLD      []byte
	MediaURLs   []string
	CoverImage  *string
}

// ContentNormalizer turns free-form submission fields into canonical
// blocks, plain text and an SEO-ready representation.
type ContentNormalizer struct {
	sanitizer *textutil.Sanitizer
	seo       *seo.Builder
	now       func() time.Time
}

// NewContentNormalizer creates a normalizer. now may be nil, defaulting to
// time.Now.
func NewContentNormalizer(sanitizer *textutil.Sanitizer, seoBuilder *seo.Builder, now func() time.Time) *ContentNormalizer {
	if now == nil {
		now = time.Now
	}
	return &ContentNormalizer{sanitizer: sanitizer, seo: seoBuilder, now: now}
}

// Normalize builds the canonical representation from the raw submission and
// the resolved location. baseURL is the domain base for canonical URLs and
// may be empty.
func (n *ContentNormalizer) Normalize(sub *models.Submission, baseURL string) (*WebContent, error) {
	paragraphs := extractParagraphs(sub)
	lead := sub.Content
	if len(sub.Blocks) == 0 {
		// Without typed blocks the free-form content already became the
		// paragraphs; don't repeat it as a lead.
		lead = ""
	}
	plainText := buildPlainText(lead, paragraphs, sub.Points)
	media := ExtractMediaURLs(sub)

	blocks := buildRenderBlocks(sub, paragraphs)
	contentHTML := n.sanitizer.Sanitize(renderHTML(blocks))

	titleSlug := textutil.Slugify(sub.Title)

	seoInput := seo.Input{
		Headline:    sub.Title,
		PlainText:   plainText,
		Slug:        titleSlug,
		BaseURL:     baseURL,
		Images:      media,
		Keywords:    sub.Tags,
		PublishedAt: n.now(),
	}
	jsonLD, err := n.seo.BuildJSONLD(seoInput)
	if err != nil {
		return nil, fmt.Errorf("build json-ld: %w", err)
	}

	var cover *string
	if len(media) > 0 {
		cover = &media[0]
	}

	return &WebContent{
		Title:       sub.Title,
		Slug:        titleSlug,
		Blocks:      blocks,
		ContentHTML: contentHTML,
		PlainText:   plainText,
		Meta:        n.seo.BuildMeta(seoInput),
		JSONLD:      jsonLD,
		MediaURLs:   media,
		CoverImage:  cover,
	}, nil
}

// extractParagraphs pulls paragraph text from the typed blocks. When the
// submission has no blocks, non-empty lines of the free-form content serve
// as paragraphs.
func extractParagraphs(sub *models.Submission) []string {
	var paragraphs []string
	if len(sub.Blocks) > 0 {
		for _, b := range sub.Blocks {
			if b.Type == models.BlockParagraph && strings.TrimSpace(b.Text) != "" {
				paragraphs = append(paragraphs, strings.TrimSpace(b.Text))
			}
		}
		return paragraphs
	}
	for _, line := range strings.Split(sub.Content, "\n") {
		if strings.TrimSpace(line) != "" {
			paragraphs = append(paragraphs, strings.TrimSpace(line))
		}
	}
	return paragraphs
}

// buildPlainText concatenates lead, paragraphs and "- "-prefixed bullet
// points.
func buildPlainText(lead string, paragraphs, points []string) string {
	var parts []string
	lead = strings.TrimSpace(lead)
	if lead != "" {
		parts = append(parts, lead)
	}
	parts = append(parts, paragraphs...)
	for _, p := range points {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, "- "+strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, "\n")
}

func buildRenderBlocks(sub *models.Submission, paragraphs []string) []RenderBlock {
	blocks := []RenderBlock{{Tag: "h1", Text: sub.Title}}
	if sub.Subtitle != "" {
		blocks = append(blocks, RenderBlock{Tag: "h2", Text: sub.Subtitle})
	}
	for _, p := range paragraphs {
		blocks = append(blocks, RenderBlock{Tag: "p", Text: p})
	}
	if len(sub.Points) > 0 {
		items := make([]string, 0, len(sub.Points))
		for _, p := range sub.Points {
			if strings.TrimSpace(p) != "" {
				items = append(items, strings.TrimSpace(p))
			}
		}
		if len(items) > 0 {
			blocks = append(blocks, RenderBlock{Tag: "list", Items: items})
		}
	}
	return blocks
}

func renderHTML(blocks []RenderBlock) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Tag {
		case "h1", "h2", "p":
			sb.WriteString("<" + b.Tag + ">")
			sb.WriteString(html.EscapeString(b.Text))
			sb.WriteString("</" + b.Tag + ">")
		case "list":
			sb.WriteString("<ul>")
			for _, item := range b.Items {
				sb.WriteString("<li>" + html.EscapeString(item) + "</li>")
			}
			sb.WriteString("</ul>")
		}
	}
	return sb.String()
}

// ExtractMediaURLs collects every absolute http(s) media URL found in the
// direct fields, the structured media object and the inline content blocks,
// deduplicated in first-seen order.
func ExtractMediaURLs(sub *models.Submission) []string {
	seen := make(map[string]bool)
	var urls []string

	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[raw] || !isAbsoluteHTTPURL(raw) {
			return
		}
		seen[raw] = true
		urls = append(urls, raw)
	}

	for _, u := range sub.Images {
		add(u)
	}
	add(sub.VideoURL)
	for _, u := range sub.Media.Images {
		add(u)
	}
	for _, u := range sub.Media.Videos {
		add(u)
	}
	for _, b := range sub.Blocks {
		if b.Type == models.BlockImage || b.Type == models.BlockVideo {
			add(b.URL)
		}
	}

	return urls
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
