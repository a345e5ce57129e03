package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/seo"
	"github.com/varta-media/newsdesk/internal/textutil"
)

func newNormalizer() *ContentNormalizer {
	now := func() time.Time { return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC) }
	return NewContentNormalizer(textutil.NewSanitizer(), seo.NewBuilder(), now)
}

func TestNormalize_PlainTextAndBlocks(t *testing.T) {
	n := newNormalizer()
	sub := &models.Submission{
		Title:    "Flood Relief Begins",
		Subtitle: "Camps opened",
		Content:  "Relief operations started this morning.",
		Blocks: []models.ContentBlock{
			{Type: models.BlockParagraph, Text: "Teams reached the area by noon."},
			{Type: models.BlockParagraph, Text: "More camps are planned."},
			{Type: models.BlockImage, URL: "https://cdn.example.com/flood.jpg"},
		},
		Points: []string{"Two camps open", "Rescue boats deployed"},
	}

	content, err := n.Normalize(sub, "https://news.example.com")
	require.NoError(t, err)

	assert.Equal(t, "flood-relief-begins", content.Slug)
	assert.Equal(t,
		"Relief operations started this morning.\nTeams reached the area by noon.\nMore camps are planned.\n- Two camps open\n- Rescue boats deployed",
		content.PlainText)

	require.Len(t, content.Blocks, 5)
	assert.Equal(t, RenderBlock{Tag: "h1", Text: "Flood Relief Begins"}, content.Blocks[0])
	assert.Equal(t, RenderBlock{Tag: "h2", Text: "Camps opened"}, content.Blocks[1])
	assert.Equal(t, "list", content.Blocks[4].Tag)

	assert.Contains(t, content.ContentHTML, "<h1>Flood Relief Begins</h1>")
	assert.Contains(t, content.ContentHTML, "<li>Rescue boats deployed</li>")
}

func TestNormalize_ContentLinesAsParagraphsWithoutBlocks(t *testing.T) {
	n := newNormalizer()
	sub := &models.Submission{
		Title:   "Short Item",
		Content: "First paragraph.\n\nSecond paragraph.",
	}

	content, err := n.Normalize(sub, "")
	require.NoError(t, err)

	assert.Equal(t, "First paragraph.\nSecond paragraph.", content.PlainText)
}

func TestNormalize_JSONLDAndMeta(t *testing.T) {
	n := newNormalizer()
	sub := &models.Submission{
		Title:   "Flood Relief Begins",
		Content: "Relief operations started.",
		Tags:    []string{"floods"},
	}

	content, err := n.Normalize(sub, "https://news.example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://news.example.com/flood-relief-begins", content.Meta.CanonicalURL)
	assert.Contains(t, string(content.JSONLD), `"NewsArticle"`)
	assert.Contains(t, string(content.JSONLD), "2026-01-02T10:00:00Z")
}

func TestNormalize_HTMLEscaped(t *testing.T) {
	n := newNormalizer()
	sub := &models.Submission{
		Title:   "Alert",
		Content: `<script>alert("x")</script> storm warning`,
	}

	content, err := n.Normalize(sub, "")
	require.NoError(t, err)

	assert.NotContains(t, content.ContentHTML, "<script>")
}

func TestExtractMediaURLs(t *testing.T) {
	sub := &models.Submission{
		Images:   []string{"https://cdn.example.com/a.jpg", "not-a-url", "/relative.jpg"},
		VideoURL: "https://cdn.example.com/v.mp4",
		Media: models.MediaInput{
			Images: []string{"https://cdn.example.com/a.jpg"}, // duplicate
			Videos: []string{"http://cdn.example.com/w.mp4"},
		},
		Blocks: []models.ContentBlock{
			{Type: models.BlockImage, URL: "https://cdn.example.com/b.png"},
			{Type: models.BlockParagraph, Text: "https://ignored.example.com"},
			{Type: models.BlockVideo, URL: "ftp://cdn.example.com/x.mp4"},
		},
	}

	urls := ExtractMediaURLs(sub)

	assert.Equal(t, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/v.mp4",
		"http://cdn.example.com/w.mp4",
		"https://cdn.example.com/b.png",
	}, urls)
}

func TestMediaInput_UnmarshalShapes(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want models.MediaInput
	}{
		{
			name: "single string",
			raw:  `"https://cdn.example.com/a.jpg"`,
			want: models.MediaInput{Images: []string{"https://cdn.example.com/a.jpg"}},
		},
		{
			name: "bare list",
			raw:  `["https://cdn.example.com/a.jpg","https://cdn.example.com/b.jpg"]`,
			want: models.MediaInput{Images: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}},
		},
		{
			name: "object",
			raw:  `{"images":["https://cdn.example.com/a.jpg"],"videos":["https://cdn.example.com/v.mp4"]}`,
			want: models.MediaInput{Images: []string{"https://cdn.example.com/a.jpg"}, Videos: []string{"https://cdn.example.com/v.mp4"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got models.MediaInput
			require.NoError(t, got.UnmarshalJSON([]byte(tc.raw)))
			assert.Equal(t, tc.want, got)
		})
	}
}
