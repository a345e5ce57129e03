package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_StripsScript(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(`<p>hello</p><script>alert(1)</script>`)

	assert.Equal(t, "<p>hello</p>", out)
}

func TestSanitizer_KeepsAllowedElements(t *testing.T) {
	s := NewSanitizer()

	in := `<h1>Title</h1><ul><li>one</li></ul><div>raw</div>`
	out := s.Sanitize(in)

	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<li>one</li>")
	assert.NotContains(t, out, "<div>")
	// Text inside stripped elements survives
	assert.Contains(t, out, "raw")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "heavy-rain-lashes-hyderabad", Slugify("Heavy Rain Lashes Hyderabad"))
	assert.Equal(t, "budget-2026-27", Slugify("Budget 2026-27!"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount("one  two\nthree"))
}

func TestTrimWords(t *testing.T) {
	assert.Equal(t, "one two", TrimWords("one two three", 2))
	assert.Equal(t, "one two", TrimWords("one two", 5))
}
