package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{"empty", "  ", nil},
		{"emphasis", "A *quiet* morning", []string{"<p>A <em>quiet</em> morning</p>"}},
		{"hard wraps", "line one\nline two", []string{"line one<br>"}},
		{"link", "see https://example.com", []string{`<a href="https://example.com">`}},
		{"strikethrough", "~~old~~", []string{"<del>old</del>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToHTML(tt.source)
			require.NoError(t, err)
			if tt.contains == nil {
				assert.Empty(t, out)
			}
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
		})
	}
}

func TestToHTMLOmitsRawHTML(t *testing.T) {
	out, err := ToHTML("<script>alert(1)</script>\n\nhello")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

func TestPlainText(t *testing.T) {
	src := "# Golden hour\n\nShot on the **coast** at\ndusk.\n\n- one\n- two"
	assert.Equal(t, "Golden hour Shot on the coast at dusk. one two", PlainText(src))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 20))
	assert.Equal(t, "A long walk…", Excerpt("A long walk along the beach", 13))
	assert.Equal(t, "unbounded text", Excerpt("unbounded text", 0))
}
