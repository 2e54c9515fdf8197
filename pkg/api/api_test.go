package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longDocument(paragraphs int) string {
	var sb strings.Builder
	sb.WriteString("<html><head><title>Long</title></head><body>")
	for i := 0; i < paragraphs; i++ {
		sb.WriteString("<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore.")
		if i == 0 || i == paragraphs-1 {
			sb.WriteString(" needle")
		}
		sb.WriteString("</p>")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func openLong(t *testing.T, opts ...Option) *Reader {
	t.Helper()
	opts = append([]Option{WithPageSizeA6(), WithMetrics(MetricsBasic)}, opts...)
	r, err := OpenString(longDocument(40), opts...)
	require.NoError(t, err)
	return r
}

func TestPages(t *testing.T) {
	r := openLong(t)
	assert.Equal(t, "Long", r.Title())
	assert.Equal(t, 40, r.ParagraphCount())

	pages := r.Pages()
	require.Greater(t, len(pages), 1)
	assert.Equal(t, Position{}, pages[0].Start)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.Positive(t, p.Lines)
		if i > 0 {
			assert.Equal(t, pages[i-1].End, p.Start, "page %d starts where the previous one ended", p.Number)
		}
	}

	assert.Equal(t, Position{}, r.View().StartCursor().Position(), "reading position is restored")
}

func TestTurnPage(t *testing.T) {
	r := openLong(t)
	pages := r.Pages()

	next := r.TurnPage(true)
	assert.Equal(t, pages[1].Start, next.Start)

	back := r.TurnPage(false)
	assert.Negative(t, back.Start.Compare(next.Start))
}

func TestSearch(t *testing.T) {
	r := openLong(t)
	pages := r.Pages()

	matches := r.Search("NEEDLE", true)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Page)
	assert.Equal(t, 0, matches[0].Paragraph)
	assert.Equal(t, 6, matches[0].Length)
	assert.Contains(t, matches[0].Text, "needle")
	assert.Equal(t, len(pages), matches[1].Page)
	assert.Equal(t, 39, matches[1].Paragraph)

	assert.Empty(t, r.Search("NEEDLE", false))
	r.ClearSearch()
	assert.True(t, r.View().FindResultsAreEmpty())
}

func TestRenderPDF(t *testing.T) {
	r := openLong(t, WithTitle("Override"), WithDebug(true))
	assert.Equal(t, "Override", r.Title())

	var buf bytes.Buffer
	require.NoError(t, r.RenderPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestEmptyDocument(t *testing.T) {
	r, err := OpenString("", WithMetrics(MetricsBasic))
	require.NoError(t, err)
	assert.Empty(t, r.Pages())

	var buf bytes.Buffer
	require.NoError(t, r.RenderPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestOpenRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"alignment", WithAlignment("diagonal")},
		{"scrolling", WithScrolling("sideways", 0)},
		{"metrics", WithMetrics("ruler")},
		{"margins", WithMargins(500, 0, 500, 0)},
		{"language", WithHyphenationPatterns("not a tag!", nil)},
		{"pattern file", WithPatternFile("en", "does/not/exist.tex")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenString("<p>x</p>", WithMetrics(MetricsBasic), tt.opt)
			assert.Error(t, err)
		})
	}
}
