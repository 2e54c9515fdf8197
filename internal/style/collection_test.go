package style

import (
	"testing"

	"github.com/gompdf/folio/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseStyle(t *testing.T) {
	c := NewCollection(DefaultOptions(), css.MustParse(`body { font-size: 10pt; text-align: left }`))

	base := c.Base()
	require.NotNil(t, base)
	assert.True(t, base.IsBase())
	assert.Equal(t, 10.0, base.FontSize)
	assert.Equal(t, AlignLeft, base.Alignment)
	assert.Equal(t, "serif", base.FontFamily)
}

func TestDecorateIsInterned(t *testing.T) {
	c := NewCollection(DefaultOptions())

	a := c.Decorate(c.Base(), "em", "")
	b := c.Decorate(c.Base(), "em", "")
	assert.Same(t, a, b)
	assert.True(t, a.Italic)
	assert.Same(t, c.Base(), a.Parent)
	assert.Equal(t, 1, a.Depth())

	c.Reset()
	assert.NotSame(t, a, c.Decorate(c.Base(), "em", ""))
}

func TestHeadingStyle(t *testing.T) {
	c := NewCollection(DefaultOptions())

	h1 := c.Decorate(c.Base(), "h1", "")
	assert.Equal(t, 24.0, h1.FontSize)
	assert.True(t, h1.Bold)
	assert.Equal(t, AlignCenter, h1.Alignment)
	assert.False(t, h1.AllowHyphenations)
	assert.InDelta(t, 0.67*24, h1.SpaceBefore, 0.001)
	assert.InDelta(t, 0.67*24, h1.SpaceAfter, 0.001)
	assert.Zero(t, h1.FirstLineIndent)
}

func TestIndentsAccumulate(t *testing.T) {
	c := NewCollection(DefaultOptions())

	quote := c.Decorate(c.Base(), "blockquote", "")
	assert.InDelta(t, 24, quote.LeftIndent, 0.001)
	assert.InDelta(t, 24, quote.RightIndent, 0.001)

	item := c.Decorate(quote, "li", "")
	assert.InDelta(t, 24+18, item.LeftIndent, 0.001)
	assert.InDelta(t, 24, item.RightIndent, 0.001)
	assert.Equal(t, quote.SpaceBefore, item.SpaceBefore, "undeclared spacing is inherited")
}

func TestDescendantAndClassSelectors(t *testing.T) {
	c := NewCollection(DefaultOptions(), css.MustParse(`
		p.note em { color: red }
		.note { text-align: right !important }
		p { text-align: center }
	`))

	note := c.Decorate(c.Base(), "p.note", "")
	assert.Equal(t, AlignRight, note.Alignment)

	em := c.Decorate(note, "em", "")
	assert.Equal(t, "red", em.Color)

	plain := c.Decorate(c.Decorate(c.Base(), "p", ""), "em", "")
	assert.Empty(t, plain.Color)
}

func TestHyperlinkInheritance(t *testing.T) {
	c := NewCollection(DefaultOptions())

	link := c.Decorate(c.Base(), "a", "#chapter2")
	assert.Equal(t, "#chapter2", link.Hyperlink)
	assert.True(t, link.Underline)

	inner := c.Decorate(link, "b", "")
	assert.Equal(t, "#chapter2", inner.Hyperlink)
	assert.True(t, inner.Bold)
}

func TestParseLength(t *testing.T) {
	v, ok := parseLength("2em", 10, 100)
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)

	v, ok = parseLength("50%", 10, 300)
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)

	v, ok = parseLength("1in", 10, 0)
	assert.True(t, ok)
	assert.Equal(t, 72.0, v)

	_, ok = parseLength("wide", 10, 0)
	assert.False(t, ok)
}

func TestParseLineSpace(t *testing.T) {
	p, ok := parseLineSpace("1.5", 12)
	assert.True(t, ok)
	assert.Equal(t, 150, p)

	p, ok = parseLineSpace("18pt", 12)
	assert.True(t, ok)
	assert.Equal(t, 150, p)
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, Key{Tag: "a", ID: "top", Classes: []string{"ext"}}, ParseKey("a#top.ext"))
	assert.Equal(t, Key{Classes: []string{"note"}}, ParseKey(".note"))
}
