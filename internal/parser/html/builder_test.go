package html

import (
	"testing"
	"testing/fstest"

	"github.com/gompdf/folio/internal/model"
	"github.com/gompdf/folio/internal/res"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const book = `<html><head><title> Book </title><style>p { text-indent: 1em }</style></head>
<body>
<h1>Title</h1>
<p class="note">Hello   <b>bold</b> <a href="#x">link</a></p>
<br>
<section><p>One</p></section>
<p>Two</p>
<pre>a
b</pre>
<img src="x.png" width="10" height="20px"></body></html>`

func build(t *testing.T, content string, loader *res.Loader) *Result {
	t.Helper()
	doc, err := NewParser().ParseString(content)
	require.NoError(t, err)
	return NewBuilder(loader, zerolog.Nop()).Build(doc, "book")
}

func TestBuildParagraphs(t *testing.T) {
	r := build(t, book, nil)
	m := r.Model

	assert.Equal(t, "Book", r.Title)
	assert.Len(t, r.Stylesheets, 1)
	require.Equal(t, 9, m.ParagraphCount())

	assert.Equal(t, []model.Entry{
		model.ControlEntry{Kind: "h1", Start: true},
		model.TextEntry{Text: "Title"},
	}, m.Paragraph(0).Entries)

	assert.Equal(t, []model.Entry{
		model.ControlEntry{Kind: "p.note", Start: true},
		model.TextEntry{Text: "Hello "},
		model.ControlEntry{Kind: "b", Start: true},
		model.TextEntry{Text: "bold"},
		model.ControlEntry{Kind: "b"},
		model.TextEntry{Text: " "},
		model.ControlEntry{Kind: "a", Start: true, Hyperlink: "#x"},
		model.TextEntry{Text: "link"},
		model.ControlEntry{Kind: "a"},
	}, m.Paragraph(1).Entries)

	assert.Equal(t, model.EmptyLineParagraph, m.Paragraph(2).Kind)
	assert.Equal(t, []model.Entry{
		model.ControlEntry{Kind: "section", Start: true},
		model.ControlEntry{Kind: "p", Start: true},
		model.TextEntry{Text: "One"},
	}, m.Paragraph(3).Entries)
	assert.Equal(t, model.EndOfSectionParagraph, m.Paragraph(4).Kind)
	assert.Equal(t, "Two", string(m.ParagraphText(5)))

	assert.Equal(t, "a", string(m.ParagraphText(6)))
	assert.Equal(t, "b", string(m.ParagraphText(7)))

	assert.Equal(t, []model.Entry{
		model.ImageEntry{ID: "x.png", Source: "x.png", Width: 10, Height: 20},
	}, m.Paragraph(8).Entries)
}

func TestBuildLoadsLinkedStylesheets(t *testing.T) {
	fsys := fstest.MapFS{
		"doc/index.html": {Data: []byte(`<link rel="stylesheet" href="main.css"><link rel="stylesheet" href="gone.css"><p id="top">x</p>`)},
		"doc/main.css":   {Data: []byte("#top { text-align: center }")},
	}
	loader := res.NewLoader(fsys, "doc/index.html")

	r := build(t, string(fsys["doc/index.html"].Data), loader)
	require.Len(t, r.Stylesheets, 1, "missing stylesheets are skipped")
	assert.Equal(t, model.ControlEntry{Kind: "p#top", Start: true}, r.Model.Paragraph(0).Entries[0])
}

func TestBuildSkipsScriptsAndVideoSources(t *testing.T) {
	r := build(t, `<p>a<script>var x = 1;</script></p><video><source src="v.webm" type="video/webm"></video>`, nil)
	m := r.Model
	require.Equal(t, 2, m.ParagraphCount())
	assert.Equal(t, "a", string(m.ParagraphText(0)))
	assert.Equal(t, []model.Entry{
		model.VideoEntry{Sources: map[string]string{"video/webm": "v.webm"}},
	}, m.Paragraph(1).Entries)
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, " a b ", collapseSpace("\n  a \t\r b\n"))
	assert.Equal(t, "ab", collapseSpace("ab"))
}
