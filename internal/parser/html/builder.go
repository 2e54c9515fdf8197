package html

import (
	"strconv"
	"strings"

	"github.com/gompdf/folio/internal/model"
	"github.com/gompdf/folio/internal/parser/css"
	"github.com/gompdf/folio/internal/res"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true, "li": true, "pre": true,
	"center": true, "ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "footer": true, "aside": true, "nav": true, "main": true,
	"figure": true, "figcaption": true, "address": true,
	"table": true, "tr": true, "td": true, "th": true, "caption": true,
	"section": true, "article": true,
}

var inlineTags = map[string]bool{
	"a": true, "b": true, "strong": true, "i": true, "em": true, "u": true,
	"code": true, "kbd": true, "samp": true, "tt": true, "var": true,
	"sup": true, "sub": true, "span": true, "small": true, "big": true,
	"cite": true, "dfn": true, "ins": true, "del": true, "s": true,
	"mark": true, "abbr": true, "q": true, "font": true, "label": true,
}

var skippedTags = map[string]bool{
	"script": true, "noscript": true, "template": true, "iframe": true,
	"object": true, "svg": true, "math": true, "button": true, "select": true,
}

// sectionTags close a section of the text when they end
var sectionTags = map[string]bool{"section": true, "article": true}

// Result is a document converted to a text model
type Result struct {
	Model *model.TextModel
	// Stylesheets are the author stylesheets in document order
	Stylesheets []*css.Stylesheet
	Title       string
}

// Builder converts a parsed HTML document into a text model. Block
// elements become paragraphs, inline elements become style controls named
// after the element (tag, id and classes).
type Builder struct {
	// Loader resolves <link rel="stylesheet"> references, may be nil
	Loader *res.Loader
	Logger zerolog.Logger

	mb      *model.Builder
	css     *css.Parser
	result  *Result
	blocks  []string
	inlines []inline
	// serial counts opened paragraphs
	serial int
	open   bool
	pre    int
}

type inline struct {
	kind      string
	hyperlink string
	paragraph int
}

// NewBuilder creates a builder resolving external stylesheets with loader
func NewBuilder(loader *res.Loader, logger zerolog.Logger) *Builder {
	return &Builder{Loader: loader, Logger: logger}
}

// Build converts doc into a model named id
func (b *Builder) Build(doc *Document, id string) *Result {
	b.mb = model.NewBuilder(id)
	b.css = css.NewParser()
	b.result = &Result{}
	b.blocks, b.inlines = nil, nil
	b.serial, b.open, b.pre = 0, false, 0

	if doc != nil && doc.Root != nil {
		b.walk(doc.Root)
	}
	b.closeParagraph()
	b.result.Model = b.mb.Build()
	b.Logger.Debug().
		Str("id", id).
		Int("paragraphs", b.result.Model.ParagraphCount()).
		Int("stylesheets", len(b.result.Stylesheets)).
		Msg("document built")
	return b.result
}

// kindOf names the style of an element, e.g. "p#intro.note"
func kindOf(n *Node) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(n.Data))
	if id := strings.TrimSpace(n.Attr("id")); id != "" {
		sb.WriteByte('#')
		sb.WriteString(id)
	}
	for _, class := range strings.Fields(n.Attr("class")) {
		sb.WriteByte('.')
		sb.WriteString(class)
	}
	return sb.String()
}

func (b *Builder) walk(n *Node) {
	switch n.Type {
	case html.TextNode:
		b.text(n.Data)
		return
	case html.DocumentNode:
		b.children(n)
		return
	case html.ElementNode:
	default:
		return
	}

	tag := strings.ToLower(n.Data)
	switch {
	case tag == "head":
		b.head(n)
	case tag == "style":
		b.addStylesheet(n.Text(), "style element")
	case tag == "link":
		b.link(n)
	case tag == "title":
		b.result.Title = strings.TrimSpace(n.Text())
	case skippedTags[tag]:
	case tag == "br":
		if b.open {
			b.closeParagraph()
		} else {
			b.emptyLine()
		}
	case tag == "hr":
		b.closeParagraph()
		b.emptyLine()
	case tag == "img":
		b.image(n)
	case tag == "video":
		b.video(n)
	case blockTags[tag]:
		b.block(n, tag)
	case inlineTags[tag]:
		b.inline(n)
	default:
		b.children(n)
	}
}

func (b *Builder) children(n *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

func (b *Builder) head(n *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch strings.ToLower(c.Data) {
			case "style", "link", "title":
				b.walk(c)
			}
		}
	}
}

func (b *Builder) link(n *Node) {
	href := n.Attr("href")
	if href == "" || !strings.Contains(strings.ToLower(n.Attr("rel")), "stylesheet") {
		return
	}
	if b.Loader == nil {
		b.Logger.Warn().Str("href", href).Msg("no loader for external stylesheet")
		return
	}
	r, err := b.Loader.LoadCSS(href)
	if err != nil {
		b.Logger.Warn().Err(err).Str("href", href).Msg("failed to load external stylesheet")
		return
	}
	b.addStylesheet(r.GetString(), href)
}

func (b *Builder) addStylesheet(content, source string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	sheet, err := b.css.ParseString(content)
	if err != nil {
		b.Logger.Warn().Err(err).Str("source", source).Msg("failed to parse stylesheet")
		return
	}
	b.result.Stylesheets = append(b.result.Stylesheets, sheet)
}

func (b *Builder) block(n *Node, tag string) {
	b.closeParagraph()
	b.blocks = append(b.blocks, kindOf(n))
	if tag == "pre" {
		b.pre++
	}
	b.children(n)
	b.closeParagraph()
	if tag == "pre" {
		b.pre--
	}
	b.blocks = b.blocks[:len(b.blocks)-1]
	if sectionTags[tag] {
		b.mb.EndSection()
	}
}

func (b *Builder) inline(n *Node) {
	in := inline{kind: kindOf(n)}
	if strings.EqualFold(n.Data, "a") {
		in.hyperlink = n.Attr("href")
	}
	if b.open {
		b.mb.AddControl(in.kind, true, in.hyperlink)
		in.paragraph = b.serial
	} else {
		in.paragraph = -1
	}
	b.inlines = append(b.inlines, in)
	b.children(n)
	in = b.inlines[len(b.inlines)-1]
	b.inlines = b.inlines[:len(b.inlines)-1]
	if b.open && in.paragraph == b.serial {
		b.mb.AddControl(in.kind, false, "")
	}
}

// ensureParagraph opens a paragraph and reopens the styles of the
// enclosing elements in it
func (b *Builder) ensureParagraph() {
	if b.open {
		return
	}
	b.serial++
	b.open = true
	b.mb.BeginParagraph(model.TextParagraph)
	for _, kind := range b.blocks {
		b.mb.AddControl(kind, true, "")
	}
	for i := range b.inlines {
		b.mb.AddControl(b.inlines[i].kind, true, b.inlines[i].hyperlink)
		b.inlines[i].paragraph = b.serial
	}
}

func (b *Builder) closeParagraph() {
	if !b.open {
		return
	}
	b.open = false
	b.mb.EndParagraph()
}

func (b *Builder) emptyLine() {
	b.mb.BeginParagraph(model.EmptyLineParagraph)
	b.mb.EndParagraph()
}

func (b *Builder) text(s string) {
	if b.pre > 0 {
		for i, line := range strings.Split(s, "\n") {
			if i > 0 {
				if !b.open {
					b.emptyLine()
				}
				b.closeParagraph()
			}
			if line != "" {
				b.ensureParagraph()
				b.mb.AddText(line)
			}
		}
		return
	}

	collapsed := collapseSpace(s)
	if !b.open {
		collapsed = strings.TrimLeft(collapsed, " ")
	}
	if collapsed == "" {
		return
	}
	b.ensureParagraph()
	b.mb.AddText(collapsed)
}

// collapseSpace replaces every run of HTML white space with one space
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

func (b *Builder) image(n *Node) {
	src := n.Attr("src")
	if src == "" {
		return
	}
	b.ensureParagraph()
	b.mb.AddImage(model.ImageEntry{
		ID:     src,
		Source: src,
		Width:  dimension(n.Attr("width")),
		Height: dimension(n.Attr("height")),
	})
}

func (b *Builder) video(n *Node) {
	sources := make(map[string]string)
	if src := n.Attr("src"); src != "" {
		sources[n.Attr("type")] = src
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, "source") && c.Attr("src") != "" {
			sources[c.Attr("type")] = c.Attr("src")
		}
	}
	if len(sources) == 0 {
		return
	}
	b.ensureParagraph()
	b.mb.AddVideo(sources)
}

// dimension parses an HTML width or height attribute in pixels
func dimension(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "px"), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
