package style

import (
	"strings"

	"github.com/gompdf/folio/internal/parser/css"
	"github.com/gompdf/folio/internal/text"
)

// Options configures the base style of a collection
type Options struct {
	FontFamily       string
	FontSize         float64
	LineSpacePercent int
	Alignment        Alignment
	FirstLineIndent  float64
	Hyphenation      bool
}

// DefaultOptions returns a justified 12pt serif base style
func DefaultOptions() Options {
	return Options{
		FontFamily:       "serif",
		FontSize:         12,
		LineSpacePercent: 120,
		Alignment:        AlignJustify,
		FirstLineIndent:  18,
		Hyphenation:      true,
	}
}

type decoration struct {
	parent    *Style
	kind      string
	hyperlink string
}

// Collection owns the base style and interns every decorated style, so
// that decorating the same parent with the same kind always yields the
// same pointer.
type Collection struct {
	options   Options
	cascade   cascade
	width     float64
	base      *Style
	decorated map[decoration]*Style
}

// NewCollection creates a collection using the built-in stylesheet
// followed by the given author stylesheets
func NewCollection(options Options, sheets ...*css.Stylesheet) *Collection {
	if options.FontSize <= 0 {
		options.FontSize = DefaultOptions().FontSize
	}
	if options.LineSpacePercent <= 0 {
		options.LineSpacePercent = 100
	}
	c := &Collection{
		options: options,
		cascade: cascade{userAgent: defaultUserAgentStyles(), author: sheets},
	}
	c.Reset()
	return c
}

// AddStylesheet appends an author stylesheet and drops resolved styles
func (c *Collection) AddStylesheet(sheet *css.Stylesheet) {
	c.cascade.author = append(c.cascade.author, sheet)
	c.Reset()
}

// SetWidth sets the width percentages resolve against. Resolved styles are
// dropped when it changes.
func (c *Collection) SetWidth(width float64) {
	if width == c.width {
		return
	}
	c.width = width
	c.Reset()
}

// Options returns the base options
func (c *Collection) Options() Options {
	return c.options
}

// Reset drops every resolved style and rebuilds the base style
func (c *Collection) Reset() {
	c.decorated = make(map[decoration]*Style)
	root := &Style{
		FontFamily:        c.options.FontFamily,
		FontSize:          c.options.FontSize,
		LineSpacePercent:  c.options.LineSpacePercent,
		Alignment:         c.options.Alignment,
		FirstLineIndent:   c.options.FirstLineIndent,
		AllowHyphenations: c.options.Hyphenation,
	}
	body := c.resolve(root, "body", "")
	body.Parent = nil
	body.Kind = ""
	c.base = body
}

// Base returns the base style
func (c *Collection) Base() *Style {
	return c.base
}

// Decorate returns parent decorated with the style of kind. An empty
// hyperlink inherits the parent's.
func (c *Collection) Decorate(parent *Style, kind, hyperlink string) *Style {
	if parent == nil {
		parent = c.base
	}
	key := decoration{parent: parent, kind: kind, hyperlink: hyperlink}
	if s, ok := c.decorated[key]; ok {
		return s
	}
	s := c.resolve(parent, kind, hyperlink)
	c.decorated[key] = s
	return s
}

func (c *Collection) resolve(parent *Style, kind, hyperlink string) *Style {
	chain := []Key{ParseKey(kind)}
	for p := parent; p != nil && p.Kind != ""; p = p.Parent {
		chain = append(chain, ParseKey(p.Kind))
	}
	computed := c.cascade.compute(chain)

	s := *parent
	s.Parent = parent
	s.Kind = kind
	if hyperlink != "" {
		s.Hyperlink = hyperlink
	}
	value := func(name string) (string, bool) {
		p, ok := computed[name]
		return strings.ToLower(strings.TrimSpace(p.Value)), ok
	}

	if v, ok := value("font-size"); ok {
		if size, ok := parseFontSize(v, parent.FontSize, c.options.FontSize); ok && size > 0 {
			s.FontSize = size
		}
	}
	if v, ok := value("font-family"); ok {
		s.FontFamily = text.ResolveFamily(v)
	}
	if v, ok := value("font-weight"); ok {
		switch v {
		case "bold", "bolder", "600", "700", "800", "900":
			s.Bold = true
		case "normal", "lighter", "100", "200", "300", "400", "500":
			s.Bold = false
		}
	}
	if v, ok := value("font-style"); ok {
		s.Italic = v == "italic" || v == "oblique"
	}
	if v, ok := value("text-decoration"); ok {
		s.Underline = strings.Contains(v, "underline")
	}
	if v, ok := value("line-height"); ok {
		if percent, ok := parseLineSpace(v, s.FontSize); ok && percent > 0 {
			s.LineSpacePercent = percent
		}
	}
	if v, ok := value("vertical-align"); ok {
		switch v {
		case "super":
			s.VerticalAlign = parent.VerticalAlign + parent.FontSize*0.33
		case "sub":
			s.VerticalAlign = parent.VerticalAlign - parent.FontSize*0.2
		case "baseline":
			s.VerticalAlign = parent.VerticalAlign
		default:
			if offset, ok := parseLength(v, s.FontSize, s.FontSize); ok {
				s.VerticalAlign = parent.VerticalAlign + offset
			}
		}
	}
	if v, ok := value("text-align"); ok {
		if a, ok := ParseAlignment(v); ok {
			s.Alignment = a
		}
	}
	if v, ok := value("text-indent"); ok {
		if indent, ok := parseLength(v, s.FontSize, c.width); ok {
			s.FirstLineIndent = indent
		}
	}
	if v, ok := value("hyphens"); ok {
		s.AllowHyphenations = v != "none"
	}
	if v, ok := value("color"); ok {
		s.Color = v
	}

	var margins [4]float64
	var declared [4]bool
	if v, ok := value("margin"); ok {
		margins, declared = parseBoxShorthand(v, s.FontSize, c.width)
	}
	for side, name := range []string{"margin-top", "margin-right", "margin-bottom", "margin-left"} {
		if v, ok := value(name); ok {
			if m, ok := parseLength(v, s.FontSize, c.width); ok {
				margins[side], declared[side] = m, true
			}
		}
	}
	if declared[0] {
		s.SpaceBefore = margins[0]
	}
	if declared[1] {
		s.RightIndent = parent.RightIndent + margins[1]
	}
	if declared[2] {
		s.SpaceAfter = margins[2]
	}
	if declared[3] {
		s.LeftIndent = parent.LeftIndent + margins[3]
	}

	return &s
}
