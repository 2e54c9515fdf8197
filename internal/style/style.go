package style

import (
	"github.com/gompdf/folio/internal/text"
)

// Alignment is the horizontal alignment of a paragraph's lines
type Alignment int

const (
	AlignUndefined Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
)

// Style is an immutable, fully resolved text style. Decorated styles keep
// a pointer to the style they decorate; closing a span returns to Parent.
// Styles are interned by the Collection, so pointer identity can be used
// as a cache key.
type Style struct {
	Parent    *Style
	Kind      string
	Hyperlink string

	FontFamily string
	FontSize   float64
	Bold       bool
	Italic     bool
	Underline  bool
	// LineSpacePercent scales the line height, 100 is single spacing
	LineSpacePercent int
	VerticalAlign    float64

	LeftIndent      float64
	RightIndent     float64
	FirstLineIndent float64
	SpaceBefore     float64
	SpaceAfter      float64
	Alignment       Alignment

	AllowHyphenations bool
	Color             string
}

// Font returns the font of the style
func (s *Style) Font() text.Font {
	return text.Font{
		Family: s.FontFamily,
		Size:   s.FontSize,
		Bold:   s.Bold,
		Italic: s.Italic,
	}
}

// IsBase reports whether s is the root style of its collection
func (s *Style) IsBase() bool {
	return s.Parent == nil
}

// Depth returns the number of decorations above the base style
func (s *Style) Depth() int {
	d := 0
	for p := s.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// ParseAlignment parses a CSS text-align value
func ParseAlignment(value string) (Alignment, bool) {
	switch value {
	case "left", "start":
		return AlignLeft, true
	case "right", "end":
		return AlignRight, true
	case "center":
		return AlignCenter, true
	case "justify":
		return AlignJustify, true
	}
	return AlignUndefined, false
}

// String returns the CSS name of the alignment
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	}
	return "undefined"
}
