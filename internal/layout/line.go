package layout

import "github.com/gompdf/folio/internal/style"

// LineInfo is one broken line of a paragraph
type LineInfo struct {
	Paragraph *ParagraphCursor

	StartElement int
	StartChar    int
	// RealStart is the first element after the leading style controls
	RealStartElement int
	RealStartChar    int
	EndElement       int
	EndChar          int

	// StartStyle is the style in effect at RealStart
	StartStyle *style.Style

	IsVisible    bool
	LeftIndent   float64
	Width        float64
	Height       float64
	Descent      float64
	SpaceCounter int
	VSpaceBefore float64
	VSpaceAfter  float64
	// PreviousInfoUsed is set once the space before has been collapsed
	// against the previous line's space after
	PreviousInfoUsed bool
	// Hyphenated is set when the line ends inside a word
	Hyphenated bool

	key lineKey
}

type lineKey struct {
	paragraph *ParagraphCursor
	element   int
	char      int
	style     *style.Style
}

func newLineInfo(p *ParagraphCursor, element, char int, st *style.Style) *LineInfo {
	return &LineInfo{
		Paragraph:        p,
		StartElement:     element,
		StartChar:        char,
		RealStartElement: element,
		RealStartChar:    char,
		EndElement:       element,
		EndChar:          char,
		StartStyle:       st,
		key:              lineKey{paragraph: p, element: element, char: char, style: st},
	}
}

// IsEndOfParagraph reports whether the line ends its paragraph
func (l *LineInfo) IsEndOfParagraph() bool {
	return l.EndElement == l.Paragraph.Len()
}

// Adjust collapses the space before a paragraph's first line with the
// space after the previous line
func (l *LineInfo) Adjust(previous *LineInfo) {
	if !l.PreviousInfoUsed && previous != nil && l.StartElement == 0 && l.StartChar == 0 {
		l.Height -= min(previous.VSpaceAfter, l.VSpaceBefore)
		l.PreviousInfoUsed = true
	}
}

// Start returns the position where the line starts
func (l *LineInfo) Start() Position {
	return Position{Paragraph: l.Paragraph.Index, Element: l.StartElement, Char: l.StartChar}
}

// End returns the position right after the line
func (l *LineInfo) End() Position {
	return Position{Paragraph: l.Paragraph.Index, Element: l.EndElement, Char: l.EndChar}
}
