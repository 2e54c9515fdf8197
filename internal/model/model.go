package model

// ParagraphKind distinguishes regular text paragraphs from structural markers
type ParagraphKind int

const (
	// TextParagraph is a regular paragraph of text and inline content
	TextParagraph ParagraphKind = iota
	// EmptyLineParagraph renders as a single blank line
	EmptyLineParagraph
	// EndOfSectionParagraph marks a section boundary (e.g. a chapter end)
	EndOfSectionParagraph
	// AfterSkipParagraph marks the paragraph following skipped content
	AfterSkipParagraph
)

// Entry is one item of a paragraph as stored by the model.
// The set of entry types is closed: TextEntry, ControlEntry, ImageEntry,
// VideoEntry and ExtensionEntry.
type Entry interface {
	isEntry()
}

// TextEntry is a run of text
type TextEntry struct {
	Text string
}

// ControlEntry opens or closes a styled span. Kind is the style key
// (usually an HTML tag name) resolved by the style collection.
type ControlEntry struct {
	Kind      string
	Start     bool
	Hyperlink string
}

// ImageEntry references an image. Width and Height are the intrinsic
// size in pixels when known.
type ImageEntry struct {
	ID     string
	Source string
	Width  float64
	Height float64
}

// VideoEntry references a video by its alternative sources
type VideoEntry struct {
	Sources map[string]string
}

// ExtensionEntry is an opaque block of fixed size
type ExtensionEntry struct {
	Kind   string
	Width  float64
	Height float64
}

func (TextEntry) isEntry()      {}
func (ControlEntry) isEntry()   {}
func (ImageEntry) isEntry()     {}
func (VideoEntry) isEntry()     {}
func (ExtensionEntry) isEntry() {}

// Paragraph is an immutable ordered sequence of entries
type Paragraph struct {
	Kind    ParagraphKind
	Entries []Entry
}

// TextLength returns the number of characters in the paragraph's text entries
func (p Paragraph) TextLength() int {
	n := 0
	for _, e := range p.Entries {
		if t, ok := e.(TextEntry); ok {
			n += len([]rune(t.Text))
		}
	}
	return n
}

// Mark is a search match: Length characters starting at Offset in the
// text of paragraph Paragraph.
type Mark struct {
	Paragraph int
	Offset    int
	Length    int
}

// Compare orders marks by paragraph, then offset
func (m Mark) Compare(o Mark) int {
	switch {
	case m.Paragraph != o.Paragraph:
		return cmpInt(m.Paragraph, o.Paragraph)
	default:
		return cmpInt(m.Offset, o.Offset)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Model is the document consumed by the layout engine
type Model interface {
	ParagraphCount() int
	Paragraph(i int) Paragraph
	// TextLengthBefore returns the number of characters in paragraphs [0, i)
	TextLengthBefore(i int) int
	// FindParagraphByTextLength returns the first paragraph whose end
	// offset is at least n
	FindParagraphByTextLength(n int) int

	Search(text string, from, to int, ignoreCase bool) int
	Marks() []Mark
	FirstMark() (Mark, bool)
	LastMark() (Mark, bool)
	NextMark(m Mark) (Mark, bool)
	PreviousMark(m Mark) (Mark, bool)
	RemoveAllMarks()
	// MarksIn returns the marks of one paragraph in order
	MarksIn(paragraph int) []Mark
}
