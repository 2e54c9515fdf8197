package layout

import "github.com/gompdf/folio/internal/model"

// Element is one materialized item of a paragraph. The set of element
// types is closed: *Word, *Image, *Video, *Extension, *Control, HSpace,
// NBSpace and AfterParagraph.
type Element interface {
	isElement()
}

// Word is a run of non-space characters
type Word struct {
	Data []rune
	// ParagraphOffset is the offset of the first character in the
	// paragraph's text
	ParagraphOffset int
	// Marks are the search marks overlapping the word
	Marks []model.Mark
}

// Len returns the number of characters in the word
func (w *Word) Len() int {
	return len(w.Data)
}

// MarkedRange returns the part of [from, from+length) covered by mark,
// relative to the start of the word
func (w *Word) MarkedRange(mark model.Mark, from, length int) (start, end int, ok bool) {
	start = max(mark.Offset-w.ParagraphOffset, from)
	end = min(mark.Offset+mark.Length-w.ParagraphOffset, from+length)
	return start, end, start < end
}

// Image is an inline image. Width and Height are its intrinsic size.
type Image struct {
	ID     string
	Source string
	Width  float64
	Height float64
}

// Video is a placeholder for embedded video
type Video struct {
	Sources map[string]string
}

// Extension is an opaque block of fixed size
type Extension struct {
	Kind   string
	Width  float64
	Height float64
}

// Control opens or closes a styled span
type Control struct {
	Kind      string
	Start     bool
	Hyperlink string
}

// HSpace is a breakable horizontal space
type HSpace struct{}

// NBSpace is a non-breaking space
type NBSpace struct{}

// AfterParagraph marks the end of content following a skip
type AfterParagraph struct{}

func (*Word) isElement()          {}
func (*Image) isElement()         {}
func (*Video) isElement()         {}
func (*Extension) isElement()     {}
func (*Control) isElement()       {}
func (HSpace) isElement()         {}
func (NBSpace) isElement()        {}
func (AfterParagraph) isElement() {}

func isWord(e Element) bool {
	_, ok := e.(*Word)
	return ok
}

// isVisible reports whether e occupies space on a line
func isVisible(e Element) bool {
	switch e.(type) {
	case *Word, *Image, *Video, *Extension:
		return true
	}
	return false
}
