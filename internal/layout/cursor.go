package layout

import (
	"fmt"

	"github.com/gompdf/folio/internal/model"
)

// Position is a location in the document
type Position struct {
	Paragraph int
	Element   int
	Char      int
}

// Compare orders positions by paragraph, element, then char
func (p Position) Compare(o Position) int {
	if c := p.CompareIgnoreChar(o); c != 0 {
		return c
	}
	return cmp(p.Char, o.Char)
}

// CompareIgnoreChar orders positions by paragraph, then element
func (p Position) CompareIgnoreChar(o Position) int {
	if p.Paragraph != o.Paragraph {
		return cmp(p.Paragraph, o.Paragraph)
	}
	return cmp(p.Element, o.Element)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Paragraph, p.Element, p.Char)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// WordCursor is a position resolved lazily through a CursorCache. The zero
// value is the null cursor, meaning "not known yet". Cursors are values:
// assigning one copies it.
type WordCursor struct {
	cache *CursorCache
	pos   Position
}

// NewWordCursor returns a cursor at the start of paragraph
func NewWordCursor(cache *CursorCache, paragraph int) WordCursor {
	return WordCursor{cache: cache, pos: Position{Paragraph: paragraph}}
}

// NewWordCursorAt returns a cursor at p
func NewWordCursorAt(cache *CursorCache, p Position) WordCursor {
	c := NewWordCursor(cache, p.Paragraph)
	c.MoveTo(p.Element, p.Char)
	return c
}

// IsNull reports whether the cursor is unset
func (c WordCursor) IsNull() bool {
	return c.cache == nil
}

// Reset makes the cursor null
func (c *WordCursor) Reset() {
	*c = WordCursor{}
}

// Position returns the cursor position
func (c WordCursor) Position() Position {
	return c.pos
}

// ParagraphIndex returns the paragraph of the cursor
func (c WordCursor) ParagraphIndex() int {
	return c.pos.Paragraph
}

// ElementIndex returns the element of the cursor
func (c WordCursor) ElementIndex() int {
	return c.pos.Element
}

// CharIndex returns the character within the element
func (c WordCursor) CharIndex() int {
	return c.pos.Char
}

// Paragraph resolves the paragraph cursor, nil for a null cursor
func (c WordCursor) Paragraph() *ParagraphCursor {
	if c.cache == nil {
		return nil
	}
	return c.cache.Get(c.pos.Paragraph)
}

// Element returns the element under the cursor, nil at the end of the
// paragraph
func (c WordCursor) Element() Element {
	p := c.Paragraph()
	if p == nil || c.pos.Element >= p.Len() {
		return nil
	}
	return p.Element(c.pos.Element)
}

// MoveTo moves within the current paragraph. Out of range indices clamp;
// a char index only sticks inside a word.
func (c *WordCursor) MoveTo(element, char int) {
	if c.IsNull() {
		return
	}
	if element == 0 && char == 0 {
		c.pos.Element, c.pos.Char = 0, 0
		return
	}
	element = max(element, 0)
	size := c.Paragraph().Len()
	if element > size {
		c.pos.Element, c.pos.Char = size, 0
		return
	}
	c.pos.Element = element
	c.setChar(char)
}

func (c *WordCursor) setChar(char int) {
	c.pos.Char = 0
	if char <= 0 {
		return
	}
	if w, ok := c.Element().(*Word); ok && char <= w.Len() {
		c.pos.Char = char
	}
}

// MoveToParagraph moves to the start of paragraph i
func (c *WordCursor) MoveToParagraph(i int) {
	if c.IsNull() || i == c.pos.Paragraph {
		return
	}
	i = min(i, c.cache.Model().ParagraphCount()-1)
	c.pos = Position{Paragraph: max(i, 0)}
}

// MoveToParagraphStart moves to the first element of the paragraph
func (c *WordCursor) MoveToParagraphStart() {
	if !c.IsNull() {
		c.pos.Element, c.pos.Char = 0, 0
	}
}

// MoveToParagraphEnd moves past the last element of the paragraph
func (c *WordCursor) MoveToParagraphEnd() {
	if !c.IsNull() {
		c.pos.Element, c.pos.Char = c.Paragraph().Len(), 0
	}
}

// NextParagraph moves to the start of the next paragraph. It reports
// false at the last paragraph.
func (c *WordCursor) NextParagraph() bool {
	if c.IsNull() || c.Paragraph().IsLast() {
		return false
	}
	c.pos = Position{Paragraph: c.pos.Paragraph + 1}
	return true
}

// PreviousParagraph moves to the start of the previous paragraph. It
// reports false at the first paragraph.
func (c *WordCursor) PreviousParagraph() bool {
	if c.IsNull() || c.pos.Paragraph == 0 {
		return false
	}
	c.pos = Position{Paragraph: c.pos.Paragraph - 1}
	return true
}

// IsStartOfParagraph reports whether the cursor is on the first element
func (c WordCursor) IsStartOfParagraph() bool {
	return c.pos.Element == 0 && c.pos.Char == 0
}

// IsEndOfParagraph reports whether the cursor is past the last element
func (c WordCursor) IsEndOfParagraph() bool {
	p := c.Paragraph()
	return p != nil && c.pos.Element == p.Len()
}

// IsStartOfText reports whether the cursor is at the start of the document
func (c WordCursor) IsStartOfText() bool {
	return !c.IsNull() && c.pos.Paragraph == 0 && c.IsStartOfParagraph()
}

// IsEndOfText reports whether the cursor is at the end of the document
func (c WordCursor) IsEndOfText() bool {
	return c.IsEndOfParagraph() && c.Paragraph().IsLast()
}

// SamePositionAs reports whether both cursors point to the same position
func (c WordCursor) SamePositionAs(o WordCursor) bool {
	return c.pos == o.pos
}

// Compare orders cursors by position
func (c WordCursor) Compare(o WordCursor) int {
	return c.pos.Compare(o.pos)
}

// Mark returns the search position of the cursor: the offset of the first
// word at or after it, or the start of the next paragraph.
func (c WordCursor) Mark() (model.Mark, bool) {
	p := c.Paragraph()
	if p == nil {
		return model.Mark{}, false
	}
	for i := c.pos.Element; i < p.Len(); i++ {
		if w, ok := p.Element(i).(*Word); ok {
			return model.Mark{Paragraph: p.Index, Offset: w.ParagraphOffset}, true
		}
	}
	return model.Mark{Paragraph: p.Index + 1}, true
}

// Rebuild re-resolves the cursor after the cache was evicted, clamping it
// into the rematerialized paragraph
func (c *WordCursor) Rebuild() {
	if c.IsNull() {
		return
	}
	element, char := c.pos.Element, c.pos.Char
	c.pos.Element, c.pos.Char = 0, 0
	c.MoveTo(element, char)
}

func (c WordCursor) String() string {
	if c.IsNull() {
		return "null"
	}
	return c.pos.String()
}
