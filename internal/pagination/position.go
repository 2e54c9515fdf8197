package pagination

import (
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/model"
)

const lettersBufferSize = 512

// defaultLetters measures the average character width of an empty
// document
var defaultLetters = []rune("The quick brown fox jumps over the lazy dog and keeps running.")

// PagePosition returns the number of the current page and the page count.
// Long documents are estimated from their text size; documents of at most
// three pages are counted exactly.
func (v *View) PagePosition() (current, total int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pagePosition()
}

func (v *View) pagePosition() (int, int) {
	current := v.computeTextPageNumber(v.currentCharNumber(PageCurrent, false))
	total := v.computeTextPageNumber(v.sizeOfFullText())
	if total > 3 {
		return current, total
	}

	page := v.pages.cur()
	v.preparePaintInfo(page)
	if page.Start.IsNull() {
		return current, total
	}
	if page.Start.IsStartOfText() {
		current = 1
	} else {
		previous := v.preparePage(PagePrevious)
		if !previous.Start.IsNull() {
			current = 3
			if previous.Start.IsStartOfText() {
				current = 2
			}
		}
	}
	total = current
	if page.End.IsNull() {
		return current, total
	}
	if !page.End.IsEndOfText() {
		next := v.preparePage(PageNext)
		if !next.End.IsNull() {
			total += 2
			if next.End.IsEndOfText() {
				total--
			}
		}
	}
	return current, total
}

// Progress is the reading progress as current page over page count
func (v *View) Progress() float64 {
	current, total := v.PagePosition()
	return float64(current) / float64(total)
}

// ScrollbarFullSize is the size of the whole text in characters
func (v *View) ScrollbarFullSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sizeOfFullText()
}

// ScrollbarThumbPosition is the number of characters before the page
func (v *View) ScrollbarThumbPosition(which PageIndex) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.currentCharNumber(which, true)
}

// ScrollbarThumbLength is the number of characters on the page
func (v *View) ScrollbarThumbLength(which PageIndex) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return max(1, v.currentCharNumber(which, false)-v.currentCharNumber(which, true))
}

func (v *View) sizeOfFullText() int {
	if v.isEmpty() {
		return 1
	}
	return v.model.TextLengthBefore(v.model.ParagraphCount())
}

// sizeOfTextBeforeCursor estimates the characters before c, spreading a
// paragraph's length evenly over its elements. It returns -1 for a null
// cursor.
func (v *View) sizeOfTextBeforeCursor(c layout.WordCursor) int {
	p := c.Paragraph()
	if p == nil {
		return -1
	}
	size := v.model.TextLengthBefore(p.Index)
	if n := p.Len(); n > 0 {
		size += (v.model.TextLengthBefore(p.Index+1) - size) * c.ElementIndex() / n
	}
	return size
}

func (v *View) currentCharNumber(which PageIndex, start bool) int {
	if v.isEmpty() {
		return 0
	}
	page := v.preparePage(which)
	if start {
		return max(0, v.sizeOfTextBeforeCursor(page.Start))
	}
	end := v.sizeOfTextBeforeCursor(page.End)
	if end == -1 {
		end = v.sizeOfFullText() - 1
	}
	return max(1, end)
}

func (v *View) computeCharWidth() float64 {
	if v.charWidth >= 0 && v.lettersModel == v.model {
		return v.charWidth
	}
	v.lettersModel = v.model
	letters := lettersOf(v.model)
	if len(letters) == 0 {
		letters = defaultLetters
	}
	v.charWidth = v.engine.StringWidth(letters) / float64(len(letters))
	return v.charWidth
}

// lettersOf samples text from the middle of the document
func lettersOf(m model.Model) []rune {
	if m == nil {
		return nil
	}
	var buf []rune
	for i := m.ParagraphCount() / 2; i < m.ParagraphCount() && len(buf) < lettersBufferSize; i++ {
		for _, e := range m.Paragraph(i).Entries {
			if t, ok := e.(model.TextEntry); ok {
				for _, r := range t.Text {
					if len(buf) == lettersBufferSize {
						break
					}
					buf = append(buf, r)
				}
			}
		}
	}
	return buf
}

// computeCharsPerPage estimates how many characters fit on a page set in
// the base style
func (v *View) computeCharsPerPage() float64 {
	v.engine.ResetStyle()
	base := v.engine.Style()

	width := v.layout.ColumnWidth()
	height := v.layout.TextHeight()
	n := v.model.ParagraphCount()
	charsPerParagraph := float64(v.model.TextLengthBefore(n)) / float64(n)
	if charsPerParagraph <= 0 {
		charsPerParagraph = 1
	}
	charWidth := v.computeCharWidth()
	if charWidth <= 0 {
		return 0
	}

	effectiveWidth := width - (base.FirstLineIndent+0.5*width)/charsPerParagraph
	charsPerLine := min(effectiveWidth/charWidth, charsPerParagraph*1.2)
	lineHeight := v.engine.WordHeight() + v.engine.Descent()
	if lineHeight <= 0 {
		return 0
	}
	effectiveHeight := int(height - (base.SpaceBefore+base.SpaceAfter/2)/charsPerParagraph)
	lines := int(float64(effectiveHeight) / lineHeight)

	chars := charsPerLine * float64(lines)
	if v.layout.TwoColumn {
		chars *= 2
	}
	return chars
}

// computeTextPageNumber converts a text size into a page number, never
// less than 1
func (v *View) computeTextPageNumber(size int) int {
	if v.isEmpty() {
		return 1
	}
	charsPerPage := v.computeCharsPerPage()
	if charsPerPage <= 0 {
		return 1
	}
	factor := 1 / charsPerPage
	return max(int(float64(size)*factor+1-0.5*factor), 1)
}

// GotoPage shows the estimated page n. Numbers past the end show the last
// page.
func (v *View) GotoPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.isEmpty() {
		return
	}

	size := int(float64(n) * v.computeCharsPerPage())
	p := v.model.FindParagraphByTextLength(size)
	if p > 0 && v.model.TextLengthBefore(p+1) > size {
		p--
	}
	for p > 0 && v.model.TextLengthBefore(p+1) == v.model.TextLengthBefore(p) {
		p--
	}
	end := layout.NewWordCursor(v.cache, p)
	if v.model.TextLengthBefore(p+1) > v.model.TextLengthBefore(p) {
		end.MoveToParagraphEnd()
	}
	v.gotoPositionByEnd(end.Position())
}
