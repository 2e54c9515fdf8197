package pagination

import (
	"fmt"
	"strings"

	"github.com/gompdf/folio/internal/layout"
)

// ScrollingMode decides how much of the old page shows again after a turn
type ScrollingMode int

const (
	// NoOverlapping starts the new page where the old one ended
	NoOverlapping ScrollingMode = iota
	// KeepLines keeps the given number of lines of the old page
	KeepLines
	// ScrollLines moves by the given number of lines
	ScrollLines
	// ScrollPercentage moves by the given percentage of the page height
	ScrollPercentage
)

func (m ScrollingMode) String() string {
	switch m {
	case KeepLines:
		return "keep_lines"
	case ScrollLines:
		return "scroll_lines"
	case ScrollPercentage:
		return "scroll_percentage"
	}
	return "no_overlapping"
}

// ParseScrollingMode parses the name returned by String
func ParseScrollingMode(s string) (ScrollingMode, error) {
	for _, m := range []ScrollingMode{NoOverlapping, KeepLines, ScrollLines, ScrollPercentage} {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return NoOverlapping, fmt.Errorf("unknown scrolling mode %q", s)
}

type sizeUnit int

const (
	unitPixel sizeUnit = iota
	unitLine
)

func (u sizeUnit) String() string {
	if u == unitLine {
		return "line"
	}
	return "pixel"
}

type paragraphSize struct {
	height       float64
	topMargin    float64
	bottomMargin float64
}

func infoSize(info *layout.LineInfo, unit sizeUnit) float64 {
	if unit == unitPixel {
		return info.Height + info.Descent + info.VSpaceAfter
	}
	if info.IsVisible {
		return 1
	}
	return 0
}

// paragraphSize measures the paragraph of c, or only the part before c
// when beforeCursor is set
func (v *View) paragraphSize(page *Page, c layout.WordCursor, beforeCursor bool, unit sizeUnit) paragraphSize {
	var size paragraphSize
	p := c.Paragraph()
	if p == nil {
		return size
	}
	end := p.Len()
	if beforeCursor {
		end = c.ElementIndex()
	}
	v.engine.ResetStyle()
	var info *layout.LineInfo
	for element, char := 0, 0; element < end; {
		previous := info
		info = v.engine.ProcessLine(page.area(), p, element, char, end, previous)
		element, char = info.EndElement, info.EndChar
		size.height += infoSize(info, unit)
		if previous == nil {
			size.topMargin = info.VSpaceBefore
		}
		size.bottomMargin = info.VSpaceAfter
	}
	return size
}

// skip moves c forward by size, within its paragraph
func (v *View) skip(page *Page, c *layout.WordCursor, unit sizeUnit, size float64) {
	p := c.Paragraph()
	if p == nil {
		return
	}
	end := p.Len()
	v.engine.ResetStyle()
	v.engine.ApplyStyleChanges(p, 0, c.ElementIndex())
	var info *layout.LineInfo
	for !c.IsEndOfParagraph() && size > 0 {
		info = v.engine.ProcessLine(page.area(), p, c.ElementIndex(), c.CharIndex(), end, info)
		c.MoveTo(info.EndElement, info.EndChar)
		size -= infoSize(info, unit)
	}
}

// findStart walks back from end until size (in unit) of text lies between
// the result and end. It never crosses a section boundary.
func (v *View) findStart(page *Page, end layout.WordCursor, unit sizeUnit, size float64) layout.WordCursor {
	start := end
	current := v.paragraphSize(page, start, true, unit)
	size -= current.height
	moved := !start.IsStartOfParagraph()
	start.MoveToParagraphStart()
	for size > 0 {
		previous := current
		if moved && start.Paragraph().IsEndOfSection() {
			break
		}
		if !start.PreviousParagraph() {
			break
		}
		if !start.Paragraph().IsEndOfSection() {
			moved = true
		}
		current = v.paragraphSize(page, start, false, unit)
		size -= current.height
		if unit == unitPixel {
			size += min(current.bottomMargin, previous.topMargin)
		}
	}
	v.skip(page, &start, unit, -size)

	if unit == unitPixel {
		same := start.SamePositionAs(end)
		if !same && start.IsEndOfParagraph() && end.IsStartOfParagraph() {
			next := start
			next.NextParagraph()
			same = next.SamePositionAs(end)
		}
		if same {
			v.logger.Debug().Stringer("end", end).Msg("degenerate page start, retrying by line")
			start = v.findStart(page, end, unitLine, 1)
		}
	}
	return start
}

// findStartOfPreviousPage returns the start of the page ending at end
func (v *View) findStartOfPreviousPage(page *Page, end layout.WordCursor) layout.WordCursor {
	if page.twoColumn {
		end = v.findStart(page, end, unitPixel, page.textHeight)
	}
	return v.findStart(page, end, unitPixel, page.textHeight)
}

// preparePaintInfo brings page to StateReady
func (v *View) preparePaintInfo(page *Page) {
	pages := v.pages
	page.setSize(v.layout.ColumnWidth(), v.layout.TextHeight(), v.layout.TwoColumn, page == pages.previous())
	if page.State == StateEmpty || page.State == StateReady {
		return
	}
	oldState := page.State
	v.engine.SeedLines(page.Lines)

	switch page.State {
	case StateToScrollForward:
		if !page.End.IsNull() && !page.End.IsEndOfText() {
			v.scrollForward(page)
		}
	case StateToScrollBackward:
		if !page.Start.IsNull() && !page.Start.IsStartOfText() {
			v.scrollBackward(page)
		}
	case StateStartIsKnown:
		if !page.Start.IsNull() {
			page.End = v.buildInfos(page, page.Start)
		}
	case StateEndIsKnown:
		if !page.End.IsNull() {
			page.Start = v.findStartOfPreviousPage(page, page.End)
			page.End = v.buildInfos(page, page.Start)
		}
	}
	page.State = StateReady
	v.engine.ClearLines()

	v.logger.Debug().
		Stringer("from", oldState).
		Stringer("start", page.Start).
		Stringer("end", page.End).
		Msg("page prepared")

	if page == pages.cur() {
		if oldState != StateStartIsKnown {
			pages.previous().reset()
		}
		if oldState != StateEndIsKnown {
			pages.next().reset()
		}
	}
}

func (v *View) scrollForward(page *Page) {
	var start layout.WordCursor
	switch v.scrollingMode {
	case KeepLines:
		start = page.findLineFromEnd(v.overlappingValue)
	case ScrollLines:
		start = page.findLineFromStart(v.overlappingValue)
		if start.IsEndOfParagraph() {
			start.NextParagraph()
		}
	case ScrollPercentage:
		start = page.findPercentFromStart(v.overlappingValue)
	}
	if !start.IsNull() && start.SamePositionAs(page.Start) {
		start = page.findLineFromStart(1)
	}
	if !start.IsNull() {
		end := v.buildInfos(page, start)
		if !page.isEmptyPage() && (v.scrollingMode != KeepLines || !end.SamePositionAs(page.End)) {
			page.Start, page.End = start, end
			return
		}
	}
	page.Start = page.End
	page.End = v.buildInfos(page, page.Start)
}

func (v *View) scrollBackward(page *Page) {
	switch v.scrollingMode {
	case NoOverlapping:
		page.Start = v.findStartOfPreviousPage(page, page.Start)
	case KeepLines:
		end := page.findLineFromStart(v.overlappingValue)
		if !end.IsNull() && end.SamePositionAs(page.End) {
			end = page.findLineFromEnd(1)
		}
		if end.IsNull() {
			page.Start = v.findStartOfPreviousPage(page, page.Start)
			break
		}
		start := v.findStartOfPreviousPage(page, end)
		if start.SamePositionAs(page.Start) {
			start = v.findStartOfPreviousPage(page, page.Start)
		}
		page.Start = start
	case ScrollLines:
		page.Start = v.findStart(page, page.Start, unitLine, float64(v.overlappingValue))
	case ScrollPercentage:
		page.Start = v.findStart(page, page.Start, unitPixel, page.textHeight*float64(v.overlappingValue)/100)
	}
	page.End = v.buildInfos(page, page.Start)
	if page.isEmptyPage() {
		page.Start = v.findStart(page, page.Start, unitLine, 1)
		page.End = v.buildInfos(page, page.Start)
	}
}
