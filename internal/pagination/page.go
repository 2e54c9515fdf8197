package pagination

import (
	"github.com/gompdf/folio/internal/layout"
)

// PaintState is the layout stage of a page
type PaintState int

const (
	// StateEmpty means neither bound of the page is known
	StateEmpty PaintState = iota
	StateStartIsKnown
	StateEndIsKnown
	StateToScrollForward
	StateToScrollBackward
	// StateReady means the lines of the page are built
	StateReady
)

func (s PaintState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateStartIsKnown:
		return "start_is_known"
	case StateEndIsKnown:
		return "end_is_known"
	case StateToScrollForward:
		return "to_scroll_forward"
	case StateToScrollBackward:
		return "to_scroll_backward"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Page is one screen of text: its bounds, its lines and, once painted,
// the areas of its elements
type Page struct {
	Start layout.WordCursor
	End   layout.WordCursor
	Lines []*layout.LineInfo
	// Column0Height is the number of lines in the first column, 0 while
	// the first column is open
	Column0Height int
	State         PaintState
	Regions       layout.RegionIndex

	columnWidth float64
	textHeight  float64
	twoColumn   bool
}

func (p *Page) reset() {
	p.Start.Reset()
	p.End.Reset()
	p.Lines = nil
	p.Column0Height = 0
	p.State = StateEmpty
}

func (p *Page) moveStartCursor(c layout.WordCursor) {
	p.Start = c
	p.End.Reset()
	p.Lines = nil
	p.State = StateStartIsKnown
}

func (p *Page) moveEndCursor(c layout.WordCursor) {
	p.End = c
	p.Start.Reset()
	p.Lines = nil
	p.State = StateEndIsKnown
}

func (p *Page) area() layout.Area {
	return layout.Area{Width: p.columnWidth, Height: p.textHeight}
}

// setSize updates the text area. A resized page drops its lines and keeps
// the bound that will be used to rebuild it, preferring the end when
// keepEnd is set.
func (p *Page) setSize(columnWidth, textHeight float64, twoColumn, keepEnd bool) {
	if p.columnWidth == columnWidth && p.textHeight == textHeight && p.twoColumn == twoColumn {
		return
	}
	p.columnWidth, p.textHeight, p.twoColumn = columnWidth, textHeight, twoColumn
	if p.State == StateEmpty {
		return
	}
	p.Lines = nil
	p.Column0Height = 0
	if keepEnd {
		switch {
		case !p.End.IsNull():
			p.Start.Reset()
			p.State = StateEndIsKnown
		case !p.Start.IsNull():
			p.End.Reset()
			p.State = StateStartIsKnown
		}
		return
	}
	switch {
	case !p.Start.IsNull():
		p.End.Reset()
		p.State = StateStartIsKnown
	case !p.End.IsNull():
		p.Start.Reset()
		p.State = StateEndIsKnown
	}
}

func (p *Page) cursorAt(info *layout.LineInfo, element, char int) layout.WordCursor {
	c := p.Start
	if c.IsNull() {
		c = p.End
	}
	c.MoveToParagraph(info.Paragraph.Index)
	c.MoveTo(element, char)
	return c
}

// findLineFromStart returns the end of the n-th visible line
func (p *Page) findLineFromStart(n int) layout.WordCursor {
	if len(p.Lines) == 0 || n == 0 {
		return layout.WordCursor{}
	}
	var info *layout.LineInfo
	for _, info = range p.Lines {
		if info.IsVisible {
			n--
			if n == 0 {
				break
			}
		}
	}
	return p.cursorAt(info, info.EndElement, info.EndChar)
}

// findLineFromEnd returns the start of the n-th visible line counted from
// the bottom, never going above the second line
func (p *Page) findLineFromEnd(n int) layout.WordCursor {
	if len(p.Lines) == 0 || n == 0 {
		return layout.WordCursor{}
	}
	i := len(p.Lines) - 1
	for ; i > 0; i-- {
		if p.Lines[i].IsVisible {
			n--
			if n == 0 {
				break
			}
		}
	}
	info := p.Lines[i]
	return p.cursorAt(info, info.StartElement, info.StartChar)
}

// findPercentFromStart returns the end of the first line reaching percent
// of the page height
func (p *Page) findPercentFromStart(percent int) layout.WordCursor {
	if len(p.Lines) == 0 {
		return layout.WordCursor{}
	}
	height := p.textHeight * float64(percent) / 100
	visible := false
	var info *layout.LineInfo
	for _, info = range p.Lines {
		if info.IsVisible {
			visible = true
		}
		height -= info.Height + info.Descent + info.VSpaceAfter
		if visible && height <= 0 {
			break
		}
	}
	return p.cursorAt(info, info.EndElement, info.EndChar)
}

// isEmptyPage reports whether no line of the page draws anything
func (p *Page) isEmptyPage() bool {
	for _, info := range p.Lines {
		if info.IsVisible {
			return false
		}
	}
	return true
}
