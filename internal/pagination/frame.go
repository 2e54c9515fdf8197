package pagination

import (
	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
)

// HighlightArea is a highlighting as drawn on one page
type HighlightArea struct {
	Highlighting *highlight.Highlighting
	Areas        []layout.ElementArea
	Hull         []layout.Rect
}

// MarkSpan is the part of a word area covered by a search mark
type MarkSpan struct {
	Area   layout.ElementArea
	XStart float64
	XEnd   float64
}

// Frame is everything needed to draw one page
type Frame struct {
	Page   PageIndex
	Layout Layout
	Start  layout.Position
	End    layout.Position
	Areas  []layout.ElementArea
	// Highlights lists the selection first, then highlightings, then
	// bookmarks
	Highlights []HighlightArea
	Marks      []MarkSpan
	Outline    []layout.Rect
	// LeftCursor and RightCursor are the selection handles, nil when not
	// on the page
	LeftCursor  *highlight.Point
	RightCursor *highlight.Point
}

// Paint lays out a page, records its element areas and returns what to
// draw. It returns nil when the page has no known bounds.
func (v *View) Paint(which PageIndex) *Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	page := v.pages.get(which)
	page.Regions.Clear()
	page = v.preparePage(which)
	if page.Start.IsNull() || page.End.IsNull() {
		return nil
	}

	l := v.layout
	x, y := l.Margins.Left, l.Margins.Top
	maxY := l.Margins.Top + l.TextHeight()
	column := 0
	var previous *layout.LineInfo
	for i, info := range page.Lines {
		info.Adjust(previous)
		v.engine.PlaceLine(&page.Regions, info, x, y, maxY, column, page.area())
		y += info.Height + info.Descent + info.VSpaceAfter
		if i+1 == page.Column0Height {
			y = l.Margins.Top
			x += l.ColumnWidth() + l.ColumnGap
			column = 1
		}
		previous = info
	}
	v.engine.ResetStyle()

	f := &Frame{
		Page:   which,
		Layout: l,
		Start:  page.Start.Position(),
		End:    page.End.Position(),
		Areas:  page.Regions.Areas(),
	}
	for _, h := range v.findHighlights(page) {
		f.Highlights = append(f.Highlights, HighlightArea{
			Highlighting: h,
			Areas:        h.Areas(&page.Regions),
			Hull:         h.Hull(&page.Regions),
		})
	}
	f.Marks = v.markSpans(f.Areas)
	if v.showOutline {
		if r := page.Regions.Region(v.outline); r != nil {
			f.Outline = r.Hull()
		}
	}
	if p, ok := v.selection.CursorPoint(&page.Regions, highlight.CursorLeft); ok {
		f.LeftCursor = &p
	}
	if p, ok := v.selection.CursorPoint(&page.Regions, highlight.CursorRight); ok {
		f.RightCursor = &p
	}
	return f
}

func (v *View) findHighlights(page *Page) []*highlight.Highlighting {
	var out []*highlight.Highlighting
	if h, ok := v.selection.Highlighting(v.cache); ok && h.Intersects(page.Start, page.End) {
		out = append(out, h)
	}
	out = append(out, v.highlights.Intersecting(page.Start, page.End)...)
	return append(out, v.bookmarks.Intersecting(page.Start, page.End)...)
}

func (v *View) markSpans(areas []layout.ElementArea) []MarkSpan {
	var spans []MarkSpan
	for _, a := range areas {
		w, ok := a.Element.(*layout.Word)
		if !ok || len(w.Marks) == 0 {
			continue
		}
		v.engine.SetStyle(a.Style)
		from := a.Position.Char
		for _, m := range w.Marks {
			start, end, ok := w.MarkedRange(m, from, a.Length)
			if !ok {
				continue
			}
			x := a.XStart + v.engine.StringWidth(w.Data[from:start])
			spans = append(spans, MarkSpan{
				Area:   a,
				XStart: x,
				XEnd:   x + v.engine.StringWidth(w.Data[start:end]),
			})
		}
	}
	v.engine.ResetStyle()
	return spans
}
