package pagination

import (
	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/model"
)

// Search marks every occurrence of text and moves to a match: the first or
// last one of the document when wholeText is set, otherwise the one
// following (or, backward, preceding) the current page start. It returns
// the number of matches.
func (v *View) Search(text string, ignoreCase, wholeText, backward bool) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.model == nil || text == "" {
		return 0
	}

	count := v.model.Search(text, 0, v.model.ParagraphCount(), ignoreCase)
	v.logger.Debug().Str("text", text).Int("matches", count).Msg("search")
	v.pages.previous().reset()
	v.pages.next().reset()
	if v.pages.cur().Start.IsNull() {
		return count
	}

	v.rebuildPaintInfo()
	if count > 0 {
		var (
			mark model.Mark
			ok   bool
		)
		switch {
		case wholeText && backward:
			mark, ok = v.model.LastMark()
		case wholeText:
			mark, ok = v.model.FirstMark()
		default:
			if position, has := v.pages.cur().Start.Mark(); has {
				if backward {
					mark, ok = v.model.PreviousMark(position)
				} else {
					mark, ok = v.model.NextMark(position)
				}
			}
		}
		if ok {
			v.gotoMark(mark)
		}
	}
	v.invalidate("search")
	return count
}

// CanFindNext reports whether a match follows the current page
func (v *View) CanFindNext() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.nextMark()
	return ok
}

func (v *View) nextMark() (model.Mark, bool) {
	end := v.pages.cur().End
	if v.model == nil || end.IsNull() {
		return model.Mark{}, false
	}
	position, ok := end.Mark()
	if !ok {
		return model.Mark{}, false
	}
	return v.model.NextMark(position)
}

// FindNext moves to the first match after the current page
func (v *View) FindNext() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if mark, ok := v.nextMark(); ok {
		v.gotoMark(mark)
	}
}

// CanFindPrevious reports whether a match precedes the current page
func (v *View) CanFindPrevious() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.previousMark()
	return ok
}

func (v *View) previousMark() (model.Mark, bool) {
	start := v.pages.cur().Start
	if v.model == nil || start.IsNull() {
		return model.Mark{}, false
	}
	position, ok := start.Mark()
	if !ok {
		return model.Mark{}, false
	}
	return v.model.PreviousMark(position)
}

// FindPrevious moves to the last match before the current page
func (v *View) FindPrevious() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if mark, ok := v.previousMark(); ok {
		v.gotoMark(mark)
	}
}

// FindResultsAreEmpty reports whether there are no search marks
func (v *View) FindResultsAreEmpty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.findResultsAreEmpty()
}

func (v *View) findResultsAreEmpty() bool {
	return v.model == nil || len(v.model.Marks()) == 0
}

// ClearFindResults drops the search marks
func (v *View) ClearFindResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.findResultsAreEmpty() {
		return
	}
	v.model.RemoveAllMarks()
	v.rebuildPaintInfo()
	v.invalidate("clear find results")
}

// GotoMark moves forward to the page showing mark
func (v *View) GotoMark(mark model.Mark) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gotoMark(mark)
}

func (v *View) gotoMark(mark model.Mark) {
	if v.isEmpty() {
		return
	}
	v.pages.previous().reset()
	v.pages.next().reset()
	current := v.pages.cur()
	repaint := false
	if current.Start.IsNull() {
		repaint = true
		v.preparePaintInfo(current)
	}
	if current.Start.IsNull() {
		return
	}
	if start, _ := current.Start.Mark(); current.Start.ParagraphIndex() != mark.Paragraph || start.Compare(mark) > 0 {
		repaint = true
		v.gotoPosition(layout.Position{Paragraph: mark.Paragraph})
		current = v.pages.cur()
		v.preparePaintInfo(current)
	}
	if current.End.IsNull() {
		v.preparePaintInfo(current)
	}
	for !current.End.IsEndOfText() {
		end, _ := current.End.Mark()
		if mark.Compare(end) <= 0 {
			break
		}
		repaint = true
		v.turnPage(true, NoOverlapping, 0)
		v.preparePaintInfo(current)
	}
	if repaint {
		v.invalidate("goto mark")
	}
}

// GotoHighlighting moves forward to the page showing h
func (v *View) GotoHighlighting(h *highlight.Highlighting) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if h == nil || v.isEmpty() {
		return
	}
	v.pages.previous().reset()
	v.pages.next().reset()
	current := v.pages.cur()
	repaint := false
	if current.Start.IsNull() {
		repaint = true
		v.preparePaintInfo(current)
	}
	if current.Start.IsNull() {
		return
	}
	if !h.Intersects(current.Start, current.End) {
		repaint = true
		v.gotoPosition(layout.Position{Paragraph: h.Start.Paragraph})
		v.preparePaintInfo(current)
	}
	for !h.Intersects(current.Start, current.End) && !current.End.IsEndOfText() {
		repaint = true
		v.turnPage(true, NoOverlapping, 0)
		v.preparePaintInfo(current)
	}
	if repaint {
		v.invalidate("goto highlighting")
	}
}
