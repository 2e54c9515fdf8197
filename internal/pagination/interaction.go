package pagination

import (
	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
)

// Highlight replaces the manual highlighting with [start, end]
func (v *View) Highlight(start, end layout.Position) *highlight.Highlighting {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.highlights.RemoveKind(highlight.KindManual)
	h := highlight.New(highlight.KindManual, start, end)
	v.highlights.Add(h)
	v.invalidate("highlighting")
	return h
}

// AddHighlighting adds h to the highlightings
func (v *View) AddHighlighting(h *highlight.Highlighting) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.highlights.Add(h)
	v.invalidate("highlighting")
}

// AddHighlightings adds every highlighting of hs
func (v *View) AddHighlightings(hs []*highlight.Highlighting) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.highlights.AddAll(hs)
	v.invalidate("highlighting")
}

// RemoveHighlightings removes the highlightings of kind
func (v *View) RemoveHighlightings(kind highlight.Kind) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.highlights.RemoveKind(kind) {
		return false
	}
	v.invalidate("highlighting")
	return true
}

// RemoveHighlighting removes h and reports whether it was shown
func (v *View) RemoveHighlighting(h *highlight.Highlighting) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.highlights.Remove(h) {
		return false
	}
	v.invalidate("highlighting")
	return true
}

// ClearHighlighting removes the manual highlighting
func (v *View) ClearHighlighting() {
	v.RemoveHighlightings(highlight.KindManual)
}

// Highlightings returns the highlightings in document order
func (v *View) Highlightings() []*highlight.Highlighting {
	return v.highlights.All()
}

// AddBookmark adds a bookmark highlighting
func (v *View) AddBookmark(h *highlight.Highlighting) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bookmarks.Add(h)
	v.sink.Repaint("bookmark")
}

// RemoveBookmarks removes the bookmarks of kind
func (v *View) RemoveBookmarks(kind highlight.Kind) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.bookmarks.RemoveKind(kind) {
		return false
	}
	v.sink.Repaint("bookmark")
	return true
}

// RemoveBookmark removes the bookmark h
func (v *View) RemoveBookmark(h *highlight.Highlighting) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.bookmarks.Remove(h) {
		return false
	}
	v.sink.Repaint("bookmark")
	return true
}

// Bookmarks returns the bookmarks in document order
func (v *View) Bookmarks() []*highlight.Highlighting {
	return v.bookmarks.All()
}

// HasBookmark reports whether a bookmark lies on the current page
func (v *View) HasBookmark() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	page := v.pages.cur()
	v.preparePaintInfo(page)
	return len(v.bookmarks.Intersecting(page.Start, page.End)) > 0
}

func (v *View) regions() *layout.RegionIndex {
	return &v.pages.cur().Regions
}

// ElementAt returns the area of the current page under the point
func (v *View) ElementAt(x, y float64) *layout.ElementArea {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.regions().ElementAt(x, y, v.layout.ColumnAt(x))
}

// FindRegion returns the region of the current page nearest to the point
func (v *View) FindRegion(x, y, maxDistance float64, filter layout.Filter) *layout.Region {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.regions().FindRegion(x, y, maxDistance, filter)
}

// HighlightingAt returns the highlighting or bookmark covering the region
// of the current page nearest to the point, if any
func (v *View) HighlightingAt(x, y, maxDistance float64) *highlight.Highlighting {
	v.mu.Lock()
	defer v.mu.Unlock()
	r := v.regions().FindRegion(x, y, maxDistance, layout.AnyRegion)
	if r == nil {
		return nil
	}
	if h := v.highlights.At(r.Soul); h != nil {
		return h
	}
	return v.bookmarks.At(r.Soul)
}

// OutlineRegion outlines the region with the given soul
func (v *View) OutlineRegion(s *layout.Soul) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.outline = s
	v.showOutline = s != nil
	v.sink.Repaint("outline")
}

// HideOutline stops drawing the outline
func (v *View) HideOutline() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showOutline = false
	v.sink.Repaint("outline")
}

// OutlinedRegion returns the outlined region of the current page
func (v *View) OutlinedRegion() *layout.Region {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.regions().Region(v.outline)
}

// NextRegion returns the region after (or before) the outlined one
func (v *View) NextRegion(forward bool, filter layout.Filter) *layout.Region {
	v.mu.Lock()
	defer v.mu.Unlock()
	var from *layout.Soul
	if r := v.regions().Region(v.outline); r != nil {
		from = &r.Soul
	}
	return v.regions().NextRegion(from, forward, filter)
}

// FindHighlighting returns the highlighting with a background under the
// point
func (v *View) FindHighlighting(x, y, maxDistance float64) *highlight.Highlighting {
	v.mu.Lock()
	defer v.mu.Unlock()
	r := v.regions().FindRegion(x, y, maxDistance, layout.AnyRegion)
	if r == nil {
		return nil
	}
	for _, h := range v.highlights.All() {
		if h.Background != "" && h.IntersectsRegion(r.Soul) {
			return h
		}
	}
	return nil
}

// StartSelection starts selecting at the point of the painted current page
func (v *View) StartSelection(x, y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.selection.Start(v.regions(), x, y, maxSelectionDistance) {
		return false
	}
	v.invalidate("selection")
	return true
}

// MoveSelectionCursorTo drags a selection handle to the point
func (v *View) MoveSelectionCursorTo(c highlight.Cursor, x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.SetCursorInMovement(c, x, y)
	v.selection.ExpandTo(v.regions(), x, y, maxSelectionDistance)
	v.invalidate("selection")
}

// ReleaseSelectionCursor stops dragging
func (v *View) ReleaseSelectionCursor() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.Stop()
	v.invalidate("selection")
}

// FindSelectionCursor returns the handle within the squared distance
// maxDistance2 of the point
func (v *View) FindSelectionCursor(x, y, maxDistance2 float64) highlight.Cursor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.FindCursor(v.regions(), x, y, maxDistance2)
}

// ClearSelection drops the selection
func (v *View) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selection.Clear() {
		v.invalidate("selection")
	}
}

// IsSelectionEmpty reports whether nothing is selected
func (v *View) IsSelectionEmpty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.IsEmpty()
}

// SelectionStartPosition returns the first selected position
func (v *View) SelectionStartPosition() (layout.Position, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.StartPosition()
}

// SelectionEndPosition returns the last selected position
func (v *View) SelectionEndPosition() (layout.Position, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.EndPosition(v.cache)
}

// SelectionStartY is the top of the selection on the current page
func (v *View) SelectionStartY() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selection.IsEmpty() {
		return 0
	}
	index := v.regions()
	if a := v.selection.StartArea(index); a != nil {
		return a.YStart
	}
	if v.selection.HasPartBeforePage(index) {
		if a := index.FirstArea(); a != nil {
			return a.YStart
		}
		return 0
	}
	if a := index.LastArea(); a != nil {
		return a.YEnd
	}
	return 0
}

// SelectionEndY is the bottom of the selection on the current page
func (v *View) SelectionEndY() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selection.IsEmpty() {
		return 0
	}
	index := v.regions()
	if a := v.selection.EndArea(index); a != nil {
		return a.YEnd
	}
	if v.selection.HasPartAfterPage(index) {
		if a := index.LastArea(); a != nil {
			return a.YEnd
		}
		return 0
	}
	if a := index.FirstArea(); a != nil {
		return a.YStart
	}
	return 0
}

func (v *View) invalidate(reason string) {
	v.sink.Reset(reason)
	v.sink.Repaint(reason)
}
