package highlight

import (
	"math"

	"github.com/gompdf/folio/internal/layout"
)

// Cursor names a selection handle
type Cursor int

const (
	CursorNone Cursor = iota
	CursorLeft
	CursorRight
)

// Point is a position on the page
type Point struct {
	X, Y float64
}

// Selection is a highlighting spanning the regions between two draggable
// handles. The left soul never orders after the right one.
type Selection struct {
	left  *layout.Soul
	right *layout.Soul

	moving      Cursor
	movingPoint Point
}

// IsEmpty reports whether nothing is selected
func (s *Selection) IsEmpty() bool {
	return s.left == nil
}

// Clear drops the selection and reports whether it was not empty
func (s *Selection) Clear() bool {
	if s.IsEmpty() {
		return false
	}
	s.left, s.right = nil, nil
	s.moving = CursorNone
	return true
}

// Start selects the region nearest to the point and starts moving its
// right handle. It reports false when no region is close enough.
func (s *Selection) Start(index *layout.RegionIndex, x, y, maxDistance float64) bool {
	s.Clear()
	r := index.FindRegion(x, y, maxDistance, layout.AnyRegion)
	if r == nil {
		return false
	}
	soul := r.Soul
	s.left, s.right = &soul, &soul
	s.moving = CursorRight
	s.movingPoint = Point{X: x, Y: y}
	return true
}

// SetCursorInMovement starts dragging cursor from the point
func (s *Selection) SetCursorInMovement(c Cursor, x, y float64) {
	s.moving = c
	s.movingPoint = Point{X: x, Y: y}
}

// CursorInMovement returns the handle being dragged
func (s *Selection) CursorInMovement() Cursor {
	return s.moving
}

// Stop releases the dragged handle
func (s *Selection) Stop() {
	s.moving = CursorNone
}

// ExpandTo moves the dragged handle to the region nearest to the point.
// Dragging a handle past the other one swaps them.
func (s *Selection) ExpandTo(index *layout.RegionIndex, x, y, maxDistance float64) {
	if s.IsEmpty() || s.moving == CursorNone {
		return
	}
	s.movingPoint = Point{X: x, Y: y}
	r := index.FindRegion(x, y, maxDistance, layout.AnyRegion)
	if r == nil {
		return
	}
	soul := r.Soul
	if s.moving == CursorRight {
		if s.left.Compare(soul) <= 0 {
			s.right = &soul
		} else {
			s.right = s.left
			s.left = &soul
			s.moving = CursorLeft
		}
		return
	}
	if s.right.Compare(soul) >= 0 {
		s.left = &soul
	} else {
		s.left = s.right
		s.right = &soul
		s.moving = CursorRight
	}
}

// StartPosition returns the first selected position
func (s *Selection) StartPosition() (layout.Position, bool) {
	if s.IsEmpty() {
		return layout.Position{}, false
	}
	return layout.Position{Paragraph: s.left.Paragraph, Element: s.left.StartElement}, true
}

// EndPosition returns the last selected position, the end of the last
// selected word
func (s *Selection) EndPosition(cache *layout.CursorCache) (layout.Position, bool) {
	if s.IsEmpty() {
		return layout.Position{}, false
	}
	p := layout.Position{Paragraph: s.right.Paragraph, Element: s.right.EndElement}
	if cache != nil {
		if w, ok := cache.Get(p.Paragraph).Element(p.Element).(*layout.Word); ok {
			p.Char = w.Len()
		}
	}
	return p, true
}

// Highlighting returns the selection as a highlighting of KindSelection
func (s *Selection) Highlighting(cache *layout.CursorCache) (*Highlighting, bool) {
	start, ok := s.StartPosition()
	if !ok {
		return nil, false
	}
	end, _ := s.EndPosition(cache)
	return &Highlighting{Kind: KindSelection, Start: start, End: end}, true
}

// HasPartBeforePage reports whether the selection starts before the page
func (s *Selection) HasPartBeforePage(index *layout.RegionIndex) bool {
	if s.IsEmpty() {
		return false
	}
	first := index.FirstArea()
	if first == nil {
		return false
	}
	c := s.left.ComparePosition(first.Position)
	return c < 0 || (c == 0 && !first.IsFirstInElement())
}

// HasPartAfterPage reports whether the selection ends after the page
func (s *Selection) HasPartAfterPage(index *layout.RegionIndex) bool {
	if s.IsEmpty() {
		return false
	}
	last := index.LastArea()
	if last == nil {
		return false
	}
	c := s.right.ComparePosition(last.Position)
	return c > 0 || (c == 0 && !last.IsLastInElement)
}

// StartArea returns the page area where the selection starts
func (s *Selection) StartArea(index *layout.RegionIndex) *layout.ElementArea {
	if s.IsEmpty() {
		return nil
	}
	if r := index.Region(s.left); r != nil {
		return r.FirstArea()
	}
	if first := index.FirstArea(); first != nil && s.left.ComparePosition(first.Position) <= 0 {
		return first
	}
	return nil
}

// EndArea returns the page area where the selection ends
func (s *Selection) EndArea(index *layout.RegionIndex) *layout.ElementArea {
	if s.IsEmpty() {
		return nil
	}
	if r := index.Region(s.right); r != nil {
		return r.LastArea()
	}
	if last := index.LastArea(); last != nil && s.right.ComparePosition(last.Position) >= 0 {
		return last
	}
	return nil
}

// CursorPoint returns where handle c is drawn on the page. The dragged
// handle follows the pointer; a handle off the page has no point.
func (s *Selection) CursorPoint(index *layout.RegionIndex, c Cursor) (Point, bool) {
	if c == CursorNone || s.IsEmpty() {
		return Point{}, false
	}
	if c == s.moving {
		return s.movingPoint, true
	}
	if c == CursorLeft {
		if s.HasPartBeforePage(index) {
			return Point{}, false
		}
		if a := s.StartArea(index); a != nil {
			return Point{X: a.XStart, Y: (a.YStart + a.YEnd) / 2}, true
		}
		return Point{}, false
	}
	if s.HasPartAfterPage(index) {
		return Point{}, false
	}
	if a := s.EndArea(index); a != nil {
		return Point{X: a.XEnd, Y: (a.YStart + a.YEnd) / 2}, true
	}
	return Point{}, false
}

// FindCursor returns the handle nearest to the point within the squared
// distance maxDistance2
func (s *Selection) FindCursor(index *layout.RegionIndex, x, y, maxDistance2 float64) Cursor {
	if s.IsEmpty() {
		return CursorNone
	}
	left := s.distance2(index, CursorLeft, x, y)
	right := s.distance2(index, CursorRight, x, y)
	if right < left {
		if right <= maxDistance2 {
			return CursorRight
		}
		return CursorNone
	}
	if left <= maxDistance2 {
		return CursorLeft
	}
	return CursorNone
}

func (s *Selection) distance2(index *layout.RegionIndex, c Cursor, x, y float64) float64 {
	p, ok := s.CursorPoint(index, c)
	if !ok {
		return math.Inf(1)
	}
	dx, dy := p.X-x, p.Y-y
	return dx*dx + dy*dy
}
