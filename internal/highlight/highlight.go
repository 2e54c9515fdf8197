package highlight

import (
	"github.com/gompdf/folio/internal/layout"
)

// Kind groups highlightings so they can be removed together
type Kind string

const (
	KindSelection Kind = "selection"
	KindManual    Kind = "manual"
	KindSearch    Kind = "search"
	KindBookmark  Kind = "bookmark"
)

// Highlighting is a colored range of the document. Start and End are both
// inclusive. Colors are CSS color values, empty meaning "not drawn".
type Highlighting struct {
	ID    string
	Kind  Kind
	Start layout.Position
	End   layout.Position

	Background string
	Outline    string
	Foreground string
}

// New creates a highlighting over [start, end], swapping the bounds when
// they are reversed
func New(kind Kind, start, end layout.Position) *Highlighting {
	if end.Compare(start) < 0 {
		start, end = end, start
	}
	return &Highlighting{Kind: kind, Start: start, End: end}
}

// Intersects reports whether the highlighting overlaps the page spanning
// [start, end). Pages with an unknown bound intersect nothing.
func (h *Highlighting) Intersects(start, end layout.WordCursor) bool {
	if start.IsNull() || end.IsNull() {
		return false
	}
	return start.Position().Compare(h.End) <= 0 && end.Position().Compare(h.Start) > 0
}

// IntersectsRegion reports whether the region of soul lies in the
// highlighting
func (h *Highlighting) IntersectsRegion(s layout.Soul) bool {
	return s.ComparePosition(h.Start) >= 0 && s.ComparePosition(h.End) <= 0
}

// StartArea returns the first area of the page covered by the highlighting
func (h *Highlighting) StartArea(index *layout.RegionIndex) *layout.ElementArea {
	first := index.FirstArea()
	if first == nil {
		return nil
	}
	if h.Start.Compare(first.Position) < 0 {
		return first
	}
	return index.FirstAfter(h.Start)
}

// EndArea returns the last area of the page covered by the highlighting
func (h *Highlighting) EndArea(index *layout.RegionIndex) *layout.ElementArea {
	last := index.LastArea()
	if last == nil {
		return nil
	}
	if h.End.Compare(last.Position) > 0 {
		return last
	}
	return index.LastBefore(h.End)
}

// Areas returns the areas of the page covered by the highlighting
func (h *Highlighting) Areas(index *layout.RegionIndex) []layout.ElementArea {
	start, end := h.StartArea(index), h.EndArea(index)
	if start == nil || end == nil || end.Position.Compare(start.Position) < 0 {
		return nil
	}
	return index.Between(start, end)
}

// Hull returns the rectangles to fill, one per column
func (h *Highlighting) Hull(index *layout.RegionIndex) []layout.Rect {
	return layout.Hull(h.Areas(index))
}
