package highlight

import (
	"testing"

	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(p, e, c int) layout.Position {
	return layout.Position{Paragraph: p, Element: e, Char: c}
}

func testCache(paragraphs ...string) *layout.CursorCache {
	b := model.NewBuilder("test")
	for _, p := range paragraphs {
		b.BeginParagraph(model.TextParagraph)
		b.AddText(p)
	}
	return layout.NewCursorCache(b.Build(), 10)
}

// lineIndex lays "aaa bbb ccc" out as three 30 wide words, 10 apart
func lineIndex() *layout.RegionIndex {
	index := &layout.RegionIndex{}
	for i, x := range []float64{0, 40, 80} {
		index.Add(layout.ElementArea{
			Position:        pos(0, 2*i, 0),
			Length:          3,
			IsLastInElement: true,
			Element:         &layout.Word{Data: []rune("aaa"), ParagraphOffset: 4 * i},
			XStart:          x,
			XEnd:            x + 30,
			YStart:          0,
			YEnd:            24,
		})
	}
	return index
}

func TestSetKeepsOrder(t *testing.T) {
	s := NewSet()
	late := New(KindManual, pos(3, 0, 0), pos(3, 2, 0))
	early := New(KindSearch, pos(1, 4, 0), pos(1, 0, 0))
	middle := New(KindManual, pos(2, 0, 0), pos(2, 1, 0))
	s.Add(late)
	s.AddAll([]*Highlighting{early, nil, middle})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []*Highlighting{early, middle, late}, s.All())
	assert.Equal(t, pos(1, 0, 0), early.Start, "reversed bounds are swapped")

	assert.True(t, s.RemoveKind(KindManual))
	assert.Equal(t, []*Highlighting{early}, s.All())
	assert.False(t, s.RemoveKind(KindManual))

	assert.True(t, s.Remove(early))
	assert.False(t, s.Clear())
}

func TestIntersectsPage(t *testing.T) {
	cache := testCache("a b", "c d", "e f")
	start := layout.NewWordCursor(cache, 1)
	end := layout.NewWordCursor(cache, 2)

	before := New(KindManual, pos(0, 0, 0), pos(0, 2, 0))
	overlapping := New(KindManual, pos(0, 0, 0), pos(1, 1, 0))
	atEnd := New(KindManual, pos(2, 0, 0), pos(2, 2, 0))

	assert.False(t, before.Intersects(start, end))
	assert.True(t, overlapping.Intersects(start, end))
	assert.False(t, atEnd.Intersects(start, end), "the page end is exclusive")
	assert.False(t, overlapping.Intersects(layout.WordCursor{}, end))

	s := NewSet()
	s.AddAll([]*Highlighting{before, overlapping, atEnd})
	assert.Equal(t, []*Highlighting{overlapping}, s.Intersecting(start, end))
}

func TestHighlightingAreas(t *testing.T) {
	index := lineIndex()

	h := New(KindManual, pos(0, 2, 0), pos(0, 9, 0))
	areas := h.Areas(index)
	require.Len(t, areas, 2)
	assert.Equal(t, pos(0, 2, 0), areas[0].Position)
	assert.Equal(t, []layout.Rect{{X0: 40, Y0: 0, X1: 110, Y1: 24}}, h.Hull(index))

	outside := New(KindManual, pos(1, 0, 0), pos(1, 3, 0))
	assert.Empty(t, outside.Areas(index))

	assert.True(t, h.IntersectsRegion(layout.Soul{Paragraph: 0, StartElement: 4, EndElement: 4}))
	assert.False(t, h.IntersectsRegion(layout.Soul{Paragraph: 0, StartElement: 0, EndElement: 0}))
}

func TestSelectionExpands(t *testing.T) {
	index := lineIndex()
	cache := testCache("aaa bbb ccc")

	var s Selection
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Start(index, 500, 500, 10))

	require.True(t, s.Start(index, 5, 10, 10))
	s.ExpandTo(index, 90, 10, 10)

	start, ok := s.StartPosition()
	require.True(t, ok)
	assert.Equal(t, pos(0, 0, 0), start)
	end, ok := s.EndPosition(cache)
	require.True(t, ok)
	assert.Equal(t, pos(0, 4, 3), end)

	p, ok := s.CursorPoint(index, CursorRight)
	require.True(t, ok)
	assert.Equal(t, Point{X: 90, Y: 10}, p, "the dragged handle follows the pointer")

	s.Stop()
	p, ok = s.CursorPoint(index, CursorRight)
	require.True(t, ok)
	assert.Equal(t, Point{X: 110, Y: 12}, p)
	p, ok = s.CursorPoint(index, CursorLeft)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 12}, p)

	assert.Equal(t, CursorLeft, s.FindCursor(index, 1, 12, 4))
	assert.Equal(t, CursorRight, s.FindCursor(index, 109, 12, 4))
	assert.Equal(t, CursorNone, s.FindCursor(index, 55, 12, 4))

	assert.False(t, s.HasPartBeforePage(index))
	assert.False(t, s.HasPartAfterPage(index))

	h, ok := s.Highlighting(cache)
	require.True(t, ok)
	assert.Equal(t, KindSelection, h.Kind)
	assert.Len(t, h.Areas(index), 3)

	assert.True(t, s.Clear())
	assert.False(t, s.Clear())
}

func TestSelectionSwapsHandles(t *testing.T) {
	index := lineIndex()

	var s Selection
	require.True(t, s.Start(index, 45, 10, 10))
	s.ExpandTo(index, 5, 10, 10)

	assert.Equal(t, CursorLeft, s.CursorInMovement())
	start, _ := s.StartPosition()
	assert.Equal(t, pos(0, 0, 0), start)
	end, _ := s.EndPosition(nil)
	assert.Equal(t, pos(0, 2, 0), end)

	s.ExpandTo(index, 85, 10, 10)
	assert.Equal(t, CursorRight, s.CursorInMovement())
	start, _ = s.StartPosition()
	assert.Equal(t, pos(0, 2, 0), start)
	end, _ = s.EndPosition(nil)
	assert.Equal(t, pos(0, 4, 0), end)
}
