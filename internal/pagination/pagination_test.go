package pagination

import (
	"testing"

	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/model"
	"github.com/gompdf/folio/internal/render"
	"github.com/gompdf/folio/internal/style"
	"github.com/gompdf/folio/internal/text"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMetrics measures every character as 10 wide and every line as 20
// high with a descent of 4, so a line takes 24 points
type fixedMetrics struct{}

func (fixedMetrics) StringWidth(_ text.Font, s []rune) float64 { return 10 * float64(len(s)) }
func (fixedMetrics) SpaceWidth(text.Font) float64              { return 10 }
func (fixedMetrics) StringHeight(text.Font) float64            { return 20 }
func (fixedMetrics) Descent(text.Font) float64                 { return 4 }

// sixWords lays out as three lines of two words in a 100 wide column
const sixWords = "aaaa bbbb cccc dddd eeee ffff"

func buildModel(paragraphs ...string) *model.TextModel {
	b := model.NewBuilder("test")
	for _, p := range paragraphs {
		if p == "" {
			b.EndSection()
			continue
		}
		b.BeginParagraph(model.TextParagraph)
		b.AddText(p)
	}
	return b.Build()
}

// threeLines is a single column page holding three lines
func threeLines() Layout {
	return Layout{PageSize: PageSize{Width: 100, Height: 72}}
}

func newTestView(t *testing.T, l Layout, m model.Model) (*View, *render.LogSink) {
	t.Helper()
	styles := style.NewCollection(style.Options{
		FontFamily:       "serif",
		FontSize:         10,
		LineSpacePercent: 100,
		Alignment:        style.AlignLeft,
	})
	engine := layout.NewEngine(fixedMetrics{}, nil, styles, layout.Options{})
	sink := render.NewLogSink(zerolog.Nop())
	v := NewView(engine, Options{Layout: l, Sink: sink})
	v.SetModel(m)
	return v, sink
}

func pos(paragraph, element, char int) layout.Position {
	return layout.Position{Paragraph: paragraph, Element: element, Char: char}
}

func bounds(p Page) (layout.Position, layout.Position) {
	return p.Start.Position(), p.End.Position()
}

func TestEmptyDocument(t *testing.T) {
	for name, m := range map[string]model.Model{
		"nil":   nil,
		"empty": model.NewBuilder("empty").Build(),
	} {
		t.Run(name, func(t *testing.T) {
			v, _ := newTestView(t, threeLines(), m)

			current, total := v.PagePosition()
			assert.Equal(t, 1, current)
			assert.Equal(t, 1, total)

			v.TurnPage(true, NoOverlapping, 0)
			v.GotoPage(3)
			v.GotoHome()
			assert.True(t, v.StartCursor().IsNull())
			assert.False(t, v.CanScroll(PageNext))
			assert.False(t, v.CanScroll(PagePrevious))
			assert.Nil(t, v.Paint(PageCurrent))
			assert.Equal(t, 1, v.ScrollbarFullSize())
			assert.Zero(t, v.Search("a", false, true, false))

			ring := v.pages.current
			v.OnScrollingFinished(PageNext)
			v.OnScrollingFinished(PagePrevious)
			assert.Equal(t, ring, v.pages.current, "ring does not rotate")
			for _, which := range []PageIndex{PagePrevious, PageCurrent, PageNext} {
				page := v.pages.get(which)
				assert.Equal(t, StateEmpty, page.State)
				assert.True(t, page.Start.IsNull())
			}
		})
	}
}

func TestFirstPage(t *testing.T) {
	v, sink := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	assert.Equal(t, 1, sink.Resets)

	page := v.Page(PageCurrent)
	assert.Equal(t, StateReady, page.State)
	require.Len(t, page.Lines, 3)
	start, end := bounds(page)
	assert.Equal(t, pos(0, 0, 0), start)
	assert.Equal(t, pos(1, 0, 0), end)
	assert.Zero(t, page.Column0Height)

	assert.True(t, v.CanScroll(PageNext))
	assert.False(t, v.CanScroll(PagePrevious))
	assert.Equal(t, 29, v.ScrollbarThumbLength(PageCurrent))
	assert.Zero(t, v.ScrollbarThumbPosition(PageCurrent))
	assert.Equal(t, 116, v.ScrollbarFullSize())
}

func TestTurnPageForward(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	before := v.Page(PageCurrent)

	v.TurnPage(true, NoOverlapping, 0)
	after := v.Page(PageCurrent)
	assert.Equal(t, before.End.Position(), after.Start.Position(), "next page starts where the last one ended")
	assert.Equal(t, pos(2, 0, 0), after.End.Position())

	for i := 0; i < 10; i++ {
		v.TurnPage(true, NoOverlapping, 0)
	}
	last := v.Page(PageCurrent)
	assert.True(t, last.End.IsEndOfText())
	assert.Equal(t, pos(3, 0, 0), last.Start.Position())
	assert.False(t, v.CanScroll(PageNext))
}

func TestTurnPageKeepsLines(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	v.TurnPage(true, KeepLines, 1)
	start, end := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 7, 0), start, "last line stays on screen")
	assert.Equal(t, pos(1, 7, 0), end)
}

func TestTurnPageScrollsLines(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	v.TurnPage(true, ScrollLines, 1)
	start, end := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 3, 0), start, "moves down one line")
	assert.Equal(t, pos(1, 3, 0), end)

	v.TurnPage(false, ScrollLines, 1)
	start, end = bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 0, 0), start)
	assert.Equal(t, pos(1, 0, 0), end)
}

func TestTurnPageScrollsPercentage(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	// a third of the page plus a point covers the first line and reaches
	// into the second
	v.TurnPage(true, ScrollPercentage, 34)
	start, _ := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 7, 0), start, "forward skips every line the height reaches")

	v.TurnPage(false, ScrollPercentage, 34)
	start, _ = bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 3, 0), start, "backward only takes whole lines that fit")
}

func TestTurnPageAlwaysAdvances(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	v.TurnPage(true, ScrollPercentage, 0)
	start, end := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 3, 0), start, "a zero move still turns one line")
	assert.Equal(t, pos(1, 3, 0), end)

	v.TurnPage(true, ScrollLines, 0)
	start, _ = bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(1, 3, 0), start, "no lines to scroll turns the whole page")
}

func TestTurnPageBackwardRebuildsPreviousPage(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	v.GotoPosition(pos(2, 0, 0))
	start, end := bounds(v.Page(PageCurrent))
	require.Equal(t, pos(2, 0, 0), start)
	require.Equal(t, pos(3, 0, 0), end)

	v.TurnPage(false, NoOverlapping, 0)
	start, end = bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(1, 0, 0), start)
	assert.Equal(t, pos(2, 0, 0), end, "previous page ends where the old one started")
}

func TestPreviousPageOfEnd(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	v.mu.Lock()
	defer v.mu.Unlock()
	page := v.pages.cur()
	v.preparePaintInfo(page)
	end := layout.NewWordCursorAt(v.cache, pos(3, 0, 0))

	start := v.findStartOfPreviousPage(page, end)
	assert.Equal(t, pos(2, 0, 0), start.Position())
	rebuilt := v.buildInfos(page, start)
	assert.True(t, rebuilt.SamePositionAs(end), "building from the found start reaches the end")
}

func TestScrollingFinished(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	require.Equal(t, StateReady, v.PreparePage(PageNext))

	v.OnScrollingFinished(PageNext)
	assert.Equal(t, pos(1, 0, 0), v.Page(PageCurrent).Start.Position())
	assert.Equal(t, pos(0, 0, 0), v.Page(PagePrevious).Start.Position())
	assert.Equal(t, pos(2, 0, 0), v.Page(PageNext).Start.Position())

	v.OnScrollingFinished(PagePrevious)
	start, end := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 0, 0), start)
	assert.Equal(t, pos(1, 0, 0), end)
	assert.Equal(t, pos(1, 0, 0), v.Page(PageNext).Start.Position())
}

func TestTwoColumns(t *testing.T) {
	l := Layout{PageSize: PageSize{Width: 210, Height: 72}, TwoColumn: true, ColumnGap: 10}
	v, _ := newTestView(t, l, buildModel(sixWords, sixWords, sixWords, sixWords))

	page := v.Page(PageCurrent)
	assert.Len(t, page.Lines, 6)
	assert.Equal(t, 3, page.Column0Height)
	start, end := bounds(page)
	assert.Equal(t, pos(0, 0, 0), start)
	assert.Equal(t, pos(2, 0, 0), end)

	f := v.Paint(PageCurrent)
	require.NotNil(t, f)
	require.Len(t, f.Areas, 12)
	second := f.Areas[6]
	assert.Equal(t, pos(1, 0, 0), second.Position)
	assert.Equal(t, 1, second.Column)
	assert.Equal(t, 110.0, second.XStart)
	assert.Equal(t, 0.0, second.YStart)
	assert.Equal(t, 1, l.ColumnAt(150))
	assert.Equal(t, pos(1, 0, 0), v.ElementAt(115, 10).Position)

	v.TurnPage(true, NoOverlapping, 0)
	v.TurnPage(false, NoOverlapping, 0)
	start, end = bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 0, 0), start)
	assert.Equal(t, pos(2, 0, 0), end)
}

func TestSectionEndsPage(t *testing.T) {
	l := Layout{PageSize: PageSize{Width: 100, Height: 240}}
	v, _ := newTestView(t, l, buildModel(sixWords, "", sixWords))

	start, end := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 0, 0), start)
	assert.Equal(t, pos(1, 0, 0), end, "page stops before the section boundary")
}

func TestPageNeverEmpty(t *testing.T) {
	l := Layout{PageSize: PageSize{Width: 100, Height: 10}}
	v, _ := newTestView(t, l, buildModel(sixWords))

	page := v.Page(PageCurrent)
	require.Len(t, page.Lines, 1, "a line taller than the page still fills it")
	assert.Equal(t, pos(0, 3, 0), page.End.Position())

	v.TurnPage(true, NoOverlapping, 0)
	start, end := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(0, 3, 0), start)
	assert.Equal(t, pos(0, 7, 0), end)
}

func TestPagePosition(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	current, total := v.PagePosition()
	assert.Equal(t, 1, current)
	assert.Equal(t, 4, total)

	v.TurnPage(true, NoOverlapping, 0)
	current, _ = v.PagePosition()
	assert.Equal(t, 2, current)

	v.GotoPage(3)
	start, _ := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(2, 0, 0), start)
	current, _ = v.PagePosition()
	assert.Equal(t, 3, current)
	assert.InDelta(t, 0.75, v.Progress(), 1e-9)

	v.GotoHome()
	assert.True(t, v.StartCursor().IsStartOfText())
}

func TestShortDocumentIsCountedExactly(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords))

	current, total := v.PagePosition()
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, total)

	v.TurnPage(true, NoOverlapping, 0)
	current, total = v.PagePosition()
	assert.Equal(t, 2, current)
	assert.Equal(t, 2, total)
}

func TestTextPageNumberIsMonotonic(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	previous := 1
	for size := 0; size <= 200; size++ {
		n := v.computeTextPageNumber(size)
		assert.GreaterOrEqual(t, n, previous, "size %d", size)
		previous = n
	}
	assert.Equal(t, 1, v.computeTextPageNumber(0))
}

func TestSearch(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))

	assert.Equal(t, 4, v.Search("DDDD", true, true, false))
	assert.False(t, v.FindResultsAreEmpty())
	assert.Equal(t, pos(0, 0, 0), v.StartCursor().Position())

	f := v.Paint(PageCurrent)
	require.NotNil(t, f)
	require.Len(t, f.Marks, 1)
	assert.Equal(t, 50.0, f.Marks[0].XStart)
	assert.Equal(t, 90.0, f.Marks[0].XEnd)
	assert.Equal(t, 24.0, f.Marks[0].Area.YStart)

	assert.True(t, v.CanFindNext())
	assert.False(t, v.CanFindPrevious())
	v.FindNext()
	assert.Equal(t, pos(1, 0, 0), v.StartCursor().Position())
	assert.True(t, v.CanFindPrevious())

	v.GotoMark(model.Mark{Paragraph: 3, Offset: 15, Length: 4})
	assert.Equal(t, pos(3, 0, 0), v.StartCursor().Position())
	assert.False(t, v.CanFindNext())

	v.FindPrevious()
	assert.Equal(t, pos(2, 0, 0), v.StartCursor().Position())

	v.ClearFindResults()
	assert.True(t, v.FindResultsAreEmpty())
	assert.Empty(t, v.Paint(PageCurrent).Marks)
}

func TestFrameHighlights(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	v.GotoPosition(pos(1, 0, 0))

	v.AddHighlighting(highlight.New(highlight.KindSearch, pos(0, 0, 0), pos(0, 2, 3)))
	h := v.Highlight(pos(1, 2, 0), pos(1, 4, 3))

	f := v.Paint(PageCurrent)
	require.NotNil(t, f)
	require.Len(t, f.Highlights, 1, "highlighting before the page is not drawn")
	assert.Same(t, h, f.Highlights[0].Highlighting)
	require.Len(t, f.Highlights[0].Areas, 2)
	assert.Equal(t, pos(1, 2, 0), f.Highlights[0].Areas[0].Position)
	assert.Equal(t, pos(1, 4, 0), f.Highlights[0].Areas[1].Position)

	v.ClearHighlighting()
	assert.Len(t, v.Highlightings(), 1)
	assert.Empty(t, v.Paint(PageCurrent).Highlights)

	v.GotoHighlighting(v.Highlightings()[0])
	assert.Equal(t, pos(0, 0, 0), v.StartCursor().Position())
}

func TestHighlightingAtPoint(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	v.GotoPosition(pos(1, 0, 0))
	h := v.Highlight(pos(1, 2, 0), pos(1, 4, 3))
	mark := highlight.New(highlight.KindBookmark, pos(1, 0, 0), pos(1, 0, 3))
	v.AddBookmark(mark)
	require.NotNil(t, v.Paint(PageCurrent))

	assert.Same(t, h, v.HighlightingAt(60, 10, 0), "second word of the first line")
	assert.Same(t, mark, v.HighlightingAt(10, 10, 0), "first word carries the bookmark")

	assert.True(t, v.RemoveHighlighting(h))
	assert.False(t, v.RemoveHighlighting(h))
	assert.Empty(t, v.Highlightings())
	assert.Nil(t, v.HighlightingAt(60, 10, 0))

	assert.True(t, v.RemoveBookmark(mark))
	assert.Empty(t, v.Bookmarks())
	assert.Nil(t, v.HighlightingAt(10, 10, 0))
}

func TestBookmarks(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	assert.False(t, v.HasBookmark())

	v.AddBookmark(highlight.New(highlight.KindBookmark, pos(1, 0, 0), pos(1, 0, 3)))
	assert.False(t, v.HasBookmark())
	v.TurnPage(true, NoOverlapping, 0)
	assert.True(t, v.HasBookmark())
	assert.Len(t, v.Paint(PageCurrent).Highlights, 1)

	assert.True(t, v.RemoveBookmarks(highlight.KindBookmark))
	assert.False(t, v.HasBookmark())
}

func TestSelection(t *testing.T) {
	v, _ := newTestView(t, threeLines(), buildModel(sixWords, sixWords, sixWords, sixWords))
	require.NotNil(t, v.Paint(PageCurrent))
	assert.True(t, v.IsSelectionEmpty())

	require.True(t, v.StartSelection(5, 10))
	v.MoveSelectionCursorTo(highlight.CursorRight, 85, 10)
	v.ReleaseSelectionCursor()
	assert.False(t, v.IsSelectionEmpty())

	start, ok := v.SelectionStartPosition()
	require.True(t, ok)
	assert.Equal(t, pos(0, 0, 0), start)
	end, ok := v.SelectionEndPosition()
	require.True(t, ok)
	assert.Equal(t, pos(0, 2, 4), end)
	assert.Equal(t, 0.0, v.SelectionStartY())
	assert.Equal(t, 24.0, v.SelectionEndY())

	f := v.Paint(PageCurrent)
	require.NotEmpty(t, f.Highlights)
	assert.Equal(t, highlight.KindSelection, f.Highlights[0].Highlighting.Kind)
	assert.NotNil(t, f.LeftCursor)
	assert.NotNil(t, f.RightCursor)

	v.ClearSelection()
	assert.True(t, v.IsSelectionEmpty())
}

func TestNavigationSignalsSink(t *testing.T) {
	v, sink := newTestView(t, threeLines(), buildModel(sixWords, sixWords))
	resets := sink.Resets

	v.GotoPosition(pos(1, 0, 0))
	assert.Greater(t, sink.Resets, resets)

	v.ClearCaches()
	start, _ := bounds(v.Page(PageCurrent))
	assert.Equal(t, pos(1, 0, 0), start, "clearing caches keeps the reading position")
}

func TestParseScrollingMode(t *testing.T) {
	for _, mode := range []ScrollingMode{NoOverlapping, KeepLines, ScrollLines, ScrollPercentage} {
		parsed, err := ParseScrollingMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	_, err := ParseScrollingMode("sideways")
	assert.Error(t, err)
}

func TestLayoutGeometry(t *testing.T) {
	l := DefaultLayout()
	assert.InDelta(t, 451.28, l.TextWidth(), 1e-9)
	assert.Equal(t, l.TextWidth(), l.ColumnWidth())
	assert.Zero(t, l.ColumnAt(500))

	l.TwoColumn = true
	assert.InDelta(t, (451.28-24)/2, l.ColumnWidth(), 1e-9)
	assert.Equal(t, 1, l.ColumnAt(500))

	size, ok := LookupPageSize("letter")
	require.True(t, ok)
	assert.Equal(t, PageSizeLetter, size)
	_, ok = LookupPageSize("B7")
	assert.False(t, ok)
}
