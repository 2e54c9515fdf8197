package pagination

import (
	"sync"

	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/model"
	"github.com/gompdf/folio/internal/render"
	"github.com/rs/zerolog"
)

// maxSelectionDistance is how far from a region a pointer may be and
// still select it
const maxSelectionDistance = 10

// Options represents options for a view
type Options struct {
	Layout Layout
	// CursorCacheSize bounds the number of materialized paragraphs
	CursorCacheSize int
	// ShowOutline draws the outlined region in frames
	ShowOutline bool
	Logger      zerolog.Logger
	Sink        render.Sink
}

// View paginates one document. It keeps the current page and its two
// neighbours, search results, highlightings, bookmarks and the selection.
// All exported methods are safe for concurrent use; unexported ones
// expect the lock to be held.
type View struct {
	mu sync.Mutex

	logger zerolog.Logger
	sink   render.Sink
	engine *layout.Engine
	layout Layout

	model     model.Model
	cache     *layout.CursorCache
	cacheSize int
	pages     *pageRing

	scrollingMode    ScrollingMode
	overlappingValue int

	highlights  *highlight.Set
	bookmarks   *highlight.Set
	selection   highlight.Selection
	outline     *layout.Soul
	showOutline bool

	lettersModel model.Model
	charWidth    float64
}

// NewView creates a view laying text out with engine
func NewView(engine *layout.Engine, options Options) *View {
	if options.Sink == nil {
		options.Sink = render.NopSink{}
	}
	if options.CursorCacheSize <= 0 {
		options.CursorCacheSize = layout.DefaultCursorCacheSize
	}
	if options.Layout == (Layout{}) {
		options.Layout = DefaultLayout()
	}
	return &View{
		logger:      options.Logger,
		sink:        options.Sink,
		engine:      engine,
		layout:      options.Layout,
		cacheSize:   options.CursorCacheSize,
		pages:       newPageRing(),
		highlights:  highlight.NewSet(),
		bookmarks:   highlight.NewSet(),
		showOutline: options.ShowOutline,
		charWidth:   -1,
	}
}

func (v *View) isEmpty() bool {
	return v.model == nil || v.model.ParagraphCount() == 0
}

// SetModel replaces the document and moves to its start. A nil model
// empties the view.
func (v *View) SetModel(m model.Model) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.selection.Clear()
	v.highlights.Clear()
	v.outline = nil
	v.engine.ClearLines()
	v.pages.reset()
	v.model = m
	v.cache = nil
	v.charWidth = -1
	if m != nil {
		v.cache = layout.NewCursorCache(m, v.cacheSize)
		if m.ParagraphCount() > 0 {
			v.pages.cur().moveStartCursor(layout.NewWordCursor(v.cache, 0))
		}
	}
	v.logger.Debug().Int("paragraphs", v.paragraphCount()).Msg("model set")
	v.invalidate("model")
}

func (v *View) paragraphCount() int {
	if v.model == nil {
		return 0
	}
	return v.model.ParagraphCount()
}

// Model returns the document
func (v *View) Model() model.Model {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model
}

// Layout returns the page geometry
func (v *View) Layout() Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// SetLayout changes the page geometry. Pages are rebuilt lazily, keeping
// their known bounds.
func (v *View) SetLayout(l Layout) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if l == v.layout {
		return
	}
	v.layout = l
	v.charWidth = -1
	v.engine.Styles().SetWidth(l.ColumnWidth())
	v.engine.ResetStyle()
	v.invalidate("layout")
}

// SetHyphenation toggles automatic hyphenation and relayouts
func (v *View) SetHyphenation(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.engine.SetHyphenation(enabled)
	v.clearCaches()
}

// StartCursor returns the start of the current page
func (v *View) StartCursor() layout.WordCursor {
	v.mu.Lock()
	defer v.mu.Unlock()
	page := v.pages.cur()
	if page.Start.IsNull() {
		v.preparePaintInfo(page)
	}
	return page.Start
}

// EndCursor returns the end of the current page
func (v *View) EndCursor() layout.WordCursor {
	v.mu.Lock()
	defer v.mu.Unlock()
	page := v.pages.cur()
	if page.End.IsNull() {
		v.preparePaintInfo(page)
	}
	return page.End
}

// PreparePage lays out a page without painting it and returns its state
func (v *View) PreparePage(which PageIndex) PaintState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.preparePage(which).State
}

// preparePage seeds an empty neighbour from the current page and
// prepares it
func (v *View) preparePage(which PageIndex) *Page {
	page := v.pages.get(which)
	if page.State == StateEmpty {
		switch which {
		case PagePrevious:
			current := v.pages.cur()
			v.preparePaintInfo(current)
			if !current.Start.IsNull() {
				page.End = current.Start
				page.State = StateEndIsKnown
			}
		case PageNext:
			current := v.pages.cur()
			v.preparePaintInfo(current)
			if !current.End.IsNull() {
				page.Start = current.End
				page.State = StateStartIsKnown
			}
		}
	}
	v.preparePaintInfo(page)
	return page
}

// Page returns a copy of the bounds and lines of a prepared page
func (v *View) Page(which PageIndex) Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	page := v.preparePage(which)
	return Page{
		Start:         page.Start,
		End:           page.End,
		Lines:         append([]*layout.LineInfo(nil), page.Lines...),
		Column0Height: page.Column0Height,
		State:         page.State,
	}
}

// CanScroll reports whether there is a page in the given direction
func (v *View) CanScroll(which PageIndex) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canScroll(which)
}

func (v *View) canScroll(which PageIndex) bool {
	page := v.pages.cur()
	switch which {
	case PageNext:
		if page.End.IsNull() {
			v.preparePaintInfo(page)
		}
		return !page.End.IsNull() && !page.End.IsEndOfText()
	case PagePrevious:
		if page.Start.IsNull() {
			v.preparePaintInfo(page)
		}
		return !page.Start.IsNull() && !page.Start.IsStartOfText()
	}
	return true
}

// TurnPage schedules a scroll of the current page. The new page is built
// on the next layout request.
func (v *View) TurnPage(forward bool, mode ScrollingMode, value int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.turnPage(forward, mode, value)
}

func (v *View) turnPage(forward bool, mode ScrollingMode, value int) {
	current := v.pages.cur()
	v.preparePaintInfo(current)
	v.pages.previous().reset()
	v.pages.next().reset()
	if current.State != StateReady {
		return
	}
	if forward {
		current.State = StateToScrollForward
	} else {
		current.State = StateToScrollBackward
	}
	v.scrollingMode = mode
	v.overlappingValue = value
	v.logger.Debug().Bool("forward", forward).Stringer("mode", mode).Int("value", value).Msg("turn page")
}

// OnScrollingFinished makes the page the reader scrolled to current
func (v *View) OnScrollingFinished(which PageIndex) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.isEmpty() {
		return
	}

	pages := v.pages
	switch which {
	case PageNext:
		pages.rotate(true)
		pages.next().reset()
		current := pages.cur()
		switch current.State {
		case StateEmpty:
			previous := pages.previous()
			v.preparePaintInfo(previous)
			current.Start = previous.End
			current.State = StateStartIsKnown
		case StateReady:
			next := pages.next()
			next.Start = current.End
			next.State = StateStartIsKnown
		}
	case PagePrevious:
		pages.rotate(false)
		pages.previous().reset()
		current, next := pages.cur(), pages.next()
		switch {
		case current.State == StateEmpty:
			v.preparePaintInfo(next)
			current.End = next.Start
			current.State = StateEndIsKnown
		case !current.End.IsNull() && !next.Start.IsNull() && !current.End.SamePositionAs(next.Start):
			next.reset()
			next.Start = current.End
			next.State = StateStartIsKnown
			v.sink.Reset("scroll")
		}
	default:
		return
	}
	v.logger.Debug().Stringer("page", which).Msg("scrolling finished")
}

// GotoPosition shows the page starting at p
func (v *View) GotoPosition(p layout.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gotoPosition(p)
}

func (v *View) clampPosition(p layout.Position) layout.Position {
	p.Paragraph = min(max(p.Paragraph, 0), v.model.ParagraphCount()-1)
	return p
}

func (v *View) gotoPosition(p layout.Position) {
	if v.isEmpty() {
		return
	}
	v.sink.Reset("goto")
	current := v.pages.cur()
	current.moveStartCursor(layout.NewWordCursorAt(v.cache, v.clampPosition(p)))
	v.pages.previous().reset()
	v.pages.next().reset()
	v.preparePaintInfo(current)
	if current.isEmptyPage() {
		v.turnPage(true, NoOverlapping, 0)
	}
}

// GotoPositionByEnd shows the page ending at p
func (v *View) GotoPositionByEnd(p layout.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gotoPositionByEnd(p)
}

func (v *View) gotoPositionByEnd(p layout.Position) {
	if v.isEmpty() {
		return
	}
	current := v.pages.cur()
	current.moveEndCursor(layout.NewWordCursorAt(v.cache, v.clampPosition(p)))
	v.pages.previous().reset()
	v.pages.next().reset()
	v.preparePaintInfo(current)
	if current.isEmptyPage() {
		v.turnPage(false, NoOverlapping, 0)
	}
}

// GotoHome shows the first page
func (v *View) GotoHome() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.isEmpty() {
		return
	}
	current := v.pages.cur()
	if current.Start.IsNull() {
		v.preparePaintInfo(current)
	}
	if !current.Start.IsNull() && current.Start.IsStartOfText() {
		return
	}
	v.gotoPosition(layout.Position{})
	v.preparePaintInfo(v.pages.cur())
}

// ClearCaches drops everything derived from metrics and styles, keeping
// the reading position
func (v *View) ClearCaches() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clearCaches()
}

func (v *View) clearCaches() {
	v.charWidth = -1
	v.rebuildPaintInfo()
	v.sink.Reset("caches")
}

// rebuildPaintInfo rematerializes paragraphs and relayouts the current
// page from its known bound
func (v *View) rebuildPaintInfo() {
	v.pages.previous().reset()
	v.pages.next().reset()
	if v.cache != nil {
		v.cache.EvictAll()
	}
	v.engine.ClearLines()
	current := v.pages.cur()
	if current.State == StateEmpty {
		return
	}
	current.Lines = nil
	switch {
	case !current.Start.IsNull():
		current.Start.Rebuild()
		current.End.Reset()
		current.State = StateStartIsKnown
	case !current.End.IsNull():
		current.End.Rebuild()
		current.Start.Reset()
		current.State = StateEndIsKnown
	}
}
