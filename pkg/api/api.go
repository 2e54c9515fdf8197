package api

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/model"
	"github.com/gompdf/folio/internal/pagination"
	"github.com/gompdf/folio/internal/parser/css"
	"github.com/gompdf/folio/internal/parser/html"
	"github.com/gompdf/folio/internal/render"
	"github.com/gompdf/folio/internal/render/pdf"
	"github.com/gompdf/folio/internal/res"
	"github.com/gompdf/folio/internal/style"
	"github.com/gompdf/folio/internal/text"
	"golang.org/x/text/language"
)

// Position is a location in the document: paragraph, element and char
type Position = layout.Position

// PageInfo describes one page of the document
type PageInfo struct {
	Number int      `json:"number"`
	Start  Position `json:"start"`
	End    Position `json:"end"`
	Lines  int      `json:"lines"`
}

// Match is a search result and the page it lands on
type Match struct {
	Page      int    `json:"page"`
	Paragraph int    `json:"paragraph"`
	Offset    int    `json:"offset"`
	Length    int    `json:"length"`
	Text      string `json:"text"`
}

// Reader paginates one HTML document
type Reader struct {
	options   Options
	loader    *res.Loader
	metrics   text.Metrics
	model     *model.TextModel
	view      *pagination.View
	title     string
	scrolling pagination.ScrollingMode
}

// Open reads an HTML document from r. Relative resources resolve against
// the working directory.
func Open(r io.Reader, opts ...Option) (*Reader, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return open(string(content), os.DirFS("."), "document.html", opts)
}

// OpenString opens an HTML document held in memory
func OpenString(content string, opts ...Option) (*Reader, error) {
	return open(content, os.DirFS("."), "document.html", opts)
}

// OpenFile opens an HTML file. Resources resolve within its directory.
func OpenFile(path string, opts ...Option) (*Reader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}
	return open(string(content), os.DirFS(filepath.Dir(path)), filepath.Base(path), opts)
}

// OpenFS opens the document name inside fsys
func OpenFS(fsys fs.FS, name string, opts ...Option) (*Reader, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}
	return open(string(content), fsys, name, opts)
}

func open(content string, fsys fs.FS, name string, opts []Option) (*Reader, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.Logger

	scrolling, err := pagination.ParseScrollingMode(options.ScrollingMode)
	if err != nil {
		return nil, err
	}
	alignment, ok := style.ParseAlignment(strings.ToLower(options.Alignment))
	if !ok {
		return nil, fmt.Errorf("unknown alignment %q", options.Alignment)
	}

	loader := res.NewLoader(fsys, name)
	for _, p := range options.ResourcePaths {
		loader.AddSearchPath(p)
	}

	doc, err := html.NewParser().ParseString(content)
	if err != nil {
		return nil, err
	}
	result := html.NewBuilder(loader, logger).Build(doc, name)

	sheets := result.Stylesheets
	if strings.TrimSpace(options.Stylesheet) != "" {
		sheet, err := css.NewParser().ParseString(options.Stylesheet)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSS: %w", err)
		}
		sheets = append(sheets, sheet)
	}

	metrics, err := newMetrics(options)
	if err != nil {
		return nil, err
	}
	hyphenator, err := newHyphenator(options)
	if err != nil {
		return nil, err
	}

	l := pagination.Layout{
		PageSize: pagination.PageSize{Width: options.PageWidth, Height: options.PageHeight},
		Margins: pagination.Margins{
			Top:    options.MarginTop,
			Right:  options.MarginRight,
			Bottom: options.MarginBottom,
			Left:   options.MarginLeft,
		},
		TwoColumn: options.TwoColumn,
		ColumnGap: options.ColumnGap,
	}
	if l.TextWidth() <= 0 || l.TextHeight() <= 0 {
		return nil, fmt.Errorf("margins leave no room for text on a %.2fx%.2f page", options.PageWidth, options.PageHeight)
	}

	styles := style.NewCollection(style.Options{
		FontFamily:       options.FontFamily,
		FontSize:         options.FontSize,
		LineSpacePercent: options.LineSpacePercent,
		Alignment:        alignment,
		FirstLineIndent:  options.FirstLineIndent,
		Hyphenation:      options.Hyphenation,
	}, sheets...)
	styles.SetWidth(l.ColumnWidth())

	engine := layout.NewEngine(metrics, hyphenator, styles, layout.Options{
		Hyphenation: options.Hyphenation,
		Images:      loader,
	})
	view := pagination.NewView(engine, pagination.Options{
		Layout:          l,
		CursorCacheSize: options.CursorCacheSize,
		Logger:          logger,
		Sink:            render.NewLogSink(logger),
	})
	view.SetModel(result.Model)

	title := options.Title
	if title == "" {
		title = result.Title
	}
	logger.Debug().
		Str("document", name).
		Int("paragraphs", result.Model.ParagraphCount()).
		Str("metrics", string(options.Metrics)).
		Msg("document opened")

	return &Reader{
		options:   options,
		loader:    loader,
		metrics:   metrics,
		model:     result.Model,
		view:      view,
		title:     title,
		scrolling: scrolling,
	}, nil
}

func newMetrics(options Options) (text.Metrics, error) {
	switch options.Metrics {
	case MetricsPDF, "":
		return text.NewPDFMetrics(), nil
	case MetricsFace:
		m, err := text.NewFaceMetrics(options.DPI)
		if err != nil {
			return nil, fmt.Errorf("failed to load font metrics: %w", err)
		}
		return m, nil
	case MetricsBasic:
		return text.NewBasicMetrics(), nil
	}
	return nil, fmt.Errorf("unknown metrics %q", options.Metrics)
}

func newHyphenator(options Options) (text.Hyphenator, error) {
	if !options.Hyphenation {
		return text.NoHyphenation{}, nil
	}
	tag, err := language.Parse(options.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to parse language %q: %w", options.Language, err)
	}
	patterns := options.Patterns
	if options.PatternFile != "" {
		content, err := os.ReadFile(options.PatternFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read hyphenation patterns: %w", err)
		}
		patterns = append(patterns, text.ParsePatterns(string(content))...)
	}
	return text.NewHyphenator(tag, patterns), nil
}

// View returns the underlying view for interactive use
func (r *Reader) View() *pagination.View {
	return r.view
}

// Title returns the document title
func (r *Reader) Title() string {
	return r.title
}

// ParagraphCount returns the number of paragraphs in the document
func (r *Reader) ParagraphCount() int {
	return r.model.ParagraphCount()
}

// TurnPage moves one page forward or backward with the configured
// scrolling mode and returns the new current page
func (r *Reader) TurnPage(forward bool) PageInfo {
	which := pagination.PageNext
	if !forward {
		which = pagination.PagePrevious
	}
	if r.view.CanScroll(which) {
		r.view.TurnPage(forward, r.scrolling, r.options.Overlap)
	}
	current, _ := r.view.PagePosition()
	return pageInfo(current, r.view.Page(pagination.PageCurrent))
}

func pageInfo(number int, page pagination.Page) PageInfo {
	info := PageInfo{Number: number, Lines: len(page.Lines)}
	if !page.Start.IsNull() {
		info.Start = page.Start.Position()
	}
	if !page.End.IsNull() {
		info.End = page.End.Position()
	}
	return info
}

// walk visits every page from the start of the document and restores the
// reading position afterwards
func (r *Reader) walk(visit func(number int, page pagination.Page)) {
	if r.model.ParagraphCount() == 0 {
		return
	}
	saved := r.view.StartCursor()
	defer func() {
		if !saved.IsNull() {
			r.view.GotoPosition(saved.Position())
		}
	}()

	r.view.GotoHome()
	var previous *Position
	for number := 1; ; number++ {
		page := r.view.Page(pagination.PageCurrent)
		if page.Start.IsNull() {
			return
		}
		start := page.Start.Position()
		if previous != nil && start.Compare(*previous) <= 0 {
			r.options.Logger.Warn().Stringer("start", start).Msg("pagination stopped advancing")
			return
		}
		previous = &start
		visit(number, page)
		if !r.view.CanScroll(pagination.PageNext) {
			return
		}
		r.view.TurnPage(true, pagination.NoOverlapping, 0)
	}
}

// Pages paginates the whole document
func (r *Reader) Pages() []PageInfo {
	var pages []PageInfo
	r.walk(func(number int, page pagination.Page) {
		pages = append(pages, pageInfo(number, page))
	})
	return pages
}

// Frames paints every page of the document
func (r *Reader) Frames() []*pagination.Frame {
	var frames []*pagination.Frame
	r.walk(func(int, pagination.Page) {
		if f := r.view.Paint(pagination.PageCurrent); f != nil {
			frames = append(frames, f)
		}
	})
	return frames
}

// Search marks every occurrence of s and returns them with the page each
// starts on. The marks stay on the view until ClearSearch.
func (r *Reader) Search(s string, ignoreCase bool) []Match {
	if r.view.Search(s, ignoreCase, false, false) == 0 {
		return nil
	}

	pages := make(map[model.Mark]int)
	r.walk(func(number int, _ pagination.Page) {
		f := r.view.Paint(pagination.PageCurrent)
		if f == nil {
			return
		}
		for _, a := range f.Areas {
			w, ok := a.Element.(*layout.Word)
			if !ok {
				continue
			}
			for _, m := range w.Marks {
				if _, seen := pages[m]; seen {
					continue
				}
				if _, _, ok := w.MarkedRange(m, a.Position.Char, a.Length); ok {
					pages[m] = number
				}
			}
		}
	})

	marks := r.model.Marks()
	matches := make([]Match, 0, len(marks))
	for _, m := range marks {
		matches = append(matches, Match{
			Page:      pages[m],
			Paragraph: m.Paragraph,
			Offset:    m.Offset,
			Length:    m.Length,
			Text:      r.excerpt(m, 24),
		})
	}
	return matches
}

// excerpt returns the text of a mark with up to n characters on each side
func (r *Reader) excerpt(m model.Mark, n int) string {
	runes := r.model.ParagraphText(m.Paragraph)
	from := max(0, m.Offset-n)
	to := min(len(runes), m.Offset+m.Length+n)
	if from >= to {
		return ""
	}
	return strings.TrimSpace(string(runes[from:to]))
}

// ClearSearch removes all search marks
func (r *Reader) ClearSearch() {
	r.view.ClearFindResults()
}

// Highlight adds a manual highlighting, replacing the previous one
func (r *Reader) Highlight(start, end Position) *highlight.Highlighting {
	return r.view.Highlight(start, end)
}

// RenderPDF renders every page of the document to w
func (r *Reader) RenderPDF(w io.Writer) error {
	renderer, options := r.renderer()
	if err := renderer.Render(r.Frames(), w, options); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// RenderPDFFile renders every page of the document to a file
func (r *Reader) RenderPDFFile(path string) error {
	renderer, options := r.renderer()
	if err := renderer.RenderFile(r.Frames(), path, options); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func (r *Reader) renderer() (*pdf.Renderer, pdf.RenderOptions) {
	renderer := pdf.NewRenderer(r.loader, r.metrics, r.options.Logger)
	renderer.DebugDrawBoxes = r.options.Debug
	return renderer, pdf.RenderOptions{
		Title:    r.title,
		Author:   r.options.Author,
		Subject:  r.options.Subject,
		Keywords: r.options.Keywords,
		Creator:  "folio",
		Producer: "folio",
	}
}
