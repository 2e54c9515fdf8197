package layout

import (
	"github.com/gompdf/folio/internal/style"
	"github.com/gompdf/folio/internal/text"
)

const (
	videoWidth  = 300
	videoHeight = 200
)

// ImageSizer resolves the intrinsic size of an image
type ImageSizer interface {
	ImageSize(img *Image) (width, height float64, ok bool)
}

// Area is the size of one text column
type Area struct {
	Width  float64
	Height float64
}

// Options represents options for the layout engine
type Options struct {
	// Hyphenation enables automatic hyphenation for styles that allow it
	Hyphenation bool
	// Images overrides the intrinsic size stored in image elements
	Images ImageSizer
}

// Engine breaks paragraphs into lines and places lines into element areas.
// It carries the active text style between calls the way a paint context
// does, so callers reset it before walking a paragraph. Not safe for
// concurrent use.
type Engine struct {
	metrics    text.Metrics
	hyphenator text.Hyphenator
	styles     *style.Collection
	options    Options

	current *style.Style
	lines   map[lineKey]*LineInfo

	cachedWord *Word
	cachedInfo text.HyphenationInfo
}

// NewEngine creates a new layout engine
func NewEngine(metrics text.Metrics, hyphenator text.Hyphenator, styles *style.Collection, options Options) *Engine {
	if hyphenator == nil {
		hyphenator = text.NoHyphenation{}
	}
	e := &Engine{
		metrics:    metrics,
		hyphenator: hyphenator,
		styles:     styles,
		options:    options,
		lines:      make(map[lineKey]*LineInfo),
	}
	e.ResetStyle()
	return e
}

// Styles returns the style collection
func (e *Engine) Styles() *style.Collection {
	return e.styles
}

// Metrics returns the metrics source
func (e *Engine) Metrics() text.Metrics {
	return e.metrics
}

// SetHyphenation toggles automatic hyphenation
func (e *Engine) SetHyphenation(enabled bool) {
	e.options.Hyphenation = enabled
}

// Style returns the active style
func (e *Engine) Style() *style.Style {
	return e.current
}

// SetStyle replaces the active style
func (e *Engine) SetStyle(s *style.Style) {
	e.current = s
}

// ResetStyle returns to the base style
func (e *Engine) ResetStyle() {
	e.current = e.styles.Base()
}

// ApplyStyleChanges applies the controls of p in [from, to)
func (e *Engine) ApplyStyleChanges(p *ParagraphCursor, from, to int) {
	to = min(to, p.Len())
	for i := from; i < to; i++ {
		if c, ok := p.Element(i).(*Control); ok {
			e.applyControl(c)
		}
	}
}

func (e *Engine) applyControl(c *Control) {
	if c.Start {
		e.current = e.styles.Decorate(e.current, c.Kind, c.Hyperlink)
		return
	}
	if e.current.Parent != nil {
		e.current = e.current.Parent
	}
}

// ClearLines empties the line cache
func (e *Engine) ClearLines() {
	clear(e.lines)
}

// SeedLines makes already built lines available to the line cache
func (e *Engine) SeedLines(lines []*LineInfo) {
	for _, l := range lines {
		stored := *l
		e.lines[l.key] = &stored
	}
}

// CachedLines returns the number of cached lines
func (e *Engine) CachedLines() int {
	return len(e.lines)
}

func (e *Engine) font() text.Font {
	return e.current.Font()
}

// WordHeight is the line height of the active style
func (e *Engine) WordHeight() float64 {
	return e.metrics.StringHeight(e.font())*float64(e.current.LineSpacePercent)/100 + e.current.VerticalAlign
}

// Descent is the descent of the active font
func (e *Engine) Descent() float64 {
	return e.metrics.Descent(e.font())
}

// SpaceWidth is the width of a space in the active font
func (e *Engine) SpaceWidth() float64 {
	return e.metrics.SpaceWidth(e.font())
}

// StringWidth measures s in the active font
func (e *Engine) StringWidth(s []rune) float64 {
	return e.metrics.StringWidth(e.font(), s)
}

func (e *Engine) wordWidth(w *Word, start, length int, hyphen bool) float64 {
	width := e.metrics.StringWidth(e.font(), w.Data[start:start+length])
	if hyphen {
		width += e.metrics.StringWidth(e.font(), []rune{'-'})
	}
	return width
}

func (e *Engine) imageSize(img *Image, area Area) (float64, float64) {
	w, h := img.Width, img.Height
	if e.options.Images != nil {
		if iw, ih, ok := e.options.Images.ImageSize(img); ok {
			w, h = iw, ih
		}
	}
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := 1.0
	if area.Width > 0 && w > area.Width {
		scale = area.Width / w
	}
	if area.Height > 0 && h*scale > area.Height {
		scale = area.Height / h
	}
	return w * scale, h * scale
}

func (e *Engine) elementWidth(el Element, char int, area Area) float64 {
	switch el := el.(type) {
	case *Word:
		return e.wordWidth(el, char, el.Len()-char, false)
	case *Image:
		w, _ := e.imageSize(el, area)
		return w
	case *Video:
		return min(videoWidth, area.Width)
	case *Extension:
		return el.Width
	case NBSpace:
		return e.SpaceWidth()
	}
	return 0
}

func (e *Engine) elementHeight(el Element, area Area) float64 {
	switch el := el.(type) {
	case *Word, NBSpace:
		return e.WordHeight()
	case *Image:
		_, h := e.imageSize(el, area)
		spacing := e.metrics.StringHeight(e.font()) * float64(e.current.LineSpacePercent-100) / 100
		return h + max(spacing, 3)
	case *Video:
		return min(videoHeight, area.Height)
	case *Extension:
		return el.Height
	}
	return 0
}

func (e *Engine) elementDescent(el Element) float64 {
	if isWord(el) {
		return e.Descent()
	}
	return 0
}

func (e *Engine) hyphenationPossible() bool {
	return e.options.Hyphenation && e.current.AllowHyphenations
}

func (e *Engine) hyphenationInfo(w *Word) text.HyphenationInfo {
	if e.cachedWord != w {
		e.cachedWord = w
		e.cachedInfo = e.hyphenator.Info(w.Data)
	}
	return e.cachedInfo
}
