package api

import "github.com/rs/zerolog"

// MetricsKind selects how text is measured
type MetricsKind string

const (
	// MetricsPDF measures with the PDF core fonts, matching rendered output
	MetricsPDF MetricsKind = "pdf"
	// MetricsFace measures with the Go TrueType fonts
	MetricsFace MetricsKind = "face"
	// MetricsBasic measures every glyph as a 7x13 bitmap
	MetricsBasic MetricsKind = "basic"
)

// Options represents configuration options for a reader
type Options struct {
	// Page dimensions in points
	PageWidth  float64
	PageHeight float64

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// TwoColumn splits every page into two columns separated by ColumnGap
	TwoColumn bool
	ColumnGap float64

	// Base text style
	FontFamily       string
	FontSize         float64
	LineSpacePercent int
	// Alignment is a CSS text-align value
	Alignment       string
	FirstLineIndent float64

	// Hyphenation enables automatic hyphenation. Without patterns words
	// only break after explicit hyphens.
	Hyphenation bool
	// Language is the BCP 47 tag of the hyphenation patterns
	Language string
	// PatternFile is a TeX pattern file read when the reader opens
	PatternFile string
	Patterns    []string

	Metrics MetricsKind
	DPI     float64

	// ScrollingMode is the name of a pagination.ScrollingMode used by
	// TurnPage, with its line count or percentage in Overlap
	ScrollingMode string
	Overlap       int

	CursorCacheSize int

	// ResourcePaths are directories searched for images and stylesheets
	// not found next to the document
	ResourcePaths []string
	// Stylesheet is applied after the document's own stylesheets
	Stylesheet string

	// Document metadata, Title defaults to the document title
	Title    string
	Author   string
	Subject  string
	Keywords string

	Logger zerolog.Logger
	// Debug outlines every element area in rendered output
	Debug bool
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// A4
		PageWidth:  PageSizeA4Width,
		PageHeight: PageSizeA4Height,

		// 1 inch = 72 points
		MarginTop:    72,
		MarginRight:  72,
		MarginBottom: 72,
		MarginLeft:   72,

		ColumnGap: 24,

		FontFamily:       "serif",
		FontSize:         12,
		LineSpacePercent: 120,
		Alignment:        "justify",
		FirstLineIndent:  18,

		Hyphenation: true,
		Language:    "en",

		Metrics: MetricsPDF,
		DPI:     72,

		ScrollingMode: "no_overlapping",

		Logger: zerolog.Nop(),
	}
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithTwoColumns splits pages into two columns
func WithTwoColumns(gap float64) Option {
	return func(o *Options) {
		o.TwoColumn = true
		o.ColumnGap = gap
	}
}

// WithFont sets the base font family and size
func WithFont(family string, size float64) Option {
	return func(o *Options) {
		o.FontFamily = family
		o.FontSize = size
	}
}

// WithLineSpacing sets the line height in percent of the font height
func WithLineSpacing(percent int) Option {
	return func(o *Options) {
		o.LineSpacePercent = percent
	}
}

// WithAlignment sets the base alignment ("left", "right", "center", "justify")
func WithAlignment(alignment string) Option {
	return func(o *Options) {
		o.Alignment = alignment
	}
}

// WithFirstLineIndent sets the indent of the first line of paragraphs
func WithFirstLineIndent(indent float64) Option {
	return func(o *Options) {
		o.FirstLineIndent = indent
	}
}

// WithHyphenation toggles automatic hyphenation
func WithHyphenation(enabled bool) Option {
	return func(o *Options) {
		o.Hyphenation = enabled
	}
}

// WithHyphenationPatterns sets the language and TeX patterns used to
// hyphenate
func WithHyphenationPatterns(language string, patterns []string) Option {
	return func(o *Options) {
		o.Language = language
		o.Patterns = patterns
	}
}

// WithPatternFile reads TeX hyphenation patterns from a file on open
func WithPatternFile(language, path string) Option {
	return func(o *Options) {
		o.Language = language
		o.PatternFile = path
	}
}

// WithMetrics selects the text metrics
func WithMetrics(kind MetricsKind) Option {
	return func(o *Options) {
		o.Metrics = kind
	}
}

// WithDPI sets the DPI of face metrics
func WithDPI(dpi float64) Option {
	return func(o *Options) {
		o.DPI = dpi
	}
}

// WithScrolling sets how TurnPage moves
func WithScrolling(mode string, overlap int) Option {
	return func(o *Options) {
		o.ScrollingMode = mode
		o.Overlap = overlap
	}
}

// WithCursorCacheSize bounds the number of materialized paragraphs
func WithCursorCacheSize(size int) Option {
	return func(o *Options) {
		o.CursorCacheSize = size
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithStylesheet sets a stylesheet applied after the document's own
func WithStylesheet(stylesheet string) Option {
	return func(o *Options) {
		o.Stylesheet = stylesheet
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithLogger sets the logger of the reader and its view
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28
	PageSizeA6Width  = 297.64
	PageSizeA6Height = 419.53

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeA6 sets the page size to A6, a common e-reader screen
func WithPageSizeA6() Option {
	return WithPageSize(PageSizeA6Width, PageSizeA6Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}
