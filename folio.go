// Package folio paginates reflowable HTML documents the way an e-book
// reader does and renders the pages to PDF.
package folio

import (
	"github.com/gompdf/folio/pkg/api"
)

type Reader = api.Reader
type Options = api.Options
type Option = api.Option
type MetricsKind = api.MetricsKind
type Position = api.Position
type PageInfo = api.PageInfo
type Match = api.Match

func DefaultOptions() Options { return api.DefaultOptions() }

var (
	Open       = api.Open
	OpenString = api.OpenString
	OpenFile   = api.OpenFile
	OpenFS     = api.OpenFS
)

var (
	WithPageSize            = api.WithPageSize
	WithMargins             = api.WithMargins
	WithTwoColumns          = api.WithTwoColumns
	WithFont                = api.WithFont
	WithLineSpacing         = api.WithLineSpacing
	WithAlignment           = api.WithAlignment
	WithFirstLineIndent     = api.WithFirstLineIndent
	WithHyphenation         = api.WithHyphenation
	WithHyphenationPatterns = api.WithHyphenationPatterns
	WithPatternFile         = api.WithPatternFile
	WithMetrics             = api.WithMetrics
	WithDPI                 = api.WithDPI
	WithScrolling           = api.WithScrolling
	WithCursorCacheSize     = api.WithCursorCacheSize
	WithResourcePath        = api.WithResourcePath
	WithStylesheet          = api.WithStylesheet
	WithTitle               = api.WithTitle
	WithAuthor              = api.WithAuthor
	WithSubject             = api.WithSubject
	WithKeywords            = api.WithKeywords
	WithLogger              = api.WithLogger
	WithDebug               = api.WithDebug
	WithPageSizeA4          = api.WithPageSizeA4
	WithPageSizeA6          = api.WithPageSizeA6
	WithPageSizeLetter      = api.WithPageSizeLetter
	WithPageSizeLegal       = api.WithPageSizeLegal
)

const (
	MetricsPDF   = api.MetricsPDF
	MetricsFace  = api.MetricsFace
	MetricsBasic = api.MetricsBasic

	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height
	PageSizeA6Width  = api.PageSizeA6Width
	PageSizeA6Height = api.PageSizeA6Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight
)
