package pagination

import (
	"strings"

	"github.com/gompdf/folio/internal/layout"
)

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// LookupPageSize finds a standard page size by name, ignoring case
func LookupPageSize(name string) (PageSize, bool) {
	for _, s := range []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5} {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return PageSize{}, false
}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Layout describes where text goes on a page
type Layout struct {
	PageSize  PageSize
	Margins   Margins
	TwoColumn bool
	ColumnGap float64
}

// DefaultLayout is an A4 page with one inch margins and a single column
func DefaultLayout() Layout {
	return Layout{
		PageSize:  PageSizeA4,
		Margins:   Margins{Top: 72, Right: 72, Bottom: 72, Left: 72},
		ColumnGap: 24,
	}
}

// TextWidth is the width between the side margins
func (l Layout) TextWidth() float64 {
	return max(0, l.PageSize.Width-l.Margins.Left-l.Margins.Right)
}

// TextHeight is the height between the top and bottom margins
func (l Layout) TextHeight() float64 {
	return max(0, l.PageSize.Height-l.Margins.Top-l.Margins.Bottom)
}

// ColumnWidth is the width of one text column
func (l Layout) ColumnWidth() float64 {
	if l.TwoColumn {
		return max(0, (l.TextWidth()-l.ColumnGap)/2)
	}
	return l.TextWidth()
}

// Area is the size of one text column
func (l Layout) Area() layout.Area {
	return layout.Area{Width: l.ColumnWidth(), Height: l.TextHeight()}
}

// ColumnAt returns the column under x
func (l Layout) ColumnAt(x float64) int {
	if l.TwoColumn && x >= l.Margins.Left+l.ColumnWidth()+l.ColumnGap/2 {
		return 1
	}
	return 0
}
