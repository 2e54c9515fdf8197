package layout

import (
	"math"
	"sort"

	"github.com/gompdf/folio/internal/style"
)

// ElementArea is the on-page rectangle of an element, or of the part of a
// word between Char and Char+Length
type ElementArea struct {
	Position           Position
	Length             int
	IsLastInElement    bool
	AddHyphenationSign bool
	ChangeStyle        bool
	Style              *style.Style
	Element            Element

	XStart float64
	XEnd   float64
	YStart float64
	YEnd   float64
	Column int
}

// IsFirstInElement reports whether the area starts its element
func (a *ElementArea) IsFirstInElement() bool {
	return a.Position.Char == 0
}

// Contains reports whether the point lies inside the area
func (a *ElementArea) Contains(x, y float64) bool {
	return x >= a.XStart && x <= a.XEnd && y >= a.YStart && y <= a.YEnd
}

// DistanceTo is the Chebyshev distance from the point to the area
func (a *ElementArea) DistanceTo(x, y float64) float64 {
	var dx, dy float64
	switch {
	case x < a.XStart:
		dx = a.XStart - x
	case x > a.XEnd:
		dx = x - a.XEnd
	}
	switch {
	case y < a.YStart:
		dy = a.YStart - y
	case y > a.YEnd:
		dy = y - a.YEnd
	}
	return max(dx, dy)
}

// Rect is an axis aligned rectangle
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// SoulKind is the kind of element a region stands for
type SoulKind int

const (
	SoulWord SoulKind = iota
	SoulImage
	SoulVideo
	SoulExtension
	SoulHyperlink
)

// Soul identifies a region independently of its areas, so it survives
// relayout of the page
type Soul struct {
	Kind         SoulKind
	Paragraph    int
	StartElement int
	EndElement   int
	Hyperlink    string
	Image        *Image
}

// Compare orders souls by paragraph and element range. Overlapping souls
// compare equal.
func (s Soul) Compare(o Soul) int {
	if s.Paragraph != o.Paragraph {
		return cmp(s.Paragraph, o.Paragraph)
	}
	if s.EndElement < o.StartElement {
		return -1
	}
	if s.StartElement > o.EndElement {
		return 1
	}
	return 0
}

// ComparePosition orders the soul against a position, ignoring chars
func (s Soul) ComparePosition(p Position) int {
	if s.Paragraph != p.Paragraph {
		return cmp(s.Paragraph, p.Paragraph)
	}
	if s.EndElement < p.Element {
		return -1
	}
	if s.StartElement > p.Element {
		return 1
	}
	return 0
}

// Filter selects regions by soul
type Filter func(Soul) bool

// AnyRegion accepts every region
func AnyRegion(Soul) bool { return true }

// ImageOrHyperlink accepts image and hyperlink regions
func ImageOrHyperlink(s Soul) bool {
	return s.Kind == SoulImage || s.Kind == SoulHyperlink
}

// Region is a group of consecutive areas sharing a soul
type Region struct {
	Soul  Soul
	index *RegionIndex
	from  int
	to    int
}

// Areas returns the areas of the region
func (r *Region) Areas() []ElementArea {
	return r.index.areas[r.from:r.to]
}

// FirstArea returns the first area of the region
func (r *Region) FirstArea() *ElementArea {
	return &r.index.areas[r.from]
}

// LastArea returns the last area of the region
func (r *Region) LastArea() *ElementArea {
	return &r.index.areas[r.to-1]
}

// DistanceTo is the smallest distance from the point to an area
func (r *Region) DistanceTo(x, y float64) float64 {
	d := math.Inf(1)
	for i := r.from; i < r.to; i++ {
		d = min(d, r.index.areas[i].DistanceTo(x, y))
	}
	return d
}

// Hull returns the bounding rectangles of the region, one per column
func (r *Region) Hull() []Rect {
	return Hull(r.Areas())
}

// Hull returns the bounding rectangles of areas, one per column
func Hull(areas []ElementArea) []Rect {
	var rects []Rect
	column := -1
	for _, a := range areas {
		if a.Column != column {
			rects = append(rects, Rect{X0: a.XStart, Y0: a.YStart, X1: a.XEnd, Y1: a.YEnd})
			column = a.Column
			continue
		}
		last := &rects[len(rects)-1]
		last.X0 = min(last.X0, a.XStart)
		last.Y0 = min(last.Y0, a.YStart)
		last.X1 = max(last.X1, a.XEnd)
		last.Y1 = max(last.Y1, a.YEnd)
	}
	return rects
}

// RegionIndex is the per-page list of element areas in layout order
type RegionIndex struct {
	areas   []ElementArea
	regions []*Region
	current *Region
}

// Clear drops every area
func (x *RegionIndex) Clear() {
	x.areas = nil
	x.regions = nil
	x.current = nil
}

// Len returns the number of areas
func (x *RegionIndex) Len() int {
	return len(x.areas)
}

// Areas returns the areas in layout order
func (x *RegionIndex) Areas() []ElementArea {
	return x.areas
}

// Regions returns the regions in layout order
func (x *RegionIndex) Regions() []*Region {
	return x.regions
}

// Add appends an area. Consecutive areas of one hyperlink extend a single
// hyperlink region; every other visible element starts its own region.
func (x *RegionIndex) Add(a ElementArea) {
	x.areas = append(x.areas, a)
	n := len(x.areas)

	if a.Style != nil && a.Style.Hyperlink != "" {
		if r := x.current; r != nil && r.Soul.Kind == SoulHyperlink && r.Soul.Hyperlink == a.Style.Hyperlink && r.to == n-1 {
			r.to = n
			r.Soul.EndElement = a.Position.Element
			return
		}
		x.startRegion(Soul{Kind: SoulHyperlink, Hyperlink: a.Style.Hyperlink}, a, n)
		return
	}

	switch el := a.Element.(type) {
	case *Word:
		x.startRegion(Soul{Kind: SoulWord}, a, n)
	case *Image:
		x.startRegion(Soul{Kind: SoulImage, Image: el}, a, n)
	case *Video:
		x.startRegion(Soul{Kind: SoulVideo}, a, n)
	case *Extension:
		x.startRegion(Soul{Kind: SoulExtension}, a, n)
	default:
		x.current = nil
	}
}

func (x *RegionIndex) startRegion(s Soul, a ElementArea, n int) {
	s.Paragraph = a.Position.Paragraph
	s.StartElement = a.Position.Element
	s.EndElement = a.Position.Element
	r := &Region{Soul: s, index: x, from: n - 1, to: n}
	x.regions = append(x.regions, r)
	x.current = r
}

// FirstArea returns the first area, nil for an empty page
func (x *RegionIndex) FirstArea() *ElementArea {
	if len(x.areas) == 0 {
		return nil
	}
	return &x.areas[0]
}

// LastArea returns the last area, nil for an empty page
func (x *RegionIndex) LastArea() *ElementArea {
	if len(x.areas) == 0 {
		return nil
	}
	return &x.areas[len(x.areas)-1]
}

// ElementAt returns the area containing the point in column, searching
// areas ordered by column, then line, then x
func (x *RegionIndex) ElementAt(px, py float64, column int) *ElementArea {
	i := sort.Search(len(x.areas), func(i int) bool {
		a := &x.areas[i]
		switch {
		case a.Column != column:
			return a.Column > column
		case a.YEnd < py:
			return false
		case a.YStart > py:
			return true
		}
		return a.XEnd >= px
	})
	if i < len(x.areas) && x.areas[i].Column == column && x.areas[i].Contains(px, py) {
		return &x.areas[i]
	}
	// A tall image starts above the words of its line, so the areas of a
	// line are not ordered by top and the search can miss it
	for j := range x.areas {
		if a := &x.areas[j]; a.Column == column && a.Contains(px, py) {
			return a
		}
	}
	return nil
}

// FindRegion returns the region accepted by filter nearest to the point,
// if it lies within maxDistance
func (x *RegionIndex) FindRegion(px, py, maxDistance float64, filter Filter) *Region {
	var best *Region
	distance := maxDistance
	for _, r := range x.regions {
		if filter != nil && !filter(r.Soul) {
			continue
		}
		if d := r.DistanceTo(px, py); d <= distance && (best == nil || d < distance) {
			best, distance = r, d
		}
	}
	return best
}

// Region returns the region with the given soul
func (x *RegionIndex) Region(s *Soul) *Region {
	if s == nil {
		return nil
	}
	for _, r := range x.regions {
		if r.Soul.Kind == s.Kind && r.Soul.Compare(*s) == 0 && r.Soul.Hyperlink == s.Hyperlink {
			return r
		}
	}
	return nil
}

// NextRegion returns the region accepted by filter that follows (or, when
// forward is false, precedes) the region of s. A nil soul starts from the
// page edge.
func (x *RegionIndex) NextRegion(s *Soul, forward bool, filter Filter) *Region {
	at := -1
	if s != nil {
		for i, r := range x.regions {
			if r.Soul == *s {
				at = i
				break
			}
		}
	}
	if forward {
		for i := at + 1; i < len(x.regions); i++ {
			if filter == nil || filter(x.regions[i].Soul) {
				return x.regions[i]
			}
		}
		return nil
	}
	if at < 0 {
		at = len(x.regions)
	}
	for i := at - 1; i >= 0; i-- {
		if filter == nil || filter(x.regions[i].Soul) {
			return x.regions[i]
		}
	}
	return nil
}

// FirstAfter returns the first area at or after p
func (x *RegionIndex) FirstAfter(p Position) *ElementArea {
	for i := range x.areas {
		if p.Compare(x.areas[i].Position) <= 0 {
			return &x.areas[i]
		}
	}
	return nil
}

// LastBefore returns the last area at or before p
func (x *RegionIndex) LastBefore(p Position) *ElementArea {
	for i := len(x.areas) - 1; i >= 0; i-- {
		if x.areas[i].Position.Compare(p) <= 0 {
			return &x.areas[i]
		}
	}
	return nil
}

// Between returns the areas from start to end, both inclusive, in layout
// order
func (x *RegionIndex) Between(start, end *ElementArea) []ElementArea {
	if start == nil || end == nil {
		return nil
	}
	from, to := -1, -1
	for i := range x.areas {
		if &x.areas[i] == start {
			from = i
		}
		if &x.areas[i] == end {
			to = i
		}
	}
	if from < 0 || to < from {
		return nil
	}
	return x.areas[from : to+1]
}
