package pagination

// PageIndex addresses a page relative to the current one
type PageIndex int

const (
	PagePrevious PageIndex = iota
	PageCurrent
	PageNext
)

func (i PageIndex) String() string {
	switch i {
	case PagePrevious:
		return "previous"
	case PageNext:
		return "next"
	}
	return "current"
}

// pageRing holds the previous, current and next pages. Rotating moves
// ownership of a page to its neighbour slot instead of copying it.
type pageRing struct {
	pages   [3]*Page
	current int
}

func newPageRing() *pageRing {
	return &pageRing{pages: [3]*Page{{}, {}, {}}}
}

func (r *pageRing) get(i PageIndex) *Page {
	switch i {
	case PagePrevious:
		return r.pages[(r.current+2)%3]
	case PageNext:
		return r.pages[(r.current+1)%3]
	}
	return r.pages[r.current]
}

func (r *pageRing) previous() *Page { return r.get(PagePrevious) }
func (r *pageRing) cur() *Page      { return r.get(PageCurrent) }
func (r *pageRing) next() *Page     { return r.get(PageNext) }

// rotate makes the next (forward) or previous page current
func (r *pageRing) rotate(forward bool) {
	if forward {
		r.current = (r.current + 1) % 3
	} else {
		r.current = (r.current + 2) % 3
	}
}

func (r *pageRing) reset() {
	for _, p := range r.pages {
		p.reset()
	}
}
