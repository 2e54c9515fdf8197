package layout

import (
	"unicode"

	"github.com/gompdf/folio/internal/model"
)

// ParagraphCursor is the materialized element list of one paragraph
type ParagraphCursor struct {
	Index    int
	Kind     model.ParagraphKind
	elements []Element
	last     bool
}

// Len returns the number of elements
func (p *ParagraphCursor) Len() int {
	return len(p.elements)
}

// Element returns element i
func (p *ParagraphCursor) Element(i int) Element {
	return p.elements[i]
}

// IsFirst reports whether this is the first paragraph of the model
func (p *ParagraphCursor) IsFirst() bool {
	return p.Index == 0
}

// IsLast reports whether this is the last paragraph of the model
func (p *ParagraphCursor) IsLast() bool {
	return p.last
}

// IsEndOfSection reports whether the paragraph is a section boundary
func (p *ParagraphCursor) IsEndOfSection() bool {
	return p.Kind == model.EndOfSectionParagraph
}

func newParagraphCursor(m model.Model, index int) *ParagraphCursor {
	para := m.Paragraph(index)
	p := &ParagraphCursor{
		Index: index,
		Kind:  para.Kind,
		last:  index == m.ParagraphCount()-1,
	}
	switch para.Kind {
	case model.EmptyLineParagraph:
		p.elements = []Element{&Word{Data: []rune{' '}}}
	case model.AfterSkipParagraph:
		p.elements = []Element{AfterParagraph{}}
	case model.TextParagraph:
		p.elements = materialize(para.Entries, m.MarksIn(index))
	}
	return p
}

// materialize splits a paragraph's entries into elements. Runs of
// whitespace collapse into a single HSpace.
func materialize(entries []model.Entry, marks []model.Mark) []Element {
	var (
		elements []Element
		offset   int
		word     []rune
		start    int
	)
	flush := func() {
		if len(word) == 0 {
			return
		}
		w := &Word{Data: word, ParagraphOffset: start}
		for _, m := range marks {
			if m.Offset < start+len(word) && m.Offset+m.Length > start {
				w.Marks = append(w.Marks, m)
			}
		}
		elements = append(elements, w)
		word = nil
	}
	space := func(e Element) {
		flush()
		if _, ok := e.(HSpace); ok && len(elements) > 0 {
			if _, prev := elements[len(elements)-1].(HSpace); prev {
				return
			}
		}
		elements = append(elements, e)
	}

	for _, entry := range entries {
		switch e := entry.(type) {
		case model.TextEntry:
			for _, r := range e.Text {
				switch {
				case r == '\u00a0':
					space(NBSpace{})
				case unicode.IsSpace(r):
					space(HSpace{})
				default:
					if len(word) == 0 {
						start = offset
					}
					word = append(word, r)
				}
				offset++
			}
		case model.ControlEntry:
			flush()
			elements = append(elements, &Control{Kind: e.Kind, Start: e.Start, Hyperlink: e.Hyperlink})
		case model.ImageEntry:
			flush()
			elements = append(elements, &Image{ID: e.ID, Source: e.Source, Width: e.Width, Height: e.Height})
		case model.VideoEntry:
			flush()
			elements = append(elements, &Video{Sources: e.Sources})
		case model.ExtensionEntry:
			flush()
			elements = append(elements, &Extension{Kind: e.Kind, Width: e.Width, Height: e.Height})
		}
	}
	flush()
	return elements
}
