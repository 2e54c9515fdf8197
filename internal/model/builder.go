package model

import (
	"golang.org/x/text/unicode/norm"
)

// Builder assembles a TextModel paragraph by paragraph
type Builder struct {
	id         string
	paragraphs []Paragraph
	current    *Paragraph
}

// NewBuilder creates a new model builder
func NewBuilder(id string) *Builder {
	return &Builder{id: id}
}

// BeginParagraph starts a new paragraph, closing any open one
func (b *Builder) BeginParagraph(kind ParagraphKind) {
	b.EndParagraph()
	b.current = &Paragraph{Kind: kind}
}

// EndParagraph closes the open paragraph
func (b *Builder) EndParagraph() {
	if b.current == nil {
		return
	}
	b.paragraphs = append(b.paragraphs, *b.current)
	b.current = nil
}

func (b *Builder) add(e Entry) {
	if b.current == nil {
		b.current = &Paragraph{Kind: TextParagraph}
	}
	b.current.Entries = append(b.current.Entries, e)
}

// AddText appends a run of text, NFC normalized
func (b *Builder) AddText(text string) {
	if text == "" {
		return
	}
	b.add(TextEntry{Text: norm.NFC.String(text)})
}

// AddControl opens (start=true) or closes a styled span
func (b *Builder) AddControl(kind string, start bool, hyperlink string) {
	b.add(ControlEntry{Kind: kind, Start: start, Hyperlink: hyperlink})
}

// AddImage appends an image reference
func (b *Builder) AddImage(img ImageEntry) {
	b.add(img)
}

// AddVideo appends a video reference
func (b *Builder) AddVideo(sources map[string]string) {
	b.add(VideoEntry{Sources: sources})
}

// AddExtension appends an opaque fixed size block
func (b *Builder) AddExtension(kind string, width, height float64) {
	b.add(ExtensionEntry{Kind: kind, Width: width, Height: height})
}

// EndSection closes the open paragraph and inserts a section boundary
func (b *Builder) EndSection() {
	b.EndParagraph()
	if n := len(b.paragraphs); n == 0 || b.paragraphs[n-1].Kind == EndOfSectionParagraph {
		return
	}
	b.paragraphs = append(b.paragraphs, Paragraph{Kind: EndOfSectionParagraph})
}

// Len returns the number of finished paragraphs
func (b *Builder) Len() int {
	return len(b.paragraphs)
}

// Build returns the finished model
func (b *Builder) Build() *TextModel {
	b.EndParagraph()
	return NewTextModel(b.id, b.paragraphs)
}
