package model

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// TextModel is an in-memory Model
type TextModel struct {
	ID string

	paragraphs []Paragraph
	// ends[i] is the number of characters in paragraphs [0, i]
	ends  []int
	marks []Mark
}

// NewTextModel creates a model from already built paragraphs
func NewTextModel(id string, paragraphs []Paragraph) *TextModel {
	m := &TextModel{
		ID:         id,
		paragraphs: paragraphs,
		ends:       make([]int, len(paragraphs)),
	}
	total := 0
	for i, p := range paragraphs {
		total += p.TextLength()
		m.ends[i] = total
	}
	return m
}

// ParagraphCount returns the number of paragraphs
func (m *TextModel) ParagraphCount() int {
	return len(m.paragraphs)
}

// Paragraph returns paragraph i
func (m *TextModel) Paragraph(i int) Paragraph {
	return m.paragraphs[i]
}

// TextLengthBefore returns the number of characters in paragraphs [0, i)
func (m *TextModel) TextLengthBefore(i int) int {
	if i <= 0 || len(m.ends) == 0 {
		return 0
	}
	if i > len(m.ends) {
		i = len(m.ends)
	}
	return m.ends[i-1]
}

// FindParagraphByTextLength returns the first paragraph whose end offset
// is at least n, clamped to the last paragraph
func (m *TextModel) FindParagraphByTextLength(n int) int {
	if len(m.ends) == 0 {
		return 0
	}
	i := sort.SearchInts(m.ends, n)
	if i >= len(m.ends) {
		i = len(m.ends) - 1
	}
	return i
}

// ParagraphText returns the concatenated text entries of paragraph i
func (m *TextModel) ParagraphText(i int) []rune {
	var text []rune
	for _, e := range m.paragraphs[i].Entries {
		if t, ok := e.(TextEntry); ok {
			text = append(text, []rune(t.Text)...)
		}
	}
	return text
}

// Search replaces the current marks with every occurrence of text in
// paragraphs [from, to) and returns the number of matches
func (m *TextModel) Search(text string, from, to int, ignoreCase bool) int {
	m.marks = m.marks[:0]
	if text == "" {
		return 0
	}
	if from < 0 {
		from = 0
	}
	if to > len(m.paragraphs) {
		to = len(m.paragraphs)
	}

	folder := newFolder(ignoreCase)
	pattern := folder.runes(norm.NFC.String(text))
	for i := from; i < to; i++ {
		haystack := folder.apply(m.ParagraphText(i))
		for offset := 0; offset+len(pattern) <= len(haystack); {
			if matchAt(haystack, pattern, offset) {
				m.marks = append(m.marks, Mark{Paragraph: i, Offset: offset, Length: len(pattern)})
				offset += len(pattern)
				continue
			}
			offset++
		}
	}
	return len(m.marks)
}

func matchAt(haystack, pattern []rune, offset int) bool {
	for j, r := range pattern {
		if haystack[offset+j] != r {
			return false
		}
	}
	return true
}

// Marks returns the current search marks in document order
func (m *TextModel) Marks() []Mark {
	out := make([]Mark, len(m.marks))
	copy(out, m.marks)
	return out
}

// MarksIn returns the marks of one paragraph
func (m *TextModel) MarksIn(paragraph int) []Mark {
	lo := sort.Search(len(m.marks), func(i int) bool { return m.marks[i].Paragraph >= paragraph })
	hi := sort.Search(len(m.marks), func(i int) bool { return m.marks[i].Paragraph > paragraph })
	return m.marks[lo:hi]
}

// FirstMark returns the first mark in the document
func (m *TextModel) FirstMark() (Mark, bool) {
	if len(m.marks) == 0 {
		return Mark{}, false
	}
	return m.marks[0], true
}

// LastMark returns the last mark in the document
func (m *TextModel) LastMark() (Mark, bool) {
	if len(m.marks) == 0 {
		return Mark{}, false
	}
	return m.marks[len(m.marks)-1], true
}

// NextMark returns the first mark at or after position
func (m *TextModel) NextMark(position Mark) (Mark, bool) {
	i := sort.Search(len(m.marks), func(i int) bool { return m.marks[i].Compare(position) >= 0 })
	if i == len(m.marks) {
		return Mark{}, false
	}
	return m.marks[i], true
}

// PreviousMark returns the last mark strictly before position
func (m *TextModel) PreviousMark(position Mark) (Mark, bool) {
	i := sort.Search(len(m.marks), func(i int) bool { return m.marks[i].Compare(position) >= 0 })
	if i == 0 {
		return Mark{}, false
	}
	return m.marks[i-1], true
}

// RemoveAllMarks clears the search results
func (m *TextModel) RemoveAllMarks() {
	m.marks = m.marks[:0]
}

// folder maps runes one to one so that match offsets stay valid in the
// original text. Foldings that expand a rune (e.g. ß to ss) keep the rune.
type folder struct {
	caser cases.Caser
	fold  bool
	memo  map[rune]rune
}

func newFolder(ignoreCase bool) *folder {
	return &folder{caser: cases.Fold(), fold: ignoreCase, memo: map[rune]rune{}}
}

func (f *folder) rune(r rune) rune {
	if !f.fold || r < utf8.RuneSelf && (r < 'A' || r > 'Z') {
		return r
	}
	if folded, ok := f.memo[r]; ok {
		return folded
	}
	folded := r
	s := f.caser.String(string(r))
	if utf8.RuneCountInString(s) == 1 {
		folded, _ = utf8.DecodeRuneInString(s)
	}
	f.memo[r] = folded
	return folded
}

func (f *folder) runes(s string) []rune {
	return f.apply([]rune(s))
}

func (f *folder) apply(text []rune) []rune {
	if !f.fold {
		return text
	}
	out := make([]rune, len(text))
	for i, r := range text {
		out[i] = f.rune(r)
	}
	return out
}
