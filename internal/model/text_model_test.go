package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample() *TextModel {
	b := NewBuilder("sample")
	b.BeginParagraph(TextParagraph)
	b.AddText("Hello ")
	b.AddControl("b", true, "")
	b.AddText("World")
	b.AddControl("b", false, "")
	b.EndSection()
	b.BeginParagraph(TextParagraph)
	b.AddText("hello again, hello")
	return b.Build()
}

func TestTextLengthBefore(t *testing.T) {
	m := buildSample()

	require.Equal(t, 3, m.ParagraphCount())
	assert.Equal(t, EndOfSectionParagraph, m.Paragraph(1).Kind)

	assert.Equal(t, 0, m.TextLengthBefore(0))
	assert.Equal(t, 11, m.TextLengthBefore(1))
	assert.Equal(t, 11, m.TextLengthBefore(2))
	assert.Equal(t, 29, m.TextLengthBefore(3))
	assert.Equal(t, 29, m.TextLengthBefore(10))
	assert.Equal(t, 0, m.TextLengthBefore(-1))
}

func TestFindParagraphByTextLength(t *testing.T) {
	m := buildSample()

	assert.Equal(t, 0, m.FindParagraphByTextLength(0))
	assert.Equal(t, 0, m.FindParagraphByTextLength(11))
	assert.Equal(t, 2, m.FindParagraphByTextLength(12))
	assert.Equal(t, 2, m.FindParagraphByTextLength(1000))
}

func TestSearch(t *testing.T) {
	m := buildSample()

	count := m.Search("hello", 0, m.ParagraphCount(), false)
	assert.Equal(t, 2, count)
	assert.Equal(t, []Mark{
		{Paragraph: 2, Offset: 0, Length: 5},
		{Paragraph: 2, Offset: 13, Length: 5},
	}, m.Marks())

	count = m.Search("HELLO", 0, m.ParagraphCount(), true)
	assert.Equal(t, 3, count)
	first, ok := m.FirstMark()
	require.True(t, ok)
	assert.Equal(t, Mark{Paragraph: 0, Offset: 0, Length: 5}, first)
}

func TestSearchFoldsAcrossControls(t *testing.T) {
	m := buildSample()

	assert.Equal(t, 1, m.Search("o w", 0, 1, true))
	assert.Equal(t, []Mark{{Paragraph: 0, Offset: 4, Length: 3}}, m.MarksIn(0))
	assert.Empty(t, m.MarksIn(2))
}

func TestMarkNavigation(t *testing.T) {
	m := buildSample()
	m.Search("hello", 0, m.ParagraphCount(), true)

	next, ok := m.NextMark(Mark{Paragraph: 0, Offset: 1})
	require.True(t, ok)
	assert.Equal(t, Mark{Paragraph: 2, Offset: 0, Length: 5}, next)

	next, ok = m.NextMark(Mark{Paragraph: 2, Offset: 0})
	require.True(t, ok)
	assert.Equal(t, 0, next.Offset, "next mark includes the position itself")

	prev, ok := m.PreviousMark(Mark{Paragraph: 2, Offset: 0})
	require.True(t, ok)
	assert.Equal(t, 0, prev.Paragraph)

	_, ok = m.PreviousMark(Mark{Paragraph: 0, Offset: 0})
	assert.False(t, ok)

	last, ok := m.LastMark()
	require.True(t, ok)
	assert.Equal(t, 13, last.Offset)

	m.RemoveAllMarks()
	assert.Empty(t, m.Marks())
	_, ok = m.FirstMark()
	assert.False(t, ok)
}

func TestSearchEmptyPattern(t *testing.T) {
	m := buildSample()
	assert.Equal(t, 0, m.Search("", 0, m.ParagraphCount(), false))
}

func TestEndSectionDoesNotDuplicate(t *testing.T) {
	b := NewBuilder("x")
	b.EndSection()
	b.AddText("a")
	b.EndSection()
	b.EndSection()
	m := b.Build()

	require.Equal(t, 2, m.ParagraphCount())
	assert.Equal(t, TextParagraph, m.Paragraph(0).Kind)
	assert.Equal(t, EndOfSectionParagraph, m.Paragraph(1).Kind)
}
