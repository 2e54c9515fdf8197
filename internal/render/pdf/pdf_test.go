package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/pagination"
	"github.com/gompdf/folio/internal/style"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() *pagination.Frame {
	s := &style.Style{FontFamily: "serif", FontSize: 12, Color: "#333", Underline: true}
	word := layout.ElementArea{
		Position: layout.Position{Paragraph: 0, Element: 0, Char: 0},
		Length:   5,
		Style:    s,
		Element:  &layout.Word{Data: []rune("hello")},
		XStart:   72, XEnd: 100, YStart: 72, YEnd: 88,
	}
	h := highlight.New(highlight.KindSearch, word.Position, word.Position)
	return &pagination.Frame{
		Layout: pagination.DefaultLayout(),
		Areas: []layout.ElementArea{
			word,
			{Element: &layout.Image{Source: "missing.png"}, XStart: 72, XEnd: 120, YStart: 100, YEnd: 140},
		},
		Highlights: []pagination.HighlightArea{{
			Highlighting: h,
			Areas:        []layout.ElementArea{word},
			Hull:         []layout.Rect{{X0: 72, Y0: 72, X1: 100, Y1: 88}},
		}},
		Marks:      []pagination.MarkSpan{{Area: word, XStart: 72, XEnd: 90}},
		LeftCursor: &highlight.Point{X: 72, Y: 88},
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer(nil, nil, zerolog.Nop())
	r.DebugDrawBoxes = true

	var buf bytes.Buffer
	err := r.Render([]*pagination.Frame{testFrame(), testFrame()}, &buf, RenderOptions{Title: "Test"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderWithoutFrames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(nil, nil, zerolog.Nop()).Render(nil, &buf, RenderOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	err := NewRenderer(nil, nil, zerolog.Nop()).Render([]*pagination.Frame{nil}, &buf, RenderOptions{})
	assert.Error(t, err)
}

func TestRenderFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.pdf")
	require.NoError(t, NewRenderer(nil, nil, zerolog.Nop()).RenderFile([]*pagination.Frame{testFrame()}, out, RenderOptions{}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		value   string
		r, g, b int
	}{
		{"#ff8800", 255, 136, 0},
		{"#333", 51, 51, 51},
		{"rgb(1,2,3)", 1, 2, 3},
		{"rgb(10, 20, 30)", 10, 20, 30},
		{"Red", 255, 0, 0},
		{"nonsense", 0, 0, 0},
		{"#12", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r, g, b := parseColor(tt.value)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}
