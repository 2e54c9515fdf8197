package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceMetrics measures text with x/image font faces. TrueType faces are
// built from the Go font family and cached per (font, size).
type FaceMetrics struct {
	mu    sync.Mutex
	dpi   float64
	fonts map[faceKey]*opentype.Font
	faces map[Font]font.Face
	fixed font.Face
}

type faceKey struct {
	mono         bool
	bold, italic bool
}

// NewFaceMetrics creates metrics using the Go fonts at the given DPI
// (72 makes one point one pixel)
func NewFaceMetrics(dpi float64) (*FaceMetrics, error) {
	if dpi <= 0 {
		dpi = 72
	}
	m := &FaceMetrics{
		dpi:   dpi,
		fonts: make(map[faceKey]*opentype.Font),
		faces: make(map[Font]font.Face),
	}
	sources := map[faceKey][]byte{
		{}:                         goregular.TTF,
		{bold: true}:               gobold.TTF,
		{italic: true}:             goitalic.TTF,
		{bold: true, italic: true}: gobolditalic.TTF,
		{mono: true}:               gomono.TTF,
	}
	for key, data := range sources {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Go font: %w", err)
		}
		m.fonts[key] = f
	}
	return m, nil
}

// NewBasicMetrics returns metrics where every glyph is the 7x13 fixed
// bitmap face regardless of the requested font
func NewBasicMetrics() *FaceMetrics {
	return &FaceMetrics{fixed: basicfont.Face7x13, faces: make(map[Font]font.Face)}
}

func (m *FaceMetrics) face(f Font) font.Face {
	if m.fixed != nil {
		return m.fixed
	}
	if face, ok := m.faces[f]; ok {
		return face
	}
	key := faceKey{bold: f.Bold, italic: f.Italic}
	if ResolveFamily(f.Family) == "monospace" {
		key = faceKey{mono: true}
	}
	face, err := opentype.NewFace(m.fonts[key], &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     m.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		face = basicfont.Face7x13
	}
	m.faces[f] = face
	return face
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// StringWidth returns the advance of s
func (m *FaceMetrics) StringWidth(f Font, s []rune) float64 {
	if len(s) == 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return toFloat(font.MeasureString(m.face(f), string(s)))
}

// SpaceWidth returns the advance of one space
func (m *FaceMetrics) SpaceWidth(f Font) float64 {
	return m.StringWidth(f, []rune{' '})
}

// StringHeight returns ascent plus descent of the face
func (m *FaceMetrics) StringHeight(f Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	metrics := m.face(f).Metrics()
	return toFloat(metrics.Ascent + metrics.Descent)
}

// Descent returns the depth below the baseline
func (m *FaceMetrics) Descent(f Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return toFloat(m.face(f).Metrics().Descent)
}
