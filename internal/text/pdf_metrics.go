package text

import (
	"sync"

	"codeberg.org/go-pdf/fpdf"
)

// PDFMetrics measures text with the PDF core fonts (Helvetica, Times,
// Courier) so that layout matches what the PDF renderer draws.
type PDFMetrics struct {
	mu        sync.Mutex
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewPDFMetrics creates metrics backed by a private fpdf document
func NewPDFMetrics() *PDFMetrics {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	return &PDFMetrics{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// CoreFamily maps a generic family to a PDF core font name
func CoreFamily(family string) string {
	switch ResolveFamily(family) {
	case "serif":
		return "Times"
	case "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}

func (m *PDFMetrics) use(f Font) {
	m.pdf.SetFont(CoreFamily(f.Family), f.StyleString(), f.Size)
}

// StringWidth returns the width of s in points
func (m *PDFMetrics) StringWidth(f Font, s []rune) float64 {
	if len(s) == 0 || f.Size <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.use(f)
	return m.pdf.GetStringWidth(m.translate(string(s)))
}

// SpaceWidth returns the width of one space
func (m *PDFMetrics) SpaceWidth(f Font) float64 {
	return m.StringWidth(f, []rune{' '})
}

func (m *PDFMetrics) verticalMetrics(f Font) (ascent, descent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.use(f)
	desc := m.pdf.GetFontDesc("", "")
	if desc.Ascent == 0 && desc.Descent == 0 {
		return f.Size * 0.8, f.Size * 0.2
	}
	return float64(desc.Ascent) * f.Size / 1000, -float64(desc.Descent) * f.Size / 1000
}

// StringHeight returns ascent plus descent
func (m *PDFMetrics) StringHeight(f Font) float64 {
	a, d := m.verticalMetrics(f)
	return a + d
}

// Descent returns the depth below the baseline
func (m *PDFMetrics) Descent(f Font) float64 {
	_, d := m.verticalMetrics(f)
	return d
}
