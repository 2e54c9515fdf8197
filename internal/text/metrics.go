package text

import "strings"

// Font identifies a face at a size
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// StyleString returns the fpdf style letters for the font ("", "B", "I", "BI")
func (f Font) StyleString() string {
	var sb strings.Builder
	if f.Bold {
		sb.WriteByte('B')
	}
	if f.Italic {
		sb.WriteByte('I')
	}
	return sb.String()
}

// Metrics answers measurement queries for the layout engine.
// Implementations perform no drawing.
type Metrics interface {
	StringWidth(f Font, s []rune) float64
	SpaceWidth(f Font) float64
	// StringHeight is the height of a line of text without line spacing
	StringHeight(f Font) float64
	Descent(f Font) float64
}

// ResolveFamily maps a CSS font-family list to one of the generic families
// "sans-serif", "serif" or "monospace"
func ResolveFamily(value string) string {
	for _, candidate := range strings.Split(value, ",") {
		candidate = strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(candidate), `'"`)))
		switch candidate {
		case "arial", "helvetica", "sans-serif", "sans", "go":
			return "sans-serif"
		case "times", "times new roman", "serif", "georgia":
			return "serif"
		case "courier", "courier new", "monospace", "go mono":
			return "monospace"
		}
	}
	return "sans-serif"
}
