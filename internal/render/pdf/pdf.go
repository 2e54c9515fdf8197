package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gompdf/folio/internal/highlight"
	"github.com/gompdf/folio/internal/layout"
	"github.com/gompdf/folio/internal/pagination"
	"github.com/gompdf/folio/internal/res"
	"github.com/gompdf/folio/internal/style"
	"github.com/gompdf/folio/internal/text"
	"github.com/rs/zerolog"
)

// defaultBackgrounds fill highlightings that carry no color of their own
var defaultBackgrounds = map[highlight.Kind]string{
	highlight.KindSelection: "#b4d5fe",
	highlight.KindManual:    "#ffe08a",
	highlight.KindSearch:    "#ffff00",
	highlight.KindBookmark:  "#c8e6c9",
}

const (
	markColor    = "#ffff00"
	outlineColor = "#ff8800"
	cursorColor  = "#1a73e8"
	cursorRadius = 3
)

// Renderer draws painted page frames to PDF
type Renderer struct {
	// Loader provides image data, may be nil
	Loader *res.Loader
	// Metrics places the baseline of words, fpdf core font proportions are
	// used when nil
	Metrics text.Metrics
	Logger  zerolog.Logger
	// DrawHighlights paints highlightings, search marks and selection
	// handles
	DrawHighlights bool
	// DebugDrawBoxes outlines every element area
	DebugDrawBoxes bool

	images map[string]string
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// NewRenderer creates a new PDF renderer
func NewRenderer(loader *res.Loader, metrics text.Metrics, logger zerolog.Logger) *Renderer {
	return &Renderer{
		Loader:         loader,
		Metrics:        metrics,
		Logger:         logger,
		DrawHighlights: true,
	}
}

// Render writes one PDF page per frame to w
func (r *Renderer) Render(frames []*pagination.Frame, w io.Writer, options RenderOptions) error {
	r.images = make(map[string]string)

	size := pagination.DefaultLayout().PageSize
	if len(frames) > 0 {
		size = frames[0].Layout.PageSize
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)
	pdf.SetFont("Helvetica", "", 12)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	if len(frames) == 0 {
		pdf.AddPage()
	}
	for i, f := range frames {
		if f == nil {
			return fmt.Errorf("frame %d is nil", i)
		}
		ps := f.Layout.PageSize
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: ps.Width, Ht: ps.Height})
		r.renderFrame(pdf, f, translate)
		r.Logger.Debug().Int("page", i+1).Int("areas", len(f.Areas)).Msg("page rendered")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// RenderFile renders frames to a PDF file, creating its directory
func (r *Renderer) RenderFile(frames []*pagination.Frame, outputPath string, options RenderOptions) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := r.Render(frames, out, options); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (r *Renderer) renderFrame(pdf *fpdf.Fpdf, f *pagination.Frame, translate func(string) string) {
	foreground := make(map[layout.Position]string)
	if r.DrawHighlights {
		for _, h := range f.Highlights {
			r.renderHighlight(pdf, h)
			if color := h.Highlighting.Foreground; color != "" {
				for _, a := range h.Areas {
					foreground[a.Position] = color
				}
			}
		}
		for _, m := range f.Marks {
			setFillColor(pdf, markColor)
			pdf.Rect(m.XStart, m.Area.YStart, m.XEnd-m.XStart, m.Area.YEnd-m.Area.YStart, "F")
		}
	}

	for _, a := range f.Areas {
		switch el := a.Element.(type) {
		case *layout.Word:
			r.renderWord(pdf, a, el, foreground[a.Position], translate)
		case layout.HSpace:
			r.renderUnderline(pdf, a, a.YEnd)
		case *layout.Image:
			r.renderImage(pdf, a, el)
		case *layout.Video, *layout.Extension:
			renderPlaceholder(pdf, a)
		}
		if r.DebugDrawBoxes {
			pdf.SetDrawColor(255, 0, 0)
			pdf.SetLineWidth(0.1)
			pdf.Rect(a.XStart, a.YStart, a.XEnd-a.XStart, a.YEnd-a.YStart, "D")
		}
	}

	if len(f.Outline) > 0 {
		setDrawColor(pdf, outlineColor)
		pdf.SetLineWidth(1)
		for _, rect := range f.Outline {
			pdf.Rect(rect.X0-1, rect.Y0-1, rect.X1-rect.X0+2, rect.Y1-rect.Y0+2, "D")
		}
	}
	if r.DrawHighlights {
		setFillColor(pdf, cursorColor)
		for _, p := range []*highlight.Point{f.LeftCursor, f.RightCursor} {
			if p != nil {
				pdf.Circle(p.X, p.Y, cursorRadius, "F")
			}
		}
	}
}

func (r *Renderer) renderHighlight(pdf *fpdf.Fpdf, h pagination.HighlightArea) {
	background := h.Highlighting.Background
	if background == "" {
		background = defaultBackgrounds[h.Highlighting.Kind]
	}
	if background != "" {
		setFillColor(pdf, background)
		for _, rect := range h.Hull {
			pdf.Rect(rect.X0, rect.Y0, rect.X1-rect.X0, rect.Y1-rect.Y0, "F")
		}
	}
	if outline := h.Highlighting.Outline; outline != "" {
		setDrawColor(pdf, outline)
		pdf.SetLineWidth(0.5)
		for _, rect := range h.Hull {
			pdf.Rect(rect.X0, rect.Y0, rect.X1-rect.X0, rect.Y1-rect.Y0, "D")
		}
	}
}

func (r *Renderer) descent(s *style.Style) float64 {
	if r.Metrics != nil {
		return r.Metrics.Descent(s.Font())
	}
	return 0.2 * s.FontSize
}

func (r *Renderer) renderWord(pdf *fpdf.Fpdf, a layout.ElementArea, w *layout.Word, color string, translate func(string) string) {
	s := a.Style
	if s == nil {
		return
	}
	end := min(a.Position.Char+a.Length, w.Len())
	if a.Position.Char >= end {
		return
	}
	word := string(w.Data[a.Position.Char:end])
	if a.AddHyphenationSign {
		word += "-"
	}
	if color == "" {
		color = s.Color
	}

	pdf.SetFont(text.CoreFamily(s.FontFamily), s.Font().StyleString(), s.FontSize)
	red, green, blue := parseColor(color)
	pdf.SetTextColor(red, green, blue)
	baseline := a.YEnd - r.descent(s)
	pdf.Text(a.XStart, baseline, translate(word))
	r.renderUnderline(pdf, a, baseline)
}

// renderUnderline draws the underline of an underlined word or space
func (r *Renderer) renderUnderline(pdf *fpdf.Fpdf, a layout.ElementArea, baseline float64) {
	s := a.Style
	if s == nil || !s.Underline {
		return
	}
	setDrawColor(pdf, s.Color)
	pdf.SetLineWidth(max(0.5, s.FontSize/20))
	y := baseline + max(1, s.FontSize/10)
	pdf.Line(a.XStart, y, a.XEnd, y)
}

func (r *Renderer) renderImage(pdf *fpdf.Fpdf, a layout.ElementArea, img *layout.Image) {
	name, err := r.registerImage(pdf, img.Source)
	if err != nil {
		r.Logger.Warn().Err(err).Str("src", img.Source).Msg("failed to draw image")
		renderPlaceholder(pdf, a)
		return
	}
	pdf.ImageOptions(name, a.XStart, a.YStart, a.XEnd-a.XStart, a.YEnd-a.YStart,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// registerImage decodes an image once per document and registers it as PNG
func (r *Renderer) registerImage(pdf *fpdf.Fpdf, source string) (string, error) {
	if name, ok := r.images[source]; ok {
		return name, nil
	}
	if r.Loader == nil {
		return "", errors.New("no resource loader")
	}
	img, err := r.Loader.DecodeImage(source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	name := "img" + strconv.Itoa(len(r.images))
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("failed to register image: %w", err)
	}
	r.images[source] = name
	return name, nil
}

func renderPlaceholder(pdf *fpdf.Fpdf, a layout.ElementArea) {
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.5)
	pdf.Rect(a.XStart, a.YStart, a.XEnd-a.XStart, a.YEnd-a.YStart, "D")
	pdf.Line(a.XStart, a.YStart, a.XEnd, a.YEnd)
	pdf.Line(a.XStart, a.YEnd, a.XEnd, a.YStart)
}

func setFillColor(pdf *fpdf.Fpdf, color string) {
	red, green, blue := parseColor(color)
	pdf.SetFillColor(red, green, blue)
}

func setDrawColor(pdf *fpdf.Fpdf, color string) {
	red, green, blue := parseColor(color)
	pdf.SetDrawColor(red, green, blue)
}

var namedColors = map[string][3]int{
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"red":    {255, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"gray":   {128, 128, 128},
	"grey":   {128, 128, 128},
	"orange": {255, 165, 0},
	"purple": {128, 0, 128},
}

// parseColor parses a CSS color value, black when unknown
func parseColor(value string) (int, int, int) {
	value = strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return r, g, b
		}
	}
	if c, ok := namedColors[value]; ok {
		return c[0], c[1], c[2]
	}

	var r, g, b int
	if _, err := fmt.Sscanf(value, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return r, g, b
	}
	if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return r, g, b
	}
	return 0, 0, 0
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
