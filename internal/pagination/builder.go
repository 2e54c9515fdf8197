package pagination

import (
	"github.com/gompdf/folio/internal/layout"
)

// buildInfos fills page with the lines following start until the text
// area is used up, the text ends, or a section boundary is reached while
// the first column is still open. It returns the cursor after the last
// line.
func (v *View) buildInfos(page *Page, start layout.WordCursor) layout.WordCursor {
	end := start
	area := page.area()
	extent := page.textHeight
	page.Lines = nil
	page.Column0Height = 0

	var previous *layout.LineInfo
	for {
		paragraphPrevious := previous
		v.engine.ResetStyle()
		p := end.Paragraph()
		element, char := end.ElementIndex(), end.CharIndex()
		v.engine.ApplyStyleChanges(p, 0, element)
		last := p.Len()
		for element != last {
			info := v.engine.ProcessLine(area, p, element, char, last, paragraphPrevious)
			previous = info
			element, char = info.EndElement, info.EndChar
			extent -= info.Height + info.Descent
			if extent < 0 && len(page.Lines) > page.Column0Height {
				if page.Column0Height == 0 && page.twoColumn {
					extent = page.textHeight - (info.Height + info.Descent)
					page.Column0Height = len(page.Lines)
				} else {
					break
				}
			}
			extent -= info.VSpaceAfter
			end.MoveTo(element, char)
			page.Lines = append(page.Lines, info)
			if extent < 0 {
				if page.Column0Height == 0 && page.twoColumn {
					extent = page.textHeight
					page.Column0Height = len(page.Lines)
				} else {
					break
				}
			}
		}

		next := end.IsEndOfParagraph() && end.NextParagraph()
		section := next && end.Paragraph().IsEndOfSection()
		if section && page.Column0Height == 0 && page.twoColumn && len(page.Lines) > 0 {
			extent = page.textHeight
			page.Column0Height = len(page.Lines)
		}
		if !next || extent < 0 || (section && len(page.Lines) != page.Column0Height) {
			break
		}
	}
	v.engine.ResetStyle()

	v.logger.Debug().
		Stringer("start", start).
		Stringer("end", end).
		Int("lines", len(page.Lines)).
		Int("column0", page.Column0Height).
		Msg("page built")
	return end
}
