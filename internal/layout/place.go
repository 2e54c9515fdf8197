package layout

import "github.com/gompdf/folio/internal/style"

// PlaceLine resolves the areas of line info, whose top is at y in column
// x, and appends them to index. The baseline never goes below maxY.
func (e *Engine) PlaceLine(index *RegionIndex, info *LineInfo, x, y, maxY float64, column int, area Area) {
	y = min(y+info.Height, maxY)
	p := info.Paragraph
	e.current = info.StartStyle

	endOfParagraph := info.IsEndOfParagraph()
	fx := x + info.LeftIndent
	free := area.Width - e.current.RightIndent - info.Width

	tail := !endOfParagraph && info.EndChar > 0
	count := info.EndElement - info.RealStartElement
	if tail {
		count++
	}

	var correction float64
	justified := !endOfParagraph
	if justified {
		_, after := p.Element(info.EndElement).(AfterParagraph)
		justified = !after
	}
	switch {
	case justified && (e.current.Alignment == style.AlignJustify || e.current.Alignment == style.AlignUndefined):
		if count > 1 {
			correction = free / float64(count-1)
		}
	case e.current.Alignment == style.AlignRight:
		fx += free
	case e.current.Alignment == style.AlignCenter:
		fx += free / 2
	}

	var (
		spaceCounter = info.SpaceCounter
		wordOccurred bool
		changeStyle  = true
		spaceArea    *ElementArea
		char         = info.RealStartChar
	)
	for i := info.RealStartElement; i != info.EndElement; i, char = i+1, 0 {
		el := p.Element(i)
		width := e.elementWidth(el, char, area)
		switch el := el.(type) {
		case HSpace:
			if wordOccurred && spaceCounter > 0 {
				spaceWidth := e.SpaceWidth()
				spaceArea = nil
				if e.current.Underline {
					spaceArea = &ElementArea{
						Position:        Position{Paragraph: p.Index, Element: i},
						IsLastInElement: true,
						Style:           e.current,
						Element:         el,
						XStart:          fx,
						XEnd:            fx + spaceWidth,
						YStart:          y,
						YEnd:            y,
						Column:          column,
					}
				}
				fx += spaceWidth
				wordOccurred = false
				spaceCounter--
			}
		case *Word, *Image, *Video, *Extension:
			height := e.elementHeight(el, area)
			descent := e.elementDescent(el)
			length := 0
			if w, ok := el.(*Word); ok {
				length = w.Len() - char
			}
			if spaceArea != nil {
				index.Add(*spaceArea)
				spaceArea = nil
			}
			index.Add(ElementArea{
				Position:        Position{Paragraph: p.Index, Element: i, Char: char},
				Length:          length,
				IsLastInElement: true,
				ChangeStyle:     changeStyle,
				Style:           e.current,
				Element:         el,
				XStart:          fx,
				XEnd:            fx + width,
				YStart:          y - height,
				YEnd:            y + descent,
				Column:          column,
			})
			changeStyle = false
			wordOccurred = true
		case *Control:
			e.applyControl(el)
			changeStyle = true
		}
		fx += width
		if i+1 != info.EndElement || tail {
			fx += correction
		}
	}

	if tail {
		w := p.Element(info.EndElement).(*Word)
		from := 0
		if info.RealStartElement == info.EndElement {
			from = info.RealStartChar
		}
		length := info.EndChar - from
		hyphen := w.Data[info.EndChar-1] != '-'
		width := e.wordWidth(w, from, length, hyphen)
		index.Add(ElementArea{
			Position:           Position{Paragraph: p.Index, Element: info.EndElement, Char: from},
			Length:             length,
			AddHyphenationSign: hyphen,
			ChangeStyle:        changeStyle,
			Style:              e.current,
			Element:            w,
			XStart:             fx,
			XEnd:               fx + width,
			YStart:             y - e.elementHeight(w, area),
			YEnd:               y + e.Descent(),
			Column:             column,
		})
	}
}
