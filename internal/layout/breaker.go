package layout

import "github.com/gompdf/folio/internal/style"

// ProcessLine breaks one line of p starting at (start, startChar), never
// going past element end. previous is the line above, used to collapse
// vertical spacing. A line that cannot consume anything is forced to take
// the rest of the paragraph.
func (e *Engine) ProcessLine(area Area, p *ParagraphCursor, start, startChar, end int, previous *LineInfo) *LineInfo {
	info := e.processLine(area, p, start, startChar, end, previous)
	if info.EndElement == start && info.EndChar == startChar {
		info.EndElement = p.Len()
		info.EndChar = 0
	}
	return info
}

func (e *Engine) processLine(area Area, p *ParagraphCursor, start, startChar, end int, previous *LineInfo) *LineInfo {
	info := newLineInfo(p, start, startChar, e.current)
	if cached, ok := e.lines[info.key]; ok {
		line := *cached
		line.Adjust(previous)
		e.ApplyStyleChanges(p, start, line.EndElement)
		return &line
	}

	current, currentChar := start, startChar
	firstLine := start == 0 && startChar == 0
	if firstLine {
		for current != end {
			c, ok := p.Element(current).(*Control)
			if !ok {
				break
			}
			e.applyControl(c)
			current++
			currentChar = 0
		}
		info.StartStyle = e.current
		info.RealStartElement = current
		info.RealStartChar = currentChar
	}

	stored := e.current
	maxWidth := area.Width - stored.RightIndent
	info.LeftIndent = stored.LeftIndent
	if firstLine && stored.Alignment != style.AlignCenter {
		info.LeftIndent += stored.FirstLineIndent
	}
	if info.LeftIndent > maxWidth-20 {
		info.LeftIndent = maxWidth * 3 / 4
	}
	info.Width = info.LeftIndent

	if info.RealStartElement == end {
		info.EndElement = info.RealStartElement
		info.EndChar = info.RealStartChar
		return info
	}

	var (
		newWidth       = info.Width
		newHeight      = info.Height
		newDescent     = info.Descent
		wordOccurred   bool
		visible        bool
		lastSpaceWidth float64
		spaceCounter   int
		removeLastSp   bool
	)

	for {
		el := p.Element(current)
		newWidth += e.elementWidth(el, currentChar, area)
		newHeight = max(newHeight, e.elementHeight(el, area))
		newDescent = max(newDescent, e.elementDescent(el))
		switch el := el.(type) {
		case HSpace:
			if wordOccurred {
				wordOccurred = false
				spaceCounter++
				lastSpaceWidth = e.SpaceWidth()
				newWidth += lastSpaceWidth
			}
		case NBSpace:
			wordOccurred = true
		case *Word, *Image, *Video, *Extension:
			wordOccurred = true
			visible = true
		case *Control:
			e.applyControl(el)
		}
		if newWidth > maxWidth && (info.EndElement != start || isWord(el)) {
			break
		}

		previousEl := el
		current++
		currentChar = 0
		allowBreak := current == end
		if !allowBreak {
			next := p.Element(current)
			allowBreak = canBreakBetween(previousEl, next)
		}
		if allowBreak {
			info.IsVisible = visible
			info.Width = newWidth
			info.Height = max(info.Height, newHeight)
			info.Descent = max(info.Descent, newDescent)
			info.EndElement = current
			info.EndChar = currentChar
			info.SpaceCounter = spaceCounter
			stored = e.current
			removeLastSp = !wordOccurred && spaceCounter > 0
		}
		if current == end {
			break
		}
	}

	if current != end && (e.hyphenationPossible() || info.EndElement == start) {
		if w, ok := p.Element(current).(*Word); ok {
			newWidth -= e.wordWidth(w, currentChar, w.Len()-currentChar, false)
			if pos, width, ok := e.hyphenate(w, currentChar, maxWidth-newWidth, info.EndElement == start); ok {
				info.IsVisible = true
				info.Width = newWidth + width
				info.Height = max(info.Height, newHeight)
				info.Descent = max(info.Descent, newDescent)
				info.EndElement = current
				info.EndChar = pos
				info.SpaceCounter = spaceCounter
				info.Hyphenated = true
				stored = e.current
				removeLastSp = false
			}
		}
	}

	if removeLastSp {
		info.Width -= lastSpaceWidth
		info.SpaceCounter--
	}

	e.current = stored

	if firstLine {
		info.VSpaceBefore = info.StartStyle.SpaceBefore
		if previous != nil {
			info.PreviousInfoUsed = true
			info.Height += max(0, info.VSpaceBefore-previous.VSpaceAfter)
		} else {
			info.Height += info.VSpaceBefore
		}
	}
	if info.IsEndOfParagraph() {
		info.VSpaceAfter = e.current.SpaceAfter
	}

	if info.EndElement != end || end == p.Len() {
		cached := *info
		e.lines[info.key] = &cached
	}
	return info
}

// canBreakBetween reports whether a line may end between left and right:
// never around a non-breaking space, never between a non-word and a word,
// never before an image or a control.
func canBreakBetween(left, right Element) bool {
	if _, ok := left.(NBSpace); ok {
		return false
	}
	switch right.(type) {
	case NBSpace, *Image, *Control:
		return false
	case *Word:
		return isWord(left)
	}
	return true
}

// hyphenate finds the longest prefix of w starting at from that fits in
// spaceLeft, breaking at a hyphenation point. When force is set and no
// point fits, it falls back to breaking between any two characters.
func (e *Engine) hyphenate(w *Word, from int, spaceLeft float64, force bool) (int, float64, bool) {
	if !(w.Len() > 3 && spaceLeft > 2*e.SpaceWidth()) && !force {
		return 0, 0, false
	}
	info := e.hyphenationInfo(w)
	position := from
	var width float64
	for left, right := from, w.Len()-1; right > left; {
		mid := (right + left + 1) / 2
		m := mid
		for m > left && !info.IsHyphenationPossible(m) {
			m--
		}
		if m > left {
			wd := e.wordWidth(w, from, m-from, w.Data[m-1] != '-')
			if wd < spaceLeft {
				left = mid
				position = m
				width = wd
			} else {
				right = mid - 1
			}
		} else {
			left = mid
		}
	}

	if position == from && force {
		width = e.wordWidth(w, from, 1, false)
		right := w.Len() - 1
		if w.Len() == from+1 {
			right = w.Len()
		}
		left := from + 1
		for right > left {
			mid := (right + left + 1) / 2
			wd := e.wordWidth(w, from, mid-from, w.Data[mid-1] != '-')
			if wd <= spaceLeft {
				left = mid
				width = wd
			} else {
				right = mid - 1
			}
		}
		position = right
	}
	return position, width, position > from
}
