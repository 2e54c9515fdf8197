package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// HyphenationInfo reports where a word may be broken.
// Position i means "between word[i-1] and word[i]".
type HyphenationInfo struct {
	mask []bool
}

// IsHyphenationPossible reports whether the word may break before position i
func (h HyphenationInfo) IsHyphenationPossible(i int) bool {
	return i > 0 && i < len(h.mask) && h.mask[i]
}

// Hyphenator computes hyphenation points for words
type Hyphenator interface {
	Info(word []rune) HyphenationInfo
}

// NoHyphenation never allows a break inside a word
type NoHyphenation struct{}

// Info returns an empty mask
func (NoHyphenation) Info(word []rune) HyphenationInfo {
	return HyphenationInfo{}
}

// TeXHyphenator implements Liang's pattern based hyphenation. Breaks after
// an explicit hyphen are always allowed.
type TeXHyphenator struct {
	Language language.Tag

	patterns map[string][]uint8
	maxLen   int
	leftMin  int
	rightMin int
}

// NewHyphenator creates a hyphenator from TeX patterns such as "hy3ph".
// An empty pattern list only allows breaks after explicit hyphens.
func NewHyphenator(tag language.Tag, patterns []string) *TeXHyphenator {
	h := &TeXHyphenator{
		Language: tag,
		patterns: make(map[string][]uint8, len(patterns)),
		leftMin:  2,
		rightMin: 2,
	}
	for _, p := range patterns {
		h.addPattern(p)
	}
	return h
}

// ParsePatterns splits a TeX pattern file body into patterns, skipping
// comments (lines starting with %)
func ParsePatterns(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = line[:i]
		}
		out = append(out, strings.Fields(line)...)
	}
	return out
}

func (h *TeXHyphenator) addPattern(p string) {
	var letters []rune
	values := []uint8{0}
	for _, r := range strings.ToLower(p) {
		if r >= '0' && r <= '9' {
			values[len(values)-1] = uint8(r - '0')
			continue
		}
		letters = append(letters, r)
		values = append(values, 0)
	}
	if len(letters) == 0 {
		return
	}
	h.patterns[string(letters)] = values
	if len(letters) > h.maxLen {
		h.maxLen = len(letters)
	}
}

// Info computes the hyphenation mask of word
func (h *TeXHyphenator) Info(word []rune) HyphenationInfo {
	n := len(word)
	mask := make([]bool, n)
	if n < 2 {
		return HyphenationInfo{mask: mask}
	}

	dotted := make([]rune, 0, n+2)
	dotted = append(dotted, '.')
	for _, r := range word {
		dotted = append(dotted, unicode.ToLower(r))
	}
	dotted = append(dotted, '.')

	values := make([]uint8, len(dotted)+1)
	for start := range dotted {
		for l := 1; l <= h.maxLen && start+l <= len(dotted); l++ {
			pattern, ok := h.patterns[string(dotted[start:start+l])]
			if !ok {
				continue
			}
			for k, v := range pattern {
				if v > values[start+k] {
					values[start+k] = v
				}
			}
		}
	}

	for i := 1; i < n; i++ {
		switch {
		case word[i-1] == '-':
			mask[i] = true
		case !unicode.IsLetter(word[i-1]) || !unicode.IsLetter(word[i]):
		case i < h.leftMin || i > n-h.rightMin:
		default:
			mask[i] = values[i+1]%2 == 1
		}
	}
	return HyphenationInfo{mask: mask}
}
