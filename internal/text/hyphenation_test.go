package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

var liangPatterns = ParsePatterns(`
% sample from Liang's thesis
hy3ph he2n hena4 hen5at
1na n2at 1tio 2io o2n
`)

func breaks(info HyphenationInfo, n int) []int {
	var out []int
	for i := 0; i <= n; i++ {
		if info.IsHyphenationPossible(i) {
			out = append(out, i)
		}
	}
	return out
}

func TestTeXHyphenator(t *testing.T) {
	h := NewHyphenator(language.English, liangPatterns)

	word := []rune("hyphenation")
	assert.Equal(t, []int{2, 6}, breaks(h.Info(word), len(word)))

	word = []rune("Hyphenation")
	assert.Equal(t, []int{2, 6}, breaks(h.Info(word), len(word)), "case does not matter")
}

func TestExplicitHyphen(t *testing.T) {
	h := NewHyphenator(language.English, nil)

	word := []rune("well-known")
	assert.Equal(t, []int{5}, breaks(h.Info(word), len(word)))

	word = []rune("ab-")
	assert.Empty(t, breaks(h.Info(word), len(word)))
}

func TestNoHyphenation(t *testing.T) {
	info := NoHyphenation{}.Info([]rune("hyphenation"))
	assert.False(t, info.IsHyphenationPossible(2))
}

func TestResolveFamily(t *testing.T) {
	assert.Equal(t, "serif", ResolveFamily(`"Times New Roman", serif`))
	assert.Equal(t, "monospace", ResolveFamily("Courier"))
	assert.Equal(t, "sans-serif", ResolveFamily("Unknown"))
	assert.Equal(t, "Times", CoreFamily("serif"))
}

func TestBasicMetrics(t *testing.T) {
	m := NewBasicMetrics()
	f := Font{Family: "serif", Size: 12}

	assert.InDelta(t, 35, m.StringWidth(f, []rune("hello")), 0.001)
	assert.InDelta(t, 7, m.SpaceWidth(f), 0.001)
	assert.Zero(t, m.StringWidth(f, nil))
	assert.Greater(t, m.StringHeight(f), m.Descent(f))
}

func TestFaceMetricsScaleWithSize(t *testing.T) {
	m, err := NewFaceMetrics(72)
	assert.NoError(t, err)

	small := m.StringWidth(Font{Size: 10}, []rune("hello"))
	large := m.StringWidth(Font{Size: 20}, []rune("hello"))
	assert.Greater(t, small, 0.0)
	assert.InDelta(t, 2*small, large, 1)

	bold := m.StringWidth(Font{Size: 10, Bold: true}, []rune("hello"))
	assert.NotEqual(t, small, bold)
}
