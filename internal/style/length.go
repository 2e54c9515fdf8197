package style

import (
	"strconv"
	"strings"
)

// parseLength converts a CSS length to points. em is relative to fontSize,
// percentages to percentBase. ok is false when value is not a length.
func parseLength(value string, fontSize, percentBase float64) (float64, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return 0, false
	}
	if value == "0" || value == "auto" {
		return 0, true
	}

	units := []struct {
		suffix string
		scale  float64
	}{
		{"rem", fontSize},
		{"em", fontSize},
		{"ex", fontSize / 2},
		{"px", 1},
		{"pt", 1},
		{"pc", 12},
		{"in", 72},
		{"cm", 72 / 2.54},
		{"mm", 72 / 25.4},
		{"%", percentBase / 100},
	}
	for _, u := range units {
		if number, found := strings.CutSuffix(value, u.suffix); found {
			v, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
			if err != nil {
				return 0, false
			}
			return v * u.scale, true
		}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseBoxShorthand expands a margin shorthand into top, right, bottom, left.
// Each value reports whether it was a valid length.
func parseBoxShorthand(value string, fontSize, percentBase float64) (sides [4]float64, ok [4]bool) {
	parts := strings.Fields(value)
	var idx [4]int
	switch len(parts) {
	case 0:
		return sides, ok
	case 1:
		idx = [4]int{0, 0, 0, 0}
	case 2:
		idx = [4]int{0, 1, 0, 1}
	case 3:
		idx = [4]int{0, 1, 2, 1}
	default:
		idx = [4]int{0, 1, 2, 3}
	}
	for side, i := range idx {
		sides[side], ok[side] = parseLength(parts[i], fontSize, percentBase)
	}
	return sides, ok
}

// parseFontSize resolves a font-size value against the parent size
func parseFontSize(value string, parentSize, baseSize float64) (float64, bool) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "xx-small":
		return baseSize * 0.6, true
	case "x-small":
		return baseSize * 0.75, true
	case "small":
		return baseSize * 0.89, true
	case "medium":
		return baseSize, true
	case "large":
		return baseSize * 1.2, true
	case "x-large":
		return baseSize * 1.5, true
	case "xx-large":
		return baseSize * 2, true
	case "smaller":
		return parentSize / 1.2, true
	case "larger":
		return parentSize * 1.2, true
	}
	if strings.HasSuffix(strings.TrimSpace(value), "rem") {
		return parseLength(value, baseSize, baseSize)
	}
	return parseLength(value, parentSize, parentSize)
}

// parseLineSpace resolves line-height to a percentage of single spacing
func parseLineSpace(value string, fontSize float64) (int, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "normal" {
		return 100, true
	}
	if strings.HasSuffix(value, "%") {
		v, ok := parseLength(value, fontSize, 100)
		return int(v + 0.5), ok
	}
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return int(v*100 + 0.5), true
	}
	v, ok := parseLength(value, fontSize, fontSize)
	if !ok || fontSize <= 0 {
		return 0, false
	}
	return int(v/fontSize*100 + 0.5), true
}
