package style

import (
	"strings"

	"github.com/gompdf/folio/internal/parser/css"
)

// Specificity represents the specificity of a CSS selector
type Specificity struct {
	ID      int
	Class   int
	Element int
}

// StyleProperty represents a computed style property
type StyleProperty struct {
	Name        string
	Value       string
	Important   bool
	Source      Source
	Specificity Specificity
}

// Source represents the origin of a style property
type Source int

const (
	SourceUserAgent Source = iota
	SourceAuthor
)

// ComputedStyle is the set of declarations that apply to one style kind
type ComputedStyle map[string]StyleProperty

// cascade resolves which declarations apply to a chain of style kinds.
// A chain lists the kind being decorated first, then its ancestors.
type cascade struct {
	userAgent *css.Stylesheet
	author    []*css.Stylesheet
}

func (c *cascade) compute(chain []Key) ComputedStyle {
	computed := make(ComputedStyle)
	if len(chain) == 0 {
		return computed
	}
	c.applyStylesheet(computed, chain, c.userAgent, SourceUserAgent)
	for _, sheet := range c.author {
		c.applyStylesheet(computed, chain, sheet, SourceAuthor)
	}
	return computed
}

func (c *cascade) applyStylesheet(computed ComputedStyle, chain []Key, sheet *css.Stylesheet, source Source) {
	if sheet == nil {
		return
	}
	for _, rule := range sheet.Rules {
		for _, selector := range rule.Selectors {
			if selectorMatches(chain, selector) {
				applyDeclarations(computed, rule.Declarations, calculateSpecificity(selector), source)
			}
		}
	}
}

// applyDeclarations keeps, per property, the winning declaration:
// importance first, then origin, then specificity, then order
func applyDeclarations(computed ComputedStyle, declarations []*css.Declaration, specificity Specificity, source Source) {
	for _, decl := range declarations {
		existing, exists := computed[decl.Property]
		if exists {
			if existing.Important && !decl.Important {
				continue
			}
			if existing.Important == decl.Important {
				if existing.Source > source {
					continue
				}
				if existing.Source == source && compareSpecificity(specificity, existing.Specificity) < 0 {
					continue
				}
			}
		}
		computed[decl.Property] = StyleProperty{
			Name:        decl.Property,
			Value:       decl.Value,
			Important:   decl.Important,
			Source:      source,
			Specificity: specificity,
		}
	}
}

// Key is a parsed style kind such as "span", "p.note" or "a#top.ext"
type Key struct {
	Tag     string
	ID      string
	Classes []string
}

// ParseKey parses a style kind
func ParseKey(kind string) Key {
	var k Key
	kind = strings.ToLower(kind)
	i := 0
	for i < len(kind) && kind[i] != '.' && kind[i] != '#' {
		i++
	}
	k.Tag = kind[:i]
	for i < len(kind) {
		j := i + 1
		for j < len(kind) && kind[j] != '.' && kind[j] != '#' {
			j++
		}
		if kind[i] == '#' {
			k.ID = kind[i+1 : j]
		} else if j > i+1 {
			k.Classes = append(k.Classes, kind[i+1:j])
		}
		i = j
	}
	return k
}

// selectorMatches matches a descendant selector against a chain whose
// first element is the subject
func selectorMatches(chain []Key, selector string) bool {
	parts := strings.Fields(selector)
	if len(parts) == 0 || !matchCompoundSelector(chain[0], parts[len(parts)-1]) {
		return false
	}

	next := 1
	for i := len(parts) - 2; i >= 0; i-- {
		found := false
		for ; next < len(chain); next++ {
			if matchCompoundSelector(chain[next], parts[i]) {
				found = true
				next++
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchCompoundSelector matches a compound selector (tag, #id, .class
// combinations) against a key. Attributes and pseudo-classes never match.
func matchCompoundSelector(k Key, sel string) bool {
	if sel == "" || strings.ContainsAny(sel, "[:>+~") {
		return false
	}
	want := ParseKey(sel)
	if want.Tag != "" && want.Tag != "*" && want.Tag != k.Tag {
		return false
	}
	if want.ID != "" && want.ID != k.ID {
		return false
	}
	for _, need := range want.Classes {
		found := false
		for _, have := range k.Classes {
			if have == need {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func calculateSpecificity(selector string) Specificity {
	var s Specificity
	for _, part := range strings.Fields(selector) {
		k := ParseKey(part)
		if k.ID != "" {
			s.ID++
		}
		s.Class += len(k.Classes)
		if k.Tag != "" && k.Tag != "*" {
			s.Element++
		}
	}
	return s
}

func compareSpecificity(a, b Specificity) int {
	if a.ID != b.ID {
		return a.ID - b.ID
	}
	if a.Class != b.Class {
		return a.Class - b.Class
	}
	return a.Element - b.Element
}

// defaultUserAgentStyles returns the built-in reading stylesheet
func defaultUserAgentStyles() *css.Stylesheet {
	return css.MustParse(`
		h1 { font-size: 2em; font-weight: bold; text-align: center; margin: 0.67em 0; hyphens: none; text-indent: 0 }
		h2 { font-size: 1.5em; font-weight: bold; margin: 0.75em 0; hyphens: none; text-indent: 0 }
		h3 { font-size: 1.17em; font-weight: bold; margin: 0.83em 0; text-indent: 0 }
		h4, h5, h6 { font-weight: bold; margin: 1.12em 0; text-indent: 0 }
		blockquote { margin: 0.5em 2em; }
		pre { font-family: monospace; text-align: left; hyphens: none }
		code, kbd, samp, tt { font-family: monospace; }
		a { text-decoration: underline; color: #0000EE; }
		b, strong, th { font-weight: bold; }
		i, em, cite, var, dfn { font-style: italic; }
		u, ins { text-decoration: underline; }
		sup { vertical-align: super; font-size: smaller; }
		sub { vertical-align: sub; font-size: smaller; }
		li { margin-left: 1.5em; }
		center { text-align: center; }
	`)
}
