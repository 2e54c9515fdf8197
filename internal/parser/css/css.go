package css

import (
	"errors"
	"io"
	"strings"
)

// Parser parses the subset of CSS used for reflowable text: flat rules
// with simple selectors. At-rules are skipped.
type Parser struct{}

// Rule represents a CSS rule
type Rule struct {
	Selectors    []string
	Declarations []*Declaration
}

// Declaration represents a CSS declaration (property-value pair)
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []*Rule
}

// NewParser creates a new CSS parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses CSS from a string
func (p *Parser) ParseString(content string) (*Stylesheet, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses CSS from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Stylesheet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.parseCSS(string(content)), nil
}

// MustParse parses a stylesheet known to be valid, such as a built-in one
func MustParse(content string) *Stylesheet {
	return NewParser().parseCSS(content)
}

func (p *Parser) parseCSS(content string) *Stylesheet {
	stylesheet := &Stylesheet{}

	for _, ruleStr := range splitRules(removeComments(content)) {
		if strings.HasPrefix(strings.TrimSpace(ruleStr), "@") {
			continue
		}
		rule, err := parseRule(ruleStr)
		if err != nil {
			continue
		}
		stylesheet.Rules = append(stylesheet.Rules, rule)
	}

	return stylesheet
}

// Append adds the rules of other after the rules of s
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Rules = append(s.Rules, other.Rules...)
}

func parseRule(ruleStr string) (*Rule, error) {
	selectorStr, declarationsStr, ok := strings.Cut(ruleStr, "{")
	if !ok {
		return nil, errors.New("invalid rule format")
	}
	declarationsStr = strings.TrimSuffix(strings.TrimSpace(declarationsStr), "}")

	selectors := parseSelectors(selectorStr)
	if len(selectors) == 0 {
		return nil, errors.New("no selectors found")
	}

	return &Rule{
		Selectors:    selectors,
		Declarations: ParseDeclarations(declarationsStr),
	}, nil
}

func parseSelectors(selectorStr string) []string {
	selectors := strings.Split(selectorStr, ",")
	result := make([]string, 0, len(selectors))

	for _, selector := range selectors {
		selector = strings.ToLower(strings.Join(strings.Fields(selector), " "))
		if selector != "" {
			result = append(result, selector)
		}
	}

	return result
}

// ParseDeclarations parses a declaration block body, as found in a rule
// or in an inline style attribute
func ParseDeclarations(declarationsStr string) []*Declaration {
	declarationStrings := strings.Split(declarationsStr, ";")
	result := make([]*Declaration, 0, len(declarationStrings))

	for _, declStr := range declarationStrings {
		property, value, ok := strings.Cut(declStr, ":")
		if !ok {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)
		if property == "" || value == "" {
			continue
		}

		important := false
		if v, found := strings.CutSuffix(value, "!important"); found {
			important = true
			value = strings.TrimSpace(v)
		}

		result = append(result, &Declaration{
			Property:  property,
			Value:     value,
			Important: important,
		})
	}

	return result
}

func removeComments(content string) string {
	var result strings.Builder

	for {
		start := strings.Index(content, "/*")
		if start < 0 {
			result.WriteString(content)
			break
		}
		result.WriteString(content[:start])
		end := strings.Index(content[start+2:], "*/")
		if end < 0 {
			break
		}
		content = content[start+2+end+2:]
	}

	return result.String()
}

// splitRules splits CSS content into top level rules. Nested blocks
// (at-rules) stay inside their enclosing rule.
func splitRules(content string) []string {
	var rules []string
	var currentRule strings.Builder
	braceCount := 0

	for i := 0; i < len(content); i++ {
		char := content[i]

		switch char {
		case '{':
			braceCount++
		case '}':
			braceCount--
			if braceCount <= 0 {
				braceCount = 0
				currentRule.WriteByte(char)
				rules = append(rules, currentRule.String())
				currentRule.Reset()
				continue
			}
		}

		if braceCount > 0 || !isWhitespace(char) || currentRule.Len() > 0 {
			currentRule.WriteByte(char)
		}
	}

	return rules
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}
