// Package stylesheet inspects CSS text with the tdewolff CSS parser.
package stylesheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Summary counts the grammar units found in a stylesheet
type Summary struct {
	Rulesets     int      `json:"rulesets"`     // Selector blocks: .a{...}
	Declarations int      `json:"declarations"` // property: value pairs
	AtRules      int      `json:"at_rules"`     // @media, @font-face, @import ...
	Invalid      int      `json:"invalid"`      // Recoverable grammar errors
	Selectors    []string `json:"-"`            // Selector text in source order
}

// Inspect parses CSS content and returns its grammar summary.
// Only lexer failures are returned as errors; malformed rules that the parser
// can recover from are counted in Summary.Invalid.
func Inspect(content string) (Summary, error) {
	var summary Summary

	p := css.NewParser(parse.NewInputString(content), false)
	lastErrOffset := -1

	for {
		gt, _, _ := p.Next()

		switch gt {
		case css.ErrorGrammar:
			if p.HasParseError() {
				// The parser skips past the offending tokens; stop if it can't
				if p.Offset() == lastErrOffset {
					return summary, nil
				}
				lastErrOffset = p.Offset()
				summary.Invalid++
				continue
			}
			err := p.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return summary, nil
			}
			return summary, fmt.Errorf("parse stylesheet: %w", err)

		case css.QualifiedRuleGrammar:
			// Comma-separated selector preceding the block: ".a, .b {"
			summary.Selectors = append(summary.Selectors, selectorText(p.Values()))

		case css.BeginRulesetGrammar:
			summary.Rulesets++
			summary.Selectors = append(summary.Selectors, selectorText(p.Values()))

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			summary.Declarations++

		case css.AtRuleGrammar, css.BeginAtRuleGrammar:
			summary.AtRules++
		}
	}
}

// InspectFile reads and inspects a single stylesheet
func InspectFile(path string) (Summary, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("read file: %w", err)
	}
	return Inspect(string(content))
}

// selectorText joins the selector tokens of a rule
func selectorText(values []css.Token) string {
	var b strings.Builder
	for _, v := range values {
		b.Write(v.Data)
	}
	return strings.TrimSpace(b.String())
}

// HasSelector reports whether any ruleset selector equals sel, ignoring surrounding whitespace
func (s Summary) HasSelector(sel string) bool {
	sel = strings.TrimSpace(sel)
	for _, candidate := range s.Selectors {
		if candidate == sel {
			return true
		}
	}
	return false
}
