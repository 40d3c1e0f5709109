/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/stylist/cssom"
	"golang.org/x/net/html"
)

// tracer traces with key 'stylist.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("stylist.cssom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// Parse parses plain CSS, e.g. the output of package render, into a
// stylesheet.
func Parse(text string) (*CSSStyles, error) {
	c, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("douceuradapter: %w", err)
	}
	return Wrap(c), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
		return
	}
	tracer().Errorf("cannot append rules from stylesheet of type %T", other)
}

// Rules returns all the top-level rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	return wrapRules(sheet.css.Rules)
}

func (sheet *CSSStyles) String() string {
	return sheet.css.String()
}

var _ cssom.StyleSheet = &CSSStyles{}

func wrapRules(rules []*css.Rule) []cssom.Rule {
	if len(rules) == 0 {
		return nil
	}
	wrapped := make([]cssom.Rule, len(rules))
	for i := range rules {
		wrapped[i] = Rule(*rules[i])
	}
	return wrapped
}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule. For at-rules the
// at-keyword is included, e.g. "@media print".
func (r Rule) Selector() string {
	if r.Kind == css.AtRule {
		return strings.TrimSpace(r.Name + " " + r.Prelude)
	}
	return r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	decl := r.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px"
func (r Rule) Value(key string) cssom.Property {
	for _, d := range r.Declarations {
		if d.Property == key {
			return cssom.Property(d.Value)
		}
	}
	return cssom.NullStyle
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

// Nested returns the rules inside an at-rule like @media.
func (r Rule) Nested() []cssom.Rule {
	return wrapRules(r.Rules)
}

var _ cssom.Rule = &Rule{}

var styleElements = cascadia.MustCompile("style")

// ExtractStyleElements searches an HTML parse tree for embedded <style>s.
// It returns the content of style-elements as style sheets, in document
// order. Empty style-elements are skipped.
func ExtractStyleElements(htmldoc *html.Node) ([]*CSSStyles, error) {
	if htmldoc == nil {
		return nil, nil
	}
	var sheets []*CSSStyles
	for _, el := range styleElements.MatchAll(htmldoc) {
		text := textContent(el)
		if strings.TrimSpace(text) == "" {
			continue
		}
		c, err := Parse(text)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, c)
	}
	tracer().Debugf("extracted %d style sheets from HTML", len(sheets))
	return sheets, nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			sb.WriteString(ch.Data)
		}
	}
	return sb.String()
}
