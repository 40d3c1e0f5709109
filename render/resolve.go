package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/stylist/ast"
)

// ErrUnboundInterpolation is reported for placeholders without a binding.
var ErrUnboundInterpolation = errors.New("unbound interpolation")

// Resolve returns a copy of sheet with every placeholder replaced by the
// literal bound to its name. Adjacent literals are merged. A placeholder
// without a binding yields an error wrapping ErrUnboundInterpolation.
//
// Sheets without placeholders are returned as they are.
func Resolve(sheet ast.Sheet, bindings map[string]string) (ast.Sheet, error) {
	if !hasPlaceholders(sheet) {
		return sheet, nil
	}
	r := resolver{bindings: bindings}
	contents := sheet.Contents()
	for i, c := range contents {
		resolved, err := r.scopeContent(c)
		if err != nil {
			return ast.Sheet{}, err
		}
		contents[i] = resolved
	}
	return ast.NewSheet(contents...), nil
}

type resolver struct {
	bindings map[string]string
}

func (r resolver) fragments(frags []ast.StringFragment) ([]ast.StringFragment, error) {
	var out []ast.StringFragment
	var sb strings.Builder
	for _, f := range frags {
		var text, name string
		switch m := f.Match(); m {
		case m.Literal(&text):
			sb.WriteString(text)
		case m.Interpolation(&name):
			value, ok := r.bindings[name]
			if !ok {
				return nil, fmt.Errorf("%w: ${%s}", ErrUnboundInterpolation, name)
			}
			sb.WriteString(value)
		}
	}
	if sb.Len() > 0 {
		out = append(out, ast.Literal(sb.String()))
	}
	return out, nil
}

func (r resolver) block(b ast.Block) (ast.Block, error) {
	cond := b.Condition()
	for i, sel := range cond {
		frags, err := r.fragments(sel.Fragments())
		if err != nil {
			return ast.Block{}, err
		}
		cond[i] = ast.NewSelector(frags...)
	}
	attrs := b.Attributes()
	for i, a := range attrs {
		value, err := r.fragments(a.Value())
		if err != nil {
			return ast.Block{}, err
		}
		attrs[i] = ast.NewAttribute(a.Key(), value...)
	}
	return ast.NewBlock(cond, attrs), nil
}

// rule resolves an at-rule. A leading at-keyword fragment stays separate
// from the prelude, as it does in freshly parsed rules.
func (r resolver) rule(rule ast.Rule) (ast.Rule, error) {
	cond := rule.Condition()
	keep := 0
	if rule.Name() != "" {
		keep = 1
	}
	if len(cond) > keep {
		prelude, err := r.fragments(cond[keep:])
		if err != nil {
			return ast.Rule{}, err
		}
		cond = append(cond[:keep], prelude...)
	}
	content := rule.Content()
	for i, c := range content {
		switch x := c.(type) {
		case ast.Block:
			b, err := r.block(x)
			if err != nil {
				return ast.Rule{}, err
			}
			content[i] = b
		case ast.Rule:
			nested, err := r.rule(x)
			if err != nil {
				return ast.Rule{}, err
			}
			content[i] = nested
		}
	}
	return ast.NewRule(cond, content), nil
}

func (r resolver) scopeContent(c ast.ScopeContent) (ast.ScopeContent, error) {
	switch x := c.(type) {
	case ast.Block:
		return r.block(x)
	case ast.Rule:
		return r.rule(x)
	}
	panic(fmt.Sprintf("render: unknown scope content %T", c))
}

// hasPlaceholders checks if a sheet contains any interpolation fragments.
func hasPlaceholders(sheet ast.Sheet) bool {
	for _, c := range sheet.Contents() {
		if contentHasPlaceholders(c) {
			return true
		}
	}
	return false
}

func contentHasPlaceholders(c interface{}) bool {
	switch x := c.(type) {
	case ast.Block:
		for _, sel := range x.Condition() {
			if ast.HasInterpolation(sel.Fragments()) {
				return true
			}
		}
		for _, a := range x.Attributes() {
			if ast.HasInterpolation(a.Value()) {
				return true
			}
		}
	case ast.Rule:
		if ast.HasInterpolation(x.Condition()) {
			return true
		}
		for _, nested := range x.Content() {
			if contentHasPlaceholders(nested) {
				return true
			}
		}
	}
	return false
}
