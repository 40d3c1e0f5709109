package parser

import (
	"strings"

	"github.com/npillmayer/stylist/ast"
)

// --- Declarations ----------------------------------------------------------

func isKeyStop(c byte) bool {
	return isSpace(c) || isQuote(c) || strings.IndexByte(":;{}", c) >= 0
}

// attribute recognizes a declaration
//
//     key: value
//
// For dangling declarations the terminating ';' is required and consumed.
func (p *parser) attribute(dangling bool) (ast.StyleAttribute, *ParseError) {
	p.trim()
	if p.peek() == '@' {
		return ast.StyleAttribute{}, p.expected("property name").within("attribute")
	}
	start := p.pos
	for p.pos < len(p.src) && !isKeyStop(p.src[p.pos]) && !p.hasPrefix("/*") {
		p.pos++
	}
	if p.pos == start {
		return ast.StyleAttribute{}, p.expected("property name").within("attribute")
	}
	key := p.src[start:p.pos]
	p.trim()
	if err := p.expect(':'); err != nil {
		return ast.StyleAttribute{}, err.within("attribute")
	}
	p.trim()
	value, err := p.fragments(valueStops, "property value")
	if err != nil {
		return ast.StyleAttribute{}, err.within("attribute")
	}
	if dangling {
		p.trim()
		if err := p.expect(';'); err != nil {
			return ast.StyleAttribute{}, err.within("attribute")
		}
	}
	return ast.NewAttribute(key, value...), nil
}

// attributes recognizes the declarations inside a block, separated by ';'.
// The final ';' is optional, and so are declarations altogether.
func (p *parser) attributes() ([]ast.StyleAttribute, *ParseError) {
	var attrs []ast.StyleAttribute
	for {
		p.trim()
		switch p.peek() {
		case 0, '}':
			return attrs, nil
		case ';':
			p.pos++
			continue
		}
		a, err := p.attribute(false)
		if err != nil {
			return nil, err.within("attributes")
		}
		attrs = append(attrs, a)
		p.trim()
		switch p.peek() {
		case ';':
			p.pos++
		case '}':
			return attrs, nil
		default:
			return nil, p.expected(`";" or "}"`).within("attributes")
		}
	}
}

// danglingBlock recognizes one or more ';'-terminated declarations outside
// of any block, and collects them into a Block without selectors.
func (p *parser) danglingBlock() (ast.ScopeContent, *ParseError) {
	var attrs []ast.StyleAttribute
	for {
		save := p.pos
		a, err := p.attribute(true)
		if err != nil {
			if len(attrs) == 0 {
				return nil, err.within("dangling block")
			}
			p.pos = save
			break
		}
		attrs = append(attrs, a)
	}
	return ast.NewBlock(nil, attrs), nil
}

// --- Blocks ----------------------------------------------------------------

// selector recognizes a single entry of a selector list.
func (p *parser) selector() (ast.Selector, *ParseError) {
	p.trim()
	switch p.peek() {
	case '@', '{', '}', ',', ';', 0:
		return ast.Selector{}, p.expected("selector").within("selector")
	}
	frags, err := p.fragments(selectorStops, "selector")
	if err != nil {
		return ast.Selector{}, err.within("selector")
	}
	return ast.NewSelector(frags...), nil
}

// condition recognizes a comma-separated selector list.
func (p *parser) condition() ([]ast.Selector, *ParseError) {
	var sels []ast.Selector
	for {
		sel, err := p.selector()
		if err != nil {
			if len(sels) > 0 {
				err.committed = true // a ',' makes it a selector list
			}
			return nil, err.within("condition")
		}
		sels = append(sels, sel)
		p.trim()
		if p.peek() != ',' {
			return sels, nil
		}
		p.pos++
	}
}

// block recognizes
//
//     selector, … { key: value; … }
//
func (p *parser) block() (ast.ScopeContent, *ParseError) {
	cond, err := p.condition()
	if err != nil {
		return nil, err.within("block")
	}
	p.trim()
	if err := p.expect('{'); err != nil {
		return nil, err.within("block")
	}
	attrs, err := p.attributes()
	if err != nil {
		return nil, err.within("block")
	}
	p.trim()
	if err := p.expect('}'); err != nil {
		return nil, err.within("block")
	}
	return ast.NewBlock(cond, attrs), nil
}

// --- At-rules --------------------------------------------------------------

// Structural at-rules have a nested scope as their body.
var structuralAtRules = []string{"@media", "@supports"}

// atKeyword returns the at-keyword a string starts with, e.g. "@media".
func atKeyword(s string) string {
	if !strings.HasPrefix(s, "@") {
		return ""
	}
	end := 1
	for end < len(s) && !isSpace(s[end]) && strings.IndexByte("({;}\"'/", s[end]) < 0 {
		end++
	}
	return s[:end]
}

func isStructural(keyword string) bool {
	for _, k := range structuralAtRules {
		if keyword == k {
			return true
		}
	}
	return false
}

// atRule recognizes @media and @supports rules:
//
//     @media prelude { scope }
//
// The at-keyword becomes a literal fragment of its own, followed by the
// fragments of the prelude.
func (p *parser) atRule() (ast.ScopeContent, *ParseError) {
	p.trim()
	keyword := atKeyword(p.src[p.pos:])
	if !isStructural(keyword) {
		return nil, p.expected(`"@media" or "@supports"`).within("at-rule")
	}
	p.pos += len(keyword)
	if c := p.peek(); !isSpace(c) && c != '(' && c != '$' && !p.hasPrefix("/*") {
		return nil, p.expected("whitespace after " + keyword).within("at-rule")
	}
	p.trim()
	prelude, err := p.fragments(preludeStops, "at-rule prelude")
	if err != nil {
		return nil, err.within("at-rule")
	}
	cond := make([]ast.StringFragment, 0, len(prelude)+1)
	cond = append(cond, ast.Literal(keyword+" "))
	cond = append(cond, prelude...)
	p.trim()
	if err := p.expect('{'); err != nil {
		return nil, err.within("at-rule")
	}
	scope, err := p.scope(true)
	if err != nil {
		return nil, err.within("at-rule")
	}
	if err := p.expect('}'); err != nil {
		return nil, err.within("at-rule")
	}
	content := make([]ast.RuleContent, len(scope))
	for i, c := range scope {
		content[i] = c.(ast.RuleContent)
	}
	return ast.NewRule(cond, content), nil
}

// opaqueRule recognizes any other at-rule which has a block:
//
//     @name prelude { … }
//
// Name and prelude are kept as a single literal fragment, without comments.
// The body is kept as raw text (see opaqueContent). @media and @supports are never accepted
// here, as they have to be parsed structurally.
func (p *parser) opaqueRule() (ast.ScopeContent, *ParseError) {
	p.trim()
	if p.peek() != '@' {
		return nil, p.expected("at-rule").within("opaque at-rule")
	}
	start := p.pos
	var sb strings.Builder
scan:
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '{':
			break scan
		case c == ';' || c == '}':
			return nil, p.expected(`"{"`).within("opaque at-rule")
		case isQuote(c):
			s, err := p.quoted()
			if err != nil {
				return nil, err.within("opaque at-rule")
			}
			sb.WriteString(s)
		case c == '/' && p.hasPrefix("/*"):
			if _, err := p.comment(); err != nil {
				return nil, err.within("opaque at-rule")
			}
			sb.WriteByte(' ')
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	name := strings.TrimSpace(sb.String())
	if kw := atKeyword(name); isStructural(kw) {
		return nil, p.failAt(start, "malformed %s rule, expected prelude and block", kw).within("opaque at-rule")
	}
	if err := p.expect('{'); err != nil {
		return nil, err.within("opaque at-rule")
	}
	content, err := p.opaqueContent()
	if err != nil {
		return nil, err.within("opaque at-rule")
	}
	if err := p.expect('}'); err != nil {
		return nil, err.within("opaque at-rule")
	}
	return ast.NewRule([]ast.StringFragment{ast.Literal(name)}, content), nil
}

// opaqueContent collects text up to the closing brace of the enclosing
// group. Runs of text become trimmed Raw pieces. Nested groups are recursed
// into only to keep braces balanced: their braces are emitted as Raw pieces
// "{" and "}" around the group's content. Braces inside quoted strings or
// comments do not count.
func (p *parser) opaqueContent() ([]ast.RuleContent, *ParseError) {
	var content []ast.RuleContent
	textStart := p.pos
	flush := func() {
		if text := strings.TrimSpace(p.src[textStart:p.pos]); text != "" {
			content = append(content, ast.Raw(text))
		}
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '}':
			flush()
			return content, nil
		case c == '{':
			flush()
			p.pos++
			inner, err := p.opaqueContent()
			if err != nil {
				return nil, err
			}
			if err := p.expect('}'); err != nil {
				return nil, err.within("opaque content")
			}
			content = append(content, ast.Raw("{"))
			content = append(content, inner...)
			content = append(content, ast.Raw("}"))
			textStart = p.pos
		case isQuote(c):
			if _, err := p.quoted(); err != nil {
				return nil, err.within("opaque content")
			}
		case c == '/' && p.hasPrefix("/*"):
			if _, err := p.comment(); err != nil {
				return nil, err.within("opaque content")
			}
		default:
			p.pos++
		}
	}
	flush()
	return content, nil
}

// --- Scopes ----------------------------------------------------------------

// alternative is a candidate grammar rule for an item of a scope.
type alternative struct {
	name  string
	parse func(*parser) (ast.ScopeContent, *ParseError)
}

// The alternatives for items of a scope, in order of priority. Filled in by
// init, as at-rules recurse into scopes.
var scopeAlternatives []alternative

func init() {
	scopeAlternatives = []alternative{
		{"dangling block", (*parser).danglingBlock},
		{"block", (*parser).block},
		{"at-rule", (*parser).atRule},
		{"opaque at-rule", (*parser).opaqueRule},
	}
}

// scopeContent tries every alternative at the current position. The first
// one to succeed wins. If none does, the error which got furthest is returned.
func (p *parser) scopeContent() (ast.ScopeContent, *ParseError) {
	start := p.pos
	var failure *ParseError
	for _, alt := range scopeAlternatives {
		p.pos = start
		c, err := alt.parse(p)
		if err == nil {
			tracer().Debugf("%s at %d..%d", alt.name, start, p.pos)
			return c, nil
		}
		failure = deeper(failure, err)
	}
	p.pos = start
	return nil, failure
}

// scope recognizes a possibly empty sequence of blocks, dangling
// declarations and at-rules. A nested scope ends before a closing brace,
// the top level scope at the end of input.
func (p *parser) scope(nested bool) ([]ast.ScopeContent, *ParseError) {
	var contents []ast.ScopeContent
	for {
		p.trim()
		if p.eof() {
			return contents, nil
		}
		if p.peek() == '}' {
			if nested {
				return contents, nil
			}
			return nil, p.failAt(p.pos, `unexpected "}"`).within("scope")
		}
		c, err := p.scopeContent()
		if err != nil {
			return nil, err.within("scope")
		}
		contents = append(contents, c)
	}
}
