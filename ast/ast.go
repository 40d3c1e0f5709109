package ast

import (
	"strings"
)

// ScopeContent is an item of a scope, i.e. of the top level of a sheet.
// It is either a Block or a Rule.
type ScopeContent interface {
	isScopeContent()
	String() string
}

// RuleContent is an item of the body of an at-rule.
// It is either a Block, a Rule or a Raw piece of opaque text.
type RuleContent interface {
	isRuleContent()
	String() string
}

func (Block) isScopeContent() {}
func (Rule) isScopeContent()  {}
func (Block) isRuleContent()  {}
func (Rule) isRuleContent()   {}
func (Raw) isRuleContent()    {}

// --- Sheet -----------------------------------------------------------------

// Sheet is a parsed style sheet, an ordered sequence of blocks and at-rules.
// Order is significant: it is the cascade order.
type Sheet struct {
	contents []ScopeContent
}

// NewSheet creates a sheet from a sequence of scope contents.
func NewSheet(contents ...ScopeContent) Sheet {
	if len(contents) == 0 {
		return Sheet{}
	}
	c := make([]ScopeContent, len(contents))
	copy(c, contents)
	return Sheet{contents: c}
}

// Len returns the number of top-level items.
func (s Sheet) Len() int {
	return len(s.contents)
}

// IsEmpty is a predicate: does s contain no items at all?
func (s Sheet) IsEmpty() bool {
	return len(s.contents) == 0
}

// At returns the i-th top-level item.
func (s Sheet) At(i int) ScopeContent {
	return s.contents[i]
}

// Contents returns a copy of the top-level items.
func (s Sheet) Contents() []ScopeContent {
	if len(s.contents) == 0 {
		return nil
	}
	c := make([]ScopeContent, len(s.contents))
	copy(c, s.contents)
	return c
}

// Equal compares two sheets structurally.
func (s Sheet) Equal(other Sheet) bool {
	if len(s.contents) != len(other.contents) {
		return false
	}
	for i := range s.contents {
		if !equalNodes(s.contents[i], other.contents[i]) {
			return false
		}
	}
	return true
}

// String returns s in canonical source form. Parsing the result yields a
// sheet equal to s.
func (s Sheet) String() string {
	items := make([]string, len(s.contents))
	for i, c := range s.contents {
		items[i] = c.String()
	}
	return strings.Join(items, "\n")
}

// --- Block -----------------------------------------------------------------

// Block is a qualified rule: a selector list together with a list of
// declarations. A block without selectors holds dangling declarations,
// which apply to the scope the sheet is mounted to.
type Block struct {
	condition  []Selector
	attributes []StyleAttribute
}

// NewBlock creates a block. An empty condition creates a dangling block.
func NewBlock(condition []Selector, attributes []StyleAttribute) Block {
	b := Block{}
	if len(condition) > 0 {
		b.condition = make([]Selector, len(condition))
		copy(b.condition, condition)
	}
	if len(attributes) > 0 {
		b.attributes = make([]StyleAttribute, len(attributes))
		copy(b.attributes, attributes)
	}
	return b
}

// Condition returns a copy of the selector list.
func (b Block) Condition() []Selector {
	if len(b.condition) == 0 {
		return nil
	}
	c := make([]Selector, len(b.condition))
	copy(c, b.condition)
	return c
}

// Attributes returns a copy of the declarations.
func (b Block) Attributes() []StyleAttribute {
	if len(b.attributes) == 0 {
		return nil
	}
	a := make([]StyleAttribute, len(b.attributes))
	copy(a, b.attributes)
	return a
}

// IsDangling is a predicate: has b no selector?
func (b Block) IsDangling() bool {
	return len(b.condition) == 0
}

// Equal compares two blocks structurally.
func (b Block) Equal(other Block) bool {
	if len(b.condition) != len(other.condition) || len(b.attributes) != len(other.attributes) {
		return false
	}
	for i := range b.condition {
		if !b.condition[i].Equal(other.condition[i]) {
			return false
		}
	}
	for i := range b.attributes {
		if !b.attributes[i].Equal(other.attributes[i]) {
			return false
		}
	}
	return true
}

func (b Block) String() string {
	var sb strings.Builder
	if b.IsDangling() {
		for i, a := range b.attributes {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(a.String())
		}
		return sb.String()
	}
	for i, sel := range b.condition {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sel.String())
	}
	if len(b.attributes) == 0 {
		sb.WriteString(" {}")
		return sb.String()
	}
	sb.WriteString(" {")
	for _, a := range b.attributes {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// --- Rule ------------------------------------------------------------------

// Rule is an at-rule, e.g. a media query. Its condition is the prelude,
// including the at-keyword.
type Rule struct {
	condition []StringFragment
	content   []RuleContent
}

// NewRule creates an at-rule.
func NewRule(condition []StringFragment, content []RuleContent) Rule {
	r := Rule{condition: cloneFragments(condition)}
	if len(content) > 0 {
		r.content = make([]RuleContent, len(content))
		copy(r.content, content)
	}
	return r
}

// Condition returns a copy of the prelude fragments.
func (r Rule) Condition() []StringFragment {
	return cloneFragments(r.condition)
}

// Content returns a copy of the rule body.
func (r Rule) Content() []RuleContent {
	if len(r.content) == 0 {
		return nil
	}
	c := make([]RuleContent, len(r.content))
	copy(c, r.content)
	return c
}

// Name returns the at-keyword of r, e.g. "@media", if the first fragment of
// the condition is literal text.
func (r Rule) Name() string {
	if len(r.condition) == 0 || r.condition[0].IsInterpolation() {
		return ""
	}
	name := r.condition[0].text
	if i := strings.IndexAny(name, " \t\r\n\f{"); i >= 0 {
		name = name[:i]
	}
	return name
}

// Equal compares two rules structurally.
func (r Rule) Equal(other Rule) bool {
	if !equalFragments(r.condition, other.condition) || len(r.content) != len(other.content) {
		return false
	}
	for i := range r.content {
		if !equalNodes(r.content[i], other.content[i]) {
			return false
		}
	}
	return true
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(Fragments(r.condition))
	if len(r.content) == 0 {
		sb.WriteString(" {}")
		return sb.String()
	}
	sb.WriteString(" {")
	for _, c := range r.content {
		sb.WriteByte(' ')
		sb.WriteString(c.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// --- Raw -------------------------------------------------------------------

// Raw is a piece of unparsed text in the body of an opaque at-rule. Braces of
// nested groups appear as Raw pieces of their own, in order.
type Raw string

func (r Raw) String() string {
	return string(r)
}

// --- Selector --------------------------------------------------------------

// Selector is a single entry of a selector list.
type Selector struct {
	fragments []StringFragment
}

// NewSelector creates a selector from a sequence of fragments.
func NewSelector(fragments ...StringFragment) Selector {
	return Selector{fragments: cloneFragments(fragments)}
}

// Fragments returns a copy of the fragments of sel.
func (sel Selector) Fragments() []StringFragment {
	return cloneFragments(sel.fragments)
}

// Equal compares two selectors structurally.
func (sel Selector) Equal(other Selector) bool {
	return equalFragments(sel.fragments, other.fragments)
}

func (sel Selector) String() string {
	return Fragments(sel.fragments)
}

// --- StyleAttribute --------------------------------------------------------

// StyleAttribute is a declaration, i.e. a key/value pair like
//
//     color: red
type StyleAttribute struct {
	key   string
	value []StringFragment
}

// NewAttribute creates a declaration.
func NewAttribute(key string, value ...StringFragment) StyleAttribute {
	return StyleAttribute{key: key, value: cloneFragments(value)}
}

// Key returns the property name.
func (a StyleAttribute) Key() string {
	return a.key
}

// Value returns a copy of the value fragments.
func (a StyleAttribute) Value() []StringFragment {
	return cloneFragments(a.value)
}

// Equal compares two declarations structurally.
func (a StyleAttribute) Equal(other StyleAttribute) bool {
	return a.key == other.key && equalFragments(a.value, other.value)
}

func (a StyleAttribute) String() string {
	return a.key + ": " + Fragments(a.value) + ";"
}

// --- Structural equality ---------------------------------------------------

// Equal compares two nodes of the tree structurally. Nodes of different
// types are never equal.
func Equal(a, b interface{}) bool {
	return equalNodes(a, b)
}

func equalNodes(a, b interface{}) bool {
	switch x := a.(type) {
	case Sheet:
		y, ok := b.(Sheet)
		return ok && x.Equal(y)
	case Block:
		y, ok := b.(Block)
		return ok && x.Equal(y)
	case Rule:
		y, ok := b.(Rule)
		return ok && x.Equal(y)
	case Raw:
		y, ok := b.(Raw)
		return ok && x == y
	case Selector:
		y, ok := b.(Selector)
		return ok && x.Equal(y)
	case StyleAttribute:
		y, ok := b.(StyleAttribute)
		return ok && x.Equal(y)
	case StringFragment:
		y, ok := b.(StringFragment)
		return ok && x == y
	}
	return false
}
