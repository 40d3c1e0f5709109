package ast

import "strings"

// FragmentKind tells literal text from interpolation placeholders.
type FragmentKind uint8

const (
	LiteralKind FragmentKind = iota
	InterpolationKind
)

func (k FragmentKind) String() string {
	switch k {
	case LiteralKind:
		return "Literal"
	case InterpolationKind:
		return "Interpolation"
	}
	return "<unknown>"
}

// StringFragment is a piece of interpolatable text: either literal text, copied
// verbatim from the source, or the name of a placeholder written as
//
//     ${name}
//
// Placeholders are resolved by a downstream binding step, never by the parser.
// StringFragment is comparable with ==.
type StringFragment struct {
	kind FragmentKind
	text string
}

// Literal creates a literal text fragment.
func Literal(text string) StringFragment {
	return StringFragment{kind: LiteralKind, text: text}
}

// Interpolation creates a placeholder fragment referencing name.
func Interpolation(name string) StringFragment {
	return StringFragment{kind: InterpolationKind, text: name}
}

// Kind returns the kind of the fragment.
func (f StringFragment) Kind() FragmentKind {
	return f.kind
}

// Text returns the literal text or, for placeholders, the placeholder name.
func (f StringFragment) Text() string {
	return f.text
}

// IsInterpolation is a predicate: is f a placeholder?
func (f StringFragment) IsInterpolation() bool {
	return f.kind == InterpolationKind
}

// String returns f in source form, i.e. placeholders are written as ${name}.
func (f StringFragment) String() string {
	if f.kind == InterpolationKind {
		return "${" + f.text + "}"
	}
	return f.text
}

// --- Matching --------------------------------------------------------------

// Match returns a matcher for f. See the package documentation for usage.
func (f StringFragment) Match() *FragmentMatcher {
	return &FragmentMatcher{f: f}
}

// FragmentMatcher pattern-matches a StringFragment. Each method returns the
// matcher itself if the fragment is of the requested kind, nil otherwise.
type FragmentMatcher struct {
	f StringFragment
}

// Literal matches literal text and stores it in s.
func (m *FragmentMatcher) Literal(s *string) *FragmentMatcher {
	if m.f.kind == LiteralKind {
		*s = m.f.text
		return m
	}
	return nil
}

// Interpolation matches a placeholder and stores its name in name.
func (m *FragmentMatcher) Interpolation(name *string) *FragmentMatcher {
	if m.f.kind == InterpolationKind {
		*name = m.f.text
		return m
	}
	return nil
}

// --- Fragment sequences ----------------------------------------------------

// Fragments is a helper to write a sequence of fragments in source form.
func Fragments(frags []StringFragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.String())
	}
	return b.String()
}

// HasInterpolation is a predicate: does frags contain a placeholder?
func HasInterpolation(frags []StringFragment) bool {
	for _, f := range frags {
		if f.kind == InterpolationKind {
			return true
		}
	}
	return false
}

func equalFragments(a, b []StringFragment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneFragments(frags []StringFragment) []StringFragment {
	if len(frags) == 0 {
		return nil
	}
	c := make([]StringFragment, len(frags))
	copy(c, frags)
	return c
}
