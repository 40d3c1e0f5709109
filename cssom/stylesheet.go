package cssom

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// Clients inspecting rendered CSS will have to provide a concrete
// implementation of this interface (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the top-level rules of a stylesheet
}

// Rule is the type stylesheets consists of.
//
// For at-rules, Selector returns the at-keyword followed by the prelude,
// e.g. "@media print". Rules nested into at-rules are available through
// Nested.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string        // the prelude / selectors of the rule
	Properties() []string    // property keys, e.g. "margin-top"
	Value(string) Property   // property value for key, e.g. "15px"
	IsImportant(string) bool // is property key marked as important?
	Nested() []Rule          // rules inside an at-rule
}

// Declarations returns the properties of a rule as key-value pairs, in
// order of appearance.
func Declarations(r Rule) []KeyValue {
	keys := r.Properties()
	kv := make([]KeyValue, len(keys))
	for i, k := range keys {
		kv[i] = KeyValue{Key: k, Value: r.Value(k)}
	}
	return kv
}

// Walk calls f for every rule of a stylesheet, depth first, including rules
// nested into at-rules. Walking stops early if f returns false.
func Walk(sheet StyleSheet, f func(Rule) bool) {
	var walk func([]Rule) bool
	walk = func(rules []Rule) bool {
		for _, r := range rules {
			if !f(r) || !walk(r.Nested()) {
				return false
			}
		}
		return true
	}
	walk(sheet.Rules())
}

// FindRule returns the first rule of sheet, in depth-first order, with the
// given selector.
func FindRule(sheet StyleSheet, selector string) (Rule, bool) {
	var found Rule
	Walk(sheet, func(r Rule) bool {
		if r.Selector() == selector {
			found = r
			return false
		}
		return true
	})
	if found == nil {
		tracer().Debugf("no rule for selector %q", selector)
	}
	return found, found != nil
}
