package formsearch

import "strings"

// FormMatcher decides whether a <form> element is the search form.
type FormMatcher interface {
	MatchForm(form Element) bool
}

// FieldMatcher decides whether an <input> element is the query field.
type FieldMatcher interface {
	MatchField(input Element) bool
}

// FormMatcherFunc adapts a plain function to FormMatcher.
type FormMatcherFunc func(form Element) bool

// MatchForm calls f(form).
func (f FormMatcherFunc) MatchForm(form Element) bool { return f(form) }

// FieldMatcherFunc adapts a plain function to FieldMatcher.
type FieldMatcherFunc func(input Element) bool

// MatchField calls f(input).
func (f FieldMatcherFunc) MatchField(input Element) bool { return f(input) }

// ExactFormMatcher accepts a form whose action attribute equals Action byte
// for byte and whose method attribute equals Method ignoring case. Both
// attributes must be present.
type ExactFormMatcher struct {
	Action string
	Method string
}

// MatchForm implements FormMatcher.
func (m ExactFormMatcher) MatchForm(form Element) bool {
	action, ok := form.Attr("action")
	if !ok || action != m.Action {
		return false
	}
	method, ok := form.Attr("method")
	return ok && strings.EqualFold(method, m.Method)
}

// ExactFieldMatcher accepts an input whose type and name attributes equal
// Type and Name exactly. An input with no type attribute does not match
// "text" even though browsers render it as a text box.
type ExactFieldMatcher struct {
	Type string
	Name string
}

// MatchField implements FieldMatcher.
func (m ExactFieldMatcher) MatchField(input Element) bool {
	typ, ok := input.Attr("type")
	if !ok || typ != m.Type {
		return false
	}
	name, ok := input.Attr("name")
	return ok && name == m.Name
}

// Hints is the signature of the search form to look for.
type Hints struct {
	Action    string
	Method    string
	FieldType string
	FieldName string
}

// DefaultHints matches the career-site search box the tool was built for.
var DefaultHints = Hints{
	Action:    "/en/search",
	Method:    "get",
	FieldType: "text",
	FieldName: "base_query",
}
