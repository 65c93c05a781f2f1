package formsearch

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/net/html/atom"
)

// ErrFormNotFound is returned by Locate when no form matches.
var ErrFormNotFound = errors.New("no matching form found")

// noField marks a FormDescriptor without a located query field.
const noField = -1

// FieldDescriptor describes one <input> of a form.
type FieldDescriptor struct {
	Name    string
	HasName bool
	Type    string
	Value   string // declared value attribute, "" if absent
}

// FormDescriptor is the structural record of a located form.
type FormDescriptor struct {
	Action string // raw action attribute, possibly relative
	Method string // http.MethodGet or http.MethodPost
	Fields []FieldDescriptor

	queryField int
}

// QueryField returns the located query field. The boolean is false when the
// form matched but none of its inputs did.
func (f *FormDescriptor) QueryField() (FieldDescriptor, bool) {
	if f.queryField == noField {
		return FieldDescriptor{}, false
	}
	return f.Fields[f.queryField], true
}

// Locator finds the search form of a page.
type Locator struct {
	Form  FormMatcher
	Field FieldMatcher
}

// NewLocator returns a Locator that matches forms and fields exactly against h.
func NewLocator(h Hints) Locator {
	return Locator{
		Form:  ExactFormMatcher{Action: h.Action, Method: h.Method},
		Field: ExactFieldMatcher{Type: h.FieldType, Name: h.FieldName},
	}
}

// Locate returns the first form in document order accepted by the form
// matcher. Inputs are only considered if they sit inside that form; a
// matching input elsewhere on the page is ignored.
func (l Locator) Locate(doc *Document) (*FormDescriptor, error) {
	for _, form := range doc.Descendants(atom.Form) {
		if !l.Form.MatchForm(form) {
			continue
		}
		return l.describe(form), nil
	}
	return nil, ErrFormNotFound
}

func (l Locator) describe(form Element) *FormDescriptor {
	fd := &FormDescriptor{
		Action:     form.AttrOr("action", ""),
		Method:     normalizeMethod(form.AttrOr("method", "")),
		queryField: noField,
	}

	for _, input := range form.Descendants(atom.Input) {
		name, hasName := input.Attr("name")
		fd.Fields = append(fd.Fields, FieldDescriptor{
			Name:    name,
			HasName: hasName,
			Type:    input.AttrOr("type", ""),
			Value:   input.AttrOr("value", ""),
		})
		if fd.queryField == noField && l.Field.MatchField(input) {
			fd.queryField = len(fd.Fields) - 1
		}
	}

	return fd
}

// normalizeMethod maps a declared form method onto the two methods a form
// can submit with. Anything other than "post" submits as GET.
func normalizeMethod(declared string) string {
	if strings.EqualFold(declared, "post") {
		return http.MethodPost
	}
	return http.MethodGet
}
