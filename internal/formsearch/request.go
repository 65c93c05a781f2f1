package formsearch

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Bahjat/formsearch/internal/platform/errs"
)

// Field is one name/value pair of a form submission.
type Field struct {
	Name  string
	Value string
}

// QueryRequest is a ready-to-send form submission.
type QueryRequest struct {
	URL    *url.URL // resolved action URL, without the submitted fields
	Method string
	Fields []Field
}

// BuildRequest resolves the form's action against pageURL and fills in every
// named input of the form. The input named queryFieldName carries
// queryValue; every other input keeps its declared value, which is how hidden
// state and CSRF tokens survive the round trip.
//
// Inputs without a name, or with an empty one, are not submitted.
// Inputs sharing a name collapse into a single field at the position of the
// first one, holding the value of the last one.
func BuildRequest(form *FormDescriptor, pageURL *url.URL, queryFieldName, queryValue string) (*QueryRequest, error) {
	action, err := url.Parse(strings.TrimSpace(form.Action))
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "The search form has an invalid action URL.",
			Cause:   err,
		}
	}

	target := pageURL.ResolveReference(action)
	target.Fragment = ""
	target.RawFragment = ""

	var fields []Field
	index := make(map[string]int)
	for _, fd := range form.Fields {
		if !fd.HasName || fd.Name == "" {
			continue
		}
		value := fd.Value
		if fd.Name == queryFieldName {
			value = queryValue
		}
		if i, seen := index[fd.Name]; seen {
			fields[i].Value = value
			continue
		}
		index[fd.Name] = len(fields)
		fields = append(fields, Field{Name: fd.Name, Value: value})
	}

	return &QueryRequest{
		URL:    target,
		Method: normalizeMethod(form.Method),
		Fields: fields,
	}, nil
}

// Encode returns the fields in application/x-www-form-urlencoded form.
// Unlike url.Values.Encode it keeps the fields in form order.
func (q *QueryRequest) Encode() string {
	var b strings.Builder
	for i, f := range q.Fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}

// TargetURL returns the URL the request is sent to. For GET the encoded
// fields are appended to any query string the action already carries.
func (q *QueryRequest) TargetURL() *url.URL {
	u := *q.URL
	if q.Method != http.MethodGet {
		return &u
	}
	encoded := q.Encode()
	switch {
	case encoded == "":
	case u.RawQuery == "":
		u.RawQuery = encoded
	default:
		u.RawQuery += "&" + encoded
	}
	return &u
}

// NewHTTPRequest converts q into an *http.Request bound to ctx.
func (q *QueryRequest) NewHTTPRequest(ctx context.Context) (*http.Request, error) {
	if q.Method == http.MethodPost {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, q.URL.String(), strings.NewReader(q.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, q.TargetURL().String(), nil)
}
