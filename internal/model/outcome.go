package model

import "fmt"

// OutcomeKind tags the result of one page lookup.
type OutcomeKind string

const (
	// Found means the search ran and returned at least one link.
	Found OutcomeKind = "found"
	// NoFormFound means the page has no form matching the search signature.
	NoFormFound OutcomeKind = "no_form_found"
	// NoQueryFieldFound means the form matched but has no usable query input.
	NoQueryFieldFound OutcomeKind = "no_query_field_found"
	// NoResults means the search ran but the response had no qualifying links.
	NoResults OutcomeKind = "no_results"
	// TransportError means the page or the search endpoint could not be fetched.
	TransportError OutcomeKind = "transport_error"
	// ParseError means a response body could not be parsed as HTML.
	ParseError OutcomeKind = "parse_error"
)

// ResultEntry is one link taken from a search result page.
type ResultEntry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Outcome is the result of looking up one page.
type Outcome struct {
	PageURL      string        `json:"page_url"`
	Kind         OutcomeKind   `json:"kind"`
	Results      []ResultEntry `json:"results,omitempty"`
	SearchURL    string        `json:"search_url,omitempty"`
	SearchMethod string        `json:"search_method,omitempty"`
	// ErrorKind classifies the failure behind TransportError and
	// ParseError outcomes, e.g. "timeout" or "unreachable".
	ErrorKind string `json:"error_kind,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Lines renders the outcome as the human-readable lines shown after
// "Searching ... on: <url>".
func (o Outcome) Lines() []string {
	switch o.Kind {
	case Found:
		lines := make([]string, 0, len(o.Results))
		for _, r := range o.Results {
			lines = append(lines, fmt.Sprintf("Result: %s - %s", r.Label, r.URL))
		}
		return lines
	case NoFormFound:
		return []string{"No form found."}
	case NoQueryFieldFound:
		return []string{"No search box found."}
	case NoResults:
		return []string{"No results found."}
	default:
		return []string{fmt.Sprintf("Error searching %s: %s", o.PageURL, o.Detail)}
	}
}

// LookupRequest is the JSON body of POST /lookup.
type LookupRequest struct {
	URL   string `json:"url"`
	Query string `json:"query,omitempty"`
}

// BatchRequest is the JSON body of POST /batch.
type BatchRequest struct {
	URLs  []string `json:"urls"`
	Query string   `json:"query,omitempty"`
}

// BatchResponse holds one outcome per requested URL, in request order.
type BatchResponse struct {
	ID       string    `json:"id"`
	Outcomes []Outcome `json:"outcomes"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
