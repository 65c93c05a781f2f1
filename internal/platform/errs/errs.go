package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes lookup errors so callers can branch on them.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the page URL or request was malformed.
	InvalidInput
	// Unreachable indicates the page or the search endpoint could not be reached.
	Unreachable
	// Timeout indicates a fetch or submission ran past its deadline.
	Timeout
	// ParsingFailed indicates a response body could not be parsed as HTML.
	ParsingFailed
	// Blocked indicates the target resolved to a private or reserved address.
	Blocked
	// Canceled indicates the caller gave up before the lookup ran.
	Canceled
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	case ParsingFailed:
		return "parsing_failed"
	case Blocked:
		return "blocked_address"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// AppError carries a category, a human-readable message and the original cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of the first AppError in err's chain, or Unknown.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}
