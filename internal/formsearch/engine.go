package formsearch

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/errs"
)

const defaultCallTimeout = 10 * time.Second

// Options configures an Engine. Zero values fall back to DefaultHints,
// DefaultResultCap and a 10s timeout per network call.
type Options struct {
	Hints Hints
	// FormMatcher and FieldMatcher replace the exact matchers built from
	// Hints when set.
	FormMatcher  FormMatcher
	FieldMatcher FieldMatcher

	ResultCap     int
	FetchTimeout  time.Duration
	SubmitTimeout time.Duration
}

// Engine runs the fetch, locate, submit and extract pipeline for a page.
// It holds no per-lookup state and is safe for concurrent use.
type Engine struct {
	fetcher Fetcher
	locator Locator
	opts    Options
}

// NewEngine returns an Engine that sends its requests through fetcher.
func NewEngine(fetcher Fetcher, opts Options) *Engine {
	if opts.Hints == (Hints{}) {
		opts.Hints = DefaultHints
	}
	if opts.ResultCap <= 0 {
		opts.ResultCap = DefaultResultCap
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultCallTimeout
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = defaultCallTimeout
	}

	locator := NewLocator(opts.Hints)
	if opts.FormMatcher != nil {
		locator.Form = opts.FormMatcher
	}
	if opts.FieldMatcher != nil {
		locator.Field = opts.FieldMatcher
	}

	return &Engine{fetcher: fetcher, locator: locator, opts: opts}
}

// Lookup searches pageURL's search form for query and reports what happened.
// Every failure is folded into the returned Outcome.
func (e *Engine) Lookup(ctx context.Context, pageURL, query string) model.Outcome {
	out := model.Outcome{PageURL: pageURL}

	target, err := validatePageURL(pageURL)
	if err != nil {
		return fail(out, model.TransportError, err)
	}

	page, err := e.get(ctx, target)
	if err != nil {
		return fail(out, model.TransportError, err)
	}

	doc, err := parse(page)
	if err != nil {
		return fail(out, model.ParseError, err)
	}

	form, err := e.locator.Locate(doc)
	if err != nil {
		out.Kind = model.NoFormFound
		return out
	}

	field, ok := form.QueryField()
	if !ok {
		out.Kind = model.NoQueryFieldFound
		return out
	}

	qr, err := BuildRequest(form, page.URL, field.Name, query)
	if err != nil {
		return fail(out, model.TransportError, err)
	}
	out.SearchURL = qr.TargetURL().String()
	out.SearchMethod = qr.Method

	resp, err := e.submit(ctx, qr)
	if err != nil {
		return fail(out, model.TransportError, err)
	}

	resultDoc, err := parse(resp)
	if err != nil {
		return fail(out, model.ParseError, err)
	}

	out.Results = Extract(resultDoc, resp.URL, e.opts.ResultCap)
	if len(out.Results) == 0 {
		out.Kind = model.NoResults
		return out
	}
	out.Kind = model.Found
	return out
}

func (e *Engine) get(ctx context.Context, target *url.URL) (*FetchedPage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: "The page request could not be built.", Cause: err}
	}
	page, err := e.fetcher.Do(req)
	if err != nil {
		return nil, networkError(ctx, "The page could not be reached.", err)
	}
	return page, nil
}

func (e *Engine) submit(ctx context.Context, qr *QueryRequest) (*FetchedPage, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.SubmitTimeout)
	defer cancel()

	req, err := qr.NewHTTPRequest(ctx)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidInput, Message: "The search request could not be built.", Cause: err}
	}
	page, err := e.fetcher.Do(req)
	if err != nil {
		return nil, networkError(ctx, "The search endpoint could not be reached.", err)
	}
	return page, nil
}

func networkError(ctx context.Context, message string, err error) error {
	var blocked *BlockedAddressError
	if errors.As(err, &blocked) {
		return &errs.AppError{Kind: errs.Blocked, Message: "The target address is on a private or reserved network.", Cause: err}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &errs.AppError{Kind: errs.Timeout, Message: "The request timed out.", Cause: err}
	}
	return &errs.AppError{Kind: errs.Unreachable, Message: message, Cause: err}
}

func parse(page *FetchedPage) (*Document, error) {
	doc, err := DecodeDocument(page.Body, page.ContentType)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the HTML content.",
			Cause:   err,
		}
	}
	return doc, nil
}

func validatePageURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format.",
			Cause:   err,
		}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Expected an absolute URL such as https://example.com.",
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Only http and https URLs are supported.",
		}
	}
	return parsed, nil
}

// fail records err's category and description on the outcome.
func fail(out model.Outcome, kind model.OutcomeKind, err error) model.Outcome {
	out.Kind = kind
	out.ErrorKind = errs.KindOf(err).String()
	out.Detail = err.Error()
	return out
}
