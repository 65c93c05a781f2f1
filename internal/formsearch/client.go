package formsearch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FetchedPage is a raw HTTP response body together with the URL it was
// finally served from.
type FetchedPage struct {
	URL         *url.URL
	Body        []byte
	ContentType string
	StatusCode  int
}

// Fetcher sends a request and returns the page it produced. Cancellation
// and deadlines travel on the request's context.
type Fetcher interface {
	Do(req *http.Request) (*FetchedPage, error)
}

// HTTPClient implements Fetcher using a real HTTP client.
type HTTPClient struct {
	client *http.Client
}

// HTTPClientOptions tunes NewHTTPClient.
type HTTPClientOptions struct {
	// FollowRedirects makes the client follow up to five http(s) redirects.
	// When false the redirect response itself is returned.
	FollowRedirects bool
	// AllowPrivateNetworks disables the dial-time block on loopback,
	// private and reserved addresses.
	AllowPrivateNetworks bool
}

const (
	maxRedirects    = 5
	maxResponseBody = 10 << 20
	userAgent       = "FormSearchBot/1.0"
	clientTimeout   = 60 * time.Second
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// NewHTTPClient returns a Fetcher backed by an http.Client. Per-request
// deadlines come from the request context; the client-wide timeout is only
// an upper bound.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	dialer := publicDialer()
	if opts.AllowPrivateNetworks {
		dialer.Control = nil
	}

	checkRedirect := safeRedirectPolicy
	if !opts.FollowRedirects {
		checkRedirect = func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				MaxConnsPerHost:     10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: checkRedirect,
		},
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Do sends req and reads at most 10 MB of the response body.
func (c *HTTPClient) Do(req *http.Request) (*FetchedPage, error) {
	req.Header.Set("User-Agent", userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return &FetchedPage{
		URL:         finalURL,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}
