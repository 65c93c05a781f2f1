package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Bahjat/formsearch/internal/formsearch"
	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/config"
)

// staticFetcher serves canned bodies keyed by URL and fails everything else.
type staticFetcher map[string]string

func (f staticFetcher) Do(req *http.Request) (*formsearch.FetchedPage, error) {
	body, ok := f[req.URL.String()]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return &formsearch.FetchedPage{URL: req.URL, Body: []byte(body), StatusCode: http.StatusOK}, nil
}

func testConfig() config.Config {
	return config.Config{
		Port:              "8080",
		LogLevel:          "ERROR",
		LookupConcurrency: 3,
		FormAction:        "/en/search",
		FormMethod:        "get",
		QueryFieldType:    "text",
		QueryFieldName:    "base_query",
		Query:             "internships",
		ResultCap:         1,
	}
}

func TestEngineOptions(t *testing.T) {
	got := EngineOptions(testConfig())
	want := formsearch.Hints{Action: "/en/search", Method: "get", FieldType: "text", FieldName: "base_query"}
	if diff := cmp.Diff(want, got.Hints); diff != "" {
		t.Errorf("Hints mismatch (-want +got):\n%s", diff)
	}
	if got.ResultCap != 1 {
		t.Errorf("ResultCap = %d, want 1", got.ResultCap)
	}
}

func TestStack_BatchEndToEnd(t *testing.T) {
	fetcher := staticFetcher{
		"https://a.com/b/": `<form action="/en/search" method="get">
			<input type="text" name="base_query" value=""><input type="hidden" name="token" value="abc"></form>`,
		"https://a.com/en/search?base_query=internships&token=abc": `<a href="/j/1">First</a><a href="/j/2">Second</a>`,
		"https://nothing.com/": `<html></html>`,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stack := NewWithFetcher(testConfig(), fetcher, logger)

	got := stack.Batch.Run(context.Background(), []string{"https://a.com/b/", "https://nothing.com/"}, "")

	want := []model.Outcome{
		{
			PageURL:      "https://a.com/b/",
			Kind:         model.Found,
			Results:      []model.ResultEntry{{Label: "First", URL: "https://a.com/j/1"}},
			SearchURL:    "https://a.com/en/search?base_query=internships&token=abc",
			SearchMethod: http.MethodGet,
		},
		{PageURL: "https://nothing.com/", Kind: model.NoFormFound},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}
