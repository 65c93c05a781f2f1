package lookup

import (
	"context"

	"github.com/Bahjat/formsearch/internal/model"
)

// OutcomeProvider runs a single page lookup.
type OutcomeProvider interface {
	Lookup(ctx context.Context, pageURL, query string) model.Outcome
}

// BatchRunner runs lookups over many pages and returns the outcomes in
// input order.
type BatchRunner interface {
	Run(ctx context.Context, urls []string, query string) []model.Outcome
}
