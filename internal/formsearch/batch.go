package formsearch

import (
	"context"
	"errors"
	"sync"

	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/errs"
)

// Looker runs a single page lookup.
type Looker interface {
	Lookup(ctx context.Context, pageURL, query string) model.Outcome
}

// Batch looks up many pages with a bounded pool of workers.
type Batch struct {
	looker      Looker
	concurrency int
	limiter     *HostLimiter
}

// NewBatch returns a Batch running at most concurrency lookups at once.
// limiter may be nil.
func NewBatch(looker Looker, concurrency int, limiter *HostLimiter) *Batch {
	return &Batch{
		looker:      looker,
		concurrency: max(concurrency, 1),
		limiter:     limiter,
	}
}

// Run returns one outcome per URL, in the order of urls.
func (b *Batch) Run(ctx context.Context, urls []string, query string) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(urls))
	b.RunEach(ctx, urls, query, func(_ int, o model.Outcome) {
		outcomes = append(outcomes, o)
	})
	return outcomes
}

type indexedOutcome struct {
	index   int
	outcome model.Outcome
}

// RunEach calls emit once per URL, in input order, as soon as that URL and
// every URL before it have finished. emit runs on the caller's goroutine.
//
// A failed lookup never stops the batch. Once ctx is done, lookups that
// have not started yet report a TransportError carrying the context error.
func (b *Batch) RunEach(ctx context.Context, urls []string, query string, emit func(i int, o model.Outcome)) {
	if len(urls) == 0 {
		return
	}

	jobs := make(chan int, len(urls))
	results := make(chan indexedOutcome, len(urls))

	var wg sync.WaitGroup
	for range min(len(urls), b.concurrency) {
		wg.Go(func() {
			for i := range jobs {
				results <- indexedOutcome{index: i, outcome: b.lookup(ctx, urls[i], query)}
			}
		})
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	pending := make(map[int]model.Outcome)
	next := 0
	for r := range results {
		pending[r.index] = r.outcome
		for {
			o, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			emit(next, o)
			next++
		}
	}
}

func (b *Batch) lookup(ctx context.Context, pageURL, query string) model.Outcome {
	out := model.Outcome{PageURL: pageURL}
	if err := ctx.Err(); err != nil {
		return fail(out, model.TransportError, notStarted(err))
	}
	if err := b.limiter.Wait(ctx, pageURL); err != nil {
		return fail(out, model.TransportError, notStarted(err))
	}
	return b.looker.Lookup(ctx, pageURL, query)
}

func notStarted(err error) error {
	kind := errs.Canceled
	if errors.Is(err, context.DeadlineExceeded) {
		kind = errs.Timeout
	}
	return &errs.AppError{Kind: kind, Message: "The lookup was not started.", Cause: err}
}
