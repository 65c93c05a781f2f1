// Package app wires configuration into a ready-to-use lookup stack.
package app

import (
	"log/slog"

	"github.com/Bahjat/formsearch/internal/formsearch"
	"github.com/Bahjat/formsearch/internal/lookup"
	"github.com/Bahjat/formsearch/internal/platform/config"
)

// Stack is the lookup service together with a batch runner over it.
type Stack struct {
	Service *lookup.Service
	Batch   *formsearch.Batch
}

// EngineOptions maps configuration onto engine options.
func EngineOptions(cfg config.Config) formsearch.Options {
	return formsearch.Options{
		Hints: formsearch.Hints{
			Action:    cfg.FormAction,
			Method:    cfg.FormMethod,
			FieldType: cfg.QueryFieldType,
			FieldName: cfg.QueryFieldName,
		},
		ResultCap:     cfg.ResultCap,
		FetchTimeout:  cfg.FetchTimeout,
		SubmitTimeout: cfg.SubmitTimeout,
	}
}

// New builds the stack using a real HTTP client.
func New(cfg config.Config, logger *slog.Logger) Stack {
	client := formsearch.NewHTTPClient(formsearch.HTTPClientOptions{
		FollowRedirects:      cfg.FollowRedirects,
		AllowPrivateNetworks: cfg.AllowPrivateNetworks,
	})
	return NewWithFetcher(cfg, client, logger)
}

// NewWithFetcher builds the stack on top of an arbitrary Fetcher.
func NewWithFetcher(cfg config.Config, fetcher formsearch.Fetcher, logger *slog.Logger) Stack {
	engine := formsearch.NewEngine(fetcher, EngineOptions(cfg))
	svc := lookup.NewService(engine, cfg.Query, logger)
	batch := formsearch.NewBatch(svc, cfg.LookupConcurrency, formsearch.NewHostLimiter(cfg.HostRateLimit))
	return Stack{Service: svc, Batch: batch}
}
