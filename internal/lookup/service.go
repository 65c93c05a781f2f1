package lookup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/requestid"
)

// Service wraps an OutcomeProvider with the default query and logging.
type Service struct {
	provider     OutcomeProvider
	defaultQuery string
	logger       *slog.Logger
}

// NewService creates a Service backed by the given provider. Lookups with an
// empty query search for defaultQuery.
func NewService(provider OutcomeProvider, defaultQuery string, logger *slog.Logger) *Service {
	return &Service{provider: provider, defaultQuery: defaultQuery, logger: logger}
}

// Lookup delegates to the provider and logs the outcome.
func (s *Service) Lookup(ctx context.Context, pageURL, query string) model.Outcome {
	pageURL = strings.TrimSpace(pageURL)
	if strings.TrimSpace(query) == "" {
		query = s.defaultQuery
	}

	logger := s.logger.With("url", pageURL, "request_id", requestid.FromContext(ctx))

	out := s.provider.Lookup(ctx, pageURL, query)
	switch out.Kind {
	case model.TransportError, model.ParseError:
		logger.Error("lookup failed", "outcome", out.Kind, "error_kind", out.ErrorKind, "error", out.Detail)
	default:
		logger.Info("lookup complete",
			"outcome", out.Kind,
			"results", len(out.Results),
			"search_url", out.SearchURL,
			"search_method", out.SearchMethod,
		)
	}
	return out
}
