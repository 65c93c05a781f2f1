package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/requestid"
)

const (
	lookupTimeout = 60 * time.Second
	batchTimeout  = 5 * time.Minute
	maxBatchURLs  = 100
)

var (
	errURLRequired  = errors.New("the \"url\" field is required")
	errURLsRequired = errors.New("the \"urls\" field must contain at least one URL")
	errTooManyURLs  = fmt.Errorf("at most %d URLs can be searched per batch", maxBatchURLs)
)

// Transport handles HTTP requests for form lookups.
type Transport struct {
	service *Service
	batch   BatchRunner
	logger  *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service and
// batch runner.
func NewTransport(service *Service, batch BatchRunner, logger *slog.Logger) *Transport {
	return &Transport{service: service, batch: batch, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /lookup", t.handleLookup)
	mux.HandleFunc("POST /batch", t.handleBatch)
}

func validateLookup(r model.LookupRequest) error {
	if strings.TrimSpace(r.URL) == "" {
		return errURLRequired
	}
	return nil
}

func validateBatch(r model.BatchRequest) error {
	if len(r.URLs) == 0 {
		return errURLsRequired
	}
	if len(r.URLs) > maxBatchURLs {
		return errTooManyURLs
	}
	for _, u := range r.URLs {
		if strings.TrimSpace(u) == "" {
			return errURLRequired
		}
	}
	return nil
}

func (t *Transport) handleLookup(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req model.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := validateLookup(req); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), lookupTimeout)
	defer cancel()

	t.renderJSON(w, http.StatusOK, t.service.Lookup(ctx, req.URL, req.Query))
}

func (t *Transport) handleBatch(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req model.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"urls\" array.")
		return
	}

	if err := validateBatch(req); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), batchTimeout)
	defer cancel()

	id := requestid.FromContext(ctx)
	if id == "" {
		id = requestid.New()
		ctx = requestid.NewContext(ctx, id)
	}

	resp := model.BatchResponse{ID: id, Outcomes: t.batch.Run(ctx, req.URLs, req.Query)}

	t.logger.Info("batch complete", "batch_id", id, "urls", len(req.URLs))
	t.renderJSON(w, http.StatusOK, resp)
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
