package middleware

import (
	"net/http"

	"github.com/Bahjat/formsearch/internal/platform/requestid"
)

const requestIDHeader = "X-Request-ID"

// RequestID is middleware that tags each request with an ID, reusing an
// incoming X-Request-ID header when present. The ID is echoed back on the
// response so callers can correlate lookups with server logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
