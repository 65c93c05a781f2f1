package lookup

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/requestid"
)

func TestService_Lookup_LogsOutcome(t *testing.T) {
	tests := []struct {
		name      string
		outcome   model.Outcome
		wantLevel string
		wantMsg   string
		wantAttr  string
	}{
		{
			name:      "found",
			outcome:   model.Outcome{Kind: model.Found, Results: []model.ResultEntry{{Label: "x", URL: "https://a.com/x"}}},
			wantLevel: `"level":"INFO"`,
			wantMsg:   "lookup complete",
			wantAttr:  `"results":1`,
		},
		{
			name:      "no form is not an error",
			outcome:   model.Outcome{Kind: model.NoFormFound},
			wantLevel: `"level":"INFO"`,
			wantMsg:   "lookup complete",
			wantAttr:  `"outcome":"no_form_found"`,
		},
		{
			name:      "transport error",
			outcome:   model.Outcome{Kind: model.TransportError, ErrorKind: "unreachable", Detail: "dial tcp: refused"},
			wantLevel: `"level":"ERROR"`,
			wantMsg:   "lookup failed",
			wantAttr:  `"error_kind":"unreachable"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			provider := &mockProvider{outcomes: map[string]model.Outcome{"https://a.com/": tt.outcome}}
			svc := NewService(provider, "internships", logger)

			ctx := requestid.NewContext(context.Background(), "req-1")
			svc.Lookup(ctx, "  https://a.com/  ", "")

			out := buf.String()
			for _, want := range []string{tt.wantLevel, tt.wantMsg, tt.wantAttr, `"request_id":"req-1"`, `"url":"https://a.com/"`} {
				if !strings.Contains(out, want) {
					t.Errorf("log %q does not contain %s", out, want)
				}
			}
			if provider.queries[0] != "internships" {
				t.Errorf("query = %q, want default", provider.queries[0])
			}
		})
	}
}
