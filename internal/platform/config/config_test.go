package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FormAction != "/en/search" {
		t.Errorf("FormAction = %q, want %q", cfg.FormAction, "/en/search")
	}
	if cfg.FormMethod != "get" {
		t.Errorf("FormMethod = %q, want %q", cfg.FormMethod, "get")
	}
	if cfg.QueryFieldName != "base_query" {
		t.Errorf("QueryFieldName = %q, want %q", cfg.QueryFieldName, "base_query")
	}
	if cfg.ResultCap != 2 {
		t.Errorf("ResultCap = %d, want 2", cfg.ResultCap)
	}
	if !cfg.FollowRedirects {
		t.Error("FollowRedirects = false, want true")
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %s, want 10s", cfg.FetchTimeout)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("FORM_ACTION", "/search")
	t.Setenv("FORM_METHOD", "POST")
	t.Setenv("RESULT_CAP", "5")
	t.Setenv("FOLLOW_REDIRECTS", "false")
	t.Setenv("SUBMIT_TIMEOUT", "3s")
	t.Setenv("HOST_RATE_LIMIT", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FormAction != "/search" || cfg.FormMethod != "POST" {
		t.Errorf("form hints = %q %q, want /search POST", cfg.FormAction, cfg.FormMethod)
	}
	if cfg.ResultCap != 5 {
		t.Errorf("ResultCap = %d, want 5", cfg.ResultCap)
	}
	if cfg.FollowRedirects {
		t.Error("FollowRedirects = true, want false")
	}
	if cfg.SubmitTimeout != 3*time.Second {
		t.Errorf("SubmitTimeout = %s, want 3s", cfg.SubmitTimeout)
	}
	if cfg.HostRateLimit != 0.5 {
		t.Errorf("HostRateLimit = %g, want 0.5", cfg.HostRateLimit)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "port not a number", key: "PORT", value: "abc", wantErr: errInvalidPort},
		{name: "port out of range", key: "PORT", value: "70000", wantErr: errInvalidPort},
		{name: "zero concurrency", key: "LOOKUP_CONCURRENCY", value: "0", wantErr: errConcurrencyOutOfRange},
		{name: "too much concurrency", key: "LOOKUP_CONCURRENCY", value: "101", wantErr: errConcurrencyOutOfRange},
		{name: "zero cap", key: "RESULT_CAP", value: "0", wantErr: errInvalidResultCap},
		{name: "negative timeout", key: "FETCH_TIMEOUT", value: "-1s", wantErr: errInvalidTimeout},
		{name: "negative rate", key: "HOST_RATE_LIMIT", value: "-2", wantErr: errInvalidRateLimit},
		{name: "blank field name", key: "QUERY_FIELD_NAME", value: "   ", wantErr: errEmptyHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_UnparseableFallsBack(t *testing.T) {
	t.Setenv("RESULT_CAP", "many")
	t.Setenv("FOLLOW_REDIRECTS", "sometimes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ResultCap != 2 {
		t.Errorf("ResultCap = %d, want fallback 2", cfg.ResultCap)
	}
	if !cfg.FollowRedirects {
		t.Error("FollowRedirects = false, want fallback true")
	}
}
