package proxy

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProxy_StripsPrefixAndForwards(t *testing.T) {
	var gotPath, gotQuery, gotForwardedHost string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotForwardedHost = r.Header.Get("X-Forwarded-Host")
		w.Header().Set("X-Total-Count", "7")
		//nolint:errcheck
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	target, err := url.Parse(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}
	handler := New(target, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/devices?limit=5&skip=10", nil)
	req.Host = "console.example"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotPath != "/devices" {
		t.Errorf("upstream path = %q, want /devices", gotPath)
	}
	if gotQuery != "limit=5&skip=10" {
		t.Errorf("upstream query = %q", gotQuery)
	}
	if gotForwardedHost != "console.example" {
		t.Errorf("X-Forwarded-Host = %q, want console.example", gotForwardedHost)
	}

	// Upstream headers pass back through.
	if got := rec.Header().Get("X-Total-Count"); got != "7" {
		t.Errorf("X-Total-Count = %q, want 7", got)
	}
}

func TestProxy_PreservesStatusAndBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		//nolint:errcheck
		_, _ = w.Write([]byte(`{"queued":true}`))
	}))
	defer upstream.Close()

	target, _ := url.Parse(upstream.URL)
	handler := New(target, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/devices/dev-1/tasks", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if rec.Body.String() != `{"queued":true}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestProxy_UnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	upstream.Close()

	target, _ := url.Parse(upstream.URL)
	handler := New(target, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	// The error body is JSON so the SPA can tell an outage from an
	// auth failure.
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["message"] != "NBI service unavailable" {
		t.Errorf("message = %q", body["message"])
	}
}
