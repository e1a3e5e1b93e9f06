package nbi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryDevices(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/devices" {
			t.Errorf("path = %q, want /devices", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set(TotalCountHeader, "342")
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		_, _ = w.Write([]byte(`[{"_id":"dev-1"},{"_id":"dev-2"}]`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	devices, total, err := client.QueryDevices(context.Background(), &DeviceQuery{
		Filter:     map[string]any{"_deviceId._ProductClass": "Router"},
		Limit:      10,
		Skip:       20,
		Projection: []string{"_id", "_lastInform"},
		Sort:       map[string]int{"_lastInform": -1},
	})
	if err != nil {
		t.Fatalf("QueryDevices failed: %v", err)
	}

	if len(devices) != 2 {
		t.Errorf("len(devices) = %d, want 2", len(devices))
	}
	if total != 342 {
		t.Errorf("total = %d, want 342", total)
	}

	wantParams := map[string]string{
		"query":      `{"_deviceId._ProductClass":"Router"}`,
		"limit":      "10",
		"skip":       "20",
		"projection": "_id,_lastInform",
		"sort":       `{"_lastInform":-1}`,
	}
	for name, want := range wantParams {
		if got := gotQuery[name]; len(got) != 1 || got[0] != want {
			t.Errorf("query param %s = %v, want %q", name, got, want)
		}
	}
}

func TestQueryDevices_NilQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query string %q", r.URL.RawQuery)
		}
		//nolint:errcheck
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	devices, total, err := client.QueryDevices(context.Background(), nil)
	if err != nil {
		t.Fatalf("QueryDevices failed: %v", err)
	}
	if len(devices) != 0 || total != 0 {
		t.Errorf("devices=%v total=%d, want empty", devices, total)
	}
}

func TestQueryDevices_TotalHeaderFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"canonical header", map[string]string{TotalCountHeader: "99"}, 99},
		{"legacy total header", map[string]string{"total": "55"}, 55},
		{"no header falls back to page length", nil, 3},
		{"malformed header falls back", map[string]string{TotalCountHeader: "lots"}, 3},
		{"negative header falls back", map[string]string{TotalCountHeader: "-1"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				//nolint:errcheck
				_, _ = w.Write([]byte(`[{},{},{}]`))
			}))
			defer srv.Close()

			client := NewClient(WithBaseURL(srv.URL))
			_, total, err := client.QueryDevices(context.Background(), nil)
			if err != nil {
				t.Fatalf("QueryDevices failed: %v", err)
			}
			if total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}
}

func TestQueryDevices_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, _, err := client.QueryDevices(context.Background(), nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestQueryDevices_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, _, err := client.QueryDevices(context.Background(), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestQueryDevices_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		//nolint:errcheck
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, _, err := client.QueryDevices(context.Background(), nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}
	if statusErr.Body != "boom" {
		t.Errorf("Body = %q, want boom", statusErr.Body)
	}
}

func TestQueryDevices_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, _, err := client.QueryDevices(context.Background(), nil)
	if err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestWithBaseURL_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(WithBaseURL("http://acs.example:7557/"))
	if got := client.BaseURL(); got != "http://acs.example:7557" {
		t.Errorf("BaseURL() = %q", got)
	}
}
