package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acsops/acs-console/internal/auth"
	"github.com/acsops/acs-console/internal/devcache"
	"github.com/acsops/acs-console/internal/nbi"
	"github.com/acsops/acs-console/internal/proxy"
	"github.com/acsops/acs-console/internal/store"
	"github.com/acsops/acs-console/internal/testutil/mocknbi"
	"github.com/acsops/acs-console/internal/testutil/mockstore"
)

// testEnv wires the full router against in-memory fakes: a mock
// document store and a mock NBI.
type testEnv struct {
	store  *mockstore.MockStore
	nbi    *mocknbi.Server
	cache  *devcache.Cache
	router http.Handler
}

func newTestEnv(t *testing.T, deviceCount int) *testEnv {
	t.Helper()

	st := mockstore.New()
	nbiSrv := mocknbi.New(mocknbi.Devices(deviceCount))
	t.Cleanup(nbiSrv.Close)

	client := nbi.NewClient(nbi.WithBaseURL(nbiSrv.URL()))
	cache := devcache.New(NewDeviceFetcher(client), devcache.NewMemoryStore())
	authenticator := auth.New(st, []byte("test-secret"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(st, authenticator, cache, logger)

	target, err := url.Parse(nbiSrv.URL())
	require.NoError(t, err)

	dist := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("<html>console</html>"), 0o644))

	router := NewRouter(RouterConfig{
		Handler:  handler,
		Verifier: authenticator,
		NBIProxy: proxy.New(target, logger),
		WebDist:  dist,
		Logger:   logger,
	})

	return &testEnv{store: st, nbi: nbiSrv, cache: cache, router: router}
}

// seedUser creates an account directly in the store.
func (e *testEnv) seedUser(t *testing.T, username, password, role string) {
	t.Helper()
	hash, salt, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, e.store.CreateUser(context.Background(), &store.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
	}))
}

// login authenticates through the router and returns the session token.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

// do runs one request through the router. A non-nil body is JSON-encoded;
// a non-empty token is sent as a bearer token.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
}
