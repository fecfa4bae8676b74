package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	access "parceltrack/contexts/identity-access/access-service"
	tracking "parceltrack/contexts/shipment-tracking/tracking-service"
	"parceltrack/internal/platform/identity"
)

const (
	testJWTSecret      = "test-secret"
	testBootstrapToken = "bootstrap-token"
)

type testEnv struct {
	server   *Server
	resolver *identity.Resolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	accessModule := access.NewInMemoryModule(logger)
	trackingModule := tracking.NewInMemoryModule(accessModule.Service, logger)
	resolver := identity.NewResolver(testJWTSecret)

	server := New(trackingModule, accessModule, resolver, testBootstrapToken, logger, ":0")
	return &testEnv{server: server, resolver: resolver}
}

func (e *testEnv) token(t *testing.T, callerIdentity string) string {
	t.Helper()
	token, err := e.resolver.Issue(callerIdentity, time.Minute)
	if err != nil {
		t.Fatalf("issue token for %q failed: %v", callerIdentity, err)
	}
	return token
}

// do sends a request through the mux. An empty token means anonymous.
func (e *testEnv) do(t *testing.T, method, path, token string, body ...any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if len(body) > 0 && body[0] != nil {
		encoded, err := json.Marshal(body[0])
		if err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(recorder, req)
	return recorder
}

// bootstrapAdmin claims the one-time initial admin grant for an identity.
func (e *testEnv) bootstrapAdmin(t *testing.T, callerIdentity string) string {
	t.Helper()
	token := e.token(t, callerIdentity)
	resp := e.do(t, http.MethodPost, "/v1/bootstrap/initial-admin", token, map[string]string{
		"token": testBootstrapToken,
	})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("bootstrap failed: status %d body %s", resp.Code, resp.Body.String())
	}
	return token
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response failed: %v (body %s)", err, resp.Body.String())
	}
}
