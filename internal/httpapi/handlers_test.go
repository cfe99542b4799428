package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sports-scoreboard/internal/manager"
)

type stubIntrospector struct {
	info   map[string]any
	health map[string]manager.Status
}

func (s *stubIntrospector) GetInfo() map[string]any           { return s.info }
func (s *stubIntrospector) Health() map[string]manager.Status { return s.health }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(source Introspector) *httptest.Server {
	handler := loggingMiddleware(discardLogger(), nil, NewHandler(source, discardLogger()))
	return httptest.NewServer(handler)
}

func TestHealthzReady(t *testing.T) {
	source := &stubIntrospector{health: map[string]manager.Status{
		"nba_live": {LastSuccess: time.Now()},
	}}
	srv := newTestServer(source)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestHealthzDegraded(t *testing.T) {
	source := &stubIntrospector{health: map[string]manager.Status{
		"nba_live": {ConsecutiveFailures: 5, LastError: "boom"},
	}}
	srv := newTestServer(source)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when every manager fails", resp.StatusCode)
	}
}

func TestHealthzNoManagers(t *testing.T) {
	srv := newTestServer(&stubIntrospector{health: map[string]manager.Status{}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 with nothing configured", resp.StatusCode)
	}
}

func TestStatusReturnsInfo(t *testing.T) {
	source := &stubIntrospector{info: map[string]any{
		"name":    "sports-scoreboard",
		"enabled": true,
	}}
	srv := newTestServer(source)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["name"] != "sports-scoreboard" {
		t.Errorf("name = %v", body["name"])
	}
}

func TestUnknownRouteNotFound(t *testing.T) {
	srv := newTestServer(&stubIntrospector{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubIntrospector{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/status", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestRequestIDEchoedAndSanitized(t *testing.T) {
	srv := newTestServer(&stubIntrospector{})
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/status", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("request id = %q, want echoed", got)
	}

	req.Header.Set("X-Request-ID", "bad id with spaces!!")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got == "bad id with spaces!!" || got == "" {
		t.Errorf("request id = %q, want regenerated", got)
	}
}
