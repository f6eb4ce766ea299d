package handballnet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hallenstats/handball-ingest/internal/platform/logging"
	"github.com/hallenstats/handball-ingest/internal/platform/resilience"
	"github.com/hallenstats/handball-ingest/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		IDPrefix:   "handball4all.westfalen.",
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})
	return client, server
}

func TestClient_FetchMatchDocument(t *testing.T) {
	t.Parallel()

	var gotPath, gotUserAgent atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		gotUserAgent.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"data":{"summary":{"id":"handball4all.westfalen.123","tournament":{"id":"t1"}}}}`))
	}))

	doc, err := client.FetchMatchDocument(context.Background(), "123")
	if err != nil {
		t.Fatalf("FetchMatchDocument error: %v", err)
	}

	if want := "/games/handball4all.westfalen.123/combined"; gotPath.Load() != want {
		t.Fatalf("unexpected path: got=%q want=%q", gotPath.Load(), want)
	}
	if gotUserAgent.Load() == "" {
		t.Fatalf("user agent header must be set")
	}
	if doc.Summary == nil || doc.Summary.ID != "handball4all.westfalen.123" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestClient_FetchMatchDocument_MissingDataNode(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	doc, err := client.FetchMatchDocument(context.Background(), "123")
	if err != nil {
		t.Fatalf("FetchMatchDocument error: %v", err)
	}
	if doc.Summary != nil {
		t.Fatalf("expected empty document, got=%+v", doc)
	}
}

func TestClient_FetchMatchDocument_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := client.FetchMatchDocument(context.Background(), "123")
	if !errors.Is(err, usecase.ErrFetch) {
		t.Fatalf("expected ErrFetch, got=%v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("404 must not be retried: got=%d calls", got)
	}
}

func TestClient_FetchMatchDocument_RetriesServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"summary":{"id":"x","tournament":{"id":"t1"}}}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		MaxRetries:     1,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	if _, err := client.FetchMatchDocument(context.Background(), "123"); err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("unexpected call count: got=%d want=2", got)
	}
}

func TestClient_FetchMatchDocument_EmptyID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	if _, err := client.FetchMatchDocument(context.Background(), "  "); !errors.Is(err, usecase.ErrFetch) {
		t.Fatalf("expected ErrFetch for empty id, got=%v", err)
	}
}

func TestClient_CircuitOpenRejectsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      resilience.DefaultCircuitBreakerConfig().OpenTimeout,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchMatchDocument(context.Background(), "1"); err == nil {
		t.Fatalf("expected first fetch to fail")
	}
	before := calls.Load()

	if _, err := client.FetchMatchDocument(context.Background(), "2"); !errors.Is(err, usecase.ErrFetch) {
		t.Fatalf("expected ErrFetch from open circuit, got=%v", err)
	}
	if calls.Load() != before {
		t.Fatalf("open circuit must not reach the server")
	}
}

func TestQualifyID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if got := client.QualifyID("123"); got != "handball4all.westfalen.123" {
		t.Fatalf("unexpected qualified id: got=%q", got)
	}
	if got := client.QualifyID("handball4all.westfalen.123"); got != "handball4all.westfalen.123" {
		t.Fatalf("qualified id must pass through: got=%q", got)
	}
}
