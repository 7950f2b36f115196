package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/sdk/trace"
)

func TestMiddlewareSendsTraceIDHeader(t *testing.T) {
	tp := trace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	h := MetricsAndTracingMiddleware(tp.Tracer("test"), "tempyd")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))

	// A recorder keeps headers set after WriteHeader, so go through a real
	// server: the header only reaches the wire if set before the handler runs.
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Trace-ID") == "" {
		t.Fatal("Trace-ID header missing from response")
	}
}

func TestMiddlewareSkipsMetricsEndpoint(t *testing.T) {
	tp := trace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	h := MetricsAndTracingMiddleware(tp.Tracer("test"), "tempyd")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if got := rec.Header().Get("Trace-ID"); got != "" {
		t.Fatalf("metrics scrape carries Trace-ID %q, want none", got)
	}
}
