package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"podder.dev/internal/metrics"
)

func TestRecoveryReturnsEnvelope(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recovery(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != false {
		t.Errorf("body = %v", body)
	}
	if logs.Len() != 1 {
		t.Errorf("expected one error log, got %d", logs.Len())
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tea", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/tea" {
		t.Errorf("fields = %v", fields)
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.New("test")
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/projects/42", nil))

	got := testutil.ToFloat64(m.RequestsTotal().WithLabelValues(http.MethodGet, "/api/projects/{id}", "200"))
	if got != 1 {
		t.Errorf("requests counted = %v", got)
	}
}

func TestChainLogsAndCountsPanics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New("test")
	r := chi.NewRouter()
	r.Use(Chain(zap.New(core), m)...)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	requests := logs.FilterMessage("request").All()
	if len(requests) != 1 || requests[0].ContextMap()["status"] != int64(http.StatusInternalServerError) {
		t.Errorf("request log = %v", requests)
	}
	got := testutil.ToFloat64(m.RequestsTotal().WithLabelValues(http.MethodGet, "/boom", "500"))
	if got != 1 {
		t.Errorf("panicking request counted %v times", got)
	}
}
