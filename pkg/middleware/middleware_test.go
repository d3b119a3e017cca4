package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/utafrali/AngelsParadise/pkg/logger"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return logger.NewWithWriter("test-svc", "debug", buf)
}

func okHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("{}"))
	})
}

func TestRequestLogging_GeneratesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	var seen string
	h := RequestLogging(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.CorrelationIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(CorrelationHeader))
	assert.Contains(t, buf.String(), `"path":"/api/v1/catalog"`)
}

func TestRequestLogging_ReusesInboundIDAndLevels(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogging(newTestLogger(&buf))(okHandler(http.StatusInternalServerError))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", nil)
	req.Header.Set(CorrelationHeader, "corr-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "corr-42", rec.Header().Get(CorrelationHeader))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, float64(500), line["status"])
	assert.Equal(t, float64(2), line["bytes"])
}

func TestRequestLogger_EnrichesWithUserID(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-1"))
	req.Header.Set(UserHeader, "shopper-9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "corr-1", line["correlation_id"])
	assert.Equal(t, "shopper-9", line["user_id"])
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"an internal error occurred"}}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestCacheControl(t *testing.T) {
	h := CacheControl(60)(okHandler(http.StatusOK))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Empty(t, rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	NoStore(okHandler(http.StatusOK)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestCORS_AllowedOriginEchoed(t *testing.T) {
	h := CORS(CORSConfig{AllowedOrigins: []string{"https://angelsparadise.shop/"}})(okHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://angelsparadise.shop")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://angelsparadise.shop", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS(CORSConfig{AllowedOrigins: []string{"*"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reviews", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), UserHeader)
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	h := RateLimit(ctx, 1, 2, newTestLogger(&buf))(okHandler(http.StatusOK))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	h := RateLimit(context.Background(), 0, 0, slog.Default())(okHandler(http.StatusOK))
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestVisitorStore_CleanupEvictsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newVisitorStore(5, 5, time.Minute)
	s.now = func() time.Time { return now }

	s.limiter("10.0.0.1")
	now = now.Add(2 * time.Minute)
	s.limiter("10.0.0.2")
	s.cleanup()

	assert.Equal(t, 1, s.len())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	assert.Equal(t, "10.0.0.5", clientIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.4")
	assert.Equal(t, "192.0.2.4", clientIP(req))

	req.Header.Set("X-Forwarded-For", "garbage, 198.51.100.9, 10.0.0.1")
	assert.Equal(t, "198.51.100.9", clientIP(req))
}

func TestIPAllowlist(t *testing.T) {
	var buf bytes.Buffer
	h := IPAllowlist([]string{"127.0.0.0/8", "not-a-cidr"}, newTestLogger(&buf))(okHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req.RemoteAddr = "203.0.113.1:9999"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, buf.String(), "invalid allowlist CIDR")
}

func TestRegisterPprof_NoCIDRsMountsNothing(t *testing.T) {
	r := chi.NewRouter()
	RegisterPprof(r, nil, slog.Default())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("metrics-test"))
	r.Get("/api/v1/reviews/{productId}", okHandler(http.StatusOK).ServeHTTP)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("metrics-test", "GET", "/api/v1/reviews/{productId}", "200"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reviews/p-77", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("metrics-test", "GET", "/api/v1/reviews/{productId}", "200"))
	assert.InDelta(t, before+1, after, 0.001)
}

func TestTracing_NamesSpanAfterRoute(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	r := chi.NewRouter()
	r.Use(Tracing("storefront"))
	r.Get("/api/v1/reviews/summary/{productId}", okHandler(http.StatusInternalServerError).ServeHTTP)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reviews/summary/p1", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/reviews/summary/{productId}", spans[0].Name)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("traceparent"), "00-4bf92f3577b34da6a3ce929d0e0e4736-"))
}
