package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swms/swms-console/internal/console"
	"github.com/swms/swms-console/internal/observability"
	"github.com/swms/swms-console/internal/shared"
	"github.com/swms/swms-console/internal/swms"
	"github.com/swms/swms-console/internal/view"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, health Pinger) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "swms_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf")
	templates, err := view.NewEngine()
	require.NoError(t, err)
	api, err := swms.NewClient(swms.Options{BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)

	router := NewRouter(RouterParams{
		Logger:         logger,
		Config:         &Config{AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000},
		SessionManager: sessions,
		CSRFManager:    csrf,
		Console:        console.NewHandler(logger, api, templates, sessions, csrf),
		Metrics:        observability.NewMetrics(),
		Health:         health,
	})
	return router, mr
}

func TestHealthz(t *testing.T) {
	router, mr := newTestRouter(t, pingerFunc(func(context.Context) error { return nil }))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Empty(t, mr.Keys(), "health checks do not open sessions")
	assert.Empty(t, rr.Header().Get("Set-Cookie"))
}

func TestHealthzReportsStoreOutage(t *testing.T) {
	router, _ := newTestRouter(t, pingerFunc(func(context.Context) error { return errors.New("connection refused") }))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "connection refused")
}

func TestStaticAssetsAreServed(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/css"))
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
}

func TestSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
}

func TestConsoleRequestsCommitSession(t *testing.T) {
	router, mr := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "swms_session=")
	assert.Len(t, mr.Keys(), 1)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `swms_http_requests_total{code="200",route="/login"} 1`)
}
