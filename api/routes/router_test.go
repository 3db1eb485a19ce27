package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/izishop-backend/api/middleware"
	"github.com/angelmondragon/izishop-backend/internal/cart"
	"github.com/angelmondragon/izishop-backend/internal/catalog"
	"github.com/angelmondragon/izishop-backend/pkg/config"
	"github.com/angelmondragon/izishop-backend/pkg/kv"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
	"github.com/angelmondragon/izishop-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test"},
		Cart:      config.CartConfig{Store: config.CartStoreMemory, StorageKey: "izishop-cart", SessionCookie: "izishop_session"},
		RateLimit: config.RateLimitConfig{CartWindow: time.Minute, CartLimit: 100},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	router, _ := newTestRouterWithSessions(t)
	return router
}

func newTestRouterWithSessions(t *testing.T) (http.Handler, *cart.Sessions) {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	cat, err := catalog.Default()
	require.NoError(t, err)
	sessions := cart.NewSessions(cart.SessionsOptions{
		Store:   kv.NewMemory(),
		BaseKey: cfg.Cart.StorageKey,
		Policy:  cart.DefaultPolicy(),
		Logger:  logg,
	})
	svc, err := cart.NewService(sessions, cat)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	router := NewRouter(
		cfg,
		logg,
		cat,
		svc,
		nil,
		metrics.NewHTTPMetrics(reg),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
	return router, sessions
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.Code, path)
		assert.NotEmpty(t, resp.Header().Get("X-Request-Id"), path)
	}
}

func TestCatalogRoutes(t *testing.T) {
	router := newTestRouter(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/api/v1/home", http.StatusOK},
		{"/api/v1/categories", http.StatusOK},
		{"/api/v1/categories/home", http.StatusOK},
		{"/api/v1/categories/unknown", http.StatusNotFound},
		{"/api/v1/products?sort=rating", http.StatusOK},
		{"/api/v1/products/3", http.StatusOK},
		{"/api/v1/products/300", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, resp.Code, tt.path)
	}
}

func TestCartSessionRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	cookies := resp.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"11","quantity":2}`))
	add.AddCookie(session)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	require.Equal(t, http.StatusCreated, resp.Code)

	fetch := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	fetch.AddCookie(session)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, fetch)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"product_id":"11"`)
	assert.Equal(t, session.Value, resp.Header().Get(middleware.SessionHeader))

	fresh := httptest.NewRecorder()
	router.ServeHTTP(fresh, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	assert.NotContains(t, fresh.Body.String(), `"product_id":"11"`)
}

func TestCookielessCartFetchesHoldNoEngines(t *testing.T) {
	router, sessions := newTestRouterWithSessions(t)

	for i := 0; i < 200; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
		require.Equal(t, http.StatusOK, resp.Code)
	}
	assert.Zero(t, sessions.Len())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"11"}`)))
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, 1, sessions.Len())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `route="/api/v1/products/{productId}"`)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, "http://localhost:5173", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))
}
