package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ukk/facility-booking-backend/internal/auth"
)

func newTestRouter(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if cfg.JWTManager == nil {
		cfg.JWTManager = auth.NewJWTManager("secret", time.Hour)
	}
	return NewRouter(cfg)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(Config{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	r = newTestRouter(Config{HealthCheck: func(*gin.Context) error { return errors.New("db down") }})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(Config{})
	for _, path := range []string{"/v1/me", "/v1/reservations", "/v1/dashboard", "/v1/reports", "/v1/users"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(Config{IsProduction: true, ProdOrigins: "https://app.example.com, https://admin.example.com"})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/v1/stats", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://admin.example.com")
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
