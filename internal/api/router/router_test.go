package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"hooplog/backend/config"
	"hooplog/backend/internal/api/handler"
	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{BodyLimitBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:       "router-test-secret-0123456789",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		},
		Storage:   config.StorageConfig{Driver: "local", LocalDir: t.TempDir()},
		RateLimit: config.RateLimitConfig{AuthLimit: 5, AuthWindow: time.Minute},
	}
	h := handler.NewHandler(&service.Service{})
	return Setup(cfg, h, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
}

func TestSetup_Health(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSetup_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/sessions/prebuilt"},
		{http.MethodGet, "/api/v1/sessions/mylist/export"},
		{http.MethodPost, "/api/v1/sessions/reset-progress"},
		{http.MethodPost, "/api/v1/sessions/3/subscribe"},
		{http.MethodPut, "/api/v1/settings"},
		{http.MethodGet, "/api/v1/quote/random"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
	}
}
