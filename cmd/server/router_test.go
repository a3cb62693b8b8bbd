package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerhub-backend/internal/config"
	"flyerhub-backend/internal/middleware"
	"flyerhub-backend/internal/storage"
)

const routerTestSecret = "router-test-secret"

// newTestRouter builds the production router without a database. Only
// requests that middleware rejects may be sent through it.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a := &app{
		cfg: &config.Config{
			JWTSecret:          routerTestSecret,
			AuthRateLimit:      100,
			AuthRateWindow:     time.Minute,
			UploadsURLPrefix:   "/uploads",
			CORSAllowedOrigins: []string{"*"},
		},
		backend: backend,
	}
	router, limiter := a.router()
	t.Cleanup(limiter.Stop)
	return router
}

func token(t *testing.T, claims middleware.Claims) string {
	t.Helper()
	tok, err := middleware.IssueToken(routerTestSecret, claims, time.Hour)
	require.NoError(t, err)
	return tok
}

func send(router *gin.Engine, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_AdminRegisterNeedsAdminToken(t *testing.T) {
	router := newTestRouter(t)
	customer := token(t, middleware.Claims{ID: 1, Email: "c@x.io", SocialID: "google_1"})

	assert.Equal(t, http.StatusUnauthorized, send(router, "POST", "/api/auth/register", "").Code)
	assert.Equal(t, http.StatusForbidden, send(router, "POST", "/api/auth/register", customer).Code)
}

func TestRouter_CustomerRoutesRefuseAdminTokens(t *testing.T) {
	router := newTestRouter(t)
	admin := token(t, middleware.Claims{ID: 3, Email: "a@x.io", Role: "admin"})

	for _, path := range []string{"/api/web/auth/profile", "/api/web/auth/password"} {
		assert.Equal(t, http.StatusForbidden, send(router, "PUT", path, admin).Code, path)
		assert.Equal(t, http.StatusUnauthorized, send(router, "PUT", path, "").Code, path)
	}
}

func TestRouter_AdminGuards(t *testing.T) {
	router := newTestRouter(t)
	customer := token(t, middleware.Claims{ID: 1, Email: "c@x.io", SocialID: "google_1"})

	for _, r := range []struct{ method, path string }{
		{"GET", "/api/orders"},
		{"PATCH", "/api/orders/1/status"},
		{"POST", "/api/flyers"},
		{"POST", "/api/banners/create"},
		{"POST", "/api/categories"},
		{"GET", "/api/notifications"},
		{"PATCH", "/api/notifications/read-all"},
		{"POST", "/api/order-files/1"},
		{"GET", "/api/contact"},
	} {
		assert.Equal(t, http.StatusForbidden, send(router, r.method, r.path, customer).Code, r.path)
	}
}
