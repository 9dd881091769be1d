package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const trusted = "http://localhost:5173"

func newHandler(called *bool) http.Handler {
	return New(DefaultConfig(trusted)).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}))
}

func TestTrustedOriginGetsHeaders(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/budget", nil)
	req.Header.Set("Origin", trusted)
	rec := httptest.NewRecorder()

	newHandler(&called).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, trusted, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestOtherOriginGetsNothing(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/budget", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()

	newHandler(&called).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNoOriginPassesThrough(t *testing.T) {
	var called bool
	rec := httptest.NewRecorder()

	newHandler(&called).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/budget", nil))

	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("Vary"))
}

func TestPreflight(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodOptions, "/api/budget/1", nil)
	req.Header.Set("Origin", trusted)
	req.Header.Set("Access-Control-Request-Method", "PUT")
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-custom")
	rec := httptest.NewRecorder()

	newHandler(&called).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trusted, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Equal(t, "content-type, x-custom", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestPreflightFromOtherOrigin(t *testing.T) {
	var called bool
	req := httptest.NewRequest(http.MethodOptions, "/api/budget/1", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rec := httptest.NewRecorder()

	newHandler(&called).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"detail":"Disallowed CORS origin"}`, rec.Body.String())
}
