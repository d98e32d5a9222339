package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newServer(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/health", ok)
	e.POST("/api/imports", ok)
	return e
}

func do(e *echo.Echo, method, path string, set func(*http.Request)) int {
	req := httptest.NewRequest(method, path, nil)
	if set != nil {
		set(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestBasicAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "basic")
	t.Setenv("API_USER", "admin")
	t.Setenv("API_PASS", "secret")
	e := newServer(Middleware())

	if code := do(e, http.MethodPost, "/api/imports", nil); code != http.StatusUnauthorized {
		t.Errorf("no credentials: status = %d, want 401", code)
	}
	if code := do(e, http.MethodPost, "/api/imports", func(r *http.Request) { r.SetBasicAuth("admin", "wrong") }); code != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", code)
	}
	if code := do(e, http.MethodPost, "/api/imports", func(r *http.Request) { r.SetBasicAuth("admin", "secret") }); code != http.StatusOK {
		t.Errorf("valid credentials: status = %d, want 200", code)
	}
	if code := do(e, http.MethodGet, "/health", nil); code != http.StatusOK {
		t.Errorf("skipped path: status = %d, want 200", code)
	}
}

func TestKeyAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "key")
	t.Setenv("API_KEY", "k-123")
	e := newServer(Middleware())

	if code := do(e, http.MethodPost, "/api/imports", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }); code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", code)
	}
	if code := do(e, http.MethodPost, "/api/imports", func(r *http.Request) { r.Header.Set("Authorization", "Bearer k-123") }); code != http.StatusOK {
		t.Errorf("valid key: status = %d, want 200", code)
	}
}
