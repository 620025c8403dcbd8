package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
)

func run(t *testing.T, mw echo.MiddlewareFunc, headers map[string]string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := mw(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec, nextCalled
}

func TestIdentityMiddleware(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    int
		allowed bool
	}{
		{"missing identity", nil, http.StatusUnauthorized, false},
		{"missing type", map[string]string{"ERIC-Identity": "user-1"}, http.StatusUnauthorized, false},
		{"bad type", map[string]string{"ERIC-Identity": "user-1", "ERIC-Identity-Type": "session"}, http.StatusUnauthorized, false},
		{"key identity", map[string]string{"ERIC-Identity": "user-1", "ERIC-Identity-Type": "key"}, http.StatusOK, true},
		{"oauth2 identity", map[string]string{"ERIC-Identity": "user-1", "ERIC-Identity-Type": "OAuth2"}, http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, allowed := run(t, IdentityMiddleware(), tc.headers)
			if rec.Code != tc.want || allowed != tc.allowed {
				t.Fatalf("status = %d allowed = %v, want %d %v", rec.Code, allowed, tc.want, tc.allowed)
			}
		})
	}
}

func TestKeyPrivilegeMiddleware(t *testing.T) {
	rec, allowed := run(t, KeyPrivilegeMiddleware(), map[string]string{"ERIC-Authorised-Key-Privileges": "*"})
	if rec.Code != http.StatusOK || !allowed {
		t.Fatalf("wildcard privilege rejected: %d", rec.Code)
	}

	rec, allowed = run(t, KeyPrivilegeMiddleware(), map[string]string{"ERIC-Authorised-Key-Privileges": "read"})
	if rec.Code != http.StatusForbidden || allowed {
		t.Fatalf("non-wildcard privilege allowed: %d", rec.Code)
	}

	rec, allowed = run(t, KeyPrivilegeMiddleware(), nil)
	if rec.Code != http.StatusForbidden || allowed {
		t.Fatalf("missing privilege allowed: %d", rec.Code)
	}
}
