package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// decodeEnvelope unpacks the standard response envelope from a recorder.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (success bool, message string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
	return body.Success, body.Message
}

const testSecret = "test-secret-key-for-auth-tests-0123456789"

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	signed, err := issuer.Issue(12345, "Jane Roe", "jane@example.com", "doctor")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 12345 {
		t.Errorf("expected user_id 12345, got %d", claims.UserID)
	}
	if claims.Role != "doctor" {
		t.Errorf("expected role doctor, got %s", claims.Role)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("expected email jane@example.com, got %s", claims.Email)
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	signed, err := issuer.Issue(10001, "Old Session", "old@example.com", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer("another-secret-entirely-abcdefghij", time.Hour)

	signed, err := issuer.Issue(10001, "Name", "a@b.com", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Verify(signed); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestMiddleware_PopulatesContext(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	signed, err := issuer.Issue(54321, "Doc", "doc@example.com", "doctor")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != 54321 {
			t.Errorf("expected user id 54321, got %d", got)
		}
		if got := RoleFromContext(ctx); got != "doctor" {
			t.Errorf("expected role doctor, got %s", got)
		}
		return c.NoContent(http.StatusOK)
	}

	if err := Middleware(issuer)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_PassesThroughAnonymous(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		if got := UserIDFromContext(c.Request().Context()); got != 0 {
			t.Errorf("expected no user id, got %d", got)
		}
		return c.NoContent(http.StatusOK)
	}

	if err := Middleware(issuer)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMiddleware_RejectsGarbageToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	if err := Middleware(issuer)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if success, _ := decodeEnvelope(t, rec); success {
		t.Error("expected success false on rejected token")
	}
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	run := func(role string, guard echo.MiddlewareFunc) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if role != "" {
			signed, err := issuer.Issue(10001, "N", "n@e.com", role)
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			req.Header.Set("Authorization", "Bearer "+signed)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		handler := func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}
		if err := Middleware(issuer)(guard(handler))(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec
	}

	if rec := run("doctor", RequireRole("doctor")); rec.Code != http.StatusOK {
		t.Errorf("doctor should pass doctor guard, got %d", rec.Code)
	}

	if rec := run("user", RequireRole("doctor")); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for user on doctor guard, got %d", rec.Code)
	}

	if rec := run("", RequireRole("doctor")); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous on doctor guard, got %d", rec.Code)
	}
}

// Guard rejections go to clients that read every response through the
// standard envelope, so 401 and 403 must carry the success flag like any
// other failure.
func TestRequireRole_RejectionsCarryEnvelope(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/doctor/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := RequireRole("doctor")(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	success, message := decodeEnvelope(t, rec)
	if success {
		t.Error("expected success false on anonymous rejection")
	}
	if message != "authentication required" {
		t.Errorf("unexpected message %q", message)
	}

	signed, err := issuer.Issue(10001, "N", "n@e.com", "patient")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/doctor/search", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := Middleware(issuer)(RequireRole("doctor")(handler))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if success, _ := decodeEnvelope(t, rec); success {
		t.Error("expected success false on role rejection")
	}
}
