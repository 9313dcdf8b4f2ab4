package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/internal/platform/auth"
)

func testHandler(t *testing.T) (*Handler, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	issuer := auth.NewTokenIssuer("test-secret-key-for-handler-tests-012345", time.Hour)
	return NewHandler(NewService(repo), issuer), repo
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestHandleSignup(t *testing.T) {
	h, _ := testHandler(t)

	rec := doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Alice","email":"alice@example.com","password":"secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			UserID int    `json:"userId"`
			Name   string `json:"name"`
			Email  string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !resp.Success || resp.Message != "User registered successfully" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if resp.Data.UserID < 10000 || resp.Data.UserID > 99999 {
		t.Errorf("expected 5-digit id, got %d", resp.Data.UserID)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not leak password fields")
	}
}

func TestHandleSignup_MissingFields(t *testing.T) {
	h, _ := testHandler(t)
	rec := doJSON(t, h.handleSignup, http.MethodPost, "/signup", `{"name":"Alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSignup_DuplicateEmail(t *testing.T) {
	h, _ := testHandler(t)
	doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Alice","email":"a@b.com","password":"secret"}`)
	rec := doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Other","email":"a@b.com","password":"secret"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleLogin(t *testing.T) {
	h, _ := testHandler(t)
	doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Alice","email":"a@b.com","password":"secret"}`)

	rec := doJSON(t, h.handleLogin, http.MethodPost, "/login",
		`{"email":"a@b.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			UserID int    `json:"userId"`
			Token  string `json:"token"`
			Role   string `json:"role"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Data.Token == "" {
		t.Error("expected session token in login response")
	}
	if resp.Data.Role != RolePatient {
		t.Errorf("expected patient role, got %s", resp.Data.Role)
	}
}

func TestHandleLogin_Failures(t *testing.T) {
	h, _ := testHandler(t)
	doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Alice","email":"a@b.com","password":"secret"}`)

	rec := doJSON(t, h.handleLogin, http.MethodPost, "/login",
		`{"email":"nobody@b.com","password":"secret"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown email: expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, h.handleLogin, http.MethodPost, "/login",
		`{"email":"a@b.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: expected 401, got %d", rec.Code)
	}
}

func TestHandleProfileSetup(t *testing.T) {
	h, repo := testHandler(t)
	doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Alice","email":"a@b.com","password":"secret"}`)

	rec := doJSON(t, h.handleProfileSetup, http.MethodPost, "/profile-setup",
		`{"email":"a@b.com","location":"Mumbai","age":30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	u, err := repo.GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Profile.Location != "Mumbai" || u.Profile.Age != 30 {
		t.Errorf("profile not stored: %+v", u.Profile)
	}

	rec = doJSON(t, h.handleProfileSetup, http.MethodPost, "/profile-setup",
		`{"email":"nobody@b.com","location":"Pune","age":25}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown email, got %d", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	h, _ := testHandler(t)
	doJSON(t, h.handleSignup, http.MethodPost, "/signup",
		`{"name":"Alice Smith","email":"alice@b.com","password":"secret"}`)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/doctor/search?name=smith", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.handleSearch(c); err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Email != "alice@b.com" {
		t.Errorf("unexpected result: %+v", resp.Data)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("search result must exclude password material")
	}

	// no criteria
	req = httptest.NewRequest(http.MethodGet, "/api/doctor/search", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := h.handleSearch(c); err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without criteria, got %d", rec.Code)
	}

	// bad userId
	req = httptest.NewRequest(http.MethodGet, "/api/doctor/search?userId=abc", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := h.handleSearch(c); err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric userId, got %d", rec.Code)
	}
}
