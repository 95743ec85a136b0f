package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-management/internal/utils"
)

const testSecret = "middleware-test-secret"

func runGate(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var passed echo.Context
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		passed = c
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, passed
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, passed := runGate(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["message"] != "Token required" {
		t.Errorf("unexpected body: %v", body)
	}
	if passed != nil {
		t.Error("next handler ran without a token")
	}
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	// Token present but not in Bearer form counts as missing.
	rec, _ := runGate(t, "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, passed := runGate(t, "Bearer not.a.token")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Invalid token" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if passed != nil {
		t.Error("next handler ran with a garbage token")
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("a-different-secret", 1, "u", "admin", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec, _ := runGate(t, "Bearer "+at.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 1, "u", "admin", -1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec, _ := runGate(t, "Bearer "+at.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", rec.Code)
	}
}

func TestJWTAuthValidTokenSetsContext(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "d1", "dietitian", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rec, passed := runGate(t, "Bearer "+at.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if passed == nil {
		t.Fatal("next handler did not run")
	}
	if sub, ok := passed.Get("user_id").(float64); !ok || uint64(sub) != 42 {
		t.Errorf("user_id: got %v", passed.Get("user_id"))
	}
	if passed.Get("username") != "d1" {
		t.Errorf("username: got %v", passed.Get("username"))
	}
	if passed.Get("role") != "dietitian" {
		t.Errorf("role: got %v", passed.Get("role"))
	}
}
