package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workskill/internal/pkg/jwt"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type envelope struct {
	Success bool           `json:"success"`
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func newTestApp(t *testing.T, svc jwt.Service) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())

	auth := NewAuthMiddleware(usecase.NewAuthUsecase(nil, nil, svc), "jwt")
	app.Get("/me", auth.Middleware(), func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"userId": UserID(c), "role": Role(c)}})
	})
	app.Get("/user/:userId", auth.Middleware(), RequireSelfOrHR("userId"), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable+1, "leak", nil, nil)
	})
	app.Get("/upstream", func(c fiber.Ctx) error {
		return NewUpstreamError("ml down", nil)
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var body envelope
	_ = json.NewDecoder(res.Body).Decode(&body)
	return res, body
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	app := newTestApp(t, jwt.NewHMACService("secret", time.Hour))

	res, body := do(t, app, httptest.NewRequest(http.MethodGet, "/me", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if body.Success {
		t.Fatalf("expected failure envelope")
	}
}

func TestAuthMiddleware_CookieAndBearer(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	app := newTestApp(t, svc)

	tok, err := svc.GenerateToken("u1", "a@b.co", "employee")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: tok})
	res, body := do(t, app, req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d", res.StatusCode)
	}
	if body.Data["userId"] != "u1" || body.Data["role"] != "employee" {
		t.Fatalf("unexpected locals %+v", body.Data)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, _ = do(t, app, req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with bearer, got %d", res.StatusCode)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newTestApp(t, jwt.NewHMACService("secret", time.Hour))

	other, err := jwt.NewHMACService("other", time.Hour).GenerateToken("u1", "a@b.co", "employee")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	res, body := do(t, app, req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	if body.Message != "Invalid token" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestRequireSelfOrHR(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	app := newTestApp(t, svc)

	cases := []struct {
		name   string
		userID string
		role   string
		target string
		want   int
	}{
		{name: "self", userID: "u1", role: "employee", target: "u1", want: fiber.StatusNoContent},
		{name: "other employee", userID: "u1", role: "employee", target: "u2", want: fiber.StatusForbidden},
		{name: "hr", userID: "h1", role: "hr", target: "u2", want: fiber.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := svc.GenerateToken(tc.userID, "x@y.co", tc.role)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/user/"+tc.target, nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			res, _ := do(t, app, req)
			if res.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.StatusCode)
			}
		})
	}
}

func TestErrorMiddleware_MasksServerErrors(t *testing.T) {
	app := newTestApp(t, jwt.NewHMACService("secret", time.Hour))

	res, body := do(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	if body.Message == "leak" {
		t.Fatalf("expected masked message")
	}

	res, body = do(t, app, httptest.NewRequest(http.MethodGet, "/upstream", nil))
	if res.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.StatusCode)
	}
	if body.Message != "ml down" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}
