package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workskill/internal/domain/student"
	ucauth "workskill/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authApp(uc *fakeAuth) *fiber.App {
	h := NewAuthHandler(uc, "jwt", time.Hour, false)
	return newTestApp(func(r fiber.Router) { h.RegisterRoutes(r.Group("/api/auth")) })
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_LoginSetsCookie(t *testing.T) {
	uc := &fakeAuth{
		student: student.Student{ID: primitive.NewObjectID(), Email: "a@b.co", Role: student.RoleEmployee, FirstName: "Ada"},
		token:   "signed-token",
	}
	app := authApp(uc)

	res, body := send(t, app, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@b.co","password":"secret123"}`))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(string(body.Data), `"token":"signed-token"`) {
		t.Fatalf("expected token in body, got %s", body.Data)
	}

	var found *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "jwt" {
			found = c
		}
	}
	if found == nil {
		t.Fatalf("expected jwt cookie")
	}
	if found.Value != "signed-token" || !found.HttpOnly || found.Path != "/" {
		t.Fatalf("unexpected cookie %+v", found)
	}
	if found.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", found.SameSite)
	}
}

func TestAuthHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		uc   *fakeAuth
		path string
		want int
	}{
		{name: "duplicate email", uc: &fakeAuth{signupErr: ucauth.ErrEmailAlreadyRegistered}, path: "/api/auth/signup", want: fiber.StatusConflict},
		{name: "invalid signup", uc: &fakeAuth{signupErr: ucauth.ErrInvalidInput}, path: "/api/auth/signup", want: fiber.StatusBadRequest},
		{name: "bad credentials", uc: &fakeAuth{loginErr: ucauth.ErrInvalidCredentials}, path: "/api/auth/login", want: fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := send(t, authApp(tc.uc), jsonRequest(http.MethodPost, tc.path, `{"email":"a@b.co","password":"x"}`))
			if res.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.StatusCode)
			}
		})
	}
}

func TestAuthHandler_SignupCreated(t *testing.T) {
	app := authApp(&fakeAuth{student: student.Student{ID: primitive.NewObjectID(), Role: student.RoleHR}})

	res, body := send(t, app, jsonRequest(http.MethodPost, "/api/auth/signup", `{"firstName":"A","lastName":"B","email":"a@b.co","password":"secret123","role":"hr"}`))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if strings.Contains(string(body.Data), "password") {
		t.Fatalf("password must not be returned: %s", body.Data)
	}
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	res, _ := send(t, authApp(&fakeAuth{}), httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(res.Header.Get("Set-Cookie"), "jwt=") {
		t.Fatalf("expected jwt cookie to be cleared, got %q", res.Header.Get("Set-Cookie"))
	}
}
