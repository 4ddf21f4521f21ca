package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"workskill/internal/pkg/jwt"
	ucauth "workskill/internal/usecase/auth"
)

func TestAuth_SignupLoginAuthenticate(t *testing.T) {
	students := newFakeStudents()
	profiles := newFakeProfiles()
	uc := NewAuthUsecase(students, profiles, jwt.NewHMACService("secret", time.Hour))
	ctx := context.Background()

	created, err := uc.Signup(ctx, ucauth.SignupInput{FirstName: "Ana", LastName: "Silva", Email: " Ana@Example.com ", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Email != "ana@example.com" || created.PasswordHash != "" {
		t.Fatalf("unexpected created student %+v", created)
	}
	if _, ok := profiles.byUser[created.ID.Hex()]; !ok {
		t.Fatalf("expected default profile to be created")
	}

	st, token, err := uc.Login(ctx, ucauth.LoginInput{Email: "ana@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token == "" || st.ID != created.ID {
		t.Fatalf("unexpected login result %+v %q", st, token)
	}

	claims, err := uc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != created.ID.Hex() || claims.Role != "employee" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := uc.Authenticate(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := uc.Authenticate(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "ana@example.com", Password: "wrong-pass"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

type expiredJWT struct{ jwt.Service }

func (expiredJWT) ValidateToken(string) (jwt.Claims, error) { return jwt.Claims{}, jwt.ErrTokenExpired }

func TestAuth_AuthenticateExpired(t *testing.T) {
	uc := NewAuthUsecase(newFakeStudents(), newFakeProfiles(), expiredJWT{})
	if _, err := uc.Authenticate(context.Background(), "stale-token"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
