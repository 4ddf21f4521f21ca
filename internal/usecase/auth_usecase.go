package usecase

import (
	"context"
	"errors"

	"workskill/internal/domain/student"
	"workskill/internal/pkg/jwt"
	"workskill/internal/repository"
	ucauth "workskill/internal/usecase/auth"
)

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (student.Student, error)
	Login(ctx context.Context, in ucauth.LoginInput) (student.Student, string, error)
	Authenticate(ctx context.Context, token string) (jwt.Claims, error)
}

type Auth struct {
	authSvc *ucauth.Service
	jwt     jwt.Service
}

func NewAuthUsecase(students repository.StudentRepository, profiles repository.ProfileRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(students, profiles), jwt: jwtSvc}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (student.Student, error) {
	return u.authSvc.Signup(ctx, in)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (student.Student, string, error) {
	st, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return student.Student{}, "", err
	}

	token, err := u.jwt.GenerateToken(st.ID.Hex(), st.Email, st.Role)
	if err != nil {
		return student.Student{}, "", ErrInternal
	}
	return st, token, nil
}

func (u *Auth) Authenticate(_ context.Context, token string) (jwt.Claims, error) {
	if token == "" {
		return jwt.Claims{}, ErrUnauthorized
	}
	claims, err := u.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Claims{}, ErrTokenExpired
		}
		return jwt.Claims{}, ErrUnauthorized
	}
	return claims, nil
}
