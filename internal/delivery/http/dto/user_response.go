package dto

import (
	"time"

	"workskill/internal/domain/student"
)

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StudentResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CurrentJobRole string    `json:"currentJobRole,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewStudentResponse(s student.Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID.Hex(),
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Role:           s.Role,
		CurrentJobRole: s.CurrentJobRole,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

func NewLoginResponse(s student.Student, token string) LoginResponse {
	return LoginResponse{
		Token:     token,
		UserID:    s.ID.Hex(),
		Email:     s.Email,
		Role:      s.Role,
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}
