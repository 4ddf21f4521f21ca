package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"workskill/internal/domain/profile"
	"workskill/internal/domain/student"
	"workskill/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	students repository.StudentRepository
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewService(students repository.StudentRepository, profiles repository.ProfileRepository) *Service {
	return &Service{students: students, profiles: profiles, now: time.Now}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (student.Student, error) {
	email := normalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if email == "" || first == "" || !strings.Contains(email, "@") {
		return student.Student{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return student.Student{}, ErrInvalidInput
	}
	role, ok := normalizeRole(in.Role)
	if !ok {
		return student.Student{}, ErrInvalidInput
	}

	exists, err := s.students.ExistsByEmail(ctx, email)
	if err != nil {
		return student.Student{}, ErrInternal
	}
	if exists {
		return student.Student{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return student.Student{}, ErrInternal
	}

	now := s.now().UTC()
	created, err := s.students.Create(ctx, student.Student{
		FirstName:       first,
		LastName:        last,
		Email:           email,
		Role:            role,
		PasswordHash:    string(hash),
		Skills:          []string{},
		Certifications:  []string{},
		Education:       []profile.Education{},
		Experience:      []profile.Experience{},
		EnrolledCourses: []string{},
		ResumeHistory:   []profile.ResumeHistory{},
		IsActive:        true,
		CreatedAt:       now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return student.Student{}, ErrEmailAlreadyRegistered
		}
		return student.Student{}, ErrInternal
	}

	if s.profiles != nil {
		_, err := s.profiles.Save(ctx, profile.Profile{
			UserID:               created.ID.Hex(),
			FullName:             created.FullName(),
			Email:                created.Email,
			TechnicalSkills:      []string{},
			SoftSkills:           []string{},
			Languages:            []string{},
			Education:            []profile.Education{},
			Experience:           []profile.Experience{},
			Certifications:       []profile.Certification{},
			Projects:             []profile.Project{},
			ResumeHistory:        []profile.ResumeHistory{},
			PreferredRoles:       []string{},
			IsPublic:             true,
			SeekingOpportunities: true,
		})
		if err != nil {
			return student.Student{}, ErrInternal
		}
	}

	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (student.Student, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return student.Student{}, ErrInvalidCredentials
	}

	st, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return student.Student{}, ErrInvalidCredentials
		}
		return student.Student{}, ErrInternal
	}
	if !st.IsActive {
		return student.Student{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(in.Password)); err != nil {
		return student.Student{}, ErrInvalidCredentials
	}

	_ = s.students.TouchLastLogin(ctx, st.ID.Hex(), s.now())
	return sanitize(st), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", student.RoleEmployee:
		return student.RoleEmployee, true
	case student.RoleHR:
		return student.RoleHR, true
	default:
		return "", false
	}
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitize(s student.Student) student.Student {
	s.PasswordHash = ""
	return s
}
