package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"workskill/internal/domain/profile"
	"workskill/internal/domain/student"
	"workskill/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStudents struct {
	items   []student.Student
	touched int
}

func (m *memStudents) Create(_ context.Context, s student.Student) (student.Student, error) {
	s.ID = primitive.NewObjectID()
	m.items = append(m.items, s)
	return s, nil
}

func (m *memStudents) GetByID(_ context.Context, id string) (student.Student, error) {
	for _, s := range m.items {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return student.Student{}, repository.ErrStudentNotFound
}

func (m *memStudents) GetByEmail(_ context.Context, email string) (student.Student, error) {
	for _, s := range m.items {
		if s.Email == email {
			return s, nil
		}
	}
	return student.Student{}, repository.ErrStudentNotFound
}

func (m *memStudents) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memStudents) TouchLastLogin(context.Context, string, time.Time) error {
	m.touched++
	return nil
}

type memProfiles struct {
	saved []profile.Profile
}

func (m *memProfiles) GetByUserID(context.Context, string) (profile.Profile, error) {
	return profile.Profile{}, repository.ErrProfileNotFound
}

func (m *memProfiles) Save(_ context.Context, p profile.Profile) (profile.Profile, error) {
	m.saved = append(m.saved, p)
	return p, nil
}

func TestSignup_Validation(t *testing.T) {
	svc := NewService(&memStudents{}, &memProfiles{})

	tests := []struct {
		name string
		in   SignupInput
		want error
	}{
		{"missing email", SignupInput{FirstName: "A", Password: "password1"}, ErrInvalidInput},
		{"email without at", SignupInput{FirstName: "A", Email: "nope", Password: "password1"}, ErrInvalidInput},
		{"missing first name", SignupInput{Email: "a@b.c", Password: "password1"}, ErrInvalidInput},
		{"short password", SignupInput{FirstName: "A", Email: "a@b.c", Password: "short"}, ErrInvalidInput},
		{"unknown role", SignupInput{FirstName: "A", Email: "a@b.c", Password: "password1", Role: "admin"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Signup(context.Background(), tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSignup_CreatesStudentAndProfile(t *testing.T) {
	students := &memStudents{}
	profiles := &memProfiles{}
	svc := NewService(students, profiles)

	st, err := svc.Signup(context.Background(), SignupInput{FirstName: " Ana ", LastName: "Silva", Email: "ANA@example.com", Password: "password1", Role: "HR"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.Role != student.RoleHR || !st.IsActive || st.PasswordHash != "" || st.FirstName != "Ana" {
		t.Fatalf("unexpected student %+v", st)
	}
	if !strings.HasPrefix(students.items[0].PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash to be stored")
	}
	if len(profiles.saved) != 1 || profiles.saved[0].FullName != "Ana Silva" || !profiles.saved[0].IsPublic {
		t.Fatalf("unexpected profile %+v", profiles.saved)
	}

	if _, err := svc.Signup(context.Background(), SignupInput{FirstName: "B", Email: "ana@example.com", Password: "password2"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	students := &memStudents{}
	svc := NewService(students, nil)
	if _, err := svc.Signup(context.Background(), SignupInput{FirstName: "Ana", Email: "ana@example.com", Password: "password1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	st, err := svc.Login(context.Background(), LoginInput{Email: " ANA@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.Role != student.RoleEmployee || students.touched != 1 {
		t.Fatalf("unexpected login %+v touched=%d", st, students.touched)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "password2"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "who@example.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	students.items[0].IsActive = false
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}
