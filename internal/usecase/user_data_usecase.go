package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workskill/internal/domain/profile"
	"workskill/internal/domain/skill"
	"workskill/internal/domain/student"
	"workskill/internal/repository"
)

type ProfileSnapshot struct {
	FirstName         string               `json:"firstName"`
	LastName          string               `json:"lastName"`
	Email             string               `json:"email"`
	CurrentJobRole    string               `json:"currentJobRole"`
	YearsOfExperience int                  `json:"yearsOfExperience"`
	Summary           string               `json:"summary"`
	Skills            []string             `json:"skills"`
	Certifications    []string             `json:"certifications"`
	Education         []profile.Education  `json:"education"`
	Experience        []profile.Experience `json:"experience"`
	TotalExperience   string               `json:"totalExperience"`
}

type SkillSnapshot struct {
	Name             string `json:"name"`
	Proficiency      int    `json:"proficiency"`
	Level            string `json:"level"`
	Verified         bool   `json:"verified"`
	Confidence       string `json:"confidence"`
	ExperienceMonths int    `json:"experienceMonths"`
	Category         string `json:"category"`
}

type SkillGapData struct {
	UserID  string          `json:"userId"`
	Profile ProfileSnapshot `json:"profile"`
	Skills  []SkillSnapshot `json:"skills"`
}

type UserDataUsecase interface {
	SkillGapData(ctx context.Context, userID string) (SkillGapData, error)
}

type UserData struct {
	students repository.StudentRepository
	profiles repository.ProfileRepository
	skills   repository.UserSkillRepository
}

func NewUserDataUsecase(students repository.StudentRepository, profiles repository.ProfileRepository, skills repository.UserSkillRepository) *UserData {
	return &UserData{students: students, profiles: profiles, skills: skills}
}

// SkillGapData assembles the profile and skill view sent to the ML service.
// Profile documents take precedence over the student record when both carry
// a value.
func (u *UserData) SkillGapData(ctx context.Context, userID string) (SkillGapData, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return SkillGapData{}, ErrInvalidInput
	}

	st, err := u.students.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return SkillGapData{}, ErrUserNotFound
		}
		return SkillGapData{}, ErrInternal
	}

	var p *profile.Profile
	if got, err := u.profiles.GetByUserID(ctx, userID); err == nil {
		p = &got
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return SkillGapData{}, ErrInternal
	}

	items, err := u.skills.FindByUserID(ctx, userID)
	if err != nil {
		return SkillGapData{}, ErrInternal
	}

	return SkillGapData{
		UserID:  userID,
		Profile: buildProfileSnapshot(st, p),
		Skills:  buildSkillSnapshots(items),
	}, nil
}

func buildProfileSnapshot(st student.Student, p *profile.Profile) ProfileSnapshot {
	out := ProfileSnapshot{
		FirstName:         st.FirstName,
		LastName:          st.LastName,
		Email:             st.Email,
		CurrentJobRole:    st.CurrentJobRole,
		YearsOfExperience: st.YearsOfExperience,
		Summary:           st.Summary,
		Skills:            mergeNames(st.Skills, nil),
		Certifications:    mergeNames(st.Certifications, nil),
		Education:         nonNilEducation(st.Education),
		Experience:        nonNilExperience(st.Experience),
		TotalExperience:   fmt.Sprintf("%d years", st.YearsOfExperience),
	}
	if p == nil {
		return out
	}

	if s := strings.TrimSpace(p.Summary); s != "" {
		out.Summary = s
	}
	if out.CurrentJobRole == "" {
		out.CurrentJobRole = p.Title
	}
	if t := strings.TrimSpace(p.TotalExperience); t != "" {
		out.TotalExperience = t
	}
	out.Skills = mergeNames(out.Skills, p.TechnicalSkills)

	certs := make([]string, 0, len(p.Certifications))
	for _, c := range p.Certifications {
		certs = append(certs, c.Name)
	}
	out.Certifications = mergeNames(out.Certifications, certs)

	if len(p.Education) > 0 {
		out.Education = p.Education
	}
	if len(p.Experience) > 0 {
		out.Experience = p.Experience
	}
	return out
}

func buildSkillSnapshots(items []skill.UserSkill) []SkillSnapshot {
	out := make([]SkillSnapshot, 0, len(items))
	for _, s := range items {
		out = append(out, SkillSnapshot{
			Name:             s.Name,
			Proficiency:      s.Proficiency,
			Level:            s.Level,
			Verified:         s.Verified,
			Confidence:       s.ConfidenceLevel,
			ExperienceMonths: s.ExperienceMonths,
			Category:         s.Category,
		})
	}
	return out
}

// mergeNames appends b to a, skipping blanks and case-insensitive duplicates.
func mergeNames(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			k := strings.ToLower(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func nonNilEducation(v []profile.Education) []profile.Education {
	if v == nil {
		return []profile.Education{}
	}
	return v
}

func nonNilExperience(v []profile.Experience) []profile.Experience {
	if v == nil {
		return []profile.Experience{}
	}
	return v
}
