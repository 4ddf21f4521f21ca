package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workskill/internal/domain/profile"
	"workskill/internal/domain/skill"
	"workskill/internal/repository"
)

type ProfileSkillGapData struct {
	Profile   profile.Profile   `json:"profile"`
	Skills    []skill.UserSkill `json:"skills"`
	Analytics SkillAnalytics    `json:"analytics"`
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
	Update(ctx context.Context, userID string, in profile.Update) (profile.Profile, error)
	SkillGapData(ctx context.Context, userID string) (ProfileSkillGapData, error)
}

type Profiles struct {
	profiles repository.ProfileRepository
	students repository.StudentRepository
	skills   UserSkillUsecase
	logger   *log.Logger
	now      func() time.Time
}

func NewProfileUsecase(profiles repository.ProfileRepository, students repository.StudentRepository, skills UserSkillUsecase, logger *log.Logger) *Profiles {
	return &Profiles{
		profiles: profiles,
		students: students,
		skills:   skills,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Profiles) Get(ctx context.Context, userID string) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, ErrInvalidInput
	}
	return loadOrCreateProfile(ctx, u.profiles, u.students, userID, u.now().UTC())
}

func (u *Profiles) Update(ctx context.Context, userID string, in profile.Update) (profile.Profile, error) {
	p, err := u.Get(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	skillsChanged := p.Apply(in)
	p.UpdatedAt = u.now().UTC()
	saved, err := u.profiles.Save(ctx, p)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}

	if skillsChanged && u.skills != nil {
		names := make([]string, 0, len(saved.TechnicalSkills)+len(saved.SoftSkills))
		names = append(names, saved.TechnicalSkills...)
		names = append(names, saved.SoftSkills...)
		if _, err := u.skills.SyncSkills(ctx, saved.UserID, names); err != nil {
			u.logf("[Profile] skill sync failed user=%s err=%v", saved.UserID, err)
		}
	}
	return saved, nil
}

func (u *Profiles) SkillGapData(ctx context.Context, userID string) (ProfileSkillGapData, error) {
	p, err := u.Get(ctx, userID)
	if err != nil {
		return ProfileSkillGapData{}, err
	}
	items := []skill.UserSkill{}
	if u.skills != nil {
		items, err = u.skills.ListUserSkills(ctx, p.UserID)
		if err != nil {
			return ProfileSkillGapData{}, err
		}
	}
	return ProfileSkillGapData{
		Profile:   p,
		Skills:    items,
		Analytics: BuildSkillAnalytics(items),
	}, nil
}

func (u *Profiles) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

// loadOrCreateProfile returns the stored profile, creating a default one from
// the student record on first access.
func loadOrCreateProfile(ctx context.Context, profiles repository.ProfileRepository, students repository.StudentRepository, userID string, now time.Time) (profile.Profile, error) {
	p, err := profiles.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return profile.Profile{}, ErrInternal
	}

	st, err := students.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return profile.Profile{}, ErrUserNotFound
		}
		return profile.Profile{}, ErrInternal
	}

	created, err := profiles.Save(ctx, profile.Profile{
		UserID:               userID,
		FullName:             st.FullName(),
		Email:                st.Email,
		TechnicalSkills:      []string{},
		SoftSkills:           []string{},
		Languages:            []string{},
		Education:            []profile.Education{},
		Experience:           []profile.Experience{},
		Certifications:       []profile.Certification{},
		Projects:             []profile.Project{},
		ResumeHistory:        []profile.ResumeHistory{},
		IsPublic:             true,
		SeekingOpportunities: true,
		PreferredRoles:       []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return profiles.GetByUserID(ctx, userID)
		}
		return profile.Profile{}, ErrInternal
	}
	return created, nil
}
