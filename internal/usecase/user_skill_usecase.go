package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workskill/internal/domain/skill"
	"workskill/internal/infrastructure/cache"
	"workskill/internal/repository"
	"workskill/internal/ws"
)

type SkillAnalytics struct {
	TotalSkills          int            `json:"totalSkills"`
	VerifiedSkills       int            `json:"verifiedSkills"`
	AverageProficiency   float64        `json:"averageProficiency"`
	SkillDistribution    map[string]int `json:"skillDistribution"`
	LevelDistribution    map[string]int `json:"levelDistribution"`
	CategoryDistribution map[string]int `json:"categoryDistribution"`
}

type MLSkill struct {
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	Proficiency      int        `json:"proficiency"`
	Level            string     `json:"level"`
	Verified         bool       `json:"verified"`
	Confidence       float64    `json:"confidence"`
	ExperienceMonths int        `json:"experience_months"`
	LastVerified     *time.Time `json:"last_verified"`
}

type MLReadySkills struct {
	UserID              string    `json:"userId"`
	Skills              []MLSkill `json:"skills"`
	TotalVerifiedSkills int       `json:"totalVerifiedSkills"`
	AverageConfidence   float64   `json:"averageConfidence"`
}

type SyncResult struct {
	Message string `json:"message"`
	Synced  bool   `json:"synced"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
}

type ExamResultInput struct {
	Score  int
	Status string
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID string) ([]skill.UserSkill, error)
	Analytics(ctx context.Context, userID string) (SkillAnalytics, error)
	MLReady(ctx context.Context, userID string) (MLReadySkills, error)
	SyncFromProfile(ctx context.Context, userID string) (SyncResult, error)
	SyncSkills(ctx context.Context, userID string, names []string) (SyncResult, error)
	RecordExamResult(ctx context.Context, userID, skillID string, in ExamResultInput) (skill.UserSkill, error)
}

type UserSkill struct {
	repo     repository.UserSkillRepository
	profiles repository.ProfileRepository
	cache    Cache
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, profiles repository.ProfileRepository, c Cache, notifier Notifier, logger *log.Logger) *UserSkill {
	return &UserSkill{
		repo:     repo,
		profiles: profiles,
		cache:    c,
		notifier: notifierOrNoop(notifier),
		logger:   logger,
		now:      time.Now,
	}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID string) ([]skill.UserSkill, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []skill.UserSkill{}
	}
	return items, nil
}

func (u *UserSkill) Analytics(ctx context.Context, userID string) (SkillAnalytics, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return SkillAnalytics{}, ErrInvalidInput
	}

	key := cache.SkillAnalyticsKey(userID)
	if u.cache != nil {
		var cached SkillAnalytics
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logf("[Skills] Cache HIT: %s", key)
			return cached, nil
		}
	}

	items, err := u.ListUserSkills(ctx, userID)
	if err != nil {
		return SkillAnalytics{}, err
	}
	out := BuildSkillAnalytics(items)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func (u *UserSkill) MLReady(ctx context.Context, userID string) (MLReadySkills, error) {
	items, err := u.ListUserSkills(ctx, userID)
	if err != nil {
		return MLReadySkills{}, err
	}

	out := MLReadySkills{
		UserID:            strings.TrimSpace(userID),
		Skills:            make([]MLSkill, 0, len(items)),
		AverageConfidence: 0.5,
	}
	var sum float64
	for _, s := range items {
		w := skill.ConfidenceWeight(s.ConfidenceLevel)
		sum += w
		if s.Verified {
			out.TotalVerifiedSkills++
		}
		out.Skills = append(out.Skills, MLSkill{
			Name:             s.Name,
			Category:         s.Category,
			Proficiency:      s.Proficiency,
			Level:            strings.ToLower(s.Level),
			Verified:         s.Verified,
			Confidence:       w,
			ExperienceMonths: s.ExperienceMonths,
			LastVerified:     s.LastVerified,
		})
	}
	if len(items) > 0 {
		out.AverageConfidence = sum / float64(len(items))
	}
	return out, nil
}

func (u *UserSkill) SyncFromProfile(ctx context.Context, userID string) (SyncResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return SyncResult{}, ErrInvalidInput
	}
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return SyncResult{}, ErrProfileNotFound
		}
		return SyncResult{}, ErrInternal
	}

	names := make([]string, 0, len(p.TechnicalSkills)+len(p.SoftSkills))
	names = append(names, p.TechnicalSkills...)
	names = append(names, p.SoftSkills...)
	return u.SyncSkills(ctx, userID, names)
}

// SyncSkills creates a pending skill for every name the user does not have
// yet (compared case-insensitively) and re-classifies existing ones. Skills
// missing from names are left untouched.
func (u *UserSkill) SyncSkills(ctx context.Context, userID string, names []string) (SyncResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return SyncResult{}, ErrInvalidInput
	}

	existing, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return SyncResult{}, ErrInternal
	}
	byName := make(map[string]skill.UserSkill, len(existing))
	for _, s := range existing {
		byName[strings.ToLower(strings.TrimSpace(s.Name))] = s
	}

	res := SyncResult{Message: "Skills synced successfully", Synced: true}
	seen := make(map[string]struct{}, len(names))
	now := u.now().UTC()

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		category := ClassifySkill(name)
		if cur, ok := byName[lower]; ok {
			if cur.Category == category {
				continue
			}
			cur.Category = category
			cur.UpdatedAt = now
			if _, err := u.repo.Update(ctx, cur); err != nil {
				return SyncResult{}, ErrInternal
			}
			res.Updated++
			continue
		}

		zero := 0
		_, err := u.repo.Create(ctx, skill.UserSkill{
			UserID:          userID,
			Name:            name,
			Category:        category,
			Proficiency:     0,
			Score:           &zero,
			Level:           skill.LevelPending,
			Status:          skill.StatusPending,
			Verified:        false,
			CreatedAt:       now,
			UpdatedAt:       now,
			ConfidenceLevel: skill.ConfidenceLow,
			Projects:        []string{},
		})
		if err != nil {
			return SyncResult{}, ErrInternal
		}
		res.Created++
	}

	if res.Created > 0 || res.Updated > 0 {
		u.invalidate(ctx, userID)
		u.logf("[Skills] synced user=%s created=%d updated=%d", userID, res.Created, res.Updated)
	}
	return res, nil
}

func (u *UserSkill) RecordExamResult(ctx context.Context, userID, skillID string, in ExamResultInput) (skill.UserSkill, error) {
	skillID = strings.TrimSpace(skillID)
	if skillID == "" {
		return skill.UserSkill{}, ErrInvalidInput
	}
	// Statuses outside the known set are stored as sent; analytics only
	// buckets the known ones.
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		return skill.UserSkill{}, ErrInvalidInput
	}

	s, err := u.repo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return skill.UserSkill{}, ErrSkillNotFound
		}
		return skill.UserSkill{}, ErrInternal
	}
	if userID != "" && s.UserID != userID {
		return skill.UserSkill{}, ErrSkillNotFound
	}

	score := clamp(in.Score, 0, 100)
	now := u.now().UTC()
	s.Score = &score
	s.Proficiency = score
	s.Status = status
	s.Verified = status == skill.StatusVerified
	s.LastVerified = &now
	s.Level = skill.LevelForScore(score)
	s.UpdatedAt = now

	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return skill.UserSkill{}, ErrSkillNotFound
		}
		return skill.UserSkill{}, ErrInternal
	}

	u.invalidate(ctx, updated.UserID)
	u.notifier.Notify(updated.UserID, ws.EventSkillVerified, map[string]any{
		"skillId":  updated.ID.Hex(),
		"name":     updated.Name,
		"score":    score,
		"status":   updated.Status,
		"level":    updated.Level,
		"verified": updated.Verified,
	})
	return updated, nil
}

// BuildSkillAnalytics summarises a user's skills.
func BuildSkillAnalytics(items []skill.UserSkill) SkillAnalytics {
	out := SkillAnalytics{
		TotalSkills: len(items),
		SkillDistribution: map[string]int{
			skill.StatusVerified:         0,
			skill.StatusPending:          0,
			skill.StatusUnverified:       0,
			skill.StatusNeedsImprovement: 0,
		},
		LevelDistribution: map[string]int{
			"expert":       0,
			"advanced":     0,
			"intermediate": 0,
			"beginner":     0,
			"pending":      0,
		},
		CategoryDistribution: map[string]int{},
	}
	var sum int
	for _, s := range items {
		if s.Verified {
			out.VerifiedSkills++
		}
		sum += s.Proficiency
		if _, ok := out.SkillDistribution[s.Status]; ok {
			out.SkillDistribution[s.Status]++
		}
		if lvl := strings.ToLower(s.Level); lvl != "" {
			if _, ok := out.LevelDistribution[lvl]; ok {
				out.LevelDistribution[lvl]++
			}
		}
		cat := s.Category
		if cat == "" {
			cat = CategoryOther
		}
		out.CategoryDistribution[cat]++
	}
	if len(items) > 0 {
		out.AverageProficiency = float64(sum) / float64(len(items))
	}
	return out
}

func (u *UserSkill) invalidate(ctx context.Context, userID string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateUser(ctx, userID); err != nil {
		u.logf("[Skills] cache invalidate failed user=%s err=%v", userID, err)
	}
}

func (u *UserSkill) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
