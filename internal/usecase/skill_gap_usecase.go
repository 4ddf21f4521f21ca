package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workskill/internal/domain/analysis"
	"workskill/internal/infrastructure/cache"
	"workskill/internal/infrastructure/mlservice"
	"workskill/internal/repository"
	"workskill/internal/ws"
)

const analysisLockTTL = 2 * time.Minute

type CurrentRoleAnalysis struct {
	UserID             string                       `json:"userId"`
	CurrentRole        string                       `json:"currentRole"`
	HasAnalysis        bool                         `json:"hasAnalysis"`
	MatchScore         *float64                     `json:"matchScore,omitempty"`
	AnalyzedAt         *time.Time                   `json:"analyzedAt,omitempty"`
	RequiredSkills     []analysis.SkillAnalysis     `json:"requiredSkills,omitempty"`
	CurrentSkills      []analysis.UserSkillAnalysis `json:"currentSkills,omitempty"`
	MissingSkills      []analysis.SkillAnalysis     `json:"missingSkills,omitempty"`
	PartialMatchSkills []analysis.SkillAnalysis     `json:"partialMatchSkills,omitempty"`
	GapAnalysis        map[string]any               `json:"gapAnalysis,omitempty"`
	Recommendations    []string                     `json:"recommendations,omitempty"`
	TimeToCloseGap     string                       `json:"timeToCloseGap,omitempty"`
	SalaryImpact       string                       `json:"salaryImpact,omitempty"`
}

type SkillGapUsecase interface {
	Analyze(ctx context.Context, userID, jobRole string) (analysis.SkillGapAnalysis, error)
	CurrentRole(ctx context.Context, userID string) (CurrentRoleAnalysis, error)
	History(ctx context.Context, userID string) ([]analysis.SkillGapAnalysis, error)
}

type SkillGap struct {
	analyses repository.SkillGapAnalysisRepository
	userData UserDataUsecase
	ml       mlservice.Client
	cache    Cache
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewSkillGapUsecase(analyses repository.SkillGapAnalysisRepository, userData UserDataUsecase, ml mlservice.Client, c Cache, notifier Notifier, logger *log.Logger) *SkillGap {
	return &SkillGap{
		analyses: analyses,
		userData: userData,
		ml:       ml,
		cache:    c,
		notifier: notifierOrNoop(notifier),
		logger:   logger,
		now:      time.Now,
	}
}

func (u *SkillGap) Analyze(ctx context.Context, userID, jobRole string) (analysis.SkillGapAnalysis, error) {
	userID = strings.TrimSpace(userID)
	jobRole = strings.TrimSpace(jobRole)
	if userID == "" || jobRole == "" {
		return analysis.SkillGapAnalysis{}, ErrInvalidInput
	}

	data, err := u.userData.SkillGapData(ctx, userID)
	if err != nil {
		return analysis.SkillGapAnalysis{}, err
	}

	if u.cache != nil && u.cache.Available() {
		lockKey := cache.AnalysisLockKey(userID)
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, jobRole, analysisLockTTL)
		if err == nil && !ok {
			return analysis.SkillGapAnalysis{}, ErrAnalysisInProgress
		}
		if ok {
			defer u.cache.ReleaseLock(context.WithoutCancel(ctx), lockKey)
		}
	}

	if u.ml == nil {
		return analysis.SkillGapAnalysis{}, ErrAnalysisFailed
	}
	res, err := u.ml.AnalyzeSkillGap(ctx, mlservice.AnalyzeRequest{
		UserID:      userID,
		JobRole:     jobRole,
		ProfileData: data.Profile,
		SkillsData:  data.Skills,
	})
	if err != nil {
		u.logf("[SkillGap] ml analysis failed user=%s role=%q err=%v", userID, jobRole, err)
		return analysis.SkillGapAnalysis{}, ErrAnalysisFailed
	}

	doc := analysis.SkillGapAnalysis{
		UserID:             userID,
		JobRole:            jobRole,
		MatchScore:         res.MatchScore,
		RequiredSkills:     res.RequiredSkills,
		CurrentSkills:      res.CurrentSkills,
		MissingSkills:      res.MissingSkills,
		PartialMatchSkills: res.PartialMatchSkills,
		GapAnalysis:        res.GapAnalysis,
		Recommendations:    res.Recommendations,
		TimeToCloseGap:     res.TimeToCloseGap,
		SalaryImpact:       res.SalaryImpact,
		IsCurrentRole:      true,
		AnalyzedAt:         u.now().UTC(),
	}

	if err := u.analyses.ClearCurrentRole(ctx, userID); err != nil {
		return analysis.SkillGapAnalysis{}, ErrInternal
	}
	saved, err := u.analyses.Insert(ctx, doc)
	if err != nil {
		return analysis.SkillGapAnalysis{}, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.InvalidateUser(ctx, userID); err != nil {
			u.logf("[SkillGap] cache invalidate failed user=%s err=%v", userID, err)
		}
	}
	u.notifier.Notify(userID, ws.EventSkillGapAnalyzed, map[string]any{
		"analysisId": saved.ID.Hex(),
		"jobRole":    saved.JobRole,
		"matchScore": saved.MatchScore,
	})
	u.logf("[SkillGap] analyzed user=%s role=%q score=%.1f", userID, saved.JobRole, saved.MatchScore)
	return saved, nil
}

func (u *SkillGap) CurrentRole(ctx context.Context, userID string) (CurrentRoleAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CurrentRoleAnalysis{}, ErrInvalidInput
	}

	a, err := u.analyses.FindCurrentRole(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return CurrentRoleAnalysis{UserID: userID, CurrentRole: "Not set", HasAnalysis: false}, nil
		}
		return CurrentRoleAnalysis{}, ErrInternal
	}

	score := a.MatchScore
	at := a.AnalyzedAt
	return CurrentRoleAnalysis{
		UserID:             userID,
		CurrentRole:        a.JobRole,
		HasAnalysis:        true,
		MatchScore:         &score,
		AnalyzedAt:         &at,
		RequiredSkills:     a.RequiredSkills,
		CurrentSkills:      a.CurrentSkills,
		MissingSkills:      a.MissingSkills,
		PartialMatchSkills: a.PartialMatchSkills,
		GapAnalysis:        a.GapAnalysis,
		Recommendations:    a.Recommendations,
		TimeToCloseGap:     a.TimeToCloseGap,
		SalaryImpact:       a.SalaryImpact,
	}, nil
}

func (u *SkillGap) History(ctx context.Context, userID string) ([]analysis.SkillGapAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := u.analyses.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []analysis.SkillGapAnalysis{}
	}
	return items, nil
}

func (u *SkillGap) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
