package usecase

import (
	"context"
	"errors"
	"testing"

	"workskill/internal/domain/analysis"
	"workskill/internal/domain/skill"
	"workskill/internal/domain/student"
	"workskill/internal/infrastructure/cache"
	"workskill/internal/infrastructure/mlservice"
	"workskill/internal/ws"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type skillGapFixture struct {
	uc       *SkillGap
	analyses *fakeAnalyses
	ml       *fakeML
	cache    *fakeCache
	notifier *fakeNotifier
	userID   string
}

func newSkillGapFixture() skillGapFixture {
	st := student.Student{ID: primitive.NewObjectID(), FirstName: "Ana", Email: "ana@example.com", CurrentJobRole: "Developer"}
	userID := st.ID.Hex()
	skills := &fakeUserSkills{items: []skill.UserSkill{{ID: primitive.NewObjectID(), UserID: userID, Name: "Go", Proficiency: 80}}}
	userData := NewUserDataUsecase(newFakeStudents(st), newFakeProfiles(), skills)

	f := skillGapFixture{
		analyses: &fakeAnalyses{},
		ml: &fakeML{analyze: mlservice.AnalyzeResult{
			MatchScore:    72.5,
			MissingSkills: []analysis.SkillAnalysis{{Name: "Kubernetes", Importance: 0.3}},
		}},
		cache:    newFakeCache(),
		notifier: &fakeNotifier{},
		userID:   userID,
	}
	f.uc = NewSkillGapUsecase(f.analyses, userData, f.ml, f.cache, f.notifier, nil)
	return f
}

func TestSkillGap_AnalyzePersistsAndNotifies(t *testing.T) {
	f := newSkillGapFixture()
	f.analyses.items = append(f.analyses.items, analysis.SkillGapAnalysis{ID: primitive.NewObjectID(), UserID: f.userID, JobRole: "Old", IsCurrentRole: true})

	got, err := f.uc.Analyze(context.Background(), f.userID, " Platform Engineer ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.JobRole != "Platform Engineer" || got.MatchScore != 72.5 || !got.IsCurrentRole {
		t.Fatalf("unexpected analysis %+v", got)
	}
	if f.analyses.items[0].IsCurrentRole {
		t.Fatalf("expected previous analysis to lose current-role flag")
	}
	if f.ml.lastAnalyze.JobRole != "Platform Engineer" {
		t.Fatalf("unexpected ml request %+v", f.ml.lastAnalyze)
	}
	if len(f.cache.invalidated) != 1 {
		t.Fatalf("expected cache invalidation")
	}
	if len(f.cache.released) != 1 || f.cache.released[0] != cache.AnalysisLockKey(f.userID) {
		t.Fatalf("expected analysis lock to be released, got %v", f.cache.released)
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].eventType != ws.EventSkillGapAnalyzed {
		t.Fatalf("unexpected events %+v", f.notifier.events)
	}
}

func TestSkillGap_AnalyzeKeepsRequestedRole(t *testing.T) {
	f := newSkillGapFixture()
	f.ml.analyze.JobRole = "Senior Site Reliability Engineer"

	got, err := f.uc.Analyze(context.Background(), f.userID, " DevOps Engineer ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.JobRole != "DevOps Engineer" {
		t.Fatalf("expected requested role, got %q", got.JobRole)
	}
	if len(f.analyses.items) != 1 || f.analyses.items[0].JobRole != "DevOps Engineer" {
		t.Fatalf("unexpected stored analyses %+v", f.analyses.items)
	}
}

func TestSkillGap_AnalyzeErrors(t *testing.T) {
	f := newSkillGapFixture()

	if _, err := f.uc.Analyze(context.Background(), f.userID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.uc.Analyze(context.Background(), primitive.NewObjectID().Hex(), "Dev"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	f.cache.locks[cache.AnalysisLockKey(f.userID)] = "Dev"
	if _, err := f.uc.Analyze(context.Background(), f.userID, "Dev"); !errors.Is(err, ErrAnalysisInProgress) {
		t.Fatalf("expected ErrAnalysisInProgress, got %v", err)
	}
	delete(f.cache.locks, cache.AnalysisLockKey(f.userID))

	f.ml.analyzeErr = mlservice.ErrUnavailable
	if _, err := f.uc.Analyze(context.Background(), f.userID, "Dev"); !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
	if len(f.analyses.items) != 0 {
		t.Fatalf("failed analysis must not be stored")
	}
}

func TestSkillGap_CurrentRoleAndHistory(t *testing.T) {
	f := newSkillGapFixture()

	cur, err := f.uc.CurrentRole(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cur.HasAnalysis || cur.CurrentRole != "Not set" {
		t.Fatalf("unexpected empty current role %+v", cur)
	}

	if _, err := f.uc.Analyze(context.Background(), f.userID, "SRE"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cur, err = f.uc.CurrentRole(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !cur.HasAnalysis || cur.CurrentRole != "SRE" || cur.MatchScore == nil || *cur.MatchScore != 72.5 {
		t.Fatalf("unexpected current role %+v", cur)
	}

	hist, err := f.uc.History(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if hist == nil || len(hist) != 0 {
		t.Fatalf("expected empty non-nil history, got %v", hist)
	}
}
