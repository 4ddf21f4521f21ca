package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"workskill/internal/domain/analysis"
	"workskill/internal/domain/profile"
	"workskill/internal/domain/recommendation"
	"workskill/internal/domain/resume"
	"workskill/internal/domain/skill"
	"workskill/internal/domain/student"
	"workskill/internal/infrastructure/mlservice"
	"workskill/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStudents struct {
	byID map[string]student.Student
}

func newFakeStudents(items ...student.Student) *fakeStudents {
	f := &fakeStudents{byID: map[string]student.Student{}}
	for _, s := range items {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		f.byID[s.ID.Hex()] = s
	}
	return f
}

func (f *fakeStudents) Create(_ context.Context, s student.Student) (student.Student, error) {
	for _, cur := range f.byID {
		if strings.EqualFold(cur.Email, s.Email) {
			return student.Student{}, repository.ErrDuplicate
		}
	}
	s.ID = primitive.NewObjectID()
	f.byID[s.ID.Hex()] = s
	return s, nil
}

func (f *fakeStudents) GetByID(_ context.Context, id string) (student.Student, error) {
	s, ok := f.byID[id]
	if !ok {
		return student.Student{}, repository.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudents) GetByEmail(_ context.Context, email string) (student.Student, error) {
	for _, s := range f.byID {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return student.Student{}, repository.ErrStudentNotFound
}

func (f *fakeStudents) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeStudents) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return repository.ErrStudentNotFound
	}
	s.LastLoginAt = &at
	f.byID[id] = s
	return nil
}

type fakeProfiles struct {
	byUser map[string]profile.Profile
	saves  int
}

func newFakeProfiles(items ...profile.Profile) *fakeProfiles {
	f := &fakeProfiles{byUser: map[string]profile.Profile{}}
	for _, p := range items {
		f.byUser[p.UserID] = p
	}
	return f
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (profile.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return profile.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Save(_ context.Context, p profile.Profile) (profile.Profile, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.byUser[p.UserID] = p
	f.saves++
	return p, nil
}

type fakeUserSkills struct {
	items []skill.UserSkill
}

func (f *fakeUserSkills) FindByUserID(_ context.Context, userID string) ([]skill.UserSkill, error) {
	var out []skill.UserSkill
	for _, s := range f.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeUserSkills) FindByID(_ context.Context, id string) (skill.UserSkill, error) {
	for _, s := range f.items {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return skill.UserSkill{}, repository.ErrUserSkillNotFound
}

func (f *fakeUserSkills) Create(_ context.Context, s skill.UserSkill) (skill.UserSkill, error) {
	s.ID = primitive.NewObjectID()
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeUserSkills) Update(_ context.Context, s skill.UserSkill) (skill.UserSkill, error) {
	for i := range f.items {
		if f.items[i].ID == s.ID {
			f.items[i] = s
			return s, nil
		}
	}
	return skill.UserSkill{}, repository.ErrUserSkillNotFound
}

type fakeAnalyses struct {
	items []analysis.SkillGapAnalysis
}

func (f *fakeAnalyses) Insert(_ context.Context, a analysis.SkillGapAnalysis) (analysis.SkillGapAnalysis, error) {
	a.ID = primitive.NewObjectID()
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeAnalyses) ClearCurrentRole(_ context.Context, userID string) error {
	for i := range f.items {
		if f.items[i].UserID == userID {
			f.items[i].IsCurrentRole = false
		}
	}
	return nil
}

func (f *fakeAnalyses) FindCurrentRole(_ context.Context, userID string) (analysis.SkillGapAnalysis, error) {
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID && f.items[i].IsCurrentRole {
			return f.items[i], nil
		}
	}
	return analysis.SkillGapAnalysis{}, repository.ErrAnalysisNotFound
}

func (f *fakeAnalyses) FindLatest(_ context.Context, userID string) (analysis.SkillGapAnalysis, error) {
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			return f.items[i], nil
		}
	}
	return analysis.SkillGapAnalysis{}, repository.ErrAnalysisNotFound
}

func (f *fakeAnalyses) FindByUserID(_ context.Context, userID string) ([]analysis.SkillGapAnalysis, error) {
	var out []analysis.SkillGapAnalysis
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

type fakeRecs struct {
	saved   []recommendation.Recommendation
	actions []recommendation.CourseAction
}

func (f *fakeRecs) Save(_ context.Context, rec recommendation.Recommendation) (recommendation.Recommendation, error) {
	rec.ID = primitive.NewObjectID()
	f.saved = append(f.saved, rec)
	return rec, nil
}

func (f *fakeRecs) FindLatest(_ context.Context, userID string) (recommendation.Recommendation, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].UserID == userID {
			return f.saved[i], nil
		}
	}
	return recommendation.Recommendation{}, repository.ErrRecommendationNotFound
}

func (f *fakeRecs) SaveAction(_ context.Context, a recommendation.CourseAction) (recommendation.CourseAction, error) {
	a.ID = primitive.NewObjectID()
	f.actions = append(f.actions, a)
	return a, nil
}

type fakeResumes struct {
	items     []resume.Resume
	createErr error
}

func (f *fakeResumes) Create(_ context.Context, r resume.Resume) (resume.Resume, error) {
	if f.createErr != nil {
		return resume.Resume{}, f.createErr
	}
	r.ID = primitive.NewObjectID()
	f.items = append(f.items, r)
	return r, nil
}

func (f *fakeResumes) FindByID(_ context.Context, id string) (resume.Resume, error) {
	for _, r := range f.items {
		if r.ID.Hex() == id {
			return r, nil
		}
	}
	return resume.Resume{}, repository.ErrResumeNotFound
}

func (f *fakeResumes) FindByUserID(_ context.Context, userID string, limit int) ([]resume.Resume, error) {
	var out []resume.Resume
	for _, r := range f.items {
		if r.UserID == userID {
			r.FileData = nil
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeResumes) Update(_ context.Context, r resume.Resume) error {
	for i := range f.items {
		if f.items[i].ID == r.ID {
			if r.FileData == nil {
				r.FileData = f.items[i].FileData
			}
			f.items[i] = r
			return nil
		}
	}
	return repository.ErrResumeNotFound
}

func (f *fakeResumes) Delete(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID.Hex() == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrResumeNotFound
}

func (f *fakeResumes) SetActive(_ context.Context, userID string, id string) error {
	found := false
	for i := range f.items {
		if f.items[i].UserID != userID {
			continue
		}
		f.items[i].IsActive = f.items[i].ID.Hex() == id
		if f.items[i].IsActive {
			found = true
		}
	}
	if !found {
		return repository.ErrResumeNotFound
	}
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	available   bool
	data        map[string]any
	locks       map[string]string
	invalidated []string
	deleted     []string
	released    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{available: true, data: map[string]any{}, locks: map[string]string{}}
}

func (c *fakeCache) Available() bool { return c.available }

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *recommendation.Recommendation:
		*dst = v.(recommendation.Recommendation)
	case *SkillAnalytics:
		*dst = v.(SkillAnalytics)
	default:
		return false, nil
	}
	return true, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, key)
	delete(c.data, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.locks[key]; ok {
		return false, nil
	}
	c.locks[key] = value
	return true, nil
}

func (c *fakeCache) ReleaseLock(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, key)
	c.released = append(c.released, key)
}

func (c *fakeCache) InvalidateUser(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.Contains(k, userID) {
			delete(c.data, k)
		}
	}
	c.invalidated = append(c.invalidated, userID)
	return nil
}

type sentEvent struct {
	userID    string
	eventType string
	payload   any
}

type fakeNotifier struct {
	events []sentEvent
}

func (n *fakeNotifier) Notify(userID, eventType string, payload any) {
	n.events = append(n.events, sentEvent{userID: userID, eventType: eventType, payload: payload})
}

type fakeML struct {
	analyze    mlservice.AnalyzeResult
	analyzeErr error
	recs       mlservice.RecommendationResult
	recsErr    error

	lastAnalyze mlservice.AnalyzeRequest
	lastRecs    mlservice.RecommendationRequest
	calls       int
}

func (f *fakeML) AnalyzeSkillGap(_ context.Context, req mlservice.AnalyzeRequest) (mlservice.AnalyzeResult, error) {
	f.calls++
	f.lastAnalyze = req
	return f.analyze, f.analyzeErr
}

func (f *fakeML) GenerateRecommendations(_ context.Context, req mlservice.RecommendationRequest) (mlservice.RecommendationResult, error) {
	f.calls++
	f.lastRecs = req
	return f.recs, f.recsErr
}

var (
	_ repository.StudentRepository          = (*fakeStudents)(nil)
	_ repository.ProfileRepository          = (*fakeProfiles)(nil)
	_ repository.UserSkillRepository        = (*fakeUserSkills)(nil)
	_ repository.SkillGapAnalysisRepository = (*fakeAnalyses)(nil)
	_ repository.RecommendationRepository   = (*fakeRecs)(nil)
	_ repository.ResumeRepository           = (*fakeResumes)(nil)
	_ Cache                                 = (*fakeCache)(nil)
	_ mlservice.Client                      = (*fakeML)(nil)
)
