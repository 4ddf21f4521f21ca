package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"workskill/internal/delivery/http/middleware"
	"workskill/internal/domain/analysis"
	"workskill/internal/domain/recommendation"
	"workskill/internal/domain/resume"
	"workskill/internal/domain/skill"
	"workskill/internal/domain/student"
	"workskill/internal/infrastructure/gemini"
	"workskill/internal/pkg/jwt"
	"workskill/internal/usecase"
	ucauth "workskill/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestApp mounts routes behind a stub auth layer that trusts the
// X-User-ID and X-Role headers.
func newTestApp(mount func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	app.Use(func(c fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			c.Locals(middleware.CtxUserIDKey, id)
			c.Locals(middleware.CtxRoleKey, c.Get("X-Role"))
		}
		return c.Next()
	})
	mount(app)
	return app
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	var body envelope
	_ = json.NewDecoder(res.Body).Decode(&body)
	return res, body
}

type fakeAuth struct {
	signupErr error
	loginErr  error
	student   student.Student
	token     string
}

func (f *fakeAuth) Signup(_ context.Context, in ucauth.SignupInput) (student.Student, error) {
	if f.signupErr != nil {
		return student.Student{}, f.signupErr
	}
	s := f.student
	s.Email = in.Email
	return s, nil
}

func (f *fakeAuth) Login(context.Context, ucauth.LoginInput) (student.Student, string, error) {
	if f.loginErr != nil {
		return student.Student{}, "", f.loginErr
	}
	return f.student, f.token, nil
}

func (f *fakeAuth) Authenticate(context.Context, string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type fakeExams struct {
	lastInput usecase.GenerateExamInput
	resets    int
}

func (f *fakeExams) GenerateExam(_ context.Context, in usecase.GenerateExamInput) (usecase.Exam, error) {
	f.lastInput = in
	return usecase.Exam{Skill: in.Skill, Source: usecase.ExamSourceRuleBased}, nil
}

func (f *fakeExams) EvaluateAnswer(context.Context, string, string, string) (usecase.AnswerEvaluation, error) {
	return usecase.AnswerEvaluation{Score: 75, Feedback: "Good understanding shown", Confidence: 0.8}, nil
}

func (f *fakeExams) Usage() gemini.UsageStats { return gemini.UsageStats{TotalKeys: 2} }

func (f *fakeExams) ResetUsage() { f.resets++ }

type fakeSkills struct {
	recordErr error
	lastUser  string
	lastSkill string
}

func (f *fakeSkills) ListUserSkills(_ context.Context, userID string) ([]skill.UserSkill, error) {
	f.lastUser = userID
	return []skill.UserSkill{{UserID: userID, Name: "Go"}}, nil
}

func (f *fakeSkills) Analytics(context.Context, string) (usecase.SkillAnalytics, error) {
	return usecase.SkillAnalytics{}, nil
}

func (f *fakeSkills) MLReady(_ context.Context, userID string) (usecase.MLReadySkills, error) {
	return usecase.MLReadySkills{UserID: userID, AverageConfidence: 0.5}, nil
}

func (f *fakeSkills) SyncFromProfile(context.Context, string) (usecase.SyncResult, error) {
	return usecase.SyncResult{Message: "Skills synced successfully", Synced: true}, nil
}

func (f *fakeSkills) SyncSkills(context.Context, string, []string) (usecase.SyncResult, error) {
	return usecase.SyncResult{Synced: true}, nil
}

func (f *fakeSkills) RecordExamResult(_ context.Context, userID, skillID string, in usecase.ExamResultInput) (skill.UserSkill, error) {
	f.lastUser, f.lastSkill = userID, skillID
	if f.recordErr != nil {
		return skill.UserSkill{}, f.recordErr
	}
	score := in.Score
	return skill.UserSkill{UserID: userID, Score: &score, Status: in.Status}, nil
}

type fakeSkillGap struct {
	err      error
	lastUser string
	lastRole string
}

func (f *fakeSkillGap) Analyze(_ context.Context, userID, jobRole string) (analysis.SkillGapAnalysis, error) {
	f.lastUser, f.lastRole = userID, jobRole
	if f.err != nil {
		return analysis.SkillGapAnalysis{}, f.err
	}
	return analysis.SkillGapAnalysis{UserID: userID, JobRole: jobRole, MatchScore: 72, IsCurrentRole: true}, nil
}

func (f *fakeSkillGap) CurrentRole(_ context.Context, userID string) (usecase.CurrentRoleAnalysis, error) {
	return usecase.CurrentRoleAnalysis{UserID: userID, CurrentRole: "Not set"}, nil
}

func (f *fakeSkillGap) History(context.Context, string) ([]analysis.SkillGapAnalysis, error) {
	return nil, nil
}

type fakeRecommendations struct {
	saved []usecase.CourseActionInput
}

func (f *fakeRecommendations) ForUser(_ context.Context, userID string) (recommendation.Recommendation, error) {
	return recommendation.Recommendation{UserID: userID}, nil
}

func (f *fakeRecommendations) SaveEnrollment(_ context.Context, in usecase.CourseActionInput) (recommendation.CourseAction, error) {
	f.saved = append(f.saved, in)
	return recommendation.CourseAction{UserID: in.UserID, CourseID: in.CourseID, Action: recommendation.ActionEnrolled}, nil
}

func (f *fakeRecommendations) SaveCourse(_ context.Context, in usecase.CourseActionInput) (recommendation.CourseAction, error) {
	f.saved = append(f.saved, in)
	return recommendation.CourseAction{UserID: in.UserID, CourseID: in.CourseID, Action: recommendation.ActionSaved}, nil
}

type fakeResumes struct {
	uploaded usecase.UploadInput
	file     usecase.ResumeFile
	getErr   error
}

func (f *fakeResumes) Upload(_ context.Context, _ string, in usecase.UploadInput) (usecase.ResumeAnalysis, error) {
	f.uploaded = in
	return usecase.ResumeAnalysis{Success: true, Message: "Resume uploaded and analyzed successfully", ConfidenceScore: 0.85}, nil
}

func (f *fakeResumes) List(context.Context, string) ([]resume.Resume, error) { return nil, nil }

func (f *fakeResumes) History(context.Context, string) ([]resume.Resume, error) { return nil, nil }

func (f *fakeResumes) Get(context.Context, string, string) (resume.Resume, error) {
	return resume.Resume{}, f.getErr
}

func (f *fakeResumes) Download(context.Context, string, string) (usecase.ResumeFile, error) {
	if f.getErr != nil {
		return usecase.ResumeFile{}, f.getErr
	}
	return f.file, nil
}

func (f *fakeResumes) Activate(context.Context, string, string) error { return f.getErr }

func (f *fakeResumes) Reanalyze(context.Context, string, string) (usecase.ResumeAnalysis, error) {
	return usecase.ResumeAnalysis{Success: true}, f.getErr
}

func (f *fakeResumes) Delete(context.Context, string, string) error { return f.getErr }

func (f *fakeResumes) ExtractText(_ context.Context, in usecase.UploadInput) (usecase.TextPreview, error) {
	return usecase.TextPreview{FileName: in.FileName, Length: len(in.Data), Text: string(in.Data)}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeCacheStatus struct {
	available bool
	pingErr   error
}

func (f fakeCacheStatus) Available() bool { return f.available }

func (f fakeCacheStatus) Ping(context.Context) error { return f.pingErr }
