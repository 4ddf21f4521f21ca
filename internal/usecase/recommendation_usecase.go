package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workskill/internal/domain/analysis"
	"workskill/internal/domain/recommendation"
	"workskill/internal/domain/student"
	"workskill/internal/infrastructure/cache"
	"workskill/internal/infrastructure/mlservice"
	"workskill/internal/repository"
)

const defaultCurrentJobRole = "Software Engineer"

var skillDescriptions = map[string]string{
	"Cloud Computing": "Managing and deploying applications on cloud platforms",
	"Automation":      "Automating processes and workflows",
	"CI/CD":           "Continuous Integration and Continuous Deployment practices",
	"Python":          "Versatile programming language for various applications",
	"Linux":           "Operating system and command-line proficiency",
	"Git":             "Version control system for collaborative development",
	"SQL":             "Database querying and management",
	"Security":        "Application and data security practices",
	"Java":            "Object-oriented programming language",
	"JavaScript":      "Client-side and server-side scripting",
	"CSS":             "Styling and layout for web applications",
	"HTML":            "Markup language for web content",
	"React":           "JavaScript library for building user interfaces",
}

type CourseActionInput struct {
	UserID      string
	CourseID    string
	CourseTitle string
}

type RecommendationUsecase interface {
	ForUser(ctx context.Context, userID string) (recommendation.Recommendation, error)
	SaveEnrollment(ctx context.Context, in CourseActionInput) (recommendation.CourseAction, error)
	SaveCourse(ctx context.Context, in CourseActionInput) (recommendation.CourseAction, error)
}

type Recommendations struct {
	recs     repository.RecommendationRepository
	analyses repository.SkillGapAnalysisRepository
	students repository.StudentRepository
	ml       mlservice.Client
	cache    Cache
	logger   *log.Logger
	now      func() time.Time
}

func NewRecommendationUsecase(recs repository.RecommendationRepository, analyses repository.SkillGapAnalysisRepository, students repository.StudentRepository, ml mlservice.Client, c Cache, logger *log.Logger) *Recommendations {
	return &Recommendations{
		recs:     recs,
		analyses: analyses,
		students: students,
		ml:       ml,
		cache:    c,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Recommendations) ForUser(ctx context.Context, userID string) (recommendation.Recommendation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return recommendation.Recommendation{}, ErrInvalidInput
	}

	key := cache.RecommendationsKey(userID)
	if u.cache != nil {
		var cached recommendation.Recommendation
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logf("[Recommendations] Cache HIT: %s", key)
			return cached, nil
		}
		u.logf("[Recommendations] Cache MISS: %s", key)
	}

	latest, err := u.analyses.FindLatest(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrAnalysisNotFound) {
			return recommendation.Recommendation{}, ErrInternal
		}
		u.logf("[Recommendations] no analysis for user=%s, using defaults", userID)
		out := DefaultRecommendation(userID, u.now().UTC())
		u.store(ctx, key, out, false)
		return out, nil
	}

	var st *student.Student
	if got, err := u.students.GetByID(ctx, userID); err == nil {
		st = &got
	} else if !errors.Is(err, repository.ErrStudentNotFound) {
		return recommendation.Recommendation{}, ErrInternal
	}

	currentRole := defaultCurrentJobRole
	if st != nil && strings.TrimSpace(st.CurrentJobRole) != "" {
		currentRole = strings.TrimSpace(st.CurrentJobRole)
	}

	missing := make([]recommendation.MissingSkill, 0, len(latest.MissingSkills))
	for _, s := range latest.MissingSkills {
		missing = append(missing, recommendation.MissingSkill{
			Name:        s.Name,
			Importance:  s.Importance,
			Category:    s.Category,
			Priority:    PriorityForImportance(s.Importance),
			Description: SkillDescription(s.Name),
		})
	}

	out := recommendation.Recommendation{
		UserID:             userID,
		MissingSkills:      missing,
		CurrentJobRole:     currentRole,
		TargetJobRole:      latest.JobRole,
		MatchScore:         latest.MatchScore,
		ProgressPercentage: progressPercentage(latest),
		GeneratedAt:        u.now().UTC(),
	}

	res, err := u.generate(ctx, userID, currentRole, latest, missing, st)
	if err != nil {
		u.logf("[Recommendations] ml service failed user=%s err=%v, using basic pathway", userID, err)
		out.CourseRecommendations = []recommendation.Course{}
		out.LearningPathway = BasicPathway(missing)
		out.Insights = FallbackInsights(latest.MatchScore, missing)
		out.Source = recommendation.SourceFallback
	} else {
		out.CourseRecommendations = res.Courses
		out.LearningPathway = res.Pathway
		out.Insights = res.Insights
		if len(out.Insights) == 0 {
			out.Insights = FallbackInsights(latest.MatchScore, missing)
		}
		out.Source = recommendation.SourceML
	}

	u.store(ctx, key, out, true)
	return out, nil
}

func (u *Recommendations) SaveEnrollment(ctx context.Context, in CourseActionInput) (recommendation.CourseAction, error) {
	return u.saveAction(ctx, in, recommendation.ActionEnrolled)
}

func (u *Recommendations) SaveCourse(ctx context.Context, in CourseActionInput) (recommendation.CourseAction, error) {
	return u.saveAction(ctx, in, recommendation.ActionSaved)
}

func (u *Recommendations) saveAction(ctx context.Context, in CourseActionInput, action string) (recommendation.CourseAction, error) {
	userID := strings.TrimSpace(in.UserID)
	courseID := strings.TrimSpace(in.CourseID)
	title := strings.TrimSpace(in.CourseTitle)
	if userID == "" || courseID == "" || title == "" {
		return recommendation.CourseAction{}, ErrInvalidInput
	}

	saved, err := u.recs.SaveAction(ctx, recommendation.CourseAction{
		UserID:      userID,
		CourseID:    courseID,
		CourseTitle: title,
		Action:      action,
		CreatedAt:   u.now().UTC(),
	})
	if err != nil {
		return recommendation.CourseAction{}, ErrInternal
	}
	u.logf("[Recommendations] %s user=%s course=%s", action, userID, courseID)
	return saved, nil
}

func (u *Recommendations) generate(ctx context.Context, userID, currentRole string, latest analysis.SkillGapAnalysis, missing []recommendation.MissingSkill, st *student.Student) (mlservice.RecommendationResult, error) {
	if u.ml == nil {
		return mlservice.RecommendationResult{}, mlservice.ErrUnavailable
	}
	return u.ml.GenerateRecommendations(ctx, mlservice.RecommendationRequest{
		UserID:         userID,
		JobRole:        latest.JobRole,
		CurrentJobRole: currentRole,
		MissingSkills:  missing,
		CurrentSkills:  latest.CurrentSkills,
		ProfileData:    recommendationProfile(st, currentRole),
		SkillsData:     latest.CurrentSkills,
	})
}

func (u *Recommendations) store(ctx context.Context, key string, rec recommendation.Recommendation, persist bool) {
	if persist && u.recs != nil {
		if _, err := u.recs.Save(ctx, rec); err != nil {
			u.logf("[Recommendations] persist failed user=%s err=%v", rec.UserID, err)
		}
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, rec, 0)
	}
}

func (u *Recommendations) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func recommendationProfile(st *student.Student, currentRole string) map[string]any {
	if st == nil {
		return map[string]any{
			"currentJobRole":    currentRole,
			"yearsOfExperience": 0,
			"department":        "Not specified",
		}
	}
	company := strings.TrimSpace(st.CompanyName)
	if company == "" {
		company = "Not specified"
	}
	out := map[string]any{
		"firstName":         st.FirstName,
		"lastName":          st.LastName,
		"email":             st.Email,
		"currentJobRole":    st.CurrentJobRole,
		"yearsOfExperience": st.YearsOfExperience,
		"department":        st.Department,
		"company":           company,
	}
	if len(st.Education) > 0 {
		out["education"] = st.Education
	}
	if len(st.Experience) > 0 {
		out["experience"] = st.Experience
	}
	return out
}

func progressPercentage(a analysis.SkillGapAnalysis) float64 {
	if len(a.RequiredSkills) == 0 {
		return 0
	}
	return float64(len(a.CurrentSkills)) / float64(len(a.RequiredSkills)) * 100
}

func PriorityForImportance(importance float64) string {
	switch {
	case importance > 0.1:
		return "High"
	case importance > 0.05:
		return "Medium"
	default:
		return "Low"
	}
}

func SkillDescription(name string) string {
	if d, ok := skillDescriptions[strings.TrimSpace(name)]; ok {
		return d
	}
	return "Essential skill for professional development"
}

func FallbackInsights(matchScore float64, missing []recommendation.MissingSkill) []string {
	out := make([]string, 0, 4)
	switch {
	case matchScore >= 80:
		out = append(out, "🎉 Excellent match! Focus on mastering advanced concepts in your strongest areas.")
	case matchScore >= 60:
		out = append(out, "📈 Good foundation! Work on your missing skills to become highly competitive.")
	default:
		out = append(out, "🚀 Great opportunity for growth! Start with foundational skills and build systematically.")
	}
	for _, s := range missing {
		lower := strings.ToLower(s.Name)
		if strings.Contains(lower, "cloud") || strings.Contains(lower, "aws") || strings.Contains(lower, "azure") || strings.Contains(lower, "gcp") {
			out = append(out, "☁️ Cloud skills are in high demand and can significantly increase your market value.")
			break
		}
	}
	out = append(out,
		"⏱️ Complete the recommended courses in order for maximum learning efficiency.",
		"🎯 Focus on practical projects to reinforce your learning.",
	)
	return out
}

// BasicPathway builds up to two steps from the highest-priority missing
// skills when no generated pathway is available.
func BasicPathway(missing []recommendation.MissingSkill) []recommendation.PathStep {
	high := make([]string, 0, 3)
	medium := make([]string, 0, 3)
	for _, s := range missing {
		switch {
		case s.Importance > 0.1 && len(high) < 3:
			high = append(high, s.Name)
		case s.Importance > 0.05 && s.Importance <= 0.1 && len(medium) < 3:
			medium = append(medium, s.Name)
		}
	}

	steps := make([]recommendation.PathStep, 0, 2)
	if len(high) > 0 {
		shown := high
		if len(shown) > 2 {
			shown = shown[:2]
		}
		steps = append(steps, recommendation.PathStep{
			Step:        len(steps) + 1,
			Title:       "Master " + strings.Join(shown, ", "),
			Description: "Build strong foundation in high-priority technologies",
			Duration:    "3 weeks",
			Skills:      high,
			Status:      recommendation.StepCurrent,
			Courses:     []string{"course_1", "course_2"},
		})
	}
	if len(medium) > 0 {
		steps = append(steps, recommendation.PathStep{
			Step:        len(steps) + 1,
			Title:       "Learn Additional Core Technologies",
			Description: "Expand your skill set with important supporting technologies",
			Duration:    "2 weeks",
			Skills:      medium,
			Status:      recommendation.StepUpcoming,
			Courses:     []string{"course_3", "course_4"},
		})
	}
	return steps
}

// DefaultRecommendation is served to users who have not run an analysis yet.
func DefaultRecommendation(userID string, now time.Time) recommendation.Recommendation {
	return recommendation.Recommendation{
		UserID: userID,
		MissingSkills: []recommendation.MissingSkill{
			{Name: "Node.js", Importance: 0.8, Category: "Technical", Priority: "High", Description: "JavaScript runtime"},
			{Name: "MongoDB", Importance: 0.7, Category: "Technical", Priority: "High", Description: "NoSQL database"},
			{Name: "Git", Importance: 0.6, Category: "Technical", Priority: "Medium", Description: "Version control"},
		},
		CourseRecommendations: []recommendation.Course{},
		LearningPathway: []recommendation.PathStep{
			{
				Step:        1,
				Title:       "Master Node.js & MongoDB Fundamentals",
				Description: "Build strong foundation in backend technologies",
				Duration:    "2 weeks",
				Skills:      []string{"Node.js", "MongoDB"},
				Status:      recommendation.StepCurrent,
				Courses:     []string{"course_1", "course_2"},
			},
			{
				Step:        2,
				Title:       "Learn Git & Collaboration",
				Description: "Master version control and team workflows",
				Duration:    "1 week",
				Skills:      []string{"Git"},
				Status:      recommendation.StepUpcoming,
				Courses:     []string{"course_3"},
			},
		},
		Insights: []string{
			"Start with foundational skills and build systematically.",
			"Focus on practical projects to reinforce learning.",
			"Complete courses in order for maximum efficiency.",
		},
		ProgressPercentage: 0,
		CurrentJobRole:     defaultCurrentJobRole,
		Source:             recommendation.SourceFallback,
		GeneratedAt:        now,
	}
}
