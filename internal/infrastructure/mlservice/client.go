package mlservice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"workskill/internal/domain/analysis"
	"workskill/internal/domain/recommendation"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

var (
	ErrUnavailable     = errors.New("ml service unavailable")
	ErrInvalidResponse = errors.New("ml service returned an invalid response")
)

const maxErrorBody = 4096

type Client interface {
	AnalyzeSkillGap(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error)
	GenerateRecommendations(ctx context.Context, req RecommendationRequest) (RecommendationResult, error)
}

type AnalyzeRequest struct {
	UserID      string `json:"user_id"`
	JobRole     string `json:"job_role"`
	ProfileData any    `json:"profile_data"`
	SkillsData  any    `json:"skills_data"`
}

type AnalyzeResult struct {
	UserID             string
	JobRole            string
	MatchScore         float64
	RequiredSkills     []analysis.SkillAnalysis
	CurrentSkills      []analysis.UserSkillAnalysis
	MissingSkills      []analysis.SkillAnalysis
	PartialMatchSkills []analysis.SkillAnalysis
	GapAnalysis        map[string]any
	Recommendations    []string
	TimeToCloseGap     string
	SalaryImpact       string
}

type RecommendationRequest struct {
	UserID         string                        `json:"user_id"`
	JobRole        string                        `json:"job_role"`
	CurrentJobRole string                        `json:"current_job_role"`
	MissingSkills  []recommendation.MissingSkill `json:"missing_skills"`
	CurrentSkills  []analysis.UserSkillAnalysis  `json:"current_skills"`
	ProfileData    any                           `json:"profile_data"`
	SkillsData     []analysis.UserSkillAnalysis  `json:"skills_data"`
}

type RecommendationResult struct {
	Courses  []recommendation.Course
	Pathway  []recommendation.PathStep
	Insights []string
}

type httpClient struct {
	http   *resty.Client
	logger *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &httpClient{http: rc, logger: logger}
}

func (c *httpClient) AnalyzeSkillGap(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	body, err := c.post(ctx, "/internal-analyze", req)
	if err != nil {
		return AnalyzeResult{}, err
	}
	return ParseAnalyzeResponse(body)
}

func (c *httpClient) GenerateRecommendations(ctx context.Context, req RecommendationRequest) (RecommendationResult, error) {
	body, err := c.post(ctx, "/api/recommendations/generate", req)
	if err != nil {
		return RecommendationResult{}, err
	}
	return ParseRecommendationResponse(body)
}

func (c *httpClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	if c == nil || c.http == nil {
		return nil, fmt.Errorf("%w: nil client", ErrUnavailable)
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(payload).Post(path)
	if err != nil {
		c.logf("[MLService] POST %s error=%v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		b := resp.Body()
		if len(b) > maxErrorBody {
			b = b[:maxErrorBody]
		}
		bodyStr := strings.TrimSpace(string(b))
		c.logf("[MLService] POST %s status=%d body=%q", path, resp.StatusCode(), bodyStr)
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrUnavailable, resp.StatusCode(), bodyStr)
	}

	c.logf("[MLService] POST %s status=%d latency=%s", path, resp.StatusCode(), resp.Time())
	return resp.Body(), nil
}

func (c *httpClient) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// ParseAnalyzeResponse reads the camelCase analysis payload. Numbers may
// arrive as JSON numbers or numeric strings.
func ParseAnalyzeResponse(body []byte) (AnalyzeResult, error) {
	if !gjson.ValidBytes(body) {
		return AnalyzeResult{}, ErrInvalidResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return AnalyzeResult{}, ErrInvalidResponse
	}

	out := AnalyzeResult{
		UserID:             root.Get("userId").String(),
		JobRole:            root.Get("jobRole").String(),
		MatchScore:         root.Get("matchScore").Float(),
		RequiredSkills:     parseSkillAnalyses(root.Get("requiredSkills")),
		CurrentSkills:      parseUserSkillAnalyses(root.Get("currentSkills")),
		MissingSkills:      parseSkillAnalyses(root.Get("missingSkills")),
		PartialMatchSkills: parseSkillAnalyses(root.Get("partialMatchSkills")),
		GapAnalysis:        map[string]any{},
		Recommendations:    stringList(root.Get("recommendations")),
		TimeToCloseGap:     root.Get("timeToCloseGap").String(),
		SalaryImpact:       root.Get("salaryImpact").String(),
	}
	if gap := root.Get("gapAnalysis"); gap.IsObject() {
		if m, ok := gap.Value().(map[string]any); ok {
			out.GapAnalysis = m
		}
	}
	return out, nil
}

func ParseRecommendationResponse(body []byte) (RecommendationResult, error) {
	if !gjson.ValidBytes(body) {
		return RecommendationResult{}, ErrInvalidResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return RecommendationResult{}, ErrInvalidResponse
	}

	out := RecommendationResult{
		Courses:  make([]recommendation.Course, 0),
		Pathway:  make([]recommendation.PathStep, 0),
		Insights: stringList(root.Get("insights")),
	}

	root.Get("courseRecommendations").ForEach(func(_, c gjson.Result) bool {
		out.Courses = append(out.Courses, recommendation.Course{
			ID:               c.Get("id").String(),
			SkillName:        c.Get("skillName").String(),
			Platform:         c.Get("platform").String(),
			Title:            c.Get("title").String(),
			Instructor:       c.Get("instructor").String(),
			Description:      c.Get("description").String(),
			URL:              c.Get("url").String(),
			Duration:         c.Get("duration").String(),
			Difficulty:       c.Get("difficulty").String(),
			Rating:           floatOr(c.Get("rating"), 4.0),
			StudentCount:     int(floatOr(c.Get("students"), 1000)),
			Price:            c.Get("price").String(),
			OriginalPrice:    c.Get("originalPrice").String(),
			Features:         stringList(c.Get("features")),
			DurationCategory: c.Get("durationCategory").String(),
			PlatformIcon:     c.Get("platformIcon").String(),
			RelevanceScore:   floatOr(c.Get("relevanceScore"), 0.8),
		})
		return true
	})

	root.Get("learningPathway").ForEach(func(_, s gjson.Result) bool {
		out.Pathway = append(out.Pathway, recommendation.PathStep{
			Step:        int(s.Get("step").Int()),
			Title:       s.Get("title").String(),
			Description: s.Get("description").String(),
			Duration:    s.Get("duration").String(),
			Skills:      stringList(s.Get("skills")),
			Status:      s.Get("status").String(),
			Courses:     stringList(s.Get("courses")),
		})
		return true
	})

	return out, nil
}

func parseSkillAnalyses(arr gjson.Result) []analysis.SkillAnalysis {
	out := make([]analysis.SkillAnalysis, 0)
	arr.ForEach(func(_, s gjson.Result) bool {
		out = append(out, analysis.SkillAnalysis{
			Name:                s.Get("name").String(),
			Importance:          s.Get("importance").Float(),
			RequiredProficiency: int(s.Get("requiredProficiency").Int()),
			Category:            s.Get("category").String(),
			Probability:         s.Get("probability").Float(),
			UserProficiency:     int(s.Get("userProficiency").Int()),
			Gap:                 int(s.Get("gap").Int()),
			Status:              s.Get("status").String(),
			UserConfidence:      s.Get("userConfidence").String(),
		})
		return true
	})
	return out
}

func parseUserSkillAnalyses(arr gjson.Result) []analysis.UserSkillAnalysis {
	out := make([]analysis.UserSkillAnalysis, 0)
	arr.ForEach(func(_, s gjson.Result) bool {
		out = append(out, analysis.UserSkillAnalysis{
			Name:        s.Get("name").String(),
			Proficiency: int(s.Get("proficiency").Int()),
			Level:       s.Get("level").String(),
			Verified:    s.Get("verified").Bool(),
			Confidence:  s.Get("confidence").String(),
		})
		return true
	})
	return out
}

func stringList(arr gjson.Result) []string {
	out := make([]string, 0)
	arr.ForEach(func(_, v gjson.Result) bool {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func floatOr(v gjson.Result, def float64) float64 {
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.Float()
}

var _ Client = (*httpClient)(nil)
