package mlservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAnalyzeSkillGap_ParsesLenientNumbers(t *testing.T) {
	var got AnalyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal-analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{
			"jobRole": "Backend Developer",
			"userId": "u1",
			"matchScore": "72.5",
			"requiredSkills": [{"name": "Go", "importance": 0.3, "requiredProficiency": "80"}],
			"currentSkills": [{"name": "Go", "proficiency": 60, "verified": "true", "confidence": "high"}],
			"missingSkills": [{"name": "Kubernetes", "importance": "0.12", "category": "Cloud"}],
			"gapAnalysis": {"overall": "moderate"},
			"recommendations": ["Learn Kubernetes", ""],
			"timeToCloseGap": "3 months",
			"salaryImpact": "+15%"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, nil)
	res, err := c.AnalyzeSkillGap(context.Background(), AnalyzeRequest{UserID: "u1", JobRole: "Backend Developer"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.UserID != "u1" || got.JobRole != "Backend Developer" {
		t.Fatalf("unexpected request payload %+v", got)
	}
	if res.MatchScore != 72.5 {
		t.Fatalf("expected match score 72.5, got %v", res.MatchScore)
	}
	if len(res.RequiredSkills) != 1 || res.RequiredSkills[0].RequiredProficiency != 80 {
		t.Fatalf("unexpected required skills %+v", res.RequiredSkills)
	}
	if len(res.CurrentSkills) != 1 || !res.CurrentSkills[0].Verified {
		t.Fatalf("unexpected current skills %+v", res.CurrentSkills)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0].Importance != 0.12 {
		t.Fatalf("unexpected missing skills %+v", res.MissingSkills)
	}
	if len(res.Recommendations) != 1 {
		t.Fatalf("expected blank recommendation dropped, got %v", res.Recommendations)
	}
	if res.GapAnalysis["overall"] != "moderate" {
		t.Fatalf("unexpected gap analysis %v", res.GapAnalysis)
	}
	if len(res.PartialMatchSkills) != 0 || res.PartialMatchSkills == nil {
		t.Fatalf("expected empty partial match list")
	}
}

func TestAnalyzeSkillGap_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model not loaded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.AnalyzeSkillGap(context.Background(), AnalyzeRequest{UserID: "u1"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAnalyzeSkillGap_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.AnalyzeSkillGap(context.Background(), AnalyzeRequest{UserID: "u1"})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestParseRecommendationResponse_Defaults(t *testing.T) {
	body := []byte(`{
		"courseRecommendations": [
			{"id": "c1", "title": "Go Basics", "skillName": "Go"},
			{"id": "c2", "title": "K8s", "rating": 4.7, "students": "250", "relevanceScore": 0.95, "features": ["Certificate"]}
		],
		"learningPathway": [
			{"step": 1, "title": "Start", "skills": ["Go"], "status": "current", "courses": ["c1"]}
		],
		"insights": ["Keep going"]
	}`)

	res, err := ParseRecommendationResponse(body)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(res.Courses))
	}
	first := res.Courses[0]
	if first.Rating != 4.0 || first.StudentCount != 1000 || first.RelevanceScore != 0.8 {
		t.Fatalf("expected defaults, got %+v", first)
	}
	second := res.Courses[1]
	if second.Rating != 4.7 || second.StudentCount != 250 || second.RelevanceScore != 0.95 {
		t.Fatalf("unexpected course values %+v", second)
	}
	if len(res.Pathway) != 1 || res.Pathway[0].Step != 1 || res.Pathway[0].Courses[0] != "c1" {
		t.Fatalf("unexpected pathway %+v", res.Pathway)
	}
	if len(res.Insights) != 1 {
		t.Fatalf("unexpected insights %v", res.Insights)
	}
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	if c := NewClient("  ", time.Second, nil); c != nil {
		t.Fatalf("expected nil client for empty base url")
	}
}
