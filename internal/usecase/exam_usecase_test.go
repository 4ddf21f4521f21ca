package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"workskill/internal/infrastructure/gemini"
	"workskill/internal/usecase/exambank"
)

type fakeExamAI struct {
	enabled bool
	text    string
	err     error
	prompt  string
	reset   bool
}

func (f *fakeExamAI) Enabled() bool { return f.enabled }
func (f *fakeExamAI) GenerateWithFallback(_ context.Context, prompt string, _ gemini.GenerationConfig, validate func(string) error) (gemini.Result, error) {
	f.prompt = prompt
	if f.err != nil {
		return gemini.Result{}, f.err
	}
	if validate != nil {
		if err := validate(f.text); err != nil {
			return gemini.Result{}, err
		}
	}
	return gemini.Result{Text: f.text, Model: "gemini-1.5-flash"}, nil
}
func (f *fakeExamAI) Usage() gemini.UsageStats {
	return gemini.UsageStats{TotalKeys: 2, APIKeyUsage: map[string]int{"abcd...wxyz": 1}}
}
func (f *fakeExamAI) ResetUsage() { f.reset = true }

const generatedExam = `Here are your questions:

Q: What does GOROOT point to?
A) The Go installation
B) The module cache
C) The workspace
D) The build cache
Correct: A

Q: Which keyword starts a goroutine?
A) async
B) go
C) spawn
D) thread
Correct: b

Q: Incomplete question
A) one
B) two
Correct: A

Q: Which type is a reference type?
A) int
B) struct
C) map
D) array
Correct: C
`

func TestParseGeneratedQuestions(t *testing.T) {
	qs := ParseGeneratedQuestions(generatedExam)
	if len(qs) != 3 {
		t.Fatalf("expected 3 valid questions, got %d: %+v", len(qs), qs)
	}
	if qs[0].CorrectAnswer != 0 || qs[1].CorrectAnswer != 1 || qs[2].CorrectAnswer != 2 {
		t.Fatalf("unexpected answers %+v", qs)
	}
	if qs[2].ID != 3 || qs[1].Options[1] != "go" {
		t.Fatalf("unexpected parse %+v", qs[1])
	}
}

func TestGenerateExam_RequiresSkill(t *testing.T) {
	uc := NewExamUsecase(nil, nil, nil)
	if _, err := uc.GenerateExam(context.Background(), GenerateExamInput{Skill: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateExam_UsesGemini(t *testing.T) {
	ai := &fakeExamAI{enabled: true, text: generatedExam}
	uc := NewExamUsecase(ai, exambank.MustLoad(), nil)
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	exam, err := uc.GenerateExam(context.Background(), GenerateExamInput{Skill: "Go", NumberOfQuestions: 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if exam.Source != ExamSourceGemini || exam.Model != "gemini-1.5-flash" {
		t.Fatalf("unexpected source %+v", exam)
	}
	if exam.TotalQuestions != 2 || len(exam.Questions) != 2 {
		t.Fatalf("expected truncation to 2, got %d", exam.TotalQuestions)
	}
	if exam.Category != "General" || exam.Difficulty != "intermediate" {
		t.Fatalf("expected defaults, got %s/%s", exam.Category, exam.Difficulty)
	}
}

func TestGenerateExam_FallsBackToBank(t *testing.T) {
	cases := []struct {
		name string
		ai   *fakeExamAI
	}{
		{"disabled", &fakeExamAI{enabled: false}},
		{"error", &fakeExamAI{enabled: true, err: gemini.ErrAllFailed}},
		{"too few", &fakeExamAI{enabled: true, text: "Q: only one\nA) a\nB) b\nC) c\nD) d\nCorrect: A"}},
	}
	for _, tc := range cases {
		uc := NewExamUsecase(tc.ai, nil, nil)
		exam, err := uc.GenerateExam(context.Background(), GenerateExamInput{Skill: "Python", NumberOfQuestions: 30})
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", tc.name, err)
		}
		if exam.Source != ExamSourceRuleBased {
			t.Fatalf("%s: expected rule-based, got %s", tc.name, exam.Source)
		}
		if exam.TotalQuestions != 5 {
			t.Fatalf("%s: python bank has 5 questions, got %d", tc.name, exam.TotalQuestions)
		}
	}
}

func TestExamUsage(t *testing.T) {
	uc := NewExamUsecase(nil, nil, nil)
	if stats := uc.Usage(); stats.APIKeyUsage == nil || stats.TotalKeys != 0 {
		t.Fatalf("unexpected empty stats %+v", stats)
	}
	uc.ResetUsage()

	ai := &fakeExamAI{}
	uc = NewExamUsecase(ai, nil, nil)
	if uc.Usage().TotalKeys != 2 {
		t.Fatalf("expected stats from generator")
	}
	uc.ResetUsage()
	if !ai.reset {
		t.Fatalf("expected reset to reach generator")
	}

	ev, _ := uc.EvaluateAnswer(context.Background(), "q", "a", "c")
	if ev.Score != 75 || ev.Feedback != "Good understanding shown" || ev.Confidence != 0.8 {
		t.Fatalf("unexpected evaluation %+v", ev)
	}
}
