package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"workskill/internal/infrastructure/gemini"
	"workskill/internal/usecase/exambank"
)

const (
	ExamSourceGemini    = "gemini"
	ExamSourceRuleBased = "rule-based"

	defaultExamCategory   = "General"
	defaultExamDifficulty = "intermediate"
	defaultExamQuestions  = 5
	maxExamQuestions      = 20
)

var errTooFewQuestions = errors.New("generated exam has too few valid questions")

var examGenerationConfig = gemini.GenerationConfig{
	Temperature:     0.7,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 1024,
}

type GenerateExamInput struct {
	Skill             string
	Category          string
	Difficulty        string
	NumberOfQuestions int
}

type Exam struct {
	Skill          string              `json:"skill"`
	Category       string              `json:"category"`
	Difficulty     string              `json:"difficulty"`
	Questions      []exambank.Question `json:"questions"`
	TotalQuestions int                 `json:"totalQuestions"`
	Source         string              `json:"source"`
	Model          string              `json:"model,omitempty"`
	GeneratedAt    time.Time           `json:"generatedAt"`
}

type AnswerEvaluation struct {
	Score      int     `json:"score"`
	Feedback   string  `json:"feedback"`
	Confidence float64 `json:"confidence"`
}

type ExamUsecase interface {
	GenerateExam(ctx context.Context, in GenerateExamInput) (Exam, error)
	EvaluateAnswer(ctx context.Context, question, answer, contextText string) (AnswerEvaluation, error)
	Usage() gemini.UsageStats
	ResetUsage()
}

type ExamService struct {
	ai     ExamGenerator
	bank   *exambank.Bank
	rnd    *rand.Rand
	logger *log.Logger
	now    func() time.Time
}

func NewExamUsecase(ai ExamGenerator, bank *exambank.Bank, logger *log.Logger) *ExamService {
	if bank == nil {
		bank = exambank.MustLoad()
	}
	return &ExamService{ai: ai, bank: bank, logger: logger, now: time.Now}
}

func (u *ExamService) GenerateExam(ctx context.Context, in GenerateExamInput) (Exam, error) {
	skillName := strings.TrimSpace(in.Skill)
	if skillName == "" {
		return Exam{}, ErrInvalidInput
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultExamCategory
	}
	difficulty := strings.TrimSpace(in.Difficulty)
	if difficulty == "" {
		difficulty = defaultExamDifficulty
	}
	n := in.NumberOfQuestions
	if n <= 0 {
		n = defaultExamQuestions
	}
	if n > maxExamQuestions {
		n = maxExamQuestions
	}

	exam := Exam{
		Skill:       skillName,
		Category:    category,
		Difficulty:  difficulty,
		GeneratedAt: u.now().UTC(),
	}

	if u.ai != nil && u.ai.Enabled() {
		var questions []exambank.Question
		prompt := examPrompt(skillName, category, difficulty, n)
		res, err := u.ai.GenerateWithFallback(ctx, prompt, examGenerationConfig, func(text string) error {
			qs := ParseGeneratedQuestions(text)
			if len(qs) == 0 || len(qs) < min(3, n) {
				return errTooFewQuestions
			}
			questions = qs
			return nil
		})
		if err == nil {
			if len(questions) > n {
				questions = questions[:n]
			}
			exam.Questions = questions
			exam.TotalQuestions = len(questions)
			exam.Source = ExamSourceGemini
			exam.Model = res.Model
			u.logf("[Exam] generated skill=%q questions=%d model=%s", skillName, len(questions), res.Model)
			return exam, nil
		}
		if ctx.Err() != nil {
			return Exam{}, ctx.Err()
		}
		u.logf("[Exam] gemini unavailable for skill=%q, using rule-based questions: %v", skillName, err)
	}

	exam.Questions = u.bank.Questions(skillName, n, u.rnd)
	exam.TotalQuestions = len(exam.Questions)
	exam.Source = ExamSourceRuleBased
	u.logf("[Exam] rule-based skill=%q questions=%d", skillName, exam.TotalQuestions)
	return exam, nil
}

func (u *ExamService) EvaluateAnswer(_ context.Context, _, _, _ string) (AnswerEvaluation, error) {
	return AnswerEvaluation{Score: 75, Feedback: "Good understanding shown", Confidence: 0.8}, nil
}

func (u *ExamService) Usage() gemini.UsageStats {
	if u.ai == nil {
		return gemini.UsageStats{
			APIKeyUsage: map[string]int{},
			ModelUsage:  map[string]int{},
		}
	}
	return u.ai.Usage()
}

func (u *ExamService) ResetUsage() {
	if u.ai != nil {
		u.ai.ResetUsage()
	}
}

func (u *ExamService) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func examPrompt(skillName, category, difficulty string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d multiple choice questions about %s. Difficulty: %s. Category: %s.\n\n", n, skillName, difficulty, category)
	b.WriteString("STRICT FORMAT REQUIREMENTS - FOLLOW EXACTLY:\n")
	b.WriteString("- Each question must start with 'Q:' followed by the question text\n")
	b.WriteString("- Then exactly 4 options labeled A), B), C), D)\n")
	b.WriteString("- End with 'Correct:' followed by the correct letter (A, B, C, or D)\n")
	b.WriteString("- Separate questions with exactly one blank line\n\n")
	b.WriteString("EXAMPLE:\n")
	b.WriteString("Q: What is the main purpose of this technology?\n")
	b.WriteString("A) Frontend development\nB) Backend development\nC) Database management\nD) All of the above\n")
	b.WriteString("Correct: D\n\n")
	fmt.Fprintf(&b, "Now generate %d questions about %s:", n, skillName)
	return b.String()
}

var optionLine = regexp.MustCompile(`^[A-D]\) `)

// ParseGeneratedQuestions reads the Q:/A)..D)/Correct: format. Only
// questions with exactly four options and a valid answer letter are kept.
func ParseGeneratedQuestions(text string) []exambank.Question {
	out := make([]exambank.Question, 0)
	var cur *exambank.Question
	answered := false

	flush := func() {
		if cur != nil && cur.Question != "" && len(cur.Options) == 4 && answered {
			cur.ID = len(out) + 1
			out = append(out, *cur)
		}
		cur = nil
		answered = false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Q:"):
			flush()
			cur = &exambank.Question{Question: strings.TrimSpace(line[2:]), Options: []string{}}
		case optionLine.MatchString(line):
			if cur != nil {
				cur.Options = append(cur.Options, strings.TrimSpace(line[3:]))
			}
		case strings.HasPrefix(line, "Correct:"):
			if cur == nil {
				continue
			}
			letter := strings.ToUpper(strings.TrimSpace(line[len("Correct:"):]))
			if len(letter) > 0 {
				letter = letter[:1]
			}
			if idx := strings.Index("ABCD", letter); letter != "" && idx >= 0 {
				cur.CorrectAnswer = idx
				answered = true
			}
		}
	}
	flush()
	return out
}
