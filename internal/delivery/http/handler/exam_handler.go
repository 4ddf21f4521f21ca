package handler

import (
	"errors"
	"strings"

	"workskill/internal/delivery/http/dto"
	"workskill/internal/delivery/http/middleware"
	"workskill/internal/pkg/response"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ExamHandler shares the /api/skills prefix with UserSkillHandler.
type ExamHandler struct {
	exams  usecase.ExamUsecase
	skills usecase.UserSkillUsecase
}

func NewExamHandler(exams usecase.ExamUsecase, skills usecase.UserSkillUsecase) *ExamHandler {
	return &ExamHandler{exams: exams, skills: skills}
}

func (h *ExamHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/generate-exam", h.Generate)
	r.Post("/evaluate-answer", h.EvaluateAnswer)
	r.Get("/exam-usage", h.Usage)
	r.Post("/exam-usage/reset", h.ResetUsage)
	r.Post("/:skillId/exam-result", h.SubmitResult)
}

func (h *ExamHandler) Generate(c fiber.Ctx) error {
	var req dto.GenerateExamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Skill) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill name is required", nil, nil)
	}

	exam, err := h.exams.GenerateExam(c.Context(), usecase.GenerateExamInput{
		Skill:             req.Skill,
		Category:          req.Category,
		Difficulty:        req.Difficulty,
		NumberOfQuestions: req.NumberOfQuestions,
	})
	if err != nil {
		return mapExamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Exam generated successfully", exam)
}

func (h *ExamHandler) SubmitResult(c fiber.Ctx) error {
	var req dto.ExamResultRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.skills.RecordExamResult(c.Context(), middleware.UserID(c), c.Params("skillId"), usecase.ExamResultInput{
		Score:  req.Score,
		Status: req.Status,
	})
	if err != nil {
		return mapExamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Exam result saved", updated)
}

func (h *ExamHandler) EvaluateAnswer(c fiber.Ctx) error {
	var req dto.EvaluateAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.exams.EvaluateAnswer(c.Context(), req.Question, req.UserAnswer, req.Context)
	if err != nil {
		return mapExamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ExamHandler) Usage(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.exams.Usage())
}

func (h *ExamHandler) ResetUsage(c fiber.Ctx) error {
	h.exams.ResetUsage()
	return response.Success(c, fiber.StatusOK, "Usage counters reset", h.exams.Usage())
}

func mapExamUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
