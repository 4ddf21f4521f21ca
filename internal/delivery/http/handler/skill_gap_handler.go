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

type SkillGapHandler struct {
	uc usecase.SkillGapUsecase
}

func NewSkillGapHandler(uc usecase.SkillGapUsecase) *SkillGapHandler {
	return &SkillGapHandler{uc: uc}
}

func (h *SkillGapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	owner := middleware.RequireSelfOrHR("userId")
	r.Post("/skill-gap", h.AnalyzeSelf)
	r.Post("/skill-gap/:userId", owner, h.Analyze)
	r.Get("/skill-gap/:userId/current", owner, h.Current)
	r.Get("/skill-gap/:userId/history", owner, h.History)
}

func (h *SkillGapHandler) Analyze(c fiber.Ctx) error {
	var req dto.SkillGapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.analyze(c, c.Params("userId"), req.JobRole)
}

func (h *SkillGapHandler) AnalyzeSelf(c fiber.Ctx) error {
	return h.analyze(c, middleware.UserID(c), c.Query("jobRole"))
}

func (h *SkillGapHandler) analyze(c fiber.Ctx, userID, jobRole string) error {
	if strings.TrimSpace(jobRole) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Job role is required", nil, nil)
	}

	res, err := h.uc.Analyze(c.Context(), userID, jobRole)
	if err != nil {
		return mapSkillGapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill gap analysis completed", dto.NewSkillGapResponse(res))
}

func (h *SkillGapHandler) Current(c fiber.Ctx) error {
	out, err := h.uc.CurrentRole(c.Context(), c.Params("userId"))
	if err != nil {
		return mapSkillGapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillGapHandler) History(c fiber.Ctx) error {
	items, err := h.uc.History(c.Context(), c.Params("userId"))
	if err != nil {
		return mapSkillGapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillGapHistory(items))
}

func mapSkillGapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrAnalysisInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Analysis already in progress", nil, err)
	case errors.Is(err, usecase.ErrAnalysisFailed):
		return middleware.NewUpstreamError("Skill gap analysis failed", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
