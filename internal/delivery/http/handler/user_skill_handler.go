package handler

import (
	"errors"

	"workskill/internal/delivery/http/middleware"
	"workskill/internal/pkg/response"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	owner := middleware.RequireSelfOrHR("userId")
	r.Get("/user/:userId", owner, h.List)
	r.Get("/user/:userId/analytics", owner, h.Analytics)
	r.Get("/user/:userId/ml-ready", owner, h.MLReady)
	r.Post("/sync-from-profile/:userId", owner, h.SyncFromProfile)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListUserSkills(c.Context(), c.Params("userId"))
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *UserSkillHandler) Analytics(c fiber.Ctx) error {
	out, err := h.uc.Analytics(c.Context(), c.Params("userId"))
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *UserSkillHandler) MLReady(c fiber.Ctx) error {
	out, err := h.uc.MLReady(c.Context(), c.Params("userId"))
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *UserSkillHandler) SyncFromProfile(c fiber.Ctx) error {
	out, err := h.uc.SyncFromProfile(c.Context(), c.Params("userId"))
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, out.Message, out)
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
