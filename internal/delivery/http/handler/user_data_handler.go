package handler

import (
	"errors"

	"workskill/internal/delivery/http/middleware"
	"workskill/internal/pkg/response"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserDataHandler struct {
	uc usecase.UserDataUsecase
}

func NewUserDataHandler(uc usecase.UserDataUsecase) *UserDataHandler {
	return &UserDataHandler{uc: uc}
}

func (h *UserDataHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skill-gap-data/:userId", middleware.RequireSelfOrHR("userId"), h.SkillGapData)
}

func (h *UserDataHandler) SkillGapData(c fiber.Ctx) error {
	out, err := h.uc.SkillGapData(c.Context(), c.Params("userId"))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
