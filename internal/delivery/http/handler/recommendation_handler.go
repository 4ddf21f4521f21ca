package handler

import (
	"errors"

	"workskill/internal/delivery/http/middleware"
	"workskill/internal/pkg/response"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/user/:userId", middleware.RequireSelfOrHR("userId"), h.ForUser)
	r.Post("/save-enrollment", h.SaveEnrollment)
	r.Post("/save-course", h.SaveCourse)
}

func (h *RecommendationHandler) ForUser(c fiber.Ctx) error {
	rec, err := h.uc.ForUser(c.Context(), c.Params("userId"))
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rec)
}

func (h *RecommendationHandler) SaveEnrollment(c fiber.Ctx) error {
	in, err := courseActionFromQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.SaveEnrollment(c.Context(), in)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Enrollment saved", out)
}

func (h *RecommendationHandler) SaveCourse(c fiber.Ctx) error {
	in, err := courseActionFromQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.SaveCourse(c.Context(), in)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Course saved", out)
}

func courseActionFromQuery(c fiber.Ctx) (usecase.CourseActionInput, error) {
	in := usecase.CourseActionInput{
		UserID:      c.Query("userId"),
		CourseID:    c.Query("courseId"),
		CourseTitle: c.Query("courseTitle"),
	}
	if in.UserID == "" || in.CourseID == "" || in.CourseTitle == "" {
		return in, middleware.NewAppError(fiber.StatusBadRequest, "userId, courseId and courseTitle are required", nil, nil)
	}
	if !middleware.CanAccessUser(c, in.UserID) {
		return in, middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
	return in, nil
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
