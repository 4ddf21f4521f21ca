package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"workskill/internal/delivery/http/middleware"
	"workskill/internal/pkg/response"
	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc       usecase.ResumeUsecase
	maxBytes int64
}

func NewResumeHandler(uc usecase.ResumeUsecase, maxBytes int64) *ResumeHandler {
	return &ResumeHandler{uc: uc, maxBytes: maxBytes}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Upload)
	r.Post("/extract-text", h.ExtractText)
	r.Get("/", h.List)
	r.Get("/history", h.History)
	r.Get("/:id", h.Get)
	r.Get("/:id/download", h.Download)
	r.Put("/:id/activate", h.Activate)
	r.Post("/:id/reanalyze", h.Reanalyze)
	r.Delete("/:id", h.Delete)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	in, err := h.readUpload(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Upload(c.Context(), middleware.UserID(c), in)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, out.Message, out)
}

func (h *ResumeHandler) ExtractText(c fiber.Ctx) error {
	in, err := h.readUpload(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ExtractText(c.Context(), in)
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ResumeHandler) History(c fiber.Ctx) error {
	items, err := h.uc.History(c.Context(), middleware.UserID(c))
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	res, err := h.uc.Get(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResumeHandler) Download(c fiber.Ctx) error {
	file, err := h.uc.Download(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.Status(fiber.StatusOK).Send(file.Data)
}

func (h *ResumeHandler) Activate(c fiber.Ctx) error {
	if err := h.uc.Activate(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume set as active", nil)
}

func (h *ResumeHandler) Reanalyze(c fiber.Ctx) error {
	out, err := h.uc.Reanalyze(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, out.Message, out)
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume deleted successfully", nil)
}

func (h *ResumeHandler) readUpload(c fiber.Ctx) (usecase.UploadInput, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return usecase.UploadInput{}, middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return usecase.UploadInput{}, mapResumeUsecaseError(usecase.ErrFileTooLarge)
	}

	data, err := readFormFile(fh, h.maxBytes)
	if err != nil {
		return usecase.UploadInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Could not read uploaded file", nil, err)
	}

	return usecase.UploadInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

func readFormFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		// One extra byte lets the usecase see oversized bodies.
		r = io.LimitReader(f, limit+1)
	}
	return io.ReadAll(r)
}

func mapResumeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrEmptyFile):
		return middleware.NewAppError(fiber.StatusBadRequest, "File is empty", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid file type, only PDF, DOCX and TXT files are allowed", nil, err)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusBadRequest, "File too large", nil, err)
	case errors.Is(err, usecase.ErrTextExtraction):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not extract text from file", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
