package handler

import (
	"context"
	"time"

	"workskill/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type CacheStatus interface {
	Available() bool
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	cache   CacheStatus
	timeout time.Duration
}

func NewHealthHandler(db Pinger, cache CacheStatus) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

// Check always answers 200; a down database is reported in the payload.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	mongo := "down"
	if h.db != nil && h.db.Ping(ctx) == nil {
		mongo = "up"
	}

	cache := "bypass"
	if h.cache != nil && h.cache.Available() && h.cache.Ping(ctx) == nil {
		cache = "up"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"mongo": mongo,
		"cache": cache,
	})
}
