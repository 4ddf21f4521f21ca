package routes

import (
	"workskill/internal/delivery/http/handler"
	"workskill/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	UserSkill      *handler.UserSkillHandler
	Exam           *handler.ExamHandler
	SkillGap       *handler.SkillGapHandler
	Recommendation *handler.RecommendationHandler
	UserData       *handler.UserDataHandler
	Profile        *handler.ProfileHandler
	Resume         *handler.ResumeHandler
	Events         *ws.Handler
}

type Registry struct {
	handlers Handlers
	auth     fiber.Handler
}

// NewRegistry wires handlers behind auth, the authentication middleware
// guarding every route except /health and /api/auth.
func NewRegistry(handlers Handlers, auth fiber.Handler) *Registry {
	return &Registry{handlers: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerEvents(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.handlers.Events == nil {
		return
	}
	app.Get("/ws", r.auth, r.handlers.Events.HandleEvents)
}
