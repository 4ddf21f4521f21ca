package routes

import "github.com/gofiber/fiber/v3"

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	h := r.handlers

	if h.Auth != nil {
		h.Auth.RegisterRoutes(api.Group("/auth"))
	}

	// Registered after /auth so login and signup never reach the guard.
	protected := api.Group("", r.auth)

	skills := protected.Group("/skills")
	if h.Exam != nil {
		h.Exam.RegisterRoutes(skills)
	}
	if h.UserSkill != nil {
		h.UserSkill.RegisterRoutes(skills)
	}

	if h.SkillGap != nil {
		h.SkillGap.RegisterRoutes(protected.Group("/analyze"))
	}
	if h.Recommendation != nil {
		h.Recommendation.RegisterRoutes(protected.Group("/recommendations"))
	}
	if h.UserData != nil {
		h.UserData.RegisterRoutes(protected.Group("/user"))
	}

	if h.Resume != nil {
		h.Resume.RegisterRoutes(protected.Group("/profile/resumes"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(protected.Group("/profile"))
	}
}
