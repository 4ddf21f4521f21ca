package app

import (
	"context"
	"fmt"
	"strings"

	"workskill/internal/config"
	"workskill/internal/delivery/http/handler"
	"workskill/internal/delivery/http/middleware"
	"workskill/internal/delivery/http/routes"
	"workskill/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: cfg.HTTP.BodyLimit,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     c.Config.HTTP.AllowOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cfg := c.Config
	authMw := middleware.NewAuthMiddleware(c.Auth, cfg.JWT.CookieName)
	secureCookie := strings.EqualFold(cfg.App.Environment, "production")

	registry := routes.NewRegistry(routes.Handlers{
		Health:         handler.NewHealthHandler(c.DB, c.Cache),
		Auth:           handler.NewAuthHandler(c.Auth, cfg.JWT.CookieName, cfg.JWT.ExpiresIn, secureCookie),
		UserSkill:      handler.NewUserSkillHandler(c.UserSkills),
		Exam:           handler.NewExamHandler(c.Exams, c.UserSkills),
		SkillGap:       handler.NewSkillGapHandler(c.SkillGap),
		Recommendation: handler.NewRecommendationHandler(c.Recommendations),
		UserData:       handler.NewUserDataHandler(c.UserData),
		Profile:        handler.NewProfileHandler(c.Profiles),
		Resume:         handler.NewResumeHandler(c.Resumes, cfg.Resume.MaxBytes),
		Events:         ws.NewHandler(c.Hub, c.Logger, middleware.UserID),
	}, authMw.Middleware())

	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

// Services reports which optional backends the server can reach.
func (a *App) Services(ctx context.Context) string {
	cfg := a.Container.Config
	cacheUp := a.Container.Cache.Available() && a.Container.Cache.Ping(ctx) == nil
	return describeServices(cfg, cacheUp)
}

func describeServices(cfg config.Config, cacheUp bool) string {
	ml := "disabled"
	if cfg.ML.BaseURL != "" {
		ml = cfg.ML.BaseURL
	}
	gemini := "disabled"
	if n := len(cfg.Gemini.APIKeys); n > 0 {
		gemini = fmt.Sprintf("%d keys model=%s", n, cfg.Gemini.ResumeModel)
	}
	redis := "bypass"
	if cacheUp {
		redis = "up"
	}
	return fmt.Sprintf("ml=%s gemini=%s redis=%s", ml, gemini, redis)
}
