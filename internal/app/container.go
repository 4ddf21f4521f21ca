package app

import (
	"context"
	"errors"
	"log"
	"os"

	"workskill/internal/config"
	"workskill/internal/database"
	"workskill/internal/database/mongodb"
	"workskill/internal/infrastructure/cache"
	"workskill/internal/infrastructure/gemini"
	"workskill/internal/infrastructure/mlservice"
	"workskill/internal/infrastructure/textextract"
	"workskill/internal/pkg/jwt"
	"workskill/internal/repository"
	"workskill/internal/usecase"
	"workskill/internal/usecase/exambank"
	"workskill/internal/ws"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    jwt.Service
	Gemini *gemini.Client
	ML     mlservice.Client

	Auth            usecase.AuthUsecase
	UserSkills      usecase.UserSkillUsecase
	Exams           usecase.ExamUsecase
	UserData        usecase.UserDataUsecase
	SkillGap        usecase.SkillGapUsecase
	Recommendations usecase.RecommendationUsecase
	Profiles        usecase.ProfileUsecase
	Resumes         usecase.ResumeUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		logger.Printf("[Mongo] ensure indexes failed: %v", err)
	}

	redis := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	notifier := ws.NewNotifier(hub)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	ai := gemini.New(cfg.Gemini, logger)
	ml := mlservice.NewClient(cfg.ML.BaseURL, cfg.ML.Timeout, logger)

	students := repository.NewMongoStudentRepository(db)
	profiles := repository.NewMongoProfileRepository(db)
	userSkills := repository.NewMongoUserSkillRepository(db)
	analyses := repository.NewMongoSkillGapAnalysisRepository(db)
	resumes := repository.NewMongoResumeRepository(db)
	recs := repository.NewMongoRecommendationRepository(db)

	skillUC := usecase.NewUserSkillUsecase(userSkills, profiles, redis, notifier, logger)
	userDataUC := usecase.NewUserDataUsecase(students, profiles, userSkills)

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		Hub:    hub,
		JWT:    jwtSvc,
		Gemini: ai,
		ML:     ml,

		Auth:            usecase.NewAuthUsecase(students, profiles, jwtSvc),
		UserSkills:      skillUC,
		Exams:           usecase.NewExamUsecase(ai, exambank.MustLoad(), logger),
		UserData:        userDataUC,
		SkillGap:        usecase.NewSkillGapUsecase(analyses, userDataUC, ml, redis, notifier, logger),
		Recommendations: usecase.NewRecommendationUsecase(recs, analyses, students, ml, redis, logger),
		Profiles:        usecase.NewProfileUsecase(profiles, students, skillUC, logger),
		Resumes: usecase.NewResumeUsecase(
			resumes,
			profiles,
			students,
			skillUC,
			textextract.New(),
			usecase.NewResumeParser(ai, cfg.Gemini.ResumeModel, logger),
			notifier,
			cfg.Resume,
			logger,
		),
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
