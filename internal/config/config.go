package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Gemini GeminiConfig
	ML     MLConfig
	Resume ResumeConfig
	HTTP   HTTPConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	Secret     string
	ExpiresIn  time.Duration
	CookieName string
}

type GeminiConfig struct {
	APIKeys           []string
	KeyLimit          int
	ModelLimit        int
	ResumeModel       string
	RequestsPerSecond float64
	Timeout           time.Duration
}

type MLConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ResumeConfig struct {
	MaxBytes   int64
	MaxPerUser int
}

type HTTPConfig struct {
	AllowOrigins []string
	BodyLimit    int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

const defaultAllowOrigins = "http://localhost:3000,http://localhost:5173,http://localhost:8000"

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Mongo = MongoConfig{
		URI:            req("MONGO_URI"),
		Database:       opt("MONGO_DATABASE", "workskill"),
		ConnectTimeout: optDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
	}

	cfg.JWT = JWTConfig{
		Secret:     req("JWT_SECRET"),
		ExpiresIn:  optDuration("JWT_EXPIRES_IN", 24*time.Hour),
		CookieName: opt("JWT_COOKIE_NAME", "jwt"),
	}

	cfg.Gemini = GeminiConfig{
		APIKeys:           splitList(opt("GEMINI_API_KEYS", "")),
		KeyLimit:          optInt("GEMINI_KEY_DAILY_LIMIT", 50),
		ModelLimit:        optInt("GEMINI_MODEL_LIMIT", 15),
		ResumeModel:       opt("GEMINI_RESUME_MODEL", "gemini-2.5-flash"),
		RequestsPerSecond: optFloat("GEMINI_RPS", 2),
		Timeout:           optDuration("GEMINI_TIMEOUT", 30*time.Second),
	}

	cfg.ML = MLConfig{
		BaseURL: strings.TrimRight(opt("ML_SERVICE_URL", "http://localhost:8000"), "/"),
		Timeout: optDuration("ML_SERVICE_TIMEOUT", 30*time.Second),
	}

	cfg.Resume = ResumeConfig{
		MaxBytes:   int64(optInt("RESUME_MAX_BYTES", 5*1024*1024)),
		MaxPerUser: optInt("RESUME_MAX_PER_USER", 4),
	}

	cfg.HTTP = HTTPConfig{
		AllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS", defaultAllowOrigins)),
		BodyLimit:    optInt("HTTP_BODY_LIMIT", 8*1024*1024),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
