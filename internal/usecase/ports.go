package usecase

import (
	"context"
	"time"

	"workskill/internal/infrastructure/gemini"
)

// Cache is the subset of the Redis cache the usecases rely on. Every method
// must behave as a miss or a no-op when the backing store is unavailable.
type Cache interface {
	Available() bool
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string)
	InvalidateUser(ctx context.Context, userID string) error
}

type Notifier interface {
	Notify(userID, eventType string, payload any)
}

type ExamGenerator interface {
	Enabled() bool
	GenerateWithFallback(ctx context.Context, prompt string, cfg gemini.GenerationConfig, validate func(string) error) (gemini.Result, error)
	Usage() gemini.UsageStats
	ResetUsage()
}

type ResumeModel interface {
	Enabled() bool
	Generate(ctx context.Context, model, prompt string, cfg gemini.GenerationConfig) (string, error)
}

type TextExtractor interface {
	Extract(fileType string, data []byte) (string, error)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, string, any) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
