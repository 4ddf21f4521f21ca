package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"workskill/internal/config"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var (
	ErrDisabled      = errors.New("gemini: no api keys configured")
	ErrQuotaExceeded = errors.New("gemini: all keys and models reached their usage limits")
	ErrAllFailed     = errors.New("gemini: every model and key combination failed")
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// ExamModels is the rotation order used for exam generation.
var ExamModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-1.5-pro",
	"gemini-2.0-flash-exp",
	"gemini-2.0-flash-lite",
}

type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// Generator performs a single generate call for one key and model.
type Generator interface {
	Generate(ctx context.Context, apiKey, model, prompt string, cfg GenerationConfig) (string, error)
}

type Result struct {
	Text  string
	Model string
	Key   string
}

type UsageStats struct {
	APIKeyUsage         map[string]int `json:"apiKeyUsage"`
	ModelUsage          map[string]int `json:"modelUsage"`
	AvailableKeys       int            `json:"availableKeys"`
	TotalKeys           int            `json:"totalKeys"`
	MaxRequestsPerKey   int            `json:"maxRequestsPerKey"`
	MaxRequestsPerModel int            `json:"maxRequestsPerModel"`
}

type Client struct {
	gen        Generator
	keys       []string
	models     []string
	keyLimit   int
	modelLimit int
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *log.Logger

	mu         sync.Mutex
	keyUsage   map[string]int
	modelUsage map[string]int
}

func New(cfg config.GeminiConfig, logger *log.Logger) *Client {
	return NewWithGenerator(newGenAIGenerator(), cfg, logger)
}

func NewWithGenerator(gen Generator, cfg config.GeminiConfig, logger *log.Logger) *Client {
	keyLimit := cfg.KeyLimit
	if keyLimit <= 0 {
		keyLimit = 50
	}
	modelLimit := cfg.ModelLimit
	if modelLimit <= 0 {
		modelLimit = 15
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	c := &Client{
		gen:        gen,
		models:     append([]string(nil), ExamModels...),
		keyLimit:   keyLimit,
		modelLimit: modelLimit,
		timeout:    cfg.Timeout,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
		keyUsage:   make(map[string]int),
		modelUsage: make(map[string]int),
	}
	seen := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		c.keys = append(c.keys, k)
		c.keyUsage[k] = 0
	}
	for _, m := range c.models {
		c.modelUsage[m] = 0
	}

	c.logf("[Gemini] initialized keys=%d models=%d", len(c.keys), len(c.models))
	return c
}

func (c *Client) Enabled() bool {
	return c != nil && len(c.keys) > 0
}

// GenerateWithFallback walks models in order and, for each model still under
// its limit, every key still under its limit. A combination succeeds only
// when the call returns text and validate accepts it; only then are the key
// and model counters incremented.
func (c *Client) GenerateWithFallback(ctx context.Context, prompt string, cfg GenerationConfig, validate func(string) error) (Result, error) {
	if !c.Enabled() {
		return Result{}, ErrDisabled
	}

	keys := c.availableKeys()
	if len(keys) == 0 {
		c.logf("[Gemini] all api keys reached their usage limits")
		return Result{}, ErrQuotaExceeded
	}

	var lastErr error
	for _, model := range c.models {
		if c.modelExhausted(model) {
			continue
		}
		for _, key := range keys {
			text, err := c.call(ctx, key, model, prompt, cfg)
			if err == nil && validate != nil {
				err = validate(text)
			}
			if err != nil {
				if ctx.Err() != nil {
					return Result{}, ctx.Err()
				}
				c.logf("[Gemini] model=%s key=%s failed: %v", model, MaskKey(key), err)
				lastErr = err
				continue
			}

			used := c.record(key, model)
			c.logf("[Gemini] model=%s key=%s ok usage=%d/%d", model, MaskKey(key), used, c.keyLimit)
			return Result{Text: text, Model: model, Key: MaskKey(key)}, nil
		}
	}

	if lastErr != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAllFailed, lastErr)
	}
	return Result{}, ErrQuotaExceeded
}

// Generate calls one fixed model, trying each key under its limit in turn.
// Only the key counter is affected.
func (c *Client) Generate(ctx context.Context, model, prompt string, cfg GenerationConfig) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	keys := c.availableKeys()
	if len(keys) == 0 {
		return "", ErrQuotaExceeded
	}

	var lastErr error
	for _, key := range keys {
		text, err := c.call(ctx, key, model, prompt, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			c.logf("[Gemini] model=%s key=%s failed: %v", model, MaskKey(key), err)
			lastErr = err
			continue
		}
		c.mu.Lock()
		c.keyUsage[key]++
		c.mu.Unlock()
		return text, nil
	}
	return "", fmt.Errorf("%w: %v", ErrAllFailed, lastErr)
}

func (c *Client) Usage() UsageStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := UsageStats{
		APIKeyUsage:         make(map[string]int, len(c.keyUsage)),
		ModelUsage:          make(map[string]int, len(c.modelUsage)),
		TotalKeys:           len(c.keys),
		MaxRequestsPerKey:   c.keyLimit,
		MaxRequestsPerModel: c.modelLimit,
	}
	for k, n := range c.keyUsage {
		stats.APIKeyUsage[MaskKey(k)] = n
		if n < c.keyLimit {
			stats.AvailableKeys++
		}
	}
	for m, n := range c.modelUsage {
		stats.ModelUsage[m] = n
	}
	return stats
}

func (c *Client) ResetUsage() {
	c.mu.Lock()
	for k := range c.keyUsage {
		c.keyUsage[k] = 0
	}
	for m := range c.modelUsage {
		c.modelUsage[m] = 0
	}
	c.mu.Unlock()
	c.logf("[Gemini] usage counters reset")
}

// MaskKey keeps the first and last four characters of a key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func (c *Client) call(ctx context.Context, key, model, prompt string, cfg GenerationConfig) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	text, err := c.gen.Generate(callCtx, key, model, prompt, cfg)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *Client) availableKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		if c.keyUsage[k] < c.keyLimit {
			out = append(out, k)
		}
	}
	return out
}

func (c *Client) modelExhausted(model string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelUsage[model] >= c.modelLimit
}

func (c *Client) record(key, model string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyUsage[key]++
	c.modelUsage[model]++
	return c.keyUsage[key]
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

type genAIGenerator struct {
	mu      sync.Mutex
	clients map[string]*genai.Client
}

func newGenAIGenerator() *genAIGenerator {
	return &genAIGenerator{clients: make(map[string]*genai.Client)}
}

func (g *genAIGenerator) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if cl, ok := g.clients[apiKey]; ok {
		return cl, nil
	}
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.clients[apiKey] = cl
	return cl, nil
}

func (g *genAIGenerator) Generate(ctx context.Context, apiKey, model, prompt string, cfg GenerationConfig) (string, error) {
	cl, err := g.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	gc := &genai.GenerateContentConfig{MaxOutputTokens: cfg.MaxOutputTokens}
	if cfg.Temperature > 0 {
		gc.Temperature = &cfg.Temperature
	}
	if cfg.TopP > 0 {
		gc.TopP = &cfg.TopP
	}
	if cfg.TopK > 0 {
		gc.TopK = &cfg.TopK
	}

	resp, err := cl.Models.GenerateContent(ctx, model, genai.Text(prompt), gc)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

var _ Generator = (*genAIGenerator)(nil)
