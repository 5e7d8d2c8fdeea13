package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rahul4469/truthguardian/internal/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// TextGenerator sends a prompt to a generative model and returns its text reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig holds settings for the Gemini client.
type GeminiConfig struct {
	APIKey          string
	Model           string
	BaseURL         string // empty uses the SDK default
	APIVersion      string
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
	Timeout         time.Duration
	JSONMode        bool

	// Outbound call budget shared by every request of the process.
	RequestsPerMinute int
	Burst             int

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// DefaultGeminiConfig returns the generation parameters the verdict prompt
// was tuned with.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:            apiKey,
		Model:             "gemini-2.5-flash",
		APIVersion:        "v1beta",
		Temperature:       0.4,
		TopK:              32,
		TopP:              0.95,
		MaxOutputTokens:   1024,
		Timeout:           30 * time.Second,
		JSONMode:          true,
		RequestsPerMinute: 30,
		Burst:             5,
	}
}

// GeminiClient implements TextGenerator on the Google Gen AI SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	config  *genai.GenerateContentConfig
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewGeminiClient creates a Gemini client. The API key never leaves the
// server process.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key not configured")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini model not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		TopK:            genai.Ptr(cfg.TopK),
		TopP:            genai.Ptr(cfg.TopP),
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	if cfg.JSONMode {
		genConfig.ResponseMIMEType = "application/json"
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		config:  genConfig,
		limiter: newLimiter(cfg.RequestsPerMinute, cfg.Burst),
		logger:  logger.Named("gemini"),
	}, nil
}

func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// Generate issues one generateContent call. Every failure is a
// *models.RemoteCallError.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &models.RemoteCallError{Op: "rate limit", Err: err}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		c.logger.Warn("generate content failed",
			zap.String("model", c.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", &models.RemoteCallError{Op: "generate content", Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &models.RemoteCallError{Op: "generate content", Err: models.ErrEmptyReply}
	}

	c.logger.Debug("generate content completed",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("reply_bytes", len(text)))

	return text, nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}
