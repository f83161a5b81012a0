package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiConfig holds Google Gemini settings.
type GeminiConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// GeminiInvoker implements Invoker against the Gemini API.
type GeminiInvoker struct {
	client *genai.Client
	cfg    GeminiConfig
	inst   instrument
}

// NewGeminiInvoker creates a Gemini client.
func NewGeminiInvoker(ctx context.Context, cfg GeminiConfig) (*GeminiInvoker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiInvoker{
		client: client,
		cfg:    cfg,
		inst:   newInstrument("gemini", cfg.Model, cfg.Logger),
	}, nil
}

// Invoke sends prompt as a single user turn.
func (g *GeminiInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	return g.inst.run(ctx, prompt, func(ctx context.Context) (string, error) {
		config := &genai.GenerateContentConfig{}
		if g.cfg.MaxTokens > 0 {
			config.MaxOutputTokens = int32(g.cfg.MaxTokens)
		}
		if g.cfg.Temperature > 0 {
			temp := g.cfg.Temperature
			config.Temperature = &temp
		}

		result, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), config)
		if err != nil {
			return "", mapGeminiError(err)
		}

		return result.Text(), nil
	})
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return classify("gemini", apiErr.Code, err)
	}
	return classify("gemini", 0, err)
}
