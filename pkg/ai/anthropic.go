package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

// AnthropicConfig holds Anthropic messages API settings.
type AnthropicConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Logger      zerolog.Logger
}

// AnthropicInvoker implements Invoker against the Anthropic messages API.
type AnthropicInvoker struct {
	client *anthropic.Client
	cfg    AnthropicConfig
	inst   instrument
}

// NewAnthropicInvoker constructs an invoker. SDK retries are disabled; failures surface
// to the caller immediately.
func NewAnthropicInvoker(cfg AnthropicConfig) (*AnthropicInvoker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "claude-haiku-4-5-20251001"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicInvoker{
		client: &client,
		cfg:    cfg,
		inst:   newInstrument("anthropic", cfg.Model, cfg.Logger),
	}, nil
}

// Invoke sends prompt as a single user message and returns the first text block.
func (a *AnthropicInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	return a.inst.run(ctx, prompt, func(ctx context.Context) (string, error) {
		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(a.cfg.Model),
			MaxTokens: int64(a.cfg.MaxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		}
		if a.cfg.Temperature > 0 {
			params.Temperature = anthropic.Float(a.cfg.Temperature)
		}

		msg, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return "", mapAnthropicError(err)
		}

		for _, block := range msg.Content {
			if block.Type == "text" {
				return block.Text, nil
			}
		}

		return "", &ProviderError{
			Provider: "anthropic",
			Kind:     KindInvalidResponse,
			Err:      errors.New("no text content in response"),
		}
	})
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return classify("anthropic", apiErr.StatusCode, err)
	}
	return classify("anthropic", 0, err)
}
