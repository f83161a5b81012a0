package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig defines configuration options for the OpenAI invoker.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIInvoker implements Invoker against the OpenAI chat completion API or any
// compatible endpoint.
type OpenAIInvoker struct {
	client *openai.Client
	cfg    OpenAIConfig
	inst   instrument
}

// NewOpenAIInvoker builds a new invoker using the provided configuration.
func NewOpenAIInvoker(cfg OpenAIConfig) (*OpenAIInvoker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIInvoker{
		client: openai.NewClientWithConfig(config),
		cfg:    cfg,
		inst:   newInstrument("openai", cfg.Model, cfg.Logger),
	}, nil
}

// Invoke sends prompt as a single user message.
func (o *OpenAIInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	return o.inst.run(ctx, prompt, func(ctx context.Context) (string, error) {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.cfg.Model,
			MaxTokens:   o.cfg.MaxTokens,
			Temperature: o.cfg.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", mapOpenAIError(err)
		}

		if len(resp.Choices) == 0 {
			return "", &ProviderError{
				Provider: "openai",
				Kind:     KindInvalidResponse,
				Err:      errors.New("no choices returned"),
			}
		}

		return resp.Choices[0].Message.Content, nil
	})
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classify("openai", apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify("openai", reqErr.HTTPStatusCode, err)
	}
	return classify("openai", 0, err)
}
