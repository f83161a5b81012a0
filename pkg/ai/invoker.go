package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tutor",
		Subsystem: "ai",
		Name:      "invoke_duration_seconds",
		Help:      "Duration of language model requests",
	}, []string{"provider", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutor",
		Subsystem: "ai",
		Name:      "invoke_failures_total",
		Help:      "Number of failed language model requests",
	}, []string{"provider", "model", "kind"})
)

// Invoker sends a fully rendered prompt to a language model and returns its text reply.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, prompt string) (string, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindRateLimited     ErrorKind = "rate_limited"
	KindUnavailable     ErrorKind = "unavailable"
	KindInvalidResponse ErrorKind = "invalid_response"
)

// ProviderError wraps a failure reported by a model provider.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err was caused by provider throttling.
func IsRateLimited(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Kind == KindRateLimited
}

func classify(provider string, status int, err error) *ProviderError {
	kind := KindUnavailable
	if status == http.StatusTooManyRequests {
		kind = KindRateLimited
	}
	return &ProviderError{Provider: provider, Kind: kind, StatusCode: status, Err: err}
}

// instrument wraps provider calls with a span, the duration histogram and the failure
// counter.
type instrument struct {
	provider string
	model    string
	tracer   trace.Tracer
	logger   zerolog.Logger
}

func newInstrument(provider, model string, logger zerolog.Logger) instrument {
	return instrument{
		provider: provider,
		model:    model,
		tracer:   otel.Tracer("github.com/noah-isme/tutor-api/pkg/ai/" + provider),
		logger:   logger.With().Str("component", "ai_"+provider).Str("model", model).Logger(),
	}
}

func (i instrument) run(parent context.Context, prompt string, call func(ctx context.Context) (string, error)) (string, error) {
	ctx, span := i.tracer.Start(parent, i.provider+".invoke", trace.WithAttributes(
		attribute.String("model", i.model),
		attribute.Int("prompt_chars", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	text, err := call(ctx)
	duration := time.Since(start)
	aiDuration.WithLabelValues(i.provider, i.model).Observe(duration.Seconds())

	if err != nil {
		kind := KindUnavailable
		var providerErr *ProviderError
		if errors.As(err, &providerErr) {
			kind = providerErr.Kind
		}
		aiFailures.WithLabelValues(i.provider, i.model, string(kind)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		i.logger.Warn().Err(err).Dur("duration", duration).Msg("model request failed")
		return "", err
	}

	text = strings.TrimSpace(text)
	span.SetAttributes(attribute.Int("response_chars", len(text)))
	i.logger.Debug().Dur("duration", duration).Int("response_chars", len(text)).Msg("model request completed")
	return text, nil
}
