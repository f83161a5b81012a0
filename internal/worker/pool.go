// Package worker bounds the number of concurrent language model calls.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/noah-isme/tutor-api/internal/observability"
	"github.com/noah-isme/tutor-api/pkg/ai"
)

// DefaultSize is the pool size used when a non-positive size is configured.
const DefaultSize = 4

// Pool runs model calls on a fixed number of slots. Callers beyond the limit queue in
// arrival order. A caller may abandon its place while queued; once a call has a slot it
// is detached from the caller's cancellation and runs to completion or failure.
type Pool struct {
	invoker ai.Invoker
	sem     *semaphore.Weighted
	size    int
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPool wraps invoker. A zero timeout disables the per-call deadline.
func NewPool(invoker ai.Invoker, size int, timeout time.Duration, logger zerolog.Logger) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	observability.RegisterMetrics()

	return &Pool{
		invoker: invoker,
		sem:     semaphore.NewWeighted(int64(size)),
		size:    size,
		timeout: timeout,
		logger:  logger.With().Str("component", "worker_pool").Int("size", size).Logger(),
	}
}

// Size reports the number of slots.
func (p *Pool) Size() int {
	return p.size
}

// Invoke waits for a free slot and forwards prompt to the wrapped invoker.
func (p *Pool) Invoke(ctx context.Context, prompt string) (string, error) {
	waiting := observability.WorkerWaiting()
	waiting.Inc()
	queuedAt := time.Now()
	err := p.sem.Acquire(ctx, 1)
	waiting.Dec()
	if err != nil {
		p.logger.Debug().Err(err).Msg("caller left the queue")
		return "", err
	}
	defer p.sem.Release(1)

	inFlight := observability.WorkerInFlight()
	inFlight.Inc()
	defer inFlight.Dec()

	if wait := time.Since(queuedAt); wait > time.Second {
		p.logger.Info().Dur("queued", wait).Msg("model call waited for a slot")
	}

	callCtx := context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, p.timeout)
		defer cancel()
	}

	return p.invoker.Invoke(callCtx, prompt)
}
