// Package events broadcasts tutor activity to Redis pub/sub and NATS subscribers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Event types.
const (
	TypeQuestionsGenerated = "questions.generated"
	TypeFeedbackEvaluated  = "feedback.evaluated"
	TypeQuestionsImported  = "questions.imported"
)

// Event is the payload delivered to subscribers.
type Event struct {
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	LessonTitle string    `json:"lesson_title"`
	Count       int       `json:"count"`
	Score       *int      `json:"score,omitempty"`
	Fallback    bool      `json:"fallback,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BrokerPublisher fans events out to Redis and NATS. Either connection may be nil.
type BrokerPublisher struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	nodeID       string
	logger       zerolog.Logger
}

// NewBrokerPublisher builds a publisher for channelBase, e.g. "tutor" publishes to the
// Redis channel "tutor:events" and the NATS subject "tutor.events".
func NewBrokerPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) *BrokerPublisher {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":events"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".events"
	}

	return &BrokerPublisher{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		nodeID:       uuid.NewString(),
		logger:       logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Enabled reports whether any broker is attached.
func (p *BrokerPublisher) Enabled() bool {
	return (p.redis != nil && p.redisChannel != "") || (p.nats != nil && p.natsSubject != "")
}

// Publish sends event to every attached broker. Errors from both brokers are joined.
func (p *BrokerPublisher) Publish(ctx context.Context, event Event) error {
	if !p.Enabled() {
		return nil
	}

	event.Source = p.nodeID
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var errs []error
	if p.redis != nil && p.redisChannel != "" {
		if err := p.redis.Publish(ctx, p.redisChannel, payload).Err(); err != nil {
			errs = append(errs, err)
		}
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		p.logger.Warn().Errs("errors", errs).Str("type", event.Type).Msg("event publish failed")
	}

	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, Event) error { return nil }
