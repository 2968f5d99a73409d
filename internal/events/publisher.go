package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DefaultChannel = "trivia:questions"

// Event types.
const (
	TypeQuestionCreated = "question.created"
	TypeQuestionDeleted = "question.deleted"
)

// Event describes a committed change to the question table.
type Event struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	QuestionID     int64     `json:"question_id"`
	TotalQuestions int64     `json:"total_questions"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, questionID, total int64) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           eventType,
		QuestionID:     questionID,
		TotalQuestions: total,
		OccurredAt:     time.Now().UTC(),
	}
}

// Publisher fans question events out over Redis Pub/Sub.
type Publisher struct {
	redis   *redis.Client
	channel string
	logger  zerolog.Logger
}

func NewPublisher(client *redis.Client, channel string, logger zerolog.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		redis:   client,
		channel: channel,
		logger:  logger.With().Str("component", "question_events").Logger(),
	}
}

// Publish encodes evt as JSON and publishes it on the configured channel.
func (p *Publisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	receivers, err := p.redis.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	p.logger.Debug().Str("event", evt.Type).Int64("receivers", receivers).Msg("question event published")
	return nil
}
