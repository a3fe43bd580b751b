package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/acharyaskillx/skillquestify-api/internal/middleware"
	"github.com/acharyaskillx/skillquestify-api/internal/observability"
)

type domainEvent struct {
	Source        string      `json:"source"`
	Subject       string      `json:"subject"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Payload       interface{} `json:"payload"`
	SentAt        time.Time   `json:"sent_at"`
}

type natsEventPublisher struct {
	conn        *nats.Conn
	subjectBase string
	nodeID      string
	logger      zerolog.Logger
}

// NewNATSEventPublisher builds an EventPublisher backed by NATS. Subjects are
// namespaced under the given base, e.g. base "skillquestify.events" and
// subject "interview.completed" publish to
// "skillquestify.events.interview.completed".
func NewNATSEventPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) EventPublisher {
	if subjectBase == "" {
		subjectBase = "skillquestify.events"
	}
	return &natsEventPublisher{
		conn:        conn,
		subjectBase: subjectBase,
		nodeID:      uuid.NewString(),
		logger:      logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	event := domainEvent{
		Source:        p.nodeID,
		Subject:       subject,
		CorrelationID: middleware.CorrelationIDFromContext(ctx),
		Payload:       payload,
		SentAt:        time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subjectBase+"."+subject, data); err != nil {
		return err
	}

	observability.EventsPublishedTotal().WithLabelValues(subject).Inc()
	p.logger.Debug().Str("subject", subject).Msg("event published")

	return nil
}
