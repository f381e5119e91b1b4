package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"symmbot/domain/events"
	eventbus "symmbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	eventSubjectPrefix = "symmbot.events"
	publishTimeout     = 5 * time.Second
)

// MessagePublisher is the transport used to export events
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// EventEnvelope is the wire format of exported events
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	GuildID       int64           `json:"guild_id"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher forwards committed domain events to NATS
type NATSEventPublisher struct {
	publisher MessagePublisher
	now       func() time.Time
}

// NewNATSEventPublisher creates an exporter over publisher
func NewNATSEventPublisher(publisher MessagePublisher) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher: publisher,
		now:       time.Now,
	}
}

// SubjectFor returns the subject an event is exported on
func SubjectFor(event events.Event) string {
	return fmt.Sprintf("%s.%d.%s", eventSubjectPrefix, event.GuildScope(), event.Type())
}

// Publish wraps the event in an envelope and sends it
func (p *NATSEventPublisher) Publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		GuildID:       event.GuildScope(),
		Timestamp:     p.now().UTC(),
		SourceService: "symmbot",
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	subject := SubjectFor(event)
	if err := p.publisher.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type(), err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventID":   envelope.EventID,
		"subject":   subject,
	}).Debug("Exported event to NATS")
	return nil
}

// Attach subscribes the exporter to every event on the bus
func (p *NATSEventPublisher) Attach(bus *eventbus.Bus) {
	bus.SubscribeAll(func(_ context.Context, event events.Event) {
		if err := p.Publish(event); err != nil {
			log.WithError(err).WithField("eventType", event.Type()).Warn("Failed to export event")
		}
	})
}
