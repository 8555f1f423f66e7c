// Package kafka publishes order events to a Kafka topic.
//
// Every message is a JSON envelope keyed by the parent order id, so the
// events of one order tree land on one partition in publication order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventVersion = 1
	Producer     = "fulfillment-service"
)

// Envelope is the wire format of every order event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

// StatusPayload is the payload of every event type. SubOrderID is empty for
// parent-level events.
type StatusPayload struct {
	ParentOrderID string `json:"parent_order_id"`
	SubOrderID    string `json:"sub_order_id,omitempty"`
	Status        string `json:"status"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher. Publish blocks until the
// brokers acknowledged every message.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

// NewPublisherWithWriter is used by tests to capture messages.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, events ...ports.OrderEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := NewMessage(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d order events: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NewMessage wraps e in an Envelope.
func NewMessage(e ports.OrderEvent) (kafka.Message, error) {
	payload := StatusPayload{
		ParentOrderID: e.ParentOrderID.String(),
		Status:        e.Status,
	}
	if e.SubOrderID.Validate() == nil {
		payload.SubOrderID = e.SubOrderID.String()
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, err
	}

	occurredAt := e.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     string(e.Type),
		EventVersion:  EventVersion,
		OccurredAt:    occurredAt,
		Producer:      Producer,
		CorrelationID: e.ParentOrderID.String(),
		Payload:       rawPayload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(e.ParentOrderID.String()),
		Value: value,
		Time:  occurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}, nil
}
