package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"zenumljpg/src/domain/entities"
	"zenumljpg/src/infra/kafka"
)

const sourceService = "zenuml-jpg-api"

const (
	EventDiagramConverted = "diagram.converted"
	EventUserRegistered   = "user.registered"
)

// DomainEvent is the wire envelope published to the events topic.
type DomainEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type DiagramConvertedData struct {
	DiagramID string `json:"diagram_id"`
	Title     string `json:"title"`
	OwnerID   string `json:"owner_id"`
	FileSize  int    `json:"file_size"`
}

type UserRegisteredData struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DomainEventPublisher pushes domain events to Kafka. A nil kafka client
// disables publishing entirely, and callers treat publish failures as
// best-effort: they are logged, never bubbled into the request path.
type DomainEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewDomainEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *DomainEventPublisher {
	return &DomainEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

func (p *DomainEventPublisher) Enabled() bool {
	return p != nil && p.kafkaClient != nil
}

func (p *DomainEventPublisher) PublishDiagramConverted(ctx context.Context, diagram entities.Diagram) error {
	data := DiagramConvertedData{
		DiagramID: diagram.ID,
		Title:     diagram.Title,
		OwnerID:   diagram.OwnerID,
		FileSize:  len(diagram.Image),
	}

	return p.publish(ctx, EventDiagramConverted, diagram.ID, data)
}

func (p *DomainEventPublisher) PublishUserRegistered(ctx context.Context, user entities.User) error {
	data := UserRegisteredData{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	return p.publish(ctx, EventUserRegistered, user.ID, data)
}

func (p *DomainEventPublisher) publish(ctx context.Context, eventType string, aggregateID string, data any) error {
	if !p.Enabled() {
		return nil
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	event := DomainEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Data:       dataBytes,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		// Partition by aggregate so per-diagram/per-user ordering holds
		Key:   aggregateID,
		Value: eventBytes,
		Headers: map[string]string{
			"event_id":       event.EventID,
			"event_type":     eventType,
			"source_service": sourceService,
			"schema_version": "v1",
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{msg}, p.topic); err != nil {
		p.logger.Error("Failed to publish domain event",
			"error", err,
			"topic", p.topic,
			"event_type", eventType,
			"event_id", event.EventID)
		return fmt.Errorf("failed to publish %s to topic %s: %w", eventType, p.topic, err)
	}

	p.logger.Debug("Published domain event",
		"topic", p.topic,
		"event_type", eventType,
		"event_id", event.EventID)

	return nil
}
