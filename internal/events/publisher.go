package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Event types emitted by the services on mutations.
const (
	TypeInstitutionRegistered = "institution.registered"
	TypeTeacherCreated        = "teacher.created"
	TypeTeacherDeleted        = "teacher.deleted"
	TypeStudentCreated        = "student.created"
	TypeStudentDeleted        = "student.deleted"
	TypeCourseCreated         = "course.created"
	TypeCourseDeleted         = "course.deleted"
	TypeGradeRecorded         = "grade.recorded"
	TypeNewsPosted            = "news.posted"
)

// Event is the envelope published for every domain mutation.
type Event struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	InstitutionID uint           `json:"institution_id"`
	Payload       map[string]any `json:"payload,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// EventPublisher is the services' view of the event bus. Publishing is
// fire-and-forget: a publish failure is logged, never surfaced to the request.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type watermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewKafkaPublisher publishes events to Kafka, for deployments with brokers
// configured.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &watermillPublisher{publisher: publisher, topic: topic}, nil
}

// NewGoChannelPublisher publishes events on an in-process pub/sub and drains
// them into the log, for deployments without brokers.
func NewGoChannelPublisher(topic string, logger *slog.Logger) (EventPublisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)

	messages, err := pubSub.Subscribe(context.Background(), topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to event topic: %w", err)
	}

	go func() {
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Error("failed to decode event", "error", err)
				msg.Ack()
				continue
			}
			logger.Info("domain event",
				"event_id", event.ID,
				"type", event.Type,
				"institution_id", event.InstitutionID)
			msg.Ack()
		}
	}()

	return &watermillPublisher{publisher: pubSub, topic: topic}, nil
}

func (p *watermillPublisher) Publish(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = watermill.NewUUID()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	msg.SetContext(ctx)

	return p.publisher.Publish(p.topic, msg)
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher records published events, for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) PublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
