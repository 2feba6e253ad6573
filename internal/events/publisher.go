package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics carrying portal events.
const (
	TopicFeedbackSubmitted = "feedback.submitted"
	TopicFacultyChanged    = "faculty.changed"
)

// FeedbackSubmittedEvent is emitted after a submission is persisted. It
// carries no student identity so downstream consumers cannot deanonymize.
type FeedbackSubmittedEvent struct {
	FeedbackID   string    `json:"feedback_id"`
	FacultyID    string    `json:"faculty_id"`
	SubjectName  string    `json:"subject_name"`
	Semester     string    `json:"semester"`
	AcademicYear string    `json:"academic_year"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// FacultyChangedEvent is emitted when faculty records are mutated.
type FacultyChangedEvent struct {
	FacultyID string `json:"faculty_id"`
	Action    string `json:"action"` // created, updated, deleted
}

// EventPublisher publishes portal events.
type EventPublisher interface {
	PublishFeedbackSubmitted(ctx context.Context, event FeedbackSubmittedEvent) error
	PublishFacultyChanged(ctx context.Context, event FacultyChangedEvent) error
	Close() error
}

type eventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewEventPublisher wraps any watermill publisher.
func NewEventPublisher(publisher message.Publisher, logger *slog.Logger) EventPublisher {
	return &eventPublisher{publisher: publisher, logger: logger}
}

// NewKafkaPublisher creates a Kafka-backed publisher.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return NewEventPublisher(publisher, logger), nil
}

// NewGoChannelPubSub creates the in-process pub/sub used in development and
// tests. The returned GoChannel serves as both publisher and subscriber.
func NewGoChannelPubSub(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
}

// NewMockEventPublisher creates a publisher over an in-process channel,
// for tests that only care that publishing doesn't fail.
func NewMockEventPublisher() EventPublisher {
	logger := slog.Default()
	return NewEventPublisher(NewGoChannelPubSub(logger), logger)
}

func (p *eventPublisher) PublishFeedbackSubmitted(ctx context.Context, event FeedbackSubmittedEvent) error {
	return p.publish(ctx, TopicFeedbackSubmitted, event)
}

func (p *eventPublisher) PublishFacultyChanged(ctx context.Context, event FacultyChangedEvent) error {
	return p.publish(ctx, TopicFacultyChanged, event)
}

func (p *eventPublisher) publish(ctx context.Context, topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.Debug("Published event", "topic", topic, "message_id", msg.UUID)
	return nil
}

func (p *eventPublisher) Close() error {
	return p.publisher.Close()
}
