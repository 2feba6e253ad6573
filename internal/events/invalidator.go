package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
)

// AnalyticsInvalidator listens for feedback submissions and drops cached
// analytics snapshots, so dashboards converge quickly even when another
// instance handled the write.
type AnalyticsInvalidator struct {
	router *message.Router
	logger *slog.Logger
}

// NewAnalyticsInvalidator wires the invalidation handler onto a subscriber.
func NewAnalyticsInvalidator(subscriber message.Subscriber, cacheManager *cache.CacheManager, logger *slog.Logger) (*AnalyticsInvalidator, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	router.AddNoPublisherHandler(
		"analytics_cache_invalidator",
		TopicFeedbackSubmitted,
		subscriber,
		func(msg *message.Message) error {
			logger.Debug("Invalidating analytics cache", "message_id", msg.UUID)
			return cacheManager.InvalidateAnalytics(msg.Context())
		},
	)

	return &AnalyticsInvalidator{router: router, logger: logger}, nil
}

// NewKafkaSubscriber creates the Kafka subscriber used in production.
func NewKafkaSubscriber(brokers []string, logger *slog.Logger) (message.Subscriber, error) {
	subscriber, err := kafka.NewSubscriber(
		kafka.SubscriberConfig{
			Brokers:       brokers,
			Unmarshaler:   kafka.DefaultMarshaler{},
			ConsumerGroup: "feedback-service",
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka subscriber: %w", err)
	}
	return subscriber, nil
}

// Run blocks until the context is cancelled.
func (i *AnalyticsInvalidator) Run(ctx context.Context) error {
	i.logger.Info("Starting analytics cache invalidator")
	return i.router.Run(ctx)
}

// Close shuts the router down.
func (i *AnalyticsInvalidator) Close() error {
	return i.router.Close()
}
