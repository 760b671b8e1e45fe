package events

import (
	"catalog-service/internal/config"

	"go.uber.org/zap"
)

// NewPublisherFromConfig returns a Kafka publisher when USE_KAFKA is set and the brokers are reachable,
// and the in-memory publisher otherwise
func NewPublisherFromConfig(cfg *config.Config, logger *zap.Logger) EventPublisher {
	if !cfg.UseKafka {
		logger.Info("Kafka disabled (USE_KAFKA=false), using in-memory event publisher")
		return NewEventPublisher(logger)
	}

	publisher, err := NewKafkaEventPublisher(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		return NewEventPublisher(logger)
	}
	return publisher
}
