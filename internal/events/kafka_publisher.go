package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"catalog-service/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer   sarama.SyncProducer
	logger     *zap.Logger
	config     *config.Config
	maxRetries int
	baseDelay  time.Duration
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	saramaConfig := newSaramaConfig(cfg)
	if err := saramaConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Kafka producer config (acks=%s, retries=%d): %w", cfg.KafkaAcks, cfg.KafkaRetries, err)
	}
	if !saramaConfig.Producer.Idempotent {
		logger.Info("Kafka idempotent producer disabled, it requires KAFKA_ACKS=all and KAFKA_RETRIES>=1",
			zap.String("acks", cfg.KafkaAcks),
			zap.Int("retries", cfg.KafkaRetries),
		)
	}

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaEventPublisherWithProducer(producer, cfg, logger), nil
}

// NewKafkaEventPublisherWithProducer wraps an existing producer
func NewKafkaEventPublisherWithProducer(producer sarama.SyncProducer, cfg *config.Config, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer:   producer,
		logger:     logger,
		config:     cfg,
		maxRetries: 3,
		baseDelay:  100 * time.Millisecond,
	}
}

// newSaramaConfig builds the producer config. The idempotent producer is only enabled
// together with WaitForAll and at least one retry, which sarama requires.
func newSaramaConfig(cfg *config.Config) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	if cfg.KafkaClientID != "" {
		saramaConfig.ClientID = cfg.KafkaClientID
	}
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = cfg.KafkaRetries
	saramaConfig.Producer.RequiredAcks = requiredAcks(cfg.KafkaAcks)
	if saramaConfig.Producer.RequiredAcks == sarama.WaitForAll && cfg.KafkaRetries >= 1 {
		saramaConfig.Producer.Idempotent = true
		saramaConfig.Net.MaxOpenRequests = 1
	}
	return saramaConfig
}

func requiredAcks(acks string) sarama.RequiredAcks {
	switch acks {
	case "0":
		return sarama.NoResponse
	case "1":
		return sarama.WaitForLocal
	default:
		return sarama.WaitForAll
	}
}

// Publish publishes an event to Kafka with retries and exponential backoff
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	topic, err := p.getTopicForEvent(event)
	if err != nil {
		return fmt.Errorf("failed to determine topic: %w", err)
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	eventType := EventType(event)
	message := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	if partitionKey := p.getPartitionKey(event); partitionKey != "" {
		message.Key = sarama.StringEncoder(partitionKey)
	}

	for attempt := 0; attempt < p.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		done := make(chan error, 1)

		go func() {
			partition, offset, err := p.producer.SendMessage(message)
			if err != nil {
				done <- err
				return
			}
			p.logger.Info("Event published to Kafka",
				zap.String("topic", topic),
				zap.Int32("partition", partition),
				zap.Int64("offset", offset),
				zap.String("event-type", eventType),
				zap.Int("attempt", attempt+1),
			)
			done <- nil
		}()

		select {
		case err := <-done:
			cancel()
			if err == nil {
				return nil
			}
			p.logger.Warn("Failed to publish event to Kafka, retrying",
				zap.String("topic", topic),
				zap.Error(err),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", p.maxRetries),
			)
		case <-sendCtx.Done():
			cancel()
			p.logger.Warn("Timeout publishing event to Kafka, retrying",
				zap.String("topic", topic),
				zap.Error(sendCtx.Err()),
				zap.Int("attempt", attempt+1),
				zap.Int("max_retries", p.maxRetries),
			)
		}

		// 100ms, 200ms, 400ms...
		if attempt < p.maxRetries-1 {
			delay := p.baseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event to Kafka after %d attempts", p.maxRetries)
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// getTopicForEvent routes item lifecycle events and quantity changes to separate topics
func (p *KafkaEventPublisher) getTopicForEvent(event interface{}) (string, error) {
	switch event.(type) {
	case CatalogItemAddedEvent, CatalogItemDeletedEvent:
		return p.config.KafkaTopicItems, nil
	case ItemQuantityIncrementedEvent, ItemQuantityDecrementedEvent:
		return p.config.KafkaTopicQuantities, nil
	default:
		return "", fmt.Errorf("unknown event type: %T", event)
	}
}

// getPartitionKey keeps every event of one item on the same partition
func (p *KafkaEventPublisher) getPartitionKey(event interface{}) string {
	switch e := event.(type) {
	case CatalogItemAddedEvent:
		return strconv.Itoa(e.ItemID)
	case CatalogItemDeletedEvent:
		return strconv.Itoa(e.ItemID)
	case ItemQuantityIncrementedEvent:
		return strconv.Itoa(e.ItemID)
	case ItemQuantityDecrementedEvent:
		return strconv.Itoa(e.ItemID)
	}
	return ""
}
