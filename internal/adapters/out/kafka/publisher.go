// Package kafka publishes outbox messages with a sarama SyncProducer.
package kafka

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/ports"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff/v4"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

// RetryConfig bounds the retries of a single send.
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxRetries:      3,
	}
}

// NewSaramaConfig returns producer settings for at-least-once delivery:
// acks from all in-sync replicas and successes reported back.
func NewSaramaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

func NewSyncProducer(brokers []string, cfg *sarama.Config) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer for %v: %w", brokers, err)
	}
	return producer, nil
}

// Publisher routes outbox messages to topics by event type. The outbox key
// becomes the record key, so all events of one order land on one partition.
type Publisher struct {
	producer sarama.SyncProducer
	topics   map[string]string
	retry    RetryConfig
}

func NewPublisher(producer sarama.SyncProducer, topics map[string]string, retry RetryConfig) *Publisher {
	return &Publisher{producer: producer, topics: topics, retry: retry}
}

var _ ports.EventPublisher = (*Publisher)(nil)

func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	topic, ok := p.topics[msg.EventType]
	if !ok {
		return fmt.Errorf("no topic configured for event type %q", msg.EventType)
	}

	record := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(msg.Key),
		Value: sarama.ByteEncoder(msg.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventID), Value: []byte(msg.EventID)},
			{Key: []byte(headerEventType), Value: []byte(msg.EventType)},
		},
		Timestamp: msg.CreatedAt,
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(p.retry.InitialInterval),
		backoff.WithMaxInterval(p.retry.MaxInterval),
	)
	operation := func() error {
		_, _, err := p.producer.SendMessage(record)
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, p.retry.MaxRetries), ctx)); err != nil {
		return fmt.Errorf("publish %s %s to %s: %w", msg.EventType, msg.EventID, topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
