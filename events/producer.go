// Package events announces gallery publications on Kafka and consumes them.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"studio/types"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Publisher announces a newly published gallery entry
type Publisher interface {
	Published(ctx context.Context, entry types.GalleryEntry) error
	Close() error
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// Producer sends each published entry to a topic, keyed by entry id
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
}

// NewProducer creates a synchronous Kafka producer
func NewProducer(cfg ProducerConfig, logger zerolog.Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("events: create producer: %w", err)
	}
	return newProducer(producer, cfg.Topic, logger), nil
}

func newProducer(producer sarama.SyncProducer, topic string, logger zerolog.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   logger.With().Str("component", "events").Str("topic", topic).Logger(),
	}
}

// Published implements Publisher
func (p *Producer) Published(ctx context.Context, entry types.GalleryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("events: encode entry: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(entry.ID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("events: send %s: %w", entry.ID, err)
	}

	p.logger.Debug().
		Str("entry", entry.ID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("📨 publication announced")
	return nil
}

// Close flushes and closes the producer
func (p *Producer) Close() error {
	return p.producer.Close()
}

// Nop is a Publisher used when no brokers are configured
type Nop struct{}

// Published implements Publisher
func (Nop) Published(context.Context, types.GalleryEntry) error { return nil }

// Close implements Publisher
func (Nop) Close() error { return nil }
