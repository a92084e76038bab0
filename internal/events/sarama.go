package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// NewSaramaConfig mirrors the producer tuning used for the vote topic.
func NewSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "voting-service"
	config.Producer.MaxMessageBytes = 1000000
	return config
}

// SaramaPublisher writes events with a synchronous IBM/sarama producer.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSaramaPublisher(brokers []string, topic string) (*SaramaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewSaramaPublisherFrom(producer, topic), nil
}

func NewSaramaPublisherFrom(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

func (p *SaramaPublisher) Publish(_ context.Context, event Event) error {
	value, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(event.Key()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	slog.Debug("Event sent", "type", event.Type, "partition", partition, "offset", offset)
	return nil
}

func (p *SaramaPublisher) Close() error {
	return p.producer.Close()
}
