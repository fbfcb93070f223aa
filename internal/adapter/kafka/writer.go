package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/config"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces successful lookups to a Kafka topic.
// It implements domain.LookupPublisher.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a Kafka producer for the configured lookup topic.
func NewPublisher(cfg *config.Config) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: w}
}

// Publish writes one lookup, keyed by city so a city's lookups stay ordered.
func (p *Publisher) Publish(ctx context.Context, lookup domain.Lookup) error {
	msg, err := mapLookupToMessage(lookup)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: failed to publish lookup: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func mapLookupToMessage(lookup domain.Lookup) (kafkago.Message, error) {
	value, err := json.Marshal(lookup)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("kafka: failed to encode lookup: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strings.ToLower(lookup.Record.CityName)),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "city", Value: []byte(lookup.Record.CityName)},
			{Key: "fetched_at", Value: []byte(lookup.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
