// Package kafkaclient publishes enrichment status updates to a Kafka
// topic so other consumers (dashboards, notifiers) can follow a batch
// as it progresses.
package kafkaclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"itinerary/internal/enrich"
)

// MessageWriter is the slice of kafka.Writer the producer needs;
// it keeps unit tests free of a real broker.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer MessageWriter
}

// NewProducer creates a producer for the given broker and topic. Topics
// are auto-created so a fresh environment needs no setup step.
func NewProducer(broker, topic string) *Producer {
	return &Producer{writer: &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}}
}

// updateEvent is the wire form of an enrichment update. Coordinates are
// omitted unless the item resolved.
type updateEvent struct {
	Key    string   `json:"key"`
	Status string   `json:"status"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// PublishUpdate sends one status update, keyed by the item key so all
// updates for an item land in the same partition.
func (p *Producer) PublishUpdate(ctx context.Context, u enrich.Update) error {
	event := updateEvent{Key: u.Key, Status: u.Status.String()}
	if u.Coords != nil {
		event.Lat = &u.Coords.Lat
		event.Lng = &u.Coords.Lng
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafkaclient: encode update: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(u.Key), Value: value}); err != nil {
		return fmt.Errorf("kafkaclient: publish update: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
