package kafkaclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"itinerary/internal/enrich"
	"itinerary/internal/models"
)

// mockWriter records written messages in place of a real broker.
type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestProducer_PublishUpdate(t *testing.T) {
	writer := &mockWriter{}
	producer := &Producer{writer: writer}

	update := enrich.Update{
		Key:    "https%3A%2F%2Fx%2F1",
		Status: enrich.StatusSucceeded,
		Coords: &models.Coordinates{Lat: 38.7972, Lng: -9.3906},
	}
	if err := producer.PublishUpdate(context.Background(), update); err != nil {
		t.Fatalf("PublishUpdate error: %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != update.Key {
		t.Errorf("message key = %q, want %q", msg.Key, update.Key)
	}

	var event updateEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("message value not JSON: %v", err)
	}
	if event.Status != "succeeded" {
		t.Errorf("status = %q, want %q", event.Status, "succeeded")
	}
	if event.Lat == nil || *event.Lat != 38.7972 {
		t.Errorf("lat = %v, want 38.7972", event.Lat)
	}
}

func TestProducer_PublishUpdate_NoCoordinates(t *testing.T) {
	writer := &mockWriter{}
	producer := &Producer{writer: writer}

	update := enrich.Update{Key: "k", Status: enrich.StatusFailed}
	if err := producer.PublishUpdate(context.Background(), update); err != nil {
		t.Fatalf("PublishUpdate error: %v", err)
	}

	var event updateEvent
	if err := json.Unmarshal(writer.messages[0].Value, &event); err != nil {
		t.Fatalf("message value not JSON: %v", err)
	}
	if event.Lat != nil || event.Lng != nil {
		t.Errorf("expected omitted coordinates, got lat=%v lng=%v", event.Lat, event.Lng)
	}
}

func TestProducer_PublishUpdate_WriterError(t *testing.T) {
	producer := &Producer{writer: &mockWriter{err: errors.New("broker down")}}
	if err := producer.PublishUpdate(context.Background(), enrich.Update{Key: "k"}); err == nil {
		t.Fatal("expected error when writer fails")
	}
}

func TestProducer_Close(t *testing.T) {
	writer := &mockWriter{}
	producer := &Producer{writer: writer}
	if err := producer.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !writer.closed {
		t.Fatal("expected writer to be closed")
	}
}
