package kafka

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	kgo "github.com/segmentio/kafka-go"
)

// Event is the envelope published to the forum.events topic.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

type Writer interface {
	Emit(ctx context.Context, eventType string, payload any) error
	Close() error
}

type writer struct {
	w *kgo.Writer
}

// NewWriter creates a Kafka writer with configurable durability.
// Env overrides (optional):
//   - KAFKA_REQUIRED_ACKS: "none" | "one" | "all" (default: "one")
//   - KAFKA_ASYNC: "true" | "false" (default: "false")
func NewWriter(bootstrapServers, topic string) Writer {
	addr := strings.TrimSpace(bootstrapServers)
	if addr == "" {
		addr = "kafka:9092"
	}

	var requiredAcks kgo.RequiredAcks
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KAFKA_REQUIRED_ACKS"))) {
	case "none":
		requiredAcks = kgo.RequireNone
	case "all":
		requiredAcks = kgo.RequireAll
	default:
		requiredAcks = kgo.RequireOne
	}

	w := &kgo.Writer{
		Addr:         kgo.TCP(strings.Split(addr, ",")...),
		Topic:        topic,
		Balancer:     &kgo.LeastBytes{},
		RequiredAcks: requiredAcks,
		Async:        strings.EqualFold(os.Getenv("KAFKA_ASYNC"), "true"),
		BatchTimeout: 50 * time.Millisecond,
	}
	return &writer{w: w}
}

func (wr *writer) Emit(ctx context.Context, eventType string, payload any) error {
	b, err := json.Marshal(Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		At:      time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		return err
	}
	return wr.w.WriteMessages(ctx, kgo.Message{Value: b, Time: time.Now()})
}

func (wr *writer) Close() error { return wr.w.Close() }

// Nop is used when Kafka is not configured (tests, local runs).
type Nop struct{}

func (Nop) Emit(context.Context, string, any) error { return nil }
func (Nop) Close() error                            { return nil }
