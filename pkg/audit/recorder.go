// Package audit records every successful lifecycle action to a Kafka
// topic so downstream systems can reconstruct who did what, when.
// Recording is best-effort: a failed publish is logged, never surfaced
// to the caller.
package audit

import (
	"context"
	"strconv"
	"time"

	"salongate/pkg/kafka"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
)

const source = "salongate"

// Event is one lifecycle action taken against an appointment.
type Event struct {
	Action        lifecycle.Action `json:"action"`
	AppointmentID int64            `json:"appointmentId"`
	ReviewID      int64            `json:"reviewId,omitempty"`
	ActorID       int64            `json:"actorId"`
	ActorRole     lifecycle.Role   `json:"actorRole"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// Recorder accepts lifecycle events. Implementations must not block the
// request path beyond the context deadline.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// KafkaRecorder publishes events keyed by appointment id, preserving
// per-appointment ordering across partitions.
type KafkaRecorder struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

func NewKafkaRecorder(producer *kafka.Producer, topic string, log *logger.Logger) *KafkaRecorder {
	return &KafkaRecorder{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

func (r *KafkaRecorder) Record(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg, err := kafka.NewMessage(string(event.Action), source).
		WithKey(strconv.FormatInt(event.AppointmentID, 10)).
		WithJSONValue(event).
		Build()
	if err != nil {
		r.log.Error("failed to build audit message", "action", event.Action, "error", err)
		return
	}

	if err := r.producer.Publish(ctx, r.topic, msg); err != nil {
		r.log.Error("failed to record audit event",
			"action", event.Action,
			"appointment_id", event.AppointmentID,
			"error", err,
		)
	}
}

// NopRecorder drops every event. Used when the audit trail is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) {}
