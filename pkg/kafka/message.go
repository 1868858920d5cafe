package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// Standard header keys carried on every published message.
const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSource        = "source"
	HeaderContentType   = "content-type"
	HeaderTimestamp     = "timestamp"
)

const ContentTypeJSON = "application/json"

// Message is a single record bound for a topic.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// MessageBuilder assembles a message with the standard envelope headers.
// Build returns an error instead of panicking so callers can surface
// bad payloads through the normal error path.
type MessageBuilder struct {
	key     []byte
	value   []byte
	headers map[string]string
	err     error
}

func NewMessage(eventType, source string) *MessageBuilder {
	return &MessageBuilder{
		headers: map[string]string{
			HeaderEventID:     uuid.NewString(),
			HeaderEventType:   eventType,
			HeaderSource:      source,
			HeaderContentType: ContentTypeJSON,
			HeaderTimestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		},
	}
}

func (b *MessageBuilder) WithKey(key string) *MessageBuilder {
	b.key = []byte(key)
	return b
}

func (b *MessageBuilder) WithJSONValue(v any) *MessageBuilder {
	if b.err != nil {
		return b
	}
	data, err := json.Marshal(v)
	if err != nil {
		b.err = err
		return b
	}
	b.value = data
	return b
}

func (b *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	b.headers[key] = value
	return b
}

func (b *MessageBuilder) WithCorrelationID(id string) *MessageBuilder {
	b.headers[HeaderCorrelationID] = id
	return b
}

func (b *MessageBuilder) Build() (Message, error) {
	if b.err != nil {
		return Message{}, b.err
	}
	if len(b.key) == 0 {
		return Message{}, ErrEmptyKey
	}
	if len(b.value) == 0 {
		return Message{}, ErrEmptyValue
	}
	return Message{Key: b.key, Value: b.value, Headers: b.headers}, nil
}

func (m Message) toKafka(topic string) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(m.Headers))
	for k, v := range m.Headers {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return kafkago.Message{
		Topic:   topic,
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
	}
}
