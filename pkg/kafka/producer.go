package kafka

import (
	"context"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	kafka_config "salongate/pkg/kafka/config"
	"salongate/pkg/logger"
)

// Producer wraps a kafka-go writer. It is safe for concurrent use and
// stays usable until Close is called.
type Producer struct {
	writer *kafkago.Writer
	log    *logger.Logger

	mu     sync.RWMutex
	closed bool
}

func NewProducer(cfg *kafka_config.Config, log *logger.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.Hash{},
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.ProducerRequireAcks),
		Async:        cfg.ProducerAsync,
		Compression:  compressionCodec(cfg.ProducerCompression),
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

// Publish writes one message to topic. Messages sharing a key land on the
// same partition, so per-key ordering holds.
func (p *Producer) Publish(ctx context.Context, topic string, msg Message) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	p.mu.RUnlock()

	if err := p.writer.WriteMessages(ctx, msg.toKafka(topic)); err != nil {
		p.log.Error("failed to publish message",
			"topic", topic,
			"key", string(msg.Key),
			"error", err,
		)
		return err
	}

	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "snappy":
		return compress.Snappy
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.None
	}
}
