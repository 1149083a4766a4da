package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Producer publishes query responses
type Producer struct {
	writer  *kafka.Writer
	logger  ectologger.Logger
	topic   string
	brokers []string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer:  writer,
		logger:  logger,
		topic:   cfg.Topic,
		brokers: cfg.Brokers,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishResponse publishes a correlated query response. The message key is
// the correlation id so response consumers can partition on it.
func (p *Producer) PublishResponse(ctx context.Context, resp envelope.Response) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishResponse")
	defer span.End()

	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	headers := []kafka.Header{
		{Key: "query_name", Value: []byte(resp.Name)},
	}
	if traceparent := tracing.GetTraceParent(ctx); traceparent != "" {
		headers = append(headers, kafka.Header{Key: "traceparent", Value: []byte(traceparent)})
	}

	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(resp.CorrelationID),
		Value:   data,
		Headers: headers,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish query response")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"query":          resp.Name,
		"correlation_id": resp.CorrelationID,
	}).Debug("Published query response")

	return nil
}

// Ping checks broker connectivity. Used by the health endpoint.
func (p *Producer) Ping() error {
	if len(p.brokers) == 0 {
		return nil
	}
	conn, err := kafka.Dial("tcp", p.brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Brokers()
	return err
}
