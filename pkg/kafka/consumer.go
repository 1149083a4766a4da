// Package kafka carries the asynchronous query transport: envelopes arrive
// on the query topic and correlated responses are published to the response
// topic.
package kafka

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/juniper/pkg/envelope"
	"github.com/Ramsey-B/juniper/pkg/tracing"
)

// Dispatcher routes a query envelope to its handler. Satisfied by
// queries.Registry.
type Dispatcher interface {
	Dispatch(ctx context.Context, q envelope.Query) (envelope.Response, error)
}

// Consumer consumes query envelopes and publishes responses
type Consumer struct {
	reader     *kafka.Reader
	producer   *Producer
	dispatcher Dispatcher
	logger     ectologger.Logger
	wg         sync.WaitGroup
	cancel     context.CancelFunc
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// NewConsumer creates a new query consumer
func NewConsumer(cfg ConsumerConfig, producer *Producer, dispatcher Dispatcher, logger ectologger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.ConsumerGroup,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        500 * time.Millisecond,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader:     reader,
		producer:   producer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start begins consuming messages
func (c *Consumer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"topic": c.reader.Config().Topic,
	}).Info("Kafka query consumer started")
	return nil
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.reader.Close()
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			c.logger.WithContext(ctx).Info("Consumer loop stopping")
			return
		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled || err == io.EOF {
					return
				}
				c.logger.WithContext(ctx).WithError(err).Error("Failed to fetch message")
				continue
			}

			c.processMessage(ctx, msg)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	ctx, span := tracing.StartSpan(ctx, "kafka.Consumer.processMessage")
	defer span.End()

	log := c.logger.WithContext(ctx).WithFields(map[string]any{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	var q envelope.Query
	if err := json.Unmarshal(msg.Value, &q); err != nil {
		log.WithError(err).Error("Failed to parse query envelope")
		// Commit malformed envelopes so the partition does not stall.
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.WithError(err).Error("Failed to commit message")
		}
		return
	}

	resp, err := c.dispatcher.Dispatch(ctx, q)
	if err != nil {
		log.WithError(err).WithFields(map[string]any{
			"query":          q.Name,
			"correlation_id": q.CorrelationID,
		}).Error("Failed to process query")

		status := httperror.GetStatusCode(err)
		if status < 400 || status >= 500 {
			// Server-side failure: not committed, at-least-once retry.
			return
		}

		// Client errors are final. Publishing nothing would leave the
		// caller waiting on the correlation id, so an error payload is
		// sent and the offset committed.
		resp, err = envelope.NewResponse(q, map[string]any{
			"error":  err.Error(),
			"status": status,
		})
		if err != nil {
			log.WithError(err).Error("Failed to build error response")
			return
		}
	}

	if err := c.producer.PublishResponse(ctx, resp); err != nil {
		log.WithError(err).Error("Failed to publish query response (not committing)")
		return
	}

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to commit message")
	}
}

// Health returns the consumer health status
func (c *Consumer) Health() bool {
	return c.reader != nil
}
