//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package transport

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pgEdge/pgedge-datagen/internal/dispatch"
	"github.com/pgEdge/pgedge-datagen/internal/generator"
)

// DefaultKafkaWriteTimeout bounds a single batch write.
const DefaultKafkaWriteTimeout = 10 * time.Second

// KafkaConfig configures the kafka transport.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// messageWriter is the part of *kafka.Writer the transport uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes one message per record.
type Kafka struct {
	writer messageWriter
}

// NewKafka creates a kafka transport. No connection is made until the
// first batch is sent.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka transport requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka transport requires a topic")
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultKafkaWriteTimeout
	}

	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			WriteTimeout:           timeout,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

// Name implements dispatch.Transport.
func (k *Kafka) Name() string {
	return KindKafka
}

// Send implements dispatch.Transport. Per-message write errors are reported
// as a *dispatch.PartialError.
func (k *Kafka) Send(ctx context.Context, batch *generator.Batch) error {
	msgs, err := batchMessages(batch)
	if err != nil {
		return err
	}
	return itemErrors(k.writer.WriteMessages(ctx, msgs...))
}

// Close flushes and closes the writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

func batchMessages(batch *generator.Batch) ([]kafka.Message, error) {
	payloads, err := encodeRecords(batch)
	if err != nil {
		return nil, err
	}
	msgs := make([]kafka.Message, len(payloads))
	for i, p := range payloads {
		msgs[i] = kafka.Message{
			Key:   []byte(batch.Entity),
			Value: p,
			Headers: []kafka.Header{
				{Key: "batch_id", Value: []byte(batch.ID)},
				{Key: "entity", Value: []byte(batch.Entity)},
			},
		}
	}
	return msgs, nil
}

// itemErrors maps kafka.WriteErrors, which is index-aligned with the
// written messages, to per-item failures.
func itemErrors(err error) error {
	if err == nil {
		return nil
	}
	var writeErrs kafka.WriteErrors
	if !errors.As(err, &writeErrs) {
		return err
	}
	partial := &dispatch.PartialError{}
	for i, e := range writeErrs {
		if e != nil {
			partial.Items = append(partial.Items, dispatch.ItemError{Index: i, Err: e})
		}
	}
	if len(partial.Items) == 0 {
		return nil
	}
	return partial
}
