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
	"testing"

	"github.com/segmentio/kafka-go"

	"github.com/pgEdge/pgedge-datagen/internal/dispatch"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaValidates(t *testing.T) {
	if _, err := NewKafka(KafkaConfig{Topic: "records"}); err == nil {
		t.Error("Expected error without brokers")
	}
	if _, err := NewKafka(KafkaConfig{Brokers: []string{"localhost:9092"}}); err == nil {
		t.Error("Expected error without topic")
	}
	k, err := NewKafka(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "records"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if k.Name() != KindKafka {
		t.Errorf("Expected name '%s', got '%s'", KindKafka, k.Name())
	}
}

func TestKafkaSendOneMessagePerRecord(t *testing.T) {
	w := &fakeWriter{}
	k := &Kafka{writer: w}
	batch := generate(t, entity.Payment, 5)

	if err := k.Send(context.Background(), batch); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(w.msgs) != 5 {
		t.Fatalf("Expected 5 messages, got %d", len(w.msgs))
	}
	for _, m := range w.msgs {
		if string(m.Key) != "payment" {
			t.Errorf("Expected key 'payment', got '%s'", m.Key)
		}
		var batchID string
		for _, h := range m.Headers {
			if h.Key == "batch_id" {
				batchID = string(h.Value)
			}
		}
		if batchID != batch.ID {
			t.Errorf("Expected batch_id header '%s', got '%s'", batch.ID, batchID)
		}
	}

	if err := k.Close(); err != nil || !w.closed {
		t.Error("Close should close the writer")
	}
}

func TestKafkaPartialFailure(t *testing.T) {
	w := &fakeWriter{err: kafka.WriteErrors{nil, errors.New("leader not available"), nil, kafka.MessageSizeTooLarge}}
	k := &Kafka{writer: w}

	res := dispatch.New(k).Dispatch(context.Background(), generate(t, entity.User, 4), false)
	if res.Succeeded != 2 || res.Failed != 2 {
		t.Errorf("Expected 2 succeeded / 2 failed, got %+v", res)
	}
}

func TestItemErrors(t *testing.T) {
	if itemErrors(nil) != nil {
		t.Error("nil should map to nil")
	}
	if itemErrors(kafka.WriteErrors{nil, nil}) != nil {
		t.Error("WriteErrors without failures should map to nil")
	}

	plain := errors.New("dial tcp: connection refused")
	if got := itemErrors(plain); got != plain {
		t.Errorf("Expected plain error to pass through, got %v", got)
	}

	var partial *dispatch.PartialError
	if !errors.As(itemErrors(kafka.WriteErrors{errors.New("x"), nil}), &partial) {
		t.Fatal("Expected PartialError")
	}
	if len(partial.Items) != 1 || partial.Items[0].Index != 0 {
		t.Errorf("Unexpected items %+v", partial.Items)
	}
}
