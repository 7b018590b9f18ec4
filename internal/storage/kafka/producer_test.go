package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"chainDatagen/internal/model"
)

type mockWriter struct {
	calls    int
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.calls++
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

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(ProducerConfig{}); err == nil {
		t.Fatalf("expected error for missing brokers")
	}
}

func TestPublishTransfers(t *testing.T) {
	writer := &mockWriter{}
	producer := newProducer(writer, ProducerConfig{TopicPrefix: "bench", ChunkSize: 2})

	transfers := []model.Transfer{
		{TxHash: "0x01", BlockNumber: 3, Amount: "1"},
		{TxHash: "0x02", BlockNumber: 3, Amount: "2"},
		{TxHash: "0x03", BlockNumber: 4, Amount: "3"},
	}
	if err := producer.PutTransfers(context.Background(), transfers); err != nil {
		t.Fatalf("put transfers: %v", err)
	}

	if writer.calls != 2 {
		t.Fatalf("expected 2 writes, got %d", writer.calls)
	}
	if len(writer.messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(writer.messages))
	}
	last := writer.messages[2]
	if last.Topic != "bench-transfers" {
		t.Fatalf("unexpected topic: %s", last.Topic)
	}
	if string(last.Key) != "4" {
		t.Fatalf("unexpected key: %s", last.Key)
	}
	var decoded model.Transfer
	if err := json.Unmarshal(last.Value, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded != transfers[2] {
		t.Fatalf("payload mismatch: %+v != %+v", decoded, transfers[2])
	}

	if err := producer.Close(); err != nil || !writer.closed {
		t.Fatalf("writer not closed: %v", err)
	}
}

func TestPublishError(t *testing.T) {
	writer := &mockWriter{err: errors.New("broker down")}
	producer := newProducer(writer, ProducerConfig{})

	err := producer.PutBlocks(context.Background(), []model.Block{{BlockNumber: 1}})
	if err == nil {
		t.Fatalf("expected publish error")
	}
	if producer.Topic("blocks") != "datagen-blocks" {
		t.Fatalf("unexpected default topic: %s", producer.Topic("blocks"))
	}
}
