package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"chainDatagen/internal/model"
	"chainDatagen/internal/storage"
)

const defaultTopicPrefix = "datagen"

type ProducerConfig struct {
	Brokers     []string
	TopicPrefix string
	// ChunkSize bounds the number of messages per WriteMessages call.
	ChunkSize int
}

// messageWriter is the subset of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes every generated record as a JSON message on the topic
// <prefix>-<collection>, keyed by block number.
type Producer struct {
	writer    messageWriter
	prefix    string
	chunkSize int
}

func NewProducer(cfg ProducerConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           500 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newProducer(writer, cfg), nil
}

func newProducer(writer messageWriter, cfg ProducerConfig) *Producer {
	prefix := strings.TrimSpace(cfg.TopicPrefix)
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = storage.DefaultChunkSize
	}
	return &Producer{writer: writer, prefix: prefix, chunkSize: chunkSize}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func (p *Producer) PutBlocks(ctx context.Context, blocks []model.Block) error {
	return publish(ctx, p, storage.CollectionBlocks, blocks, func(b model.Block) uint64 { return b.BlockNumber })
}

func (p *Producer) PutTransactions(ctx context.Context, transactions []model.Transaction) error {
	return publish(ctx, p, storage.CollectionTransactions, transactions, func(tx model.Transaction) uint64 { return tx.Block })
}

func (p *Producer) PutTransfers(ctx context.Context, transfers []model.Transfer) error {
	return publish(ctx, p, storage.CollectionTransfers, transfers, func(t model.Transfer) uint64 { return t.BlockNumber })
}

func (p *Producer) PutPools(ctx context.Context, pools []model.Pool) error {
	return publish(ctx, p, storage.CollectionPools, pools, func(pool model.Pool) uint64 { return pool.InitBlock })
}

// Topic returns the topic a collection is published to.
func (p *Producer) Topic(collection string) string {
	return fmt.Sprintf("%s-%s", p.prefix, collection)
}

func publish[T any](ctx context.Context, p *Producer, collection string, records []T, block func(T) uint64) error {
	topic := p.Topic(collection)
	return storage.PutChunked(records, p.chunkSize, func(chunk []T) error {
		messages := make([]kafka.Message, 0, len(chunk))
		for _, record := range chunk {
			payload, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("marshal %s record: %w", collection, err)
			}
			messages = append(messages, kafka.Message{
				Topic: topic,
				Key:   []byte(strconv.FormatUint(block(record), 10)),
				Value: payload,
			})
		}
		if err := p.writer.WriteMessages(ctx, messages...); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
		return nil
	})
}
