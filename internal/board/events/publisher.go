// Package events emits board activity onto Kafka for downstream consumers
// (analytics, view counters). Emission is fire-and-forget: a broker outage
// must never fail or slow a snapshot request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

const TopicBoardViewed = "openboard.board-viewed"

// BoardViewed records one unauthenticated view of a public board.
type BoardViewed struct {
	BoardID   string    `json:"boardId"`
	ProjectID string    `json:"projectId"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// Publisher produces events asynchronously. Keyed by board id so per-board
// ordering survives partitioning.
type Publisher struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewPublisher connects to the brokers and ensures the topic exists. Topic
// creation failures other than "already exists" are logged, not fatal: the
// cluster may disallow auto-creation and provision topics out of band.
func NewPublisher(ctx context.Context, brokers []string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopics(ctx, 1, 1, nil, TopicBoardViewed); err != nil {
		logger.WarnContext(ctx, "ensure topic failed", "topic", TopicBoardViewed, "error", err.Error())
	}

	return &Publisher{client: client, logger: logger}, nil
}

// BoardViewed publishes one view event. The produce callback runs on the
// client's internal goroutines; failures are logged and dropped.
func (p *Publisher) BoardViewed(ctx context.Context, ev BoardViewed) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.WarnContext(ctx, "encode board viewed event failed", "board_id", ev.BoardID, "error", err.Error())
		return
	}

	record := &kgo.Record{
		Topic: TopicBoardViewed,
		Key:   []byte(ev.BoardID),
		Value: data,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("publish board viewed event failed", "board_id", ev.BoardID, "error", err.Error())
		}
	})
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close(ctx context.Context) {
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("flush events failed", "error", err.Error())
	}
	p.client.Close()
}
