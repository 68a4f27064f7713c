// Package kafkafeed consumes pre-parsed alert snapshots from a Kafka
// topic, for deployments where an upstream pipeline already polls the NWS
// and fans alerts out to a fleet of signs. Each message value is the
// complete active alert set as a JSON array; the newest message wins.
package kafkafeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

// Config holds the consumer settings.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Reader consumes alert snapshots and keeps the latest one in memory. It
// implements feed.Source: Fetch returns the most recent snapshot without
// blocking on the broker.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger

	mu         sync.RWMutex
	alerts     []domain.Alert
	receivedAt time.Time
	hasData    bool
}

// NewReader creates a Kafka snapshot consumer.
func NewReader(cfg Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return &Reader{reader: r, logger: logger}
}

// Run consumes messages until the context is cancelled. Malformed
// snapshots are logged and skipped; the previous snapshot stays current.
func (r *Reader) Run(ctx context.Context) error {
	r.logger.Info("kafka feed started", "topic", r.reader.Config().Topic)
	for {
		msg, err := r.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, kafkago.ErrGroupClosed) {
				r.logger.Info("kafka feed stopping")
				return nil
			}
			r.logger.Error("kafka read failed", "error", err)
			continue
		}

		r.handleMessage(msg)
	}
}

// handleMessage installs one snapshot message as the current alert set.
func (r *Reader) handleMessage(msg kafkago.Message) {
	var alerts []domain.Alert
	if err := json.Unmarshal(msg.Value, &alerts); err != nil {
		r.logger.Warn("malformed alert snapshot, skipping",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		return
	}

	r.mu.Lock()
	r.alerts = alerts
	r.receivedAt = msg.Time
	r.hasData = true
	r.mu.Unlock()
	r.logger.Debug("alert snapshot received", "alerts", len(alerts), "offset", msg.Offset)
}

// Fetch returns the latest snapshot. It errors until the first message
// arrives so the disk fallback can cover the gap after a restart.
func (r *Reader) Fetch(_ context.Context) ([]domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasData {
		return nil, fmt.Errorf("no alert snapshot received yet from topic %s", r.reader.Config().Topic)
	}
	out := make([]domain.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out, nil
}

// ReceivedAt reports when the current snapshot was produced.
func (r *Reader) ReceivedAt() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.receivedAt, r.hasData
}

func (r *Reader) Close() error {
	return r.reader.Close()
}
