package kafkafeed

import (
	"context"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBareReader() *Reader {
	return NewReader(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "weather-alerts",
		GroupID: "matrix-sign-test",
	}, slog.Default())
}

func TestFetch_ErrorsBeforeFirstSnapshot(t *testing.T) {
	r := newBareReader()

	_, err := r.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather-alerts")
}

func TestHandleMessage_InstallsSnapshot(t *testing.T) {
	r := newBareReader()
	produced := time.Date(2024, 4, 26, 18, 0, 0, 0, time.UTC)

	r.handleMessage(kafkago.Message{
		Value: []byte(`[{"event": "Tornado Warning", "severity": "Extreme", "areas": "San Saba"}]`),
		Time:  produced,
	})

	alerts, err := r.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Tornado Warning", alerts[0].Kind)

	at, ok := r.ReceivedAt()
	require.True(t, ok)
	assert.Equal(t, produced, at)
}

func TestHandleMessage_NewestSnapshotWins(t *testing.T) {
	r := newBareReader()

	r.handleMessage(kafkago.Message{Value: []byte(`[{"event": "Tornado Warning"}]`)})
	r.handleMessage(kafkago.Message{Value: []byte(`[]`)})

	alerts, err := r.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestHandleMessage_MalformedSnapshotKeepsPrevious(t *testing.T) {
	r := newBareReader()

	r.handleMessage(kafkago.Message{Value: []byte(`[{"event": "Flood Warning"}]`)})
	r.handleMessage(kafkago.Message{Value: []byte(`{broken`)})

	alerts, err := r.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Flood Warning", alerts[0].Kind)
}

func TestFetch_ReturnsCopy(t *testing.T) {
	r := newBareReader()
	r.handleMessage(kafkago.Message{Value: []byte(`[{"event": "Tornado Watch"}]`)})

	first, err := r.Fetch(context.Background())
	require.NoError(t, err)
	first[0].Kind = "mutated"

	second, err := r.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tornado Watch", second[0].Kind)
}
