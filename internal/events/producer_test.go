package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"storefront/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type memoryWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	failWith error
	closed   bool
}

func (w *memoryWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failWith != nil {
		return w.failWith
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *memoryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestProducer_PublishesKeyedByOrderID(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &memoryWriter{}
	p := newProducer(w, 4)
	p.Start()

	p.PublishOrderCreated(&models.OrderCreatedEvent{OrderID: "202610140042", UserID: "U1", TotalPrice: 40})
	p.Close()

	require.Len(t, w.messages, 1)
	assert.Equal(t, "202610140042", string(w.messages[0].Key))
	var decoded models.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, "U1", decoded.UserID)
	assert.True(t, w.closed)
}

func TestProducer_WriteFailureDoesNotStopLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &memoryWriter{failWith: errors.New("broker down")}
	p := newProducer(w, 4)
	p.Start()

	p.PublishOrderCreated(&models.OrderCreatedEvent{OrderID: "1"})
	p.PublishOrderCreated(&models.OrderCreatedEvent{OrderID: "2"})
	p.Close()

	assert.Empty(t, w.messages)
	assert.True(t, w.closed)
}

func TestProducer_FullInboxDrops(t *testing.T) {
	w := &memoryWriter{}
	p := newProducer(w, 1)

	p.PublishOrderCreated(&models.OrderCreatedEvent{OrderID: "1"})
	p.PublishOrderCreated(&models.OrderCreatedEvent{OrderID: "2"})

	p.Start()
	p.Close()
	p.PublishOrderCreated(&models.OrderCreatedEvent{OrderID: "3"})

	require.Len(t, w.messages, 1)
	assert.Equal(t, "1", string(w.messages[0].Key))
}
