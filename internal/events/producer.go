package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the producer uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes order events from a buffered inbox. Publishing never
// blocks the caller; a full inbox drops the event.
type Producer struct {
	w      messageWriter
	inbox  chan kafka.Message
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, buf)
}

func newProducer(w messageWriter, buf int) *Producer {
	if buf <= 0 {
		buf = 64
	}
	return &Producer{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// Start runs the write loop until Close
func (p *Producer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				log.Printf("failed to publish event %s: %v", m.Key, err)
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			log.Printf("failed to close kafka writer: %v", err)
		}
	}()
}

// PublishOrderCreated queues the event keyed by order id
func (p *Producer) PublishOrderCreated(event *models.OrderCreatedEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to encode order event %s: %v", event.OrderID, err)
		return
	}
	p.publish([]byte(event.OrderID), value, kafka.Header{Key: "type", Value: []byte("order.created")})
}

func (p *Producer) publish(key, value []byte, headers ...kafka.Header) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- kafka.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}:
	default:
		log.Printf("event inbox full, dropping %s", key)
	}
}

// Close flushes queued messages and waits for the write loop to exit
func (p *Producer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()
	<-p.done
}

// NoopPublisher is used when no brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(*models.OrderCreatedEvent) {}
