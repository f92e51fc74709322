// Package kafkapub despacha notificaciones a un tópico Kafka; un worker
// externo las entrega por email/SMS.
package kafkapub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"doggy-daycare/internal/domain/crm"
	"doggy-daycare/internal/platform/logger"

	"github.com/segmentio/kafka-go"
)

var ErrClosed = errors.New("publisher is closed")

const (
	HeaderChannel  = "channel"
	HeaderTemplate = "template_code"
)

// MessageWriter es la parte de *kafka.Writer que usamos.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

type Publisher struct {
	w   MessageWriter
	log logger.Logger

	mu     sync.RWMutex
	closed bool
}

func New(cfg Config, log logger.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("topic cannot be empty")
	}
	if log == nil {
		log = logger.Nop()
	}
	batch := cfg.BatchTimeout
	if batch <= 0 {
		batch = 50 * time.Millisecond
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: batch,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer", map[string]any{"detail": fmt.Sprintf(msg, args...)})
		}),
	}
	return NewWithWriter(w, log), nil
}

func NewWithWriter(w MessageWriter, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{w: w, log: log}
}

// Dispatch implementa crm.Dispatcher. La key es el cliente para mantener
// el orden por cliente dentro de la partición.
func (p *Publisher) Dispatch(ctx context.Context, n crm.Notification) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(n.ClientID),
		Value: value,
		Time:  n.CreatedAt,
		Headers: []kafka.Header{
			{Key: HeaderChannel, Value: []byte(n.Channel)},
			{Key: HeaderTemplate, Value: []byte(n.TemplateCode)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	p.log.Debug("notification published", map[string]any{
		"notification_id": n.ID,
		"channel":         n.Channel,
	})
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.w.Close()
}
