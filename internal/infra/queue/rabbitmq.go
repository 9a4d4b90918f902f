package mq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/assetlabel/inventory/internal/config"
	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Routing keys published on the asset events exchange.
const (
	RoutingAssetCreated = "asset.created"
	RoutingAssetUpdated = "asset.updated"
	RoutingAssetDeleted = "asset.deleted"
)

// headerCarrier lets otel propagators read and write amqp headers.
type headerCarrier amqp.Table

func (c headerCarrier) Get(key string) string {
	val, ok := c[key]
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}

func (c headerCarrier) Set(key, value string) { c[key] = value }

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

type DialFunc func() (*amqp.Connection, error)

// Dialer returns a DialFunc for the configured broker URL.
func Dialer(cfg *config.Config) DialFunc {
	return func() (*amqp.Connection, error) {
		return amqp.Dial(cfg.RabbitMQ.URL)
	}
}

// Topology declares the events exchange and the QR job queue. Both are
// durable and declaring them again is a no-op.
func Topology(ch *amqp.Channel, cfg *config.Config) error {
	if err := ch.ExchangeDeclare(cfg.RabbitMQ.EventsExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", cfg.RabbitMQ.EventsExchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQ.QRQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.RabbitMQ.QRQueue, err)
	}
	return nil
}

// Publisher holds one channel and swaps in a fresh connection when the broker
// drops it.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	log    *zap.Logger
	cfg    *config.Config
	dialFn DialFunc
	mu     sync.RWMutex
	closed bool
}

func NewPublisher(log *zap.Logger, cfg *config.Config, dialFn DialFunc) (*Publisher, error) {
	conn, ch, err := open(dialFn, cfg)
	if err != nil {
		return nil, err
	}
	p := &Publisher{conn: conn, ch: ch, log: log, cfg: cfg, dialFn: dialFn}
	go p.watchConnection()
	return p, nil
}

func open(dialFn DialFunc, cfg *config.Config) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := dialFn()
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := Topology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func (p *Publisher) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

func (p *Publisher) watchConnection() {
	for !p.isClosed() {
		p.mu.RLock()
		conn := p.conn
		p.mu.RUnlock()

		amqpErr := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if p.isClosed() {
			return
		}
		p.log.Warn("rabbitmq connection closed", zap.Error(amqpErr))
		p.reconnect()
	}
}

func (p *Publisher) reconnect() {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for !p.isClosed() {
		conn, ch, err := open(p.dialFn, p.cfg)
		if err != nil {
			p.log.Error("rabbitmq reconnect failed", zap.Error(err), zap.Duration("backoff", backoff))
			time.Sleep(backoff)
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		p.mu.Lock()
		p.conn, p.ch = conn, ch
		p.mu.Unlock()
		p.log.Info("rabbitmq reconnected")
		return
	}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, errors.New("publisher is closed")
	}
	if p.ch == nil || p.ch.IsClosed() {
		return nil, errors.New("channel is not available")
	}
	return p.ch, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// PublishJSON encodes body with sonic and publishes it persistently. The
// caller's trace context travels in the message headers.
func (p *Publisher) PublishJSON(ctx context.Context, exchange, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	kind := "exchange"
	dest := exchange
	if exchange == "" {
		kind, dest = "queue", routingKey
	}
	ctx, span := otel.Tracer(p.cfg.App.Name).Start(ctx, "rabbitmq.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", dest),
			attribute.String("messaging.destination_kind", kind),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
			attribute.Int("messaging.message.body.size", len(b)),
		))
	defer span.End()

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	ch, err := p.channel()
	if err != nil {
		span.RecordError(err)
		return err
	}
	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
		Headers:      headers,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// Enqueue publishes body straight to a queue through the default exchange.
func (p *Publisher) Enqueue(ctx context.Context, queue string, body any) error {
	return p.PublishJSON(ctx, "", queue, body)
}

type Consumer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	q    amqp.Queue
	log  *zap.Logger
	cfg  *config.Config
}

func NewConsumer(dialFn DialFunc, queueName string, prefetch int, log *zap.Logger, cfg *config.Config) (*Consumer, error) {
	conn, ch, err := open(dialFn, cfg)
	if err != nil {
		return nil, err
	}
	if prefetch <= 0 {
		prefetch = 10
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		conn.Close()
		return nil, err
	}
	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch, q: q, log: log, cfg: cfg}, nil
}

func (c *Consumer) Close() error {
	return errors.Join(c.ch.Close(), c.conn.Close())
}

// Handle delivers messages to handler until ctx ends. A handler error nacks
// the message back onto the queue.
func (c *Consumer) Handle(ctx context.Context, handler func(ctx context.Context, body []byte) error) error {
	msgs, err := c.ch.Consume(c.q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	tracer := otel.Tracer(c.cfg.App.Name)
	propagator := otel.GetTextMapPropagator()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("consumer channel closed")
			}

			msgCtx := ctx
			if m.Headers != nil {
				msgCtx = propagator.Extract(ctx, headerCarrier(m.Headers))
			}
			msgCtx, span := tracer.Start(msgCtx, "rabbitmq.consume",
				trace.WithSpanKind(trace.SpanKindConsumer),
				trace.WithAttributes(
					attribute.String("messaging.system", "rabbitmq"),
					attribute.String("messaging.destination", c.q.Name),
					attribute.String("messaging.destination_kind", "queue"),
					attribute.String("messaging.operation", "receive"),
					attribute.Int("messaging.message.body.size", len(m.Body)),
				))

			if err := handler(msgCtx, m.Body); err != nil {
				span.RecordError(err)
				_ = m.Nack(false, true)
				c.log.Error("consume message", zap.String("queue", c.q.Name), zap.Error(err))
			} else {
				_ = m.Ack(false)
			}
			span.End()
		}
	}
}
