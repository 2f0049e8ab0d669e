package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pay-chain.backend/internal/domain/events"
	"pay-chain.backend/pkg/logger"
)

const (
	dialTimeout = 10 * time.Second

	// maxDeliveryAttempts bounds redelivery before a message is dead-lettered
	maxDeliveryAttempts = 3

	retryHeader = "x-retry"
)

// Bus is a RabbitMQ-backed event bus over a durable topic exchange with
// routing key = event name. Publishing is fire-and-forget: a disconnected bus
// degrades to warnings, never to caller-visible failures.
type Bus struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewBus connects to RabbitMQ and declares the topic exchange
func NewBus(url, exchange string) (*Bus, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Bus{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends an event envelope with routing key = event name. Nothing is
// retried beyond one channel reopen; downstream consumers must tolerate
// missed events.
func (b *Bus) Publish(ctx context.Context, event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	env := events.Envelope{
		Event:     event,
		Data:      raw,
		Timestamp: time.Now(),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	pub := amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   env.Timestamp,
		Body:        body,
	}

	if err := b.ch.PublishWithContext(ctx, b.exchange, event, false, false, pub); err != nil {
		// The channel may have been closed under us; reopen once and retry.
		ch, chErr := b.conn.Channel()
		if chErr != nil {
			return err
		}
		b.ch = ch
		return b.ch.PublishWithContext(ctx, b.exchange, event, false, false, pub)
	}
	return nil
}

// Subscribe binds a durable queue to the topic exchange and dispatches each
// delivered envelope to the handler on a dedicated worker goroutine. A failed
// handler gets the message redelivered up to maxDeliveryAttempts times, after
// which it is dead-lettered to <exchange>.dlx / <queue>.dlq instead of being
// silently dropped.
func (b *Bus) Subscribe(queue, pattern string, handler events.Handler) error {
	b.mu.Lock()
	ch := b.ch
	b.mu.Unlock()

	dlx := b.exchange + ".dlx"
	if err := ch.ExchangeDeclare(dlx, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	dlq, err := ch.QueueDeclare(queue+".dlq", true, false, false, false, nil)
	if err != nil {
		return err
	}
	if err := ch.QueueBind(dlq.Name, "#", dlx, false, nil); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": dlx,
	})
	if err != nil {
		return err
	}
	if err := ch.QueueBind(q.Name, pattern, b.exchange, false, nil); err != nil {
		return err
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go b.dispatch(queue, msgs, handler)
	return nil
}

func (b *Bus) dispatch(queue string, msgs <-chan amqp.Delivery, handler events.Handler) {
	for d := range msgs {
		ctx := context.Background()

		var env events.Envelope
		if err := json.Unmarshal(d.Body, &env); err != nil {
			logger.Warn(ctx, "Discarding malformed event",
				zap.String("queue", queue),
				zap.String("routing_key", d.RoutingKey),
				zap.Error(err))
			d.Nack(false, false)
			continue
		}

		if err := handler(ctx, env); err != nil {
			b.redeliver(ctx, queue, d, env, err)
			continue
		}
		d.Ack(false)
	}
}

// redeliver re-enqueues a failed message with an incremented attempt counter,
// or dead-letters it once the attempt budget is spent.
func (b *Bus) redeliver(ctx context.Context, queue string, d amqp.Delivery, env events.Envelope, cause error) {
	attempt := 1
	if v, ok := d.Headers[retryHeader]; ok {
		if n, ok := v.(int32); ok {
			attempt = int(n) + 1
		}
	}

	if attempt >= maxDeliveryAttempts {
		logger.Error(ctx, "Event handler failed, dead-lettering",
			zap.String("queue", queue),
			zap.String("event", env.Event),
			zap.Int("attempts", attempt),
			zap.Error(cause))
		d.Nack(false, false)
		return
	}

	logger.Warn(ctx, "Event handler failed, re-enqueueing",
		zap.String("queue", queue),
		zap.String("event", env.Event),
		zap.Int("attempt", attempt),
		zap.Error(cause))

	b.mu.Lock()
	err := b.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Headers:     amqp.Table{retryHeader: int32(attempt)},
		Body:        d.Body,
	})
	b.mu.Unlock()

	if err != nil {
		// Could not re-enqueue; let the broker redeliver instead.
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}

// Close closes the channel and connection
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ch != nil {
		b.ch.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}
