package amqp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"bizledger/internal/core"
	applog "bizledger/internal/log"
)

// Circuit breaker states
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	maxFailures    = 5
	openTimeout    = 30 * time.Second
	maxRetries     = 3
	publishTimeout = 5 * time.Second
)

// ErrCircuitOpen is returned while the broker is considered unreachable.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Options configure a Client.
type Options struct {
	URL        string
	Exchange   string
	RoutingKey string // prefix for per-change routing keys
	Queue      string
	Logger     *applog.Logger
}

// Client publishes store changes to a topic exchange and consumes them from a
// bound queue. Lost connections are redialled on the next publish.
type Client struct {
	url          string
	exchangeName string
	routingKey   string
	queueName    string
	logger       *applog.Logger

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel

	failureCount int64
	state        int32
	lastFailure  time.Time
}

func NewClient(opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	client := &Client{
		url:          opts.URL,
		exchangeName: opts.Exchange,
		routingKey:   opts.RoutingKey,
		queueName:    opts.Queue,
		logger:       logger.WithComponent(applog.ComponentAMQP),
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if err := client.connect(); err != nil {
		return nil, err
	}
	return client, nil
}

// connect must be called with mu held.
func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.conn = conn
	c.channel = channel

	if err := c.setup(); err != nil {
		c.closeLocked()
		return fmt.Errorf("setup exchange and queue: %w", err)
	}
	return nil
}

func (c *Client) setup() error {
	// Declare exchange
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Declare queue
	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Bind queue to every change published under the routing key prefix
	err = c.channel.QueueBind(
		c.queueName,
		BindingKey(c.routingKey),
		c.exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// ensureChannel must be called with mu held.
func (c *Client) ensureChannel() error {
	if c.channel != nil && !c.channel.IsClosed() && c.conn != nil && !c.conn.IsClosed() {
		return nil
	}
	c.closeLocked()
	return c.connect()
}

// PublishChange publishes one store change. Connection errors are retried
// with exponential backoff; repeated failures open the circuit breaker.
func (c *Client) PublishChange(ctx context.Context, change core.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.isCircuitOpen() {
		return fmt.Errorf("publish %s: %w", change.ID, ErrCircuitOpen)
	}

	msg := NewChangeMessage(change)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := msg.RoutingKey(c.routingKey)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := exponentialBackoff(attempt - 1)
			c.logger.WarnContext(ctx, "Retrying AMQP publish",
				"attempt", attempt,
				"backoff", wait,
				applog.FieldError, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		lastErr = c.publish(ctx, key, body)
		if lastErr == nil {
			c.recordSuccess()
			c.logger.DebugContext(ctx, "Published change message",
				applog.NewFields().WithChange(change).ToSlice()...)
			return nil
		}

		c.recordFailure()
		if !isConnectionError(lastErr) || c.isCircuitOpen() {
			break
		}
	}
	return fmt.Errorf("publish message: %w", lastErr)
}

func (c *Client) publish(ctx context.Context, key string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureChannel(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		key,            // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil && isConnectionError(err) {
		c.closeLocked()
	}
	return err
}

// ConsumeChanges delivers change messages to handler until ctx is done.
// Undecodable messages are dropped; handler errors requeue the message.
func (c *Client) ConsumeChanges(ctx context.Context, handler func(context.Context, *ChangeMessage) error) error {
	c.mu.Lock()
	if err := c.ensureChannel(); err != nil {
		c.mu.Unlock()
		return err
	}
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.InfoContext(ctx, "Started consuming change messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			msg, err := ChangeMessageFromJSON(delivery.Body)
			if err != nil {
				c.logger.ErrorContext(ctx, "Failed to unmarshal message", applog.FieldError, err)
				delivery.Nack(false, false) // reject and don't requeue
				continue
			}

			fields := applog.NewFields().WithChange(msg.Change())
			if err := handler(ctx, msg); err != nil {
				c.logger.ErrorContext(ctx, "Failed to handle message", fields.WithError(err).ToSlice()...)
				delivery.Nack(false, true) // reject and requeue
				continue
			}

			delivery.Ack(false)
			c.logger.DebugContext(ctx, "Processed change message", fields.ToSlice()...)
		}
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	var err error
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	return err
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.state) != StateOpen {
		return false
	}
	c.mu.Lock()
	last := c.lastFailure
	c.mu.Unlock()
	if time.Since(last) > openTimeout {
		atomic.CompareAndSwapInt32(&c.state, StateOpen, StateHalfOpen)
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

func (c *Client) recordFailure() {
	c.mu.Lock()
	c.lastFailure = time.Now()
	c.mu.Unlock()
	if atomic.AddInt64(&c.failureCount, 1) >= maxFailures || atomic.LoadInt32(&c.state) == StateHalfOpen {
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

// exponentialBackoff returns 1s, 2s, 4s, ... capped at 30s.
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= 5 {
		return openTimeout
	}
	d := time.Second << attempt
	if d > openTimeout {
		return openTimeout
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection", "eof", "broken pipe", "channel/connection is not open"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
