// Package rabbit provides the shared broker connection and the consumer
// pool that multiplexes every registered queue over it.
package rabbit

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Config holds the broker connection settings.
type Config struct {
	// URI is the AMQP connection URI.
	URI string
	// ConsumerTagSuffix is appended to "<queue>-" so that replicas sharing
	// a queue remain individually identifiable.
	ConsumerTagSuffix string
}

// Client wraps one broker connection and one channel. All queue consumers
// share both; the amqp library serializes frames internally.
type Client struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	tagSuffix string
}

// Dial connects to the broker and opens the shared channel.
func Dial(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("connect broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, ch: ch, tagSuffix: cfg.ConsumerTagSuffix}, nil
}

// Consume opens a consumer on the queue with manual acknowledgement and the
// consumer tag "<queue>-<suffix>". The returned channel closes when the
// connection does, which is how shutdown propagates to the pool.
func (c *Client) Consume(queue string) (<-chan amqp.Delivery, error) {
	tag := fmt.Sprintf("%s-%s", queue, c.tagSuffix)
	deliveries, err := c.ch.Consume(queue, tag, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}
	return deliveries, nil
}

// Close closes the broker connection, ending every consumer stream.
func (c *Client) Close() error {
	return c.conn.Close()
}
