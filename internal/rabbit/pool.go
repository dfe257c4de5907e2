package rabbit

import (
	"context"
	"encoding"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Broker is the consumer surface of the client, extracted so pool tests can
// feed deliveries without a live connection.
type Broker interface {
	Consume(queue string) (<-chan amqp.Delivery, error)
}

// Observer receives per-queue delivery accounting. All methods must be safe
// for concurrent use.
type Observer interface {
	Delivered(queue string)
	Acked(queue string)
	DecodeFailed(queue string)
	HandlerFailed(queue string)
}

type nopObserver struct{}

func (nopObserver) Delivered(string)     {}
func (nopObserver) Acked(string)         {}
func (nopObserver) DecodeFailed(string)  {}
func (nopObserver) HandlerFailed(string) {}

// Handler processes one decoded message against the shared state.
type Handler[S, M any] func(ctx context.Context, state S, msg *M) error

// runner is a type-erased registration: it knows its queue and message type
// and consumes its stream to completion when started.
type runner[S any] func(ctx context.Context, broker Broker, state S, obs Observer, log zerolog.Logger) error

// Consumers maps queue names to type-erased handlers. Queues carry
// different message types, so each Add captures its concrete type inside
// the stored runner; the registry itself is homogeneous.
type Consumers[S any] struct {
	entries map[string]runner[S]
}

// NewConsumers returns an empty registry.
func NewConsumers[S any]() *Consumers[S] {
	return &Consumers[S]{entries: make(map[string]runner[S])}
}

// Add registers a handler for a queue. The first registration for a queue
// wins; later ones are ignored. Add returns the registry for chaining.
func Add[S, M any, P interface {
	*M
	encoding.BinaryUnmarshaler
}](c *Consumers[S], queue string, handler Handler[S, M]) *Consumers[S] {
	if _, ok := c.entries[queue]; ok {
		return c
	}
	c.entries[queue] = func(ctx context.Context, broker Broker, state S, obs Observer, log zerolog.Logger) error {
		deliveries, err := broker.Consume(queue)
		if err != nil {
			return err
		}
		log.Info().Str("queue", queue).Msg("Consuming queue")

		for d := range deliveries {
			obs.Delivered(queue)

			var msg M
			if err := P(&msg).UnmarshalBinary(d.Body); err != nil {
				// Left unacked: the broker's redelivery/DLQ policy owns
				// undecodable payloads. The projector never nacks.
				obs.DecodeFailed(queue)
				log.Error().Err(err).Str("queue", queue).Msg("Failed to decode delivery, leaving unacked")
				continue
			}

			if err := handler(ctx, state, &msg); err != nil {
				obs.HandlerFailed(queue)
				log.Error().Err(err).Str("queue", queue).Msg("Handler failed, leaving delivery unacked")
				continue
			}

			if err := d.Ack(false); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("Failed to ack delivery")
				continue
			}
			obs.Acked(queue)
		}

		log.Info().Str("queue", queue).Msg("Consumer stream ended")
		return nil
	}
	return c
}

// Merge unions another registry into this one. On duplicate queue names the
// existing registration wins.
func (c *Consumers[S]) Merge(other *Consumers[S]) *Consumers[S] {
	for queue, run := range other.entries {
		if _, ok := c.entries[queue]; !ok {
			c.entries[queue] = run
		}
	}
	return c
}

// Len returns the number of registered queues.
func (c *Consumers[S]) Len() int {
	return len(c.entries)
}

// Has reports whether a queue is registered.
func (c *Consumers[S]) Has(queue string) bool {
	_, ok := c.entries[queue]
	return ok
}

// Pool runs one goroutine per registered queue over the shared broker.
type Pool[S any] struct {
	broker    Broker
	state     S
	consumers *Consumers[S]
	obs       Observer
	log       zerolog.Logger
}

// NewPool assembles a pool. A nil observer disables accounting.
func NewPool[S any](broker Broker, state S, consumers *Consumers[S], obs Observer, logger zerolog.Logger) *Pool[S] {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Pool[S]{broker: broker, state: state, consumers: consumers, obs: obs, log: logger}
}

// Start spawns every consumer and blocks until all streams end, which in
// steady state only happens when the broker connection closes. The first
// startup error cancels the remaining consumers.
func (p *Pool[S]) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for queue := range p.consumers.entries {
		run := p.consumers.entries[queue]
		g.Go(func() error {
			return run(ctx, p.broker, p.state, p.obs, p.log)
		})
	}
	return g.Wait()
}
