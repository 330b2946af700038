// Package rabbitmq publishes parcel notifications to a RabbitMQ topic exchange.
//
// Routing keys are "customer.<id>", "courier.<id>" and "broadcast", so a
// consumer can bind "customer.*" for every customer or one exact key for a
// single recipient.
package rabbitmq

import (
	"context"

	"parcelhub/internal/core/ports"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "parcel_notifications"

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Transport implements ports.NotificationTransport.
type Transport struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// Dial connects to url, opens a channel and declares the exchange.
func Dial(url, exchange string) (*Transport, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "rabbitmq open channel")
	}

	t, err := newTransport(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	t.conn = conn
	return t, nil
}

func newTransport(ch channel, exchange string) (*Transport, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, errors.Wrapf(err, "rabbitmq declare exchange %s", exchange)
	}
	return &Transport{ch: ch, exchange: exchange}, nil
}

func (t *Transport) Send(ctx context.Context, address ports.Address, payload []byte) error {
	if err := t.ch.PublishWithContext(
		ctx,
		t.exchange,
		RoutingKey(address),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         payload,
		},
	); err != nil {
		return errors.Wrapf(err, "rabbitmq publish to %s", address)
	}
	return nil
}

// RoutingKey maps an address to its topic routing key.
func RoutingKey(address ports.Address) string {
	if address.ID == "" {
		return string(address.Kind)
	}
	return string(address.Kind) + "." + address.ID
}

func (t *Transport) Close() error {
	if err := t.ch.Close(); err != nil {
		return errors.Wrap(err, "rabbitmq close channel")
	}
	if t.conn != nil {
		return errors.Wrap(t.conn.Close(), "rabbitmq close connection")
	}
	return nil
}
