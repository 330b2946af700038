// Package kafka publishes parcel notifications to Kafka topics.
//
// Each address kind has its own topic, "<prefix>.customer", "<prefix>.courier"
// and "<prefix>.broadcast". The message key is the full address, so all
// notifications for one recipient land on the same partition in send order.
package kafka

import (
	"context"
	"strings"
	"time"

	"parcelhub/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopicPrefix = "parcelhub.notifications"

	// DefaultBatchTimeout bounds how long a send waits for more messages.
	// kafka-go otherwise holds every synchronous write for a full second.
	DefaultBatchTimeout = 5 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Transport implements ports.NotificationTransport.
type Transport struct {
	w      messageWriter
	prefix string
}

// NewTransport writes to brokers. Hash balancing keeps a key on one partition.
func NewTransport(brokers []string, topicPrefix string) *Transport {
	return newTransportWithWriter(newWriter(brokers), topicPrefix)
}

func newWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           DefaultBatchTimeout,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
}

func newTransportWithWriter(w messageWriter, topicPrefix string) *Transport {
	topicPrefix = strings.TrimSuffix(strings.TrimSpace(topicPrefix), ".")
	if topicPrefix == "" {
		topicPrefix = DefaultTopicPrefix
	}
	return &Transport{w: w, prefix: topicPrefix}
}

func (t *Transport) Send(ctx context.Context, address ports.Address, payload []byte) error {
	if err := t.w.WriteMessages(ctx, kafka.Message{
		Topic: t.Topic(address),
		Key:   []byte(address.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}); err != nil {
		return errors.Wrapf(err, "kafka publish to %s", address)
	}
	return nil
}

func (t *Transport) Topic(address ports.Address) string {
	return t.prefix + "." + string(address.Kind)
}

func (t *Transport) Close() error {
	return errors.Wrap(t.w.Close(), "kafka writer close")
}
