// internal/events/amqp_sink.go
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AMQPSink publishes issuance events to a durable queue so out-of-process
// consumers (spreadsheet loggers, sheet renderers) can subscribe. Each
// publish dials a fresh connection; issuance volume is label-batch sized,
// not a hot path.
type AMQPSink struct {
	url   string
	queue string
}

func NewAMQPSink(url, queue string) *AMQPSink {
	return &AMQPSink{url: url, queue: queue}
}

func (s *AMQPSink) Publish(ctx context.Context, event CodeIssued) error {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		logrus.WithError(err).Error("amqp: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Error("amqp: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		s.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		logrus.WithError(err).Error("amqp: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("amqp: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		logrus.WithError(err).Error("amqp: publish failed")
		return err
	}

	return nil
}
