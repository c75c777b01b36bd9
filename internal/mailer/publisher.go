// Package mailer queues outgoing mail on RabbitMQ for the mail worker to send.
package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueName = "email_queue"

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch      Channel
	timeout time.Duration
}

func NewPublisher(ch Channel, timeout time.Duration) *Publisher {
	return &Publisher{ch: ch, timeout: timeout}
}

// DeclareQueue makes sure the durable mail queue exists.
func DeclareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

func (p *Publisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	return p.ch.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
