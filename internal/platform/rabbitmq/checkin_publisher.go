package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

type CheckinPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewCheckinPublisher(conn *amqp.Connection, queueName string) *CheckinPublisher {
	return &CheckinPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *CheckinPublisher) Publish(ctx context.Context, checkin model.Checkin) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(checkin)
	if err != nil {
		return fmt.Errorf("marshal checkin payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish checkin failed: %w", err)
	}
	return nil
}
