package messaging

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
)

// rabbitMQPublisher implements EventPublisher over a durable RabbitMQ queue.
type rabbitMQPublisher struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

// NewRabbitMQPublisher dials the broker and declares the queue (idempotent).
func NewRabbitMQPublisher(amqpURL, queueName string, cb *gobreaker.CircuitBreaker) (EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &rabbitMQPublisher{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		cb:        cb,
	}, nil
}

func (p *rabbitMQPublisher) PublishStudentCreated(ctx context.Context, evt StudentEvent) error {
	return p.publish(ctx, "student.created", evt)
}

func (p *rabbitMQPublisher) PublishStudentDeleted(ctx context.Context, evt StudentEvent) error {
	return p.publish(ctx, "student.deleted", evt)
}

func (p *rabbitMQPublisher) publish(ctx context.Context, eventType string, evt StudentEvent) error {
	body, err := json.Marshal(struct {
		Type string `json:"type"`
		StudentEvent
	}{Type: eventType, StudentEvent: evt})
	if err != nil {
		return err
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.ch.PublishWithContext(
			ctx,
			"",          // exchange (default)
			p.queueName, // routing key == queue name
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
	})
	return err
}

func (p *rabbitMQPublisher) Close() error {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
