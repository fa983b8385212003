package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Alert is published when an expense write pushes a segment over its
// allocation for the period.
type Alert struct {
	UserID      int     `json:"user_id"`
	SegmentID   int     `json:"segment_id"`
	SegmentName string  `json:"segment_name"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Spent       float64 `json:"spent"`
	Budget      float64 `json:"budget"`
	Message     string  `json:"message"`
}

type Publisher interface {
	Publish(alert Alert) error
	Close() error
}

// OverBudget reports whether spend crossed the allocation. A segment
// with no allocation never alerts.
func OverBudget(spent, budget float64) bool {
	return budget > 0 && spent > budget
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Alert) error { return nil }
func (NopPublisher) Close() error        { return nil }

// AMQPPublisher sends alerts to a durable RabbitMQ queue.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewAMQPPublisher(url, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	queue, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, queue: queue}, nil
}

func (p *AMQPPublisher) Publish(alert Alert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		context.Background(),
		"",           // default exchange
		p.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
