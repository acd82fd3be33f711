package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IAccountDeletionPublisher delivers deletion events to the message bus,
// at-least-once, no ordering guarantee.
type IAccountDeletionPublisher interface {
	PublishEvent(ctx context.Context, event AccountDeletionEvent) error
}

// AccountDeletionPublisher publishes account deletion events to RabbitMQ
type AccountDeletionPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewAccountDeletionPublisher creates a new account deletion event publisher
func NewAccountDeletionPublisher(conn *RabbitMQConnection) *AccountDeletionPublisher {
	return &AccountDeletionPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishEvent publishes a deletion event to the account_deletion_events queue
func (p *AccountDeletionPublisher) PublishEvent(ctx context.Context, event AccountDeletionEvent) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		AccountDeletionQueue, // queue name
		true,                 // durable
		false,                // delete when unused
		false,                // exclusive
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal deletion event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",                   // exchange
		AccountDeletionQueue, // routing key (queue name)
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish deletion event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Account deletion event published",
		"queue", AccountDeletionQueue,
		"external_id", event.ExternalID,
	)

	return nil
}

// GetMetrics returns publisher metrics
func (p *AccountDeletionPublisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"last_publish_time":  p.lastPublishTime,
		"queue":              AccountDeletionQueue,
	}
}

// HealthCheck returns the health status of the publisher
func (p *AccountDeletionPublisher) HealthCheck() PublisherHealthStatus {
	isHealthy := p.conn != nil && p.conn.Connection != nil && !p.conn.Connection.IsClosed()

	return PublisherHealthStatus{
		IsHealthy:         isHealthy,
		MessagesPublished: p.messagesPublished,
		MessagesFailed:    p.messagesFailed,
		LastPublishTime:   p.lastPublishTime,
		Queue:             AccountDeletionQueue,
	}
}

// PublisherHealthStatus represents the health status of the publisher
type PublisherHealthStatus struct {
	IsHealthy         bool      `json:"is_healthy"`
	MessagesPublished int64     `json:"messages_published"`
	MessagesFailed    int64     `json:"messages_failed"`
	LastPublishTime   time.Time `json:"last_publish_time"`
	Queue             string    `json:"queue"`
}
