// Package mq публикует доменные события в RabbitMQ.
// Нотификации fire-and-forget: ошибка публикации логируется и никогда
// не откатывает уже закоммиченную бронь.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coworking-lounge/zone-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher издатель событий в RabbitMQ
type Publisher struct {
	url string
	log Logger
}

// NewPublisher создает новый экземпляр издателя
func NewPublisher(url string, log Logger) *Publisher {
	return &Publisher{url: url, log: log}
}

// BookingConfirmed публикует событие о подтверждённой брони
func (p *Publisher) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, QueueBookingConfirmed, BookingConfirmedEvent{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		RoomID:    booking.RoomID,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Price:     booking.Price,
	})
}

// SubscriptionExpired публикует событие об истёкшей подписке
func (p *Publisher) SubscriptionExpired(ctx context.Context, entry *domain.UserSubscription) error {
	return p.publish(ctx, QueueSubscriptionExpired, SubscriptionExpiredEvent{
		SubscriptionID: entry.ID,
		UserID:         entry.UserID,
		PlanID:         entry.PlanID,
		EndDate:        entry.EndDate,
	})
}

// publish отправляет одно сообщение в указанную очередь.
// Соединение короткоживущее: издатель не держит состояния и не паникует
// при недоступности брокера.
func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("mq: dial failed for queue=%s: %v", queue, err)
		return fmt.Errorf("mq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("mq: channel open failed for queue=%s: %v", queue, err)
		return fmt.Errorf("mq: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Идемпотентное объявление очереди; durable, чтобы пережить рестарт брокера
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		p.log.Error("mq: queue declare failed for queue=%s: %v", queue, err)
		return fmt.Errorf("mq: queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("mq: marshal event failed for queue=%s: %v", queue, err)
		return fmt.Errorf("mq: marshal: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		p.log.Error("mq: publish failed for queue=%s: %v", queue, err)
		return fmt.Errorf("mq: publish: %w", err)
	}

	return nil
}
