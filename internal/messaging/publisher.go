package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	publishAttempts = 3
	publishTimeout  = 10 * time.Second
	appID           = "rpg-server"
)

// Compile-time check to ensure rabbitMQPublisher implements EventPublisher
var _ EventPublisher = (*rabbitMQPublisher)(nil)

// rabbitMQPublisher публикует события в очередь через default exchange.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQEventPublisher открывает канал и объявляет durable-очередь, если её еще нет.
func NewRabbitMQEventPublisher(conn *amqp.Connection, queueName string, logger *zap.Logger) (EventPublisher, error) {
	log := logger.Named("EventPublisher")

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: не удалось открыть канал: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: не удалось объявить очередь '%s': %w", queueName, err)
	}
	log.Info("Очередь событий объявлена", zap.String("queue", queueName))
	return &rabbitMQPublisher{channel: ch, queueName: queueName, logger: log}, nil
}

// PublishGameEvent публикует игровое событие в JSON.
func (p *rabbitMQPublisher) PublishGameEvent(ctx context.Context, event GameEvent) error {
	log := p.logger.With(
		zap.String("eventID", event.EventID),
		zap.String("sessionID", event.SessionID),
		zap.String("type", string(event.Type)),
	)

	body, err := json.Marshal(event)
	if err != nil {
		log.Error("Ошибка сериализации GameEvent", zap.Error(err))
		return fmt.Errorf("ошибка подготовки события %s: %w", event.EventID, err)
	}

	if err := p.publishMessage(ctx, body); err != nil {
		log.Error("Ошибка публикации GameEvent", zap.Error(err))
		return fmt.Errorf("ошибка публикации события %s: %w", event.EventID, err)
	}
	log.Debug("Событие опубликовано")
	return nil
}

// publishMessage is a helper method for publishing a message.
func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return errors.New("канал RabbitMQ не инициализирован")
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange (используем default)
			p.queueName, // routing key (имя очереди)
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        appID,
			},
		)
		if err == nil {
			return nil
		}
		p.logger.Warn("Ошибка публикации, повтор",
			zap.Int("attempt", attempt),
			zap.String("queue", p.queueName),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("публикация в очередь %s прервана: %w", p.queueName, ctx.Err())
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return fmt.Errorf("ошибка публикации в очередь %s после retries: %w", p.queueName, err)
}

// Close закрывает канал публикатора. Соединение закрывает владелец.
func (p *rabbitMQPublisher) Close() error {
	if p.channel == nil || p.channel.IsClosed() {
		return nil
	}
	return p.channel.Close()
}
