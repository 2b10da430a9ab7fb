package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType - тип игрового события.
type EventType string

const (
	EventBattleWon      EventType = "battle_won"
	EventBattleFled     EventType = "battle_fled"
	EventPlayerDefeated EventType = "player_defeated"
	EventLevelUp        EventType = "level_up"
	EventGameSaved      EventType = "game_saved"
)

// GameEvent - сообщение, публикуемое после значимого исхода в сессии.
type GameEvent struct {
	EventID    string         `json:"event_id"`
	SessionID  string         `json:"session_id"`
	Player     string         `json:"player"`
	Type       EventType      `json:"type"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewGameEvent создает событие с новым идентификатором и текущим временем.
func NewGameEvent(sessionID, player string, eventType EventType, payload map[string]any) GameEvent {
	return GameEvent{
		EventID:    uuid.NewString(),
		SessionID:  sessionID,
		Player:     player,
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher defines the interface for publishing game events.
type EventPublisher interface {
	PublishGameEvent(ctx context.Context, event GameEvent) error
	Close() error
}

// nopPublisher используется, когда брокер не настроен.
type nopPublisher struct{}

// NewNopPublisher возвращает публикатор, который ничего не отправляет.
func NewNopPublisher() EventPublisher {
	return nopPublisher{}
}

func (nopPublisher) PublishGameEvent(context.Context, GameEvent) error { return nil }
func (nopPublisher) Close() error                                      { return nil }
