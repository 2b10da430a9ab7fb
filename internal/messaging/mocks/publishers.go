package mocks

import (
	"context"

	"rpg-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// Mock EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishGameEvent(ctx context.Context, event messaging.GameEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *EventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
