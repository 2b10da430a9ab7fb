package mocks

import (
	"context"

	"rpg-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock SaveRepository
type SaveRepository struct {
	mock.Mock
}

func (m *SaveRepository) Save(ctx context.Context, record *models.SaveRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
func (m *SaveRepository) Load(ctx context.Context, name string) (*models.SaveRecord, error) {
	args := m.Called(ctx, name)
	rec, _ := args.Get(0).(*models.SaveRecord)
	return rec, args.Error(1)
}
func (m *SaveRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}
