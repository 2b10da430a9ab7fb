package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"rpg-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisSaveRepository implements the interface
var _ SaveRepository = (*redisSaveRepository)(nil)

// redisSaveRepository хранит сохранение как JSON-строку <prefix>:save:<name>
// и ведет множество имен <prefix>:saves.
type redisSaveRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisSaveRepository creates a new Redis-backed SaveRepository.
func NewRedisSaveRepository(client *redis.Client, prefix string, logger *zap.Logger) SaveRepository {
	if prefix == "" {
		prefix = "rpg"
	}
	return &redisSaveRepository{
		client: client,
		prefix: prefix,
		logger: logger.Named("RedisSaveRepo"),
	}
}

func (r *redisSaveRepository) key(name string) string {
	return fmt.Sprintf("%s:save:%s", r.prefix, name)
}

func (r *redisSaveRepository) namesKey() string {
	return r.prefix + ":saves"
}

func (r *redisSaveRepository) Save(ctx context.Context, record *models.SaveRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}
	stamp(record)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal save %s: %w", record.Name, err)
	}

	// Запись и индекс имен меняются вместе
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(record.Name), data, 0)
	pipe.SAdd(ctx, r.namesKey(), record.Name)

	r.logger.Debug("Writing save to Redis", zap.String("name", record.Name), zap.String("key", r.key(record.Name)))
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to write save to redis", zap.String("name", record.Name), zap.Error(err))
		return fmt.Errorf("failed to write save %s to redis: %w", record.Name, err)
	}
	return nil
}

func (r *redisSaveRepository) Load(ctx context.Context, name string) (*models.SaveRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}
		r.logger.Error("Failed to read save from redis", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to read save %s from redis: %w", name, err)
	}

	record, err := decodeRecord(name, data)
	if err != nil {
		r.logger.Warn("Corrupted save in redis", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (r *redisSaveRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.namesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list saves in redis: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
