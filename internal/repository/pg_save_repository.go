package repository

import (
	"context"
	"errors"
	"fmt"

	"rpg-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	playerSaveFields = `name, mode, level, experience, coins, inventory, health, max_health, attack, defense, saved_at`

	upsertPlayerSaveQuery = `
        INSERT INTO player_saves (` + playerSaveFields + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (name) DO UPDATE SET
            mode = EXCLUDED.mode,
            level = EXCLUDED.level,
            experience = EXCLUDED.experience,
            coins = EXCLUDED.coins,
            inventory = EXCLUDED.inventory,
            health = EXCLUDED.health,
            max_health = EXCLUDED.max_health,
            attack = EXCLUDED.attack,
            defense = EXCLUDED.defense,
            saved_at = EXCLUDED.saved_at
    `
	getPlayerSaveByNameQuery = `
        SELECT ` + playerSaveFields + `
        FROM player_saves
        WHERE name = $1
    `
	listPlayerSaveNamesQuery = `SELECT name FROM player_saves ORDER BY name`
)

// Compile-time check to ensure pgSaveRepository implements the interface
var _ SaveRepository = (*pgSaveRepository)(nil)

// pgSaveRepository is the PostgreSQL implementation of SaveRepository
type pgSaveRepository struct {
	db     DBTX // *pgxpool.Pool или pgx.Tx
	logger *zap.Logger
}

// NewPgSaveRepository creates a new repository instance.
func NewPgSaveRepository(db DBTX, logger *zap.Logger) SaveRepository {
	return &pgSaveRepository{
		db:     db,
		logger: logger.Named("PgSaveRepo"),
	}
}

// Save создает или перезаписывает сохранение по имени.
func (r *pgSaveRepository) Save(ctx context.Context, record *models.SaveRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}
	stamp(record)
	log := r.logger.With(zap.String("name", record.Name))

	_, err := r.db.Exec(ctx, upsertPlayerSaveQuery,
		record.Name,
		string(record.Mode),
		record.Level,
		record.Experience,
		record.Coins,
		record.Inventory,
		record.Health,
		record.MaxHealth,
		record.Attack,
		record.Defense,
		record.SavedAt,
	)
	if err != nil {
		log.Error("Error upserting player save", zap.Error(err))
		return fmt.Errorf("failed to save %s: %w", record.Name, err)
	}
	log.Debug("Player save upserted")
	return nil
}

func (r *pgSaveRepository) Load(ctx context.Context, name string) (*models.SaveRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	log := r.logger.With(zap.String("name", name))

	var record models.SaveRecord
	err := pgxscan.Get(ctx, r.db, &record, getPlayerSaveByNameQuery, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}
		log.Error("Error getting player save", zap.Error(err))
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	record.SavedAt = record.SavedAt.UTC()
	if record.Inventory == nil {
		record.Inventory = []string{}
	}

	if err := ValidateRecord(&record); err != nil {
		log.Warn("Invalid player save in database", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSave, err)
	}
	return &record, nil
}

func (r *pgSaveRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := pgxscan.Select(ctx, r.db, &names, listPlayerSaveNamesQuery); err != nil {
		r.logger.Error("Error listing player saves", zap.Error(err))
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
