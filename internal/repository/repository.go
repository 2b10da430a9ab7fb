package repository

import (
	"context"
	"time"

	"rpg-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveRepository хранит сохранения персонажей по имени.
//
// Load возвращает models.ErrNotFound для отсутствующей записи и models.ErrInvalidSave
// для поврежденной или не прошедшей валидацию.
type SaveRepository interface {
	Save(ctx context.Context, record *models.SaveRecord) error
	Load(ctx context.Context, name string) (*models.SaveRecord, error)
	List(ctx context.Context) ([]string, error)
}

// DBTX - общий интерфейс для *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// stamp проставляет время сохранения. Точность - микросекунды, как у timestamptz.
func stamp(record *models.SaveRecord) {
	record.SavedAt = time.Now().UTC().Truncate(time.Microsecond)
	if record.Inventory == nil {
		record.Inventory = []string{}
	}
}
