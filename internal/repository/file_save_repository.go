package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rpg-server/internal/models"

	"go.uber.org/zap"
)

const saveFileSuffix = "_save.json"

// Compile-time check to ensure fileSaveRepository implements the interface
var _ SaveRepository = (*fileSaveRepository)(nil)

// fileSaveRepository хранит каждое сохранение в отдельном JSON-файле <dir>/<name>_save.json.
type fileSaveRepository struct {
	dir    string
	logger *zap.Logger
}

// NewFileSaveRepository creates a new repository instance.
func NewFileSaveRepository(dir string, logger *zap.Logger) SaveRepository {
	if dir == "" {
		dir = "."
	}
	return &fileSaveRepository{
		dir:    dir,
		logger: logger.Named("FileSaveRepo"),
	}
}

func (r *fileSaveRepository) path(name string) string {
	return filepath.Join(r.dir, name+saveFileSuffix)
}

// Save атомарно перезаписывает файл: запись во временный файл и rename.
func (r *fileSaveRepository) Save(ctx context.Context, record *models.SaveRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}
	stamp(record)
	log := r.logger.With(zap.String("name", record.Name))

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal save %s: %w", record.Name, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save dir %s: %w", r.dir, err)
	}

	tmp, err := os.CreateTemp(r.dir, record.Name+"_save-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // после успешного rename файла уже нет

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save %s: %w", record.Name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync save %s: %w", record.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save %s: %w", record.Name, err)
	}
	if err := os.Rename(tmpName, r.path(record.Name)); err != nil {
		log.Error("Failed to replace save file", zap.Error(err))
		return fmt.Errorf("failed to replace save %s: %w", record.Name, err)
	}

	log.Debug("Save written", zap.String("path", r.path(record.Name)))
	return nil
}

func (r *fileSaveRepository) Load(ctx context.Context, name string) (*models.SaveRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	log := r.logger.With(zap.String("name", name))

	data, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
		}
		log.Error("Failed to read save file", zap.Error(err))
		return nil, fmt.Errorf("failed to read save %s: %w", name, err)
	}

	record, err := decodeRecord(name, data)
	if err != nil {
		log.Warn("Corrupted save file", zap.Error(err))
		return nil, err
	}
	return record, nil
}

// List возвращает имена сохранений в алфавитном порядке.
func (r *fileSaveRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list saves in %s: %w", r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), saveFileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), saveFileSuffix))
	}
	sort.Strings(names)
	return names, nil
}

// decodeRecord разбирает JSON сохранения. Старые файлы могут не содержать имени,
// тогда оно берется из ключа.
func decodeRecord(name string, data []byte) (*models.SaveRecord, error) {
	var record models.SaveRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSave, err)
	}
	if record.Name == "" {
		record.Name = name
	}
	if err := ValidateRecord(&record); err != nil {
		if errors.Is(err, models.ErrInvalidName) {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidSave, err)
		}
		return nil, err
	}
	return &record, nil
}
