package models

import (
	"fmt"
	"strings"
)

// GameMode определяет режим сложности персонажа.
// Фиксируется при создании и больше не меняется.
type GameMode string

const (
	ModeNormal   GameMode = "normal"
	ModeEasy     GameMode = "easy"
	ModeHardcore GameMode = "hardcore"
)

// BaseStats - стартовые характеристики персонажа для режима.
type BaseStats struct {
	MaxHealth int
	Attack    int
	Defense   int
}

var modeBaseStats = map[GameMode]BaseStats{
	ModeEasy:     {MaxHealth: 150, Attack: 15, Defense: 8},
	ModeNormal:   {MaxHealth: 100, Attack: 10, Defense: 5},
	ModeHardcore: {MaxHealth: 75, Attack: 8, Defense: 3},
}

// AllModes возвращает режимы в порядке отображения в меню.
func AllModes() []GameMode {
	return []GameMode{ModeNormal, ModeEasy, ModeHardcore}
}

// ParseGameMode разбирает режим из пользовательского ввода (без учета регистра).
func ParseGameMode(s string) (GameMode, error) {
	mode := GameMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unknown game mode %q", ErrInvalidInput, s)
	}
	return mode, nil
}

// Valid сообщает, является ли режим одним из известных.
func (m GameMode) Valid() bool {
	_, ok := modeBaseStats[m]
	return ok
}

// BaseStats возвращает стартовые характеристики режима.
// Для неизвестного режима используются значения normal.
func (m GameMode) BaseStats() BaseStats {
	if stats, ok := modeBaseStats[m]; ok {
		return stats
	}
	return modeBaseStats[ModeNormal]
}

// CanRest - в hardcore отдых отключен.
func (m GameMode) CanRest() bool {
	return m != ModeHardcore
}

func (m GameMode) String() string {
	return string(m)
}
