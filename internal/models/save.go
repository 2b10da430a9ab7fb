package models

import (
	"encoding/json"
	"time"
)

// Прирост характеристик за один уровень.
const (
	LevelUpAttack    = 5
	LevelUpDefense   = 3
	LevelUpMaxHealth = 20
)

// SaveRecord - сохраненное состояние персонажа. Ключ записи - имя персонажа.
type SaveRecord struct {
	Name       string    `json:"name" db:"name" validate:"required,max=64,excludesall=/\\"`
	Mode       GameMode  `json:"mode" db:"mode" validate:"oneof=normal easy hardcore"`
	Level      int       `json:"level" db:"level" validate:"gte=1"`
	Experience int       `json:"experience" db:"experience" validate:"gte=0"`
	Coins      int       `json:"coins" db:"coins" validate:"gte=0"`
	Inventory  []string  `json:"inventory" db:"inventory"`
	Health     int       `json:"health" db:"health" validate:"gt=0,ltefield=MaxHealth"` // 0 - побежденный персонаж, такое сохранение не загружается
	MaxHealth  int       `json:"max_health" db:"max_health" validate:"gte=1"`
	Attack     int       `json:"attack" db:"attack" validate:"gte=0"`
	Defense    int       `json:"defense" db:"defense" validate:"gte=0"`
	SavedAt    time.Time `json:"saved_at" db:"saved_at"`
}

// NewSaveRecord снимает состояние игрока в запись сохранения.
func NewSaveRecord(p *Player) *SaveRecord {
	inv := make([]string, len(p.Inventory))
	copy(inv, p.Inventory)
	return &SaveRecord{
		Name:       p.Name,
		Mode:       p.Mode,
		Level:      p.Level,
		Experience: p.Experience,
		Coins:      p.Coins,
		Inventory:  inv,
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Attack:     p.Attack,
		Defense:    p.Defense,
	}
}

// ToPlayer восстанавливает игрока из записи.
func (r *SaveRecord) ToPlayer() *Player {
	inv := make([]string, len(r.Inventory))
	copy(inv, r.Inventory)
	return &Player{
		Name:       r.Name,
		Mode:       r.Mode,
		Level:      r.Level,
		Experience: r.Experience,
		Coins:      r.Coins,
		Health:     r.Health,
		MaxHealth:  r.MaxHealth,
		Attack:     r.Attack,
		Defense:    r.Defense,
		Inventory:  inv,
	}
}

// saveRecordJSON принимает и текущий формат, и короткие ключи старых сохранений
// (lvl, exp, inv, hp, atk, def). Указатели позволяют отличить отсутствующее поле от нуля.
type saveRecordJSON struct {
	Name       *string    `json:"name"`
	Mode       *GameMode  `json:"mode"`
	Level      *int       `json:"level"`
	Experience *int       `json:"experience"`
	Coins      *int       `json:"coins"`
	Inventory  []string   `json:"inventory"`
	Health     *int       `json:"health"`
	MaxHealth  *int       `json:"max_health"`
	Attack     *int       `json:"attack"`
	Defense    *int       `json:"defense"`
	SavedAt    *time.Time `json:"saved_at"`

	LegacyLevel      *int     `json:"lvl"`
	LegacyExperience *int     `json:"exp"`
	LegacyInventory  []string `json:"inv"`
	LegacyHealth     *int     `json:"hp"`
	LegacyAttack     *int     `json:"atk"`
	LegacyDefense    *int     `json:"def"`
}

// UnmarshalJSON заполняет отсутствующие поля значениями по умолчанию:
// level=1, experience=0, coins=0, mode=normal, характеристики - по режиму и уровню,
// health=max_health. Здоровье всегда приводится к диапазону [0, max_health].
func (r *SaveRecord) UnmarshalJSON(data []byte) error {
	var aux saveRecordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = SaveRecord{}
	if aux.Name != nil {
		r.Name = *aux.Name
	}
	r.Mode = ModeNormal
	if aux.Mode != nil && *aux.Mode != "" {
		r.Mode = *aux.Mode
	}
	r.Level = firstInt(1, aux.Level, aux.LegacyLevel)
	r.Experience = firstInt(0, aux.Experience, aux.LegacyExperience)
	r.Coins = firstInt(0, aux.Coins)

	base := r.Mode.BaseStats()
	gained := max(0, r.Level-1)
	r.MaxHealth = firstInt(base.MaxHealth+gained*LevelUpMaxHealth, aux.MaxHealth)
	r.Attack = firstInt(base.Attack+gained*LevelUpAttack, aux.Attack, aux.LegacyAttack)
	r.Defense = firstInt(base.Defense+gained*LevelUpDefense, aux.Defense, aux.LegacyDefense)
	r.Health = firstInt(r.MaxHealth, aux.Health, aux.LegacyHealth)
	r.Health = max(0, min(r.Health, r.MaxHealth))

	switch {
	case aux.Inventory != nil:
		r.Inventory = aux.Inventory
	case aux.LegacyInventory != nil:
		r.Inventory = aux.LegacyInventory
	default:
		r.Inventory = []string{}
	}
	if aux.SavedAt != nil {
		r.SavedAt = *aux.SavedAt
	}
	return nil
}

func firstInt(def int, candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return def
}
