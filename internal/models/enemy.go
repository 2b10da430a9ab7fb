package models

// Enemy - противник одного боя. Создается генератором при начале столкновения
// и отбрасывается после его завершения.
type Enemy struct {
	Name    string
	Health  int
	Attack  int
	Defense int
	Level   int
}

// IsDefeated - здоровье противника опустилось до нуля или ниже.
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}

// Archetype - шаблон противника с базовыми характеристиками.
type Archetype struct {
	Name        string
	BaseHealth  int
	BaseAttack  int
	BaseDefense int
}

var archetypes = map[GameMode][]Archetype{
	ModeEasy: {
		{Name: "Slime", BaseHealth: 20, BaseAttack: 5, BaseDefense: 1},
		{Name: "Bat", BaseHealth: 15, BaseAttack: 6, BaseDefense: 0},
		{Name: "Giant Rat", BaseHealth: 25, BaseAttack: 4, BaseDefense: 2},
	},
	ModeNormal: {
		{Name: "Goblin", BaseHealth: 40, BaseAttack: 12, BaseDefense: 5},
		{Name: "Orc", BaseHealth: 60, BaseAttack: 18, BaseDefense: 8},
		{Name: "Skeleton", BaseHealth: 50, BaseAttack: 15, BaseDefense: 6},
	},
	ModeHardcore: {
		{Name: "Demon Lord", BaseHealth: 200, BaseAttack: 40, BaseDefense: 20},
		{Name: "Death Knight", BaseHealth: 150, BaseAttack: 35, BaseDefense: 15},
		{Name: "Lich", BaseHealth: 170, BaseAttack: 38, BaseDefense: 12},
	},
}

// Archetypes возвращает копию таблицы противников для режима.
// Неизвестный режим получает таблицу normal.
func Archetypes(mode GameMode) []Archetype {
	table, ok := archetypes[mode]
	if !ok {
		table = archetypes[ModeNormal]
	}
	out := make([]Archetype, len(table))
	copy(out, table)
	return out
}
