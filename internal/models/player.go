package models

// ExperiencePerLevel - порог опыта для следующего уровня равен Level * ExperiencePerLevel.
const ExperiencePerLevel = 100

// Player - персонаж игрока. Живет в рамках одной игровой сессии.
// Поля меняются только через сервисы (бой, экономика, прогрессия),
// которые следят за инвариантами 0 <= Health <= MaxHealth.
type Player struct {
	Name       string
	Mode       GameMode
	Level      int
	Experience int
	Coins      int
	Health     int
	MaxHealth  int
	Attack     int
	Defense    int
	Inventory  []string // Мультимножество имен предметов и ресурсов, порядок важен только для отображения
}

// NewPlayer создает персонажа первого уровня с характеристиками режима.
func NewPlayer(name string, mode GameMode) *Player {
	base := mode.BaseStats()
	if !mode.Valid() {
		mode = ModeNormal
	}
	return &Player{
		Name:      name,
		Mode:      mode,
		Level:     1,
		MaxHealth: base.MaxHealth,
		Health:    base.MaxHealth,
		Attack:    base.Attack,
		Defense:   base.Defense,
		Inventory: []string{},
	}
}

// ExperienceToLevel возвращает порог опыта для текущего уровня.
func (p *Player) ExperienceToLevel() int {
	return p.Level * ExperiencePerLevel
}

// IsDefeated - здоровье опустилось до нуля.
func (p *Player) IsDefeated() bool {
	return p.Health <= 0
}

// Heal восстанавливает здоровье не выше MaxHealth и возвращает фактически восстановленное значение.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.Health
	p.Health = max(before, min(p.MaxHealth, p.Health+amount))
	return p.Health - before
}

// TakeDamage уменьшает здоровье, не опуская его ниже нуля.
func (p *Player) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	p.Health = max(0, p.Health-amount)
}

// AddItems добавляет quantity копий предмета в конец инвентаря.
func (p *Player) AddItems(name string, quantity int) {
	for i := 0; i < quantity; i++ {
		p.Inventory = append(p.Inventory, name)
	}
}

// CountItem возвращает количество копий предмета в инвентаре.
func (p *Player) CountItem(name string) int {
	n := 0
	for _, it := range p.Inventory {
		if it == name {
			n++
		}
	}
	return n
}

// RemoveItems удаляет до quantity копий предмета, начиная с первой.
// Возвращает количество реально удаленных копий.
func (p *Player) RemoveItems(name string, quantity int) int {
	if quantity <= 0 {
		return 0
	}
	removed := 0
	kept := p.Inventory[:0]
	for _, it := range p.Inventory {
		if it == name && removed < quantity {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	p.Inventory = kept
	return removed
}

// ItemCount - строка инвентаря для отображения: имя и количество.
type ItemCount struct {
	Name  string
	Count int
}

// GroupInventory группирует инвентарь по имени, сохраняя порядок первого появления.
// filter может быть nil.
func (p *Player) GroupInventory(filter func(name string) bool) []ItemCount {
	index := make(map[string]int)
	var out []ItemCount
	for _, it := range p.Inventory {
		if filter != nil && !filter(it) {
			continue
		}
		if i, ok := index[it]; ok {
			out[i].Count++
			continue
		}
		index[it] = len(out)
		out = append(out, ItemCount{Name: it, Count: 1})
	}
	return out
}
