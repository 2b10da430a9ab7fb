package service

import "rpg-server/internal/models"

// GainExperience начисляет опыт и повышает уровень, если достигнут порог Level*100.
// За один вызов возможно не более одного повышения уровня: остаток опыта сгорает.
// Возвращает true, если уровень был повышен.
func GainExperience(p *models.Player, amount int) bool {
	if amount <= 0 {
		return false
	}
	p.Experience += amount
	if p.Experience >= p.ExperienceToLevel() {
		LevelUp(p)
		return true
	}
	return false
}

// LevelUp повышает уровень на единицу, сбрасывает опыт, увеличивает характеристики
// на фиксированные приросты и полностью восстанавливает здоровье.
func LevelUp(p *models.Player) {
	p.Level++
	p.Experience = 0
	p.Attack += models.LevelUpAttack
	p.Defense += models.LevelUpDefense
	p.MaxHealth += models.LevelUpMaxHealth
	p.Health = p.MaxHealth
}
