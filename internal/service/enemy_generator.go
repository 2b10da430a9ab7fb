package service

import (
	"rpg-server/internal/models"

	"go.uber.org/zap"
)

// CreateEnemy выбирает случайный архетип режима и масштабирует его по уровню игрока:
// здоровье +10, атака +3, защита +1 за каждый уровень выше первого.
func (s *GameService) CreateEnemy(mode models.GameMode, playerLevel int) *models.Enemy {
	level := max(1, playerLevel)
	table := models.Archetypes(mode)
	a := table[s.roller.IntN(len(table))]
	bonus := level - 1

	enemy := &models.Enemy{
		Name:    a.Name,
		Health:  a.BaseHealth + bonus*10,
		Attack:  a.BaseAttack + bonus*3,
		Defense: a.BaseDefense + bonus,
		Level:   level,
	}
	s.logger.Debug("Enemy created",
		zap.String("mode", string(mode)),
		zap.String("enemy", enemy.Name),
		zap.Int("level", enemy.Level),
		zap.Int("health", enemy.Health),
		zap.Int("attack", enemy.Attack),
		zap.Int("defense", enemy.Defense),
	)
	return enemy
}
