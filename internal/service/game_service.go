package service

import (
	"rpg-server/internal/models"

	"go.uber.org/zap"
)

// Rules - переключаемые правила боя.
type Rules struct {
	// CriticalHits включает критические удары игрока (x2 урона с вероятностью 15%).
	CriticalHits bool
}

// GameService объединяет генерацию противников, бой и экономику.
// Не потокобезопасен: вызывающий (сессия) сериализует доступ к игроку.
type GameService struct {
	roller Roller
	rules  Rules
	logger *zap.Logger
}

// NewGameService создает сервис игровой логики.
func NewGameService(roller Roller, rules Rules, logger *zap.Logger) *GameService {
	return &GameService{
		roller: roller,
		rules:  rules,
		logger: logger.Named("GameService"),
	}
}

// Rules возвращает активные правила боя.
func (s *GameService) Rules() Rules {
	return s.rules
}

// Rest восстанавливает от 10 до 25 здоровья (не выше максимума).
// Возвращает фактически восстановленное здоровье.
func (s *GameService) Rest(p *models.Player) (int, error) {
	if !p.Mode.CanRest() {
		return 0, ErrRestUnavailable
	}
	healed := p.Heal(rollRange(s.roller, 10, 25))
	s.logger.Debug("Player rested", zap.String("player", p.Name), zap.Int("healed", healed))
	return healed, nil
}
