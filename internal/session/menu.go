package session

import (
	"errors"

	"rpg-server/internal/messaging"
	"rpg-server/internal/metrics"
	"rpg-server/internal/models"
	"rpg-server/internal/service"
	"rpg-server/internal/worker"

	"go.uber.org/zap"
)

// dispatch выполняет одну команду главного меню. done=true завершает сессию.
func (s *Session) dispatch(cmd string) (done bool, err error) {
	switch cmd {
	case "1", "explore":
		return s.explore()
	case "2", "rest":
		s.rest()
	case "3", "shop":
		return false, s.shop()
	case "4", "mine":
		s.mine()
	case "5", "inventory", "use item", "item", "use":
		return false, s.inventory()
	case "6", "stats":
		s.print(statsBlock(s.player, s.autoMining()))
	case "7", "automine", "auto-mine":
		s.toggleAutoMine()
	case "8", "save":
		s.save()
	case "9", "quit", "exit":
		s.println("\nThanks for playing!")
		return true, nil
	default:
		s.println("Invalid choice. Enter a number from 1 to 9.")
	}
	return false, nil
}

func (s *Session) rest() {
	healed, err := s.deps.Game.Rest(s.player)
	if errors.Is(err, service.ErrRestUnavailable) {
		s.println("Resting is disabled in hardcore mode.")
		return
	}
	s.printf("You rest and regain %d health. Your health is now %d/%d.\n", healed, s.player.Health, s.player.MaxHealth)
}

func (s *Session) mine() {
	result := s.deps.Game.Mine(s.player)
	s.deps.Metrics.Mined(result)
	if result == models.NothingMined {
		s.println("You dig for a while but find nothing.")
		return
	}
	s.printf("You mined: %s!\n", result)
}

// autoMining сообщает, работает ли автодобыча. Добытчик, исчерпавший MaxTicks,
// снимается с сессии, и следующее переключение снова его включает.
func (s *Session) autoMining() bool {
	if s.miner == nil {
		return false
	}
	select {
	case <-s.miner.Done():
		s.stopping = append(s.stopping, s.miner)
		s.miner = nil
		return false
	default:
		return true
	}
}

func (s *Session) toggleAutoMine() {
	if s.autoMining() {
		s.stopping = append(s.stopping, s.miner)
		s.miner = nil
		s.println("Auto-mining disabled.")
		return
	}

	var m *worker.AutoMiner
	m = worker.NewAutoMiner(s.deps.AutoMine, func(coins int) {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Отключенный добытчик может успеть тикнуть до Stop
		if s.miner != m || s.player == nil {
			return
		}
		s.player.Coins += coins
		s.deps.Metrics.CoinsEarned(metrics.SourceAutoMine, coins)
	}, s.logger)
	s.miner = m
	m.Start()

	cfg := s.deps.AutoMine
	if cfg.Interval <= 0 {
		cfg.Interval = worker.DefaultAutoMineInterval
	}
	if cfg.Reward <= 0 {
		cfg.Reward = worker.DefaultAutoMineReward
	}
	s.printf("Auto-mining enabled: +%d coins every %s.\n", cfg.Reward, cfg.Interval)
}

func (s *Session) save() {
	record := models.NewSaveRecord(s.player)
	if err := s.deps.Saves.Save(s.ctx, record); err != nil {
		s.logger.Error("Failed to save game", zap.String("player", s.player.Name), zap.Error(err))
		s.println("Save failed. Your progress was not stored.")
		return
	}
	s.deps.Metrics.GameSaved()
	s.publish(messaging.EventGameSaved, map[string]any{
		"level": s.player.Level,
		"coins": s.player.Coins,
	})
	s.println("Progress saved.")
}
