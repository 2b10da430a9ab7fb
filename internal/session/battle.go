package session

import (
	"errors"
	"fmt"
	"strings"

	"rpg-server/internal/messaging"
	"rpg-server/internal/metrics"
	"rpg-server/internal/models"
	"rpg-server/internal/service"
)

// explore проводит один бой. done=true, если игрок погиб.
func (s *Session) explore() (bool, error) {
	battle := s.deps.Game.StartBattle(s.player)
	enemy := battle.Enemy
	s.printf("\n=== ENCOUNTER: %s (Lv %d) ===\n", enemy.Name, enemy.Level)
	s.printf("A wild %s appears! HP %d | ATK %d | DEF %d\n", enemy.Name, enemy.Health, enemy.Attack, enemy.Defense)

	for !battle.IsOver() {
		s.printf("\n%s HP: %d | %s HP: %d/%d\n", enemy.Name, max(0, enemy.Health), s.player.Name, s.player.Health, s.player.MaxHealth)
		s.println("Actions: [1] Attack  [2] Run  [3] Use item")
		action, err := s.readLine("Action (attack/run/item): ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(action) {
		case "1", "a", "attack":
			s.attack(battle)
		case "2", "r", "run":
			fled, err := battle.Run()
			if err != nil {
				return false, err
			}
			if fled {
				s.println("You managed to escape!")
			} else {
				s.println("Escape failed!")
			}
		case "3", "i", "item", "use item":
			if err := s.battleItem(battle); err != nil {
				return false, err
			}
		default:
			s.println("Invalid action. Choose attack, run or item.")
		}
	}

	switch battle.State() {
	case service.BattleDefeat:
		s.deps.Metrics.BattleFinished(metrics.OutcomeDefeat)
		s.println("YOU HAVE BEEN DEFEATED!")
		s.println("Game Over!")
		s.publish(messaging.EventPlayerDefeated, map[string]any{
			"enemy":  enemy.Name,
			"level":  s.player.Level,
			"rounds": battle.Rounds(),
		})
		return true, nil
	case service.BattleFled:
		s.deps.Metrics.BattleFinished(metrics.OutcomeFled)
		s.publish(messaging.EventBattleFled, map[string]any{"enemy": enemy.Name})
	}
	return false, nil
}

func (s *Session) attack(battle *service.Battle) {
	res, err := battle.Attack()
	if err != nil {
		return
	}
	if res.Critical {
		s.println("CRITICAL HIT!")
	}
	s.printf("You dealt %d damage!\n", res.Damage)
	if res.EnemyReplied {
		s.printf("%s strikes back for %d!\n", battle.Enemy.Name, res.EnemyDamage)
	}
	if res.Rewards == nil {
		return
	}

	r := res.Rewards
	s.deps.Metrics.BattleFinished(metrics.OutcomeVictory)
	s.deps.Metrics.CoinsEarned(metrics.SourceBattle, r.Coins)
	s.printf("Victory! Gained %d EXP and %d coins.\n", r.Experience, r.Coins)
	s.publish(messaging.EventBattleWon, map[string]any{
		"enemy":      battle.Enemy.Name,
		"enemyLevel": battle.Enemy.Level,
		"experience": r.Experience,
		"coins":      r.Coins,
		"rounds":     battle.Rounds(),
	})
	if r.LeveledUp {
		s.deps.Metrics.LevelUp()
		s.printf("LEVEL UP! You are now level %d. You feel stronger.\n", r.NewLevel)
		s.publish(messaging.EventLevelUp, map[string]any{"level": r.NewLevel})
	}
}

// battleItem - свободное действие: противник не отвечает.
func (s *Session) battleItem(battle *service.Battle) error {
	name, ok, err := s.chooseUsableItem()
	if err != nil || !ok {
		return err
	}
	effect, err := battle.UseItem(name)
	if err != nil {
		s.println(useItemError(name, err))
		return nil
	}
	s.println(describeEffect(effect))
	return nil
}

// chooseUsableItem показывает используемые предметы и читает выбор.
// ok=false - выбор отменен или предметов нет.
func (s *Session) chooseUsableItem() (string, bool, error) {
	items := service.UsableItems(s.player)
	if len(items) == 0 {
		s.println("You have no usable items!")
		return "", false, nil
	}
	for i, it := range items {
		item, _ := models.LookupItem(it.Name)
		s.printf("%d. %s x%d (%s)\n", i+1, it.Name, it.Count, item.Describe())
	}

	for {
		choice, err := s.readLine(fmt.Sprintf("Select item # (1-%d, 0 to cancel): ", len(items)))
		if err != nil {
			return "", false, err
		}
		idx, ok := parseIndex(choice, len(items))
		if !ok {
			s.println("Invalid selection.")
			continue
		}
		if idx < 0 {
			return "", false, nil
		}
		return items[idx].Name, true, nil
	}
}

func describeEffect(e *service.ItemEffect) string {
	switch e.Item.Kind {
	case models.ItemKindHeal:
		return fmt.Sprintf("Used %s! Recovered %d HP.", e.Item.Name, e.Amount)
	case models.ItemKindAttackBoost:
		return fmt.Sprintf("Used %s! Attack permanently increased by %d.", e.Item.Name, e.Amount)
	case models.ItemKindDefenseBoost:
		return fmt.Sprintf("Used %s! Defense permanently increased by %d.", e.Item.Name, e.Amount)
	}
	return fmt.Sprintf("Used %s!", e.Item.Name)
}

func useItemError(name string, err error) string {
	switch {
	case errors.Is(err, models.ErrItemNotOwned):
		return fmt.Sprintf("You don't have %s.", name)
	case errors.Is(err, models.ErrNotUsable):
		return fmt.Sprintf("%s cannot be used.", name)
	case errors.Is(err, service.ErrBattleOver):
		return "The battle is already over."
	}
	return "Could not use the item."
}
