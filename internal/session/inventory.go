package session

import (
	"rpg-server/internal/models"
	"rpg-server/internal/service"
)

// inventory показывает инвентарь и позволяет использовать предмет вне боя.
func (s *Session) inventory() error {
	s.println("\n=== INVENTORY ===")
	if len(s.player.Inventory) == 0 {
		s.println("Your inventory is empty!")
		return nil
	}

	if resources := service.OwnedResources(s.player); len(resources) > 0 {
		s.println("Resources:")
		for _, r := range resources {
			res, _ := models.LookupResource(r.Name)
			s.printf("  %s x%d (sells for %d)\n", r.Name, r.Count, res.SellPrice)
		}
	}

	name, ok, err := s.chooseUsableItem()
	if err != nil || !ok {
		return err
	}
	effect, err := s.deps.Game.UseItem(s.player, name)
	if err != nil {
		s.println(useItemError(name, err))
		return nil
	}
	s.println(describeEffect(effect))
	return nil
}
