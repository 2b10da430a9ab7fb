package service

import (
	"fmt"

	"rpg-server/internal/models"

	"go.uber.org/zap"
)

// MaxPurchaseQuantity ограничивает количество за одну покупку.
const MaxPurchaseQuantity = 999

// ItemEffect - результат использования предмета.
type ItemEffect struct {
	Item   models.Item
	Amount int // Фактический эффект: восстановленное здоровье или прирост характеристики
}

// Sale - результат продажи ресурсов.
type Sale struct {
	Sold   int // Количество проданных единиц
	Earned int // Полученные монеты
}

// Buy покупает quantity копий предмета из каталога за монеты.
// При любой ошибке состояние игрока не меняется.
func (s *GameService) Buy(p *models.Player, itemName string, quantity int) (int, error) {
	if quantity <= 0 || quantity > MaxPurchaseQuantity {
		return 0, models.ErrInvalidQuantity
	}
	item, ok := models.LookupItem(itemName)
	if !ok {
		return 0, fmt.Errorf("%w: %s", models.ErrUnknownItem, itemName)
	}
	cost := item.Price * quantity
	if p.Coins < cost {
		return 0, fmt.Errorf("%w: need %d, have %d", models.ErrInsufficientCoins, cost, p.Coins)
	}
	p.Coins -= cost
	p.AddItems(item.Name, quantity)
	s.logger.Debug("Item purchased",
		zap.String("player", p.Name),
		zap.String("item", item.Name),
		zap.Int("quantity", quantity),
		zap.Int("cost", cost),
	)
	return cost, nil
}

// SellResource продает до quantity единиц ресурса (не больше, чем есть в инвентаре).
func (s *GameService) SellResource(p *models.Player, name string, quantity int) (*Sale, error) {
	res, ok := models.LookupResource(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotSellable, name)
	}
	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}
	if p.CountItem(name) == 0 {
		return nil, models.ErrNoResources
	}
	sold := p.RemoveItems(name, quantity)
	sale := &Sale{Sold: sold, Earned: sold * res.SellPrice}
	p.Coins += sale.Earned
	s.logger.Debug("Resource sold",
		zap.String("player", p.Name),
		zap.String("resource", name),
		zap.Int("sold", sale.Sold),
		zap.Int("earned", sale.Earned),
	)
	return sale, nil
}

// SellAllResources продает все ресурсы инвентаря за один проход.
func (s *GameService) SellAllResources(p *models.Player) (*Sale, error) {
	sale := &Sale{}
	kept := make([]string, 0, len(p.Inventory))
	for _, name := range p.Inventory {
		res, ok := models.LookupResource(name)
		if !ok {
			kept = append(kept, name)
			continue
		}
		sale.Sold++
		sale.Earned += res.SellPrice
	}
	if sale.Sold == 0 {
		return nil, models.ErrNoResources
	}
	p.Inventory = kept
	p.Coins += sale.Earned
	s.logger.Debug("All resources sold",
		zap.String("player", p.Name),
		zap.Int("sold", sale.Sold),
		zap.Int("earned", sale.Earned),
	)
	return sale, nil
}

// Mine делает одну взвешенную попытку добычи. Найденный ресурс добавляется в инвентарь.
// Возвращает имя ресурса или models.NothingMined.
func (s *GameService) Mine(p *models.Player) string {
	result := s.drawMining()
	if result != models.NothingMined {
		p.AddItems(result, 1)
	}
	s.logger.Debug("Mined", zap.String("player", p.Name), zap.String("result", result))
	return result
}

func (s *GameService) drawMining() string {
	table := models.MiningTable()
	total := 0
	for _, o := range table {
		total += o.Weight
	}
	n := s.roller.IntN(total)
	for _, o := range table {
		if n < o.Weight {
			return o.Name
		}
		n -= o.Weight
	}
	return models.NothingMined
}

// UseItem расходует одну копию предмета и применяет его эффект.
// Лечение ограничено максимумом здоровья, усиления постоянные.
// Если предмета нет в инвентаре или он не используется, состояние не меняется.
func (s *GameService) UseItem(p *models.Player, name string) (*ItemEffect, error) {
	if p.CountItem(name) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrItemNotOwned, name)
	}
	item, ok := models.LookupItem(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotUsable, name)
	}
	p.RemoveItems(name, 1)

	effect := &ItemEffect{Item: item}
	switch item.Kind {
	case models.ItemKindHeal:
		effect.Amount = p.Heal(item.Bonus)
	case models.ItemKindAttackBoost:
		p.Attack += item.Bonus
		effect.Amount = item.Bonus
	case models.ItemKindDefenseBoost:
		p.Defense += item.Bonus
		effect.Amount = item.Bonus
	}
	s.logger.Debug("Item used",
		zap.String("player", p.Name),
		zap.String("item", item.Name),
		zap.String("kind", item.Kind.String()),
		zap.Int("amount", effect.Amount),
	)
	return effect, nil
}

// UsableItems группирует предметы инвентаря, которые можно использовать.
func UsableItems(p *models.Player) []models.ItemCount {
	return p.GroupInventory(func(name string) bool {
		_, ok := models.LookupItem(name)
		return ok
	})
}

// OwnedResources группирует ресурсы инвентаря.
func OwnedResources(p *models.Player) []models.ItemCount {
	return p.GroupInventory(models.IsResource)
}
