package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rpg-server/internal/metrics"
	"rpg-server/internal/models"
	"rpg-server/internal/service"
)

// parseIndex разбирает номер пункта 1..n. "0" означает отмену (idx=-1).
func parseIndex(choice string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || v < 0 || v > n {
		return 0, false
	}
	return v - 1, true
}

// readQuantity читает количество; пустая строка означает 1.
func (s *Session) readQuantity(limit int) (int, error) {
	for {
		answer, err := s.readLine(fmt.Sprintf("Quantity (1-%d): ", limit))
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 1, nil
		}
		qty, err := strconv.Atoi(answer)
		if err != nil || qty <= 0 || qty > limit {
			s.printf("Enter a whole number from 1 to %d.\n", limit)
			continue
		}
		return qty, nil
	}
}

func (s *Session) shop() error {
	items := models.ShopItems()
	s.printf("\n=== VILLAGE SHOP === (Coins: %d)\n", s.player.Coins)
	for i, it := range items {
		s.printf("%2d. %-22s | %5d coins | %s\n", i+1, it.Name, it.Price, it.Describe())
	}
	s.println(" S. Sell resources")
	s.println(" A. Sell all resources")

	for {
		choice, err := s.readLine("Choice (0 to exit): ")
		if err != nil {
			return err
		}
		switch strings.ToLower(choice) {
		case "0", "exit", "":
			return nil
		case "s", "sell":
			return s.sellResource()
		case "a", "sell all":
			s.sellAll()
			return nil
		}

		idx, ok := parseIndex(choice, len(items))
		if !ok || idx < 0 {
			s.println("Invalid input.")
			continue
		}
		return s.buy(items[idx])
	}
}

func (s *Session) buy(item models.Item) error {
	qty, err := s.readQuantity(service.MaxPurchaseQuantity)
	if err != nil {
		return err
	}

	cost, err := s.deps.Game.Buy(s.player, item.Name, qty)
	switch {
	case err == nil:
		s.deps.Metrics.ItemsPurchased(qty)
		s.printf("Purchased %d x %s for %d coins. Coins left: %d.\n", qty, item.Name, cost, s.player.Coins)
	case errors.Is(err, models.ErrInsufficientCoins):
		s.printf("Insufficient coins! %d x %s costs %d, you have %d.\n", qty, item.Name, item.Price*qty, s.player.Coins)
	case errors.Is(err, models.ErrInvalidQuantity):
		s.println("Invalid quantity.")
	default:
		s.println("That item is not for sale.")
	}
	return nil
}

func (s *Session) sellResource() error {
	owned := service.OwnedResources(s.player)
	if len(owned) == 0 {
		s.println("No resources to sell!")
		return nil
	}
	for i, r := range owned {
		res, _ := models.LookupResource(r.Name)
		s.printf("%d. %-10s x%d | %4d coins each\n", i+1, r.Name, r.Count, res.SellPrice)
	}

	var picked models.ItemCount
	for {
		choice, err := s.readLine(fmt.Sprintf("Select resource # (1-%d, 0 to cancel): ", len(owned)))
		if err != nil {
			return err
		}
		idx, ok := parseIndex(choice, len(owned))
		if !ok {
			s.println("Invalid input.")
			continue
		}
		if idx < 0 {
			return nil
		}
		picked = owned[idx]
		break
	}

	qty, err := s.readQuantity(picked.Count)
	if err != nil {
		return err
	}
	sale, err := s.deps.Game.SellResource(s.player, picked.Name, qty)
	if err != nil {
		s.println("Nothing was sold.")
		return nil
	}
	s.deps.Metrics.CoinsEarned(metrics.SourceSale, sale.Earned)
	s.printf("Sold %d x %s for %d coins.\n", sale.Sold, picked.Name, sale.Earned)
	return nil
}

func (s *Session) sellAll() {
	sale, err := s.deps.Game.SellAllResources(s.player)
	if err != nil {
		s.println("No resources to sell!")
		return
	}
	s.deps.Metrics.CoinsEarned(metrics.SourceSale, sale.Earned)
	s.printf("Sold %d resources for %d coins.\n", sale.Sold, sale.Earned)
}
