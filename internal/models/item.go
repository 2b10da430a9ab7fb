package models

import "fmt"

// ItemKind - тип эффекта предмета.
type ItemKind int

const (
	ItemKindHeal ItemKind = iota + 1
	ItemKindAttackBoost
	ItemKindDefenseBoost
)

func (k ItemKind) String() string {
	switch k {
	case ItemKindHeal:
		return "heal"
	case ItemKindAttackBoost:
		return "attack_boost"
	case ItemKindDefenseBoost:
		return "defense_boost"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// Item - запись статического каталога магазина.
type Item struct {
	Name  string
	Price int
	Kind  ItemKind
	Bonus int
}

// Describe возвращает короткое описание эффекта для меню магазина.
func (i Item) Describe() string {
	switch i.Kind {
	case ItemKindHeal:
		return fmt.Sprintf("+%d HP", i.Bonus)
	case ItemKindAttackBoost:
		return fmt.Sprintf("+%d ATK", i.Bonus)
	case ItemKindDefenseBoost:
		return fmt.Sprintf("+%d DEF", i.Bonus)
	default:
		return ""
	}
}

// Каталог загружается один раз при старте и не меняется во время работы.
var (
	itemCatalog = []Item{
		{Name: "Health Potion", Price: 20, Kind: ItemKindHeal, Bonus: 30},
		{Name: "Greater Health Potion", Price: 60, Kind: ItemKindHeal, Bonus: 80},
		{Name: "Strength Potion", Price: 100, Kind: ItemKindAttackBoost, Bonus: 5},
		{Name: "Wooden Axe", Price: 50, Kind: ItemKindAttackBoost, Bonus: 8},
		{Name: "Iron Sword", Price: 150, Kind: ItemKindAttackBoost, Bonus: 12},
		{Name: "Iron Axe", Price: 200, Kind: ItemKindAttackBoost, Bonus: 15},
		{Name: "Steel Sword", Price: 400, Kind: ItemKindAttackBoost, Bonus: 25},
		{Name: "Enchanted Bow", Price: 450, Kind: ItemKindAttackBoost, Bonus: 30},
		{Name: "Magic Staff", Price: 500, Kind: ItemKindAttackBoost, Bonus: 35},
		{Name: "Diamond Sword", Price: 1000, Kind: ItemKindAttackBoost, Bonus: 60},
		{Name: "Godly Sword", Price: 5000, Kind: ItemKindAttackBoost, Bonus: 150},
		{Name: "Shield", Price: 100, Kind: ItemKindDefenseBoost, Bonus: 5},
		{Name: "Leather Armor", Price: 150, Kind: ItemKindDefenseBoost, Bonus: 8},
		{Name: "Chainmail Armor", Price: 500, Kind: ItemKindDefenseBoost, Bonus: 20},
		{Name: "Steel Armor", Price: 1200, Kind: ItemKindDefenseBoost, Bonus: 45},
		{Name: "Diamond Armor", Price: 3000, Kind: ItemKindDefenseBoost, Bonus: 80},
		{Name: "Godly Armor", Price: 8000, Kind: ItemKindDefenseBoost, Bonus: 200},
	}
	itemsByName = indexItems(itemCatalog)
)

func indexItems(items []Item) map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.Name] = it
	}
	return m
}

// LookupItem ищет предмет в каталоге по имени.
func LookupItem(name string) (Item, bool) {
	it, ok := itemsByName[name]
	return it, ok
}

// ShopItems возвращает копию каталога в порядке отображения.
func ShopItems() []Item {
	out := make([]Item, len(itemCatalog))
	copy(out, itemCatalog)
	return out
}
