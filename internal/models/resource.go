package models

// Resource - добываемый ресурс. Только продается, использовать нельзя.
type Resource struct {
	Name      string
	SellPrice int
}

// NothingMined - исход добычи без результата.
const NothingMined = "Nothing"

// MiningOutcome - вариант исхода добычи и его вес.
type MiningOutcome struct {
	Name   string
	Weight int
}

var (
	resourceCatalog = []Resource{
		{Name: "Stone", SellPrice: 2},
		{Name: "Coal", SellPrice: 5},
		{Name: "Iron Ore", SellPrice: 12},
		{Name: "Gold Ore", SellPrice: 30},
		{Name: "Emerald", SellPrice: 75},
		{Name: "Diamond", SellPrice: 150},
		{Name: "Obsidian", SellPrice: 300},
		{Name: "Mithril", SellPrice: 750},
	}
	resourcesByName = indexResources(resourceCatalog)

	// Веса 40/25/20/10/5: добыча смещена к дешевым ресурсам.
	miningTable = []MiningOutcome{
		{Name: "Stone", Weight: 40},
		{Name: "Iron Ore", Weight: 25},
		{Name: "Gold Ore", Weight: 20},
		{Name: "Diamond", Weight: 10},
		{Name: NothingMined, Weight: 5},
	}
)

func indexResources(resources []Resource) map[string]Resource {
	m := make(map[string]Resource, len(resources))
	for _, r := range resources {
		m[r.Name] = r
	}
	return m
}

// LookupResource ищет ресурс в каталоге по имени.
func LookupResource(name string) (Resource, bool) {
	r, ok := resourcesByName[name]
	return r, ok
}

// IsResource сообщает, является ли имя ресурсом каталога.
func IsResource(name string) bool {
	_, ok := resourcesByName[name]
	return ok
}

// Resources возвращает копию каталога ресурсов.
func Resources() []Resource {
	out := make([]Resource, len(resourceCatalog))
	copy(out, resourceCatalog)
	return out
}

// MiningTable возвращает копию таблицы добычи.
func MiningTable() []MiningOutcome {
	out := make([]MiningOutcome, len(miningTable))
	copy(out, miningTable)
	return out
}
