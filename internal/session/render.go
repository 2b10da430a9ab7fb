package session

import (
	"fmt"
	"strings"

	"rpg-server/internal/models"
)

const healthBarWidth = 20

func healthBar(health, maxHealth int) string {
	filled := 0
	if maxHealth > 0 {
		filled = health * healthBarWidth / maxHealth
	}
	filled = max(0, min(healthBarWidth, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", healthBarWidth-filled) + "]"
}

func statusLine(p *models.Player, autoMining bool) string {
	line := fmt.Sprintf("%s | Lv %d | EXP %d/%d | HP %s %d/%d | ATK %d | DEF %d | Coins %d",
		p.Name, p.Level, p.Experience, p.ExperienceToLevel(),
		healthBar(p.Health, p.MaxHealth), p.Health, p.MaxHealth,
		p.Attack, p.Defense, p.Coins,
	)
	if autoMining {
		line += " | auto-mining"
	}
	return line
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func mainMenu(p *models.Player, autoMining bool) string {
	var b strings.Builder
	b.WriteString("=== MAIN MENU ===\n")
	b.WriteString("1. Explore\n")
	if p.Mode.CanRest() {
		b.WriteString("2. Rest\n")
	} else {
		b.WriteString("2. Rest (disabled in hardcore)\n")
	}
	b.WriteString("3. Shop\n")
	b.WriteString("4. Mine\n")
	b.WriteString("5. Inventory / use item\n")
	b.WriteString("6. Stats\n")
	fmt.Fprintf(&b, "7. Auto-mine [%s]\n", onOff(autoMining))
	b.WriteString("8. Save\n")
	b.WriteString("9. Quit\n")
	return b.String()
}

func statsBlock(p *models.Player, autoMining bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s's Stats:\n", p.Name)
	fmt.Fprintf(&b, "Mode: %s\n", p.Mode)
	fmt.Fprintf(&b, "Level: %d (EXP %d/%d)\n", p.Level, p.Experience, p.ExperienceToLevel())
	fmt.Fprintf(&b, "Health: %d/%d %s\n", p.Health, p.MaxHealth, healthBar(p.Health, p.MaxHealth))
	fmt.Fprintf(&b, "Attack: %d\n", p.Attack)
	fmt.Fprintf(&b, "Defense: %d\n", p.Defense)
	fmt.Fprintf(&b, "Coins: %d\n", p.Coins)
	fmt.Fprintf(&b, "Auto-mining: %s\n", onOff(autoMining))
	fmt.Fprintf(&b, "Inventory: %s\n", inventorySummary(p))
	return b.String()
}

func inventorySummary(p *models.Player) string {
	groups := p.GroupInventory(nil)
	if len(groups) == 0 {
		return "Empty"
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if g.Count > 1 {
			parts = append(parts, fmt.Sprintf("%s x%d", g.Name, g.Count))
		} else {
			parts = append(parts, g.Name)
		}
	}
	return strings.Join(parts, ", ")
}
