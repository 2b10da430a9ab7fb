package service_test

import (
	"testing"

	"rpg-server/internal/models"
	"rpg-server/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestGainExperience(t *testing.T) {
	t.Run("below threshold", func(t *testing.T) {
		p := models.NewPlayer("Aria", models.ModeNormal)
		assert.False(t, service.GainExperience(p, 50))
		assert.Equal(t, 1, p.Level)
		assert.Equal(t, 50, p.Experience)
	})

	t.Run("reaching threshold levels up", func(t *testing.T) {
		p := models.NewPlayer("Aria", models.ModeNormal)
		p.TakeDamage(60)
		service.GainExperience(p, 50)

		assert.True(t, service.GainExperience(p, 50))
		assert.Equal(t, 2, p.Level)
		assert.Zero(t, p.Experience)
		assert.Equal(t, 15, p.Attack)
		assert.Equal(t, 8, p.Defense)
		assert.Equal(t, 120, p.MaxHealth)
		assert.Equal(t, 120, p.Health, "level-up heals fully")
	})

	t.Run("large gain does not cascade", func(t *testing.T) {
		p := models.NewPlayer("Aria", models.ModeNormal)
		assert.True(t, service.GainExperience(p, 10_000))
		assert.Equal(t, 2, p.Level)
		assert.Zero(t, p.Experience)
	})

	t.Run("non-positive amounts are ignored", func(t *testing.T) {
		p := models.NewPlayer("Aria", models.ModeNormal)
		p.Experience = 40
		assert.False(t, service.GainExperience(p, 0))
		assert.False(t, service.GainExperience(p, -30))
		assert.Equal(t, 40, p.Experience)
	})

	t.Run("monotonic over repeated calls", func(t *testing.T) {
		p := models.NewPlayer("Aria", models.ModeHardcore)
		p.Coins = 10
		for i := 0; i < 200; i++ {
			prevLevel, prevMax, prevCoins := p.Level, p.MaxHealth, p.Coins
			leveled := service.GainExperience(p, 37)

			assert.GreaterOrEqual(t, p.Level, prevLevel)
			assert.GreaterOrEqual(t, p.MaxHealth, prevMax)
			assert.Equal(t, prevCoins, p.Coins)
			assert.LessOrEqual(t, p.Health, p.MaxHealth)
			if leveled {
				assert.Equal(t, prevLevel+1, p.Level)
				assert.Zero(t, p.Experience)
			}
		}
	})
}

func TestLevelUp(t *testing.T) {
	p := models.NewPlayer("Aria", models.ModeEasy)
	p.Experience = 77
	p.TakeDamage(100)

	service.LevelUp(p)

	assert.Equal(t, 2, p.Level)
	assert.Zero(t, p.Experience)
	assert.Equal(t, 20, p.Attack)
	assert.Equal(t, 11, p.Defense)
	assert.Equal(t, 170, p.MaxHealth)
	assert.Equal(t, p.MaxHealth, p.Health)
}
