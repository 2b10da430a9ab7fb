package models_test

import (
	"encoding/json"
	"testing"

	"rpg-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRecordRoundTrip(t *testing.T) {
	p := models.NewPlayer("Aria", models.ModeEasy)
	p.Level = 4
	p.Experience = 120
	p.Coins = 345
	p.MaxHealth = 210
	p.Health = 17
	p.Attack = 44
	p.Defense = 21
	p.AddItems("Health Potion", 2)
	p.AddItems("Stone", 1)

	data, err := json.Marshal(models.NewSaveRecord(p))
	require.NoError(t, err)

	var rec models.SaveRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, p, rec.ToPlayer())
}

func TestSaveRecordCopiesInventory(t *testing.T) {
	p := models.NewPlayer("Aria", models.ModeNormal)
	p.AddItems("Stone", 1)
	rec := models.NewSaveRecord(p)
	p.Inventory[0] = "Diamond"
	assert.Equal(t, []string{"Stone"}, rec.Inventory)
}

func TestSaveRecordDefaults(t *testing.T) {
	t.Run("missing progression fields", func(t *testing.T) {
		var rec models.SaveRecord
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Old","mode":"normal","health":40}`), &rec))

		assert.Equal(t, "Old", rec.Name)
		assert.Equal(t, 1, rec.Level)
		assert.Zero(t, rec.Experience)
		assert.Zero(t, rec.Coins)
		assert.Equal(t, 100, rec.MaxHealth)
		assert.Equal(t, 40, rec.Health)
		assert.Equal(t, 10, rec.Attack)
		assert.Equal(t, 5, rec.Defense)
		assert.NotNil(t, rec.Inventory)
		assert.Empty(t, rec.Inventory)
	})

	t.Run("missing mode and stats derive from level", func(t *testing.T) {
		var rec models.SaveRecord
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Old","level":3}`), &rec))

		assert.Equal(t, models.ModeNormal, rec.Mode)
		assert.Equal(t, 140, rec.MaxHealth)
		assert.Equal(t, 140, rec.Health)
		assert.Equal(t, 20, rec.Attack)
		assert.Equal(t, 11, rec.Defense)
	})

	t.Run("legacy short keys", func(t *testing.T) {
		legacy := `{"name":"Py","mode":"hardcore","lvl":2,"exp":30,"coins":12,"inv":["Stone","Shield"],"hp":500,"atk":13,"def":6}`
		var rec models.SaveRecord
		require.NoError(t, json.Unmarshal([]byte(legacy), &rec))

		assert.Equal(t, models.ModeHardcore, rec.Mode)
		assert.Equal(t, 2, rec.Level)
		assert.Equal(t, 30, rec.Experience)
		assert.Equal(t, 12, rec.Coins)
		assert.Equal(t, []string{"Stone", "Shield"}, rec.Inventory)
		assert.Equal(t, 95, rec.MaxHealth)
		// hp выше максимума приводится к максимуму
		assert.Equal(t, 95, rec.Health)
		assert.Equal(t, 13, rec.Attack)
		assert.Equal(t, 6, rec.Defense)
	})

	t.Run("negative health is clamped", func(t *testing.T) {
		var rec models.SaveRecord
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Dead","health":-4}`), &rec))
		assert.Zero(t, rec.Health)
	})

	t.Run("malformed json", func(t *testing.T) {
		var rec models.SaveRecord
		assert.Error(t, json.Unmarshal([]byte(`{"name":`), &rec))
		assert.Error(t, json.Unmarshal([]byte(`{"name":"X","level":"high"}`), &rec))
	})
}
