package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.BattleFinished(OutcomeVictory)
	m.BattleFinished(OutcomeVictory)
	m.BattleFinished(OutcomeFled)
	m.LevelUp()
	m.CoinsEarned(SourceBattle, 20)
	m.CoinsEarned(SourceAutoMine, 10)
	m.CoinsEarned(SourceAutoMine, 10)
	m.CoinsEarned(SourceSale, 0)
	m.ItemsPurchased(3)
	m.ItemsPurchased(-1)
	m.Mined("Stone")
	m.GameSaved()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.battles.WithLabelValues(OutcomeVictory)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.battles.WithLabelValues(OutcomeFled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.levelUps))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.coinsEarned.WithLabelValues(SourceBattle)))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.coinsEarned.WithLabelValues(SourceAutoMine)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.itemsPurchased))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resourcesMined.WithLabelValues("Stone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gamesSaved))
}

func TestActiveSessionsGauge(t *testing.T) {
	m := New()
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.LevelUp()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.levelUps))
}

func TestHandler(t *testing.T) {
	m := New()
	m.BattleFinished(OutcomeDefeat)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `rpg_battles_total{outcome="defeat"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
