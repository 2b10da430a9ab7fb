package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rpg"

// Исходы боя для метки outcome
const (
	OutcomeVictory = "victory"
	OutcomeDefeat  = "defeat"
	OutcomeFled    = "fled"
)

// Источники монет для метки source
const (
	SourceBattle   = "battle"
	SourceSale     = "sale"
	SourceAutoMine = "automine"
)

// Metrics - игровые метрики в собственном реестре.
// Мы используем promauto.With(registry), чтобы метрики не попадали в prometheus.DefaultRegistry.
type Metrics struct {
	registry *prometheus.Registry

	battles        *prometheus.CounterVec
	levelUps       prometheus.Counter
	coinsEarned    *prometheus.CounterVec
	itemsPurchased prometheus.Counter
	resourcesMined *prometheus.CounterVec
	gamesSaved     prometheus.Counter
	activeSessions prometheus.Gauge
}

// New создает реестр и регистрирует игровые метрики и стандартные коллекторы процесса.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		battles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battles_total",
			Help:      "Total number of finished battles, partitioned by outcome.",
		}, []string{"outcome"}),
		levelUps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "Total number of character level-ups.",
		}),
		coinsEarned: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coins_earned_total",
			Help:      "Total coins credited to players, partitioned by source.",
		}, []string{"source"}),
		itemsPurchased: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_purchased_total",
			Help:      "Total number of items bought in the shop.",
		}),
		resourcesMined: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mining_attempts_total",
			Help:      "Total number of manual mining attempts, partitioned by result.",
		}, []string{"result"}),
		gamesSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_saved_total",
			Help:      "Total number of successful saves.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of sessions currently running.",
		}),
	}
}

func (m *Metrics) BattleFinished(outcome string) {
	m.battles.WithLabelValues(outcome).Inc()
}

func (m *Metrics) LevelUp() {
	m.levelUps.Inc()
}

// CoinsEarned учитывает только положительные начисления.
func (m *Metrics) CoinsEarned(source string, coins int) {
	if coins <= 0 {
		return
	}
	m.coinsEarned.WithLabelValues(source).Add(float64(coins))
}

func (m *Metrics) ItemsPurchased(quantity int) {
	if quantity <= 0 {
		return
	}
	m.itemsPurchased.Add(float64(quantity))
}

func (m *Metrics) Mined(result string) {
	m.resourcesMined.WithLabelValues(result).Inc()
}

func (m *Metrics) GameSaved() {
	m.gamesSaved.Inc()
}

func (m *Metrics) SessionStarted() {
	m.activeSessions.Inc()
}

func (m *Metrics) SessionEnded() {
	m.activeSessions.Dec()
}

// Registry возвращает реестр (нужен тестам и для Pushgateway-подобных интеграций).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
