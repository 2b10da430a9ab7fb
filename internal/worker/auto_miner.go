package worker

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAutoMineInterval = 5 * time.Second
	DefaultAutoMineReward   = 10
)

// CreditFunc начисляет монеты игроку. Вызывающий сам синхронизирует доступ к игроку.
type CreditFunc func(coins int)

// AutoMinerConfig - параметры фоновой добычи.
type AutoMinerConfig struct {
	Interval time.Duration // Период начисления
	Reward   int           // Монет за тик
	MaxTicks int           // 0 - без ограничения
}

// AutoMiner периодически начисляет монеты, пока его не остановят.
type AutoMiner struct {
	cfg    AutoMinerConfig
	credit CreditFunc
	logger *zap.Logger

	shutdownChan chan struct{}
	done         chan struct{}
	startOnce    sync.Once
	stopOnce     sync.Once

	mu      sync.Mutex
	started bool
	ticks   int
}

// NewAutoMiner создает новый экземпляр AutoMiner. Нулевые значения конфигурации заменяются умолчаниями.
func NewAutoMiner(cfg AutoMinerConfig, credit CreditFunc, logger *zap.Logger) *AutoMiner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultAutoMineInterval
	}
	if cfg.Reward <= 0 {
		cfg.Reward = DefaultAutoMineReward
	}
	return &AutoMiner{
		cfg:          cfg,
		credit:       credit,
		logger:       logger.Named("AutoMiner"),
		shutdownChan: make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start запускает цикл начисления. Повторные вызовы ничего не делают.
func (m *AutoMiner) Start() {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.started = true
		m.mu.Unlock()

		go m.run()
		m.logger.Info("Auto-miner started",
			zap.Duration("interval", m.cfg.Interval),
			zap.Int("reward", m.cfg.Reward),
			zap.Int("maxTicks", m.cfg.MaxTicks),
		)
	})
}

// Stop останавливает цикл и ждет завершения горутины: после возврата начислений больше не будет.
// Идемпотентен, безопасен до Start.
func (m *AutoMiner) Stop() {
	m.stopOnce.Do(func() {
		close(m.shutdownChan)
	})
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if started {
		<-m.done
	}
}

// Done закрывается, когда цикл начисления завершился (Stop или MaxTicks).
func (m *AutoMiner) Done() <-chan struct{} {
	return m.done
}

// Ticks возвращает количество выполненных начислений.
func (m *AutoMiner) Ticks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

func (m *AutoMiner) run() {
	defer close(m.done)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownChan:
			m.logger.Info("Auto-miner stopped", zap.Int("ticks", m.Ticks()))
			return
		case <-ticker.C:
			// Stop мог прийти одновременно с тиком
			select {
			case <-m.shutdownChan:
				m.logger.Info("Auto-miner stopped", zap.Int("ticks", m.Ticks()))
				return
			default:
			}

			m.credit(m.cfg.Reward)

			m.mu.Lock()
			m.ticks++
			ticks := m.ticks
			m.mu.Unlock()
			m.logger.Debug("Auto-mine credit", zap.Int("reward", m.cfg.Reward), zap.Int("tick", ticks))

			if m.cfg.MaxTicks > 0 && ticks >= m.cfg.MaxTicks {
				m.logger.Info("Auto-miner reached tick limit", zap.Int("ticks", ticks))
				return
			}
		}
	}
}
