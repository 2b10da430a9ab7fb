package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rpg-server/internal/config"
	"rpg-server/internal/messaging"
	"rpg-server/internal/metrics"
	"rpg-server/internal/repository"
	"rpg-server/internal/service"
	"rpg-server/internal/session"
	"rpg-server/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	connectRetries    = 5
	connectRetryDelay = 2 * time.Second
	pingTimeout       = 5 * time.Second
)

// App - общие зависимости процесса: сервисы, хранилище, брокер и метрики.
type App struct {
	Deps    session.Dependencies
	Metrics *metrics.Metrics

	closers []func() error
	logger  *zap.Logger
}

// New собирает приложение по конфигурации. При ошибке уже открытые соединения закрываются.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{
		Metrics: metrics.New(),
		logger:  logger.Named("Bootstrap"),
	}

	saves, err := app.openStorage(ctx, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, err
	}
	events, err := app.openEvents(ctx, cfg.Events)
	if err != nil {
		app.Close()
		return nil, err
	}

	game := service.NewGameService(
		service.NewRoller(cfg.Game.Seed),
		service.Rules{CriticalHits: cfg.Game.CriticalHits},
		logger,
	)
	app.Deps = session.Dependencies{
		Game:    game,
		Saves:   saves,
		Events:  events,
		Metrics: app.Metrics,
		AutoMine: worker.AutoMinerConfig{
			Interval: cfg.Game.AutoMineInterval,
			Reward:   cfg.Game.AutoMineReward,
			MaxTicks: cfg.Game.AutoMineMaxTicks,
		},
		Logger: logger,
	}
	return app, nil
}

// Close закрывает ресурсы в обратном порядке открытия.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *App) openStorage(ctx context.Context, cfg config.StorageConfig) (repository.SaveRepository, error) {
	a.logger.Info("Opening save storage", zap.String("backend", cfg.Backend))
	switch cfg.Backend {
	case "", "file":
		return repository.NewFileSaveRepository(cfg.SaveDir, a.logger), nil
	case "redis":
		client, err := setupRedis(ctx, cfg.Redis, a.logger)
		if err != nil {
			return nil, err
		}
		a.onClose(client.Close)
		return repository.NewRedisSaveRepository(client, cfg.Redis.Prefix, a.logger), nil
	case "postgres":
		if err := repository.ApplyMigrations(cfg.Postgres.DSN(), a.logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := setupPostgres(ctx, cfg.Postgres, a.logger)
		if err != nil {
			return nil, err
		}
		a.onClose(func() error { pool.Close(); return nil })
		return repository.NewPgSaveRepository(pool, a.logger), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func (a *App) openEvents(ctx context.Context, cfg config.EventsConfig) (messaging.EventPublisher, error) {
	if cfg.RabbitMQURL == "" {
		a.logger.Info("RABBITMQ_URL is empty, game events are disabled")
		return messaging.NewNopPublisher(), nil
	}
	conn, err := connectRabbitMQ(ctx, cfg.RabbitMQURL, a.logger)
	if err != nil {
		return nil, err
	}
	a.onClose(conn.Close)

	publisher, err := messaging.NewRabbitMQEventPublisher(conn, cfg.Queue, a.logger)
	if err != nil {
		return nil, err
	}
	a.onClose(publisher.Close)
	return publisher, nil
}

// retry повторяет attempt, пока он не вернет nil, не кончатся попытки или не отменится ctx.
func retry(ctx context.Context, what string, logger *zap.Logger, attempt func() error) error {
	var lastErr error
	for i := 1; i <= connectRetries; i++ {
		if lastErr = attempt(); lastErr == nil {
			logger.Info("Connected", zap.String("target", what), zap.Int("attempt", i))
			return nil
		}
		logger.Warn("Connection failed, retrying...",
			zap.String("target", what),
			zap.Int("attempt", i),
			zap.Int("max_retries", connectRetries),
			zap.Error(lastErr),
		)
		if i == connectRetries {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Join(lastErr, ctx.Err())
		case <-time.After(connectRetryDelay):
		}
	}
	return fmt.Errorf("failed to connect to %s after %d attempts: %w", what, connectRetries, lastErr)
}

func setupPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleMinutes) * time.Minute

	var pool *pgxpool.Pool
	err = retry(ctx, "postgres", logger, func() error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	return pool, err
}

func setupRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := retry(ctx, "redis", logger, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return client.Ping(pingCtx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func connectRabbitMQ(ctx context.Context, url string, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	err := retry(ctx, "rabbitmq", logger, func() error {
		c, err := amqp.Dial(url)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	return conn, err
}
