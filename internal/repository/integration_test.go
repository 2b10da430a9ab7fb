package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rpg-server/internal/models"
	"rpg-server/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// SaveRepositorySuite прогоняет одинаковые сценарии на Redis и PostgreSQL
type SaveRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	rdContainer *tcredis.RedisContainer
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	logger      *zap.Logger

	repos map[string]repository.SaveRepository
}

func (s *SaveRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err)

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("rpg_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)
	require.NoError(s.T(), repository.ApplyMigrations(pgConnStr, s.logger), "Failed to run migrations")
	// Повторный запуск не должен падать
	require.NoError(s.T(), repository.ApplyMigrations(pgConnStr, s.logger))

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err)

	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)
	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port())})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err())

	s.repos = map[string]repository.SaveRepository{
		"postgres": repository.NewPgSaveRepository(s.pgPool, s.logger),
		"redis":    repository.NewRedisSaveRepository(s.redisClient, "rpgtest", s.logger),
	}
}

func (s *SaveRepositorySuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
	if s.rdContainer != nil {
		if err := s.rdContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate redis container", zap.Error(err))
		}
	}
}

func (s *SaveRepositorySuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err())
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE player_saves")
	require.NoError(s.T(), err)
}

func (s *SaveRepositorySuite) TestRoundTrip() {
	for backend, repo := range s.repos {
		s.Run(backend, func() {
			p := models.NewPlayer("Aria", models.ModeHardcore)
			p.Level = 4
			p.Coins = 999
			p.AddItems("Iron Sword", 1)
			p.AddItems("Diamond", 3)
			rec := models.NewSaveRecord(p)

			s.Require().NoError(repo.Save(s.ctx, rec))
			loaded, err := repo.Load(s.ctx, "Aria")
			s.Require().NoError(err)
			s.Equal(rec, loaded)
			s.Equal(p, loaded.ToPlayer())
		})
	}
}

func (s *SaveRepositorySuite) TestEmptyInventory() {
	for backend, repo := range s.repos {
		s.Run(backend, func() {
			rec := models.NewSaveRecord(models.NewPlayer("Bare", models.ModeNormal))
			s.Require().NoError(repo.Save(s.ctx, rec))
			loaded, err := repo.Load(s.ctx, "Bare")
			s.Require().NoError(err)
			s.Equal([]string{}, loaded.Inventory)
		})
	}
}

func (s *SaveRepositorySuite) TestOverwriteAndList() {
	for backend, repo := range s.repos {
		s.Run(backend, func() {
			for _, name := range []string{"Zed", "Aria"} {
				s.Require().NoError(repo.Save(s.ctx, models.NewSaveRecord(models.NewPlayer(name, models.ModeNormal))))
			}
			p := models.NewPlayer("Aria", models.ModeNormal)
			p.Coins = 77
			s.Require().NoError(repo.Save(s.ctx, models.NewSaveRecord(p)))

			loaded, err := repo.Load(s.ctx, "Aria")
			s.Require().NoError(err)
			s.Equal(77, loaded.Coins)

			names, err := repo.List(s.ctx)
			s.Require().NoError(err)
			s.Equal([]string{"Aria", "Zed"}, names)
		})
	}
}

func (s *SaveRepositorySuite) TestNotFound() {
	for backend, repo := range s.repos {
		s.Run(backend, func() {
			_, err := repo.Load(s.ctx, "Ghost")
			s.ErrorIs(err, models.ErrNotFound)
		})
	}
}

func (s *SaveRepositorySuite) TestCorruptedRedisValue() {
	s.Require().NoError(s.redisClient.Set(s.ctx, "rpgtest:save:Broken", "{oops", 0).Err())
	_, err := s.repos["redis"].Load(s.ctx, "Broken")
	s.ErrorIs(err, models.ErrInvalidSave)
}

func TestSaveRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	suite.Run(t, new(SaveRepositorySuite))
}
