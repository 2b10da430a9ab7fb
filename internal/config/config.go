package config

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const DefaultConfigPath = "config.yml"

// Config содержит конфигурацию приложения
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
	Server  ServerConfig  `yaml:"server"`
	Events  EventsConfig  `yaml:"events"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"console" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" env:"LOG_OUTPUT" env-default:"stderr"`
}

// StorageConfig выбирает хранилище сохранений
type StorageConfig struct {
	Backend  string         `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file" validate:"oneof=file redis postgres"`
	SaveDir  string         `yaml:"save_dir" env:"SAVE_DIR" env-default:"."`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0" validate:"gte=0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"rpg" validate:"required"`
}

// PostgresConfig содержит конфигурацию базы данных
type PostgresConfig struct {
	Host               string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port               int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User               string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password           string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
	Name               string `yaml:"name" env:"DB_NAME" env-default:"rpg"`
	SSLMode            string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxConnections     int32  `yaml:"max_connections" env:"DB_MAX_CONNECTIONS" env-default:"10" validate:"gte=1"`
	MaxConnIdleMinutes int    `yaml:"max_conn_idle_minutes" env:"DB_MAX_IDLE_MINUTES" env-default:"5"`
}

// DSN собирает строку подключения в формате URL (её понимают и pgx, и lib/pq).
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// GameConfig - игровые правила и фоновая добыча
type GameConfig struct {
	CriticalHits     bool          `yaml:"critical_hits" env:"GAME_CRITICAL_HITS" env-default:"false"`
	AutoMineInterval time.Duration `yaml:"automine_interval" env:"GAME_AUTOMINE_INTERVAL" env-default:"5s" validate:"gt=0"`
	AutoMineReward   int           `yaml:"automine_reward" env:"GAME_AUTOMINE_REWARD" env-default:"10" validate:"gt=0"`
	AutoMineMaxTicks int           `yaml:"automine_max_ticks" env:"GAME_AUTOMINE_MAX_TICKS" env-default:"0" validate:"gte=0"` // 0 - без ограничения
	Seed             int64         `yaml:"seed" env:"GAME_SEED" env-default:"0"`                                              // 0 - от текущего времени
}

// ServerConfig содержит конфигурацию сервера
type ServerConfig struct {
	Port            int           `yaml:"port" env:"SERVER_PORT" env-default:"8080" validate:"gt=0,lte=65535"`
	MetricsAddr     string        `yaml:"metrics_addr" env:"METRICS_ADDR"` // Только для терминального режима; пусто - выключено
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// EventsConfig - публикация игровых событий. Пустой URL отключает RabbitMQ.
type EventsConfig struct {
	RabbitMQURL string `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	Queue       string `yaml:"queue" env:"GAME_EVENTS_QUEUE" env-default:"game_events" validate:"required"`
}

// LoadConfig читает YAML-файл (если он есть) с переопределением из окружения.
// Если файл не удалось прочитать, конфигурация берется только из переменных окружения.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v. Попытка чтения из переменных окружения.", configPath, err)
		cfg = Config{}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}
	return &cfg, nil
}
