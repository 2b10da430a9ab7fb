package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	outputStdout = "stdout"
	outputStderr = "stderr"
)

// Config - настройки логгера из секции log конфигурации.
type Config struct {
	Level      string // debug, info, warn, error; пусто - info
	Encoding   string // json или console
	OutputPath string // stderr, stdout или путь к файлу; пусто - stderr

	// Terminal - процесс ведет игру в своем stdout. Логи в stdout перемешались бы
	// с игровым текстом, поэтому они уходят в stderr.
	Terminal bool
}

// New собирает zap.Logger для игрового сервера или терминального клиента.
// Неизвестный уровень не ошибка: логгер работает на info и сообщает об этом первой записью.
func New(cfg Config) (*zap.Logger, error) {
	level, levelErr := parseLevel(cfg.Level)

	zapConfig := zap.Config{
		Level:             level,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          encoding(cfg.Encoding),
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{outputPath(cfg)},
		ErrorOutputPaths:  []string{outputStderr},
	}

	log, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if levelErr != nil {
		log.Warn("Invalid log level, using info", zap.String("level", cfg.Level), zap.Error(levelErr))
	}
	return log, nil
}

func parseLevel(raw string) (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		level.SetLevel(zap.InfoLevel)
		return level, err
	}
	return level, nil
}

func encoding(raw string) string {
	if strings.EqualFold(raw, "console") {
		return "console"
	}
	return "json"
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// outputPath выбирает приемник записей с учетом режима терминала.
func outputPath(cfg Config) string {
	path := strings.TrimSpace(cfg.OutputPath)
	switch {
	case path == "":
		return outputStderr
	case cfg.Terminal && strings.EqualFold(path, outputStdout):
		return outputStderr
	}
	return path
}
