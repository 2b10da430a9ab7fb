package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpg-server/internal/bootstrap"
	"rpg-server/internal/config"
	"rpg-server/internal/logger"
	"rpg-server/internal/session"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", config.DefaultConfigPath, "path to YAML config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.OutputPath,
		Terminal:   true,
	})
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	if cfg.Server.MetricsAddr != "" {
		metricsServer := &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           app.Metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			zapLogger.Info("Serving metrics", zap.String("addr", cfg.Server.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLogger.Error("Metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	// Чтение stdin нельзя прервать, поэтому сессия читает из канала, который закрывается по сигналу
	in, inWriter := io.Pipe()
	go func() {
		_, err := io.Copy(inWriter, os.Stdin)
		_ = inWriter.CloseWithError(err)
	}()
	go func() {
		<-ctx.Done()
		_ = inWriter.Close()
	}()

	s := session.New(in, os.Stdout, app.Deps)
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("Session failed", zap.Error(err))
	}
}
