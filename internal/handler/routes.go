package handler

import (
	"net/http"

	"rpg-server/internal/metrics"
	"rpg-server/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewServer собирает Echo с маршрутами /ws, /health и /metrics.
func NewServer(sessions *SessionHandler, m *metrics.Metrics, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.EchoZapLogger(logger.Named("http")))

	e.GET("/ws", sessions.ServeWS)
	e.GET("/health", health)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	return e
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
