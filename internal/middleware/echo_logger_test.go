package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, handler echo.HandlerFunc, header http.Header) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	e := echo.New()
	e.Use(EchoZapLogger(zap.New(core)))
	e.GET("/x", handler)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	e.ServeHTTP(httptest.NewRecorder(), req)
	return logs
}

func TestEchoZapLoggerSuccess(t *testing.T) {
	logs := serve(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, http.Header{echo.HeaderXRequestID: []string{"req-1"}})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestEchoZapLoggerClientError(t *testing.T) {
	logs := serve(t, func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "Client error", logs.All()[0].Message)
}

func TestEchoZapLoggerHandlerError(t *testing.T) {
	logs := serve(t, func(c echo.Context) error {
		return errors.New("boom")
	}, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.ContextMap()["error"])
}
