package logger

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(Config{Level: "debug", Encoding: "json", OutputPath: path})
	require.NoError(t, err)

	log.Named("Session").Debug("Battle won", zap.String("player", "Aria"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "Session", entry["logger"])
	assert.Equal(t, "Battle won", entry["msg"])
	assert.Equal(t, "Aria", entry["player"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(Config{Level: "loud", OutputPath: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Invalid log level, using info")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "empty defaults to stderr", cfg: Config{}, want: "stderr"},
		{name: "server keeps stdout", cfg: Config{OutputPath: "stdout"}, want: "stdout"},
		{name: "terminal moves stdout to stderr", cfg: Config{OutputPath: "stdout", Terminal: true}, want: "stderr"},
		{name: "terminal moves STDOUT to stderr", cfg: Config{OutputPath: " STDOUT ", Terminal: true}, want: "stderr"},
		{name: "terminal keeps file", cfg: Config{OutputPath: "/var/log/rpg.log", Terminal: true}, want: "/var/log/rpg.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(tt.cfg))
		})
	}
}

func TestTerminalLoggerLeavesStdoutToGame(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = stdout })

	log, err := New(Config{Level: "info", Encoding: "console", OutputPath: "stdout", Terminal: true})
	require.NoError(t, err)
	log.Info("Session started")
	_ = log.Sync()

	os.Stdout = stdout
	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, zap.WarnLevel, level.Level())

	level, err = parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zap.InfoLevel, level.Level())

	level, err = parseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, zap.InfoLevel, level.Level())
}

func TestNewBadOutputPath(t *testing.T) {
	_, err := New(Config{OutputPath: filepath.Join(t.TempDir(), "missing", "dir", "game.log")})
	assert.Error(t, err)
}
