package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/config"
	"github.com/reoring/restcodec/httpadapter"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{httpadapter.DefaultMediaType}, cfg.Server.MediaTypes)
	assert.Equal(t, "go-json", cfg.JSON.JSONDriver().Name())
	assert.Equal(t, restcodec.ParseOpt{MaxDepth: 64, MaxBytes: 1 << 20}, cfg.JSON.ParseOpt())
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
server:
  addr: "127.0.0.1:9000"
  asyncTimeout: 5s
  mediaTypes: ["application/json", "application/vnd.pets+json"]
json:
  driver: encoding/json
  maxDepth: 16
log:
  level: debug
  format: json
  language: ja
`))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.AsyncTimeout)
	assert.Equal(t, []string{"application/json", "application/vnd.pets+json"}, cfg.Server.MediaTypes)
	assert.Equal(t, "encoding/json", cfg.JSON.JSONDriver().Name())
	assert.Equal(t, 16, cfg.JSON.MaxDepth)
	assert.Equal(t, int64(1<<20), cfg.JSON.MaxBytes, "unset keys keep their defaults")
	assert.Equal(t, "ja", cfg.Log.Language)

	opts := cfg.Server.HandlerOptions(slog.Default())
	assert.Equal(t, 5*time.Second, opts.Timeout)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("server:\n  port: 80\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	_, err := config.Parse([]byte(`
server:
  addr: ""
json:
  driver: sonic
  maxDepth: -1
log:
  level: loud
  format: xml
  language: fr
`))
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"server.addr: must not be empty",
		`json.driver: unknown driver "sonic"`,
		"json.maxDepth: -1 is less than the minimum permitted value of 0",
		`log.level: unknown level "loud"`,
		`log.format: unknown format "xml"`,
		`log.language: unsupported language "fr"`,
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.NewLogger(&buf, config.Log{Level: "warn", Format: "json"})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	level, err := config.Log{Level: "trace"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, restcodec.LevelTrace, level)

	_, err = config.NewLogger(&buf, config.Log{Level: "nope"})
	assert.Error(t, err)
}
