// Package config loads server and codec settings from YAML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/httpadapter"
	"github.com/reoring/restcodec/validation"
)

// Config is the complete configuration.
type Config struct {
	Server Server `yaml:"server"`
	JSON   JSON   `yaml:"json"`
	Log    Log    `yaml:"log"`
}

// Server configures the HTTP adapter.
type Server struct {
	Addr         string        `yaml:"addr"`
	AsyncTimeout time.Duration `yaml:"asyncTimeout"`
	MediaTypes   []string      `yaml:"mediaTypes"`
}

// JSON configures reading.
type JSON struct {
	Driver   string `yaml:"driver"`
	MaxDepth int    `yaml:"maxDepth"`
	MaxBytes int64  `yaml:"maxBytes"`
}

// Log configures logging and the message language.
type Log struct {
	Level    string `yaml:"level"`  // trace, debug, info, warn or error
	Format   string `yaml:"format"` // text or json
	Language string `yaml:"language"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":8080",
			AsyncTimeout: 30 * time.Second,
			MediaTypes:   []string{httpadapter.DefaultMediaType},
		},
		JSON: JSON{Driver: "go-json", MaxDepth: 64, MaxBytes: 1 << 20},
		Log:  Log{Level: "info", Format: "text", Language: "en"},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. Unknown keys are
// errors; an empty document yields Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	maxDepthValidator = validation.MustRangeValidator(0, 10_000)
	maxBytesValidator = validation.MustRangeValidator[int64](0, 1<<40)
)

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems validation.Collector
	field := func(name string) validation.Handler {
		return validation.HandlerFunc(func(msg string) {
			problems.HandleValidationFailure(name + ": " + msg)
		})
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems.HandleValidationFailure("server.addr: must not be empty")
	}
	if c.Server.AsyncTimeout < 0 {
		problems.HandleValidationFailure(fmt.Sprintf("server.asyncTimeout: %s is negative", c.Server.AsyncTimeout))
	}
	if _, ok := restcodec.DriverByName(c.JSON.Driver); !ok {
		problems.HandleValidationFailure(fmt.Sprintf("json.driver: unknown driver %q", c.JSON.Driver))
	}
	maxDepthValidator.ValidateValue(c.JSON.MaxDepth, field("json.maxDepth"))
	maxBytesValidator.ValidateValue(c.JSON.MaxBytes, field("json.maxBytes"))
	if _, err := c.Log.SlogLevel(); err != nil {
		problems.HandleValidationFailure("log.level: " + err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems.HandleValidationFailure(fmt.Sprintf("log.format: unknown format %q", c.Log.Format))
	}
	switch c.Log.Language {
	case "en", "ja":
	default:
		problems.HandleValidationFailure(fmt.Sprintf("log.language: unsupported language %q", c.Log.Language))
	}
	if len(problems.Messages) > 0 {
		return errors.Errorf("invalid configuration:\n\t%s", strings.Join(problems.Messages, "\n\t"))
	}
	return nil
}

// JSONDriver returns the configured JSON driver.
func (c JSON) JSONDriver() restcodec.JSONDriver {
	if d, ok := restcodec.DriverByName(c.Driver); ok {
		return d
	}
	return restcodec.GoJSONDriver()
}

// ParseOpt returns the configured read limits.
func (c JSON) ParseOpt() restcodec.ParseOpt {
	return restcodec.ParseOpt{MaxDepth: c.MaxDepth, MaxBytes: c.MaxBytes}
}

// SlogLevel maps Level to a slog level.
func (l Log) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "trace":
		return restcodec.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Errorf("unknown level %q", l.Level)
}

// NewLogger builds a logger writing to w in the configured format.
func NewLogger(w io.Writer, l Log) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// HandlerOptions derives httpadapter options from the server settings.
func (s Server) HandlerOptions(logger *slog.Logger) httpadapter.HandlerOptions {
	return httpadapter.HandlerOptions{Timeout: s.AsyncTimeout, Logger: logger}
}
