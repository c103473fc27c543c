package realtime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/internal/pacing"
)

// DefaultTPS is used when Config.TPS is zero.
const DefaultTPS = 60

// ErrInvalidTPS is returned for rates whose tick length is not a positive
// time.Duration of at least one nanosecond.
var ErrInvalidTPS = errors.New("tps must give a tick length between 1ns and the largest time.Duration")

// Config configures a Loop.
type Config struct {
	TPS              float64 `yaml:"tps"`               // Target ticks per second, may be fractional (default: 60)
	Curve            string  `yaml:"curve"`             // Default easing curve for readers (default: linear)
	MetricsNamespace string  `yaml:"metrics_namespace"` // Prometheus namespace (default: tickloop)
	LogLevel         string  `yaml:"log_level"`         // zerolog level name (default: info)
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.TPS == 0 {
		c.TPS = DefaultTPS
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = "tickloop"
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	return c
}

// Validate checks the config after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	if pacing.TickLengthFromTPS(c.TPS) <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTPS, c.TPS)
	}
	if _, err := ease.Lookup(c.Curve); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// EaseCurve resolves Curve.
func (c Config) EaseCurve() (ease.Curve, error) {
	return ease.Lookup(c.Curve)
}

// Level resolves LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.withDefaults().LogLevel)
}

// ParseConfig decodes YAML. Unknown keys are rejected; an empty document
// yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("yaml decode: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
