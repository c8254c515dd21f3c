// Package config holds the YAML configuration shared by the canvas-send and
// canvas-monitor tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/royr0614/CANvas-J1939/codec"
)

type Config struct {
	// Interface is the SocketCAN interface name, e.g. vcan0 or can0.
	Interface string      `yaml:"interface"`
	Table     TableConfig `yaml:"table"`
	Codec     CodecConfig `yaml:"codec"`
	Send      SendConfig  `yaml:"send"`
	Log       LogConfig   `yaml:"log"`
}

// TableConfig locates the frame table: a frame-map CSV or a DBC database,
// selected by file extension.
type TableConfig struct {
	Path string `yaml:"path"`
}

type CodecConfig struct {
	LegacyCompat bool   `yaml:"legacy_compat"`
	Strict       bool   `yaml:"strict"`
	Rounding     string `yaml:"rounding"` // truncate (default) or nearest
}

type SendConfig struct {
	// Frames to transmit; empty means every frame marked direction=tx.
	Frames []string `yaml:"frames"`
	// DefaultCycleMS applies to frames without a cycle of their own.
	DefaultCycleMS int `yaml:"default_cycle_ms"`
	// Source selects signal values: random (uniform within each signal's
	// declared range) or scenario (timed segments from ScenarioPath).
	Source       string `yaml:"source"`
	ScenarioPath string `yaml:"scenario"`
	Seed         int64  `yaml:"seed"`
}

type LogConfig struct {
	File   string `yaml:"file"`
	Level  string `yaml:"level"`
	Stdout *bool  `yaml:"stdout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	stdout := true
	return &Config{
		Interface: "vcan0",
		Send: SendConfig{
			DefaultCycleMS: 500,
			Source:         "random",
		},
		Log: LogConfig{
			Level:  "info",
			Stdout: &stdout,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults come back untouched so flag overrides still work.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects combinations the tools cannot run with.
func Validate(cfg *Config) error {
	if cfg.Interface == "" {
		return fmt.Errorf("config: interface must be set")
	}
	if cfg.Table.Path == "" {
		return fmt.Errorf("config: table.path must be set")
	}
	switch cfg.Codec.Rounding {
	case "", "truncate", "nearest":
	default:
		return fmt.Errorf("config: codec.rounding must be truncate or nearest, got %q", cfg.Codec.Rounding)
	}
	switch cfg.Send.Source {
	case "", "random":
	case "scenario":
		if cfg.Send.ScenarioPath == "" {
			return fmt.Errorf("config: send.source scenario requires send.scenario path")
		}
	default:
		return fmt.Errorf("config: send.source must be random or scenario, got %q", cfg.Send.Source)
	}
	if cfg.Send.DefaultCycleMS <= 0 {
		return fmt.Errorf("config: send.default_cycle_ms must be positive, got %d", cfg.Send.DefaultCycleMS)
	}
	return nil
}

// CodecOptions maps the config onto codec options.
func (c *Config) CodecOptions() codec.Options {
	rounding := codec.TruncateTowardZero
	if c.Codec.Rounding == "nearest" {
		rounding = codec.RoundToNearest
	}
	return codec.Options{
		LegacyCompat: c.Codec.LegacyCompat,
		Strict:       c.Codec.Strict,
		Rounding:     rounding,
	}
}

// LogStdout resolves the stdout echo setting, defaulting to on.
func (c *Config) LogStdout() bool {
	if c.Log.Stdout == nil {
		return true
	}
	return *c.Log.Stdout
}
