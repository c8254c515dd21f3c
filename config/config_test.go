package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/royr0614/CANvas-J1939/codec"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Interface != "vcan0" || cfg.Send.DefaultCycleMS != 500 || cfg.Send.Source != "random" {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.LogStdout() {
		t.Error("stdout should default to on")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
interface: can0
table:
  path: frames.dbc
codec:
  legacy_compat: true
  strict: true
  rounding: nearest
send:
  frames: [AccelerationSensor]
  default_cycle_ms: 100
  source: scenario
  scenario: ramp.json
log:
  level: debug
  stdout: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Interface != "can0" || cfg.Table.Path != "frames.dbc" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Send.Frames) != 1 || cfg.Send.Frames[0] != "AccelerationSensor" {
		t.Errorf("frames = %v", cfg.Send.Frames)
	}
	if cfg.LogStdout() {
		t.Error("stdout override lost")
	}

	opts := cfg.CodecOptions()
	if !opts.LegacyCompat || !opts.Strict || opts.Rounding != codec.RoundToNearest {
		t.Errorf("codec options = %+v", opts)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Table.Path = "frames.csv"
		return cfg
	}

	if err := Validate(valid()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty interface", func(c *Config) { c.Interface = "" }},
		{"missing table", func(c *Config) { c.Table.Path = "" }},
		{"bad rounding", func(c *Config) { c.Codec.Rounding = "ceil" }},
		{"bad source", func(c *Config) { c.Send.Source = "sine" }},
		{"scenario without path", func(c *Config) { c.Send.Source = "scenario" }},
		{"zero cycle", func(c *Config) { c.Send.DefaultCycleMS = 0 }},
	}
	for _, tc := range cases {
		cfg := valid()
		tc.mutate(cfg)
		if err := Validate(cfg); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}
