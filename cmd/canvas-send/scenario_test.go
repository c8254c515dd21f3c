package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/royr0614/CANvas-J1939/codec"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenarioAndEvaluate(t *testing.T) {
	path := writeScenario(t, `{
		"name": "accel ramp",
		"duration_s": 10,
		"defaults": {"LateralAccelerationExRange": 0, "VerticalAccelerationExRange": 0},
		"segments": [
			{"t0": 2, "t1": 5, "values": {"LateralAccelerationExRange": 1.5}},
			{"t0": 5, "t1": -1, "values": {"LateralAccelerationExRange": -2.25}}
		]
	}`)

	scen, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		t    float64
		want float64
	}{
		{0, 0},     // before any segment: defaults
		{2, 1.5},   // first segment, inclusive start
		{4.99, 1.5},
		{5, -2.25}, // open-ended segment
		{9.9, -2.25},
	}
	for _, tc := range cases {
		vals := scen.Values(nil, tc.t)
		if got := vals["LateralAccelerationExRange"]; got != tc.want {
			t.Errorf("t=%v: got %v, want %v", tc.t, got, tc.want)
		}
		if got := vals["VerticalAccelerationExRange"]; got != 0 {
			t.Errorf("t=%v: default signal overridden to %v", tc.t, got)
		}
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero duration", `{"duration_s": 0}`},
		{"negative t0", `{"duration_s": 5, "segments": [{"t0": -1, "t1": 2, "values": {"a": 1}}]}`},
		{"t1 before t0", `{"duration_s": 5, "segments": [{"t0": 3, "t1": 1, "values": {"a": 1}}]}`},
		{"empty segment", `{"duration_s": 5, "segments": [{"t0": 0, "t1": 1}]}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		if _, err := LoadScenario(writeScenario(t, tc.content)); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestRandomSourceStaysInRange(t *testing.T) {
	fd := &codec.FrameDef{
		ID:   0x100,
		Name: "f",
		DLC:  8,
		Signals: []codec.SignalDef{
			{Name: "ranged", Min: -320, Max: 322.55},
			{Name: "fixed", Min: 3, Max: 3},
		},
	}
	src := newValueSource(nil, 0, fd)
	for i := 0; i < 1000; i++ {
		vals := src.Values(fd, 0)
		if v := vals["ranged"]; v < -320 || v >= 322.55 {
			t.Fatalf("ranged value %v outside [-320, 322.55)", v)
		}
		if v := vals["fixed"]; v != 3 {
			t.Fatalf("degenerate range produced %v, want 3", v)
		}
	}
}

func TestRandomSourceReproducible(t *testing.T) {
	fd := &codec.FrameDef{ID: 0x200, Signals: []codec.SignalDef{{Name: "s", Min: 0, Max: 100}}}
	a := newValueSource(nil, 42, fd)
	b := newValueSource(nil, 42, fd)
	for i := 0; i < 10; i++ {
		if a.Values(fd, 0)["s"] != b.Values(fd, 0)["s"] {
			t.Fatal("same seed produced different sequences")
		}
	}
}
