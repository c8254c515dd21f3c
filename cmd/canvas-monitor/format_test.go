package main

import (
	"testing"

	"github.com/royr0614/CANvas-J1939/codec"
)

func TestFormatSignals(t *testing.T) {
	fd := &codec.FrameDef{
		Name: "AccelerationSensor",
		Signals: []codec.SignalDef{
			{Name: "LateralAccelerationExRange", Unit: "m/s/s"},
			{Name: "FigureOfMerit"},
			{Name: "skipped"},
		},
	}
	vals := map[string]float64{
		"LateralAccelerationExRange": -1.25,
		"FigureOfMerit":              3,
	}

	got := formatSignals(fd, vals)
	want := "LateralAccelerationExRange=-1.25 m/s/s FigureOfMerit=3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatSignalsEmpty(t *testing.T) {
	fd := &codec.FrameDef{Name: "f", Signals: []codec.SignalDef{{Name: "a"}}}
	if got := formatSignals(fd, nil); got != "(no decodable signals)" {
		t.Errorf("got %q", got)
	}
}
