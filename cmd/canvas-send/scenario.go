package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/royr0614/CANvas-J1939/codec"
)

// Scenario replays scripted signal values over time: defaults apply
// everywhere, segments override named signals inside their [t0, t1) window.
type Scenario struct {
	Name      string             `json:"name"`
	DurationS float64            `json:"duration_s"`
	Defaults  map[string]float64 `json:"defaults"`
	Segments  []Segment          `json:"segments"`
}

type Segment struct {
	T0      float64            `json:"t0"`
	T1      float64            `json:"t1"` // -1 means until scenario end
	Values  map[string]float64 `json:"values"`
	Comment string             `json:"comment,omitempty"`
}

// LoadScenario loads and validates a scenario JSON file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read file: %w", err)
	}

	var scen Scenario
	if err := json.Unmarshal(data, &scen); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal: %w", err)
	}

	if scen.DurationS <= 0 {
		return Scenario{}, fmt.Errorf("invalid duration_s: %f", scen.DurationS)
	}
	for i, seg := range scen.Segments {
		if seg.T0 < 0 {
			return Scenario{}, fmt.Errorf("segment %d: negative t0 %f", i, seg.T0)
		}
		if seg.T1 >= 0 && seg.T1 < seg.T0 {
			return Scenario{}, fmt.Errorf("segment %d: t1 %f before t0 %f", i, seg.T1, seg.T0)
		}
		if len(seg.Values) == 0 {
			return Scenario{}, fmt.Errorf("segment %d: no values", i)
		}
	}
	return scen, nil
}

// Values evaluates the scenario at time t. The first matching segment wins.
func (s *Scenario) Values(_ *codec.FrameDef, t float64) map[string]float64 {
	out := make(map[string]float64, len(s.Defaults))
	for k, v := range s.Defaults {
		out[k] = v
	}
	for _, seg := range s.Segments {
		t1 := seg.T1
		if t1 < 0 {
			t1 = s.DurationS
		}
		if t >= seg.T0 && t < t1 {
			for k, v := range seg.Values {
				out[k] = v
			}
			break
		}
	}
	return out
}
