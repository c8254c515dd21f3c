package main

import (
	"math/rand"

	"github.com/royr0614/CANvas-J1939/codec"
)

// valueSource produces the physical values for one frame at elapsed time t.
type valueSource interface {
	Values(fd *codec.FrameDef, t float64) map[string]float64
}

// newValueSource builds the per-frame source. Each TX goroutine gets its own
// rand.Rand, seeded from the config seed and the frame ID so runs are
// reproducible.
func newValueSource(scen *Scenario, seed int64, fd *codec.FrameDef) valueSource {
	if scen != nil {
		return scen
	}
	if seed == 0 {
		seed = int64(fd.ID)
	} else {
		seed += int64(fd.ID)
	}
	return &randomSource{rng: rand.New(rand.NewSource(seed))}
}

// randomSource draws each signal uniformly from its declared physical range.
type randomSource struct {
	rng *rand.Rand
}

func (r *randomSource) Values(fd *codec.FrameDef, _ float64) map[string]float64 {
	out := make(map[string]float64, len(fd.Signals))
	for i := range fd.Signals {
		s := &fd.Signals[i]
		if s.Max <= s.Min {
			out[s.Name] = s.Min
			continue
		}
		out[s.Name] = s.Min + r.rng.Float64()*(s.Max-s.Min)
	}
	return out
}
