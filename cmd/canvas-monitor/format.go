package main

import (
	"fmt"
	"strings"

	"github.com/royr0614/CANvas-J1939/codec"
)

// formatSignals renders decoded values in the frame's signal order, with
// units where declared. Signals skipped by the decoder (spans beyond the
// received payload) are omitted.
func formatSignals(fd *codec.FrameDef, vals map[string]float64) string {
	var b strings.Builder
	first := true
	for i := range fd.Signals {
		s := &fd.Signals[i]
		v, ok := vals[s.Name]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(" ")
		}
		first = false
		if s.Unit != "" {
			fmt.Fprintf(&b, "%s=%g %s", s.Name, v, s.Unit)
		} else {
			fmt.Fprintf(&b, "%s=%g", s.Name, v)
		}
	}
	if first {
		return "(no decodable signals)"
	}
	return b.String()
}
