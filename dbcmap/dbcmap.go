// Package dbcmap builds codec message tables from DBC databases. Parsing is
// delegated to go.einride.tech/can/pkg/dbc; this package only maps the
// parsed definitions onto the codec's frame-table model.
package dbcmap

import (
	"fmt"
	"os"
	"path/filepath"

	cdbc "go.einride.tech/can/pkg/dbc"

	"github.com/royr0614/CANvas-J1939/codec"
)

// extendedFlag marks extended (29-bit) arbitration IDs inside a DBC message
// ID; extendedMask recovers the bare identifier.
const (
	extendedFlag = 0x80000000
	extendedMask = 0x1FFFFFFF
)

// ParseFile parses a DBC file and converts its messages into a message table.
func ParseFile(filename string) (*codec.MessageTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read dbc: %w", err)
	}

	parser := cdbc.NewParser(filepath.Base(filename), data)
	if err := parser.Parse(); err != nil {
		return nil, fmt.Errorf("parse dbc: %w", err)
	}
	return Convert(parser.File())
}

// Convert maps parsed DBC definitions onto a message table. Only message
// and signal definitions are consumed; value tables, comments, and
// attributes are ignored.
func Convert(file *cdbc.File) (*codec.MessageTable, error) {
	var frames []*codec.FrameDef

	for _, def := range file.Defs {
		m, ok := def.(*cdbc.MessageDef)
		if !ok {
			continue
		}

		id := uint32(m.MessageID)
		if uint64(m.MessageID)&extendedFlag != 0 {
			id = uint32(uint64(m.MessageID) & extendedMask)
		}

		// Same classic-CAN range the CSV loader enforces.
		if m.Size < 1 || m.Size > 8 {
			return nil, fmt.Errorf("message %s (0x%X): dlc %d outside [1,8]", m.Name, id, m.Size)
		}

		fd := &codec.FrameDef{
			ID:      id,
			Name:    string(m.Name),
			DLC:     int(m.Size),
			Signals: make([]codec.SignalDef, 0, len(m.Signals)),
		}

		for _, s := range m.Signals {
			order := codec.Little
			if s.IsBigEndian {
				order = codec.Big
			}
			vt := codec.Unsigned
			if s.IsSigned {
				vt = codec.Signed
			}
			factor := s.Factor
			if factor == 0 {
				// DBC allows a zero factor to mean "no scaling".
				factor = 1
			}
			fd.Signals = append(fd.Signals, codec.SignalDef{
				Name:      string(s.Name),
				StartBit:  int(s.StartBit),
				BitLength: int(s.Size),
				ByteOrder: order,
				ValueType: vt,
				Factor:    factor,
				Offset:    s.Offset,
				Min:       s.Minimum,
				Max:       s.Maximum,
				Unit:      s.Unit,
			})
		}

		frames = append(frames, fd)
	}

	return codec.NewMessageTable(frames)
}
