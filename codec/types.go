package codec

import "sort"

// ByteOrder selects the bit-packing direction for multi-byte signals.
type ByteOrder int

const (
	// Little is Intel-style packing: bits grow from the start bit toward
	// higher bit and byte positions.
	Little ByteOrder = iota
	// Big is Motorola-style packing: the start bit is the most significant
	// bit and the walk descends within a byte, then wraps to bit 7 of the
	// next byte.
	Big
)

func (o ByteOrder) String() string {
	switch o {
	case Little:
		return "little"
	case Big:
		return "big"
	default:
		return "unknown"
	}
}

// ValueType selects two's-complement interpretation on decode.
type ValueType int

const (
	Unsigned ValueType = iota
	Signed
)

func (v ValueType) String() string {
	switch v {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	default:
		return "unknown"
	}
}

// SignalDef describes one field within a frame payload. StartBit is the
// 0-based offset of the field's first bit, counted from the LSB of byte 0.
// Min and Max are descriptive only: the codec never clamps or validates
// physical values against them.
type SignalDef struct {
	Name      string
	StartBit  int
	BitLength int
	ByteOrder ByteOrder
	ValueType ValueType
	Factor    float64
	Offset    float64
	Min       float64
	Max       float64
	Unit      string
	Comment   string
}

// FrameDef describes one CAN frame. DLC is the declared payload length in
// bytes; encode buffers are padded to at least 8 bytes regardless.
// Signals keep their declaration order: overlapping bit spans resolve
// last-write-wins during encode, so the order is semantically significant.
type FrameDef struct {
	ID        uint32
	Name      string
	DLC       int
	Direction string
	CycleMS   int
	Signals   []SignalDef
}

// MessageTable maps frame IDs and names to their definitions. It is built
// once and treated as read-only for the lifetime of all codec calls.
type MessageTable struct {
	ByID   map[uint32]*FrameDef
	ByName map[string]*FrameDef
}

// NewMessageTable builds a table from frame definitions, rejecting duplicate
// frame IDs, duplicate frame names, and duplicate signal names within a frame.
func NewMessageTable(frames []*FrameDef) (*MessageTable, error) {
	t := &MessageTable{
		ByID:   make(map[uint32]*FrameDef, len(frames)),
		ByName: make(map[string]*FrameDef, len(frames)),
	}
	for _, fd := range frames {
		if _, ok := t.ByID[fd.ID]; ok {
			return nil, &TableError{Frame: fd.Name, Reason: "duplicate frame id"}
		}
		if _, ok := t.ByName[fd.Name]; ok {
			return nil, &TableError{Frame: fd.Name, Reason: "duplicate frame name"}
		}
		seen := make(map[string]struct{}, len(fd.Signals))
		for _, s := range fd.Signals {
			if _, ok := seen[s.Name]; ok {
				return nil, &TableError{Frame: fd.Name, Signal: s.Name, Reason: "duplicate signal name"}
			}
			seen[s.Name] = struct{}{}
		}
		t.ByID[fd.ID] = fd
		t.ByName[fd.Name] = fd
	}
	return t, nil
}

func (t *MessageTable) FrameByID(id uint32) (*FrameDef, bool) {
	fd, ok := t.ByID[id]
	return fd, ok
}

func (t *MessageTable) FrameByName(name string) (*FrameDef, bool) {
	fd, ok := t.ByName[name]
	return fd, ok
}

func (t *MessageTable) FrameNames() []string {
	out := make([]string, 0, len(t.ByName))
	for k := range t.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
