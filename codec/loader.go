package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadMessageTable reads a frame-map CSV (one row per signal) and builds the
// message table. Signal rows keep their file order within each frame, since
// encode overlap precedence is declaration order.
func LoadMessageTable(csvPath string) (*MessageTable, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMessageTable(f)
}

// ReadMessageTable parses frame-map CSV content from r.
func ReadMessageTable(r io.Reader) (*MessageTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	req := []string{
		"direction", "frame_id", "frame_name", "cycle_ms", "dlc",
		"signal_name", "start_bit", "bit_length", "byte_order",
		"value_type", "factor", "offset", "min", "max", "unit", "comment",
	}
	for _, k := range req {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("frame map missing required column: %q", k)
		}
	}

	var (
		frames []*FrameDef
		byID   = map[uint32]*FrameDef{}
	)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		frameID, err := parseHexOrDecUint32(rec[idx["frame_id"]])
		if err != nil {
			return nil, fmt.Errorf("invalid frame_id %q: %w", rec[idx["frame_id"]], err)
		}

		frameName := strings.TrimSpace(rec[idx["frame_name"]])
		direction := strings.TrimSpace(rec[idx["direction"]])
		cycleMS := mustInt(rec[idx["cycle_ms"]])
		dlc := mustInt(rec[idx["dlc"]])

		order, err := parseByteOrder(rec[idx["byte_order"]])
		if err != nil {
			return nil, fmt.Errorf("frame %s signal %s: %w", frameName, rec[idx["signal_name"]], err)
		}
		vt, err := parseValueType(rec[idx["value_type"]])
		if err != nil {
			return nil, fmt.Errorf("frame %s signal %s: %w", frameName, rec[idx["signal_name"]], err)
		}

		sig := SignalDef{
			Name:      strings.TrimSpace(rec[idx["signal_name"]]),
			StartBit:  mustInt(rec[idx["start_bit"]]),
			BitLength: mustInt(rec[idx["bit_length"]]),
			ByteOrder: order,
			ValueType: vt,
			Factor:    mustFloat(rec[idx["factor"]]),
			Offset:    mustFloat(rec[idx["offset"]]),
			Min:       mustFloat(rec[idx["min"]]),
			Max:       mustFloat(rec[idx["max"]]),
			Unit:      strings.TrimSpace(rec[idx["unit"]]),
			Comment:   strings.TrimSpace(rec[idx["comment"]]),
		}

		if sig.BitLength <= 0 || sig.BitLength > 64 {
			return nil, fmt.Errorf("frame %s signal %s: invalid bit_length %d", frameName, sig.Name, sig.BitLength)
		}
		if sig.StartBit < 0 {
			return nil, fmt.Errorf("frame %s signal %s: invalid start_bit %d", frameName, sig.Name, sig.StartBit)
		}
		if sig.Factor == 0 {
			return nil, fmt.Errorf("frame %s signal %s: factor must be non-zero", frameName, sig.Name)
		}
		if dlc <= 0 || dlc > 8 {
			return nil, fmt.Errorf("frame %s (0x%X): invalid dlc %d", frameName, frameID, dlc)
		}

		fd, ok := byID[frameID]
		if !ok {
			fd = &FrameDef{
				ID:        frameID,
				Name:      frameName,
				DLC:       dlc,
				Direction: direction,
				CycleMS:   cycleMS,
			}
			byID[frameID] = fd
			frames = append(frames, fd)
		}

		if fd.DLC != dlc {
			return nil, fmt.Errorf("frame %s (0x%X) has inconsistent dlc (%d vs %d)", frameName, frameID, fd.DLC, dlc)
		}
		if fd.Name != frameName {
			return nil, fmt.Errorf("frame 0x%X has inconsistent frame_name (%q vs %q)", frameID, fd.Name, frameName)
		}
		if fd.CycleMS != cycleMS {
			return nil, fmt.Errorf("frame %s (0x%X) has inconsistent cycle_ms (%d vs %d)", frameName, frameID, fd.CycleMS, cycleMS)
		}
		if fd.Direction != direction {
			return nil, fmt.Errorf("frame %s (0x%X) has inconsistent direction (%q vs %q)", frameName, frameID, fd.Direction, direction)
		}

		fd.Signals = append(fd.Signals, sig)
	}

	return NewMessageTable(frames)
}

func parseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "little", "intel", "le":
		return Little, nil
	case "big", "motorola", "be":
		return Big, nil
	default:
		return Little, fmt.Errorf("unsupported byte_order %q", s)
	}
}

func parseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unsigned", "+":
		return Unsigned, nil
	case "signed", "-":
		return Signed, nil
	default:
		return Unsigned, fmt.Errorf("unsupported value_type %q", s)
	}
}

func parseHexOrDecUint32(s string) (uint32, error) {
	ss := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(ss, "0x") || strings.HasPrefix(ss, "0X") {
		base = 16
		ss = ss[2:]
	}
	u, err := strconv.ParseUint(ss, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(u), nil
}

func mustInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
