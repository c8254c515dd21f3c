// Package codec converts between physical signal values and raw CAN frame
// payloads, signal by signal, according to per-signal bit-layout metadata.
// It is pure and stateless: every call is an independent transformation over
// a caller-owned, read-only message table, safe for concurrent use.
package codec

import "math"

// Rounding names the physical-to-raw conversion policy used on encode.
type Rounding int

const (
	// TruncateTowardZero matches the historical behavior: -3.7 becomes -3.
	TruncateTowardZero Rounding = iota
	// RoundToNearest rounds half away from zero.
	RoundToNearest
)

// Options selects codec behavior. The zero value is the recommended default:
// lenient error handling, correct big-endian packing, and two's-complement
// sign extension on decode.
type Options struct {
	// LegacyCompat reproduces the historical quirks for golden-frame parity:
	// big-endian signals are silently skipped on encode and decode to raw 0,
	// and signed signals are decoded without sign extension.
	LegacyCompat bool

	// Strict surfaces out-of-bounds signals as errors instead of skipping or
	// truncating them, and turns the legacy big-endian no-op into an
	// UnimplementedByteOrderError.
	Strict bool

	Rounding Rounding
}

// Codec encodes and decodes frames under a fixed set of Options.
type Codec struct {
	opts Options
}

func New(opts Options) *Codec {
	return &Codec{opts: opts}
}

// Encode packs the given physical values into a zero-filled buffer of
// max(8, fd.DLC) bytes. Signals absent from values keep whatever prior
// overlapping signals or the zero fill left in their bit span. In lenient
// mode the returned error is always nil: out-of-range raw values lose their
// excess high bits and spans past the buffer end are silently cut.
func (c *Codec) Encode(fd *FrameDef, values map[string]float64) ([]byte, error) {
	bufLen := fd.DLC
	if bufLen < 8 {
		bufLen = 8
	}
	buf := make([]byte, bufLen)

	for i := range fd.Signals {
		s := &fd.Signals[i]
		v, ok := values[s.Name]
		if !ok {
			continue
		}
		if c.opts.Strict && !c.spanFits(s, len(buf)) {
			return nil, &SignalOutOfBoundsError{
				Frame:    fd.Name,
				Signal:   s.Name,
				StartBit: s.StartBit,
				BitLen:   s.BitLength,
				BufBits:  8 * len(buf),
			}
		}

		raw := c.physToRaw(v, s.Factor, s.Offset)
		u := rawToUnsigned(raw, s.BitLength)

		switch s.ByteOrder {
		case Little:
			writeBitsLittle(buf, s.StartBit, s.BitLength, u)
		case Big:
			if c.opts.LegacyCompat {
				if c.opts.Strict {
					return nil, &UnimplementedByteOrderError{Frame: fd.Name, Signal: s.Name}
				}
				continue
			}
			writeBitsBig(buf, s.StartBit, s.BitLength, u)
		}
	}
	return buf, nil
}

// Decode extracts physical values for every signal whose full bit span lies
// within data. Out-of-span signals are absent from the result in lenient
// mode and an error in strict mode.
func (c *Codec) Decode(fd *FrameDef, data []byte) (map[string]float64, error) {
	out := make(map[string]float64, len(fd.Signals))

	for i := range fd.Signals {
		s := &fd.Signals[i]
		if !c.spanFits(s, len(data)) {
			if c.opts.Strict {
				return nil, &SignalOutOfBoundsError{
					Frame:    fd.Name,
					Signal:   s.Name,
					StartBit: s.StartBit,
					BitLen:   s.BitLength,
					BufBits:  8 * len(data),
				}
			}
			continue
		}

		var u uint64
		switch s.ByteOrder {
		case Little:
			u = readBitsLittle(data, s.StartBit, s.BitLength)
		case Big:
			if c.opts.LegacyCompat {
				if c.opts.Strict {
					return nil, &UnimplementedByteOrderError{Frame: fd.Name, Signal: s.Name}
				}
				// Historical gap: raw stays zero, so only the offset
				// comes through.
				u = 0
			} else {
				u = readBitsBig(data, s.StartBit, s.BitLength)
			}
		}

		var phys float64
		if s.ValueType == Signed && !c.opts.LegacyCompat {
			phys = float64(signExtend(u, s.BitLength))*s.Factor + s.Offset
		} else {
			phys = float64(u)*s.Factor + s.Offset
		}
		out[s.Name] = phys
	}
	return out, nil
}

// spanFits reports whether the signal's full bit span lies within a buffer
// of bufBytes bytes. Little-endian spans grow upward from the start bit; the
// Motorola sawtooth takes StartBit%8+1 bits from its first byte and descends
// through the bytes after it. Legacy compat keeps the historical behavior of
// applying the little-endian formula to every signal.
func (c *Codec) spanFits(s *SignalDef, bufBytes int) bool {
	if s.StartBit < 0 || s.BitLength <= 0 {
		return false
	}
	if s.ByteOrder == Big && !c.opts.LegacyCompat {
		first := s.StartBit%8 + 1
		rest := 8 * (bufBytes - 1 - s.StartBit/8)
		return first+rest >= s.BitLength
	}
	return s.StartBit+s.BitLength <= 8*bufBytes
}

func (c *Codec) physToRaw(v, factor, offset float64) int64 {
	rawFloat := (v - offset) / factor
	if c.opts.Rounding == RoundToNearest {
		return int64(math.Round(rawFloat))
	}
	// Go's float-to-int conversion truncates toward zero.
	return int64(rawFloat)
}
