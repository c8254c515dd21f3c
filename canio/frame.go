// Package canio bridges encoded payloads to SocketCAN via
// go.einride.tech/can. The codec stays transport-agnostic; this package owns
// the can.Frame conversion and the socket plumbing.
package canio

import "go.einride.tech/can"

// maxStandardID is the largest 11-bit arbitration ID; anything above it is
// transmitted as an extended (29-bit) frame.
const maxStandardID = 0x7FF

// NewFrame wraps an encoded payload in a can.Frame, inferring the extended
// flag from the ID range. Payloads longer than 8 bytes are cut to the
// classic CAN maximum.
func NewFrame(id uint32, payload []byte) can.Frame {
	var f can.Frame
	f.ID = id
	f.IsExtended = id > maxStandardID
	n := len(payload)
	if n > can.MaxDataLength {
		n = can.MaxDataLength
	}
	f.Length = uint8(n)
	copy(f.Data[:], payload[:n])
	return f
}
