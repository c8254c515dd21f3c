package codec

import "fmt"

// SignalOutOfBoundsError reports a signal whose bit span exceeds the frame
// buffer. It is only returned in strict mode; lenient mode skips on decode
// and silently truncates on encode.
type SignalOutOfBoundsError struct {
	Frame    string
	Signal   string
	StartBit int
	BitLen   int
	BufBits  int
}

func (e *SignalOutOfBoundsError) Error() string {
	return fmt.Sprintf("codec: signal %s.%s spans bits [%d,%d) beyond %d-bit buffer",
		e.Frame, e.Signal, e.StartBit, e.StartBit+e.BitLen, e.BufBits)
}

// UnimplementedByteOrderError reports a big-endian signal hit while the
// legacy-compat no-op path is active and strict mode forbids silently
// skipping it.
type UnimplementedByteOrderError struct {
	Frame  string
	Signal string
}

func (e *UnimplementedByteOrderError) Error() string {
	return fmt.Sprintf("codec: signal %s.%s declares big-endian byte order, unimplemented in legacy-compat mode",
		e.Frame, e.Signal)
}

// TableError reports an invalid message-table construction.
type TableError struct {
	Frame  string
	Signal string
	Reason string
}

func (e *TableError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("codec: frame %s signal %s: %s", e.Frame, e.Signal, e.Reason)
	}
	return fmt.Sprintf("codec: frame %s: %s", e.Frame, e.Reason)
}
