package codec

// writeBitsLittle distributes the low bitLen bits of raw into data starting
// at startBit, least-significant bits first, crossing byte boundaries as
// needed. Each destination byte is read-modify-written so bits belonging to
// other signals in the same byte survive. Bits landing past the end of data
// are dropped.
func writeBitsLittle(data []byte, startBit, bitLen int, raw uint64) {
	bytePos := startBit / 8
	bitPos := startBit % 8
	remaining := bitLen
	for remaining > 0 {
		if bytePos >= len(data) {
			return
		}
		n := 8 - bitPos
		if n > remaining {
			n = remaining
		}
		mask := byte((1<<n)-1) << bitPos
		chunk := byte(raw>>(bitLen-remaining)) & byte((1<<n)-1)
		data[bytePos] = (data[bytePos] &^ mask) | chunk<<bitPos
		remaining -= n
		bytePos++
		bitPos = 0
	}
}

// readBitsLittle is the inverse of writeBitsLittle. Bits past the end of
// data read as zero.
func readBitsLittle(data []byte, startBit, bitLen int) uint64 {
	var raw uint64
	bytePos := startBit / 8
	bitPos := startBit % 8
	remaining := bitLen
	for remaining > 0 && bytePos < len(data) {
		n := 8 - bitPos
		if n > remaining {
			n = remaining
		}
		chunk := (data[bytePos] >> bitPos) & byte((1<<n)-1)
		raw |= uint64(chunk) << (bitLen - remaining)
		remaining -= n
		bytePos++
		bitPos = 0
	}
	return raw
}

// writeBitsBig packs raw MSB-first starting at startBit, descending within
// a byte and wrapping to bit 7 of the next byte (Motorola sawtooth).
func writeBitsBig(data []byte, startBit, bitLen int, raw uint64) {
	bytePos := startBit / 8
	bitPos := startBit % 8
	for i := bitLen - 1; i >= 0; i-- {
		if bytePos >= len(data) {
			return
		}
		mask := byte(1) << bitPos
		if raw>>uint(i)&1 != 0 {
			data[bytePos] |= mask
		} else {
			data[bytePos] &^= mask
		}
		if bitPos == 0 {
			bitPos = 7
			bytePos++
		} else {
			bitPos--
		}
	}
}

// readBitsBig is the inverse of writeBitsBig. Bits past the end of data
// read as zero.
func readBitsBig(data []byte, startBit, bitLen int) uint64 {
	var raw uint64
	bytePos := startBit / 8
	bitPos := startBit % 8
	for i := bitLen - 1; i >= 0; i-- {
		if bytePos >= len(data) {
			return raw
		}
		if data[bytePos]>>bitPos&1 != 0 {
			raw |= 1 << uint(i)
		}
		if bitPos == 0 {
			bitPos = 7
			bytePos++
		} else {
			bitPos--
		}
	}
	return raw
}

// signExtend interprets the low bitLen bits of u as a two's-complement
// value of that width.
func signExtend(u uint64, bitLen int) int64 {
	if bitLen <= 0 || bitLen >= 64 {
		return int64(u)
	}
	signBit := uint64(1) << (bitLen - 1)
	if u&signBit == 0 {
		return int64(u)
	}
	fullMask := uint64(1)<<bitLen - 1
	twos := (^u + 1) & fullMask
	return -int64(twos)
}

// rawToUnsigned maps a raw integer onto its two's-complement bit pattern
// of the given width. Excess high bits are masked off during the write, so
// no clamping happens here.
func rawToUnsigned(raw int64, bitLen int) uint64 {
	if raw >= 0 {
		return uint64(raw)
	}
	if bitLen >= 64 {
		return uint64(raw)
	}
	fullMask := uint64(1)<<bitLen - 1
	u := uint64(-raw)
	return (^u + 1) & fullMask
}
