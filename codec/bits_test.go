package codec

import "testing"

func TestLittleBitsRoundTripAllSpans(t *testing.T) {
	for startBit := 0; startBit < 64; startBit++ {
		maxLen := 64 - startBit
		for bitLen := 1; bitLen <= maxLen; bitLen++ {
			mask := uint64(1)<<bitLen - 1
			if bitLen == 64 {
				mask = ^uint64(0)
			}
			for _, raw := range []uint64{0, mask, 0xAAAAAAAAAAAAAAAA & mask, 0x5A5A5A5A5A5A5A5A & mask} {
				buf := make([]byte, 8)
				writeBitsLittle(buf, startBit, bitLen, raw)
				got := readBitsLittle(buf, startBit, bitLen)
				if got != raw {
					t.Fatalf("start=%d len=%d: wrote %#x, read %#x", startBit, bitLen, raw, got)
				}
			}
		}
	}
}

func TestLittleBitsPreserveNeighbors(t *testing.T) {
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = 0xFF
	}
	// Clearing bits 4..11 must leave the rest of bytes 0 and 1 intact.
	writeBitsLittle(buf, 4, 8, 0)
	if buf[0] != 0x0F {
		t.Errorf("buf[0] = %#x, want 0x0f", buf[0])
	}
	if buf[1] != 0xF0 {
		t.Errorf("buf[1] = %#x, want 0xf0", buf[1])
	}
	if buf[2] != 0xFF {
		t.Errorf("buf[2] = %#x, want 0xff", buf[2])
	}
}

func TestLittleBitsTruncateAtBufferEnd(t *testing.T) {
	buf := make([]byte, 8)
	// 16-bit span starting at bit 56: only the low 8 bits fit.
	writeBitsLittle(buf, 56, 16, 0xABCD)
	if buf[7] != 0xCD {
		t.Errorf("buf[7] = %#x, want 0xcd", buf[7])
	}
	if got := readBitsLittle(buf, 56, 16); got != 0xCD {
		t.Errorf("read back %#x, want 0xcd", got)
	}
}

func TestBigBitsRoundTrip(t *testing.T) {
	for startBit := 0; startBit < 64; startBit++ {
		bytePos := startBit / 8
		bitPos := startBit % 8
		// Motorola walk: bitPos+1 bits in the first byte, 8 per byte after.
		maxLen := bitPos + 1 + 8*(7-bytePos)
		if maxLen > 64 {
			maxLen = 64
		}
		for bitLen := 1; bitLen <= maxLen; bitLen++ {
			mask := uint64(1)<<bitLen - 1
			if bitLen == 64 {
				mask = ^uint64(0)
			}
			for _, raw := range []uint64{0, mask, 0xA5A5A5A5A5A5A5A5 & mask} {
				buf := make([]byte, 8)
				writeBitsBig(buf, startBit, bitLen, raw)
				got := readBitsBig(buf, startBit, bitLen)
				if got != raw {
					t.Fatalf("start=%d len=%d: wrote %#x, read %#x", startBit, bitLen, raw, got)
				}
			}
		}
	}
}

func TestBigBitsByteLayout(t *testing.T) {
	buf := make([]byte, 8)
	// Start bit 7 (MSB of byte 0), 16 bits: classic Motorola word layout.
	writeBitsBig(buf, 7, 16, 0x1234)
	if buf[0] != 0x12 || buf[1] != 0x34 {
		t.Errorf("buf[0:2] = %#x %#x, want 0x12 0x34", buf[0], buf[1])
	}
}

func TestSignExtend(t *testing.T) {
	cases := []struct {
		u      uint64
		bitLen int
		want   int64
	}{
		{0x7F, 8, 127},
		{0xFF, 8, -1},
		{0x80, 8, -128},
		{0x7FFF, 16, 32767},
		{0x8000, 16, -32768},
		{0x1, 1, -1},
		{0x0, 1, 0},
	}
	for _, c := range cases {
		if got := signExtend(c.u, c.bitLen); got != c.want {
			t.Errorf("signExtend(%#x, %d) = %d, want %d", c.u, c.bitLen, got, c.want)
		}
	}
}

func TestRawToUnsignedRoundTrip(t *testing.T) {
	for _, bitLen := range []int{4, 8, 12, 16, 24, 32} {
		min := -int64(1) << (bitLen - 1)
		max := int64(1)<<(bitLen-1) - 1
		for _, raw := range []int64{min, -1, 0, 1, max} {
			u := rawToUnsigned(raw, bitLen)
			if got := signExtend(u, bitLen); got != raw {
				t.Errorf("bitLen=%d raw=%d: got %d back", bitLen, raw, got)
			}
		}
	}
}
