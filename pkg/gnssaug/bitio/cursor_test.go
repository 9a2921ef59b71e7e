package bitio

import "testing"

func TestReadUUnsigned(t *testing.T) {
	// 0b10110010 0b11110000
	buf := []byte{0xB2, 0xF0}
	c := NewCursor(buf)

	if v := c.ReadU(4); v != 0xB {
		t.Errorf("ReadU(4) = %x, want 0xB", v)
	}
	if v := c.ReadU(4); v != 0x2 {
		t.Errorf("ReadU(4) = %x, want 0x2", v)
	}
	if v := c.ReadU(8); v != 0xF0 {
		t.Errorf("ReadU(8) = %x, want 0xF0", v)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}
}

func TestReadSSignExtends(t *testing.T) {
	// 22-bit field with top bit set -> negative
	buf := []byte{0xFF, 0xFF, 0xFC, 0x00}
	c := NewCursor(buf)
	v := c.ReadS(22)
	if v != -1 {
		t.Errorf("ReadS(22) = %d, want -1", v)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	c := NewCursor([]byte{0xAB})
	if p := c.Peek(8); p != 0xAB {
		t.Errorf("Peek(8) = %x, want 0xAB", p)
	}
	if c.Pos() != 0 {
		t.Errorf("Peek should not advance cursor, pos=%d", c.Pos())
	}
	if c.ReadU(8) != 0xAB {
		t.Errorf("ReadU after Peek should return same value")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU(0xD3, 8)
	w.WriteU(123, 10)
	w.WriteS(-5, 6)

	c := NewCursor(w.Bytes())
	if v := c.ReadU(8); v != 0xD3 {
		t.Errorf("preamble = %x, want 0xD3", v)
	}
	if v := c.ReadU(10); v != 123 {
		t.Errorf("length = %d, want 123", v)
	}
	if v := c.ReadS(6); v != -5 {
		t.Errorf("signed field = %d, want -5", v)
	}
}

func TestGetBitUFreeFunction(t *testing.T) {
	buf := []byte{0xD3, 0x00, 0x13}
	if got := GetBitU(buf, 0, 8); got != 0xD3 {
		t.Errorf("GetBitU preamble = %x, want 0xD3", got)
	}
}
