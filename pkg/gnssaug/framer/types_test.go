package framer

import (
	"bytes"
	"io"
	"testing"
)

func TestDetectKind(t *testing.T) {
	cases := map[string]Kind{
		"capture.alst": KindAllystar,
		"capture.ubx":  KindUBX,
		"capture.sbf":  KindSBF,
		"capture.psdr": KindPocketSDR,
		"capture.rtcm": KindRTCM3,
		"capture.l6":   KindRawL6,
	}
	for path, want := range cases {
		got, ok := DetectKind(path)
		if !ok || got != want {
			t.Errorf("DetectKind(%q) = %v, %v; want %v, true", path, got, ok, want)
		}
	}
	if _, ok := DetectKind("capture.unknown"); ok {
		t.Errorf("DetectKind(capture.unknown) should not match")
	}
}

func TestRawFixedFrameFuncWithoutPRN(t *testing.T) {
	frameA := bytes.Repeat([]byte{0xAA}, 250)
	frameB := bytes.Repeat([]byte{0xBB}, 250)
	data := append(append([]byte{}, frameA...), frameB...)

	next := NewFrameFunc(bytes.NewReader(data), KindRawL6)

	f1, err := next()
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if len(f1.Payload) != 250 || f1.Payload[0] != 0xAA {
		t.Errorf("first frame payload mismatch: %x", f1.Payload[:4])
	}

	f2, err := next()
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if f2.Payload[0] != 0xBB {
		t.Errorf("second frame payload mismatch: %x", f2.Payload[:4])
	}

	if _, err := next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestRawFixedFrameFuncWithPRN(t *testing.T) {
	var data []byte
	data = append(data, 186)
	data = append(data, bytes.Repeat([]byte{0x11}, 32)...)

	next := NewFrameFunc(bytes.NewReader(data), KindRawL1S)
	f, err := next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.PRN != 186 {
		t.Errorf("PRN = %d, want 186", f.PRN)
	}
	if len(f.Payload) != 32 {
		t.Errorf("payload length = %d, want 32", len(f.Payload))
	}
}

func TestSBFFrameFuncRoutesByConstellation(t *testing.T) {
	raw := buildSBFBlock(t, sbfBlockBDSRawB2b, 60, []byte{0x01, 0x02, 0x03, 0x04})
	next := sbfFrameFunc(bytes.NewReader(raw))

	f, err := next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Constellation != "BeiDou" {
		t.Errorf("Constellation = %q, want BeiDou", f.Constellation)
	}
	if f.PRN != 60 {
		t.Errorf("PRN = %d, want 60", f.PRN)
	}
}

func buildSBFBlock(t *testing.T, blockID uint16, prn int, payload []byte) []byte {
	t.Helper()
	body := append([]byte{byte(prn), 0, 0}, payload...)
	for len(body)%4 != 0 {
		body = append(body, 0)
	}
	head := make([]byte, 6)
	head[2] = byte(blockID)
	head[3] = byte(blockID >> 8)
	length := uint16(8 + len(body))
	head[4] = byte(length)
	head[5] = byte(length >> 8)

	crcRegion := append(append([]byte{}, head[2:]...), body...)
	crc := crc16CCITT(crcRegion)
	head[0] = byte(crc)
	head[1] = byte(crc >> 8)

	var buf bytes.Buffer
	buf.Write(sbfSync[:])
	buf.Write(head)
	buf.Write(body)
	return buf.Bytes()
}
