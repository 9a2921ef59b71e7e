// Package crc24q validates and appends RTCM 3's CRC-24Q frame checksum,
// delegating the actual table-driven computation to
// github.com/goblimey/go-crc24q, the same engine goblimey's NTRIP RTCM
// handler uses.
package crc24q

import (
	crc24q "github.com/goblimey/go-crc24q/crc24q"
)

// Check reports whether the last 3 bytes of frame equal the CRC-24Q of
// the preceding bytes. frame must include the trailing CRC bytes.
func Check(frame []byte) bool {
	if len(frame) < 3 {
		return false
	}
	body := frame[:len(frame)-3]
	want := crc24q.Hash(body)
	return crc24q.HiByte(want) == frame[len(frame)-3] &&
		crc24q.MiByte(want) == frame[len(frame)-2] &&
		crc24q.LoByte(want) == frame[len(frame)-1]
}

// Append computes the CRC-24Q of body and returns body with the 3 CRC
// bytes appended.
func Append(body []byte) []byte {
	sum := crc24q.Hash(body)
	return append(append([]byte{}, body...), crc24q.HiByte(sum), crc24q.MiByte(sum), crc24q.LoByte(sum))
}

// Sum24 returns the raw 24-bit CRC of body as a uint32 (top 8 bits zero).
func Sum24(body []byte) uint32 {
	return crc24q.Hash(body)
}
